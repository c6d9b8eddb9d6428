package dto

import (
	"time"

	"github.com/SumanthSV/AI-Todo-summarizer/model"
)

type AuthResponse struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	SessionID string      `json:"session_id"`
	User      *model.User `json:"user"`
}

type SessionsResponse struct {
	Sessions []*model.Session `json:"sessions"`
}

type HealthResponse struct {
	Status        string  `json:"status"`
	Store         string  `json:"store"`
	CPUPercent    float64 `json:"cpu_percent"`
	MemoryPercent float64 `json:"memory_percent"`
}
