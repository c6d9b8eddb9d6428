package model

import "time"

type Session struct {
	SessionID      string    `bson:"session_id" json:"session_id" db:"id"`
	UserID         string    `bson:"user_id" json:"user_id" db:"user_id"`
	CreatedAt      time.Time `bson:"created_at" json:"created_at" db:"created_at"`
	ExpiresAt      time.Time `bson:"expires_at" json:"expires_at" db:"expires_at"`
	LastActivityAt time.Time `bson:"last_activity_at" json:"last_activity_at" db:"last_activity_at"`
	DeviceInfo     string    `bson:"device_info" json:"device_info" db:"device_info"`
	IPAddress      string    `bson:"ip_address" json:"ip_address" db:"ip_address"`
	IsActive       bool      `bson:"is_active" json:"is_active" db:"is_active"`
}
