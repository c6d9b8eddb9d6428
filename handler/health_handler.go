package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/SumanthSV/AI-Todo-summarizer/dto"
	"github.com/SumanthSV/AI-Todo-summarizer/utils"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/go-hclog"
)

// Pinger is satisfied by repository.Repos.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	store  Pinger
	logger hclog.Logger
}

func NewHealthHandler(store Pinger, logger hclog.Logger) *HealthHandler {
	return &HealthHandler{store: store, logger: logger.Named("health")}
}

func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	resp := dto.HealthResponse{Status: "ok", Store: "ok"}

	if load, err := utils.GetSystemLoad(); err != nil {
		h.logger.Debug("system load unavailable", "error", err)
	} else {
		resp.CPUPercent = load.CPUPercent
		resp.MemoryPercent = load.MemoryPercent
	}

	if err := h.store.Ping(ctx); err != nil {
		h.logger.Warn("store ping failed", "error", err)
		resp.Status = "degraded"
		resp.Store = err.Error()
		c.JSON(http.StatusServiceUnavailable, &utils.Response{Error: "store unavailable", Data: resp})
		return
	}

	utils.Success(c, resp)
}
