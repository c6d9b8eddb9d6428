package handler

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/SumanthSV/AI-Todo-summarizer/dto"
	"github.com/SumanthSV/AI-Todo-summarizer/services"
	"github.com/SumanthSV/AI-Todo-summarizer/usecase"
	"github.com/SumanthSV/AI-Todo-summarizer/utils"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/go-hclog"
)

const defaultHeartbeat = 25 * time.Second

// LiveHandler streams the caller's todos, stats and summary as server-sent
// events. The full current value is sent on connect and again after every
// change event for that user.
type LiveHandler struct {
	todos     *usecase.TodoService
	summaries *usecase.SummaryService
	broker    services.LiveBroker
	logger    hclog.Logger
	heartbeat time.Duration
}

func NewLiveHandler(todos *usecase.TodoService, summaries *usecase.SummaryService, broker services.LiveBroker, logger hclog.Logger) *LiveHandler {
	return &LiveHandler{
		todos:     todos,
		summaries: summaries,
		broker:    broker,
		logger:    logger.Named("live"),
		heartbeat: defaultHeartbeat,
	}
}

func (h *LiveHandler) Stream(c *gin.Context) {
	ctx := c.Request.Context()
	userID := currentUserID(c)

	events, release, err := h.broker.Subscribe(ctx, userID)
	if err != nil {
		respondError(c, h.logger, err, "Failed to open live stream")
		return
	}
	defer release()

	utils.LiveSubscribers.Inc()
	defer utils.LiveSubscribers.Dec()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	if !h.send(ctx, c, userID, services.LiveTodosChanged) || !h.send(ctx, c, userID, services.LiveSummaryChanged) {
		return
	}
	c.Writer.Flush()

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case ev, ok := <-events:
			if !ok {
				return false
			}
			return h.send(ctx, c, userID, ev.Kind)
		case <-ticker.C:
			_, err := fmt.Fprint(w, ": ping\n\n")
			return err == nil
		}
	})
}

// send writes the events that a change of the given kind affects.
func (h *LiveHandler) send(ctx context.Context, c *gin.Context, userID, kind string) bool {
	switch kind {
	case services.LiveTodosChanged:
		todos, err := h.todos.List(ctx, userID)
		if err != nil {
			h.logger.Error("failed to read todos for live stream", "user_id", userID, "error", err)
			return false
		}
		c.SSEvent(dto.EventTodos, todos)
		c.SSEvent(dto.EventStats, usecase.ComputeStats(todos))
	case services.LiveSummaryChanged:
		summary, err := h.summaries.Latest(ctx, userID)
		if err != nil {
			h.logger.Error("failed to read summary for live stream", "user_id", userID, "error", err)
			return false
		}
		c.SSEvent(dto.EventSummary, dto.LatestSummaryResponse{Summary: summary})
	default:
		h.logger.Debug("ignoring unknown live event", "kind", kind)
	}
	return true
}
