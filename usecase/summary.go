package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/SumanthSV/AI-Todo-summarizer/model"
	"github.com/SumanthSV/AI-Todo-summarizer/repository"
	"github.com/SumanthSV/AI-Todo-summarizer/services"
	"github.com/SumanthSV/AI-Todo-summarizer/utils"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
)

type SummaryService struct {
	todos     repository.TodoStore
	summaries repository.SummaryStore
	llm       services.Completer
	live      services.LiveBroker
	logger    hclog.Logger
	timeout   time.Duration
	now       func() time.Time
}

type SummaryConfig struct {
	// Timeout bounds a whole generation. Zero means no bound.
	Timeout time.Duration
}

func NewSummaryService(
	todos repository.TodoStore,
	summaries repository.SummaryStore,
	llm services.Completer,
	live services.LiveBroker,
	logger hclog.Logger,
	cfg SummaryConfig,
) *SummaryService {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &SummaryService{
		todos:     todos,
		summaries: summaries,
		llm:       llm,
		live:      live,
		logger:    logger.Named("summary"),
		timeout:   cfg.Timeout,
		now:       time.Now,
	}
}

// Generate asks the model for a summary of the caller's todos and stores it
// as the caller's only summary. The work is detached from ctx cancellation
// so a client that hangs up does not abort a paid call halfway.
func (svc *SummaryService) Generate(ctx context.Context, userID string) (string, error) {
	if userID == "" {
		return "", ErrUnauthenticated
	}

	ctx = context.WithoutCancel(ctx)
	if svc.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, svc.timeout)
		defer cancel()
	}

	todos, err := svc.todos.GetUserTodos(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("failed to load todos: %w", err)
	}
	if len(todos) == 0 {
		utils.TrackSummaryGeneration("empty")
		return EmptyListMessage, nil
	}
	stats := ComputeStats(todos)

	start := svc.now()
	content, err := svc.llm.Complete(ctx, BuildPrompt(todos, stats))
	if err != nil {
		utils.TrackSummaryGeneration("failed")
		utils.TrackError("llm", "completion")
		svc.logger.Error("summary generation failed", "user_id", userID, "error", err)
		return "", fmt.Errorf("%w: %w", ErrExternalService, err)
	}
	if content == "" {
		content = FallbackSummary
	}

	summary := &model.Summary{
		SummaryID:      uuid.New().String(),
		UserID:         userID,
		Content:        content,
		TodoCount:      stats.Total,
		CompletedCount: stats.Completed,
		PendingCount:   stats.Pending,
		Insights:       content,
		CreatedAt:      svc.now().UTC(),
	}
	if err := svc.summaries.UpsertSummary(ctx, summary); err != nil {
		return "", fmt.Errorf("failed to save summary: %w", err)
	}

	utils.TrackSummaryGeneration("generated")
	svc.logger.Info("summary generated", "user_id", userID, "todos", stats.Total, "elapsed", svc.now().Sub(start))

	if svc.live != nil {
		if err := svc.live.Publish(ctx, userID, services.LiveSummaryChanged); err != nil {
			svc.logger.Warn("failed to publish change", "user_id", userID, "error", err)
		}
	}
	return content, nil
}

// Latest returns nil without error when nothing was generated yet.
func (svc *SummaryService) Latest(ctx context.Context, userID string) (*model.Summary, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	summary, err := svc.summaries.GetLatestSummary(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load summary: %w", err)
	}
	return summary, nil
}
