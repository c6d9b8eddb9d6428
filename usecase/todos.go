package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SumanthSV/AI-Todo-summarizer/model"
	"github.com/SumanthSV/AI-Todo-summarizer/repository"
	"github.com/SumanthSV/AI-Todo-summarizer/services"
	"github.com/SumanthSV/AI-Todo-summarizer/utils"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
)

type CreateTodoInput struct {
	Title       string
	Description string
	Priority    model.Priority
	Category    string
	DueDate     *int64
}

type TodoService struct {
	repo   repository.TodoStore
	live   services.LiveBroker
	logger hclog.Logger
	now    func() time.Time
}

// NewTodoService wires the store and the broker that is told about writes.
// live may be nil.
func NewTodoService(repo repository.TodoStore, live services.LiveBroker, logger hclog.Logger) *TodoService {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &TodoService{
		repo:   repo,
		live:   live,
		logger: logger.Named("todos"),
		now:    time.Now,
	}
}

// List returns the caller's todos, newest first.
func (svc *TodoService) List(ctx context.Context, userID string) ([]*model.Todo, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	todos, err := svc.repo.GetUserTodos(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	if todos == nil {
		todos = []*model.Todo{}
	}
	return todos, nil
}

func (svc *TodoService) Stats(ctx context.Context, userID string) (model.TodoStats, error) {
	todos, err := svc.List(ctx, userID)
	if err != nil {
		return model.TodoStats{}, err
	}
	return ComputeStats(todos), nil
}

func (svc *TodoService) Create(ctx context.Context, userID string, input CreateTodoInput) (*model.Todo, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if !input.Priority.Valid() {
		return nil, fmt.Errorf("%w: invalid priority %q", ErrValidation, input.Priority)
	}

	todo := &model.Todo{
		TodoID:      uuid.New().String(),
		UserID:      userID,
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		Completed:   false,
		Priority:    input.Priority,
		Category:    strings.TrimSpace(input.Category),
		DueDate:     input.DueDate,
		CreatedAt:   svc.now().UTC(),
	}

	if err := svc.repo.CreateTodo(ctx, todo); err != nil {
		return nil, fmt.Errorf("failed to create todo: %w", err)
	}

	utils.TrackTodoOperation("create")
	svc.publish(ctx, userID)
	return todo, nil
}

// Toggle flips the completed flag of one of the caller's todos.
func (svc *TodoService) Toggle(ctx context.Context, userID, todoID string) error {
	if userID == "" {
		return ErrUnauthenticated
	}
	if err := svc.repo.ToggleTodoComplete(ctx, todoID, userID); err != nil {
		return svc.ownershipError("toggle", err)
	}

	utils.TrackTodoOperation("toggle")
	svc.publish(ctx, userID)
	return nil
}

func (svc *TodoService) Delete(ctx context.Context, userID, todoID string) error {
	if userID == "" {
		return ErrUnauthenticated
	}
	if err := svc.repo.DeleteTodo(ctx, todoID, userID); err != nil {
		return svc.ownershipError("delete", err)
	}

	utils.TrackTodoOperation("delete")
	svc.publish(ctx, userID)
	return nil
}

// A missing todo and one owned by someone else are indistinguishable.
func (svc *TodoService) ownershipError(op string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFoundOrUnauthorized
	}
	return fmt.Errorf("failed to %s todo: %w", op, err)
}

func (svc *TodoService) publish(ctx context.Context, userID string) {
	if svc.live == nil {
		return
	}
	if err := svc.live.Publish(ctx, userID, services.LiveTodosChanged); err != nil {
		svc.logger.Warn("failed to publish change", "user_id", userID, "error", err)
	}
}
