package repository

import (
	"context"

	"github.com/SumanthSV/AI-Todo-summarizer/model"
)

// TodoStore persists todos. Reads are always scoped to one owner; writes
// match on both the todo id and the owner id.
type TodoStore interface {
	CreateTodo(ctx context.Context, todo *model.Todo) error
	// GetUserTodos returns the user's todos newest first.
	GetUserTodos(ctx context.Context, userID string) ([]*model.Todo, error)
	ToggleTodoComplete(ctx context.Context, todoID, userID string) error
	DeleteTodo(ctx context.Context, todoID, userID string) error
}

// SummaryStore keeps a single summary per user.
type SummaryStore interface {
	UpsertSummary(ctx context.Context, summary *model.Summary) error
	// GetLatestSummary returns nil, nil when the user has no summary.
	GetLatestSummary(ctx context.Context, userID string) (*model.Summary, error)
	CountUserSummaries(ctx context.Context, userID string) (int, error)
}

type UserStore interface {
	AddUser(ctx context.Context, user *model.User) error
	// FindUserByEmail and FindUser return nil, nil when nothing matches.
	FindUserByEmail(ctx context.Context, email string) (*model.User, error)
	FindUser(ctx context.Context, userID string) (*model.User, error)
}

type SessionStore interface {
	CreateSession(ctx context.Context, session *model.Session) error
	GetUserActiveSessions(ctx context.Context, userID string) ([]*model.Session, error)
	EndSession(ctx context.Context, sessionID, userID string) error
}

// Repos bundles one backend's stores.
type Repos struct {
	Todos     TodoStore
	Summaries SummaryStore
	Users     UserStore
	Sessions  SessionStore

	ping  func(ctx context.Context) error
	close func(ctx context.Context) error
}

// Ping checks that the backing database answers.
func (r *Repos) Ping(ctx context.Context) error {
	if r.ping == nil {
		return nil
	}
	return r.ping(ctx)
}

func (r *Repos) Close(ctx context.Context) error {
	if r.close == nil {
		return nil
	}
	return r.close(ctx)
}
