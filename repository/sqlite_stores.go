package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/SumanthSV/AI-Todo-summarizer/model"
	"github.com/SumanthSV/AI-Todo-summarizer/utils"

	"github.com/jmoiron/sqlx"
)

type SQLiteTodos struct {
	db *sqlx.DB
}

func (s *SQLiteTodos) CreateTodo(ctx context.Context, todo *model.Todo) error {
	timer := utils.TrackDBOperation("insert", "todos")
	defer timer.ObserveDuration()

	if todo.UserID == "" || todo.TodoID == "" {
		return fmt.Errorf("%w: todo id and user id are required", ErrInvalidInput)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO todos (
			id, user_id, title, description, completed,
			priority, category, due_date, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		todo.TodoID, todo.UserID, todo.Title, todo.Description, todo.Completed,
		string(todo.Priority), todo.Category, todo.DueDate, todo.CreatedAt.UTC(),
	)
	if err != nil {
		utils.TrackError("database", "todo_creation_failed")
		if isUniqueViolation(err) {
			return ErrConflict
		}
		return fmt.Errorf("creating todo: %w", err)
	}
	return nil
}

func (s *SQLiteTodos) GetUserTodos(ctx context.Context, userID string) ([]*model.Todo, error) {
	timer := utils.TrackDBOperation("find", "todos")
	defer timer.ObserveDuration()

	todos := []*model.Todo{}
	err := s.db.SelectContext(ctx, &todos,
		"SELECT * FROM todos WHERE user_id = ? ORDER BY created_at DESC, rowid DESC", userID)
	if err != nil {
		utils.TrackError("database", "todo_fetch_failed")
		return nil, fmt.Errorf("listing todos: %w", err)
	}
	return todos, nil
}

func (s *SQLiteTodos) ToggleTodoComplete(ctx context.Context, todoID, userID string) error {
	timer := utils.TrackDBOperation("update", "todos")
	defer timer.ObserveDuration()

	result, err := s.db.ExecContext(ctx,
		"UPDATE todos SET completed = NOT completed WHERE id = ? AND user_id = ?", todoID, userID)
	if err != nil {
		utils.TrackError("database", "todo_update_failed")
		return fmt.Errorf("toggling todo: %w", err)
	}
	return expectOneRow(result)
}

func (s *SQLiteTodos) DeleteTodo(ctx context.Context, todoID, userID string) error {
	timer := utils.TrackDBOperation("delete", "todos")
	defer timer.ObserveDuration()

	result, err := s.db.ExecContext(ctx,
		"DELETE FROM todos WHERE id = ? AND user_id = ?", todoID, userID)
	if err != nil {
		utils.TrackError("database", "todo_deletion_failed")
		return fmt.Errorf("deleting todo: %w", err)
	}
	return expectOneRow(result)
}

type SQLiteSummaries struct {
	db *sqlx.DB
}

func (s *SQLiteSummaries) UpsertSummary(ctx context.Context, summary *model.Summary) error {
	timer := utils.TrackDBOperation("upsert", "summaries")
	defer timer.ObserveDuration()

	if summary.UserID == "" || summary.SummaryID == "" {
		return fmt.Errorf("%w: summary id and user id are required", ErrInvalidInput)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO summaries (
			id, user_id, content, todo_count, completed_count,
			pending_count, insights, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			id = excluded.id,
			content = excluded.content,
			todo_count = excluded.todo_count,
			completed_count = excluded.completed_count,
			pending_count = excluded.pending_count,
			insights = excluded.insights,
			created_at = excluded.created_at`,
		summary.SummaryID, summary.UserID, summary.Content, summary.TodoCount,
		summary.CompletedCount, summary.PendingCount, summary.Insights, summary.CreatedAt.UTC(),
	)
	if err != nil {
		utils.TrackError("database", "summary_upsert_failed")
		return fmt.Errorf("upserting summary: %w", err)
	}
	return nil
}

func (s *SQLiteSummaries) GetLatestSummary(ctx context.Context, userID string) (*model.Summary, error) {
	timer := utils.TrackDBOperation("find", "summaries")
	defer timer.ObserveDuration()

	var summary model.Summary
	err := s.db.GetContext(ctx, &summary,
		"SELECT * FROM summaries WHERE user_id = ? ORDER BY created_at DESC LIMIT 1", userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		utils.TrackError("database", "summary_fetch_failed")
		return nil, fmt.Errorf("getting summary: %w", err)
	}
	return &summary, nil
}

func (s *SQLiteSummaries) CountUserSummaries(ctx context.Context, userID string) (int, error) {
	var count int
	if err := s.db.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM summaries WHERE user_id = ?", userID); err != nil {
		return 0, fmt.Errorf("counting summaries: %w", err)
	}
	return count, nil
}

type SQLiteUsers struct {
	db *sqlx.DB
}

const userColumns = "id, COALESCE(email, '') AS email, password, anonymous, created_at"

func (s *SQLiteUsers) AddUser(ctx context.Context, user *model.User) error {
	timer := utils.TrackDBOperation("insert", "users")
	defer timer.ObserveDuration()

	if user.UserID == "" || (!user.Anonymous && (user.Email == "" || user.Password == "")) {
		return fmt.Errorf("%w: user id, email and password required", ErrInvalidInput)
	}

	var email any
	if user.Email != "" {
		email = user.Email
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO users (id, email, password, anonymous, created_at) VALUES (?, ?, ?, ?, ?)",
		user.UserID, email, user.Password, user.Anonymous, user.CreatedAt.UTC(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			utils.TrackError("database", "duplicate_user")
			return ErrConflict
		}
		utils.TrackError("database", "user_creation_failed")
		return fmt.Errorf("creating user: %w", err)
	}

	utils.TrackRegistration(user.Anonymous)
	return nil
}

func (s *SQLiteUsers) FindUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.findOne(ctx, "SELECT "+userColumns+" FROM users WHERE email = ?", email)
}

func (s *SQLiteUsers) FindUser(ctx context.Context, userID string) (*model.User, error) {
	return s.findOne(ctx, "SELECT "+userColumns+" FROM users WHERE id = ?", userID)
}

func (s *SQLiteUsers) findOne(ctx context.Context, query string, arg string) (*model.User, error) {
	timer := utils.TrackDBOperation("find", "users")
	defer timer.ObserveDuration()

	var user model.User
	if err := s.db.GetContext(ctx, &user, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		utils.TrackError("database", "user_lookup_error")
		return nil, fmt.Errorf("finding user: %w", err)
	}
	return &user, nil
}

type SQLiteSessions struct {
	db *sqlx.DB
}

func (s *SQLiteSessions) CreateSession(ctx context.Context, session *model.Session) error {
	timer := utils.TrackDBOperation("insert", "sessions")
	defer timer.ObserveDuration()

	if session == nil || session.SessionID == "" || session.UserID == "" {
		return fmt.Errorf("%w: session id and user id are required", ErrInvalidInput)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (
			id, user_id, created_at, expires_at, last_activity_at,
			device_info, ip_address, is_active
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		session.SessionID, session.UserID, session.CreatedAt.UTC(), session.ExpiresAt.UTC(),
		session.LastActivityAt.UTC(), session.DeviceInfo, session.IPAddress, session.IsActive,
	)
	if err != nil {
		utils.TrackError("database", "session_creation_failed")
		return fmt.Errorf("creating session: %w", err)
	}
	return nil
}

func (s *SQLiteSessions) GetUserActiveSessions(ctx context.Context, userID string) ([]*model.Session, error) {
	timer := utils.TrackDBOperation("find", "sessions")
	defer timer.ObserveDuration()

	sessions := []*model.Session{}
	err := s.db.SelectContext(ctx, &sessions, `
		SELECT * FROM sessions
		WHERE user_id = ? AND is_active = 1 AND expires_at > ?
		ORDER BY last_activity_at DESC`,
		userID, time.Now().UTC(),
	)
	if err != nil {
		utils.TrackError("database", "session_fetch_failed")
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	return sessions, nil
}

func (s *SQLiteSessions) EndSession(ctx context.Context, sessionID, userID string) error {
	timer := utils.TrackDBOperation("update", "sessions")
	defer timer.ObserveDuration()

	result, err := s.db.ExecContext(ctx,
		"UPDATE sessions SET is_active = 0, last_activity_at = ? WHERE id = ? AND user_id = ?",
		time.Now().UTC(), sessionID, userID)
	if err != nil {
		utils.TrackError("database", "session_update_failed")
		return fmt.Errorf("ending session: %w", err)
	}
	return expectOneRow(result)
}

func expectOneRow(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
