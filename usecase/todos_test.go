package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/SumanthSV/AI-Todo-summarizer/model"
	"github.com/SumanthSV/AI-Todo-summarizer/services"
	"github.com/SumanthSV/AI-Todo-summarizer/testutils"
	"github.com/SumanthSV/AI-Todo-summarizer/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTodosUsecaseTest(t *testing.T) (*usecase.TodoService, *services.MemoryBroker) {
	t.Helper()
	repos := testutils.SetupSQLite(t)
	broker := services.NewMemoryBroker()
	return usecase.NewTodoService(repos.Todos, broker, testutils.Logger()), broker
}

func TestTodoService(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		run  func(t *testing.T, svc *usecase.TodoService)
	}{
		{
			name: "create trims input and starts open",
			run: func(t *testing.T, svc *usecase.TodoService) {
				todo, err := svc.Create(ctx, "alice", usecase.CreateTodoInput{
					Title:       "  Buy milk  ",
					Description: " two litres ",
					Priority:    model.PriorityHigh,
					Category:    " errands ",
				})
				require.NoError(t, err)
				assert.NotEmpty(t, todo.TodoID)
				assert.Equal(t, "alice", todo.UserID)
				assert.Equal(t, "Buy milk", todo.Title)
				assert.Equal(t, "two litres", todo.Description)
				assert.Equal(t, "errands", todo.Category)
				assert.False(t, todo.Completed)

				todos, err := svc.List(ctx, "alice")
				require.NoError(t, err)
				require.Len(t, todos, 1)
				assert.Equal(t, todo.TodoID, todos[0].TodoID)
			},
		},
		{
			name: "blank title is a validation error",
			run: func(t *testing.T, svc *usecase.TodoService) {
				_, err := svc.Create(ctx, "alice", usecase.CreateTodoInput{Title: "   ", Priority: model.PriorityLow})
				assert.ErrorIs(t, err, usecase.ErrValidation)

				todos, err := svc.List(ctx, "alice")
				require.NoError(t, err)
				assert.Empty(t, todos)
			},
		},
		{
			name: "unknown priority is a validation error",
			run: func(t *testing.T, svc *usecase.TodoService) {
				_, err := svc.Create(ctx, "alice", usecase.CreateTodoInput{Title: "x", Priority: "urgent"})
				assert.ErrorIs(t, err, usecase.ErrValidation)
			},
		},
		{
			name: "missing caller is unauthenticated",
			run: func(t *testing.T, svc *usecase.TodoService) {
				_, err := svc.List(ctx, "")
				assert.ErrorIs(t, err, usecase.ErrUnauthenticated)
				_, err = svc.Create(ctx, "", usecase.CreateTodoInput{Title: "x", Priority: model.PriorityLow})
				assert.ErrorIs(t, err, usecase.ErrUnauthenticated)
				assert.ErrorIs(t, svc.Toggle(ctx, "", "id"), usecase.ErrUnauthenticated)
				assert.ErrorIs(t, svc.Delete(ctx, "", "id"), usecase.ErrUnauthenticated)
			},
		},
		{
			name: "toggle twice restores the original state",
			run: func(t *testing.T, svc *usecase.TodoService) {
				todo, err := svc.Create(ctx, "alice", usecase.CreateTodoInput{Title: "flip", Priority: model.PriorityLow})
				require.NoError(t, err)

				require.NoError(t, svc.Toggle(ctx, "alice", todo.TodoID))
				todos, err := svc.List(ctx, "alice")
				require.NoError(t, err)
				assert.True(t, todos[0].Completed)

				require.NoError(t, svc.Toggle(ctx, "alice", todo.TodoID))
				todos, err = svc.List(ctx, "alice")
				require.NoError(t, err)
				assert.False(t, todos[0].Completed)
			},
		},
		{
			name: "other users cannot see or change a todo",
			run: func(t *testing.T, svc *usecase.TodoService) {
				todo, err := svc.Create(ctx, "alice", usecase.CreateTodoInput{Title: "mine", Priority: model.PriorityMedium})
				require.NoError(t, err)

				todos, err := svc.List(ctx, "bob")
				require.NoError(t, err)
				assert.Empty(t, todos)

				assert.ErrorIs(t, svc.Toggle(ctx, "bob", todo.TodoID), usecase.ErrNotFoundOrUnauthorized)
				assert.ErrorIs(t, svc.Delete(ctx, "bob", todo.TodoID), usecase.ErrNotFoundOrUnauthorized)

				todos, err = svc.List(ctx, "alice")
				require.NoError(t, err)
				require.Len(t, todos, 1)
				assert.False(t, todos[0].Completed)
			},
		},
		{
			name: "unknown id is not found",
			run: func(t *testing.T, svc *usecase.TodoService) {
				assert.ErrorIs(t, svc.Toggle(ctx, "alice", "does-not-exist"), usecase.ErrNotFoundOrUnauthorized)
				assert.ErrorIs(t, svc.Delete(ctx, "alice", "does-not-exist"), usecase.ErrNotFoundOrUnauthorized)
			},
		},
		{
			name: "delete removes the todo",
			run: func(t *testing.T, svc *usecase.TodoService) {
				todo, err := svc.Create(ctx, "alice", usecase.CreateTodoInput{Title: "gone", Priority: model.PriorityLow})
				require.NoError(t, err)
				require.NoError(t, svc.Delete(ctx, "alice", todo.TodoID))

				todos, err := svc.List(ctx, "alice")
				require.NoError(t, err)
				assert.Empty(t, todos)
			},
		},
		{
			name: "stats follow the list",
			run: func(t *testing.T, svc *usecase.TodoService) {
				var ids []string
				for _, in := range []usecase.CreateTodoInput{
					{Title: "a", Priority: model.PriorityHigh},
					{Title: "b", Priority: model.PriorityHigh},
					{Title: "c", Priority: model.PriorityLow},
				} {
					todo, err := svc.Create(ctx, "alice", in)
					require.NoError(t, err)
					ids = append(ids, todo.TodoID)
				}
				// complete one of the high priority todos
				require.NoError(t, svc.Toggle(ctx, "alice", ids[0]))

				stats, err := svc.Stats(ctx, "alice")
				require.NoError(t, err)
				assert.Equal(t, model.TodoStats{Total: 3, Completed: 1, Pending: 2, HighPriority: 1}, stats)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := setupTodosUsecaseTest(t)
			tt.run(t, svc)
		})
	}
}

func TestTodoServicePublishesWrites(t *testing.T) {
	ctx := context.Background()
	svc, broker := setupTodosUsecaseTest(t)

	events, release, err := broker.Subscribe(ctx, "alice")
	require.NoError(t, err)
	defer release()

	todo, err := svc.Create(ctx, "alice", usecase.CreateTodoInput{Title: "watch me", Priority: model.PriorityLow})
	require.NoError(t, err)
	expectEvent(t, events, services.LiveTodosChanged)

	require.NoError(t, svc.Toggle(ctx, "alice", todo.TodoID))
	expectEvent(t, events, services.LiveTodosChanged)

	require.NoError(t, svc.Delete(ctx, "alice", todo.TodoID))
	expectEvent(t, events, services.LiveTodosChanged)

	// a rejected write says nothing
	assert.Error(t, svc.Toggle(ctx, "alice", todo.TodoID))
	select {
	case ev := <-events:
		t.Fatalf("unexpected event %+v", ev)
	case <-time.After(50 * time.Millisecond):
	}
}

func expectEvent(t *testing.T, events <-chan services.LiveEvent, kind string) {
	t.Helper()
	select {
	case ev := <-events:
		assert.Equal(t, kind, ev.Kind)
	case <-time.After(2 * time.Second):
		t.Fatalf("no %s event", kind)
	}
}

func TestComputeStats(t *testing.T) {
	todos := []*model.Todo{
		{Title: "a", Priority: model.PriorityHigh, Completed: true},
		{Title: "b", Priority: model.PriorityHigh},
		{Title: "c", Priority: model.PriorityMedium},
		{Title: "d", Priority: model.PriorityLow, Completed: true},
	}
	assert.Equal(t, model.TodoStats{Total: 4, Completed: 2, Pending: 2, HighPriority: 1}, usecase.ComputeStats(todos))
	assert.Equal(t, model.TodoStats{}, usecase.ComputeStats(nil))
}

func TestBuildPrompt(t *testing.T) {
	todos := []*model.Todo{
		{Title: "Write report", Priority: model.PriorityHigh, Description: "Q2 numbers", Category: "work"},
		{Title: "Call mom", Priority: model.PriorityLow, Completed: true},
	}
	stats := usecase.ComputeStats(todos)
	prompt := usecase.BuildPrompt(todos, stats)

	assert.Contains(t, prompt, "⏳ Write report (high priority) - Q2 numbers [work]\n✅ Call mom (low priority)\n")
	assert.Contains(t, prompt, "- Total todos: 2\n- Completed: 1\n- Pending: 1\n- High priority pending: 1\n")
	assert.Contains(t, prompt, "around 150-200 words.")
	assert.Equal(t, prompt, usecase.BuildPrompt(todos, stats))
}
