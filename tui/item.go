package tui

import (
	"strings"

	"github.com/SumanthSV/AI-Todo-summarizer/model"
)

// todoItem adapts a todo to bubbles/list.
type todoItem struct {
	todo *model.Todo
}

func (i todoItem) FilterValue() string { return i.todo.Title }

func (i todoItem) Title() string {
	if i.todo.Completed {
		return "✅ " + i.todo.Title
	}
	return "⏳ " + i.todo.Title
}

func (i todoItem) Description() string {
	parts := []string{priorityStyle(string(i.todo.Priority)).Render(string(i.todo.Priority))}
	if i.todo.Category != "" {
		parts = append(parts, "["+i.todo.Category+"]")
	}
	if i.todo.Description != "" {
		parts = append(parts, i.todo.Description)
	}
	return strings.Join(parts, " · ")
}
