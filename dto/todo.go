package dto

import "github.com/SumanthSV/AI-Todo-summarizer/model"

type CreateTodoRequest struct {
	Title       string         `json:"title" binding:"required"`
	Description string         `json:"description"`
	Priority    model.Priority `json:"priority" binding:"required,priority"`
	Category    string         `json:"category"`
	DueDate     *int64         `json:"due_date"` // epoch millis
}

type CreateTodoResponse struct {
	ID   string      `json:"id"`
	Todo *model.Todo `json:"todo"`
}

type TodosResponse struct {
	Todos []*model.Todo `json:"todos"`
}

type SummaryResponse struct {
	Summary string `json:"summary"`
}

// LatestSummaryResponse carries a nil Summary when none was generated yet.
type LatestSummaryResponse struct {
	Summary *model.Summary `json:"summary"`
}

// Names of the events on the live stream. Each carries the full current
// value, never a delta.
const (
	EventTodos   = "todos"   // []*model.Todo
	EventStats   = "stats"   // model.TodoStats
	EventSummary = "summary" // LatestSummaryResponse
)
