package model

import "time"

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid reports whether p is one of the three known priority levels.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Todo is a single task owned by exactly one user. Priority and UserID are
// fixed at creation; Completed is the only field that changes afterwards.
type Todo struct {
	TodoID      string    `bson:"_id,omitempty" json:"id" db:"id"`
	UserID      string    `bson:"user_id" json:"user_id" db:"user_id"`
	Title       string    `bson:"title" json:"title" db:"title"`
	Description string    `bson:"description,omitempty" json:"description,omitempty" db:"description"`
	Completed   bool      `bson:"completed" json:"completed" db:"completed"`
	Priority    Priority  `bson:"priority" json:"priority" db:"priority"`
	Category    string    `bson:"category,omitempty" json:"category,omitempty" db:"category"`
	DueDate     *int64    `bson:"due_date,omitempty" json:"due_date,omitempty" db:"due_date"` // epoch millis
	CreatedAt   time.Time `bson:"created_at" json:"created_at" db:"created_at"`
}

type TodoStats struct {
	Total        int `json:"total"`
	Completed    int `json:"completed"`
	Pending      int `json:"pending"`
	HighPriority int `json:"high_priority"` // high priority and not completed
}
