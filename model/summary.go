package model

import "time"

// Summary is the latest AI-generated overview for a user. There is at most
// one per user; a new generation replaces the previous one.
type Summary struct {
	SummaryID      string    `bson:"_id,omitempty" json:"id" db:"id"`
	UserID         string    `bson:"user_id" json:"user_id" db:"user_id"`
	Content        string    `bson:"content" json:"content" db:"content"`
	TodoCount      int       `bson:"todo_count" json:"todo_count" db:"todo_count"`
	CompletedCount int       `bson:"completed_count" json:"completed_count" db:"completed_count"`
	PendingCount   int       `bson:"pending_count" json:"pending_count" db:"pending_count"`
	Insights       string    `bson:"insights" json:"insights" db:"insights"`
	CreatedAt      time.Time `bson:"created_at" json:"created_at" db:"created_at"`
}
