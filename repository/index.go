package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SetupIndexes creates the lookup and uniqueness indexes every collection
// relies on. It is safe to run repeatedly.
func SetupIndexes(db *mongo.Database, names CollectionNames) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	todosIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "created_at", Value: -1},
				{Key: "seq", Value: -1},
			},
			Options: options.Index().
				SetName("user_todos_date").
				SetUnique(false),
		},
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "completed", Value: 1},
			},
			Options: options.Index().
				SetName("user_completed"),
		},
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "priority", Value: 1},
			},
			Options: options.Index().
				SetName("user_priority"),
		},
	}

	// One summary per user; the upsert in SummariesRepo depends on this.
	summaryIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().
				SetName("user_summary").
				SetUnique(true),
		},
	}

	userIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().
				SetName("user_id_index").
				SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "email", Value: 1}},
			Options: options.Index().
				SetName("user_email").
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"email": bson.M{"$type": "string"}}),
		},
	}

	sessionIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "is_active", Value: 1},
			},
			Options: options.Index().
				SetName("user_active_sessions"),
		},
		{
			Keys: bson.D{{Key: "session_id", Value: 1}},
			Options: options.Index().
				SetName("session_id_index").
				SetUnique(true),
		},
	}

	plan := []struct {
		collection string
		indexes    []mongo.IndexModel
	}{
		{names.Todos, todosIndexes},
		{names.Summaries, summaryIndexes},
		{names.Users, userIndexes},
		{names.Sessions, sessionIndexes},
	}

	for _, p := range plan {
		if _, err := db.Collection(p.collection).Indexes().CreateMany(ctx, p.indexes); err != nil {
			return fmt.Errorf("failed to create %s indexes: %w", p.collection, err)
		}
	}
	return nil
}
