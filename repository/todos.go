package repository

import (
	"context"
	"fmt"

	"github.com/SumanthSV/AI-Todo-summarizer/model"
	"github.com/SumanthSV/AI-Todo-summarizer/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type TodosRepo struct {
	MongoCollection *mongo.Collection
}

// todoDocument is the stored form of a todo. Seq orders todos that share a
// created_at millisecond by insertion.
type todoDocument struct {
	model.Todo `bson:",inline"`
	Seq        primitive.ObjectID `bson:"seq"`
}

// Retrieves MongoDB collection for todos
func GetTodosRepo(db *mongo.Database, collectionName string) *TodosRepo {
	return &TodosRepo{
		MongoCollection: db.Collection(collectionName),
	}
}

// Add a new todo (following the model) into the database
func (r *TodosRepo) CreateTodo(ctx context.Context, todo *model.Todo) error {
	timer := utils.TrackDBOperation("insert", "todos")
	defer timer.ObserveDuration()

	if todo.UserID == "" || todo.TodoID == "" {
		utils.TrackError("database", "missing_todo_keys")
		return fmt.Errorf("%w: todo id and user id are required", ErrInvalidInput)
	}

	doc := todoDocument{Todo: *todo, Seq: primitive.NewObjectID()}
	if _, err := r.MongoCollection.InsertOne(ctx, doc); err != nil {
		utils.TrackError("database", "todo_creation_failed")
		if mongo.IsDuplicateKeyError(err) {
			return ErrConflict
		}
		return fmt.Errorf("insert todo: %w", err)
	}
	return nil
}

// Retrieves all todos based on the User ID, newest first
func (r *TodosRepo) GetUserTodos(ctx context.Context, userID string) ([]*model.Todo, error) {
	timer := utils.TrackDBOperation("find", "todos")
	defer timer.ObserveDuration()

	opts := options.Find().SetSort(bson.D{
		{Key: "created_at", Value: -1},
		{Key: "seq", Value: -1},
	})
	cursor, err := r.MongoCollection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		utils.TrackError("database", "todo_fetch_failed")
		return nil, fmt.Errorf("find todos: %w", err)
	}
	defer cursor.Close(ctx)

	todos := []*model.Todo{}
	if err = cursor.All(ctx, &todos); err != nil {
		utils.TrackError("database", "todo_decode_failed")
		return nil, fmt.Errorf("decode todos: %w", err)
	}
	return todos, nil
}

// ToggleTodoComplete flips completed in a single update pipeline.
func (r *TodosRepo) ToggleTodoComplete(ctx context.Context, todoID, userID string) error {
	timer := utils.TrackDBOperation("update", "todos")
	defer timer.ObserveDuration()

	filter := bson.M{
		"_id":     todoID,
		"user_id": userID,
	}
	flip := mongo.Pipeline{
		{{Key: "$set", Value: bson.D{
			{Key: "completed", Value: bson.D{{Key: "$not", Value: bson.A{"$completed"}}}},
		}}},
	}

	result, err := r.MongoCollection.UpdateOne(ctx, filter, flip)
	if err != nil {
		utils.TrackError("database", "todo_update_failed")
		return fmt.Errorf("toggle todo: %w", err)
	}
	if result.MatchedCount == 0 {
		utils.TrackError("database", "todo_not_found")
		return ErrNotFound
	}
	return nil
}

// Removes a specific todo from database
func (r *TodosRepo) DeleteTodo(ctx context.Context, todoID, userID string) error {
	timer := utils.TrackDBOperation("delete", "todos")
	defer timer.ObserveDuration()

	filter := bson.M{
		"_id":     todoID,
		"user_id": userID,
	}

	result, err := r.MongoCollection.DeleteOne(ctx, filter)
	if err != nil {
		utils.TrackError("database", "todo_deletion_failed")
		return fmt.Errorf("delete todo: %w", err)
	}
	if result.DeletedCount == 0 {
		utils.TrackError("database", "todo_not_found")
		return ErrNotFound
	}
	return nil
}
