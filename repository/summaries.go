package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/SumanthSV/AI-Todo-summarizer/model"
	"github.com/SumanthSV/AI-Todo-summarizer/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type SummariesRepo struct {
	MongoCollection *mongo.Collection
}

func GetSummariesRepo(db *mongo.Database, collectionName string) *SummariesRepo {
	return &SummariesRepo{
		MongoCollection: db.Collection(collectionName),
	}
}

// UpsertSummary writes the user's summary in one round trip. The unique
// user_id index guarantees a single document per user; the document id is
// assigned on first insert and kept on later replacements.
func (r *SummariesRepo) UpsertSummary(ctx context.Context, summary *model.Summary) error {
	timer := utils.TrackDBOperation("upsert", "summaries")
	defer timer.ObserveDuration()

	if summary.UserID == "" {
		utils.TrackError("database", "missing_user_id")
		return fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	update := bson.M{
		"$set": bson.M{
			"content":         summary.Content,
			"todo_count":      summary.TodoCount,
			"completed_count": summary.CompletedCount,
			"pending_count":   summary.PendingCount,
			"insights":        summary.Insights,
			"created_at":      summary.CreatedAt,
		},
		"$setOnInsert": bson.M{"_id": summary.SummaryID},
	}

	_, err := r.MongoCollection.UpdateOne(ctx,
		bson.M{"user_id": summary.UserID},
		update,
		options.Update().SetUpsert(true),
	)
	if err != nil {
		utils.TrackError("database", "summary_upsert_failed")
		return fmt.Errorf("upsert summary: %w", err)
	}
	return nil
}

func (r *SummariesRepo) GetLatestSummary(ctx context.Context, userID string) (*model.Summary, error) {
	timer := utils.TrackDBOperation("find", "summaries")
	defer timer.ObserveDuration()

	var summary model.Summary
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})
	err := r.MongoCollection.FindOne(ctx, bson.M{"user_id": userID}, opts).Decode(&summary)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		utils.TrackError("database", "summary_fetch_failed")
		return nil, fmt.Errorf("find summary: %w", err)
	}
	return &summary, nil
}

func (r *SummariesRepo) CountUserSummaries(ctx context.Context, userID string) (int, error) {
	timer := utils.TrackDBOperation("count", "summaries")
	defer timer.ObserveDuration()

	count, err := r.MongoCollection.CountDocuments(ctx, bson.M{"user_id": userID})
	if err != nil {
		utils.TrackError("database", "summary_count_failed")
		return 0, fmt.Errorf("count summaries: %w", err)
	}
	return int(count), nil
}
