package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/SumanthSV/AI-Todo-summarizer/model"
	"github.com/SumanthSV/AI-Todo-summarizer/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type SessionRepo struct {
	MongoCollection *mongo.Collection
}

func GetSessionRepo(db *mongo.Database, collectionName string) *SessionRepo {
	return &SessionRepo{
		MongoCollection: db.Collection(collectionName),
	}
}

func (r *SessionRepo) CreateSession(ctx context.Context, session *model.Session) error {
	timer := utils.TrackDBOperation("insert", "sessions")
	defer timer.ObserveDuration()

	if session == nil || session.SessionID == "" || session.UserID == "" {
		utils.TrackError("database", "invalid_session_data")
		return fmt.Errorf("%w: session id and user id are required", ErrInvalidInput)
	}

	if _, err := r.MongoCollection.InsertOne(ctx, session); err != nil {
		utils.TrackError("database", "session_creation_failed")
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

// Active sessions that have not expired, most recently used first
func (r *SessionRepo) GetUserActiveSessions(ctx context.Context, userID string) ([]*model.Session, error) {
	timer := utils.TrackDBOperation("find", "sessions")
	defer timer.ObserveDuration()

	filter := bson.M{
		"user_id":    userID,
		"is_active":  true,
		"expires_at": bson.M{"$gt": time.Now()},
	}
	opts := options.Find().SetSort(bson.D{{Key: "last_activity_at", Value: -1}})

	cursor, err := r.MongoCollection.Find(ctx, filter, opts)
	if err != nil {
		utils.TrackError("database", "session_fetch_failed")
		return nil, fmt.Errorf("find sessions: %w", err)
	}
	defer cursor.Close(ctx)

	sessions := []*model.Session{}
	if err := cursor.All(ctx, &sessions); err != nil {
		utils.TrackError("database", "session_decode_failed")
		return nil, fmt.Errorf("decode sessions: %w", err)
	}
	return sessions, nil
}

func (r *SessionRepo) EndSession(ctx context.Context, sessionID, userID string) error {
	timer := utils.TrackDBOperation("update", "sessions")
	defer timer.ObserveDuration()

	result, err := r.MongoCollection.UpdateOne(ctx,
		bson.M{"session_id": sessionID, "user_id": userID},
		bson.M{"$set": bson.M{"is_active": false, "last_activity_at": time.Now()}},
	)
	if err != nil {
		utils.TrackError("database", "session_update_failed")
		return fmt.Errorf("end session: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
