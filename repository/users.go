package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/SumanthSV/AI-Todo-summarizer/model"
	"github.com/SumanthSV/AI-Todo-summarizer/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type UserRepo struct {
	MongoCollection *mongo.Collection
}

func GetUserRepo(db *mongo.Database, collectionName string) *UserRepo {
	return &UserRepo{
		MongoCollection: db.Collection(collectionName),
	}
}

func (r *UserRepo) AddUser(ctx context.Context, user *model.User) error {
	timer := utils.TrackDBOperation("insert", "users")
	defer timer.ObserveDuration()

	if user.UserID == "" || (!user.Anonymous && (user.Email == "" || user.Password == "")) {
		utils.TrackError("database", "invalid_user_data")
		return fmt.Errorf("%w: user id, email and password required", ErrInvalidInput)
	}

	if _, err := r.MongoCollection.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			utils.TrackError("database", "duplicate_user")
			return ErrConflict
		}
		utils.TrackError("database", "user_creation_failed")
		return fmt.Errorf("insert user: %w", err)
	}

	utils.TrackRegistration(user.Anonymous)
	return nil
}

func (r *UserRepo) FindUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findOne(ctx, bson.D{{Key: "email", Value: email}})
}

func (r *UserRepo) FindUser(ctx context.Context, userID string) (*model.User, error) {
	return r.findOne(ctx, bson.D{{Key: "user_id", Value: userID}})
}

func (r *UserRepo) findOne(ctx context.Context, filter bson.D) (*model.User, error) {
	timer := utils.TrackDBOperation("find", "users")
	defer timer.ObserveDuration()

	var user model.User
	err := r.MongoCollection.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		utils.TrackError("database", "user_lookup_error")
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}
