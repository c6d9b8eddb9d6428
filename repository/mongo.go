package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/SumanthSV/AI-Todo-summarizer/config"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type CollectionNames struct {
	Todos     string
	Summaries string
	Users     string
	Sessions  string
}

func CollectionNamesFrom(cfg config.DatabaseConfig) CollectionNames {
	return CollectionNames{
		Todos:     cfg.TodosCollection,
		Summaries: cfg.SummariesCollection,
		Users:     cfg.UsersCollection,
		Sessions:  cfg.SessionsCollection,
	}
}

// ConnectMongo opens a pooled client and verifies it with a ping.
func ConnectMongo(ctx context.Context, cfg config.DatabaseConfig) (*mongo.Client, error) {
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetMaxPoolSize(cfg.MaxPoolSize).
		SetMinPoolSize(cfg.MinPoolSize).
		SetMaxConnIdleTime(cfg.MaxConnIdleTime).
		SetRetryWrites(cfg.RetryWrites)

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	return client, nil
}

// NewMongoRepos wires every store to its collection in db.
func NewMongoRepos(client *mongo.Client, dbName string, names CollectionNames) *Repos {
	db := client.Database(dbName)
	return &Repos{
		Todos:     GetTodosRepo(db, names.Todos),
		Summaries: GetSummariesRepo(db, names.Summaries),
		Users:     GetUserRepo(db, names.Users),
		Sessions:  GetSessionRepo(db, names.Sessions),
		ping: func(ctx context.Context) error {
			return client.Ping(ctx, readpref.Primary())
		},
		close: client.Disconnect,
	}
}
