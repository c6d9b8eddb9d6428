// Package testutils holds fixtures shared by the package tests.
package testutils

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/SumanthSV/AI-Todo-summarizer/config"
	"github.com/SumanthSV/AI-Todo-summarizer/repository"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// FixedTime is a clock that always reads the same instant.
type FixedTime struct {
	Fixed time.Time
}

func (ft FixedTime) Now() time.Time {
	return ft.Fixed
}

// Logger returns a logger that discards everything unless TEST_LOG is set.
func Logger() hclog.Logger {
	if os.Getenv("TEST_LOG") == "" {
		return hclog.NewNullLogger()
	}
	return hclog.New(&hclog.LoggerOptions{Name: "test", Level: hclog.Debug})
}

// SetupSQLite returns stores backed by a private in-memory database that is
// closed when the test ends.
func SetupSQLite(t *testing.T) *repository.Repos {
	t.Helper()

	db, err := repository.OpenSQLite(":memory:")
	require.NoError(t, err)

	repos := repository.NewSQLiteRepos(db)
	t.Cleanup(func() {
		_ = repos.Close(context.Background())
	})
	return repos
}

// SetupMongo connects to the server in TEST_MONGO_URI and returns stores in
// a throwaway database that is dropped afterwards. The test is skipped when
// the variable is unset.
func SetupMongo(t *testing.T) *repository.Repos {
	t.Helper()

	uri := os.Getenv("TEST_MONGO_URI")
	if uri == "" {
		t.Skip("TEST_MONGO_URI not set")
	}

	cfg := config.DatabaseConfig{
		Driver:              config.DriverMongo,
		URI:                 uri,
		MaxPoolSize:         10,
		MinPoolSize:         1,
		MaxConnIdleTime:     time.Minute,
		DatabaseName:        "todos_test_" + uuid.New().String()[:8],
		RetryWrites:         true,
		TodosCollection:     "todos",
		SummariesCollection: "summaries",
		UsersCollection:     "users",
		SessionsCollection:  "sessions",
	}

	ctx := context.Background()
	client, err := repository.ConnectMongo(ctx, cfg)
	require.NoError(t, err)

	names := repository.CollectionNamesFrom(cfg)
	require.NoError(t, repository.SetupIndexes(client.Database(cfg.DatabaseName), names))

	t.Cleanup(func() {
		if err := client.Database(cfg.DatabaseName).Drop(context.Background()); err != nil {
			t.Logf("Warning: failed to drop test database: %v", err)
		}
		_ = client.Disconnect(context.Background())
	})
	return repository.NewMongoRepos(client, cfg.DatabaseName, names)
}

// MockCompleter is a testify mock of services.Completer.
type MockCompleter struct {
	mock.Mock
}

func (m *MockCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}
