package config

import (
	"time"

	"github.com/spf13/viper"
)

type DatabaseConfig struct {
	// Driver is "mongo" or "sqlite".
	Driver string

	URI             string
	MaxPoolSize     uint64
	MinPoolSize     uint64
	MaxConnIdleTime time.Duration
	DatabaseName    string
	RetryWrites     bool

	TodosCollection     string
	SummariesCollection string
	UsersCollection     string
	SessionsCollection  string

	SQLitePath string
}

func setDatabaseDefaults(v *viper.Viper) {
	v.SetDefault("STORE_DRIVER", "mongo")
	v.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGO_MAX_POOL_SIZE", 100)
	v.SetDefault("MONGO_MIN_POOL_SIZE", 10)
	v.SetDefault("MONGO_MAX_CONN_IDLE_TIME", 60)
	v.SetDefault("MONGO_DB", "todo_summarizer")
	v.SetDefault("MONGO_RETRY_WRITES", true)
	v.SetDefault("TODOS_COLLECTION", "todos")
	v.SetDefault("SUMMARIES_COLLECTION", "summaries")
	v.SetDefault("USERS_COLLECTION", "users")
	v.SetDefault("SESSION_COLLECTION", "sessions")
	v.SetDefault("SQLITE_PATH", "todos.db")
}

func loadDatabaseConfig(v *viper.Viper) DatabaseConfig {
	return DatabaseConfig{
		Driver:              v.GetString("STORE_DRIVER"),
		URI:                 v.GetString("MONGO_URI"),
		MaxPoolSize:         v.GetUint64("MONGO_MAX_POOL_SIZE"),
		MinPoolSize:         v.GetUint64("MONGO_MIN_POOL_SIZE"),
		MaxConnIdleTime:     time.Duration(v.GetInt("MONGO_MAX_CONN_IDLE_TIME")) * time.Second,
		DatabaseName:        v.GetString("MONGO_DB"),
		RetryWrites:         v.GetBool("MONGO_RETRY_WRITES"),
		TodosCollection:     v.GetString("TODOS_COLLECTION"),
		SummariesCollection: v.GetString("SUMMARIES_COLLECTION"),
		UsersCollection:     v.GetString("USERS_COLLECTION"),
		SessionsCollection:  v.GetString("SESSION_COLLECTION"),
		SQLitePath:          v.GetString("SQLITE_PATH"),
	}
}
