package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/SumanthSV/AI-Todo-summarizer/config"
	"github.com/SumanthSV/AI-Todo-summarizer/repository"
	"github.com/SumanthSV/AI-Todo-summarizer/services"
	"github.com/SumanthSV/AI-Todo-summarizer/usecase"
	"github.com/SumanthSV/AI-Todo-summarizer/utils"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/go-hclog"
)

// server holds everything serve needs and what has to be closed after.
type server struct {
	router  *gin.Engine
	repos   *repository.Repos
	closers []func() error
}

func (s *server) Close(ctx context.Context) error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		errs = append(errs, s.closers[i]())
	}
	if s.repos != nil {
		errs = append(errs, s.repos.Close(ctx))
	}
	return errors.Join(errs...)
}

// openRepos connects the configured store. For Mongo it also makes sure
// the indexes exist.
func openRepos(ctx context.Context, cfg config.DatabaseConfig, logger hclog.Logger) (*repository.Repos, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		db, err := repository.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		logger.Info("using sqlite store", "path", cfg.SQLitePath)
		return repository.NewSQLiteRepos(db), nil
	case config.DriverMongo:
		client, err := repository.ConnectMongo(ctx, cfg)
		if err != nil {
			return nil, err
		}
		names := repository.CollectionNamesFrom(cfg)
		if err := repository.SetupIndexes(client.Database(cfg.DatabaseName), names); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, fmt.Errorf("failed to set up indexes: %w", err)
		}
		logger.Info("connected to mongodb", "database", cfg.DatabaseName)
		return repository.NewMongoRepos(client, cfg.DatabaseName, names), nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
}

func newServer(ctx context.Context, cfg *config.Config, logger hclog.Logger) (*server, error) {
	utils.InitValidator()
	gin.SetMode(cfg.Server.GinMode)

	repos, err := openRepos(ctx, cfg.Database, logger)
	if err != nil {
		return nil, err
	}
	srv := &server{repos: repos}

	var (
		broker    services.LiveBroker
		blacklist services.TokenBlacklist
	)
	if cfg.Redis.URL != "" {
		client, err := services.NewRedisClient(ctx, cfg.Redis.URL)
		if err != nil {
			_ = srv.Close(ctx)
			return nil, err
		}
		srv.closers = append(srv.closers, client.Close)
		broker = services.NewRedisBroker(client, logger)
		blacklist = services.NewRedisTokenBlacklist(client)
		logger.Info("live events over redis")
	} else {
		broker = services.NewMemoryBroker()
		logger.Warn("REDIS_URL not set, live events stay in process and logout cannot revoke tokens")
	}

	completer, err := services.NewCompleter(ctx, cfg.LLM)
	if err != nil {
		_ = srv.Close(ctx)
		return nil, err
	}
	if closer, ok := completer.(interface{ Close() error }); ok {
		srv.closers = append(srv.closers, closer.Close)
	}

	tokens := services.NewTokenService(cfg.Auth.JWTSecretKey, cfg.Auth.JWTExpiration)
	todos := usecase.NewTodoService(repos.Todos, broker, logger)
	summaries := usecase.NewSummaryService(repos.Todos, repos.Summaries, completer, broker, logger,
		usecase.SummaryConfig{Timeout: cfg.LLM.Timeout})
	users := usecase.NewUserService(repos.Users, repos.Sessions, tokens, blacklist, cfg.Auth.SessionDuration, logger)

	srv.router = setupRouter(routerDeps{
		logger:       logger,
		repos:        repos,
		tokens:       tokens,
		blacklist:    blacklist,
		broker:       broker,
		todos:        todos,
		summaries:    summaries,
		users:        users,
		maxBodyBytes: cfg.Server.MaxBodyBytes,
	})
	return srv, nil
}
