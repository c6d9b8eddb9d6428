package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/SumanthSV/AI-Todo-summarizer/client"
	"github.com/SumanthSV/AI-Todo-summarizer/config"
	"github.com/SumanthSV/AI-Todo-summarizer/repository"
	"github.com/SumanthSV/AI-Todo-summarizer/tui"
	"github.com/SumanthSV/AI-Todo-summarizer/utils"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
)

var (
	version   = "0.1.0"
	logLevel  string
	logFormat string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "todo-summarizer",
	Short: "Todo list service with AI-generated productivity summaries",
	Long: `todo-summarizer serves a personal todo list API with live updates
and an LLM-written summary of the list. The same binary ships a terminal
client for the API.`,
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("todo-summarizer %s\n", version)
		fmt.Printf("Go version: %s\n", runtime.Version())
		fmt.Printf("OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration:\n%w", err)
		}
		return runServe(cmd.Context(), cfg, logger)
	},
}

var indexesCmd = &cobra.Command{
	Use:   "indexes",
	Short: "Create the MongoDB indexes and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		client, err := repository.ConnectMongo(cmd.Context(), cfg.Database)
		if err != nil {
			return err
		}
		defer client.Disconnect(context.Background())

		if err := repository.SetupIndexes(client.Database(cfg.Database.DatabaseName), repository.CollectionNamesFrom(cfg.Database)); err != nil {
			return err
		}
		logger.Info("indexes ready", "database", cfg.Database.DatabaseName)
		return nil
	},
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the terminal client",
	RunE: func(cmd *cobra.Command, args []string) error {
		serverURL, _ := cmd.Flags().GetString("server")
		outDir, _ := cmd.Flags().GetString("export-dir")

		api := client.New(serverURL)
		store := client.NewTokenStore(serverURL)
		return tui.Run(cmd.Context(), api, store, tui.Options{ExportDir: outDir})
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (trace, debug, info, warn, error); overrides LOG_LEVEL")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format (text, json); overrides LOG_FORMAT")

	tuiCmd.Flags().String("server", "http://localhost:8080", "API base URL")
	tuiCmd.Flags().String("export-dir", ".", "directory PDF exports are written to")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(indexesCmd)
	rootCmd.AddCommand(tuiCmd)
}

func loadConfig(cmd *cobra.Command) (*config.Config, hclog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if logFormat != "" {
		cfg.Log.Format = logFormat
	}
	return cfg, utils.NewLogger("todo-summarizer", cfg.Log.Level, cfg.Log.Format), nil
}

func runServe(ctx context.Context, cfg *config.Config, logger hclog.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := newServer(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := srv.Close(context.Background()); err != nil {
			logger.Warn("error during cleanup", "error", err)
		}
	}()

	httpServer := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           srv.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", httpServer.Addr, "store", cfg.Database.Driver, "llm", cfg.LLM.Provider)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	// Live streams only end when their clients go away, so do not wait on
	// them forever.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("graceful shutdown incomplete", "error", err)
		return httpServer.Close()
	}
	return nil
}
