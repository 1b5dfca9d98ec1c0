package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/cardiac-report-server/internal/api"
	"github.com/cardiac-report-server/internal/config"
	"github.com/cardiac-report-server/internal/database"
	"github.com/cardiac-report-server/internal/domain"
	"github.com/cardiac-report-server/internal/report"
	"github.com/cardiac-report-server/internal/store"
)

func main() {
	// Load configuration
	configManager, err := config.NewManager()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Validate configuration
	if err := configManager.Validate(); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	cfg := configManager.GetConfig()
	logger := newLogger(cfg.Logging)

	studyStore, pool, err := openStore(cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to open study store")
	}
	defer studyStore.Close()
	if pool != nil {
		defer pool.Close()
	}

	composer := report.NewComposer(logger)

	server, err := api.NewServer(cfg, studyStore, composer, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to create server")
	}
	if pool != nil {
		server.SetDatabaseCheck(pool.Ping)
	}

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		logger.Info("Shutdown signal received, gracefully shutting down...")
		cancel()
	}()

	logger.WithFields(logrus.Fields{
		"host":   cfg.Server.Host,
		"port":   cfg.Server.Port,
		"driver": cfg.Storage.Driver,
	}).Info("Starting cardiac report server")

	// Start server
	if err := server.Start(ctx); err != nil {
		logger.WithError(err).Fatal("Server failed to start")
	}

	logger.Info("Server stopped")
}

func newLogger(cfg domain.LoggingConfig) *logrus.Logger {
	logger := logrus.New()

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if cfg.Format == "text" {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	if cfg.Output == "stderr" {
		logger.SetOutput(os.Stderr)
	}

	return logger
}

// openStore opens the configured study store. For postgres it also opens
// the pgx pool backing the health endpoint's readiness check.
func openStore(cfg *domain.Config, logger *logrus.Logger) (store.Store, *database.Pool, error) {
	switch cfg.Storage.Driver {
	case "sqlite":
		st, err := store.NewSQLiteStore(cfg.Storage.SQLitePath)
		return st, nil, err
	case "postgres":
		dbCfg := database.Config{
			Host:        cfg.Database.Host,
			Port:        cfg.Database.Port,
			Database:    cfg.Database.Database,
			Username:    cfg.Database.Username,
			Password:    cfg.Database.Password,
			MaxConnLife: cfg.Database.ConnMaxLifetime,
			SSLMode:     cfg.Database.SSLMode,
		}
		databaseURL := dbCfg.URL()

		if cfg.Database.RunMigrations {
			migrator, err := database.NewMigrator(databaseURL, cfg.Database.MigrationsPath, logger)
			if err != nil {
				return nil, nil, fmt.Errorf("failed to create migrator: %w", err)
			}
			if err := migrator.Up(context.Background()); err != nil {
				migrator.Close()
				return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
			}
			migrator.Close()
		}

		pool, err := database.Open(context.Background(), dbCfg, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open database pool: %w", err)
		}

		st, err := store.NewPostgresStoreFromURL(databaseURL)
		if err != nil {
			pool.Close()
			return nil, nil, err
		}
		return st, pool, nil
	default:
		return nil, nil, fmt.Errorf("unsupported storage driver: %s", cfg.Storage.Driver)
	}
}
