package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"corpkit/internal/config"
	"corpkit/internal/db"
	"corpkit/internal/logger"
	"corpkit/internal/store"
	"corpkit/internal/tasks"
	"corpkit/pkg/jsoncodec"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zl, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zl.Sync() //nolint:errcheck

	conn, err := db.Connect(context.Background(), cfg.DatabaseURL, cfg.DBAttempts, zl)
	if err != nil {
		zl.Fatal("Failed to connect to database", zap.Error(err))
	}
	zl.Info("Worker connected to database")

	if cfg.AutoMigrate {
		if err := db.Migrate(conn); err != nil {
			zl.Fatal("Failed to migrate database", zap.Error(err))
		}
	}

	redisOpt, err := asynq.ParseRedisURI(cfg.RedisURL)
	if err != nil {
		zl.Fatal("Failed to parse Redis URL", zap.Error(err))
	}

	srv := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Queues: map[string]int{
				"default": 3,
			},
			Concurrency: 10,
		},
	)

	codecs := jsoncodec.NewRegistry(
		jsoncodec.WithLogger(zl.Named("jsoncodec")),
		jsoncodec.WithLocation(cfg.Location),
	)
	taskProcessor := tasks.NewTaskProcessor(store.NewCompanyStore(conn), codecs, zl)

	mux := asynq.NewServeMux()
	mux.HandleFunc(
		tasks.TypeTaskImportCompanies,
		taskProcessor.HandleImportCompaniesTask,
	)

	go func() {
		zl.Info("Starting Asynq worker server")
		if err := srv.Run(mux); err != nil {
			zl.Fatal("Could not run Asynq worker server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit

	zl.Info("Shutdown signal received, shutting down gracefully")

	srv.Shutdown()
	zl.Info("Worker process shut down complete")
}
