package main

import (
	"context"
	"log"

	"corpkit/internal/config"
	"corpkit/internal/db"
	"corpkit/internal/logger"
	"corpkit/internal/metrics"
	"corpkit/internal/routes"
	"corpkit/internal/store"
	"corpkit/pkg/jsoncodec"

	"github.com/hibiken/asynq"
	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
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
	if cfg.AutoMigrate {
		if err := db.Migrate(conn); err != nil {
			zl.Fatal("Failed to migrate database", zap.Error(err))
		}
	}

	codecs := jsoncodec.NewRegistry(
		jsoncodec.WithLogger(zl.Named("jsoncodec")),
		jsoncodec.WithLocation(cfg.Location),
	)
	if !codecs.Supports(cfg.DatePattern) {
		zl.Fatal("Unsupported DATE_PATTERN", zap.String("pattern", cfg.DatePattern), zap.Strings("supported", codecs.Patterns()))
	}

	redisOpt, err := asynq.ParseRedisURI(cfg.RedisURL)
	if err != nil {
		zl.Fatal("Failed to parse Redis URL", zap.Error(err))
	}
	asynqClient := asynq.NewClient(redisOpt)
	defer asynqClient.Close()

	router := routes.SetupRouter(routes.Deps{
		Store:    store.NewCompanyStore(conn),
		Codecs:   codecs,
		Enqueuer: asynqClient,
		Metrics:  metrics.New(),
		Logger:   zl,
		Config:   cfg,
	})

	zl.Info("Starting server", zap.String("addr", cfg.ServerAddr))
	if err := router.Run(cfg.ServerAddr); err != nil {
		zl.Fatal("Failed to start server", zap.Error(err))
	}
}
