package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"corpkit/internal/models"

	"github.com/avast/retry-go/v4"
	"go.uber.org/zap"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info), // Log SQL queries
	})

	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

// InitDBWithConn wraps an already open connection, such as a throwaway test
// database.
func InitDBWithConn(conn *sql.DB) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: conn}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})

	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return db, nil
}

// Migrate creates or updates the tables the application owns.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Company{}); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}

	// Only selective inserts fall back to this; Insert writes NULL explicitly.
	statusDefault := fmt.Sprintf("ALTER TABLE %s ALTER COLUMN status SET DEFAULT %d",
		models.Company{}.TableName(), models.CompanyStatusActive)
	if err := db.Exec(statusDefault).Error; err != nil {
		return fmt.Errorf("failed to set status default: %w", err)
	}
	return nil
}

// Connect opens the database, retrying while it is not yet reachable.
func Connect(ctx context.Context, dsn string, attempts uint, zl *zap.Logger) (*gorm.DB, error) {
	var conn *gorm.DB
	err := retry.Do(func() error {
		var err error
		conn, err = InitDB(dsn)
		if err != nil {
			return err
		}

		sqlDB, err := conn.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	},
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(time.Second),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(attempt uint, err error) {
			zl.Warn("database not ready", zap.Uint("attempt", attempt+1), zap.Uint("attempts", attempts), zap.Error(err))
		}),
	)
	if err != nil {
		return nil, err
	}
	return conn, nil
}
