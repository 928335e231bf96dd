package testhelpers

import (
	"os"

	"corpkit/internal/db"

	"github.com/rubenv/pgtest"
	"gorm.io/gorm"
)

// OpenTestDB connects to DATABASE_URL when it is set and otherwise starts a
// throwaway Postgres. The returned stop function releases it.
func OpenTestDB() (*gorm.DB, func(), error) {
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		dbConn, err := db.InitDB(dsn)
		if err != nil {
			return nil, nil, err
		}
		return dbConn, func() {}, nil
	}

	pg, err := pgtest.Start()
	if err != nil {
		return nil, nil, err
	}

	dbConn, err := db.InitDBWithConn(pg.DB)
	if err != nil {
		_ = pg.Stop()
		return nil, nil, err
	}
	return dbConn, func() { _ = pg.Stop() }, nil
}
