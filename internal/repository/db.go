package repository

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"
)

// Supported SQL drivers.
const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite3"
)

// NewDB opens a connection pool for the given driver and DSN.
// For sqlite3 the DSN is a file path and its directory is created.
func NewDB(driver, dsn string) (*sql.DB, error) {
	switch driver {
	case DriverMySQL:
	case DriverSQLite:
		if dir := filepath.Dir(dsn); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("creating database directory: %w", err)
			}
		}
	default:
		return nil, fmt.Errorf("unsupported store driver %q", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}

	if driver == DriverSQLite {
		// A single writer keeps sqlite from returning SQLITE_BUSY.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	if err := db.Ping(); err != nil {
		slog.Warn("database ping failed", "driver", driver, "error", err)
		db.Close()
		return nil, err
	}

	return db, nil
}
