package database

import (
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// Driver names registered with database/sql
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "pgx"
)

// ParseURL maps a DATABASE_URL onto a driver name and a driver-specific DSN.
// postgres:// and postgresql:// URLs go to pgx; anything else is a SQLite
// path, optionally prefixed with sqlite:// or sqlite3://.
func ParseURL(databaseURL string) (driver, dsn string) {
	switch {
	case strings.HasPrefix(databaseURL, "postgres://"), strings.HasPrefix(databaseURL, "postgresql://"):
		return DriverPostgres, databaseURL
	case strings.HasPrefix(databaseURL, "sqlite3://"):
		return DriverSQLite, strings.TrimPrefix(databaseURL, "sqlite3://")
	case strings.HasPrefix(databaseURL, "sqlite://"):
		return DriverSQLite, strings.TrimPrefix(databaseURL, "sqlite://")
	default:
		return DriverSQLite, databaseURL
	}
}

// OpenDB opens and pings the database behind databaseURL
func OpenDB(databaseURL string) (*sqlx.DB, error) {
	driver, dsn := ParseURL(databaseURL)
	if dsn == "" {
		return nil, fmt.Errorf("database URL is empty")
	}

	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if driver == DriverSQLite {
		// SQLite allows one writer; a single connection serializes writes
		db.SetMaxOpenConns(1)
	}

	// Test the connection
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// InitializeDatabase opens the database connection and runs migrations
func InitializeDatabase(databaseURL string) (*sqlx.DB, error) {
	db, err := OpenDB(databaseURL)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}
