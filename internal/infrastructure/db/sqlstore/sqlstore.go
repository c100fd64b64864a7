// Package sqlstore implements the user and task repositories on a
// relational database through sqlx. Postgres (lib/pq) and SQLite
// (go-sqlite3) are supported; queries are written with '?' placeholders and
// rebound for the active driver.
package sqlstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

const defaultTimeout = 5 * time.Second

// Driver names as registered with database/sql.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite3"
)

// Config captures the settings for opening the database.
type Config struct {
	Driver  string
	DSN     string
	Timeout time.Duration
}

// Open connects to the database and verifies connectivity with a ping.
func Open(ctx context.Context, cfg Config) (*sqlx.DB, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	dsn := cfg.DSN
	if cfg.Driver == DriverSQLite {
		dsn = withQueryParam(dsn, "_foreign_keys=on")
	}

	db, err := sqlx.Open(cfg.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	if cfg.Driver == DriverSQLite {
		// A single connection keeps in-memory databases alive and
		// serialises writers the way SQLite expects.
		db.SetMaxOpenConns(1)
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sql ping: %w", err)
	}
	return db, nil
}

func withQueryParam(dsn, param string) string {
	if strings.Contains(dsn, param) {
		return dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&" + param
	}
	return dsn + "?" + param
}
