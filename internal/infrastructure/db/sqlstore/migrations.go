package sqlstore

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// migration is one forward schema step. Versions sort lexically.
type migration struct {
	version string
	up      func(ctx context.Context, tx *sqlx.Tx, d dialect) error
}

// dialect holds the few DDL differences between the supported drivers.
type dialect struct {
	timestamp string
}

func dialectFor(driver string) dialect {
	if driver == DriverPostgres {
		return dialect{timestamp: "TIMESTAMPTZ"}
	}
	// go-sqlite3 only decodes columns declared TIMESTAMP/DATETIME as time.Time.
	return dialect{timestamp: "TIMESTAMP"}
}

var migrations = []migration{
	{version: "20260301090000_create_users", up: createUsers},
	{version: "20260301090100_create_tasks", up: createTasks},
}

func createUsers(ctx context.Context, tx *sqlx.Tx, d dialect) error {
	_, err := tx.ExecContext(ctx, fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS users (
			id            TEXT PRIMARY KEY,
			email         TEXT NOT NULL UNIQUE,
			username      TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			role          TEXT NOT NULL DEFAULT 'user',
			manager_id    TEXT NULL REFERENCES users(id),
			created_at    %s NOT NULL
		)`, d.timestamp))
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS idx_users_manager_id ON users(manager_id)`)
	return err
}

func createTasks(ctx context.Context, tx *sqlx.Tx, d dialect) error {
	_, err := tx.ExecContext(ctx, fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS tasks (
			id          TEXT PRIMARY KEY,
			title       TEXT NOT NULL,
			description TEXT NULL,
			completed   BOOLEAN NOT NULL DEFAULT FALSE,
			owner_id    TEXT NOT NULL REFERENCES users(id),
			created_at  %s NOT NULL
		)`, d.timestamp))
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS idx_tasks_owner_id ON tasks(owner_id)`)
	return err
}

// MigrationStatus describes one known migration.
type MigrationStatus struct {
	Version string
	Applied bool
}

// Migrator applies pending migrations, each in its own transaction.
type Migrator struct {
	db      *sqlx.DB
	dialect dialect
}

func NewMigrator(db *sqlx.DB) *Migrator {
	return &Migrator{db: db, dialect: dialectFor(db.DriverName())}
}

// Up applies every pending migration and returns the versions it ran.
func (m *Migrator) Up(ctx context.Context) ([]string, error) {
	done, err := m.applied(ctx)
	if err != nil {
		return nil, err
	}

	var ran []string
	for _, mg := range migrations {
		if done[mg.version] {
			continue
		}
		if err := m.apply(ctx, mg); err != nil {
			return ran, fmt.Errorf("migration %s: %w", mg.version, err)
		}
		ran = append(ran, mg.version)
	}
	return ran, nil
}

// Status lists every known migration and whether it has been applied.
func (m *Migrator) Status(ctx context.Context) ([]MigrationStatus, error) {
	done, err := m.applied(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]MigrationStatus, 0, len(migrations))
	for _, mg := range migrations {
		out = append(out, MigrationStatus{Version: mg.version, Applied: done[mg.version]})
	}
	return out, nil
}

func (m *Migrator) apply(ctx context.Context, mg migration) error {
	tx, err := m.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := mg.up(ctx, tx, m.dialect); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		tx.Rebind(`INSERT INTO schema_migrations (version, applied_at) VALUES (?, ?)`),
		mg.version, time.Now().UTC(),
	); err != nil {
		return err
	}
	return tx.Commit()
}

func (m *Migrator) applied(ctx context.Context) (map[string]bool, error) {
	_, err := m.db.ExecContext(ctx, fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version    TEXT PRIMARY KEY,
			applied_at %s NOT NULL
		)`, m.dialect.timestamp))
	if err != nil {
		return nil, fmt.Errorf("create schema_migrations: %w", err)
	}

	var versions []string
	if err := m.db.SelectContext(ctx, &versions, `SELECT version FROM schema_migrations`); err != nil {
		return nil, fmt.Errorf("read schema_migrations: %w", err)
	}

	done := make(map[string]bool, len(versions))
	for _, v := range versions {
		done[v] = true
	}
	return done, nil
}
