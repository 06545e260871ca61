package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"builtinai/internal/common/fsutil"
)

//go:embed migrations/*.sql
var migrations embed.FS

// SQLiteStore keeps selections in a SQLite database.
type SQLiteStore struct {
	db  *sqlx.DB
	now func() time.Time
}

// OpenSQLite opens (creating if needed) the database at path and applies migrations.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if err := fsutil.EnsureParentDir(path); err != nil {
		return nil, err
	}
	db, err := sqlx.Connect("sqlite3", "file:"+path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("connect sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	if err := runMigrations(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &SQLiteStore{db: db, now: time.Now}, nil
}

func runMigrations(db *sqlx.DB) error {
	driver, err := sqlite3.WithInstance(db.DB, &sqlite3.Config{})
	if err != nil {
		return err
	}
	src, err := iofs.New(migrations, "migrations")
	if err != nil {
		return err
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite3", driver)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

func (s *SQLiteStore) Selection(ctx context.Context, provider string) (Selection, error) {
	var sel Selection
	err := s.db.GetContext(ctx, &sel,
		`SELECT provider, model, updated_at FROM model_selection WHERE provider = ?`, provider)
	if errors.Is(err, sql.ErrNoRows) {
		return Selection{}, ErrNoSelection
	}
	if err != nil {
		return Selection{}, fmt.Errorf("read selection: %w", err)
	}
	return sel, nil
}

func (s *SQLiteStore) SetSelection(ctx context.Context, provider, model string) error {
	row := Selection{Provider: provider, Model: model, UpdatedAt: s.now().UTC()}
	_, err := s.db.NamedExecContext(ctx, `
		INSERT INTO model_selection (provider, model, updated_at)
		VALUES (:provider, :model, :updated_at)
		ON CONFLICT(provider) DO UPDATE SET model = excluded.model, updated_at = excluded.updated_at`, row)
	if err != nil {
		return fmt.Errorf("write selection: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error { return s.db.Close() }
