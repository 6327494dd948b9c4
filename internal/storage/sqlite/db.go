package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"

	"github.com/sandevgo/pitchcoach/pkg/log"
)

// InMemory opens a throwaway library that lives as long as the *sql.DB.
const InMemory = ":memory:"

//go:embed migrations/*.sql
var migrations embed.FS

// NewDB opens the library database at path and brings its schema up to date.
func NewDB(ctx context.Context, path string) (*sql.DB, error) {
	dsn := InMemory
	if path != InMemory {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create db directory: %w", err)
		}
		dsn = path + "?_busy_timeout=5000&_journal_mode=WAL"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if path == InMemory {
		// a second connection would see an empty database
		db.SetMaxOpenConns(1)
	}

	if err := setup(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func setup(ctx context.Context, db *sql.DB) error {
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	goose.SetBaseFS(migrations)
	goose.SetLogger(log.NewGooseLogger(ctx))
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	version, err := goose.GetDBVersionContext(ctx, db)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	log.FromCtx(ctx).Debug().Int64("version", version).Msg("library schema ready")
	return nil
}
