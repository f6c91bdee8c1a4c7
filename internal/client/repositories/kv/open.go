package kv

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/ticketapp/internal/client/migrations"
	"github.com/dmitrijs2005/ticketapp/internal/filex"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

// MemoryDSN opens a private in-memory store, used by tests and by -d :memory:.
const MemoryDSN = ":memory:"

// RunMigrations applies the embedded schema migrations to db.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// Open opens (creating if needed) the SQLite file at path, migrates it and
// returns a store limited to quota bytes.
func Open(ctx context.Context, path string, quota int64) (*SQLiteStore, error) {
	dsn := path
	if path != MemoryDSN {
		abs, err := filex.EnsureParentDir(path)
		if err != nil {
			return nil, err
		}
		dsn = abs
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	// a single connection keeps :memory: stores coherent and serializes writers
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate store: %w", err)
	}

	return NewSQLiteStore(db, quota), nil
}
