// Package migrate applies the SQL files under migrations/ to PostgreSQL.
package migrate

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	dropAllFile      = "000_drop_all.sql"
	consolidatedFile = "000_consolidated.sql"
	upSuffix         = ".up.sql"
)

// Migrator applies migrations read from fsys.
type Migrator struct {
	pool *pgxpool.Pool
	fsys fs.FS
}

// New creates a Migrator.
func New(pool *pgxpool.Pool, fsys fs.FS) *Migrator {
	return &Migrator{pool: pool, fsys: fsys}
}

// UpFiles returns the *.up.sql names in fsys, sorted.
func UpFiles(fsys fs.FS) ([]string, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("read migrations dir: %w", err)
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), upSuffix) {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}

// Name strips the .up.sql suffix.
func Name(filename string) string {
	return strings.TrimSuffix(filename, upSuffix)
}

func (m *Migrator) ensureTable(ctx context.Context) error {
	_, err := m.pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		name TEXT PRIMARY KEY,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`)
	if err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}
	return nil
}

func (m *Migrator) exec(ctx context.Context, filename string) error {
	sql, err := fs.ReadFile(m.fsys, filename)
	if err != nil {
		return fmt.Errorf("read %s: %w", filename, err)
	}
	if _, err := m.pool.Exec(ctx, string(sql)); err != nil {
		return fmt.Errorf("apply %s: %w", filename, err)
	}
	return nil
}

// Up applies every migration not yet recorded in schema_migrations and
// returns how many ran.
func (m *Migrator) Up(ctx context.Context) (int, error) {
	if err := m.ensureTable(ctx); err != nil {
		return 0, err
	}
	files, err := UpFiles(m.fsys)
	if err != nil {
		return 0, err
	}

	applied := 0
	for _, filename := range files {
		name := Name(filename)
		var exists bool
		if err := m.pool.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE name = $1)`, name,
		).Scan(&exists); err != nil {
			return applied, fmt.Errorf("check %s: %w", name, err)
		}
		if exists {
			continue
		}
		if err := m.exec(ctx, filename); err != nil {
			return applied, err
		}
		if _, err := m.pool.Exec(ctx, `INSERT INTO schema_migrations (name) VALUES ($1)`, name); err != nil {
			return applied, fmt.Errorf("record %s: %w", name, err)
		}
		applied++
		slog.Info("migration applied", "migration", name)
	}
	return applied, nil
}

// DropAll drops every table.
func (m *Migrator) DropAll(ctx context.Context) error {
	slog.Info("dropping all tables")
	return m.exec(ctx, dropAllFile)
}

// Consolidated applies the consolidated schema and marks every migration applied.
func (m *Migrator) Consolidated(ctx context.Context) error {
	if err := m.exec(ctx, consolidatedFile); err != nil {
		return err
	}
	if err := m.ensureTable(ctx); err != nil {
		return err
	}
	files, err := UpFiles(m.fsys)
	if err != nil {
		return err
	}
	for _, filename := range files {
		if _, err := m.pool.Exec(ctx,
			`INSERT INTO schema_migrations (name) VALUES ($1) ON CONFLICT DO NOTHING`, Name(filename),
		); err != nil {
			return fmt.Errorf("record %s: %w", filename, err)
		}
	}
	slog.Info("consolidated schema applied", "migrations_marked", len(files))
	return nil
}
