package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/newgen/backend/internal/config"
	"github.com/newgen/backend/internal/logging"
	"github.com/newgen/backend/internal/migrate"
	"github.com/newgen/backend/internal/repository"
)

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: migrate [command]

Commands:
  (default)   差分マイグレーションを適用
  reset       全テーブルを DROP し、集約スキーマで再作成
  fresh       全テーブルを DROP し、全マイグレーションを順番に適用`)
	os.Exit(1)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logging.Setup(cfg.LogLevel)

	ctx := context.Background()
	pool, err := repository.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logging.Fatal("connect failed", "error", err)
	}
	defer pool.Close()

	m := migrate.New(pool, os.DirFS(findMigrationDir()))

	cmd := ""
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	switch cmd {
	case "":
		err = up(ctx, m)
	case "reset":
		if err = m.DropAll(ctx); err == nil {
			err = m.Consolidated(ctx)
		}
	case "fresh":
		if err = m.DropAll(ctx); err == nil {
			err = up(ctx, m)
		}
	default:
		usage()
	}
	if err != nil {
		pool.Close()
		logging.Fatal("migration failed", "command", cmd, "error", err)
	}
}

func up(ctx context.Context, m *migrate.Migrator) error {
	n, err := m.Up(ctx)
	if err != nil {
		return err
	}
	if n == 0 {
		slog.Info("all migrations already applied")
	} else {
		slog.Info("migrations completed", "count", n)
	}
	return nil
}

func findMigrationDir() string {
	dir := "migrations"
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		dir = "../migrations"
	}
	return dir
}
