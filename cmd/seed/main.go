package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/newgen/backend/internal/config"
	"github.com/newgen/backend/internal/logging"
	"github.com/newgen/backend/internal/repository"
	"github.com/newgen/backend/internal/seed"
	"github.com/newgen/backend/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logging.Setup(cfg.LogLevel)

	path := flag.String("file", cfg.SeedFile, "seed YAML file")
	flag.Parse()

	f, err := seed.LoadFile(*path)
	if err != nil {
		logging.Fatal("load seed failed", "file", *path, "error", err)
	}

	ctx := context.Background()
	pool, err := repository.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logging.Fatal("connect failed", "error", err)
	}
	defer pool.Close()

	seeder := seed.New(
		service.NewTeamService(repository.NewPgTeamRepository(pool)),
		service.NewPersonService(repository.NewPgPersonRepository(pool)),
		service.NewThemeService(repository.NewPgThemeRepository(pool)),
	)
	if _, err := seeder.Run(ctx, f); err != nil {
		pool.Close()
		logging.Fatal("seed failed", "error", err)
	}
}
