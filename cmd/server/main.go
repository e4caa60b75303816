package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/newgen/backend/internal/config"
	"github.com/newgen/backend/internal/handler"
	"github.com/newgen/backend/internal/logging"
	"github.com/newgen/backend/internal/repository"
	"github.com/newgen/backend/internal/repository/memory"
	"github.com/newgen/backend/internal/seed"
	"github.com/newgen/backend/internal/service"
	"github.com/newgen/backend/pkg/auth"
)

// repositories is the set of stores the services run on.
type repositories struct {
	db       repository.DB
	teams    repository.TeamRepository
	persons  repository.PersonRepository
	contacts repository.ContactRepository
	themes   repository.ThemeRepository
	users    repository.UserRepository
	close    func()
}

func openRepositories(ctx context.Context, cfg config.Config) (*repositories, error) {
	if cfg.Store == config.StoreMemory {
		store := memory.New()
		return &repositories{
			db:       store,
			teams:    store.Teams(),
			persons:  store.Persons(),
			contacts: store.Contacts(),
			themes:   store.Themes(),
			users:    store.Users(),
			close:    func() {},
		}, nil
	}

	pool, err := repository.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	teams := repository.NewPgTeamRepository(pool)
	return &repositories{
		db:       teams,
		teams:    teams,
		persons:  repository.NewPgPersonRepository(pool),
		contacts: repository.NewPgContactRepository(pool),
		themes:   repository.NewPgThemeRepository(pool),
		users:    repository.NewPgUserRepository(pool),
		close:    pool.Close,
	}, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logging.Setup(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repos, err := openRepositories(ctx, cfg)
	if err != nil {
		logging.Fatal("database connection failed", "error", err)
	}
	defer repos.close()
	slog.Info("store ready", "store", cfg.Store)

	teamService := service.NewTeamService(repos.teams)
	personService := service.NewPersonService(repos.persons)
	contactService := service.NewContactService(repos.contacts)
	themeService := service.NewThemeService(repos.themes)
	authService := service.NewAuthService(repos.users)

	// テーマ初期化の失敗（未マイグレーション等）は起動を止めない
	if err := themeService.InitializeDefaultTheme(ctx); err != nil {
		slog.Warn("theme initialization skipped", "error", err)
	}

	if cfg.UsesDefaultAdminPassword() {
		slog.Warn("admin account uses the default password; set ADMIN_PASSWORD", "username", cfg.AdminUsername)
	}
	if cfg.UsesDefaultSessionSecret() {
		slog.Warn("SESSION_SECRET is not set; using the development secret")
	}
	if _, err := authService.EnsureAdmin(ctx, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		logging.Fatal("admin bootstrap failed", "error", err)
	}

	if cfg.Store == config.StoreMemory {
		if f, err := seed.LoadFile(cfg.SeedFile); err != nil {
			slog.Warn("seed file not loaded", "file", cfg.SeedFile, "error", err)
		} else if _, err := seed.New(teamService, personService, themeService).Run(ctx, f); err != nil {
			slog.Warn("seeding memory store failed", "error", err)
		}
	}

	sessionSecret := auth.SessionSecretBytes(cfg.SessionSecret)
	routes := handler.Routes{
		Health: handler.New(repos.db, cfg.FrontendURL),
		Auth: handler.NewAuthHandler(authService, handler.AuthConfig{
			SessionSecret: sessionSecret,
			SessionTTL:    cfg.SessionTTL,
			SecureCookies: cfg.SecureCookies,
		}),
		Teams:         handler.NewTeamHandler(teamService, personService),
		Persons:       handler.NewPersonHandler(personService),
		Contacts:      handler.NewContactHandler(contactService),
		Theme:         handler.NewThemeHandler(themeService),
		SessionSecret: sessionSecret,
		ContactLimit:  handler.NewRateLimiter(ctx, cfg.ContactRateLimit),
	}

	server := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      routes.Mux(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("server error", "error", err)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}
