package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/newgen/backend/internal/model"
	"github.com/newgen/backend/internal/repository"
)

// ThemeService reads and writes the site-wide theme. The value lives in the
// store so it survives restarts and is shared by every visitor.
type ThemeService interface {
	// CurrentTheme returns the stored theme, or model.DefaultTheme when none
	// is stored. On a store error the default is returned with the error.
	CurrentTheme(ctx context.Context) (string, error)
	SaveTheme(ctx context.Context, mode string) (*model.ThemeSetting, error)
	// InitializeDefaultTheme writes the default theme unless a value exists.
	// Callers log a failure and continue.
	InitializeDefaultTheme(ctx context.Context) error
}

// ThemeServiceImpl is the production ThemeService.
type ThemeServiceImpl struct {
	repo repository.ThemeRepository
}

// NewThemeService creates a ThemeService backed by repo.
func NewThemeService(repo repository.ThemeRepository) ThemeService {
	return &ThemeServiceImpl{repo: repo}
}

// CurrentTheme returns the persisted theme mode.
func (s *ThemeServiceImpl) CurrentTheme(ctx context.Context) (string, error) {
	setting, err := retryRead(ctx, "get theme", func(ctx context.Context) (*model.ThemeSetting, error) {
		return s.repo.GetByKey(ctx, model.ThemeModeKey)
	})
	if errors.Is(err, repository.ErrNotFound) {
		return model.DefaultTheme, nil
	}
	if err != nil {
		return model.DefaultTheme, fmt.Errorf("get theme: %w", err)
	}
	return setting.Value, nil
}

// SaveTheme persists mode, which must be "dark" or "light".
func (s *ThemeServiceImpl) SaveTheme(ctx context.Context, mode string) (*model.ThemeSetting, error) {
	if !model.ValidTheme(mode) {
		return nil, &ValidationError{Field: "mode", Message: "must be one of: dark, light"}
	}
	setting, err := s.repo.Upsert(ctx, model.ThemeModeKey, mode)
	if err != nil {
		return nil, fmt.Errorf("save theme: %w", err)
	}
	return setting, nil
}

// InitializeDefaultTheme is idempotent: an existing value is never replaced.
func (s *ThemeServiceImpl) InitializeDefaultTheme(ctx context.Context) error {
	if _, err := s.repo.CreateIfAbsent(ctx, model.ThemeModeKey, model.DefaultTheme); err != nil {
		return fmt.Errorf("initialize theme: %w", err)
	}
	return nil
}
