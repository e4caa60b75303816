package service

import (
	"context"
	"errors"
	"testing"

	"github.com/newgen/backend/internal/model"
	"github.com/newgen/backend/internal/repository"
	"github.com/newgen/backend/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingThemeRepository は常にエラーを返す ThemeRepository
type failingThemeRepository struct{ err error }

func (r failingThemeRepository) GetByKey(context.Context, string) (*model.ThemeSetting, error) {
	return nil, r.err
}

func (r failingThemeRepository) Upsert(context.Context, string, string) (*model.ThemeSetting, error) {
	return nil, r.err
}

func (r failingThemeRepository) CreateIfAbsent(context.Context, string, string) (bool, error) {
	return false, r.err
}

func TestThemeService_DefaultsToDark(t *testing.T) {
	svc := NewThemeService(memory.New().Themes())

	mode, err := svc.CurrentTheme(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.ThemeDark, mode)
}

func TestThemeService_RoundTrip(t *testing.T) {
	svc := NewThemeService(memory.New().Themes())
	ctx := context.Background()

	for _, mode := range []string{"dark", "light"} {
		setting, err := svc.SaveTheme(ctx, mode)
		require.NoError(t, err)
		assert.Equal(t, model.ThemeModeKey, setting.Key)

		got, err := svc.CurrentTheme(ctx)
		require.NoError(t, err)
		assert.Equal(t, setting.Value, got)
	}
	got, err := svc.CurrentTheme(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.ThemeLight, got)
}

func TestThemeService_RejectsUnknownMode(t *testing.T) {
	svc := NewThemeService(memory.New().Themes())
	ctx := context.Background()

	for _, mode := range []string{"blue", "", "Dark", "DARK", " light ", "LIGHT"} {
		_, err := svc.SaveTheme(ctx, mode)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr, "mode %q", mode)
		assert.Equal(t, "mode", verr.Field)
	}

	got, err := svc.CurrentTheme(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.ThemeDark, got)
}

func TestThemeService_InitializeKeepsExisting(t *testing.T) {
	svc := NewThemeService(memory.New().Themes())
	ctx := context.Background()

	require.NoError(t, svc.InitializeDefaultTheme(ctx))
	_, err := svc.SaveTheme(ctx, "light")
	require.NoError(t, err)
	require.NoError(t, svc.InitializeDefaultTheme(ctx))

	got, err := svc.CurrentTheme(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.ThemeLight, got)
}

func TestThemeService_StoreFailure(t *testing.T) {
	boom := errors.New("connection refused")
	svc := NewThemeService(failingThemeRepository{err: boom})
	ctx := context.Background()

	mode, err := svc.CurrentTheme(ctx)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, model.ThemeDark, mode)

	_, err = svc.SaveTheme(ctx, "light")
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, repository.ErrNotFound)

	assert.ErrorIs(t, svc.InitializeDefaultTheme(ctx), boom)
}
