package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/newgen/backend/internal/model"
)

// PgThemeRepository stores settings in the theme_settings table.
type PgThemeRepository struct {
	pool *pgxpool.Pool
}

// NewPgThemeRepository creates a PgThemeRepository.
func NewPgThemeRepository(pool *pgxpool.Pool) *PgThemeRepository {
	return &PgThemeRepository{pool: pool}
}

var _ ThemeRepository = (*PgThemeRepository)(nil)

// GetByKey returns the setting row for key.
func (r *PgThemeRepository) GetByKey(ctx context.Context, key string) (*model.ThemeSetting, error) {
	var s model.ThemeSetting
	err := r.pool.QueryRow(ctx,
		`SELECT id, setting_key, setting_value, created_at, updated_at
		 FROM theme_settings WHERE setting_key = $1`, key,
	).Scan(&s.ID, &s.Key, &s.Value, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, translateError(err)
	}
	return &s, nil
}

// Upsert writes value under key, inserting the row on first use.
func (r *PgThemeRepository) Upsert(ctx context.Context, key, value string) (*model.ThemeSetting, error) {
	s := model.ThemeSetting{Key: key, Value: value}
	err := r.pool.QueryRow(ctx,
		`INSERT INTO theme_settings (setting_key, setting_value)
		 VALUES ($1, $2)
		 ON CONFLICT (setting_key) DO UPDATE
		 SET setting_value = EXCLUDED.setting_value, updated_at = NOW()
		 RETURNING id, created_at, updated_at`,
		key, value,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, translateError(err)
	}
	return &s, nil
}

// CreateIfAbsent inserts the row only when key is unused.
func (r *PgThemeRepository) CreateIfAbsent(ctx context.Context, key, value string) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`INSERT INTO theme_settings (setting_key, setting_value)
		 VALUES ($1, $2)
		 ON CONFLICT (setting_key) DO NOTHING`,
		key, value)
	if err != nil {
		return false, translateError(err)
	}
	return tag.RowsAffected() == 1, nil
}
