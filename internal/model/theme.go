package model

import "time"

// ThemeModeKey is the setting key that stores the site-wide UI theme.
const ThemeModeKey = "theme.mode"

// Theme modes.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// DefaultTheme is used when no theme has been persisted yet.
const DefaultTheme = ThemeDark

// ValidTheme reports whether mode is a supported theme.
func ValidTheme(mode string) bool {
	return mode == ThemeDark || mode == ThemeLight
}

// ThemeSetting is a key/value configuration row.
type ThemeSetting struct {
	ID        string    `json:"-"`
	Key       string    `json:"setting_key"`
	Value     string    `json:"setting_value"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"updated_at"`
}
