package handler

import (
	"log/slog"
	"net/http"

	"github.com/newgen/backend/internal/service"
)

// ThemeHandler serves the site-wide theme setting.
type ThemeHandler struct {
	themeService service.ThemeService
}

// NewThemeHandler creates a ThemeHandler.
func NewThemeHandler(themeService service.ThemeService) *ThemeHandler {
	return &ThemeHandler{themeService: themeService}
}

type themeBody struct {
	Mode string `json:"mode"`
}

// Get handles GET /api/theme. A store failure still yields the default theme.
func (h *ThemeHandler) Get(w http.ResponseWriter, r *http.Request) {
	mode, err := h.themeService.CurrentTheme(r.Context())
	if err != nil {
		slog.Warn("theme lookup failed, serving default", "error", err)
	}
	writeJSON(w, http.StatusOK, themeBody{Mode: mode})
}

// Put handles PUT /api/theme.
func (h *ThemeHandler) Put(w http.ResponseWriter, r *http.Request) {
	var req themeBody
	if !decodeJSON(w, r, &req) {
		return
	}
	setting, err := h.themeService.SaveTheme(r.Context(), req.Mode)
	if err != nil {
		writeServiceError(w, r, "save theme", err)
		return
	}
	writeJSON(w, http.StatusOK, themeBody{Mode: setting.Value})
}
