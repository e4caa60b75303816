package handler

import (
	"net/http"
	"time"

	"github.com/newgen/backend/internal/model"
	"github.com/newgen/backend/internal/service"
	"github.com/newgen/backend/pkg/auth"
)

// AuthHandler は管理者ログイン関連の HTTP ハンドラ
type AuthHandler struct {
	authService   service.AuthService
	sessionSecret []byte
	sessionTTL    time.Duration
	secureCookies bool
	now           func() time.Time
}

// AuthConfig は AuthHandler の設定
type AuthConfig struct {
	SessionSecret []byte
	SessionTTL    time.Duration
	SecureCookies bool
}

// NewAuthHandler は AuthHandler を生成する
func NewAuthHandler(authService service.AuthService, cfg AuthConfig) *AuthHandler {
	return &AuthHandler{
		authService:   authService,
		sessionSecret: cfg.SessionSecret,
		sessionTTL:    cfg.SessionTTL,
		secureCookies: cfg.SecureCookies,
		now:           time.Now,
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type meResponse struct {
	User      *model.User `json:"user"`
	ExpiresAt time.Time   `json:"expires_at"`
}

// Login は POST /api/auth/login を処理する。成功時はセッションクッキーを設定する
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.authService.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		writeServiceError(w, r, "login", err)
		return
	}

	expiresAt := h.now().Add(h.sessionTTL)
	token := auth.CreateSessionToken(auth.Session{UserID: user.ID, Role: user.Role, ExpiresAt: expiresAt}, h.sessionSecret)
	auth.SetSessionCookie(w, token, expiresAt, h.secureCookies)
	writeJSON(w, http.StatusOK, meResponse{User: user, ExpiresAt: expiresAt})
}

// Logout は POST /api/auth/logout を処理する
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSessionCookie(w, h.secureCookies)
	w.WriteHeader(http.StatusNoContent)
}

// Me は GET /api/me を処理する（認証必須）
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	s, ok := auth.SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	user, err := h.authService.CurrentUser(r.Context(), s.UserID)
	if err != nil {
		writeServiceError(w, r, "current user", err)
		return
	}
	writeJSON(w, http.StatusOK, meResponse{User: user, ExpiresAt: s.ExpiresAt})
}
