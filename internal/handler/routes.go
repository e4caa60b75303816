package handler

import (
	"net/http"

	"github.com/newgen/backend/internal/model"
	"github.com/newgen/backend/pkg/auth"
)

// Routes bundles the handlers mounted on the API mux.
type Routes struct {
	Health   *Handler
	Auth     *AuthHandler
	Teams    *TeamHandler
	Persons  *PersonHandler
	Contacts *ContactHandler
	Theme    *ThemeHandler

	SessionSecret []byte
	ContactLimit  *RateLimiter
}

// Mux registers every API route and returns the wrapped handler.
func (rt Routes) Mux() http.Handler {
	mux := http.NewServeMux()
	admin := func(fn http.HandlerFunc) http.Handler {
		return auth.RequireRole(rt.SessionSecret, model.RoleAdmin)(fn)
	}

	mux.HandleFunc("GET /api/health", rt.Health.Health)

	mux.HandleFunc("POST /api/auth/login", rt.Auth.Login)
	mux.HandleFunc("POST /api/auth/logout", rt.Auth.Logout)
	mux.Handle("GET /api/me", admin(rt.Auth.Me))

	// チーム API（参照は認証不要）
	mux.HandleFunc("GET /api/teams", rt.Teams.List)
	mux.HandleFunc("GET /api/teams/count", rt.Teams.Count)
	mux.HandleFunc("GET /api/teams/{id}", rt.Teams.Get)
	mux.HandleFunc("GET /api/teams/{id}/members", rt.Teams.Members)
	mux.Handle("POST /api/teams", admin(rt.Teams.Create))
	mux.Handle("PATCH /api/teams/{id}", admin(rt.Teams.Update))
	mux.Handle("DELETE /api/teams/{id}", admin(rt.Teams.Delete))

	// メンバー API
	mux.HandleFunc("GET /api/persons", rt.Persons.List)
	mux.HandleFunc("GET /api/persons/count", rt.Persons.Count)
	mux.HandleFunc("GET /api/persons/{id}", rt.Persons.Get)
	mux.Handle("POST /api/persons", admin(rt.Persons.Create))
	mux.Handle("PATCH /api/persons/{id}", admin(rt.Persons.Update))
	mux.Handle("DELETE /api/persons/{id}", admin(rt.Persons.Delete))

	var submit http.Handler = http.HandlerFunc(rt.Contacts.Submit)
	if rt.ContactLimit != nil {
		submit = rt.ContactLimit.Middleware(submit)
	}
	mux.Handle("POST /api/contact", submit)
	mux.Handle("GET /api/admin/contacts", admin(rt.Contacts.AdminList))
	mux.Handle("GET /api/admin/contacts/unread-count", admin(rt.Contacts.UnreadCount))
	mux.Handle("PATCH /api/admin/contacts/{id}/read", admin(rt.Contacts.MarkRead))
	mux.Handle("DELETE /api/admin/contacts/{id}", admin(rt.Contacts.Delete))

	mux.HandleFunc("GET /api/theme", rt.Theme.Get)
	mux.HandleFunc("PUT /api/theme", rt.Theme.Put)

	return RequestLogger(rt.Health.CORS(SecurityHeaders(mux)))
}
