package handler

import (
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/newgen/backend/internal/model"
	"github.com/newgen/backend/internal/service"
)

const (
	maxIPLength        = 45
	maxUserAgentLength = 512
)

// ContactHandler handles contact form submission and the admin inbox.
type ContactHandler struct {
	contactService service.ContactService
}

// NewContactHandler creates a ContactHandler with the given service.
func NewContactHandler(contactService service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// submitRequest is the expected JSON body for POST /api/contact.
type submitRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// truncate drops invalid UTF-8 and cuts s to at most n bytes on a rune boundary.
func truncate(s string, n int) string {
	s = strings.ToValidUTF8(s, "")
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

// Submit handles POST /api/contact.
// name, email and message are required; message max 5000 chars.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	msg := &model.ContactMessage{
		Name:      req.Name,
		Email:     req.Email,
		Message:   req.Message,
		IPAddress: truncate(ClientIP(r), maxIPLength),
		UserAgent: truncate(r.UserAgent(), maxUserAgentLength),
	}
	if err := h.contactService.Submit(r.Context(), msg); err != nil {
		writeServiceError(w, r, "submit contact", err)
		return
	}
	writeJSON(w, http.StatusCreated, msg)
}

type adminListResponse struct {
	Messages []*model.ContactMessage `json:"messages"`
}

// AdminList handles GET /api/admin/contacts.
// status=unread restricts the list to unread messages.
func (h *ContactHandler) AdminList(w http.ResponseWriter, r *http.Request) {
	var (
		messages []*model.ContactMessage
		err      error
	)
	switch r.URL.Query().Get("status") {
	case "", "all":
		messages, err = h.contactService.List(r.Context())
	case "unread":
		messages, err = h.contactService.ListUnread(r.Context())
	default:
		writeError(w, http.StatusBadRequest, "invalid_status")
		return
	}
	if err != nil {
		writeServiceError(w, r, "list contacts", err)
		return
	}

	// Return [] not null for empty lists
	if messages == nil {
		messages = []*model.ContactMessage{}
	}
	writeJSON(w, http.StatusOK, adminListResponse{Messages: messages})
}

// UnreadCount handles GET /api/admin/contacts/unread-count.
func (h *ContactHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	n, err := h.contactService.CountUnread(r.Context())
	if err != nil {
		writeServiceError(w, r, "count unread contacts", err)
		return
	}
	writeJSON(w, http.StatusOK, countResponse{Count: n})
}

// MarkRead handles PATCH /api/admin/contacts/{id}/read.
func (h *ContactHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	msg, err := h.contactService.MarkAsRead(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, "mark contact read", err)
		return
	}
	writeJSON(w, http.StatusOK, msg)
}

// Delete handles DELETE /api/admin/contacts/{id}.
func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.contactService.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, r, "delete contact", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
