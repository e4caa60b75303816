package model

import "time"

// ContactMessage represents a message submitted via the contact form.
// Only IsRead changes after creation.
type ContactMessage struct {
	ID        string    `json:"id"`
	Name      string    `json:"name" validate:"required,max=100"`
	Email     string    `json:"email" validate:"required,email,max=120"`
	Message   string    `json:"message" validate:"required,max=5000"`
	CreatedAt time.Time `json:"created_at"`
	IsRead    bool      `json:"is_read"`
	IPAddress string    `json:"ip_address,omitempty" validate:"max=45"`
	UserAgent string    `json:"-"`
}
