package service

import (
	"context"

	"github.com/newgen/backend/internal/model"
)

// ContactService defines the business logic for contact form submissions.
// Messages are never edited after creation; only the read flag changes.
type ContactService interface {
	// Submit validates and stores a new unread message. The msg.ID and
	// CreatedAt fields are populated by the implementation.
	Submit(ctx context.Context, msg *model.ContactMessage) error

	// List returns all messages, newest first.
	List(ctx context.Context) ([]*model.ContactMessage, error)

	// ListUnread returns unread messages, newest first.
	ListUnread(ctx context.Context) ([]*model.ContactMessage, error)

	CountUnread(ctx context.Context) (int, error)

	MarkAsRead(ctx context.Context, id string) (*model.ContactMessage, error)

	// Delete removes a message permanently.
	Delete(ctx context.Context, id string) error
}
