package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/newgen/backend/internal/model"
	"github.com/newgen/backend/internal/repository"
)

// contactServiceImpl is the production implementation of ContactService.
type contactServiceImpl struct {
	repo repository.ContactRepository
}

// NewContactService creates a ContactService backed by the given repository.
func NewContactService(repo repository.ContactRepository) ContactService {
	return &contactServiceImpl{repo: repo}
}

// Submit stores a new contact message. It clears the read flag, sets
// CreatedAt and validates the required fields before persisting.
func (s *contactServiceImpl) Submit(ctx context.Context, msg *model.ContactMessage) error {
	msg.ID = ""
	msg.Name = strings.TrimSpace(msg.Name)
	msg.Email = strings.TrimSpace(msg.Email)
	msg.Message = strings.TrimSpace(msg.Message)
	msg.IsRead = false
	msg.CreatedAt = time.Now().UTC()
	if err := validateStruct(msg); err != nil {
		return err
	}
	if err := s.repo.Save(ctx, msg); err != nil {
		return fmt.Errorf("save contact message: %w", err)
	}
	slog.Info("contact message received", "message_id", msg.ID, "ip", msg.IPAddress)
	return nil
}

// List returns every message, newest first.
func (s *contactServiceImpl) List(ctx context.Context) ([]*model.ContactMessage, error) {
	return retryRead(ctx, "list contacts", s.repo.List)
}

// ListUnread returns unread messages, newest first.
func (s *contactServiceImpl) ListUnread(ctx context.Context) ([]*model.ContactMessage, error) {
	return retryRead(ctx, "list unread contacts", s.repo.ListUnread)
}

// CountUnread returns the number of unread messages.
func (s *contactServiceImpl) CountUnread(ctx context.Context) (int, error) {
	return retryRead(ctx, "count unread contacts", s.repo.CountUnread)
}

// MarkAsRead flags a message as read.
func (s *contactServiceImpl) MarkAsRead(ctx context.Context, id string) (*model.ContactMessage, error) {
	return s.repo.MarkAsRead(ctx, id)
}

// Delete removes a message.
func (s *contactServiceImpl) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
