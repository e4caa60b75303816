package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/newgen/backend/internal/model"
)

// PgContactRepository is the PostgreSQL implementation of ContactRepository.
type PgContactRepository struct {
	pool *pgxpool.Pool
}

// NewPgContactRepository creates a PgContactRepository backed by the given pool.
func NewPgContactRepository(pool *pgxpool.Pool) *PgContactRepository {
	return &PgContactRepository{pool: pool}
}

// Ensure PgContactRepository implements ContactRepository at compile time.
var _ ContactRepository = (*PgContactRepository)(nil)

const contactColumns = `id, name, email, message, created_at, is_read,
	COALESCE(ip_address, ''), COALESCE(user_agent, '')`

func scanContact(scan func(...any) error) (*model.ContactMessage, error) {
	var m model.ContactMessage
	if err := scan(&m.ID, &m.Name, &m.Email, &m.Message, &m.CreatedAt, &m.IsRead, &m.IPAddress, &m.UserAgent); err != nil {
		return nil, translateError(err)
	}
	return &m, nil
}

func (r *PgContactRepository) list(ctx context.Context, where string, args ...any) ([]*model.ContactMessage, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+contactColumns+` FROM contact_messages `+where+` ORDER BY created_at DESC`, args...)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	var messages []*model.ContactMessage
	for rows.Next() {
		m, err := scanContact(rows.Scan)
		if err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, translateError(rows.Err())
}

// Save inserts a new contact_messages row and populates msg.ID and CreatedAt
// from the RETURNING clause.
func (r *PgContactRepository) Save(ctx context.Context, msg *model.ContactMessage) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO contact_messages (name, email, message, is_read, ip_address, user_agent)
		 VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''))
		 RETURNING id, created_at`,
		msg.Name, msg.Email, msg.Message, msg.IsRead, msg.IPAddress, msg.UserAgent,
	).Scan(&msg.ID, &msg.CreatedAt)
	return translateError(err)
}

// GetByID returns a single message.
func (r *PgContactRepository) GetByID(ctx context.Context, id string) (*model.ContactMessage, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	return scanContact(r.pool.QueryRow(ctx,
		`SELECT `+contactColumns+` FROM contact_messages WHERE id = $1`, id).Scan)
}

// List returns all messages, newest first.
func (r *PgContactRepository) List(ctx context.Context) ([]*model.ContactMessage, error) {
	return r.list(ctx, "")
}

// ListUnread returns unread messages, newest first.
func (r *PgContactRepository) ListUnread(ctx context.Context) ([]*model.ContactMessage, error) {
	return r.list(ctx, "WHERE is_read = FALSE")
}

// CountUnread returns the number of unread messages.
func (r *PgContactRepository) CountUnread(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM contact_messages WHERE is_read = FALSE`).Scan(&n)
	return n, translateError(err)
}

// MarkAsRead sets the read flag and returns the updated message.
func (r *PgContactRepository) MarkAsRead(ctx context.Context, id string) (*model.ContactMessage, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	return scanContact(r.pool.QueryRow(ctx,
		`UPDATE contact_messages SET is_read = TRUE WHERE id = $1 RETURNING `+contactColumns, id).Scan)
}

// Delete removes a message permanently.
func (r *PgContactRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return ErrNotFound
	}
	tag, err := r.pool.Exec(ctx, `DELETE FROM contact_messages WHERE id = $1`, id)
	if err != nil {
		return translateError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
