package service

import (
	"context"

	"github.com/newgen/backend/internal/model"
)

// AuthService は管理者認証のインターフェース
type AuthService interface {
	// Authenticate returns the admin matching username and password, or
	// ErrInvalidCredentials. Unknown users and wrong passwords are
	// indistinguishable to the caller.
	Authenticate(ctx context.Context, username, password string) (*model.User, error)
	// EnsureAdmin creates the admin account when it does not exist yet and
	// reports whether it did.
	EnsureAdmin(ctx context.Context, username, password string) (bool, error)
	// CurrentUser returns the admin with the given ID.
	CurrentUser(ctx context.Context, id string) (*model.User, error)
}
