package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/newgen/backend/internal/repository"
)

// retryRead runs an idempotent read and repeats it once when the store
// reports a transient failure. Writes never go through here.
func retryRead[T any](ctx context.Context, op string, read func(context.Context) (T, error)) (T, error) {
	v, err := read(ctx)
	if err == nil || !errors.Is(err, repository.ErrTransient) || ctx.Err() != nil {
		return v, err
	}
	slog.Warn("transient store error, retrying read", "op", op, "error", err)
	return read(ctx)
}
