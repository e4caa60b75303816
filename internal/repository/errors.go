package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrNotFound is returned when a requested record does not exist in the database.
var ErrNotFound = errors.New("not found")

// ErrConstraintViolation is returned when a write breaks a uniqueness or
// referential constraint.
var ErrConstraintViolation = errors.New("constraint violation")

// ErrTransient marks connection or transaction failures. Reads may be retried
// once; writes must not be.
var ErrTransient = errors.New("transient store error")

// ConstraintError names the constraint a write violated.
// It matches ErrConstraintViolation with errors.Is.
type ConstraintError struct {
	Constraint string
	Cause      error
}

func (e *ConstraintError) Error() string {
	if e.Constraint == "" {
		return ErrConstraintViolation.Error()
	}
	return fmt.Sprintf("%s: %s", ErrConstraintViolation, e.Constraint)
}

func (e *ConstraintError) Is(target error) bool { return target == ErrConstraintViolation }

func (e *ConstraintError) Unwrap() error { return e.Cause }

// Constraint names shared by the PostgreSQL schema and the memory store.
const (
	ConstraintTeamName     = "teams_name_key"
	ConstraintPersonEmail  = "persons_email_key"
	ConstraintPersonTeam   = "persons_team_id_fkey"
	ConstraintPersonStatus = "persons_status_check"
	ConstraintSettingKey   = "theme_settings_setting_key_key"
	ConstraintUsername     = "users_username_key"
)

// PostgreSQL SQLSTATE codes that are translated.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
	pgNotNullViolation    = "23502"
	pgSerializationFail   = "40001"
	pgDeadlockDetected    = "40P01"
	pgAdminShutdown       = "57P01"
)

// translateError maps driver errors onto the package sentinels. Errors it
// does not recognise are returned unchanged.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation, pgForeignKeyViolation, pgCheckViolation, pgNotNullViolation:
			return &ConstraintError{Constraint: pgErr.ConstraintName, Cause: err}
		case pgSerializationFail, pgDeadlockDetected, pgAdminShutdown:
			return fmt.Errorf("%w: %v", ErrTransient, err)
		}
		// Class 08: connection exception.
		if len(pgErr.Code) == 5 && pgErr.Code[:2] == "08" {
			return fmt.Errorf("%w: %v", ErrTransient, err)
		}
		return err
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) || pgconn.SafeToRetry(err) || pgconn.Timeout(err) {
		return fmt.Errorf("%w: %v", ErrTransient, err)
	}
	return err
}
