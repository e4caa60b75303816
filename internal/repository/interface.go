package repository

import (
	"context"

	"github.com/newgen/backend/internal/model"
)

// DB checks that the backing store is reachable.
type DB interface {
	Ping(ctx context.Context) error
}

// TeamRepository persists teams. Delete cascades to the team's persons.
type TeamRepository interface {
	List(ctx context.Context) ([]*model.Team, error)
	GetByID(ctx context.Context, id string) (*model.Team, error)
	GetByName(ctx context.Context, name string) (*model.Team, error)
	GetWithMembers(ctx context.Context, id string) (*model.Team, error)
	// ListWithMembers returns every team with its active members.
	ListWithMembers(ctx context.Context) ([]*model.Team, error)
	// Save inserts the team when ID is empty and updates it otherwise.
	Save(ctx context.Context, team *model.Team) error
	Delete(ctx context.Context, id string) error
	ExistsByName(ctx context.Context, name string) (bool, error)
	Count(ctx context.Context) (int, error)
}

// PersonRepository persists persons. Persons are never removed; SoftDelete
// flips their status to Inactive.
type PersonRepository interface {
	ListActive(ctx context.Context) ([]*model.Person, error)
	GetByID(ctx context.Context, id string) (*model.Person, error)
	GetByEmail(ctx context.Context, email string) (*model.Person, error)
	ListByTeam(ctx context.Context, teamID string) ([]*model.Person, error)
	// Save inserts the person when ID is empty and updates it otherwise.
	Save(ctx context.Context, person *model.Person) error
	SoftDelete(ctx context.Context, id string) (*model.Person, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	CountActive(ctx context.Context) (int, error)
	Search(ctx context.Context, keyword string) ([]*model.Person, error)
}

// ContactRepository defines the persistence interface for contact messages.
// Messages are insert-only apart from the read flag.
type ContactRepository interface {
	Save(ctx context.Context, msg *model.ContactMessage) error
	GetByID(ctx context.Context, id string) (*model.ContactMessage, error)
	List(ctx context.Context) ([]*model.ContactMessage, error)
	ListUnread(ctx context.Context) ([]*model.ContactMessage, error)
	CountUnread(ctx context.Context) (int, error)
	MarkAsRead(ctx context.Context, id string) (*model.ContactMessage, error)
	Delete(ctx context.Context, id string) error
}

// ThemeRepository stores key/value settings, one row per key.
type ThemeRepository interface {
	GetByKey(ctx context.Context, key string) (*model.ThemeSetting, error)
	Upsert(ctx context.Context, key, value string) (*model.ThemeSetting, error)
	// CreateIfAbsent writes the value only when the key has no row yet.
	CreateIfAbsent(ctx context.Context, key, value string) (bool, error)
}

// UserRepository persists administrative identities.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	TouchLastLogin(ctx context.Context, id string) error
}
