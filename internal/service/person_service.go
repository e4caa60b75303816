package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/newgen/backend/internal/model"
	"github.com/newgen/backend/internal/repository"
)

// PersonService manages members. Persons are soft-deleted only.
type PersonService interface {
	ListPersons(ctx context.Context) ([]*model.Person, error)
	GetPerson(ctx context.Context, id string) (*model.Person, error)
	GetPersonByEmail(ctx context.Context, email string) (*model.Person, error)
	CreatePerson(ctx context.Context, person *model.Person) (*model.Person, error)
	UpdatePerson(ctx context.Context, id string, patch model.PersonPatch) (*model.Person, error)
	DeletePerson(ctx context.Context, id string) (*model.Person, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	CountActivePersons(ctx context.Context) (int, error)
	ListByTeam(ctx context.Context, teamID string) ([]*model.Person, error)
	SearchPersons(ctx context.Context, keyword string) ([]*model.Person, error)
}

// PersonServiceImpl is the production PersonService.
type PersonServiceImpl struct {
	repo repository.PersonRepository
}

// NewPersonService creates a PersonService backed by repo.
func NewPersonService(repo repository.PersonRepository) PersonService {
	return &PersonServiceImpl{repo: repo}
}

// ListPersons returns the active persons.
func (s *PersonServiceImpl) ListPersons(ctx context.Context) ([]*model.Person, error) {
	return retryRead(ctx, "list persons", s.repo.ListActive)
}

// GetPerson returns a person of any status.
func (s *PersonServiceImpl) GetPerson(ctx context.Context, id string) (*model.Person, error) {
	return retryRead(ctx, "get person", func(ctx context.Context) (*model.Person, error) {
		return s.repo.GetByID(ctx, id)
	})
}

// GetPersonByEmail returns the person, of any status, using email.
func (s *PersonServiceImpl) GetPersonByEmail(ctx context.Context, email string) (*model.Person, error) {
	return retryRead(ctx, "get person by email", func(ctx context.Context) (*model.Person, error) {
		return s.repo.GetByEmail(ctx, strings.TrimSpace(email))
	})
}

func normalizePerson(p *model.Person) {
	p.FirstName = strings.TrimSpace(p.FirstName)
	p.LastName = strings.TrimSpace(p.LastName)
	p.Email = strings.TrimSpace(p.Email)
	p.Phone = strings.TrimSpace(p.Phone)
	p.Role = strings.TrimSpace(p.Role)
	p.Department = strings.TrimSpace(p.Department)
	if p.Status == "" {
		p.Status = model.PersonStatusActive
	}
	if p.TeamID != nil && strings.TrimSpace(*p.TeamID) == "" {
		p.TeamID = nil
	}
}

// CreatePerson validates and inserts a new person. Status defaults to
// Active; a duplicate email fails with repository.ErrConstraintViolation.
func (s *PersonServiceImpl) CreatePerson(ctx context.Context, person *model.Person) (*model.Person, error) {
	p := *person
	p.ID = ""
	p.TeamName = ""
	normalizePerson(&p)
	if err := validateStruct(&p); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, &p); err != nil {
		return nil, fmt.Errorf("create person: %w", err)
	}
	slog.Info("person created", "person_id", p.ID)
	return &p, nil
}

// UpdatePerson merges the fields present in patch into the stored person and
// saves it. Fields absent from the patch keep their stored values.
func (s *PersonServiceImpl) UpdatePerson(ctx context.Context, id string, patch model.PersonPatch) (*model.Person, error) {
	person, err := s.GetPerson(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.IsEmpty() {
		return person, nil
	}
	patch.Apply(person)
	normalizePerson(person)
	if err := validateStruct(person); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, person); err != nil {
		return nil, fmt.Errorf("update person: %w", err)
	}
	return person, nil
}

// DeletePerson marks the person Inactive and returns the updated record.
// Deleting an already inactive person succeeds.
func (s *PersonServiceImpl) DeletePerson(ctx context.Context, id string) (*model.Person, error) {
	person, err := s.repo.SoftDelete(ctx, id)
	if err != nil {
		return nil, err
	}
	slog.Info("person deactivated", "person_id", id)
	return person, nil
}

// ExistsByEmail reports whether any person, active or not, uses email.
func (s *PersonServiceImpl) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return retryRead(ctx, "person exists", func(ctx context.Context) (bool, error) {
		return s.repo.ExistsByEmail(ctx, strings.TrimSpace(email))
	})
}

// CountActivePersons returns the number of active persons.
func (s *PersonServiceImpl) CountActivePersons(ctx context.Context) (int, error) {
	return retryRead(ctx, "count persons", s.repo.CountActive)
}

// ListByTeam returns the active members of a team.
func (s *PersonServiceImpl) ListByTeam(ctx context.Context, teamID string) ([]*model.Person, error) {
	return retryRead(ctx, "list team members", func(ctx context.Context) ([]*model.Person, error) {
		return s.repo.ListByTeam(ctx, teamID)
	})
}

// SearchPersons finds persons of any status whose first name, last name or
// email contains keyword, ignoring case.
func (s *PersonServiceImpl) SearchPersons(ctx context.Context, keyword string) ([]*model.Person, error) {
	keyword = strings.TrimSpace(keyword)
	return retryRead(ctx, "search persons", func(ctx context.Context) ([]*model.Person, error) {
		return s.repo.Search(ctx, keyword)
	})
}
