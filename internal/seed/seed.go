// Package seed loads teams and members from a YAML file into the store.
// Running it twice leaves the store unchanged: teams match by name and
// members by email.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/newgen/backend/internal/model"
	"github.com/newgen/backend/internal/repository"
	"github.com/newgen/backend/internal/service"
	"gopkg.in/yaml.v3"
)

// File is the top-level seed document.
type File struct {
	Teams []Team `yaml:"teams"`
}

// Team is a seeded team and its members.
type Team struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Icon        string   `yaml:"icon"`
	TeamLead    string   `yaml:"team_lead"`
	Members     []Member `yaml:"members"`
}

// Member is a seeded person.
type Member struct {
	FirstName  string `yaml:"first_name"`
	LastName   string `yaml:"last_name"`
	Email      string `yaml:"email"`
	Phone      string `yaml:"phone"`
	Role       string `yaml:"role"`
	Department string `yaml:"department"`
	JoinDate   string `yaml:"join_date"`
	Status     string `yaml:"status"`
}

// Parse decodes a seed document. Unknown keys are rejected.
func Parse(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var f File
	if err := dec.Decode(&f); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode seed: %w", err)
	}
	return &f, nil
}

// LoadFile reads and parses the seed file at path.
func LoadFile(path string) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer fh.Close()
	return Parse(fh)
}

// Report counts what a seed run changed.
type Report struct {
	TeamsCreated   int
	TeamsUpdated   int
	PersonsCreated int
	PersonsUpdated int
}

// Seeder writes seed documents through the domain services.
type Seeder struct {
	teams   service.TeamService
	persons service.PersonService
	theme   service.ThemeService
}

// New creates a Seeder.
func New(teams service.TeamService, persons service.PersonService, theme service.ThemeService) *Seeder {
	return &Seeder{teams: teams, persons: persons, theme: theme}
}

// Run upserts every team and member in f and initialises the theme.
func (s *Seeder) Run(ctx context.Context, f *File) (Report, error) {
	var rep Report
	if err := s.theme.InitializeDefaultTheme(ctx); err != nil {
		return rep, err
	}

	for _, t := range f.Teams {
		teamID, err := s.upsertTeam(ctx, t, &rep)
		if err != nil {
			return rep, err
		}
		for _, m := range t.Members {
			if err := s.upsertMember(ctx, m, teamID, &rep); err != nil {
				return rep, err
			}
		}
	}
	slog.Info("seed completed",
		"teams_created", rep.TeamsCreated, "teams_updated", rep.TeamsUpdated,
		"persons_created", rep.PersonsCreated, "persons_updated", rep.PersonsUpdated)
	return rep, nil
}

func (s *Seeder) upsertTeam(ctx context.Context, t Team, rep *Report) (string, error) {
	name := strings.TrimSpace(t.Name)
	existing, err := s.teams.GetTeamByName(ctx, name)
	switch {
	case err == nil:
		_, err := s.teams.UpdateTeam(ctx, existing.ID, model.TeamPatch{
			Description: &t.Description,
			Icon:        &t.Icon,
			TeamLead:    &t.TeamLead,
		})
		if err != nil {
			return "", fmt.Errorf("update team %q: %w", name, err)
		}
		rep.TeamsUpdated++
		return existing.ID, nil
	case !errors.Is(err, repository.ErrNotFound):
		return "", fmt.Errorf("find team %q: %w", name, err)
	}

	created, err := s.teams.CreateTeam(ctx, &model.Team{
		Name:        name,
		Description: t.Description,
		Icon:        t.Icon,
		TeamLead:    t.TeamLead,
	})
	if err != nil {
		return "", fmt.Errorf("create team %q: %w", name, err)
	}
	rep.TeamsCreated++
	return created.ID, nil
}

func (s *Seeder) upsertMember(ctx context.Context, m Member, teamID string, rep *Report) error {
	email := strings.TrimSpace(m.Email)
	var joinDate *time.Time
	if m.JoinDate != "" {
		d, err := time.Parse(model.DateLayout, m.JoinDate)
		if err != nil {
			return fmt.Errorf("member %q: join_date: %w", email, err)
		}
		joinDate = &d
	}

	existing, err := s.persons.GetPersonByEmail(ctx, email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("find member %q: %w", email, err)
	}
	if err == nil {
		patch := model.PersonPatch{
			FirstName:  &m.FirstName,
			LastName:   &m.LastName,
			Phone:      &m.Phone,
			Role:       &m.Role,
			Department: &m.Department,
			JoinDate:   joinDate,
			TeamID:     &teamID,
		}
		if m.Status != "" {
			patch.Status = &m.Status
		}
		if _, err := s.persons.UpdatePerson(ctx, existing.ID, patch); err != nil {
			return fmt.Errorf("update member %q: %w", email, err)
		}
		rep.PersonsUpdated++
		return nil
	}

	_, err = s.persons.CreatePerson(ctx, &model.Person{
		FirstName:  m.FirstName,
		LastName:   m.LastName,
		Email:      email,
		Phone:      m.Phone,
		Role:       m.Role,
		Department: m.Department,
		JoinDate:   joinDate,
		Status:     m.Status,
		TeamID:     &teamID,
	})
	if err != nil {
		return fmt.Errorf("create member %q: %w", email, err)
	}
	rep.PersonsCreated++
	return nil
}
