package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/newgen/backend/internal/model"
	"github.com/newgen/backend/internal/repository"
)

// TeamService manages teams. Deleting a team deletes its members.
type TeamService interface {
	ListTeams(ctx context.Context) ([]*model.Team, error)
	GetTeam(ctx context.Context, id string) (*model.Team, error)
	GetTeamWithMembers(ctx context.Context, id string) (*model.Team, error)
	ListTeamsWithMembers(ctx context.Context) ([]*model.Team, error)
	GetTeamByName(ctx context.Context, name string) (*model.Team, error)
	CreateTeam(ctx context.Context, team *model.Team) (*model.Team, error)
	UpdateTeam(ctx context.Context, id string, patch model.TeamPatch) (*model.Team, error)
	DeleteTeam(ctx context.Context, id string) error
	ExistsByName(ctx context.Context, name string) (bool, error)
	CountTeams(ctx context.Context) (int, error)
}

// TeamServiceImpl is the production TeamService.
type TeamServiceImpl struct {
	repo repository.TeamRepository
}

// NewTeamService creates a TeamService backed by repo.
func NewTeamService(repo repository.TeamRepository) TeamService {
	return &TeamServiceImpl{repo: repo}
}

// ListTeams returns all teams ordered by name with member counts.
func (s *TeamServiceImpl) ListTeams(ctx context.Context) ([]*model.Team, error) {
	return retryRead(ctx, "list teams", s.repo.List)
}

// GetTeam returns a team without its members.
func (s *TeamServiceImpl) GetTeam(ctx context.Context, id string) (*model.Team, error) {
	return retryRead(ctx, "get team", func(ctx context.Context) (*model.Team, error) {
		return s.repo.GetByID(ctx, id)
	})
}

// GetTeamWithMembers returns a team and its active members.
func (s *TeamServiceImpl) GetTeamWithMembers(ctx context.Context, id string) (*model.Team, error) {
	return retryRead(ctx, "get team with members", func(ctx context.Context) (*model.Team, error) {
		return s.repo.GetWithMembers(ctx, id)
	})
}

// ListTeamsWithMembers returns all teams ordered by name, each with its
// active members.
func (s *TeamServiceImpl) ListTeamsWithMembers(ctx context.Context) ([]*model.Team, error) {
	return retryRead(ctx, "list teams with members", s.repo.ListWithMembers)
}

// GetTeamByName returns the team with the exact name.
func (s *TeamServiceImpl) GetTeamByName(ctx context.Context, name string) (*model.Team, error) {
	return retryRead(ctx, "get team by name", func(ctx context.Context) (*model.Team, error) {
		return s.repo.GetByName(ctx, strings.TrimSpace(name))
	})
}

func normalizeTeam(t *model.Team) {
	t.Name = strings.TrimSpace(t.Name)
	t.Description = strings.TrimSpace(t.Description)
	t.Icon = strings.TrimSpace(t.Icon)
	t.TeamLead = strings.TrimSpace(t.TeamLead)
}

// CreateTeam validates and inserts a new team. A duplicate name fails with
// repository.ErrConstraintViolation.
func (s *TeamServiceImpl) CreateTeam(ctx context.Context, team *model.Team) (*model.Team, error) {
	t := &model.Team{
		Name:        team.Name,
		Description: team.Description,
		Icon:        team.Icon,
		TeamLead:    team.TeamLead,
	}
	normalizeTeam(t)
	if err := validateStruct(t); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, t); err != nil {
		return nil, fmt.Errorf("create team: %w", err)
	}
	slog.Info("team created", "team_id", t.ID, "name", t.Name)
	return t, nil
}

// UpdateTeam applies patch to an existing team.
func (s *TeamServiceImpl) UpdateTeam(ctx context.Context, id string, patch model.TeamPatch) (*model.Team, error) {
	team, err := s.GetTeam(ctx, id)
	if err != nil {
		return nil, err
	}
	patch.Apply(team)
	normalizeTeam(team)
	if err := validateStruct(team); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, team); err != nil {
		return nil, fmt.Errorf("update team: %w", err)
	}
	return team, nil
}

// DeleteTeam removes the team and its members. An unknown id returns
// repository.ErrNotFound and changes nothing.
func (s *TeamServiceImpl) DeleteTeam(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("team deleted", "team_id", id)
	return nil
}

// ExistsByName reports whether the name is taken.
func (s *TeamServiceImpl) ExistsByName(ctx context.Context, name string) (bool, error) {
	return retryRead(ctx, "team exists", func(ctx context.Context) (bool, error) {
		return s.repo.ExistsByName(ctx, strings.TrimSpace(name))
	})
}

// CountTeams returns the total number of teams.
func (s *TeamServiceImpl) CountTeams(ctx context.Context) (int, error) {
	return retryRead(ctx, "count teams", s.repo.Count)
}
