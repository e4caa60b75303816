package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/newgen/backend/internal/model"
)

// PgTeamRepository is the PostgreSQL implementation of TeamRepository.
type PgTeamRepository struct {
	pool *pgxpool.Pool
}

// NewPgTeamRepository creates a PgTeamRepository backed by the given pool.
func NewPgTeamRepository(pool *pgxpool.Pool) *PgTeamRepository {
	return &PgTeamRepository{pool: pool}
}

var _ TeamRepository = (*PgTeamRepository)(nil)

// Ping checks the connection (DB interface).
func (r *PgTeamRepository) Ping(ctx context.Context) error {
	return translateError(r.pool.Ping(ctx))
}

const teamSelect = `SELECT t.id, t.name, COALESCE(t.description, ''), COALESCE(t.icon, ''),
	COALESCE(t.team_lead, ''), t.created_at, t.updated_at,
	(SELECT COUNT(*) FROM persons p WHERE p.team_id = t.id AND p.status = 'Active')
	FROM teams t`

func scanTeam(scan func(...any) error) (*model.Team, error) {
	var t model.Team
	if err := scan(&t.ID, &t.Name, &t.Description, &t.Icon, &t.TeamLead, &t.CreatedAt, &t.UpdatedAt, &t.MemberCount); err != nil {
		return nil, translateError(err)
	}
	return &t, nil
}

// List returns all teams ordered by name, each with its member count.
func (r *PgTeamRepository) List(ctx context.Context) ([]*model.Team, error) {
	rows, err := r.pool.Query(ctx, teamSelect+` ORDER BY t.name`)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	var teams []*model.Team
	for rows.Next() {
		t, err := scanTeam(rows.Scan)
		if err != nil {
			return nil, err
		}
		teams = append(teams, t)
	}
	return teams, translateError(rows.Err())
}

// ListWithMembers returns every team ordered by name, each with its active
// members. Members are loaded with one query for all teams.
func (r *PgTeamRepository) ListWithMembers(ctx context.Context) ([]*model.Team, error) {
	teams, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	members, err := queryPersons(ctx, r.pool,
		personSelect+` WHERE p.team_id IS NOT NULL AND p.status = $1 ORDER BY p.first_name, p.last_name`,
		model.PersonStatusActive)
	if err != nil {
		return nil, err
	}

	byTeam := make(map[string]*model.Team, len(teams))
	for _, t := range teams {
		t.Members = []*model.Person{}
		byTeam[t.ID] = t
	}
	for _, p := range members {
		if t, ok := byTeam[*p.TeamID]; ok {
			t.Members = append(t.Members, p)
		}
	}
	return teams, nil
}

// GetByID returns the team with the given id.
func (r *PgTeamRepository) GetByID(ctx context.Context, id string) (*model.Team, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	return scanTeam(r.pool.QueryRow(ctx, teamSelect+` WHERE t.id = $1`, id).Scan)
}

// GetByName returns the team with the given exact name.
func (r *PgTeamRepository) GetByName(ctx context.Context, name string) (*model.Team, error) {
	return scanTeam(r.pool.QueryRow(ctx, teamSelect+` WHERE t.name = $1`, name).Scan)
}

// GetWithMembers returns the team with its active members ordered by first name.
func (r *PgTeamRepository) GetWithMembers(ctx context.Context, id string) (*model.Team, error) {
	team, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	members, err := queryPersons(ctx, r.pool,
		personSelect+` WHERE p.team_id = $1 AND p.status = $2 ORDER BY p.first_name, p.last_name`,
		id, model.PersonStatusActive)
	if err != nil {
		return nil, err
	}
	team.Members = members
	return team, nil
}

// Save inserts a new team when team.ID is empty, otherwise updates the
// existing row. Generated id and timestamps are written back into team.
func (r *PgTeamRepository) Save(ctx context.Context, team *model.Team) error {
	if team.ID == "" {
		err := r.pool.QueryRow(ctx,
			`INSERT INTO teams (name, description, icon, team_lead)
			 VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), NULLIF($4, ''))
			 RETURNING id, created_at, updated_at`,
			team.Name, team.Description, team.Icon, team.TeamLead,
		).Scan(&team.ID, &team.CreatedAt, &team.UpdatedAt)
		return translateError(err)
	}

	if !validID(team.ID) {
		return ErrNotFound
	}
	err := r.pool.QueryRow(ctx,
		`UPDATE teams
		 SET name = $2, description = NULLIF($3, ''), icon = NULLIF($4, ''),
		     team_lead = NULLIF($5, ''), updated_at = NOW()
		 WHERE id = $1
		 RETURNING created_at, updated_at,
		     (SELECT COUNT(*) FROM persons p WHERE p.team_id = teams.id AND p.status = 'Active')`,
		team.ID, team.Name, team.Description, team.Icon, team.TeamLead,
	).Scan(&team.CreatedAt, &team.UpdatedAt, &team.MemberCount)
	return translateError(err)
}

// Delete removes the team and every person that belongs to it in a single
// transaction. A missing id yields ErrNotFound and changes nothing.
func (r *PgTeamRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return ErrNotFound
	}
	return inTx(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM persons WHERE team_id = $1`, id); err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, `DELETE FROM teams WHERE id = $1`, id)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// ExistsByName reports whether a team with the exact name exists.
func (r *PgTeamRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM teams WHERE name = $1)`, name).Scan(&exists)
	return exists, translateError(err)
}

// Count returns the total number of teams.
func (r *PgTeamRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM teams`).Scan(&n)
	return n, translateError(err)
}
