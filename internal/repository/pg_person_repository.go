package repository

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/newgen/backend/internal/model"
)

// PgPersonRepository is the PostgreSQL implementation of PersonRepository.
type PgPersonRepository struct {
	pool *pgxpool.Pool
}

// NewPgPersonRepository creates a PgPersonRepository backed by the given pool.
func NewPgPersonRepository(pool *pgxpool.Pool) *PgPersonRepository {
	return &PgPersonRepository{pool: pool}
}

var _ PersonRepository = (*PgPersonRepository)(nil)

// personColumns expects the person row aliased as p and teams joined as t.
const personColumns = `p.id, p.first_name, p.last_name, p.email, COALESCE(p.phone, ''),
	COALESCE(p.role, ''), COALESCE(p.department, ''), p.join_date, p.status, p.team_id,
	COALESCE(t.name, ''), p.created_at, p.updated_at`

const personSelect = `SELECT ` + personColumns + ` FROM persons p LEFT JOIN teams t ON t.id = p.team_id`

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func scanPerson(scan func(...any) error) (*model.Person, error) {
	var p model.Person
	if err := scan(&p.ID, &p.FirstName, &p.LastName, &p.Email, &p.Phone, &p.Role, &p.Department,
		&p.JoinDate, &p.Status, &p.TeamID, &p.TeamName, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, translateError(err)
	}
	return &p, nil
}

func queryPersons(ctx context.Context, q querier, sql string, args ...any) ([]*model.Person, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	var persons []*model.Person
	for rows.Next() {
		p, err := scanPerson(rows.Scan)
		if err != nil {
			return nil, err
		}
		persons = append(persons, p)
	}
	return persons, translateError(rows.Err())
}

// ListActive returns every active person ordered by name.
func (r *PgPersonRepository) ListActive(ctx context.Context) ([]*model.Person, error) {
	return queryPersons(ctx, r.pool,
		personSelect+` WHERE p.status = $1 ORDER BY p.first_name, p.last_name`, model.PersonStatusActive)
}

// GetByID returns the person with the given id regardless of status.
func (r *PgPersonRepository) GetByID(ctx context.Context, id string) (*model.Person, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	return scanPerson(r.pool.QueryRow(ctx, personSelect+` WHERE p.id = $1`, id).Scan)
}

// GetByEmail returns the person with the given email regardless of status.
func (r *PgPersonRepository) GetByEmail(ctx context.Context, email string) (*model.Person, error) {
	return scanPerson(r.pool.QueryRow(ctx, personSelect+` WHERE p.email = $1`, email).Scan)
}

// ListByTeam returns the active members of a team ordered by first name.
func (r *PgPersonRepository) ListByTeam(ctx context.Context, teamID string) ([]*model.Person, error) {
	if !validID(teamID) {
		return nil, nil
	}
	return queryPersons(ctx, r.pool,
		personSelect+` WHERE p.team_id = $1 AND p.status = $2 ORDER BY p.first_name, p.last_name`,
		teamID, model.PersonStatusActive)
}

// Save inserts a new person when person.ID is empty, otherwise overwrites the
// stored row. Generated fields and the joined team name are written back.
func (r *PgPersonRepository) Save(ctx context.Context, person *model.Person) error {
	if person.Status == "" {
		person.Status = model.PersonStatusActive
	}
	if person.TeamID != nil && !validID(*person.TeamID) {
		return &ConstraintError{Constraint: ConstraintPersonTeam}
	}

	if person.ID == "" {
		err := r.pool.QueryRow(ctx,
			`WITH p AS (
				INSERT INTO persons (first_name, last_name, email, phone, role, department, join_date, status, team_id)
				VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''), $7, $8, $9)
				RETURNING id, team_id, created_at, updated_at
			)
			SELECT p.id, COALESCE(t.name, ''), p.created_at, p.updated_at
			FROM p LEFT JOIN teams t ON t.id = p.team_id`,
			person.FirstName, person.LastName, person.Email, person.Phone, person.Role,
			person.Department, person.JoinDate, person.Status, person.TeamID,
		).Scan(&person.ID, &person.TeamName, &person.CreatedAt, &person.UpdatedAt)
		return translateError(err)
	}

	if !validID(person.ID) {
		return ErrNotFound
	}
	err := r.pool.QueryRow(ctx,
		`WITH p AS (
			UPDATE persons
			SET first_name = $2, last_name = $3, email = $4, phone = NULLIF($5, ''),
			    role = NULLIF($6, ''), department = NULLIF($7, ''), join_date = $8,
			    status = $9, team_id = $10, updated_at = NOW()
			WHERE id = $1
			RETURNING team_id, created_at, updated_at
		)
		SELECT COALESCE(t.name, ''), p.created_at, p.updated_at
		FROM p LEFT JOIN teams t ON t.id = p.team_id`,
		person.ID, person.FirstName, person.LastName, person.Email, person.Phone, person.Role,
		person.Department, person.JoinDate, person.Status, person.TeamID,
	).Scan(&person.TeamName, &person.CreatedAt, &person.UpdatedAt)
	return translateError(err)
}

// SoftDelete marks the person Inactive. Repeating it is harmless.
func (r *PgPersonRepository) SoftDelete(ctx context.Context, id string) (*model.Person, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	return scanPerson(r.pool.QueryRow(ctx,
		`WITH p AS (
			UPDATE persons SET status = $2, updated_at = NOW()
			WHERE id = $1
			RETURNING *
		)
		SELECT `+personColumns+` FROM p LEFT JOIN teams t ON t.id = p.team_id`,
		id, model.PersonStatusInactive,
	).Scan)
}

// ExistsByEmail reports whether any person, active or not, uses the email.
func (r *PgPersonRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM persons WHERE email = $1)`, email).Scan(&exists)
	return exists, translateError(err)
}

// CountActive returns the number of active persons.
func (r *PgPersonRepository) CountActive(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM persons WHERE status = $1`, model.PersonStatusActive).Scan(&n)
	return n, translateError(err)
}

// Search matches keyword as a case-insensitive substring of first name, last
// name or email. Persons of any status are returned.
func (r *PgPersonRepository) Search(ctx context.Context, keyword string) ([]*model.Person, error) {
	pattern := "%" + escapeLike(keyword) + "%"
	return queryPersons(ctx, r.pool,
		personSelect+` WHERE p.first_name ILIKE $1 OR p.last_name ILIKE $1 OR p.email ILIKE $1
		ORDER BY p.first_name, p.last_name`, pattern)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes keyword match literally inside a LIKE pattern.
func escapeLike(keyword string) string {
	return likeEscaper.Replace(keyword)
}
