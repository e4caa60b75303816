// Package repotest holds behaviour checks shared by every repository
// implementation. Each backend's tests call Run with a factory returning a
// fresh, empty store.
package repotest

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/newgen/backend/internal/model"
	"github.com/newgen/backend/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Set is one backend's repositories over a single store.
type Set struct {
	Teams    repository.TeamRepository
	Persons  repository.PersonRepository
	Contacts repository.ContactRepository
	Themes   repository.ThemeRepository
	Users    repository.UserRepository
}

// Run executes the shared checks. open must return an empty store.
func Run(t *testing.T, open func(t *testing.T) Set) {
	t.Run("Teams", func(t *testing.T) { testTeams(t, open(t)) })
	t.Run("TeamsWithMembers", func(t *testing.T) { testTeamsWithMembers(t, open(t)) })
	t.Run("TeamDeleteCascades", func(t *testing.T) { testTeamDeleteCascades(t, open(t)) })
	t.Run("Persons", func(t *testing.T) { testPersons(t, open(t)) })
	t.Run("PersonConstraints", func(t *testing.T) { testPersonConstraints(t, open(t)) })
	t.Run("Contacts", func(t *testing.T) { testContacts(t, open(t)) })
	t.Run("Themes", func(t *testing.T) { testThemes(t, open(t)) })
	t.Run("Users", func(t *testing.T) { testUsers(t, open(t)) })
}

const missingID = "00000000-0000-4000-8000-000000000000"

func mustTeam(t *testing.T, s Set, name string) *model.Team {
	t.Helper()
	team := &model.Team{Name: name, Description: name + " team", Icon: "fa-users"}
	require.NoError(t, s.Teams.Save(context.Background(), team))
	require.NotEmpty(t, team.ID)
	return team
}

func mustPerson(t *testing.T, s Set, first, last, email string, teamID *string) *model.Person {
	t.Helper()
	p := &model.Person{FirstName: first, LastName: last, Email: email, Status: model.PersonStatusActive, TeamID: teamID}
	require.NoError(t, s.Persons.Save(context.Background(), p))
	require.NotEmpty(t, p.ID)
	return p
}

func testTeams(t *testing.T, s Set) {
	ctx := context.Background()

	b := mustTeam(t, s, "Beta")
	a := mustTeam(t, s, "Alpha")
	assert.False(t, a.CreatedAt.IsZero())

	err := s.Teams.Save(ctx, &model.Team{Name: "Alpha"})
	assert.ErrorIs(t, err, repository.ErrConstraintViolation)

	teams, err := s.Teams.List(ctx)
	require.NoError(t, err)
	require.Len(t, teams, 2)
	assert.Equal(t, "Alpha", teams[0].Name)
	assert.Equal(t, "Beta", teams[1].Name)

	mustPerson(t, s, "Ana", "Lee", "ana@example.org", &b.ID)
	got, err := s.Teams.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.MemberCount)

	byName, err := s.Teams.GetByName(ctx, "Beta")
	require.NoError(t, err)
	assert.Equal(t, b.ID, byName.ID)

	withMembers, err := s.Teams.GetWithMembers(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, withMembers.Members, 1)
	assert.Equal(t, "Ana", withMembers.Members[0].FirstName)

	a.TeamLead = "Kim"
	require.NoError(t, s.Teams.Save(ctx, a))
	got, err = s.Teams.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Kim", got.TeamLead)

	exists, err := s.Teams.ExistsByName(ctx, "Alpha")
	require.NoError(t, err)
	assert.True(t, exists)
	exists, err = s.Teams.ExistsByName(ctx, "Gamma")
	require.NoError(t, err)
	assert.False(t, exists)

	n, err := s.Teams.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, err = s.Teams.GetByID(ctx, missingID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = s.Teams.GetByID(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, s.Teams.Delete(ctx, missingID), repository.ErrNotFound)
}

func testTeamsWithMembers(t *testing.T, s Set) {
	ctx := context.Background()
	tech := mustTeam(t, s, "Tech")
	empty := mustTeam(t, s, "Arts")
	mustPerson(t, s, "Zoe", "Park", "zoe@example.org", &tech.ID)
	mustPerson(t, s, "Ben", "Ito", "ben@example.org", &tech.ID)
	gone := mustPerson(t, s, "Cy", "Ray", "cy@example.org", &tech.ID)
	mustPerson(t, s, "Dee", "Solo", "dee@example.org", nil)
	_, err := s.Persons.SoftDelete(ctx, gone.ID)
	require.NoError(t, err)

	teams, err := s.Teams.ListWithMembers(ctx)
	require.NoError(t, err)
	require.Len(t, teams, 2)

	assert.Equal(t, empty.ID, teams[0].ID)
	assert.NotNil(t, teams[0].Members)
	assert.Empty(t, teams[0].Members)
	assert.Equal(t, 0, teams[0].MemberCount)

	assert.Equal(t, tech.ID, teams[1].ID)
	require.Len(t, teams[1].Members, 2)
	assert.Equal(t, "Ben", teams[1].Members[0].FirstName)
	assert.Equal(t, "Zoe", teams[1].Members[1].FirstName)
	assert.Equal(t, "Tech", teams[1].Members[0].TeamName)
	assert.Equal(t, 2, teams[1].MemberCount)

	got, err := s.Teams.GetByID(ctx, tech.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.MemberCount, "inactive members are not counted")
}

func testTeamDeleteCascades(t *testing.T, s Set) {
	ctx := context.Background()
	team := mustTeam(t, s, "Media")
	other := mustTeam(t, s, "Ops")
	p1 := mustPerson(t, s, "A", "One", "a1@example.org", &team.ID)
	p2 := mustPerson(t, s, "B", "Two", "b2@example.org", &team.ID)
	keep := mustPerson(t, s, "C", "Three", "c3@example.org", &other.ID)

	require.NoError(t, s.Teams.Delete(ctx, team.ID))

	for _, id := range []string{p1.ID, p2.ID} {
		_, err := s.Persons.GetByID(ctx, id)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	}
	_, err := s.Persons.GetByID(ctx, keep.ID)
	assert.NoError(t, err)
	_, err = s.Teams.GetByID(ctx, team.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func testPersons(t *testing.T, s Set) {
	ctx := context.Background()
	team := mustTeam(t, s, "Design")
	join := time.Date(2023, 4, 1, 0, 0, 0, 0, time.UTC)

	ana := &model.Person{
		FirstName: "Ana", LastName: "Lee", Email: "ana@example.org",
		Role: "Designer", JoinDate: &join, Status: model.PersonStatusActive, TeamID: &team.ID,
	}
	require.NoError(t, s.Persons.Save(ctx, ana))
	assert.Equal(t, "Design", ana.TeamName)
	bo := mustPerson(t, s, "Bo", "Kim", "bo@example.org", nil)

	got, err := s.Persons.GetByID(ctx, ana.ID)
	require.NoError(t, err)
	assert.Equal(t, "Design", got.TeamName)
	require.NotNil(t, got.JoinDate)
	assert.Equal(t, "2023-04-01", got.JoinDate.Format(model.DateLayout))

	byEmail, err := s.Persons.GetByEmail(ctx, "bo@example.org")
	require.NoError(t, err)
	assert.Equal(t, bo.ID, byEmail.ID)

	members, err := s.Persons.ListByTeam(ctx, team.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)

	removed, err := s.Persons.SoftDelete(ctx, ana.ID)
	require.NoError(t, err)
	assert.Equal(t, model.PersonStatusInactive, removed.Status)

	again, err := s.Persons.SoftDelete(ctx, ana.ID)
	require.NoError(t, err)
	assert.Equal(t, model.PersonStatusInactive, again.Status)

	active, err := s.Persons.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, bo.ID, active[0].ID)

	members, err = s.Persons.ListByTeam(ctx, team.ID)
	require.NoError(t, err)
	assert.Empty(t, members)

	n, err := s.Persons.CountActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	exists, err := s.Persons.ExistsByEmail(ctx, "ana@example.org")
	require.NoError(t, err)
	assert.True(t, exists, "soft-deleted persons keep their email")

	found, err := s.Persons.Search(ctx, "ANA")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, ana.ID, found[0].ID)

	found, err = s.Persons.Search(ctx, "%")
	require.NoError(t, err)
	assert.Empty(t, found)

	_, err = s.Persons.SoftDelete(ctx, missingID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func testPersonConstraints(t *testing.T, s Set) {
	ctx := context.Background()
	mustPerson(t, s, "Ana", "Lee", "ana@example.org", nil)

	err := s.Persons.Save(ctx, &model.Person{FirstName: "X", LastName: "Y", Email: "ana@example.org", Status: model.PersonStatusActive})
	assert.ErrorIs(t, err, repository.ErrConstraintViolation)

	missing := missingID
	err = s.Persons.Save(ctx, &model.Person{FirstName: "X", LastName: "Y", Email: "x@example.org", Status: model.PersonStatusActive, TeamID: &missing})
	var cerr *repository.ConstraintError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, repository.ConstraintPersonTeam, cerr.Constraint)

	err = s.Persons.Save(ctx, &model.Person{FirstName: "X", LastName: "Y", Email: "z@example.org", Status: "Retired"})
	assert.ErrorIs(t, err, repository.ErrConstraintViolation)
}

func testContacts(t *testing.T, s Set) {
	ctx := context.Background()
	var ids []string
	for i := 0; i < 3; i++ {
		msg := &model.ContactMessage{
			Name:      fmt.Sprintf("Visitor %d", i),
			Email:     fmt.Sprintf("v%d@example.org", i),
			Message:   "hello",
			IPAddress: "203.0.113.9",
		}
		require.NoError(t, s.Contacts.Save(ctx, msg))
		require.NotEmpty(t, msg.ID)
		ids = append(ids, msg.ID)
	}

	all, err := s.Contacts.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, ids[2], all[0].ID, "newest first")

	read, err := s.Contacts.MarkAsRead(ctx, ids[1])
	require.NoError(t, err)
	assert.True(t, read.IsRead)
	assert.Equal(t, "Visitor 1", read.Name)

	unread, err := s.Contacts.ListUnread(ctx)
	require.NoError(t, err)
	assert.Len(t, unread, 2)

	n, err := s.Contacts.CountUnread(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	require.NoError(t, s.Contacts.Delete(ctx, ids[0]))
	_, err = s.Contacts.GetByID(ctx, ids[0])
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, s.Contacts.Delete(ctx, ids[0]), repository.ErrNotFound)
	_, err = s.Contacts.MarkAsRead(ctx, missingID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func testThemes(t *testing.T, s Set) {
	ctx := context.Background()

	_, err := s.Themes.GetByKey(ctx, model.ThemeModeKey)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	created, err := s.Themes.CreateIfAbsent(ctx, model.ThemeModeKey, model.ThemeDark)
	require.NoError(t, err)
	assert.True(t, created)

	setting, err := s.Themes.Upsert(ctx, model.ThemeModeKey, model.ThemeLight)
	require.NoError(t, err)
	assert.Equal(t, model.ThemeLight, setting.Value)

	created, err = s.Themes.CreateIfAbsent(ctx, model.ThemeModeKey, model.ThemeDark)
	require.NoError(t, err)
	assert.False(t, created)

	got, err := s.Themes.GetByKey(ctx, model.ThemeModeKey)
	require.NoError(t, err)
	assert.Equal(t, model.ThemeLight, got.Value)
}

func testUsers(t *testing.T, s Set) {
	ctx := context.Background()

	u := &model.User{Username: "admin", PasswordHash: "hash"}
	require.NoError(t, s.Users.Create(ctx, u))
	require.NotEmpty(t, u.ID)
	assert.Equal(t, model.RoleAdmin, u.Role)

	err := s.Users.Create(ctx, &model.User{Username: "admin", PasswordHash: "other"})
	assert.ErrorIs(t, err, repository.ErrConstraintViolation)

	found, err := s.Users.FindByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, u.ID, found.ID)
	assert.Nil(t, found.LastLoginAt)

	require.NoError(t, s.Users.TouchLastLogin(ctx, u.ID))
	found, err = s.Users.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.NotNil(t, found.LastLoginAt)

	exists, err := s.Users.ExistsByUsername(ctx, "nobody")
	require.NoError(t, err)
	assert.False(t, exists)
	_, err = s.Users.FindByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
