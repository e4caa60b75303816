package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strp(s string) *string { return &s }

func TestPerson_FullName(t *testing.T) {
	p := &Person{FirstName: "Ana", LastName: "Lee"}
	assert.Equal(t, "Ana Lee", p.FullName())
}

func TestPerson_MarshalJSON(t *testing.T) {
	join := time.Date(2023, 4, 1, 0, 0, 0, 0, time.UTC)
	p := &Person{
		ID: "p1", FirstName: "Ana", LastName: "Lee", Email: "ana@example.org",
		JoinDate: &join, Status: PersonStatusActive, TeamID: strp("t1"), TeamName: "Design",
	}

	b, err := json.Marshal(p)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, "Ana Lee", out["full_name"])
	assert.Equal(t, "2023-04-01", out["join_date"])
	assert.Equal(t, "t1", out["team_id"])
	assert.Equal(t, "Design", out["team_name"])
}

func TestPerson_MarshalJSON_NullsWithoutTeam(t *testing.T) {
	b, err := json.Marshal(&Person{FirstName: "Bo", LastName: "Kim"})
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Contains(t, out, "team_name")
	assert.Nil(t, out["team_name"])
	assert.Nil(t, out["team_id"])
	assert.Nil(t, out["join_date"])
}

func TestPersonPatch_Apply(t *testing.T) {
	p := &Person{FirstName: "Ana", LastName: "Lee", Email: "ana@example.org", TeamID: strp("t1"), TeamName: "Design"}

	PersonPatch{Role: strp("Lead")}.Apply(p)
	assert.Equal(t, "Lead", p.Role)
	assert.Equal(t, "Ana", p.FirstName)
	assert.Equal(t, "Design", p.TeamName)

	PersonPatch{TeamID: strp("t2")}.Apply(p)
	assert.Equal(t, "t2", *p.TeamID)
	assert.Empty(t, p.TeamName)

	PersonPatch{TeamID: strp("t3"), ClearTeam: true}.Apply(p)
	assert.Nil(t, p.TeamID)

	join := time.Date(2021, 1, 2, 0, 0, 0, 0, time.UTC)
	PersonPatch{JoinDate: &join}.Apply(p)
	require.NotNil(t, p.JoinDate)
	assert.True(t, p.JoinDate.Equal(join))

	PersonPatch{JoinDate: &join, ClearJoinDate: true}.Apply(p)
	assert.Nil(t, p.JoinDate)
}

func TestPersonPatch_IsEmpty(t *testing.T) {
	assert.True(t, PersonPatch{}.IsEmpty())
	assert.False(t, PersonPatch{ClearTeam: true}.IsEmpty())
	assert.False(t, PersonPatch{ClearJoinDate: true}.IsEmpty())
	assert.False(t, PersonPatch{Phone: strp("")}.IsEmpty())
}

func TestTeamPatch_Apply(t *testing.T) {
	team := &Team{Name: "Design", Icon: "fa-palette"}
	TeamPatch{Description: strp("UX")}.Apply(team)
	assert.Equal(t, "Design", team.Name)
	assert.Equal(t, "UX", team.Description)
	assert.Equal(t, "fa-palette", team.Icon)
}

func TestValidators(t *testing.T) {
	assert.True(t, ValidTheme(ThemeDark))
	assert.True(t, ValidTheme(ThemeLight))
	assert.False(t, ValidTheme("Dark"))
	assert.True(t, ValidPersonStatus(PersonStatusInactive))
	assert.False(t, ValidPersonStatus("active"))
}

func TestUser_HidesPasswordHash(t *testing.T) {
	b, err := json.Marshal(User{Username: "admin", PasswordHash: "secret"})
	require.NoError(t, err)
	assert.NotContains(t, string(b), "secret")
}
