package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/newgen/backend/internal/model"
	"github.com/newgen/backend/internal/repository/repotest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_Contract(t *testing.T) {
	repotest.Run(t, func(t *testing.T) repotest.Set {
		s := New()
		return repotest.Set{
			Teams:    s.Teams(),
			Persons:  s.Persons(),
			Contacts: s.Contacts(),
			Themes:   s.Themes(),
			Users:    s.Users(),
		}
	})
}

func TestStore_ReadsAreSnapshots(t *testing.T) {
	ctx := context.Background()
	s := New()
	team := &model.Team{Name: "Design"}
	require.NoError(t, s.Teams().Save(ctx, team))
	p := &model.Person{FirstName: "Ana", LastName: "Lee", Email: "ana@example.org", TeamID: &team.ID}
	require.NoError(t, s.Persons().Save(ctx, p))

	got, err := s.Persons().GetByID(ctx, p.ID)
	require.NoError(t, err)
	got.FirstName = "Changed"
	*got.TeamID = "elsewhere"

	again, err := s.Persons().GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", again.FirstName)
	assert.Equal(t, team.ID, *again.TeamID)
}

func TestStore_TeamRenameShowsOnMembers(t *testing.T) {
	ctx := context.Background()
	s := New()
	team := &model.Team{Name: "Design"}
	require.NoError(t, s.Teams().Save(ctx, team))
	p := &model.Person{FirstName: "Ana", LastName: "Lee", Email: "ana@example.org", TeamID: &team.ID}
	require.NoError(t, s.Persons().Save(ctx, p))

	team.Name = "Product Design"
	require.NoError(t, s.Teams().Save(ctx, team))

	got, err := s.Persons().GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Product Design", got.TeamName)
}

func TestStore_ConcurrentEmailUniqueness(t *testing.T) {
	ctx := context.Background()
	s := New()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		success int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.Persons().Save(ctx, &model.Person{FirstName: "A", LastName: "B", Email: "same@example.org"})
			if err == nil {
				mu.Lock()
				success++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, success)
	n, err := s.Persons().CountActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
