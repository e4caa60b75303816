// Package memory is an in-process implementation of the repository
// interfaces. It enforces the same uniqueness, referential and cascade rules
// as the PostgreSQL schema and is used for local development and tests.
package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/newgen/backend/internal/model"
	"github.com/newgen/backend/internal/repository"
)

// Store holds every table behind a single lock. Each write is atomic.
type Store struct {
	mu       sync.RWMutex
	teams    map[string]model.Team
	persons  map[string]model.Person
	contacts map[string]model.ContactMessage
	// contactOrder keeps insertion order so listings are stable for equal timestamps.
	contactOrder []string
	settings     map[string]model.ThemeSetting
	users        map[string]model.User

	now func() time.Time
}

// New creates an empty store.
func New() *Store {
	return &Store{
		teams:    make(map[string]model.Team),
		persons:  make(map[string]model.Person),
		contacts: make(map[string]model.ContactMessage),
		settings: make(map[string]model.ThemeSetting),
		users:    make(map[string]model.User),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Ping always succeeds.
func (s *Store) Ping(context.Context) error { return nil }

// Teams returns the store's TeamRepository view.
func (s *Store) Teams() repository.TeamRepository { return &teamRepo{s: s} }

// Persons returns the store's PersonRepository view.
func (s *Store) Persons() repository.PersonRepository { return &personRepo{s: s} }

// Contacts returns the store's ContactRepository view.
func (s *Store) Contacts() repository.ContactRepository { return &contactRepo{s: s} }

// Themes returns the store's ThemeRepository view.
func (s *Store) Themes() repository.ThemeRepository { return &themeRepo{s: s} }

// Users returns the store's UserRepository view.
func (s *Store) Users() repository.UserRepository { return &userRepo{s: s} }

func clonePerson(p model.Person) *model.Person {
	if p.JoinDate != nil {
		d := *p.JoinDate
		p.JoinDate = &d
	}
	if p.TeamID != nil {
		id := *p.TeamID
		p.TeamID = &id
	}
	return &p
}

// personViewLocked returns a snapshot with the joined team name filled in.
func (s *Store) personViewLocked(p model.Person) *model.Person {
	out := clonePerson(p)
	out.TeamName = ""
	if out.TeamID != nil {
		if t, ok := s.teams[*out.TeamID]; ok {
			out.TeamName = t.Name
		}
	}
	return out
}

func (s *Store) teamViewLocked(t model.Team) *model.Team {
	t.Members = nil
	t.MemberCount = 0
	for _, p := range s.persons {
		if p.TeamID != nil && *p.TeamID == t.ID && p.Status == model.PersonStatusActive {
			t.MemberCount++
		}
	}
	return &t
}

func sortPersons(persons []*model.Person) {
	sort.SliceStable(persons, func(i, j int) bool {
		if persons[i].FirstName != persons[j].FirstName {
			return persons[i].FirstName < persons[j].FirstName
		}
		return persons[i].LastName < persons[j].LastName
	})
}

// ---------------------------------------------------------------------------
// Teams
// ---------------------------------------------------------------------------

type teamRepo struct{ s *Store }

func (r *teamRepo) List(_ context.Context) ([]*model.Team, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	teams := make([]*model.Team, 0, len(r.s.teams))
	for _, t := range r.s.teams {
		teams = append(teams, r.s.teamViewLocked(t))
	}
	sort.Slice(teams, func(i, j int) bool { return teams[i].Name < teams[j].Name })
	return teams, nil
}

func (r *teamRepo) GetByID(_ context.Context, id string) (*model.Team, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	t, ok := r.s.teams[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return r.s.teamViewLocked(t), nil
}

func (r *teamRepo) GetByName(_ context.Context, name string) (*model.Team, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, t := range r.s.teams {
		if t.Name == name {
			return r.s.teamViewLocked(t), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *teamRepo) GetWithMembers(_ context.Context, id string) (*model.Team, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	t, ok := r.s.teams[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	team := r.s.teamViewLocked(t)
	for _, p := range r.s.persons {
		if p.TeamID != nil && *p.TeamID == id && p.Status == model.PersonStatusActive {
			team.Members = append(team.Members, r.s.personViewLocked(p))
		}
	}
	sortPersons(team.Members)
	return team, nil
}

func (r *teamRepo) ListWithMembers(_ context.Context) ([]*model.Team, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	teams := make([]*model.Team, 0, len(r.s.teams))
	byTeam := make(map[string]*model.Team, len(r.s.teams))
	for _, t := range r.s.teams {
		team := r.s.teamViewLocked(t)
		team.Members = []*model.Person{}
		teams = append(teams, team)
		byTeam[team.ID] = team
	}
	for _, p := range r.s.persons {
		if p.TeamID == nil || p.Status != model.PersonStatusActive {
			continue
		}
		if team, ok := byTeam[*p.TeamID]; ok {
			team.Members = append(team.Members, r.s.personViewLocked(p))
		}
	}
	for _, team := range teams {
		sortPersons(team.Members)
	}
	sort.Slice(teams, func(i, j int) bool { return teams[i].Name < teams[j].Name })
	return teams, nil
}

func (r *teamRepo) Save(_ context.Context, team *model.Team) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for id, t := range r.s.teams {
		if t.Name == team.Name && id != team.ID {
			return &repository.ConstraintError{Constraint: repository.ConstraintTeamName}
		}
	}

	now := r.s.now()
	stored := *team
	stored.Members = nil
	if stored.ID == "" {
		stored.ID = uuid.NewString()
		stored.CreatedAt = now
	} else {
		existing, ok := r.s.teams[stored.ID]
		if !ok {
			return repository.ErrNotFound
		}
		stored.CreatedAt = existing.CreatedAt
	}
	stored.UpdatedAt = now
	r.s.teams[stored.ID] = stored

	view := r.s.teamViewLocked(stored)
	team.ID = view.ID
	team.CreatedAt = view.CreatedAt
	team.UpdatedAt = view.UpdatedAt
	team.MemberCount = view.MemberCount
	return nil
}

func (r *teamRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.teams[id]; !ok {
		return repository.ErrNotFound
	}
	for pid, p := range r.s.persons {
		if p.TeamID != nil && *p.TeamID == id {
			delete(r.s.persons, pid)
		}
	}
	delete(r.s.teams, id)
	return nil
}

func (r *teamRepo) ExistsByName(ctx context.Context, name string) (bool, error) {
	_, err := r.GetByName(ctx, name)
	if errors.Is(err, repository.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (r *teamRepo) Count(_ context.Context) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.teams), nil
}

// ---------------------------------------------------------------------------
// Persons
// ---------------------------------------------------------------------------

type personRepo struct{ s *Store }

func (r *personRepo) filter(keep func(model.Person) bool) []*model.Person {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []*model.Person
	for _, p := range r.s.persons {
		if keep(p) {
			out = append(out, r.s.personViewLocked(p))
		}
	}
	sortPersons(out)
	return out
}

func (r *personRepo) ListActive(_ context.Context) ([]*model.Person, error) {
	return r.filter(func(p model.Person) bool { return p.Status == model.PersonStatusActive }), nil
}

func (r *personRepo) GetByID(_ context.Context, id string) (*model.Person, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.persons[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return r.s.personViewLocked(p), nil
}

func (r *personRepo) GetByEmail(_ context.Context, email string) (*model.Person, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, p := range r.s.persons {
		if p.Email == email {
			return r.s.personViewLocked(p), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *personRepo) ListByTeam(_ context.Context, teamID string) ([]*model.Person, error) {
	return r.filter(func(p model.Person) bool {
		return p.TeamID != nil && *p.TeamID == teamID && p.Status == model.PersonStatusActive
	}), nil
}

func (r *personRepo) Save(_ context.Context, person *model.Person) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if person.Status == "" {
		person.Status = model.PersonStatusActive
	}
	if !model.ValidPersonStatus(person.Status) {
		return &repository.ConstraintError{Constraint: repository.ConstraintPersonStatus}
	}
	if person.TeamID != nil {
		if _, ok := r.s.teams[*person.TeamID]; !ok {
			return &repository.ConstraintError{Constraint: repository.ConstraintPersonTeam}
		}
	}
	for id, p := range r.s.persons {
		if p.Email == person.Email && id != person.ID {
			return &repository.ConstraintError{Constraint: repository.ConstraintPersonEmail}
		}
	}

	now := r.s.now()
	stored := *clonePerson(*person)
	stored.TeamName = ""
	if stored.ID == "" {
		stored.ID = uuid.NewString()
		stored.CreatedAt = now
	} else {
		existing, ok := r.s.persons[stored.ID]
		if !ok {
			return repository.ErrNotFound
		}
		stored.CreatedAt = existing.CreatedAt
	}
	stored.UpdatedAt = now
	r.s.persons[stored.ID] = stored

	view := r.s.personViewLocked(stored)
	person.ID = view.ID
	person.TeamName = view.TeamName
	person.CreatedAt = view.CreatedAt
	person.UpdatedAt = view.UpdatedAt
	return nil
}

func (r *personRepo) SoftDelete(_ context.Context, id string) (*model.Person, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.persons[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	p.Status = model.PersonStatusInactive
	p.UpdatedAt = r.s.now()
	r.s.persons[id] = p
	return r.s.personViewLocked(p), nil
}

func (r *personRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (r *personRepo) CountActive(_ context.Context) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	n := 0
	for _, p := range r.s.persons {
		if p.Status == model.PersonStatusActive {
			n++
		}
	}
	return n, nil
}

func (r *personRepo) Search(_ context.Context, keyword string) ([]*model.Person, error) {
	needle := strings.ToLower(keyword)
	return r.filter(func(p model.Person) bool {
		return strings.Contains(strings.ToLower(p.FirstName), needle) ||
			strings.Contains(strings.ToLower(p.LastName), needle) ||
			strings.Contains(strings.ToLower(p.Email), needle)
	}), nil
}

// ---------------------------------------------------------------------------
// Contact messages
// ---------------------------------------------------------------------------

type contactRepo struct{ s *Store }

func (r *contactRepo) Save(_ context.Context, msg *model.ContactMessage) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored := *msg
	stored.ID = uuid.NewString()
	stored.CreatedAt = r.s.now()
	r.s.contacts[stored.ID] = stored
	r.s.contactOrder = append(r.s.contactOrder, stored.ID)

	msg.ID = stored.ID
	msg.CreatedAt = stored.CreatedAt
	return nil
}

func (r *contactRepo) GetByID(_ context.Context, id string) (*model.ContactMessage, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	m, ok := r.s.contacts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &m, nil
}

// newestFirst walks insertion order backwards.
func (r *contactRepo) newestFirst(keep func(model.ContactMessage) bool) []*model.ContactMessage {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []*model.ContactMessage
	for i := len(r.s.contactOrder) - 1; i >= 0; i-- {
		m := r.s.contacts[r.s.contactOrder[i]]
		if keep(m) {
			out = append(out, &m)
		}
	}
	return out
}

func (r *contactRepo) List(_ context.Context) ([]*model.ContactMessage, error) {
	return r.newestFirst(func(model.ContactMessage) bool { return true }), nil
}

func (r *contactRepo) ListUnread(_ context.Context) ([]*model.ContactMessage, error) {
	return r.newestFirst(func(m model.ContactMessage) bool { return !m.IsRead }), nil
}

func (r *contactRepo) CountUnread(ctx context.Context) (int, error) {
	unread, _ := r.ListUnread(ctx)
	return len(unread), nil
}

func (r *contactRepo) MarkAsRead(_ context.Context, id string) (*model.ContactMessage, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	m, ok := r.s.contacts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	m.IsRead = true
	r.s.contacts[id] = m
	return &m, nil
}

func (r *contactRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.contacts[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.contacts, id)
	for i, cid := range r.s.contactOrder {
		if cid == id {
			r.s.contactOrder = append(r.s.contactOrder[:i], r.s.contactOrder[i+1:]...)
			break
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// Settings
// ---------------------------------------------------------------------------

type themeRepo struct{ s *Store }

func (r *themeRepo) GetByKey(_ context.Context, key string) (*model.ThemeSetting, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	setting, ok := r.s.settings[key]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &setting, nil
}

func (r *themeRepo) Upsert(_ context.Context, key, value string) (*model.ThemeSetting, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := r.s.now()
	setting, ok := r.s.settings[key]
	if !ok {
		setting = model.ThemeSetting{ID: uuid.NewString(), Key: key, CreatedAt: now}
	}
	setting.Value = value
	setting.UpdatedAt = now
	r.s.settings[key] = setting
	return &setting, nil
}

func (r *themeRepo) CreateIfAbsent(_ context.Context, key, value string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.settings[key]; ok {
		return false, nil
	}
	now := r.s.now()
	r.s.settings[key] = model.ThemeSetting{ID: uuid.NewString(), Key: key, Value: value, CreatedAt: now, UpdatedAt: now}
	return true, nil
}

// ---------------------------------------------------------------------------
// Users
// ---------------------------------------------------------------------------

type userRepo struct{ s *Store }

func (r *userRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if u.Username == username {
			if u.LastLoginAt != nil {
				t := *u.LastLoginAt
				u.LastLoginAt = &t
			}
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *userRepo) FindByID(_ context.Context, id string) (*model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if u.LastLoginAt != nil {
		t := *u.LastLoginAt
		u.LastLoginAt = &t
	}
	return &u, nil
}

func (r *userRepo) Create(_ context.Context, user *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.Username == user.Username {
			return &repository.ConstraintError{Constraint: repository.ConstraintUsername}
		}
	}
	if user.Role == "" {
		user.Role = model.RoleAdmin
	}
	user.ID = uuid.NewString()
	user.CreatedAt = r.s.now()
	stored := *user
	stored.LastLoginAt = nil
	r.s.users[stored.ID] = stored
	return nil
}

func (r *userRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := r.FindByUsername(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (r *userRepo) TouchLastLogin(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	now := r.s.now()
	u.LastLoginAt = &now
	r.s.users[id] = u
	return nil
}
