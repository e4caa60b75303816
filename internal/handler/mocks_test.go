package handler

import (
	"context"

	"github.com/newgen/backend/internal/model"
	"github.com/newgen/backend/internal/repository"
)

// ---------------------------------------------------------------------------
// Mock services
// ---------------------------------------------------------------------------

type mockTeamService struct {
	listFunc           func(ctx context.Context) ([]*model.Team, error)
	getFunc            func(ctx context.Context, id string) (*model.Team, error)
	getWithMembersFunc func(ctx context.Context, id string) (*model.Team, error)
	listMembersFunc    func(ctx context.Context) ([]*model.Team, error)
	createFunc         func(ctx context.Context, team *model.Team) (*model.Team, error)
	updateFunc         func(ctx context.Context, id string, patch model.TeamPatch) (*model.Team, error)
	deleteFunc         func(ctx context.Context, id string) error
	countFunc          func(ctx context.Context) (int, error)
}

func (m *mockTeamService) ListTeams(ctx context.Context) ([]*model.Team, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return nil, nil
}

func (m *mockTeamService) GetTeam(ctx context.Context, id string) (*model.Team, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	return &model.Team{ID: id}, nil
}

func (m *mockTeamService) GetTeamWithMembers(ctx context.Context, id string) (*model.Team, error) {
	if m.getWithMembersFunc != nil {
		return m.getWithMembersFunc(ctx, id)
	}
	return &model.Team{ID: id}, nil
}

func (m *mockTeamService) ListTeamsWithMembers(ctx context.Context) ([]*model.Team, error) {
	if m.listMembersFunc != nil {
		return m.listMembersFunc(ctx)
	}
	return nil, nil
}

func (m *mockTeamService) GetTeamByName(ctx context.Context, name string) (*model.Team, error) {
	return nil, repository.ErrNotFound
}

func (m *mockTeamService) CreateTeam(ctx context.Context, team *model.Team) (*model.Team, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, team)
	}
	return team, nil
}

func (m *mockTeamService) UpdateTeam(ctx context.Context, id string, patch model.TeamPatch) (*model.Team, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, patch)
	}
	return &model.Team{ID: id}, nil
}

func (m *mockTeamService) DeleteTeam(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockTeamService) ExistsByName(ctx context.Context, name string) (bool, error) {
	return false, nil
}

func (m *mockTeamService) CountTeams(ctx context.Context) (int, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx)
	}
	return 0, nil
}

type mockPersonService struct {
	listFunc       func(ctx context.Context) ([]*model.Person, error)
	getFunc        func(ctx context.Context, id string) (*model.Person, error)
	createFunc     func(ctx context.Context, person *model.Person) (*model.Person, error)
	updateFunc     func(ctx context.Context, id string, patch model.PersonPatch) (*model.Person, error)
	deleteFunc     func(ctx context.Context, id string) (*model.Person, error)
	countFunc      func(ctx context.Context) (int, error)
	listByTeamFunc func(ctx context.Context, teamID string) ([]*model.Person, error)
	searchFunc     func(ctx context.Context, keyword string) ([]*model.Person, error)
}

func (m *mockPersonService) ListPersons(ctx context.Context) ([]*model.Person, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return nil, nil
}

func (m *mockPersonService) GetPersonByEmail(ctx context.Context, email string) (*model.Person, error) {
	return nil, repository.ErrNotFound
}

func (m *mockPersonService) GetPerson(ctx context.Context, id string) (*model.Person, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	return &model.Person{ID: id}, nil
}

func (m *mockPersonService) CreatePerson(ctx context.Context, person *model.Person) (*model.Person, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, person)
	}
	return person, nil
}

func (m *mockPersonService) UpdatePerson(ctx context.Context, id string, patch model.PersonPatch) (*model.Person, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, patch)
	}
	return &model.Person{ID: id}, nil
}

func (m *mockPersonService) DeletePerson(ctx context.Context, id string) (*model.Person, error) {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return &model.Person{ID: id, Status: model.PersonStatusInactive}, nil
}

func (m *mockPersonService) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return false, nil
}

func (m *mockPersonService) CountActivePersons(ctx context.Context) (int, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx)
	}
	return 0, nil
}

func (m *mockPersonService) ListByTeam(ctx context.Context, teamID string) ([]*model.Person, error) {
	if m.listByTeamFunc != nil {
		return m.listByTeamFunc(ctx, teamID)
	}
	return nil, nil
}

func (m *mockPersonService) SearchPersons(ctx context.Context, keyword string) ([]*model.Person, error) {
	if m.searchFunc != nil {
		return m.searchFunc(ctx, keyword)
	}
	return nil, nil
}

type mockContactService struct {
	submitFunc      func(ctx context.Context, msg *model.ContactMessage) error
	listFunc        func(ctx context.Context) ([]*model.ContactMessage, error)
	listUnreadFunc  func(ctx context.Context) ([]*model.ContactMessage, error)
	countUnreadFunc func(ctx context.Context) (int, error)
	markAsReadFunc  func(ctx context.Context, id string) (*model.ContactMessage, error)
	deleteFunc      func(ctx context.Context, id string) error
}

func (m *mockContactService) Submit(ctx context.Context, msg *model.ContactMessage) error {
	if m.submitFunc != nil {
		return m.submitFunc(ctx, msg)
	}
	return nil
}

func (m *mockContactService) List(ctx context.Context) ([]*model.ContactMessage, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return nil, nil
}

func (m *mockContactService) ListUnread(ctx context.Context) ([]*model.ContactMessage, error) {
	if m.listUnreadFunc != nil {
		return m.listUnreadFunc(ctx)
	}
	return nil, nil
}

func (m *mockContactService) CountUnread(ctx context.Context) (int, error) {
	if m.countUnreadFunc != nil {
		return m.countUnreadFunc(ctx)
	}
	return 0, nil
}

func (m *mockContactService) MarkAsRead(ctx context.Context, id string) (*model.ContactMessage, error) {
	if m.markAsReadFunc != nil {
		return m.markAsReadFunc(ctx, id)
	}
	return &model.ContactMessage{ID: id, IsRead: true}, nil
}

func (m *mockContactService) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

type mockThemeService struct {
	currentFunc func(ctx context.Context) (string, error)
	saveFunc    func(ctx context.Context, mode string) (*model.ThemeSetting, error)
}

func (m *mockThemeService) CurrentTheme(ctx context.Context) (string, error) {
	if m.currentFunc != nil {
		return m.currentFunc(ctx)
	}
	return model.DefaultTheme, nil
}

func (m *mockThemeService) SaveTheme(ctx context.Context, mode string) (*model.ThemeSetting, error) {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, mode)
	}
	return &model.ThemeSetting{Key: model.ThemeModeKey, Value: mode}, nil
}

func (m *mockThemeService) InitializeDefaultTheme(ctx context.Context) error {
	return nil
}

type mockAuthService struct {
	authenticateFunc func(ctx context.Context, username, password string) (*model.User, error)
	currentUserFunc  func(ctx context.Context, id string) (*model.User, error)
}

func (m *mockAuthService) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	if m.authenticateFunc != nil {
		return m.authenticateFunc(ctx, username, password)
	}
	return nil, nil
}

func (m *mockAuthService) EnsureAdmin(ctx context.Context, username, password string) (bool, error) {
	return false, nil
}

func (m *mockAuthService) CurrentUser(ctx context.Context, id string) (*model.User, error) {
	if m.currentUserFunc != nil {
		return m.currentUserFunc(ctx, id)
	}
	return &model.User{ID: id, Username: "admin", Role: model.RoleAdmin}, nil
}
