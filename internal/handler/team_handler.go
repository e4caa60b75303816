package handler

import (
	"net/http"

	"github.com/newgen/backend/internal/model"
	"github.com/newgen/backend/internal/service"
)

// TeamHandler はチーム API の HTTP ハンドラ
type TeamHandler struct {
	teamService   service.TeamService
	personService service.PersonService
}

// NewTeamHandler は TeamHandler を生成する
func NewTeamHandler(teamService service.TeamService, personService service.PersonService) *TeamHandler {
	return &TeamHandler{teamService: teamService, personService: personService}
}

// teamDetailResponse always renders members, even when there are none.
type teamDetailResponse struct {
	*model.Team
	Members []*model.Person `json:"members"`
}

func newTeamDetail(t *model.Team) teamDetailResponse {
	members := t.Members
	if members == nil {
		members = []*model.Person{}
	}
	return teamDetailResponse{Team: t, Members: members}
}

type teamRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	TeamLead    string `json:"team_lead"`
}

// List は GET /api/teams を処理する。include=members でアクティブなメンバーも返す
func (h *TeamHandler) List(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Query().Get("include") {
	case "":
	case "members":
		h.listWithMembers(w, r)
		return
	default:
		writeError(w, http.StatusBadRequest, "invalid_include")
		return
	}

	teams, err := h.teamService.ListTeams(r.Context())
	if err != nil {
		writeServiceError(w, r, "list teams", err)
		return
	}
	if teams == nil {
		teams = []*model.Team{}
	}
	writeJSON(w, http.StatusOK, teams)
}

func (h *TeamHandler) listWithMembers(w http.ResponseWriter, r *http.Request) {
	teams, err := h.teamService.ListTeamsWithMembers(r.Context())
	if err != nil {
		writeServiceError(w, r, "list teams with members", err)
		return
	}
	out := make([]teamDetailResponse, 0, len(teams))
	for _, t := range teams {
		out = append(out, newTeamDetail(t))
	}
	writeJSON(w, http.StatusOK, out)
}

// Count は GET /api/teams/count を処理する
func (h *TeamHandler) Count(w http.ResponseWriter, r *http.Request) {
	n, err := h.teamService.CountTeams(r.Context())
	if err != nil {
		writeServiceError(w, r, "count teams", err)
		return
	}
	writeJSON(w, http.StatusOK, countResponse{Count: n})
}

// Get は GET /api/teams/{id} を処理する（アクティブなメンバー付き）
func (h *TeamHandler) Get(w http.ResponseWriter, r *http.Request) {
	team, err := h.teamService.GetTeamWithMembers(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, "get team", err)
		return
	}
	writeJSON(w, http.StatusOK, newTeamDetail(team))
}

// Members は GET /api/teams/{id}/members を処理する
func (h *TeamHandler) Members(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, err := h.teamService.GetTeam(r.Context(), id); err != nil {
		writeServiceError(w, r, "get team", err)
		return
	}
	members, err := h.personService.ListByTeam(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, "list team members", err)
		return
	}
	if members == nil {
		members = []*model.Person{}
	}
	writeJSON(w, http.StatusOK, members)
}

// Create は POST /api/teams を処理する（管理者のみ）
func (h *TeamHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req teamRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	team, err := h.teamService.CreateTeam(r.Context(), &model.Team{
		Name:        req.Name,
		Description: req.Description,
		Icon:        req.Icon,
		TeamLead:    req.TeamLead,
	})
	if err != nil {
		writeServiceError(w, r, "create team", err)
		return
	}
	writeJSON(w, http.StatusCreated, team)
}

// Update は PATCH /api/teams/{id} を処理する（管理者のみ）
func (h *TeamHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch model.TeamPatch
	if !decodeJSON(w, r, &patch) {
		return
	}
	team, err := h.teamService.UpdateTeam(r.Context(), r.PathValue("id"), patch)
	if err != nil {
		writeServiceError(w, r, "update team", err)
		return
	}
	writeJSON(w, http.StatusOK, team)
}

// Delete は DELETE /api/teams/{id} を処理する。メンバーも削除される（管理者のみ）
func (h *TeamHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.teamService.DeleteTeam(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, r, "delete team", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
