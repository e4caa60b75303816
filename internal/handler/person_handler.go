package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/newgen/backend/internal/model"
	"github.com/newgen/backend/internal/service"
)

// PersonHandler はメンバー API の HTTP ハンドラ
type PersonHandler struct {
	personService service.PersonService
}

// NewPersonHandler は PersonHandler を生成する
func NewPersonHandler(personService service.PersonService) *PersonHandler {
	return &PersonHandler{personService: personService}
}

type personRequest struct {
	FirstName  string  `json:"first_name"`
	LastName   string  `json:"last_name"`
	Email      string  `json:"email"`
	Phone      string  `json:"phone"`
	Role       string  `json:"role"`
	Department string  `json:"department"`
	JoinDate   string  `json:"join_date"`
	Status     string  `json:"status"`
	TeamID     *string `json:"team_id"`
}

// parseJoinDate は "YYYY-MM-DD" をパースする。空文字は nil
func parseJoinDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(model.DateLayout, s)
	if err != nil {
		return nil, &service.ValidationError{Field: "join_date", Message: "must be a date in YYYY-MM-DD format"}
	}
	return &t, nil
}

// hasJSONKey は raw に key が含まれるか判定する
func hasJSONKey(raw map[string]json.RawMessage, key string) bool {
	_, ok := raw[key]
	return ok
}

// List は GET /api/persons を処理する。q があれば検索（全ステータス）
func (h *PersonHandler) List(w http.ResponseWriter, r *http.Request) {
	var (
		persons []*model.Person
		err     error
	)
	if q := strings.TrimSpace(r.URL.Query().Get("q")); q != "" {
		persons, err = h.personService.SearchPersons(r.Context(), q)
	} else {
		persons, err = h.personService.ListPersons(r.Context())
	}
	if err != nil {
		writeServiceError(w, r, "list persons", err)
		return
	}
	if persons == nil {
		persons = []*model.Person{}
	}
	writeJSON(w, http.StatusOK, persons)
}

// Count は GET /api/persons/count を処理する
func (h *PersonHandler) Count(w http.ResponseWriter, r *http.Request) {
	n, err := h.personService.CountActivePersons(r.Context())
	if err != nil {
		writeServiceError(w, r, "count persons", err)
		return
	}
	writeJSON(w, http.StatusOK, countResponse{Count: n})
}

// Get は GET /api/persons/{id} を処理する
func (h *PersonHandler) Get(w http.ResponseWriter, r *http.Request) {
	person, err := h.personService.GetPerson(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, "get person", err)
		return
	}
	writeJSON(w, http.StatusOK, person)
}

// Create は POST /api/persons を処理する（管理者のみ）
func (h *PersonHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req personRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	joinDate, err := parseJoinDate(req.JoinDate)
	if err != nil {
		writeServiceError(w, r, "create person", err)
		return
	}

	person, err := h.personService.CreatePerson(r.Context(), &model.Person{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Phone:      req.Phone,
		Role:       req.Role,
		Department: req.Department,
		JoinDate:   joinDate,
		Status:     req.Status,
		TeamID:     req.TeamID,
	})
	if err != nil {
		writeServiceError(w, r, "create person", err)
		return
	}
	writeJSON(w, http.StatusCreated, person)
}

// Update は PATCH /api/persons/{id} を処理する（管理者のみ）。
// 送られたフィールドだけを更新する。team_id / join_date の null はクリア
func (h *PersonHandler) Update(w http.ResponseWriter, r *http.Request) {
	var raw map[string]json.RawMessage
	if !decodeJSON(w, r, &raw) {
		return
	}
	var req personRequest
	b, _ := json.Marshal(raw)
	if err := json.Unmarshal(b, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}

	var patch model.PersonPatch
	str := func(key string, v string) *string {
		if !hasJSONKey(raw, key) {
			return nil
		}
		return &v
	}
	patch.FirstName = str("first_name", req.FirstName)
	patch.LastName = str("last_name", req.LastName)
	patch.Email = str("email", req.Email)
	patch.Phone = str("phone", req.Phone)
	patch.Role = str("role", req.Role)
	patch.Department = str("department", req.Department)
	patch.Status = str("status", req.Status)
	if hasJSONKey(raw, "join_date") {
		joinDate, err := parseJoinDate(req.JoinDate)
		if err != nil {
			writeServiceError(w, r, "update person", err)
			return
		}
		patch.JoinDate = joinDate
		patch.ClearJoinDate = joinDate == nil
	}
	if hasJSONKey(raw, "team_id") {
		if req.TeamID == nil || strings.TrimSpace(*req.TeamID) == "" {
			patch.ClearTeam = true
		} else {
			patch.TeamID = req.TeamID
		}
	}

	person, err := h.personService.UpdatePerson(r.Context(), r.PathValue("id"), patch)
	if err != nil {
		writeServiceError(w, r, "update person", err)
		return
	}
	writeJSON(w, http.StatusOK, person)
}

// Delete は DELETE /api/persons/{id} を処理する。論理削除（Inactive）
func (h *PersonHandler) Delete(w http.ResponseWriter, r *http.Request) {
	person, err := h.personService.DeletePerson(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, "delete person", err)
		return
	}
	writeJSON(w, http.StatusOK, person)
}
