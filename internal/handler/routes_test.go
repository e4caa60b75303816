package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/newgen/backend/internal/repository/memory"
	"github.com/newgen/backend/internal/service"
	"github.com/newgen/backend/pkg/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type apiClient struct {
	t      *testing.T
	srv    *httptest.Server
	cookie *http.Cookie
}

func newTestAPI(t *testing.T) *apiClient {
	t.Helper()
	store := memory.New()
	authSvc := service.NewAuthServiceWithCost(store.Users(), bcrypt.MinCost)
	_, err := authSvc.EnsureAdmin(context.Background(), "admin", "secret-pw")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	secret := auth.SessionSecretBytes(testSessionSecret)
	personSvc := service.NewPersonService(store.Persons())
	routes := Routes{
		Health:        New(store, "http://localhost:3000"),
		Auth:          NewAuthHandler(authSvc, AuthConfig{SessionSecret: secret, SessionTTL: time.Hour}),
		Teams:         NewTeamHandler(service.NewTeamService(store.Teams()), personSvc),
		Persons:       NewPersonHandler(personSvc),
		Contacts:      NewContactHandler(service.NewContactService(store.Contacts())),
		Theme:         NewThemeHandler(service.NewThemeService(store.Themes())),
		SessionSecret: secret,
		ContactLimit:  NewRateLimiter(ctx, 100),
	}
	srv := httptest.NewServer(routes.Mux())
	t.Cleanup(srv.Close)
	return &apiClient{t: t, srv: srv}
}

func (c *apiClient) do(method, path, body string) (*http.Response, []byte) {
	c.t.Helper()
	req, err := http.NewRequest(method, c.srv.URL+path, strings.NewReader(body))
	require.NoError(c.t, err)
	req.Header.Set("Content-Type", "application/json")
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}
	resp, err := c.srv.Client().Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	require.NoError(c.t, err)
	return resp, b
}

func (c *apiClient) login() {
	c.t.Helper()
	resp, _ := c.do("POST", "/api/auth/login", `{"username":"admin","password":"secret-pw"}`)
	require.Equal(c.t, http.StatusOK, resp.StatusCode)
	for _, ck := range resp.Cookies() {
		if ck.Name == auth.SessionCookieName() {
			c.cookie = ck
		}
	}
	require.NotNil(c.t, c.cookie)
}

func decodeID(t *testing.T, body []byte) string {
	t.Helper()
	var v struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(body, &v))
	require.NotEmpty(t, v.ID)
	return v.ID
}

func TestAPI_WritesRequireAdmin(t *testing.T) {
	api := newTestAPI(t)

	resp, _ := api.do("POST", "/api/teams", `{"name":"Design"}`)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = api.do("GET", "/api/admin/contacts", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = api.do("GET", "/api/teams", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAPI_LoginWrongPassword(t *testing.T) {
	api := newTestAPI(t)

	resp, body := api.do("POST", "/api/auth/login", `{"username":"admin","password":"nope"}`)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.JSONEq(t, `{"error":"invalid_credentials"}`, string(body))

	resp, _ = api.do("POST", "/api/auth/login", `{"username":"ghost","password":"nope"}`)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAPI_TeamAndMemberLifecycle(t *testing.T) {
	api := newTestAPI(t)
	api.login()

	resp, body := api.do("GET", "/api/me", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"username":"admin"`)

	resp, body = api.do("POST", "/api/teams", `{"name":"Design","icon":"palette"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	teamID := decodeID(t, body)

	resp, _ = api.do("POST", "/api/teams", `{"name":"Design"}`)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, body = api.do("POST", "/api/persons",
		`{"first_name":"Ana","last_name":"Lee","email":"ana@example.com","team_id":"`+teamID+`"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	personID := decodeID(t, body)
	assert.Contains(t, string(body), `"team_name":"Design"`)
	assert.Contains(t, string(body), `"status":"Active"`)

	resp, _ = api.do("POST", "/api/persons", `{"first_name":"Bo","last_name":"Kim","email":"ana@example.com"}`)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, body = api.do("GET", "/api/teams/"+teamID, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"full_name":"Ana Lee"`)

	resp, body = api.do("GET", "/api/teams?include=members", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"member_count":1`)
	assert.Contains(t, string(body), `"full_name":"Ana Lee"`)

	resp, body = api.do("PATCH", "/api/persons/"+personID, `{"role":"Designer"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.Contains(t, string(body), `"role":"Designer"`)
	assert.Contains(t, string(body), `"email":"ana@example.com"`)

	resp, body = api.do("DELETE", "/api/persons/"+personID, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"status":"Inactive"`)

	resp, body = api.do("GET", "/api/teams/"+teamID, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"member_count":0`)
	assert.Contains(t, string(body), `"members":[]`)

	resp, body = api.do("GET", "/api/persons/count", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"count":0}`, string(body))

	resp, body = api.do("GET", "/api/persons?q=ANA", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), personID)

	resp, _ = api.do("DELETE", "/api/teams/"+teamID, "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = api.do("GET", "/api/persons/"+personID, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAPI_ContactInbox(t *testing.T) {
	api := newTestAPI(t)

	resp, body := api.do("POST", "/api/contact", `{"name":"Visitor","email":"v@example.com","message":"Hi there"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	msgID := decodeID(t, body)

	resp, _ = api.do("POST", "/api/contact", `{"name":"Visitor","email":"not-an-email","message":"Hi"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	api.login()
	resp, body = api.do("GET", "/api/admin/contacts/unread-count", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"count":1}`, string(body))

	resp, body = api.do("PATCH", "/api/admin/contacts/"+msgID+"/read", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"is_read":true`)

	resp, body = api.do("GET", "/api/admin/contacts?status=unread", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"messages":[]}`, string(body))

	resp, _ = api.do("DELETE", "/api/admin/contacts/"+msgID, "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestAPI_Theme(t *testing.T) {
	api := newTestAPI(t)

	resp, body := api.do("GET", "/api/theme", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"mode":"dark"}`, string(body))

	resp, _ = api.do("PUT", "/api/theme", `{"mode":"light"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = api.do("GET", "/api/theme", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"mode":"light"}`, string(body))

	resp, _ = api.do("PUT", "/api/theme", `{"mode":"blue"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
