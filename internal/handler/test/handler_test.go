package test

import (
	"database/sql"
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"intwork/internal/config"
	handlers "intwork/internal/handler"
	"intwork/internal/models"
	"intwork/internal/render"
	"intwork/internal/service"
	"intwork/internal/session"
	"intwork/web"
)

const sessionCookie = "intwork_session"

type testEnv struct {
	handler      *handlers.Handlers
	server       http.Handler
	sessions     *memorySessions
	posts        *MockPostService
	comments     *MockCommentService
	applications *MockApplicationService
	dashboard    *MockDashboardService
	users        *MockUserService
	profiles     *MockProfileService
	auth         *MockAuthService
	subscribers  *MockSubscriberService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		sessions:     newMemorySessions(),
		posts:        new(MockPostService),
		comments:     new(MockCommentService),
		applications: new(MockApplicationService),
		dashboard:    new(MockDashboardService),
		users:        new(MockUserService),
		profiles:     new(MockProfileService),
		auth:         new(MockAuthService),
		subscribers:  new(MockSubscriberService),
	}

	cfg := &config.Config{MaxUploadSize: 1 << 20}
	manager := session.NewManager(env.sessions, cfg.Session)

	templatesFS, err := fs.Sub(web.Templates, "templates")
	require.NoError(t, err)
	renderer, err := render.New(render.Config{TemplatesFS: templatesFS, Sessions: manager})
	require.NoError(t, err)

	services := &service.Service{
		Post:        env.posts,
		Comment:     env.comments,
		Application: env.applications,
		Dashboard:   env.dashboard,
		User:        env.users,
		Profile:     env.profiles,
		Auth:        env.auth,
		Subscriber:  env.subscribers,
	}

	env.handler = handlers.NewHandlers(services, manager, renderer, nil, cfg)
	env.server = env.handler.Routes()
	return env
}

func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	e.server.ServeHTTP(rr, req)
	return rr
}

// loginAs stores a signed-in session row and attaches its cookie to req.
func (e *testEnv) loginAs(t *testing.T, req *http.Request, username string, role models.Role) {
	t.Helper()

	user, err := json.Marshal(models.UserView{Username: username, Role: role})
	require.NoError(t, err)

	id := "session-" + username
	require.NoError(t, e.sessions.Save(req.Context(), &models.SessionRecord{
		SessionID: id,
		Token:     nullString("token-" + username),
		UserData:  nullString(string(user)),
	}))
	req.AddCookie(&http.Cookie{Name: sessionCookie, Value: id})
}

// flash returns the flash message stored by the request, looking at the
// session cookie it set first and the one it was sent with second.
func (e *testEnv) flash(t *testing.T, req *http.Request, rr *httptest.ResponseRecorder) session.Flash {
	t.Helper()

	id := ""
	for _, c := range rr.Result().Cookies() {
		if c.Name == sessionCookie && c.Value != "" {
			id = c.Value
		}
	}
	if id == "" {
		if c, err := req.Cookie(sessionCookie); err == nil {
			id = c.Value
		}
	}
	require.NotEmpty(t, id, "no session cookie")

	record, ok := e.sessions.record(id)
	require.True(t, ok, "no session row for %s", id)
	return session.Flash{Kind: record.FlashKind.String, Message: record.FlashText.String}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: true}
}

func postForm(target string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestNewHandlers(t *testing.T) {
	cfg := &config.Config{}
	services := &service.Service{
		Post:       new(MockPostService),
		Auth:       new(MockAuthService),
		Subscriber: new(MockSubscriberService),
	}

	handler := handlers.NewHandlers(services, nil, nil, nil, cfg)

	assert.NotNil(t, handler.PostService)
	assert.NotNil(t, handler.AuthService)
	assert.NotNil(t, handler.SubscriberService)
	assert.Nil(t, handler.UserService)
	assert.Equal(t, cfg, handler.Cfg)
	assert.NotNil(t, handler.Validate)
}

func TestRoutes_NotFound(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(httptest.NewRequest(http.MethodGet, "/no/such/page", nil))

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "The page you are looking for does not exist.")
	assert.Equal(t, "nosniff", rr.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rr.Header().Get("X-Frame-Options"))
}

func TestRoutes_RoleGating(t *testing.T) {
	tests := []struct {
		name             string
		path             string
		role             models.Role
		expectedLocation string
	}{
		{
			name:             "visitor is sent to login",
			path:             "/applications",
			expectedLocation: "/login?next=%2Fapplications",
		},
		{
			name:             "user cannot see applications",
			path:             "/applications",
			role:             models.RoleUser,
			expectedLocation: "/",
		},
		{
			name:             "user cannot see the dashboard",
			path:             "/admin",
			role:             models.RoleUser,
			expectedLocation: "/",
		},
		{
			name:             "manager cannot manage users",
			path:             "/manage-users",
			role:             models.RoleManager,
			expectedLocation: "/",
		},
		{
			name:             "visitor cannot create posts",
			path:             "/create",
			expectedLocation: "/login?next=%2Fcreate",
		},
		{
			name:             "visitor has no profile",
			path:             "/profile",
			expectedLocation: "/login?next=%2Fprofile",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.role != "" {
				env.loginAs(t, req, "someone", tt.role)
			}

			rr := env.do(req)

			assert.Equal(t, http.StatusSeeOther, rr.Code)
			assert.Equal(t, tt.expectedLocation, rr.Header().Get("Location"))
			env.applications.AssertNotCalled(t, "Page", mock.Anything, mock.Anything, mock.Anything)
			env.dashboard.AssertNotCalled(t, "Stats", mock.Anything)
			env.users.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
		})
	}
}

func TestHealthHandler(t *testing.T) {
	t.Run("no database configured", func(t *testing.T) {
		env := newTestEnv(t)

		rr := env.do(httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		var body handlers.HealthResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Equal(t, "ok", body.Status)
		assert.Equal(t, "not configured", body.Database)
	})

	t.Run("database down", func(t *testing.T) {
		env := newTestEnv(t)
		db := new(MockHealthChecker)
		db.On("HealthCheck", mock.Anything).Return(errors.New("connection refused"))
		env.handler.DB = db

		rr := env.do(httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
		var body handlers.ErrorResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Equal(t, "database unavailable", body.Error)
		db.AssertExpectations(t)
	})
}
