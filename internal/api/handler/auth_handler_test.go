package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/studentregistry/registry-api/internal/api/middleware"
	"github.com/studentregistry/registry-api/internal/core/domain"
)

// stubAuthService scripts the service layer for handler tests.
type stubAuthService struct {
	user     *domain.User
	token    string
	loginErr error
	setupErr error
}

func (s *stubAuthService) Login(_ context.Context, username, password string) (string, *domain.User, error) {
	if s.loginErr != nil {
		return "", nil, s.loginErr
	}
	return s.token, s.user, nil
}

func (s *stubAuthService) CurrentUser(_ context.Context, username string) (*domain.User, error) {
	if s.user == nil || s.user.Username != username {
		return nil, domain.ErrUserNotFound
	}
	return s.user, nil
}

func (s *stubAuthService) ChangePassword(_ context.Context, _, oldPassword, _ string) error {
	if oldPassword != "old-pass" {
		return domain.ErrInvalidOldPassword
	}
	return nil
}

func (s *stubAuthService) SetupAdmin(_ context.Context, _, _, _ string) (*domain.User, error) {
	if s.setupErr != nil {
		return nil, s.setupErr
	}
	return s.user, nil
}

func testUser() *domain.User {
	return &domain.User{
		ID:       1,
		Username: "alice",
		Email:    "alice@example.com",
		Role:     &domain.Role{ID: 1, Name: domain.RoleAdmin},
		Status:   domain.UserActive,
	}
}

func newHandlerContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Login_Success(t *testing.T) {
	svc := &stubAuthService{user: testUser(), token: "signed-token"}
	h := NewAuthHandler(svc)

	c, rec := newHandlerContext(t, http.MethodPost, "/api/auth/login", `{"username":"alice","password":"s3cret"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("login: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Token string `json:"token"`
		User  struct {
			Username string `json:"username"`
			RoleName string `json:"role_name"`
		} `json:"user"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Token != "signed-token" {
		t.Fatalf("unexpected token %q", resp.Token)
	}
	if resp.User.Username != "alice" || resp.User.RoleName != domain.RoleAdmin {
		t.Fatalf("unexpected user payload: %+v", resp.User)
	}
	if strings.Contains(rec.Body.String(), "password") {
		t.Fatalf("password material leaked into response: %s", rec.Body.String())
	}
}

func TestAuthHandler_Login_Failure(t *testing.T) {
	svc := &stubAuthService{loginErr: domain.ErrInvalidCredentials}
	h := NewAuthHandler(svc)

	c, _ := newHandlerContext(t, http.MethodPost, "/api/auth/login", `{"username":"alice","password":"wrong"}`)
	if err := h.Login(c); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials to propagate, got %v", err)
	}
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	c, _ := newHandlerContext(t, http.MethodPost, "/api/auth/login", `{"username":"alice"}`)
	err := h.Login(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing password, got %v", err)
	}
}

func TestAuthHandler_Me(t *testing.T) {
	svc := &stubAuthService{user: testUser()}
	h := NewAuthHandler(svc)

	c, rec := newHandlerContext(t, http.MethodGet, "/api/auth/me", "")
	c.Set(middleware.ContextUsername, "alice")
	if err := h.Me(c); err != nil {
		t.Fatalf("me: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	// Without a principal the request is rejected before the service runs.
	c, _ = newHandlerContext(t, http.MethodGet, "/api/auth/me", "")
	if err := h.Me(c); err != domain.ErrUnauthorized {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}

	// A token that outlived its account maps the miss to an auth failure.
	c, _ = newHandlerContext(t, http.MethodGet, "/api/auth/me", "")
	c.Set(middleware.ContextUsername, "ghost")
	if err := h.Me(c); err != domain.ErrUnauthorized {
		t.Fatalf("expected ErrUnauthorized for deleted account, got %v", err)
	}
}

func TestAuthHandler_SetupAdmin_Conflict(t *testing.T) {
	svc := &stubAuthService{setupErr: domain.ErrAdminExists}
	h := NewAuthHandler(svc)

	c, _ := newHandlerContext(t, http.MethodPost, "/api/auth/setup-admin",
		`{"username":"root","email":"root@example.com","password":"s3cret1"}`)
	if err := h.SetupAdmin(c); err != domain.ErrAdminExists {
		t.Fatalf("expected ErrAdminExists to propagate, got %v", err)
	}
}

func TestAuthHandler_Logout_NoContent(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	c, rec := newHandlerContext(t, http.MethodPost, "/api/auth/logout", "")
	if err := h.Logout(c); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}
