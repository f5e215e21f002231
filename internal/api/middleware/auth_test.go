package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/studentregistry/registry-api/internal/core/domain"
	"github.com/studentregistry/registry-api/internal/core/service"
)

const testSecret = "test-secret"

func newAuthContext(t *testing.T, authorization string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/students", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func runBearerAuth(t *testing.T, c echo.Context) bool {
	t.Helper()
	codec := service.NewTokenCodec(testSecret, time.Hour)
	called := false
	handler := BearerAuth(codec)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return called
}

func TestBearerAuth_ValidToken(t *testing.T) {
	codec := service.NewTokenCodec(testSecret, time.Hour)
	token, err := codec.Issue("alice", "teacher")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	c, _ := newAuthContext(t, "Bearer "+token)
	if !runBearerAuth(t, c) {
		t.Fatalf("next not called")
	}

	if c.Get(ContextUsername) != "alice" {
		t.Fatalf("username not installed: %v", c.Get(ContextUsername))
	}
	// The role claim is normalized on the way in.
	if c.Get(ContextRole) != domain.RoleTeacher {
		t.Fatalf("role not normalized: %v", c.Get(ContextRole))
	}
	if c.Get(ContextAuthority) != "ROLE_TEACHER" {
		t.Fatalf("authority not installed: %v", c.Get(ContextAuthority))
	}
}

func TestBearerAuth_AnonymousPassthrough(t *testing.T) {
	expired := issueToken(t, jwt.MapClaims{
		"sub":  "alice",
		"role": "TEACHER",
		"exp":  time.Now().Add(-time.Hour).Unix(),
	})
	tampered := issueTokenWithKey(t, jwt.MapClaims{
		"sub":  "alice",
		"role": "TEACHER",
		"exp":  time.Now().Add(time.Hour).Unix(),
	}, "wrong-key")
	roleless := issueToken(t, jwt.MapClaims{
		"sub": "alice",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	cases := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"not bearer", "Basic abc"},
		{"missing token part", "Bearer"},
		{"garbage token", "Bearer not-a-jwt"},
		{"expired token", "Bearer " + expired},
		{"tampered token", "Bearer " + tampered},
		{"no role claim", "Bearer " + roleless},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := newAuthContext(t, tc.header)
			if !runBearerAuth(t, c) {
				t.Fatalf("next not called; the filter must stay fail-open")
			}
			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", rec.Code)
			}
			if username, _ := c.Get(ContextUsername).(string); username != "" {
				t.Fatalf("principal installed for %s: %q", tc.name, username)
			}
		})
	}
}

func TestBearerAuth_ExistingPrincipalUntouched(t *testing.T) {
	codec := service.NewTokenCodec(testSecret, time.Hour)
	token, err := codec.Issue("bob", "ADMIN")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	c, _ := newAuthContext(t, "Bearer "+token)
	c.Set(ContextUsername, "alice")
	c.Set(ContextRole, domain.RoleTeacher)

	if !runBearerAuth(t, c) {
		t.Fatalf("next not called")
	}
	if c.Get(ContextUsername) != "alice" || c.Get(ContextRole) != domain.RoleTeacher {
		t.Fatalf("installed principal was overwritten")
	}
}

func issueToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	return issueTokenWithKey(t, claims, testSecret)
}

func issueTokenWithKey(t *testing.T, claims jwt.MapClaims, key string) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(key))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}
