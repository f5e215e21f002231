package handler

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/studentregistry/registry-api/internal/api/middleware"
	"github.com/studentregistry/registry-api/internal/core/domain"
	"github.com/studentregistry/registry-api/internal/core/ports"
)

// actor returns the authenticated username installed by the bearer filter.
// Handlers behind the policy gate can rely on it being present; the empty
// string only occurs on routes the policy left open.
func actor(c echo.Context) string {
	username, _ := c.Get(middleware.ContextUsername).(string)
	return username
}

// principal fast-fails when no authenticated identity is installed. Used by
// the /api/auth/me and change-password handlers, which accept any role.
func principal(c echo.Context) (string, error) {
	username := actor(c)
	if username == "" {
		return "", domain.ErrUnauthorized
	}
	return username, nil
}

// pathID parses the named numeric path parameter.
func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(400, "invalid "+name)
	}
	return id, nil
}

// pageRequest reads the shared ?page= and ?limit= query parameters.
func pageRequest(c echo.Context) ports.PageRequest {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	return ports.PageRequest{Page: page, Limit: limit}.Normalize()
}

// queryInt64 returns the query parameter as *int64, nil when absent or junk.
func queryInt64(c echo.Context, name string) *int64 {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil
	}
	return &v
}

// queryDate parses a yyyy-mm-dd query parameter, nil when absent or invalid.
func queryDate(c echo.Context, name string) *time.Time {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil
	}
	return &t
}
