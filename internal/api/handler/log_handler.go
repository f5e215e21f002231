package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/studentregistry/registry-api/internal/core/ports"
)

// LogHandler serves the admin-only audit trail endpoints.
type LogHandler struct {
	audit ports.AuditService
}

func NewLogHandler(audit ports.AuditService) *LogHandler {
	return &LogHandler{audit: audit}
}

// List returns audit entries, most recent first. Filters action, userId,
// dateFrom, dateTo are optional and AND-combined. courseId and studentId are
// accepted for API compatibility but ignored: entries do not carry those
// fields.
//
// @Summary      Query the audit log
// @Tags         logs
// @Produce      json
// @Router       /api/logs [get]
func (h *LogHandler) List(c echo.Context) error {
	filter := ports.LogFilter{
		Action: c.QueryParam("action"),
		UserID: queryInt64(c, "userId"),
		From:   queryDate(c, "dateFrom"),
		To:     queryDate(c, "dateTo"),
	}

	page := pageRequest(c)
	entries, total, err := h.audit.Query(c.Request().Context(), filter, page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newPaginated(entries, total, page.Page, page.Limit))
}

func (h *LogHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	entry, err := h.audit.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entry)
}
