package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/studentregistry/registry-api/internal/core/ports"
)

type AbsenceHandler struct {
	absences ports.AbsenceService
}

func NewAbsenceHandler(absences ports.AbsenceService) *AbsenceHandler {
	return &AbsenceHandler{absences: absences}
}

type absenceRequest struct {
	StudentID int64  `json:"student_id" validate:"required"`
	CourseID  int64  `json:"course_id" validate:"required"`
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
}

func (h *AbsenceHandler) List(c echo.Context) error {
	filter := ports.AbsenceFilter{
		StudentID: queryInt64(c, "studentId"),
		CourseID:  queryInt64(c, "courseId"),
		Date:      queryDate(c, "date"),
	}

	page := pageRequest(c)
	items, total, err := h.absences.List(c.Request().Context(), filter, page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newPaginated(items, total, page.Page, page.Limit))
}

func (h *AbsenceHandler) Create(c echo.Context) error {
	var req absenceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	date, _ := time.Parse("2006-01-02", req.Date)

	absence, err := h.absences.Add(c.Request().Context(), req.StudentID, req.CourseID, date, actor(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, absence)
}

// Delete removes the absence addressed by its composite key.
func (h *AbsenceHandler) Delete(c echo.Context) error {
	studentID, err := pathID(c, "studentId")
	if err != nil {
		return err
	}
	courseID, err := pathID(c, "courseId")
	if err != nil {
		return err
	}
	date, err := time.Parse("2006-01-02", c.Param("date"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid date")
	}

	if err := h.absences.Remove(c.Request().Context(), studentID, courseID, date, actor(c)); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
