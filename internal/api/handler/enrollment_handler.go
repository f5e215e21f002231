package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/studentregistry/registry-api/internal/core/ports"
)

type EnrollmentHandler struct {
	enrollments ports.EnrollmentService
}

func NewEnrollmentHandler(enrollments ports.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{enrollments: enrollments}
}

type enrollRequest struct {
	StudentID int64 `json:"student_id" validate:"required"`
	CourseID  int64 `json:"course_id" validate:"required"`
}

type gradeRequest struct {
	FinalGrade string `json:"final_grade" validate:"required"`
}

// List supports studentId, courseId, and graded/ungraded filters.
func (h *EnrollmentHandler) List(c echo.Context) error {
	filter := ports.EnrollmentFilter{
		StudentID: queryInt64(c, "studentId"),
		CourseID:  queryInt64(c, "courseId"),
	}
	switch c.QueryParam("graded") {
	case "true":
		graded := true
		filter.Graded = &graded
	case "false":
		graded := false
		filter.Graded = &graded
	}

	page := pageRequest(c)
	items, total, err := h.enrollments.List(c.Request().Context(), filter, page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newPaginated(items, total, page.Page, page.Limit))
}

func (h *EnrollmentHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	enrollment, err := h.enrollments.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, enrollment)
}

func (h *EnrollmentHandler) GetByStudentAndCourse(c echo.Context) error {
	studentID, err := pathID(c, "studentId")
	if err != nil {
		return err
	}
	courseID, err := pathID(c, "courseId")
	if err != nil {
		return err
	}
	enrollment, err := h.enrollments.GetByStudentAndCourse(c.Request().Context(), studentID, courseID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, enrollment)
}

func (h *EnrollmentHandler) Create(c echo.Context) error {
	var req enrollRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	enrollment, err := h.enrollments.Enroll(c.Request().Context(), req.StudentID, req.CourseID, actor(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, enrollment)
}

// UpdateGrade sets the final grade on an enrollment.
func (h *EnrollmentHandler) UpdateGrade(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req gradeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	enrollment, err := h.enrollments.UpdateGrade(c.Request().Context(), id, req.FinalGrade, actor(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, enrollment)
}

func (h *EnrollmentHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.enrollments.Remove(c.Request().Context(), id, actor(c)); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// DeleteByStudentAndCourse removes the enrollment addressed by the
// (student, course) pair, matching the original unenroll endpoint.
func (h *EnrollmentHandler) DeleteByStudentAndCourse(c echo.Context) error {
	studentID := queryInt64(c, "studentId")
	courseID := queryInt64(c, "courseId")
	if studentID == nil || courseID == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "studentId and courseId are required")
	}
	if err := h.enrollments.RemoveByStudentAndCourse(c.Request().Context(), *studentID, *courseID, actor(c)); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
