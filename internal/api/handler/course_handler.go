package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/studentregistry/registry-api/internal/core/domain"
	"github.com/studentregistry/registry-api/internal/core/ports"
)

type CourseHandler struct {
	courses ports.CourseService
}

func NewCourseHandler(courses ports.CourseService) *CourseHandler {
	return &CourseHandler{courses: courses}
}

type courseRequest struct {
	CourseCode  string `json:"course_code" validate:"required"`
	Section     string `json:"section,omitempty"`
	CourseName  string `json:"course_name" validate:"required"`
	Description string `json:"description,omitempty"`
	Credit      int    `json:"credit" validate:"gte=0"`
	Department  string `json:"department,omitempty"`
	Semester    string `json:"semester,omitempty"`
	TeacherID   *int64 `json:"teacher_id,omitempty"`
	Status      string `json:"status,omitempty" validate:"omitempty,oneof=active inactive"`
}

func (r *courseRequest) toDomain() *domain.Course {
	return &domain.Course{
		CourseCode:  r.CourseCode,
		Section:     r.Section,
		CourseName:  r.CourseName,
		Description: r.Description,
		Credit:      r.Credit,
		Department:  r.Department,
		Semester:    r.Semester,
		TeacherID:   r.TeacherID,
		Status:      domain.CourseStatus(r.Status),
	}
}

func (h *CourseHandler) List(c echo.Context) error {
	filter := ports.CourseFilter{
		Department: c.QueryParam("department"),
		Semester:   c.QueryParam("semester"),
		Status:     domain.CourseStatus(c.QueryParam("status")),
		TeacherID:  queryInt64(c, "teacherId"),
	}

	page := pageRequest(c)
	items, total, err := h.courses.List(c.Request().Context(), filter, page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newPaginated(items, total, page.Page, page.Limit))
}

func (h *CourseHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	course, err := h.courses.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, course)
}

func (h *CourseHandler) Create(c echo.Context) error {
	var req courseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	course, err := h.courses.Create(c.Request().Context(), req.toDomain(), actor(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, course)
}

func (h *CourseHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req courseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	course, err := h.courses.Update(c.Request().Context(), id, req.toDomain(), actor(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, course)
}

func (h *CourseHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.courses.Delete(c.Request().Context(), id, actor(c)); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
