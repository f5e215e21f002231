package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/studentregistry/registry-api/internal/core/domain"
	"github.com/studentregistry/registry-api/internal/core/ports"
)

type TeacherHandler struct {
	teachers ports.TeacherService
}

func NewTeacherHandler(teachers ports.TeacherService) *TeacherHandler {
	return &TeacherHandler{teachers: teachers}
}

type teacherRequest struct {
	FirstName  string `json:"first_name" validate:"required"`
	LastName   string `json:"last_name" validate:"required"`
	Department string `json:"department,omitempty"`
	Email      string `json:"email,omitempty" validate:"omitempty,email"`
	Phone      string `json:"phone,omitempty"`
}

func (r *teacherRequest) toDomain() *domain.Teacher {
	return &domain.Teacher{
		FirstName:  r.FirstName,
		LastName:   r.LastName,
		Department: r.Department,
		Email:      r.Email,
		Phone:      r.Phone,
	}
}

func (h *TeacherHandler) List(c echo.Context) error {
	page := pageRequest(c)
	items, total, err := h.teachers.List(c.Request().Context(), c.QueryParam("department"), page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newPaginated(items, total, page.Page, page.Limit))
}

func (h *TeacherHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	teacher, err := h.teachers.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, teacher)
}

func (h *TeacherHandler) Create(c echo.Context) error {
	var req teacherRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	teacher, err := h.teachers.Create(c.Request().Context(), req.toDomain(), actor(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, teacher)
}

func (h *TeacherHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req teacherRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	teacher, err := h.teachers.Update(c.Request().Context(), id, req.toDomain(), actor(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, teacher)
}

func (h *TeacherHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.teachers.Delete(c.Request().Context(), id, actor(c)); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

type assignUserRequest struct {
	UserID int64 `json:"user_id" validate:"required"`
}

// AssignUser links a login account to the teacher record.
func (h *TeacherHandler) AssignUser(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req assignUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	teacher, err := h.teachers.AssignUser(c.Request().Context(), id, req.UserID, actor(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, teacher)
}

// RevokeUser unlinks the teacher's login account.
func (h *TeacherHandler) RevokeUser(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	teacher, err := h.teachers.RevokeUser(c.Request().Context(), id, actor(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, teacher)
}
