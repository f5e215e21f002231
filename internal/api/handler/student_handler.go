package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/studentregistry/registry-api/internal/core/domain"
	"github.com/studentregistry/registry-api/internal/core/ports"
)

type StudentHandler struct {
	students    ports.StudentService
	enrollments ports.EnrollmentService
	absences    ports.AbsenceService
}

func NewStudentHandler(students ports.StudentService, enrollments ports.EnrollmentService, absences ports.AbsenceService) *StudentHandler {
	return &StudentHandler{students: students, enrollments: enrollments, absences: absences}
}

type studentRequest struct {
	FirstName      string `json:"first_name" validate:"required"`
	LastName       string `json:"last_name" validate:"required"`
	DateOfBirth    string `json:"date_of_birth,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Gender         string `json:"gender,omitempty"`
	Phone          string `json:"phone,omitempty"`
	Email          string `json:"email,omitempty" validate:"omitempty,email"`
	Address        string `json:"address,omitempty"`
	Department     string `json:"department,omitempty"`
	Program        string `json:"program,omitempty"`
	EnrollmentYear int    `json:"enrollment_year" validate:"required,gte=1900"`
	Status         string `json:"status,omitempty" validate:"omitempty,oneof=active graduated inactive dropped"`
}

func (r *studentRequest) toDomain() *domain.Student {
	s := &domain.Student{
		FirstName:      r.FirstName,
		LastName:       r.LastName,
		Gender:         r.Gender,
		Phone:          r.Phone,
		Email:          r.Email,
		Address:        r.Address,
		Department:     r.Department,
		Program:        r.Program,
		EnrollmentYear: r.EnrollmentYear,
		Status:         domain.StudentStatus(r.Status),
	}
	if r.DateOfBirth != "" {
		if dob, err := time.Parse("2006-01-02", r.DateOfBirth); err == nil {
			s.DateOfBirth = &dob
		}
	}
	return s
}

// List supports name (partial), department, enrollmentYear, and status
// filters. Invalid status values are ignored rather than rejected.
//
// @Summary      List students with filtering and pagination
// @Tags         students
// @Produce      json
// @Router       /api/students [get]
func (h *StudentHandler) List(c echo.Context) error {
	filter := ports.StudentFilter{
		Name:       c.QueryParam("name"),
		Department: c.QueryParam("department"),
	}
	if year, err := strconv.Atoi(c.QueryParam("enrollmentYear")); err == nil {
		filter.EnrollmentYear = &year
	}
	if status, ok := domain.ParseStudentStatus(c.QueryParam("status")); ok {
		filter.Status = status
	}

	page := pageRequest(c)
	items, total, err := h.students.List(c.Request().Context(), filter, page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newPaginated(items, total, page.Page, page.Limit))
}

func (h *StudentHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	student, err := h.students.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, student)
}

func (h *StudentHandler) Create(c echo.Context) error {
	var req studentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	student, err := h.students.Create(c.Request().Context(), req.toDomain(), actor(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, student)
}

func (h *StudentHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req studentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	student, err := h.students.Update(c.Request().Context(), id, req.toDomain(), actor(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, student)
}

func (h *StudentHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.students.Delete(c.Request().Context(), id, actor(c)); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Enrollments lists the enrollments of one student.
func (h *StudentHandler) Enrollments(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if _, err := h.students.Get(c.Request().Context(), id); err != nil {
		return err
	}

	page := pageRequest(c)
	items, total, err := h.enrollments.List(c.Request().Context(), ports.EnrollmentFilter{StudentID: &id}, page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newPaginated(items, total, page.Page, page.Limit))
}

// Absences lists the absences of one student.
func (h *StudentHandler) Absences(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if _, err := h.students.Get(c.Request().Context(), id); err != nil {
		return err
	}

	page := pageRequest(c)
	items, total, err := h.absences.List(c.Request().Context(), ports.AbsenceFilter{StudentID: &id}, page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newPaginated(items, total, page.Page, page.Limit))
}
