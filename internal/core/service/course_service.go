package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/studentregistry/registry-api/internal/core/domain"
	"github.com/studentregistry/registry-api/internal/core/ports"
)

type CourseService struct {
	repo   ports.CourseRepository
	audit  ports.AuditLogger
	logger zerolog.Logger
}

func NewCourseService(repo ports.CourseRepository, audit ports.AuditLogger, logger zerolog.Logger) *CourseService {
	return &CourseService{repo: repo, audit: audit, logger: logger}
}

func (s *CourseService) Get(ctx context.Context, id int64) (*domain.Course, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *CourseService) List(ctx context.Context, filter ports.CourseFilter, page ports.PageRequest) ([]domain.Course, int64, error) {
	return s.repo.List(ctx, filter, page.Normalize())
}

func (s *CourseService) Create(ctx context.Context, c *domain.Course, actor string) (*domain.Course, error) {
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	if c.Status == "" {
		c.Status = domain.CourseActive
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, actor, domain.ActionCreateCourse, map[string]any{
		"courseId":   c.ID,
		"courseCode": c.CourseCode,
		"courseName": c.CourseName,
		"semester":   c.Semester,
	})
	return c, nil
}

func (s *CourseService) Update(ctx context.Context, id int64, details *domain.Course, actor string) (*domain.Course, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	oldCode := c.CourseCode

	c.CourseCode = details.CourseCode
	c.Section = details.Section
	c.CourseName = details.CourseName
	c.Description = details.Description
	c.Credit = details.Credit
	c.Department = details.Department
	c.Semester = details.Semester
	c.TeacherID = details.TeacherID
	c.Status = details.Status
	c.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, actor, domain.ActionUpdateCourse, map[string]any{
		"courseId": c.ID,
		"oldCode":  oldCode,
		"newCode":  c.CourseCode,
	})
	return c, nil
}

func (s *CourseService) Delete(ctx context.Context, id int64, actor string) error {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.audit.Record(ctx, actor, domain.ActionDeleteCourse, map[string]any{
		"courseId":   c.ID,
		"courseCode": c.CourseCode,
	})
	return nil
}
