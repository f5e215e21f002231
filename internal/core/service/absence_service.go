package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/studentregistry/registry-api/internal/core/domain"
	"github.com/studentregistry/registry-api/internal/core/ports"
)

type AbsenceService struct {
	repo     ports.AbsenceRepository
	students ports.StudentRepository
	courses  ports.CourseRepository
	audit    ports.AuditLogger
	logger   zerolog.Logger
}

func NewAbsenceService(repo ports.AbsenceRepository, students ports.StudentRepository, courses ports.CourseRepository, audit ports.AuditLogger, logger zerolog.Logger) *AbsenceService {
	return &AbsenceService{repo: repo, students: students, courses: courses, audit: audit, logger: logger}
}

func (s *AbsenceService) List(ctx context.Context, filter ports.AbsenceFilter, page ports.PageRequest) ([]domain.Absence, int64, error) {
	return s.repo.List(ctx, filter, page.Normalize())
}

// Add records one absence for (student, course, date). Dates are truncated to
// midnight UTC so the composite key is calendar-day granular.
func (s *AbsenceService) Add(ctx context.Context, studentID, courseID int64, date time.Time, actor string) (*domain.Absence, error) {
	if _, err := s.students.FindByID(ctx, studentID); err != nil {
		return nil, err
	}
	if _, err := s.courses.FindByID(ctx, courseID); err != nil {
		return nil, err
	}

	day := date.UTC().Truncate(24 * time.Hour)
	if _, err := s.repo.Find(ctx, studentID, courseID, day); err == nil {
		return nil, domain.ErrDuplicateAbsence
	} else if !errors.Is(err, domain.ErrAbsenceNotFound) {
		return nil, err
	}

	a := &domain.Absence{StudentID: studentID, CourseID: courseID, Date: day}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, actor, domain.ActionAddAbsence, map[string]any{
		"studentId": studentID,
		"courseId":  courseID,
		"date":      day.Format("2006-01-02"),
	})
	return a, nil
}

func (s *AbsenceService) Remove(ctx context.Context, studentID, courseID int64, date time.Time, actor string) error {
	day := date.UTC().Truncate(24 * time.Hour)
	if _, err := s.repo.Find(ctx, studentID, courseID, day); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, studentID, courseID, day); err != nil {
		return err
	}

	s.audit.Record(ctx, actor, domain.ActionRemoveAbsence, map[string]any{
		"studentId": studentID,
		"courseId":  courseID,
		"date":      day.Format("2006-01-02"),
	})
	return nil
}
