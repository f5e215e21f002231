package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/studentregistry/registry-api/internal/core/domain"
	"github.com/studentregistry/registry-api/internal/core/ports"
)

type EnrollmentService struct {
	repo     ports.EnrollmentRepository
	students ports.StudentRepository
	courses  ports.CourseRepository
	audit    ports.AuditLogger
	logger   zerolog.Logger
}

func NewEnrollmentService(repo ports.EnrollmentRepository, students ports.StudentRepository, courses ports.CourseRepository, audit ports.AuditLogger, logger zerolog.Logger) *EnrollmentService {
	return &EnrollmentService{repo: repo, students: students, courses: courses, audit: audit, logger: logger}
}

func (s *EnrollmentService) Get(ctx context.Context, id int64) (*domain.Enrollment, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *EnrollmentService) GetByStudentAndCourse(ctx context.Context, studentID, courseID int64) (*domain.Enrollment, error) {
	return s.repo.FindByStudentAndCourse(ctx, studentID, courseID)
}

func (s *EnrollmentService) List(ctx context.Context, filter ports.EnrollmentFilter, page ports.PageRequest) ([]domain.Enrollment, int64, error) {
	return s.repo.List(ctx, filter, page.Normalize())
}

// Enroll creates an enrollment after checking the student and course exist
// and the pair is not already enrolled.
func (s *EnrollmentService) Enroll(ctx context.Context, studentID, courseID int64, actor string) (*domain.Enrollment, error) {
	if _, err := s.students.FindByID(ctx, studentID); err != nil {
		return nil, err
	}
	course, err := s.courses.FindByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.FindByStudentAndCourse(ctx, studentID, courseID); err == nil {
		return nil, domain.ErrAlreadyEnrolled
	} else if !errors.Is(err, domain.ErrEnrollmentNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	e := &domain.Enrollment{
		StudentID:  studentID,
		CourseID:   courseID,
		EnrolledAt: now,
		UpdatedAt:  now,
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, actor, domain.ActionCreateEnrollment, map[string]any{
		"enrollmentId": e.ID,
		"studentId":    studentID,
		"courseId":     courseID,
		"courseCode":   course.CourseCode,
	})
	return e, nil
}

func (s *EnrollmentService) UpdateGrade(ctx context.Context, id int64, grade string, actor string) (*domain.Enrollment, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var oldGrade string
	if e.FinalGrade != nil {
		oldGrade = *e.FinalGrade
	}
	e.FinalGrade = &grade
	e.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, actor, domain.ActionUpdateGrade, map[string]any{
		"enrollmentId": e.ID,
		"studentId":    e.StudentID,
		"courseId":     e.CourseID,
		"oldGrade":     oldGrade,
		"newGrade":     grade,
	})
	return e, nil
}

func (s *EnrollmentService) Remove(ctx context.Context, id int64, actor string) error {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	return s.remove(ctx, e, actor)
}

func (s *EnrollmentService) RemoveByStudentAndCourse(ctx context.Context, studentID, courseID int64, actor string) error {
	e, err := s.repo.FindByStudentAndCourse(ctx, studentID, courseID)
	if err != nil {
		return err
	}
	return s.remove(ctx, e, actor)
}

func (s *EnrollmentService) remove(ctx context.Context, e *domain.Enrollment, actor string) error {
	if err := s.repo.Delete(ctx, e.ID); err != nil {
		return err
	}
	s.audit.Record(ctx, actor, domain.ActionRemoveEnrollment, map[string]any{
		"enrollmentId": e.ID,
		"studentId":    e.StudentID,
		"courseId":     e.CourseID,
	})
	return nil
}
