package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/studentregistry/registry-api/internal/core/domain"
	"github.com/studentregistry/registry-api/internal/core/ports"
)

type StudentService struct {
	repo   ports.StudentRepository
	audit  ports.AuditLogger
	logger zerolog.Logger
}

func NewStudentService(repo ports.StudentRepository, audit ports.AuditLogger, logger zerolog.Logger) *StudentService {
	return &StudentService{repo: repo, audit: audit, logger: logger}
}

func (s *StudentService) Get(ctx context.Context, id int64) (*domain.Student, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *StudentService) List(ctx context.Context, filter ports.StudentFilter, page ports.PageRequest) ([]domain.Student, int64, error) {
	return s.repo.List(ctx, filter, page.Normalize())
}

func (s *StudentService) Create(ctx context.Context, st *domain.Student, actor string) (*domain.Student, error) {
	now := time.Now().UTC()
	st.CreatedAt = now
	st.UpdatedAt = now
	if st.Status == "" {
		st.Status = domain.StudentActive
	}
	if err := s.repo.Create(ctx, st); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, actor, domain.ActionCreateStudent, map[string]any{
		"studentId":  st.ID,
		"name":       st.FullName(),
		"department": st.Department,
		"status":     string(st.Status),
	})
	return st, nil
}

func (s *StudentService) Update(ctx context.Context, id int64, details *domain.Student, actor string) (*domain.Student, error) {
	st, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	oldName := st.FullName()
	oldStatus := st.Status

	st.FirstName = details.FirstName
	st.LastName = details.LastName
	st.DateOfBirth = details.DateOfBirth
	st.Gender = details.Gender
	st.Phone = details.Phone
	st.Email = details.Email
	st.Address = details.Address
	st.Department = details.Department
	st.Program = details.Program
	st.EnrollmentYear = details.EnrollmentYear
	st.Status = details.Status
	st.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, st); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, actor, domain.ActionUpdateStudent, map[string]any{
		"studentId": st.ID,
		"oldName":   oldName,
		"newName":   st.FullName(),
		"oldStatus": string(oldStatus),
		"newStatus": string(st.Status),
	})
	return st, nil
}

func (s *StudentService) Delete(ctx context.Context, id int64, actor string) error {
	st, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.audit.Record(ctx, actor, domain.ActionDeleteStudent, map[string]any{
		"studentId": st.ID,
		"name":      st.FullName(),
	})
	return nil
}
