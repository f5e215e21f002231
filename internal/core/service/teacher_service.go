package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/studentregistry/registry-api/internal/core/domain"
	"github.com/studentregistry/registry-api/internal/core/ports"
)

type TeacherService struct {
	repo   ports.TeacherRepository
	users  ports.UserRepository
	audit  ports.AuditLogger
	logger zerolog.Logger
}

func NewTeacherService(repo ports.TeacherRepository, users ports.UserRepository, audit ports.AuditLogger, logger zerolog.Logger) *TeacherService {
	return &TeacherService{repo: repo, users: users, audit: audit, logger: logger}
}

func (s *TeacherService) Get(ctx context.Context, id int64) (*domain.Teacher, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *TeacherService) List(ctx context.Context, department string, page ports.PageRequest) ([]domain.Teacher, int64, error) {
	return s.repo.List(ctx, department, page.Normalize())
}

func (s *TeacherService) Create(ctx context.Context, t *domain.Teacher, actor string) (*domain.Teacher, error) {
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, actor, domain.ActionCreateTeacher, map[string]any{
		"teacherId":  t.ID,
		"name":       t.FullName(),
		"department": t.Department,
	})
	return t, nil
}

func (s *TeacherService) Update(ctx context.Context, id int64, details *domain.Teacher, actor string) (*domain.Teacher, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	oldName := t.FullName()

	t.FirstName = details.FirstName
	t.LastName = details.LastName
	t.Department = details.Department
	t.Email = details.Email
	t.Phone = details.Phone
	t.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, actor, domain.ActionUpdateTeacher, map[string]any{
		"teacherId": t.ID,
		"oldName":   oldName,
		"newName":   t.FullName(),
	})
	return t, nil
}

func (s *TeacherService) Delete(ctx context.Context, id int64, actor string) error {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.audit.Record(ctx, actor, domain.ActionDeleteTeacher, map[string]any{
		"teacherId": t.ID,
		"name":      t.FullName(),
	})
	return nil
}

// AssignUser links a login account to a teacher record.
func (s *TeacherService) AssignUser(ctx context.Context, teacherID, userID int64, actor string) (*domain.Teacher, error) {
	t, err := s.repo.FindByID(ctx, teacherID)
	if err != nil {
		return nil, err
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	t.UserID = &user.ID
	t.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, actor, domain.ActionAssignUserToTeacher, map[string]any{
		"teacherId": t.ID,
		"userId":    user.ID,
		"username":  user.Username,
	})
	return t, nil
}

// RevokeUser unlinks the login account from a teacher record.
func (s *TeacherService) RevokeUser(ctx context.Context, teacherID int64, actor string) (*domain.Teacher, error) {
	t, err := s.repo.FindByID(ctx, teacherID)
	if err != nil {
		return nil, err
	}

	revoked := t.UserID
	t.UserID = nil
	t.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}

	details := map[string]any{"teacherId": t.ID}
	if revoked != nil {
		details["userId"] = *revoked
	}
	s.audit.Record(ctx, actor, domain.ActionRevokeUserFromTeacher, details)
	return t, nil
}
