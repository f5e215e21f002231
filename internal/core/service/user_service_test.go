package service

import (
	"context"
	"errors"
	"testing"

	"github.com/studentregistry/registry-api/internal/core/domain"
	"github.com/studentregistry/registry-api/internal/core/ports"
)

func newUserFixture() (*UserService, *stubUserRepo, *stubRoleRepo, *stubAuditRepo) {
	users := newStubUserRepo()
	roles := newStubRoleRepo()
	auditRepo := &stubAuditRepo{}
	audit := NewAuditService(auditRepo, users, nopLogger())
	svc := NewUserService(users, roles, audit, nopLogger())
	return svc, users, roles, auditRepo
}

func TestUserService_Create(t *testing.T) {
	svc, _, roles, auditRepo := newUserFixture()
	_ = roles.Create(context.Background(), &domain.Role{Name: domain.RoleTeacher})

	user, err := svc.Create(context.Background(), "mwhite", "mwhite@example.com", "s3cret", "teacher", "", "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if user.Status != domain.UserActive {
		t.Fatalf("status = %q, want %q", user.Status, domain.UserActive)
	}
	if user.RoleName() != domain.RoleTeacher {
		t.Fatalf("role = %q, want %q", user.RoleName(), domain.RoleTeacher)
	}
	if len(auditRepo.entries) != 1 || auditRepo.entries[0].Action != domain.ActionCreateUser {
		t.Fatalf("audit entries = %+v, want one CREATE_USER", auditRepo.entries)
	}

	if _, err := svc.Create(context.Background(), "mwhite", "other@example.com", "s3cret", "teacher", "", ""); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("duplicate username err = %v, want ErrUserExists", err)
	}
}

func TestUserService_Delete_DetachesAuditActor(t *testing.T) {
	svc, users, _, auditRepo := newUserFixture()
	alice := seedUser(users, "alice", "s3cret", domain.RoleAdmin)

	// An entry attributed to alice before her account goes away.
	audit := NewAuditService(auditRepo, users, nopLogger())
	audit.Record(context.Background(), "alice", domain.ActionUpdateSemester, map[string]any{"value": "2026-1"})
	if auditRepo.entries[0].UserID == nil || *auditRepo.entries[0].UserID != alice.ID {
		t.Fatalf("precondition: entry not attributed to alice: %+v", auditRepo.entries[0])
	}

	if err := svc.Delete(context.Background(), alice.ID, "alice"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := users.FindByID(context.Background(), alice.ID); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("user still present after delete: %v", err)
	}

	// The trail survives the delete, but no entry may still point at the
	// dead id. That includes the DELETE_USER entry recorded on the way out.
	entries, _, err := auditRepo.List(context.Background(), ports.LogFilter{}, ports.PageRequest{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	for _, e := range entries {
		if e.UserID != nil {
			t.Fatalf("entry %d (%s) still references deleted user %d; expected nil actor", e.ID, e.Action, *e.UserID)
		}
	}
}

func TestUserService_Delete_SurvivesDetachFailure(t *testing.T) {
	svc, users, _, auditRepo := newUserFixture()
	alice := seedUser(users, "alice", "s3cret", domain.RoleAdmin)

	audit := NewAuditService(auditRepo, users, nopLogger())
	audit.Record(context.Background(), "alice", domain.ActionUpdateSemester, nil)

	auditRepo.failErr = errTestAuditDown
	if err := svc.Delete(context.Background(), alice.ID, "alice"); err != nil {
		t.Fatalf("Delete with audit store down: %v", err)
	}
	if _, err := users.FindByID(context.Background(), alice.ID); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("user still present after delete: %v", err)
	}
}

func TestUserService_Delete_Missing(t *testing.T) {
	svc, _, _, _ := newUserFixture()
	if err := svc.Delete(context.Background(), 42, "admin"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("err = %v, want ErrUserNotFound", err)
	}
}
