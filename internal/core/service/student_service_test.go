package service

import (
	"context"
	"errors"
	"testing"

	"github.com/studentregistry/registry-api/internal/core/domain"
)

func TestStudentService_Create(t *testing.T) {
	repo := newStubStudentRepo()
	audit := &recordingAudit{}
	svc := NewStudentService(repo, audit, nopLogger())

	st, err := svc.Create(context.Background(), &domain.Student{
		FirstName:      "Mira",
		LastName:       "Chen",
		Department:     "CS",
		EnrollmentYear: 2024,
	}, "alice")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if st.ID == 0 {
		t.Fatalf("expected assigned id")
	}
	if st.Status != domain.StudentActive {
		t.Fatalf("expected default active status, got %q", st.Status)
	}

	last := audit.last()
	if last == nil || last.Action != domain.ActionCreateStudent {
		t.Fatalf("expected CREATE_STUDENT audit entry, got %+v", last)
	}
	if last.Details["name"] != "Mira Chen" {
		t.Fatalf("unexpected audited name: %v", last.Details["name"])
	}
}

func TestStudentService_Update_AuditsTransition(t *testing.T) {
	repo := newStubStudentRepo()
	audit := &recordingAudit{}
	svc := NewStudentService(repo, audit, nopLogger())

	st, err := svc.Create(context.Background(), &domain.Student{
		FirstName: "Mira",
		LastName:  "Chen",
		Status:    domain.StudentActive,
	}, "alice")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = svc.Update(context.Background(), st.ID, &domain.Student{
		FirstName: "Mira",
		LastName:  "Tan",
		Status:    domain.StudentGraduated,
	}, "alice")
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	last := audit.last()
	if last == nil || last.Action != domain.ActionUpdateStudent {
		t.Fatalf("expected UPDATE_STUDENT audit entry, got %+v", last)
	}
	if last.Details["oldName"] != "Mira Chen" || last.Details["newName"] != "Mira Tan" {
		t.Fatalf("name transition not audited: %+v", last.Details)
	}
	if last.Details["oldStatus"] != "active" || last.Details["newStatus"] != "graduated" {
		t.Fatalf("status transition not audited: %+v", last.Details)
	}
}

func TestStudentService_Delete_Missing(t *testing.T) {
	repo := newStubStudentRepo()
	svc := NewStudentService(repo, &recordingAudit{}, nopLogger())

	if err := svc.Delete(context.Background(), 42, "alice"); !errors.Is(err, domain.ErrStudentNotFound) {
		t.Fatalf("expected ErrStudentNotFound, got %v", err)
	}
}

func TestStudentService_Create_SurvivesAuditOutage(t *testing.T) {
	repo := newStubStudentRepo()
	users := newStubUserRepo()
	audit, _ := newFailingAuditService(users)
	svc := NewStudentService(repo, audit, nopLogger())

	st, err := svc.Create(context.Background(), &domain.Student{
		FirstName: "Mira",
		LastName:  "Chen",
	}, "alice")
	if err != nil {
		t.Fatalf("create must succeed despite audit outage: %v", err)
	}
	if _, err := repo.FindByID(context.Background(), st.ID); err != nil {
		t.Fatalf("student not persisted: %v", err)
	}
}
