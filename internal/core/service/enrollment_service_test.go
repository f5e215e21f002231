package service

import (
	"context"
	"errors"
	"testing"

	"github.com/studentregistry/registry-api/internal/core/domain"
)

func newEnrollmentFixture(t *testing.T) (*EnrollmentService, *domain.Student, *domain.Course, *recordingAudit) {
	t.Helper()
	students := newStubStudentRepo()
	courses := newStubCourseRepo()
	repo := newStubEnrollmentRepo()
	audit := &recordingAudit{}
	svc := NewEnrollmentService(repo, students, courses, audit, nopLogger())

	st := &domain.Student{FirstName: "Mira", LastName: "Chen"}
	if err := students.Create(context.Background(), st); err != nil {
		t.Fatalf("seed student: %v", err)
	}
	course := &domain.Course{CourseCode: "CS101", CourseName: "Intro", Credit: 3}
	if err := courses.Create(context.Background(), course); err != nil {
		t.Fatalf("seed course: %v", err)
	}
	return svc, st, course, audit
}

func TestEnrollmentService_Enroll(t *testing.T) {
	svc, st, course, audit := newEnrollmentFixture(t)

	e, err := svc.Enroll(context.Background(), st.ID, course.ID, "alice")
	if err != nil {
		t.Fatalf("enroll: %v", err)
	}
	if e.FinalGrade != nil {
		t.Fatalf("new enrollment must be ungraded")
	}

	last := audit.last()
	if last == nil || last.Action != domain.ActionCreateEnrollment {
		t.Fatalf("expected CREATE_ENROLLMENT audit entry, got %+v", last)
	}
	if last.Details["courseCode"] != "CS101" {
		t.Fatalf("course code not audited: %+v", last.Details)
	}

	if _, err := svc.Enroll(context.Background(), st.ID, course.ID, "alice"); !errors.Is(err, domain.ErrAlreadyEnrolled) {
		t.Fatalf("expected ErrAlreadyEnrolled, got %v", err)
	}
}

func TestEnrollmentService_Enroll_MissingReferences(t *testing.T) {
	svc, st, course, _ := newEnrollmentFixture(t)

	if _, err := svc.Enroll(context.Background(), 99, course.ID, "alice"); !errors.Is(err, domain.ErrStudentNotFound) {
		t.Fatalf("expected ErrStudentNotFound, got %v", err)
	}
	if _, err := svc.Enroll(context.Background(), st.ID, 99, "alice"); !errors.Is(err, domain.ErrCourseNotFound) {
		t.Fatalf("expected ErrCourseNotFound, got %v", err)
	}
}

func TestEnrollmentService_UpdateGrade(t *testing.T) {
	svc, st, course, audit := newEnrollmentFixture(t)

	e, err := svc.Enroll(context.Background(), st.ID, course.ID, "alice")
	if err != nil {
		t.Fatalf("enroll: %v", err)
	}

	graded, err := svc.UpdateGrade(context.Background(), e.ID, "A-", "alice")
	if err != nil {
		t.Fatalf("update grade: %v", err)
	}
	if graded.FinalGrade == nil || *graded.FinalGrade != "A-" {
		t.Fatalf("grade not stored: %v", graded.FinalGrade)
	}

	last := audit.last()
	if last == nil || last.Action != domain.ActionUpdateGrade {
		t.Fatalf("expected UPDATE_GRADE audit entry, got %+v", last)
	}
	if last.Details["oldGrade"] != "" || last.Details["newGrade"] != "A-" {
		t.Fatalf("grade transition not audited: %+v", last.Details)
	}
}

func TestEnrollmentService_RemoveByStudentAndCourse(t *testing.T) {
	svc, st, course, audit := newEnrollmentFixture(t)

	if _, err := svc.Enroll(context.Background(), st.ID, course.ID, "alice"); err != nil {
		t.Fatalf("enroll: %v", err)
	}

	if err := svc.RemoveByStudentAndCourse(context.Background(), st.ID, course.ID, "alice"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if last := audit.last(); last == nil || last.Action != domain.ActionRemoveEnrollment {
		t.Fatalf("expected REMOVE_ENROLLMENT audit entry, got %+v", last)
	}

	if err := svc.RemoveByStudentAndCourse(context.Background(), st.ID, course.ID, "alice"); !errors.Is(err, domain.ErrEnrollmentNotFound) {
		t.Fatalf("expected ErrEnrollmentNotFound, got %v", err)
	}
}
