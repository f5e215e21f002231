package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/studentregistry/registry-api/internal/core/domain"
	"github.com/studentregistry/registry-api/internal/core/ports"
)

type stubAbsenceRepo struct {
	absences []domain.Absence
}

func (r *stubAbsenceRepo) Find(_ context.Context, studentID, courseID int64, date time.Time) (*domain.Absence, error) {
	for i := range r.absences {
		a := r.absences[i]
		if a.StudentID == studentID && a.CourseID == courseID && a.Date.Equal(date) {
			return &a, nil
		}
	}
	return nil, domain.ErrAbsenceNotFound
}

func (r *stubAbsenceRepo) List(_ context.Context, _ ports.AbsenceFilter, _ ports.PageRequest) ([]domain.Absence, int64, error) {
	return append([]domain.Absence(nil), r.absences...), int64(len(r.absences)), nil
}

func (r *stubAbsenceRepo) Create(_ context.Context, a *domain.Absence) error {
	for _, existing := range r.absences {
		if existing.StudentID == a.StudentID && existing.CourseID == a.CourseID && existing.Date.Equal(a.Date) {
			return domain.ErrDuplicateAbsence
		}
	}
	r.absences = append(r.absences, *a)
	return nil
}

func (r *stubAbsenceRepo) Delete(_ context.Context, studentID, courseID int64, date time.Time) error {
	for i := range r.absences {
		a := r.absences[i]
		if a.StudentID == studentID && a.CourseID == courseID && a.Date.Equal(date) {
			r.absences = append(r.absences[:i], r.absences[i+1:]...)
			return nil
		}
	}
	return domain.ErrAbsenceNotFound
}

func newAbsenceFixture(t *testing.T) (*AbsenceService, *domain.Student, *domain.Course, *stubAbsenceRepo) {
	t.Helper()
	students := newStubStudentRepo()
	courses := newStubCourseRepo()
	repo := &stubAbsenceRepo{}
	svc := NewAbsenceService(repo, students, courses, &recordingAudit{}, nopLogger())

	st := &domain.Student{FirstName: "Mira", LastName: "Chen"}
	if err := students.Create(context.Background(), st); err != nil {
		t.Fatalf("seed student: %v", err)
	}
	course := &domain.Course{CourseCode: "CS101", CourseName: "Intro"}
	if err := courses.Create(context.Background(), course); err != nil {
		t.Fatalf("seed course: %v", err)
	}
	return svc, st, course, repo
}

func TestAbsenceService_Add_TruncatesToDay(t *testing.T) {
	svc, st, course, _ := newAbsenceFixture(t)

	stamp := time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC)
	a, err := svc.Add(context.Background(), st.ID, course.ID, stamp, "alice")
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	want := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	if !a.Date.Equal(want) {
		t.Fatalf("expected date truncated to %v, got %v", want, a.Date)
	}
}

func TestAbsenceService_Add_SameDayDuplicate(t *testing.T) {
	svc, st, course, _ := newAbsenceFixture(t)

	morning := time.Date(2025, 3, 14, 8, 0, 0, 0, time.UTC)
	evening := time.Date(2025, 3, 14, 20, 0, 0, 0, time.UTC)

	if _, err := svc.Add(context.Background(), st.ID, course.ID, morning, "alice"); err != nil {
		t.Fatalf("add: %v", err)
	}
	// A second timestamp on the same calendar day collides on the truncated key.
	if _, err := svc.Add(context.Background(), st.ID, course.ID, evening, "alice"); !errors.Is(err, domain.ErrDuplicateAbsence) {
		t.Fatalf("expected ErrDuplicateAbsence, got %v", err)
	}
}

func TestAbsenceService_Remove(t *testing.T) {
	svc, st, course, repo := newAbsenceFixture(t)

	day := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	if _, err := svc.Add(context.Background(), st.ID, course.ID, day, "alice"); err != nil {
		t.Fatalf("add: %v", err)
	}

	// Removal accepts any timestamp on the recorded day.
	if err := svc.Remove(context.Background(), st.ID, course.ID, day.Add(11*time.Hour), "alice"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(repo.absences) != 0 {
		t.Fatalf("absence not removed")
	}

	if err := svc.Remove(context.Background(), st.ID, course.ID, day, "alice"); !errors.Is(err, domain.ErrAbsenceNotFound) {
		t.Fatalf("expected ErrAbsenceNotFound, got %v", err)
	}
}
