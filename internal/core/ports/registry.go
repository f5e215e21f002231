package ports

import (
	"context"
	"time"

	"github.com/studentregistry/registry-api/internal/core/domain"
)

// StudentFilter narrows student listings. Name matches first or last name,
// case-insensitive partial.
type StudentFilter struct {
	Name           string
	Department     string
	EnrollmentYear *int
	Status         domain.StudentStatus
}

type StudentRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.Student, error)
	List(ctx context.Context, filter StudentFilter, page PageRequest) ([]domain.Student, int64, error)
	Create(ctx context.Context, s *domain.Student) error
	Update(ctx context.Context, s *domain.Student) error
	Delete(ctx context.Context, id int64) error
}

type TeacherRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.Teacher, error)
	List(ctx context.Context, department string, page PageRequest) ([]domain.Teacher, int64, error)
	Create(ctx context.Context, t *domain.Teacher) error
	Update(ctx context.Context, t *domain.Teacher) error
	Delete(ctx context.Context, id int64) error
}

// CourseFilter narrows course listings.
type CourseFilter struct {
	Department string
	Semester   string
	TeacherID  *int64
	Status     domain.CourseStatus
}

type CourseRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.Course, error)
	List(ctx context.Context, filter CourseFilter, page PageRequest) ([]domain.Course, int64, error)
	Create(ctx context.Context, c *domain.Course) error
	Update(ctx context.Context, c *domain.Course) error
	Delete(ctx context.Context, id int64) error
}

// EnrollmentFilter narrows enrollment listings. Graded selects entries with
// (true) or without (false) a final grade.
type EnrollmentFilter struct {
	StudentID *int64
	CourseID  *int64
	Graded    *bool
}

type EnrollmentRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.Enrollment, error)
	FindByStudentAndCourse(ctx context.Context, studentID, courseID int64) (*domain.Enrollment, error)
	List(ctx context.Context, filter EnrollmentFilter, page PageRequest) ([]domain.Enrollment, int64, error)
	Create(ctx context.Context, e *domain.Enrollment) error
	Update(ctx context.Context, e *domain.Enrollment) error
	Delete(ctx context.Context, id int64) error
}

// AbsenceFilter narrows absence listings.
type AbsenceFilter struct {
	StudentID *int64
	CourseID  *int64
	Date      *time.Time
}

type AbsenceRepository interface {
	Find(ctx context.Context, studentID, courseID int64, date time.Time) (*domain.Absence, error)
	List(ctx context.Context, filter AbsenceFilter, page PageRequest) ([]domain.Absence, int64, error)
	Create(ctx context.Context, a *domain.Absence) error
	Delete(ctx context.Context, studentID, courseID int64, date time.Time) error
}

type SettingRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.Setting, error)
	FindByKey(ctx context.Context, key string) (*domain.Setting, error)
	ExistsByKey(ctx context.Context, key string) (bool, error)
	List(ctx context.Context) ([]domain.Setting, error)
	Create(ctx context.Context, s *domain.Setting) error
	Update(ctx context.Context, s *domain.Setting) error
	Delete(ctx context.Context, id int64) error
	DeleteByKey(ctx context.Context, key string) error
}
