package ports

import (
	"context"
	"time"

	"github.com/studentregistry/registry-api/internal/core/domain"
)

// Domain service use-case interfaces. Mutating operations take the acting
// username so the audit trail can attribute them.

type StudentService interface {
	Get(ctx context.Context, id int64) (*domain.Student, error)
	List(ctx context.Context, filter StudentFilter, page PageRequest) ([]domain.Student, int64, error)
	Create(ctx context.Context, s *domain.Student, actor string) (*domain.Student, error)
	Update(ctx context.Context, id int64, s *domain.Student, actor string) (*domain.Student, error)
	Delete(ctx context.Context, id int64, actor string) error
}

type TeacherService interface {
	Get(ctx context.Context, id int64) (*domain.Teacher, error)
	List(ctx context.Context, department string, page PageRequest) ([]domain.Teacher, int64, error)
	Create(ctx context.Context, t *domain.Teacher, actor string) (*domain.Teacher, error)
	Update(ctx context.Context, id int64, t *domain.Teacher, actor string) (*domain.Teacher, error)
	Delete(ctx context.Context, id int64, actor string) error
	AssignUser(ctx context.Context, teacherID, userID int64, actor string) (*domain.Teacher, error)
	RevokeUser(ctx context.Context, teacherID int64, actor string) (*domain.Teacher, error)
}

type CourseService interface {
	Get(ctx context.Context, id int64) (*domain.Course, error)
	List(ctx context.Context, filter CourseFilter, page PageRequest) ([]domain.Course, int64, error)
	Create(ctx context.Context, c *domain.Course, actor string) (*domain.Course, error)
	Update(ctx context.Context, id int64, c *domain.Course, actor string) (*domain.Course, error)
	Delete(ctx context.Context, id int64, actor string) error
}

type EnrollmentService interface {
	Get(ctx context.Context, id int64) (*domain.Enrollment, error)
	GetByStudentAndCourse(ctx context.Context, studentID, courseID int64) (*domain.Enrollment, error)
	List(ctx context.Context, filter EnrollmentFilter, page PageRequest) ([]domain.Enrollment, int64, error)
	Enroll(ctx context.Context, studentID, courseID int64, actor string) (*domain.Enrollment, error)
	UpdateGrade(ctx context.Context, id int64, grade string, actor string) (*domain.Enrollment, error)
	Remove(ctx context.Context, id int64, actor string) error
	RemoveByStudentAndCourse(ctx context.Context, studentID, courseID int64, actor string) error
}

type AbsenceService interface {
	List(ctx context.Context, filter AbsenceFilter, page PageRequest) ([]domain.Absence, int64, error)
	Add(ctx context.Context, studentID, courseID int64, date time.Time, actor string) (*domain.Absence, error)
	Remove(ctx context.Context, studentID, courseID int64, date time.Time, actor string) error
}

type SettingService interface {
	Get(ctx context.Context, id int64) (*domain.Setting, error)
	GetByKey(ctx context.Context, key string) (*domain.Setting, error)
	// Value returns the setting value or def when the key is absent.
	Value(ctx context.Context, key, def string) (string, error)
	ExistsByKey(ctx context.Context, key string) (bool, error)
	List(ctx context.Context) ([]domain.Setting, error)
	Create(ctx context.Context, s *domain.Setting) (*domain.Setting, error)
	Update(ctx context.Context, id int64, s *domain.Setting) (*domain.Setting, error)
	// SetByKey upserts and, for the current_semester key, audits the change.
	SetByKey(ctx context.Context, key, value, actor string) (*domain.Setting, error)
	Delete(ctx context.Context, id int64) error
	DeleteByKey(ctx context.Context, key string) error
}

type UserService interface {
	Get(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context, filter UserFilter, page PageRequest) ([]domain.User, int64, error)
	Create(ctx context.Context, username, email, password, roleName string, status domain.UserStatus, actor string) (*domain.User, error)
	Update(ctx context.Context, id int64, username, email, password, roleName string, status domain.UserStatus, actor string) (*domain.User, error)
	Delete(ctx context.Context, id int64, actor string) error
}

type RoleService interface {
	Get(ctx context.Context, id int64) (*domain.Role, error)
	List(ctx context.Context) ([]domain.Role, error)
	Create(ctx context.Context, name string) (*domain.Role, error)
	Delete(ctx context.Context, id int64) error
}
