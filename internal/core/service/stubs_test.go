package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/studentregistry/registry-api/internal/core/domain"
	"github.com/studentregistry/registry-api/internal/core/ports"
)

// In-memory stand-ins for the persistence ports. They keep the tests free of
// a running database while preserving the repositories' error contracts.

type stubUserRepo struct {
	users  map[int64]*domain.User
	nextID int64
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[int64]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	if u.Role != nil {
		role := *u.Role
		clone.Role = &role
	}
	return &clone
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := r.FindByUsername(ctx, username)
	return err == nil, nil
}

func (r *stubUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.FindByEmail(ctx, email)
	return err == nil, nil
}

func (r *stubUserRepo) AnyWithRole(_ context.Context, roleName string) (bool, error) {
	for _, u := range r.users {
		if u.RoleName() == domain.NormalizeRole(roleName) {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubUserRepo) List(_ context.Context, filter ports.UserFilter, page ports.PageRequest) ([]domain.User, int64, error) {
	var out []domain.User
	for _, u := range r.users {
		if filter.Status != "" && u.Status != filter.Status {
			continue
		}
		if filter.RoleName != "" && u.RoleName() != domain.NormalizeRole(filter.RoleName) {
			continue
		}
		out = append(out, *cloneUser(u))
	}
	return out, int64(len(out)), nil
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) error {
	for _, u := range r.users {
		if u.Username == user.Username || u.Email == user.Email {
			return domain.ErrUserExists
		}
	}
	r.nextID++
	user.ID = r.nextID
	r.users[user.ID] = cloneUser(user)
	return nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	r.users[user.ID] = cloneUser(user)
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

type stubRoleRepo struct {
	roles  map[int64]*domain.Role
	nextID int64
}

func newStubRoleRepo() *stubRoleRepo {
	return &stubRoleRepo{roles: make(map[int64]*domain.Role)}
}

func (r *stubRoleRepo) FindByID(_ context.Context, id int64) (*domain.Role, error) {
	if role, ok := r.roles[id]; ok {
		clone := *role
		return &clone, nil
	}
	return nil, domain.ErrRoleNotFound
}

func (r *stubRoleRepo) FindByName(_ context.Context, name string) (*domain.Role, error) {
	for _, role := range r.roles {
		if role.Name == domain.NormalizeRole(name) {
			clone := *role
			return &clone, nil
		}
	}
	return nil, domain.ErrRoleNotFound
}

func (r *stubRoleRepo) List(_ context.Context) ([]domain.Role, error) {
	var out []domain.Role
	for _, role := range r.roles {
		out = append(out, *role)
	}
	return out, nil
}

func (r *stubRoleRepo) Create(_ context.Context, role *domain.Role) error {
	for _, existing := range r.roles {
		if existing.Name == role.Name {
			return domain.ErrRoleExists
		}
	}
	r.nextID++
	role.ID = r.nextID
	clone := *role
	r.roles[role.ID] = &clone
	return nil
}

func (r *stubRoleRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.roles[id]; !ok {
		return domain.ErrRoleNotFound
	}
	delete(r.roles, id)
	return nil
}

// stubAuditRepo stores entries in insertion order; failErr injects a write
// fault.
type stubAuditRepo struct {
	entries []domain.AuditEntry
	nextID  int64
	failErr error
}

func (r *stubAuditRepo) Insert(_ context.Context, entry *domain.AuditEntry) error {
	if r.failErr != nil {
		return r.failErr
	}
	r.nextID++
	entry.ID = r.nextID
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *stubAuditRepo) FindByID(_ context.Context, id int64) (*domain.AuditEntry, error) {
	for i := range r.entries {
		if r.entries[i].ID == id {
			clone := r.entries[i]
			return &clone, nil
		}
	}
	return nil, domain.ErrLogNotFound
}

func (r *stubAuditRepo) DetachUser(_ context.Context, userID int64) error {
	if r.failErr != nil {
		return r.failErr
	}
	for i := range r.entries {
		if r.entries[i].UserID != nil && *r.entries[i].UserID == userID {
			r.entries[i].UserID = nil
		}
	}
	return nil
}

func (r *stubAuditRepo) List(_ context.Context, filter ports.LogFilter, _ ports.PageRequest) ([]domain.AuditEntry, int64, error) {
	var out []domain.AuditEntry
	for i := len(r.entries) - 1; i >= 0; i-- {
		e := r.entries[i]
		if filter.Action != "" && e.Action != filter.Action {
			continue
		}
		if filter.UserID != nil && (e.UserID == nil || *e.UserID != *filter.UserID) {
			continue
		}
		if filter.From != nil && e.Timestamp.Before(*filter.From) {
			continue
		}
		if filter.To != nil && e.Timestamp.After(*filter.To) {
			continue
		}
		out = append(out, e)
	}
	return out, int64(len(out)), nil
}

// recordedAction is one captured audit call.
type recordedAction struct {
	Actor   string
	Action  string
	Details map[string]any
}

// recordingAudit captures Record and DetachActor calls without touching
// storage.
type recordingAudit struct {
	calls    []recordedAction
	detached []int64
}

func (a *recordingAudit) Record(_ context.Context, actor, action string, details map[string]any) {
	a.calls = append(a.calls, recordedAction{Actor: actor, Action: action, Details: details})
}

func (a *recordingAudit) DetachActor(_ context.Context, userID int64) {
	a.detached = append(a.detached, userID)
}

func (a *recordingAudit) last() *recordedAction {
	if len(a.calls) == 0 {
		return nil
	}
	return &a.calls[len(a.calls)-1]
}

type stubStudentRepo struct {
	students map[int64]*domain.Student
	nextID   int64
}

func newStubStudentRepo() *stubStudentRepo {
	return &stubStudentRepo{students: make(map[int64]*domain.Student)}
}

func (r *stubStudentRepo) FindByID(_ context.Context, id int64) (*domain.Student, error) {
	if s, ok := r.students[id]; ok {
		clone := *s
		return &clone, nil
	}
	return nil, domain.ErrStudentNotFound
}

func (r *stubStudentRepo) List(_ context.Context, _ ports.StudentFilter, _ ports.PageRequest) ([]domain.Student, int64, error) {
	var out []domain.Student
	for _, s := range r.students {
		out = append(out, *s)
	}
	return out, int64(len(out)), nil
}

func (r *stubStudentRepo) Create(_ context.Context, s *domain.Student) error {
	r.nextID++
	s.ID = r.nextID
	clone := *s
	r.students[s.ID] = &clone
	return nil
}

func (r *stubStudentRepo) Update(_ context.Context, s *domain.Student) error {
	if _, ok := r.students[s.ID]; !ok {
		return domain.ErrStudentNotFound
	}
	clone := *s
	r.students[s.ID] = &clone
	return nil
}

func (r *stubStudentRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.students[id]; !ok {
		return domain.ErrStudentNotFound
	}
	delete(r.students, id)
	return nil
}

type stubCourseRepo struct {
	courses map[int64]*domain.Course
	nextID  int64
}

func newStubCourseRepo() *stubCourseRepo {
	return &stubCourseRepo{courses: make(map[int64]*domain.Course)}
}

func (r *stubCourseRepo) FindByID(_ context.Context, id int64) (*domain.Course, error) {
	if c, ok := r.courses[id]; ok {
		clone := *c
		return &clone, nil
	}
	return nil, domain.ErrCourseNotFound
}

func (r *stubCourseRepo) List(_ context.Context, _ ports.CourseFilter, _ ports.PageRequest) ([]domain.Course, int64, error) {
	var out []domain.Course
	for _, c := range r.courses {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func (r *stubCourseRepo) Create(_ context.Context, c *domain.Course) error {
	r.nextID++
	c.ID = r.nextID
	clone := *c
	r.courses[c.ID] = &clone
	return nil
}

func (r *stubCourseRepo) Update(_ context.Context, c *domain.Course) error {
	if _, ok := r.courses[c.ID]; !ok {
		return domain.ErrCourseNotFound
	}
	clone := *c
	r.courses[c.ID] = &clone
	return nil
}

func (r *stubCourseRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.courses[id]; !ok {
		return domain.ErrCourseNotFound
	}
	delete(r.courses, id)
	return nil
}

type stubEnrollmentRepo struct {
	enrollments map[int64]*domain.Enrollment
	nextID      int64
}

func newStubEnrollmentRepo() *stubEnrollmentRepo {
	return &stubEnrollmentRepo{enrollments: make(map[int64]*domain.Enrollment)}
}

func (r *stubEnrollmentRepo) FindByID(_ context.Context, id int64) (*domain.Enrollment, error) {
	if e, ok := r.enrollments[id]; ok {
		clone := *e
		return &clone, nil
	}
	return nil, domain.ErrEnrollmentNotFound
}

func (r *stubEnrollmentRepo) FindByStudentAndCourse(_ context.Context, studentID, courseID int64) (*domain.Enrollment, error) {
	for _, e := range r.enrollments {
		if e.StudentID == studentID && e.CourseID == courseID {
			clone := *e
			return &clone, nil
		}
	}
	return nil, domain.ErrEnrollmentNotFound
}

func (r *stubEnrollmentRepo) List(_ context.Context, _ ports.EnrollmentFilter, _ ports.PageRequest) ([]domain.Enrollment, int64, error) {
	var out []domain.Enrollment
	for _, e := range r.enrollments {
		out = append(out, *e)
	}
	return out, int64(len(out)), nil
}

func (r *stubEnrollmentRepo) Create(_ context.Context, e *domain.Enrollment) error {
	for _, existing := range r.enrollments {
		if existing.StudentID == e.StudentID && existing.CourseID == e.CourseID {
			return domain.ErrAlreadyEnrolled
		}
	}
	r.nextID++
	e.ID = r.nextID
	clone := *e
	r.enrollments[e.ID] = &clone
	return nil
}

func (r *stubEnrollmentRepo) Update(_ context.Context, e *domain.Enrollment) error {
	if _, ok := r.enrollments[e.ID]; !ok {
		return domain.ErrEnrollmentNotFound
	}
	clone := *e
	r.enrollments[e.ID] = &clone
	return nil
}

func (r *stubEnrollmentRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.enrollments[id]; !ok {
		return domain.ErrEnrollmentNotFound
	}
	delete(r.enrollments, id)
	return nil
}

// failingAudit always fails the underlying write; used to prove audit faults
// never surface to callers.
func newFailingAuditService(users ports.UserRepository) (*AuditService, *stubAuditRepo) {
	repo := &stubAuditRepo{failErr: errTestAuditDown}
	return NewAuditService(repo, users, nopLogger()), repo
}

var errTestAuditDown = errors.New("audit store down")

func nopLogger() zerolog.Logger {
	return zerolog.Nop()
}

func mustHash(password string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	return string(hash)
}

func seedUser(r *stubUserRepo, username, password, roleName string) *domain.User {
	hash := mustHash(password)
	now := time.Now().UTC()
	u := &domain.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: hash,
		Role:         &domain.Role{ID: 1, Name: domain.NormalizeRole(roleName)},
		Status:       domain.UserActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	_ = r.Create(context.Background(), u)
	return u
}
