package domain

import (
	"strings"
	"time"
)

// Canonical role names. Role names are stored uppercase; NormalizeRole is the
// single place that enforces that.
const (
	RoleAdmin   = "ADMIN"
	RoleTeacher = "TEACHER"
	RoleViewer  = "VIEWER"
)

// SystemActor is the sentinel username recorded for actions performed before
// any user is authenticated (admin bootstrap). It never resolves to a real
// user, so audit entries it produces carry a nil actor.
const SystemActor = "SYSTEM"

// NormalizeRole returns the canonical uppercase form of a role name. An empty
// name maps to the implicit default role.
func NormalizeRole(name string) string {
	name = strings.ToUpper(strings.TrimSpace(name))
	if name == "" {
		return RoleViewer
	}
	return name
}

// Authority translates a role name into the capability token used by the
// route policy, e.g. "ADMIN" -> "ROLE_ADMIN".
func Authority(role string) string {
	return "ROLE_" + NormalizeRole(role)
}

// UserStatus gates login eligibility.
type UserStatus string

const (
	UserActive   UserStatus = "active"
	UserInactive UserStatus = "inactive"
)

// Role is the sole authorization discriminant; exactly one per user.
type Role struct {
	ID   int64  `json:"id" bson:"_id"`
	Name string `json:"name" bson:"name"`
}

// User models an authenticated actor in the system.
type User struct {
	ID           int64      `json:"id" bson:"_id"`
	Username     string     `json:"username" bson:"username"`
	Email        string     `json:"email" bson:"email"`
	PasswordHash string     `json:"-" bson:"password_hash"`
	Role         *Role      `json:"role,omitempty" bson:"role,omitempty"`
	Status       UserStatus `json:"status" bson:"status"`
	CreatedAt    time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" bson:"updated_at"`
}

// Enabled reports whether the user may log in.
func (u *User) Enabled() bool {
	return u.Status == UserActive
}

// RoleName returns the canonical role name, falling back to the default role
// when no role is assigned.
func (u *User) RoleName() string {
	if u.Role == nil {
		return RoleViewer
	}
	return NormalizeRole(u.Role.Name)
}
