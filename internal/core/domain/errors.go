package domain

import "errors"

// Authentication / authorization errors. Login failures are uniform: the
// caller never learns whether the username or the password was wrong.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidOldPassword = errors.New("invalid old password")
)

// Lookup misses.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrRoleNotFound       = errors.New("role not found")
	ErrStudentNotFound    = errors.New("student not found")
	ErrTeacherNotFound    = errors.New("teacher not found")
	ErrCourseNotFound     = errors.New("course not found")
	ErrEnrollmentNotFound = errors.New("enrollment not found")
	ErrAbsenceNotFound    = errors.New("absence not found")
	ErrSettingNotFound    = errors.New("setting not found")
	ErrLogNotFound        = errors.New("log entry not found")
)

// Uniqueness and singleton violations.
var (
	ErrUserExists       = errors.New("user already exists")
	ErrAdminExists      = errors.New("an admin user already exists in the system")
	ErrRoleExists       = errors.New("role already exists")
	ErrSettingExists    = errors.New("setting already exists")
	ErrAlreadyEnrolled  = errors.New("student is already enrolled in this course")
	ErrDuplicateAbsence = errors.New("absence already recorded")
)
