package domain

import (
	"strings"
	"time"
)

// StudentStatus is the enrollment lifecycle state of a student.
type StudentStatus string

const (
	StudentActive    StudentStatus = "active"
	StudentGraduated StudentStatus = "graduated"
	StudentInactive  StudentStatus = "inactive"
	StudentDropped   StudentStatus = "dropped"
)

// ParseStudentStatus matches a status value case-insensitively. Unknown
// values return false so list filters can ignore them.
func ParseStudentStatus(s string) (StudentStatus, bool) {
	switch StudentStatus(strings.ToLower(strings.TrimSpace(s))) {
	case StudentActive:
		return StudentActive, true
	case StudentGraduated:
		return StudentGraduated, true
	case StudentInactive:
		return StudentInactive, true
	case StudentDropped:
		return StudentDropped, true
	}
	return "", false
}

type Student struct {
	ID             int64         `json:"id" bson:"_id"`
	FirstName      string        `json:"first_name" bson:"first_name"`
	LastName       string        `json:"last_name" bson:"last_name"`
	DateOfBirth    *time.Time    `json:"date_of_birth,omitempty" bson:"date_of_birth,omitempty"`
	Gender         string        `json:"gender,omitempty" bson:"gender,omitempty"`
	Phone          string        `json:"phone,omitempty" bson:"phone,omitempty"`
	Email          string        `json:"email,omitempty" bson:"email,omitempty"`
	Address        string        `json:"address,omitempty" bson:"address,omitempty"`
	Department     string        `json:"department,omitempty" bson:"department,omitempty"`
	Program        string        `json:"program,omitempty" bson:"program,omitempty"`
	EnrollmentYear int           `json:"enrollment_year" bson:"enrollment_year"`
	Status         StudentStatus `json:"status" bson:"status"`
	CreatedAt      time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at" bson:"updated_at"`
}

// FullName is used in audit payloads.
func (s *Student) FullName() string {
	return s.FirstName + " " + s.LastName
}
