package domain

import "time"

// Audit action tags recorded by the domain services.
const (
	ActionSetupAdmin            = "SETUP_ADMIN"
	ActionChangePassword        = "CHANGE_PASSWORD"
	ActionCreateStudent         = "CREATE_STUDENT"
	ActionUpdateStudent         = "UPDATE_STUDENT"
	ActionDeleteStudent         = "DELETE_STUDENT"
	ActionCreateTeacher         = "CREATE_TEACHER"
	ActionUpdateTeacher         = "UPDATE_TEACHER"
	ActionDeleteTeacher         = "DELETE_TEACHER"
	ActionAssignUserToTeacher   = "ASSIGN_USER_TO_TEACHER"
	ActionRevokeUserFromTeacher = "REVOKE_USER_FROM_TEACHER"
	ActionCreateCourse          = "CREATE_COURSE"
	ActionUpdateCourse          = "UPDATE_COURSE"
	ActionDeleteCourse          = "DELETE_COURSE"
	ActionCreateUser            = "CREATE_USER"
	ActionUpdateUser            = "UPDATE_USER"
	ActionDeleteUser            = "DELETE_USER"
	ActionCreateEnrollment      = "CREATE_ENROLLMENT"
	ActionRemoveEnrollment      = "REMOVE_ENROLLMENT"
	ActionUpdateGrade           = "UPDATE_GRADE"
	ActionAddAbsence            = "ADD_ABSENCE"
	ActionRemoveAbsence         = "REMOVE_ABSENCE"
	ActionUpdateSemester        = "UPDATE_SEMESTER"
)

// AuditEntry is one immutable row of the audit trail. UserID is nil when the
// actor is unknown, the SYSTEM sentinel, or a since-deleted user; historical
// entries must survive user deletion. Descending ID is reverse chronological.
type AuditEntry struct {
	ID        int64          `json:"id" bson:"_id"`
	UserID    *int64         `json:"user_id,omitempty" bson:"user_id,omitempty"`
	Action    string         `json:"action" bson:"action"`
	Details   map[string]any `json:"details,omitempty" bson:"details,omitempty"`
	Timestamp time.Time      `json:"timestamp" bson:"timestamp"`
}
