package domain

import "time"

// Teacher is a staff record, optionally linked to a login account.
type Teacher struct {
	ID         int64     `json:"id" bson:"_id"`
	FirstName  string    `json:"first_name" bson:"first_name"`
	LastName   string    `json:"last_name" bson:"last_name"`
	Department string    `json:"department,omitempty" bson:"department,omitempty"`
	Email      string    `json:"email,omitempty" bson:"email,omitempty"`
	Phone      string    `json:"phone,omitempty" bson:"phone,omitempty"`
	UserID     *int64    `json:"user_id,omitempty" bson:"user_id,omitempty"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" bson:"updated_at"`
}

func (t *Teacher) FullName() string {
	return t.FirstName + " " + t.LastName
}

// CourseStatus marks whether a course is open in the current catalogue.
type CourseStatus string

const (
	CourseActive   CourseStatus = "active"
	CourseInactive CourseStatus = "inactive"
)

type Course struct {
	ID          int64        `json:"id" bson:"_id"`
	CourseCode  string       `json:"course_code" bson:"course_code"`
	Section     string       `json:"section,omitempty" bson:"section,omitempty"`
	CourseName  string       `json:"course_name" bson:"course_name"`
	Description string       `json:"description,omitempty" bson:"description,omitempty"`
	Credit      int          `json:"credit" bson:"credit"`
	Department  string       `json:"department,omitempty" bson:"department,omitempty"`
	Semester    string       `json:"semester,omitempty" bson:"semester,omitempty"`
	TeacherID   *int64       `json:"teacher_id,omitempty" bson:"teacher_id,omitempty"`
	Status      CourseStatus `json:"status" bson:"status"`
	CreatedAt   time.Time    `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at" bson:"updated_at"`
}

// Enrollment links a student to a course; (StudentID, CourseID) is unique.
type Enrollment struct {
	ID         int64     `json:"id" bson:"_id"`
	StudentID  int64     `json:"student_id" bson:"student_id"`
	CourseID   int64     `json:"course_id" bson:"course_id"`
	FinalGrade *string   `json:"final_grade,omitempty" bson:"final_grade,omitempty"`
	EnrolledAt time.Time `json:"enrolled_at" bson:"enrolled_at"`
	UpdatedAt  time.Time `json:"updated_at" bson:"updated_at"`
}

// Absence is keyed by (StudentID, CourseID, Date); it has no surrogate id.
type Absence struct {
	StudentID int64     `json:"student_id" bson:"student_id"`
	CourseID  int64     `json:"course_id" bson:"course_id"`
	Date      time.Time `json:"date" bson:"date"`
}

// Setting is a single key/value configuration row.
type Setting struct {
	ID    int64  `json:"id" bson:"_id"`
	Key   string `json:"key" bson:"key"`
	Value string `json:"value" bson:"value"`
}

// SettingCurrentSemester is the only setting key whose changes are audited.
const SettingCurrentSemester = "current_semester"
