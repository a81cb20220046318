package assignment

import (
	"time"

	"github.com/trezcool/shule/core"
)

// TeacherAssignment grants a teacher attendance-marking rights over one
// class's roster for one subject. Rows are immutable once created; there is
// no unassign operation, a change of heart means a new distinct mapping.
type TeacherAssignment struct {
	ID        int       `json:"id"`
	TeacherID int       `json:"teacher_id"`
	ClassID   int       `json:"class_id"`
	SubjectID int       `json:"subject_id"`
	CreatedAt time.Time `json:"created_at"` // UTC
}

// StudentEnrollment ties a student to their one and only class.
type StudentEnrollment struct {
	ID        int       `json:"id"`
	StudentID int       `json:"student_id"`
	ClassID   int       `json:"class_id"`
	CreatedAt time.Time `json:"created_at"` // UTC
}

// AssignmentInfo is the admin listing row: a mapping joined with names.
type AssignmentInfo struct {
	ID          int    `json:"id"`
	TeacherName string `json:"teacher_name"`
	ClassName   string `json:"class_name"`
	SubjectName string `json:"subject_name"`
}

// ResolvedAssignment carries everything the attendance workflow needs from
// one teacher mapping.
type ResolvedAssignment struct {
	ID          int    `json:"id"`
	TeacherID   int    `json:"teacher_id"`
	ClassID     int    `json:"class_id"`
	SubjectID   int    `json:"subject_id"`
	ClassName   string `json:"class_name"`
	SubjectName string `json:"subject_name"`
}

// RosterEntry is one student of a class roster.
type RosterEntry struct {
	StudentID int    `json:"student_id"`
	Name      string `json:"name"`
}

// ClassSummary is what an enrolled student sees of their class.
type ClassSummary struct {
	ClassName    string `json:"class_name"`
	AcademicYear string `json:"academic_year"`
}

// TaughtStudent is one row of a teacher's deduplicated student listing.
type TaughtStudent struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	ClassName string `json:"class_name"`
}

// NewAssignment contains information needed to map a teacher to a (class, subject).
type NewAssignment struct {
	TeacherID int `json:"teacher_id" validate:"required"`
	ClassID   int `json:"class_id" validate:"required"`
	SubjectID int `json:"subject_id" validate:"required"`
}

func (na NewAssignment) Validate() error { return core.Validate.Struct(na) }

// NewEnrollment contains information needed to enroll a student in a class.
type NewEnrollment struct {
	StudentID int `json:"student_id" validate:"required"`
	ClassID   int `json:"class_id" validate:"required"`
}

func (ne NewEnrollment) Validate() error { return core.Validate.Struct(ne) }
