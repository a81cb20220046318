package academic

import (
	"time"

	"github.com/trezcool/shule/core"
)

// Class is a group of students taught together during an academic year.
// Classes are never hard-deleted: deactivation keeps the row valid as a
// historical reference for subjects, enrollments and attendance.
type Class struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	AcademicYear string    `json:"academic_year"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"` // UTC
	UpdatedAt    time.Time `json:"updated_at"` // UTC
}

// Subject is a course taught to one Class.
type Subject struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	ClassID   int       `json:"class_id"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"` // UTC
	UpdatedAt time.Time `json:"updated_at"` // UTC
}

// SubjectInfo is the admin listing row: a subject joined with its class name.
type SubjectInfo struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	ClassID   int    `json:"class_id"`
	ClassName string `json:"class_name"`
}

// NewClass contains information needed to create a new Class.
type NewClass struct {
	Name         string `json:"name" validate:"required"`
	AcademicYear string `json:"academic_year" validate:"required"`
}

func (nc *NewClass) Validate() error {
	nc.Name = core.CleanString(nc.Name)
	nc.AcademicYear = core.CleanString(nc.AcademicYear)
	return core.Validate.Struct(nc)
}

// NewSubject contains information needed to create a new Subject.
type NewSubject struct {
	Name    string `json:"name" validate:"required"`
	ClassID int    `json:"class_id" validate:"required"`
}

func (ns *NewSubject) Validate() error {
	ns.Name = core.CleanString(ns.Name)
	return core.Validate.Struct(ns)
}
