package dummydb

import (
	"sync"

	"github.com/trezcool/shule/core/academic"
	"github.com/trezcool/shule/core/assignment"
	"github.com/trezcool/shule/core/attendance"
	"github.com/trezcool/shule/core/user"
)

type (
	DB struct {
		user       *userTable
		class      *classTable
		subject    *subjectTable
		assignment *assignmentTable
		enrollment *enrollmentTable
		attendance *attendanceTable
	}

	userTable struct {
		sync.RWMutex
		table map[int]*user.User
		pk    int
	}

	classTable struct {
		sync.RWMutex
		table map[int]*academic.Class
		pk    int
	}

	subjectTable struct {
		sync.RWMutex
		table map[int]*academic.Subject
		pk    int
	}

	assignmentTable struct {
		sync.RWMutex
		table map[int]*assignment.TeacherAssignment
		pk    int
	}

	enrollmentTable struct {
		sync.RWMutex
		table map[int]*assignment.StudentEnrollment
		pk    int
	}

	attendanceTable struct {
		sync.RWMutex
		table map[recordKey]*attendance.Record
	}
)

func Open() (*DB, error) {
	db := &DB{
		user:       &userTable{table: make(map[int]*user.User)},
		class:      &classTable{table: make(map[int]*academic.Class)},
		subject:    &subjectTable{table: make(map[int]*academic.Subject)},
		assignment: &assignmentTable{table: make(map[int]*assignment.TeacherAssignment)},
		enrollment: &enrollmentTable{table: make(map[int]*assignment.StudentEnrollment)},
		attendance: &attendanceTable{table: make(map[recordKey]*attendance.Record)},
	}
	return db, nil
}
