package attendance

import (
	"time"

	"github.com/trezcool/shule/core/assignment"
)

// Statuses
const (
	StatusPresent = "Present"
	StatusAbsent  = "Absent"
)

// ValidStatus reports whether s is a recordable status. Anything else in a
// submission is skipped silently, not rejected.
func ValidStatus(s string) bool {
	return s == StatusPresent || s == StatusAbsent
}

// Record is one student's status for one subject on one day. The
// (student, subject, date) key is unique: re-marking overwrites the status
// in place, it never appends.
type Record struct {
	StudentID int       `json:"student_id"`
	SubjectID int       `json:"subject_id"`
	Date      time.Time `json:"date"`
	Status    string    `json:"status"`
}

// Form is everything a teacher needs to mark attendance for a day: the
// resolved mapping, the roster, and any statuses already saved for that day.
type Form struct {
	Assignment assignment.ResolvedAssignment `json:"assignment"`
	Date       time.Time                     `json:"date"`
	Roster     []assignment.RosterEntry      `json:"roster"`
	Statuses   map[int]string                `json:"statuses"` // studentID -> status
}

// DateOf truncates t to its calendar day in UTC; ledger keys carry no
// time-of-day component.
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
