package dummydb

import (
	"context"
	"sort"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/shule/core/attendance"
)

type recordKey struct {
	studentID int
	subjectID int
	date      string // yyyy-mm-dd
}

func keyOf(rec attendance.Record) recordKey {
	return recordKey{
		studentID: rec.StudentID,
		subjectID: rec.SubjectID,
		date:      rec.Date.UTC().Format("2006-01-02"),
	}
}

type attendanceRepository struct {
	db *attendanceTable

	// failAfter aborts UpsertRecords after writing n records when > 0,
	// simulating a mid-batch storage fault.
	failAfter int
}

var _ attendance.Repository = (*attendanceRepository)(nil) // interface compliance check

func NewAttendanceRepository(db *DB) *attendanceRepository {
	return &attendanceRepository{db: db.attendance}
}

// FailAfter makes the next UpsertRecords calls abort once n records have been
// staged. Pass 0 to restore normal behavior.
func (repo *attendanceRepository) FailAfter(n int) { repo.failAfter = n }

// UpsertRecords stages the whole batch on a copy of the table and swaps it in
// only when every record went through; a mid-batch fault leaves the table
// untouched.
func (repo *attendanceRepository) UpsertRecords(ctx context.Context, records []attendance.Record) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	staged := make(map[recordKey]*attendance.Record, len(repo.db.table)+len(records))
	for k, v := range repo.db.table {
		rec := *v
		staged[k] = &rec
	}

	for i, rec := range records {
		if repo.failAfter > 0 && i >= repo.failAfter {
			return errors.Errorf("storage fault after %d records", repo.failAfter)
		}
		rec := rec
		rec.Date = attendance.DateOf(rec.Date)
		staged[keyOf(rec)] = &rec
	}

	repo.db.table = staged
	return nil
}

func (repo *attendanceRepository) QuerySubjectRecords(ctx context.Context, subjectID int, date time.Time) ([]attendance.Record, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	day := attendance.DateOf(date).Format("2006-01-02")
	records := make([]attendance.Record, 0)
	for k, rec := range repo.db.table {
		if k.subjectID == subjectID && k.date == day {
			records = append(records, *rec)
		}
	}
	sort.Slice(records, func(i, j int) bool { return records[i].StudentID < records[j].StudentID })
	return records, nil
}
