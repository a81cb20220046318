package pgrepos

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core/attendance"
)

type attendanceRepository struct {
	db *sqlx.DB
}

var _ attendance.Repository = (*attendanceRepository)(nil) // interface compliance check

func NewAttendanceRepository(db *sqlx.DB) *attendanceRepository {
	return &attendanceRepository{db: db}
}

// UpsertRecords writes the whole batch inside one transaction; a re-marked
// (student, subject, date) key overwrites its status in place.
func (repo attendanceRepository) UpsertRecords(ctx context.Context, records []attendance.Record) error {
	tx, err := repo.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "beginning transaction")
	}

	for _, rec := range records {
		_, err = tx.ExecContext(
			ctx,
			`INSERT INTO attendance (student_id, subject_id, date, status, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, now(), now())
			 ON CONFLICT ON CONSTRAINT attendance_student_subject_date_key
			 DO UPDATE SET status = EXCLUDED.status, updated_at = now()`,
			rec.StudentID, rec.SubjectID, rec.Date.UTC(), rec.Status,
		)
		if err != nil {
			_ = tx.Rollback()
			return errors.Wrap(err, "upserting attendance record")
		}
	}

	if err = tx.Commit(); err != nil {
		return errors.Wrap(err, "committing attendance batch")
	}
	return nil
}

func (repo attendanceRepository) QuerySubjectRecords(ctx context.Context, subjectID int, date time.Time) ([]attendance.Record, error) {
	var rows []struct {
		StudentID int       `db:"student_id"`
		SubjectID int       `db:"subject_id"`
		Date      time.Time `db:"date"`
		Status    string    `db:"status"`
	}
	err := repo.db.SelectContext(
		ctx, &rows,
		`SELECT student_id, subject_id, date, status
		 FROM attendance
		 WHERE subject_id = $1 AND date = $2
		 ORDER BY student_id`,
		subjectID, date.UTC(),
	)
	if err != nil {
		return nil, errors.Wrap(err, "querying attendance records")
	}

	records := make([]attendance.Record, 0, len(rows))
	for _, r := range rows {
		records = append(records, attendance.Record{
			StudentID: r.StudentID,
			SubjectID: r.SubjectID,
			Date:      r.Date.UTC(),
			Status:    r.Status,
		})
	}
	return records, nil
}
