package attendance

import (
	"context"
	"time"

	"github.com/trezcool/shule/core/assignment"
)

type (
	Repository interface {
		// UpsertRecords inserts or overwrites the whole batch inside a single
		// commit boundary: a mid-batch failure leaves no partial subset behind.
		UpsertRecords(ctx context.Context, records []Record) error
		QuerySubjectRecords(ctx context.Context, subjectID int, date time.Time) ([]Record, error)
	}

	Service struct {
		repo        Repository
		assignments assignment.Repository
	}
)

func NewService(repo Repository, assignments assignment.Repository) *Service {
	return &Service{repo: repo, assignments: assignments}
}

// PrepareForm resolves the teacher's mapping and roster for the given day,
// along with any statuses already saved. Returns assignment.ErrNoAssignment
// when the teacher holds no mapping; callers redirect with a notice, this is
// not a hard failure.
func (svc *Service) PrepareForm(ctx context.Context, teacherID int, date time.Time) (Form, error) {
	asn, err := svc.assignments.GetFirstTeacherAssignment(ctx, teacherID)
	if err != nil {
		return Form{}, err
	}
	roster, err := svc.assignments.QueryRoster(ctx, asn.ClassID)
	if err != nil {
		return Form{}, err
	}

	date = DateOf(date)
	saved, err := svc.repo.QuerySubjectRecords(ctx, asn.SubjectID, date)
	if err != nil {
		return Form{}, err
	}
	statuses := make(map[int]string, len(saved))
	for _, rec := range saved {
		statuses[rec.StudentID] = rec.Status
	}

	return Form{
		Assignment: asn,
		Date:       date,
		Roster:     roster,
		Statuses:   statuses,
	}, nil
}

// Submit upserts the day's statuses for the teacher's resolved subject.
// Entries carrying anything but Present/Absent are skipped silently, and the
// write set is restricted to the roster of the resolved class: a student id
// outside it is never writable through this operation, whatever the payload
// says. The surviving batch commits atomically; last commit wins.
func (svc *Service) Submit(ctx context.Context, teacherID int, date time.Time, statusByStudent map[int]string) error {
	asn, err := svc.assignments.GetFirstTeacherAssignment(ctx, teacherID)
	if err != nil {
		return err
	}
	roster, err := svc.assignments.QueryRoster(ctx, asn.ClassID)
	if err != nil {
		return err
	}

	date = DateOf(date)
	records := make([]Record, 0, len(roster))
	for _, entry := range roster {
		status, ok := statusByStudent[entry.StudentID]
		if !ok || !ValidStatus(status) {
			continue
		}
		records = append(records, Record{
			StudentID: entry.StudentID,
			SubjectID: asn.SubjectID,
			Date:      date,
			Status:    status,
		})
	}
	if len(records) == 0 {
		return nil
	}
	return svc.repo.UpsertRecords(ctx, records)
}

// SheetFor returns the saved statuses for the teacher's subject on the given
// day, keyed by student id.
func (svc *Service) SheetFor(ctx context.Context, teacherID int, date time.Time) (map[int]string, error) {
	asn, err := svc.assignments.GetFirstTeacherAssignment(ctx, teacherID)
	if err != nil {
		return nil, err
	}
	records, err := svc.repo.QuerySubjectRecords(ctx, asn.SubjectID, DateOf(date))
	if err != nil {
		return nil, err
	}
	sheet := make(map[int]string, len(records))
	for _, rec := range records {
		sheet[rec.StudentID] = rec.Status
	}
	return sheet, nil
}
