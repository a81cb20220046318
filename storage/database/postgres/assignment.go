package pgrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core/assignment"
)

const (
	assignmentTupleConstraint = "teacher_assignment_tuple_key"
	enrollmentConstraint      = "student_enrollment_student_id_key"
)

type assignmentRepository struct {
	db *sqlx.DB
}

var _ assignment.Repository = (*assignmentRepository)(nil) // interface compliance check

func NewAssignmentRepository(db *sqlx.DB) *assignmentRepository {
	return &assignmentRepository{db: db}
}

type assignmentRow struct {
	ID        int       `db:"id"`
	TeacherID int       `db:"teacher_id"`
	ClassID   int       `db:"class_id"`
	SubjectID int       `db:"subject_id"`
	CreatedAt time.Time `db:"created_at"`
}

type enrollmentRow struct {
	ID        int       `db:"id"`
	StudentID int       `db:"student_id"`
	ClassID   int       `db:"class_id"`
	CreatedAt time.Time `db:"created_at"`
}

func (repo assignmentRepository) CreateAssignment(ctx context.Context, ta assignment.TeacherAssignment) (assignment.TeacherAssignment, error) {
	var r assignmentRow
	err := repo.db.GetContext(
		ctx, &r,
		`INSERT INTO teacher_assignment (teacher_id, class_id, subject_id, created_at)
		 VALUES ($1, $2, $3, $4)
		 RETURNING *`,
		ta.TeacherID, ta.ClassID, ta.SubjectID, ta.CreatedAt.UTC(),
	)
	if err != nil {
		if constraint, ok := violatedConstraint(err); ok && constraint == assignmentTupleConstraint {
			return assignment.TeacherAssignment{}, assignment.ErrDuplicateAssignment
		}
		return assignment.TeacherAssignment{}, errors.Wrap(err, "creating assignment")
	}
	return assignment.TeacherAssignment{
		ID:        r.ID,
		TeacherID: r.TeacherID,
		ClassID:   r.ClassID,
		SubjectID: r.SubjectID,
		CreatedAt: r.CreatedAt.UTC(),
	}, nil
}

func (repo assignmentRepository) QueryAssignments(ctx context.Context) ([]assignment.AssignmentInfo, error) {
	var rows []struct {
		ID          int    `db:"id"`
		TeacherName string `db:"teacher_name"`
		ClassName   string `db:"class_name"`
		SubjectName string `db:"subject_name"`
	}
	err := repo.db.SelectContext(
		ctx, &rows,
		`SELECT ta.id, u.name AS teacher_name, c.name AS class_name, s.name AS subject_name
		 FROM teacher_assignment ta
		 JOIN app_user u ON u.id = ta.teacher_id
		 JOIN class c ON c.id = ta.class_id
		 JOIN subject s ON s.id = ta.subject_id
		 ORDER BY ta.id`,
	)
	if err != nil {
		return nil, errors.Wrap(err, "querying assignments")
	}

	infos := make([]assignment.AssignmentInfo, 0, len(rows))
	for _, r := range rows {
		infos = append(infos, assignment.AssignmentInfo(r))
	}
	return infos, nil
}

func (repo assignmentRepository) GetFirstTeacherAssignment(ctx context.Context, teacherID int) (assignment.ResolvedAssignment, error) {
	var r struct {
		ID          int    `db:"id"`
		TeacherID   int    `db:"teacher_id"`
		ClassID     int    `db:"class_id"`
		SubjectID   int    `db:"subject_id"`
		ClassName   string `db:"class_name"`
		SubjectName string `db:"subject_name"`
	}
	err := repo.db.GetContext(
		ctx, &r,
		`SELECT ta.id, ta.teacher_id, ta.class_id, ta.subject_id, c.name AS class_name, s.name AS subject_name
		 FROM teacher_assignment ta
		 JOIN class c ON c.id = ta.class_id
		 JOIN subject s ON s.id = ta.subject_id
		 WHERE ta.teacher_id = $1
		 ORDER BY ta.id
		 LIMIT 1`,
		teacherID,
	)
	if err != nil {
		if errors.Cause(err) == sql.ErrNoRows {
			return assignment.ResolvedAssignment{}, assignment.ErrNoAssignment
		}
		return assignment.ResolvedAssignment{}, errors.Wrap(err, "resolving teacher assignment")
	}
	return assignment.ResolvedAssignment(r), nil
}

func (repo assignmentRepository) CreateEnrollment(ctx context.Context, se assignment.StudentEnrollment) (assignment.StudentEnrollment, error) {
	var r enrollmentRow
	err := repo.db.GetContext(
		ctx, &r,
		`INSERT INTO student_enrollment (student_id, class_id, created_at)
		 VALUES ($1, $2, $3)
		 RETURNING *`,
		se.StudentID, se.ClassID, se.CreatedAt.UTC(),
	)
	if err != nil {
		if constraint, ok := violatedConstraint(err); ok && constraint == enrollmentConstraint {
			return assignment.StudentEnrollment{}, assignment.ErrAlreadyEnrolled
		}
		return assignment.StudentEnrollment{}, errors.Wrap(err, "creating enrollment")
	}
	return assignment.StudentEnrollment{
		ID:        r.ID,
		StudentID: r.StudentID,
		ClassID:   r.ClassID,
		CreatedAt: r.CreatedAt.UTC(),
	}, nil
}

func (repo assignmentRepository) QueryRoster(ctx context.Context, classID int) ([]assignment.RosterEntry, error) {
	var rows []struct {
		StudentID int    `db:"student_id"`
		Name      string `db:"name"`
	}
	err := repo.db.SelectContext(
		ctx, &rows,
		`SELECT se.student_id, u.name
		 FROM student_enrollment se
		 JOIN app_user u ON u.id = se.student_id
		 WHERE se.class_id = $1
		 ORDER BY se.student_id`,
		classID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "querying roster")
	}

	roster := make([]assignment.RosterEntry, 0, len(rows))
	for _, r := range rows {
		roster = append(roster, assignment.RosterEntry(r))
	}
	return roster, nil
}

func (repo assignmentRepository) GetStudentClass(ctx context.Context, studentID int) (assignment.ClassSummary, error) {
	var r struct {
		ClassName    string `db:"class_name"`
		AcademicYear string `db:"academic_year"`
	}
	err := repo.db.GetContext(
		ctx, &r,
		`SELECT c.name AS class_name, c.academic_year
		 FROM student_enrollment se
		 JOIN class c ON c.id = se.class_id
		 WHERE se.student_id = $1`,
		studentID,
	)
	if err != nil {
		if errors.Cause(err) == sql.ErrNoRows {
			return assignment.ClassSummary{}, assignment.ErrNotEnrolled
		}
		return assignment.ClassSummary{}, errors.Wrap(err, "finding student class")
	}
	return assignment.ClassSummary(r), nil
}

func (repo assignmentRepository) QueryTaughtStudents(ctx context.Context, teacherID int) ([]assignment.TaughtStudent, error) {
	var rows []struct {
		Name      string `db:"name"`
		Email     string `db:"email"`
		ClassName string `db:"class_name"`
	}
	err := repo.db.SelectContext(
		ctx, &rows,
		`SELECT DISTINCT u.name, u.email, c.name AS class_name
		 FROM student_enrollment se
		 JOIN app_user u ON u.id = se.student_id
		 JOIN class c ON c.id = se.class_id
		 JOIN teacher_assignment ta ON ta.class_id = se.class_id
		 WHERE ta.teacher_id = $1
		 ORDER BY u.name`,
		teacherID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "querying taught students")
	}

	students := make([]assignment.TaughtStudent, 0, len(rows))
	for _, r := range rows {
		students = append(students, assignment.TaughtStudent(r))
	}
	return students, nil
}
