package pgrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core/academic"
)

// Partial unique indexes scoped to is_active rows; deactivated names are
// reusable by design.
const (
	classNameConstraint   = "class_active_name_key"
	subjectNameConstraint = "subject_active_name_class_key"
)

type academicRepository struct {
	db *sqlx.DB
}

var _ academic.Repository = (*academicRepository)(nil) // interface compliance check

func NewAcademicRepository(db *sqlx.DB) *academicRepository {
	return &academicRepository{db: db}
}

type classRow struct {
	ID           int       `db:"id"`
	Name         string    `db:"name"`
	AcademicYear string    `db:"academic_year"`
	IsActive     bool      `db:"is_active"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func (repo academicRepository) unrowClass(r classRow) academic.Class {
	return academic.Class{
		ID:           r.ID,
		Name:         r.Name,
		AcademicYear: r.AcademicYear,
		IsActive:     r.IsActive,
		CreatedAt:    r.CreatedAt.UTC(),
		UpdatedAt:    r.UpdatedAt.UTC(),
	}
}

type subjectRow struct {
	ID        int       `db:"id"`
	Name      string    `db:"name"`
	ClassID   int       `db:"class_id"`
	IsActive  bool      `db:"is_active"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (repo academicRepository) unrowSubject(r subjectRow) academic.Subject {
	return academic.Subject{
		ID:        r.ID,
		Name:      r.Name,
		ClassID:   r.ClassID,
		IsActive:  r.IsActive,
		CreatedAt: r.CreatedAt.UTC(),
		UpdatedAt: r.UpdatedAt.UTC(),
	}
}

func (repo academicRepository) CreateClass(ctx context.Context, class academic.Class) (academic.Class, error) {
	var r classRow
	err := repo.db.GetContext(
		ctx, &r,
		`INSERT INTO class (name, academic_year, is_active, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING *`,
		class.Name, class.AcademicYear, class.IsActive, class.CreatedAt.UTC(), class.UpdatedAt.UTC(),
	)
	if err != nil {
		if constraint, ok := violatedConstraint(err); ok && constraint == classNameConstraint {
			return academic.Class{}, academic.ErrClassExists
		}
		return academic.Class{}, errors.Wrap(err, "creating class")
	}
	return repo.unrowClass(r), nil
}

func (repo academicRepository) QueryActiveClasses(ctx context.Context) ([]academic.Class, error) {
	var rows []classRow
	err := repo.db.SelectContext(ctx, &rows, `SELECT * FROM class WHERE is_active ORDER BY id`)
	if err != nil {
		return nil, errors.Wrap(err, "querying classes")
	}
	classes := make([]academic.Class, 0, len(rows))
	for _, r := range rows {
		classes = append(classes, repo.unrowClass(r))
	}
	return classes, nil
}

func (repo academicRepository) GetClassByID(ctx context.Context, id int) (academic.Class, error) {
	var r classRow
	if err := repo.db.GetContext(ctx, &r, `SELECT * FROM class WHERE id = $1`, id); err != nil {
		if errors.Cause(err) == sql.ErrNoRows {
			return academic.Class{}, academic.ErrClassNotFound
		}
		return academic.Class{}, errors.Wrap(err, "finding class by id")
	}
	return repo.unrowClass(r), nil
}

func (repo academicRepository) SetClassActive(ctx context.Context, id int, active bool) (academic.Class, error) {
	var r classRow
	err := repo.db.GetContext(
		ctx, &r,
		`UPDATE class SET is_active = $2, updated_at = now() WHERE id = $1 RETURNING *`,
		id, active,
	)
	if err != nil {
		if errors.Cause(err) == sql.ErrNoRows {
			return academic.Class{}, academic.ErrClassNotFound
		}
		return academic.Class{}, errors.Wrap(err, "toggling class")
	}
	return repo.unrowClass(r), nil
}

func (repo academicRepository) CreateSubject(ctx context.Context, subject academic.Subject) (academic.Subject, error) {
	var r subjectRow
	err := repo.db.GetContext(
		ctx, &r,
		`INSERT INTO subject (name, class_id, is_active, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING *`,
		subject.Name, subject.ClassID, subject.IsActive, subject.CreatedAt.UTC(), subject.UpdatedAt.UTC(),
	)
	if err != nil {
		if constraint, ok := violatedConstraint(err); ok && constraint == subjectNameConstraint {
			return academic.Subject{}, academic.ErrSubjectExists
		}
		return academic.Subject{}, errors.Wrap(err, "creating subject")
	}
	return repo.unrowSubject(r), nil
}

func (repo academicRepository) QueryActiveSubjects(ctx context.Context, classID ...int) ([]academic.SubjectInfo, error) {
	query := `SELECT s.id, s.name, s.class_id, c.name AS class_name
			  FROM subject s
			  JOIN class c ON c.id = s.class_id
			  WHERE s.is_active`
	args := make([]interface{}, 0, 1)
	if len(classID) > 0 {
		query += ` AND s.class_id = $1`
		args = append(args, classID[0])
	}
	query += ` ORDER BY s.id`

	var infos []struct {
		ID        int    `db:"id"`
		Name      string `db:"name"`
		ClassID   int    `db:"class_id"`
		ClassName string `db:"class_name"`
	}
	if err := repo.db.SelectContext(ctx, &infos, query, args...); err != nil {
		return nil, errors.Wrap(err, "querying subjects")
	}

	subjects := make([]academic.SubjectInfo, 0, len(infos))
	for _, info := range infos {
		subjects = append(subjects, academic.SubjectInfo(info))
	}
	return subjects, nil
}

func (repo academicRepository) GetSubjectByID(ctx context.Context, id int) (academic.Subject, error) {
	var r subjectRow
	if err := repo.db.GetContext(ctx, &r, `SELECT * FROM subject WHERE id = $1`, id); err != nil {
		if errors.Cause(err) == sql.ErrNoRows {
			return academic.Subject{}, academic.ErrSubjectNotFound
		}
		return academic.Subject{}, errors.Wrap(err, "finding subject by id")
	}
	return repo.unrowSubject(r), nil
}

func (repo academicRepository) SetSubjectActive(ctx context.Context, id int, active bool) (academic.Subject, error) {
	var r subjectRow
	err := repo.db.GetContext(
		ctx, &r,
		`UPDATE subject SET is_active = $2, updated_at = now() WHERE id = $1 RETURNING *`,
		id, active,
	)
	if err != nil {
		if errors.Cause(err) == sql.ErrNoRows {
			return academic.Subject{}, academic.ErrSubjectNotFound
		}
		return academic.Subject{}, errors.Wrap(err, "toggling subject")
	}
	return repo.unrowSubject(r), nil
}
