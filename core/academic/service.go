package academic

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

var (
	// errors
	ErrClassNotFound   = errors.New("class not found")
	ErrSubjectNotFound = errors.New("subject not found")
	ErrClassExists     = errors.New("an active class with this name already exists")
	ErrSubjectExists   = errors.New("an active subject with this name already exists in this class")
)

type (
	Repository interface {
		// CreateClass returns ErrClassExists when an ACTIVE class already
		// holds this name; deactivated names are reusable.
		CreateClass(ctx context.Context, class Class) (Class, error)
		QueryActiveClasses(ctx context.Context) ([]Class, error) // ordered by id
		// GetClassByID does not filter on the active flag: deactivated rows
		// stay queryable for historical joins.
		GetClassByID(ctx context.Context, id int) (Class, error)
		SetClassActive(ctx context.Context, id int, active bool) (Class, error)

		CreateSubject(ctx context.Context, subject Subject) (Subject, error)
		QueryActiveSubjects(ctx context.Context, classID ...int) ([]SubjectInfo, error) // ordered by id
		GetSubjectByID(ctx context.Context, id int) (Subject, error)
		SetSubjectActive(ctx context.Context, id int, active bool) (Subject, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) AddClass(ctx context.Context, nc NewClass) (Class, error) {
	now := time.Now().UTC()
	return svc.repo.CreateClass(ctx, Class{
		Name:         nc.Name,
		AcademicYear: nc.AcademicYear,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}

func (svc *Service) AddSubject(ctx context.Context, ns NewSubject) (Subject, error) {
	class, err := svc.repo.GetClassByID(ctx, ns.ClassID)
	if err != nil {
		return Subject{}, err
	}
	if !class.IsActive {
		return Subject{}, ErrClassNotFound
	}

	now := time.Now().UTC()
	return svc.repo.CreateSubject(ctx, Subject{
		Name:      ns.Name,
		ClassID:   class.ID,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	})
}

func (svc *Service) QueryActiveClasses(ctx context.Context) ([]Class, error) {
	return svc.repo.QueryActiveClasses(ctx)
}

// QueryActiveSubjects lists active subjects, optionally scoped to one class.
func (svc *Service) QueryActiveSubjects(ctx context.Context, classID ...int) ([]SubjectInfo, error) {
	return svc.repo.QueryActiveSubjects(ctx, classID...)
}

func (svc *Service) GetClassByID(ctx context.Context, id int) (Class, error) {
	return svc.repo.GetClassByID(ctx, id)
}

func (svc *Service) GetSubjectByID(ctx context.Context, id int) (Subject, error) {
	return svc.repo.GetSubjectByID(ctx, id)
}

func (svc *Service) DeactivateClass(ctx context.Context, id int) (Class, error) {
	return svc.repo.SetClassActive(ctx, id, false)
}

func (svc *Service) DeactivateSubject(ctx context.Context, id int) (Subject, error) {
	return svc.repo.SetSubjectActive(ctx, id, false)
}
