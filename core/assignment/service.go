package assignment

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/shule/core/academic"
	"github.com/trezcool/shule/core/user"
)

var (
	// errors
	ErrDuplicateAssignment = errors.New("this mapping already exists")
	ErrAlreadyEnrolled     = errors.New("student already assigned to a class")
	ErrInvalidReference    = errors.New("referenced user, class or subject is unknown or inactive")
	ErrNoAssignment        = errors.New("no subject assigned")
	ErrNotEnrolled         = errors.New("student is not enrolled in any class")
)

type (
	Repository interface {
		// CreateAssignment returns ErrDuplicateAssignment on an exact
		// (teacher, class, subject) tuple match, enforced by the storage
		// engine's uniqueness constraint.
		CreateAssignment(ctx context.Context, ta TeacherAssignment) (TeacherAssignment, error)
		QueryAssignments(ctx context.Context) ([]AssignmentInfo, error) // ordered by id
		// GetFirstTeacherAssignment returns the teacher's lowest-id mapping,
		// or ErrNoAssignment.
		GetFirstTeacherAssignment(ctx context.Context, teacherID int) (ResolvedAssignment, error)

		// CreateEnrollment returns ErrAlreadyEnrolled when the student owns
		// any enrollment row, enforced by the storage engine.
		CreateEnrollment(ctx context.Context, se StudentEnrollment) (StudentEnrollment, error)
		QueryRoster(ctx context.Context, classID int) ([]RosterEntry, error) // ordered by id
		GetStudentClass(ctx context.Context, studentID int) (ClassSummary, error)
		QueryTaughtStudents(ctx context.Context, teacherID int) ([]TaughtStudent, error)
	}

	Service struct {
		repo    Repository
		users   user.Repository
		catalog academic.Repository
	}
)

func NewService(repo Repository, users user.Repository, catalog academic.Repository) *Service {
	return &Service{repo: repo, users: users, catalog: catalog}
}

// AssignTeacher maps a teacher to a (class, subject). All three references
// must be active; the teacher must actually hold the teacher role.
func (svc *Service) AssignTeacher(ctx context.Context, na NewAssignment) (TeacherAssignment, error) {
	if err := svc.checkTeacherRef(ctx, na.TeacherID); err != nil {
		return TeacherAssignment{}, err
	}
	if err := svc.checkClassRef(ctx, na.ClassID); err != nil {
		return TeacherAssignment{}, err
	}
	subject, err := svc.catalog.GetSubjectByID(ctx, na.SubjectID)
	if err != nil || !subject.IsActive {
		return TeacherAssignment{}, ErrInvalidReference
	}

	return svc.repo.CreateAssignment(ctx, TeacherAssignment{
		TeacherID: na.TeacherID,
		ClassID:   na.ClassID,
		SubjectID: na.SubjectID,
		CreatedAt: time.Now().UTC(),
	})
}

// EnrollStudent ties a student to a class. Enrollment is not upsertable: a
// student already owning any enrollment row fails with ErrAlreadyEnrolled.
func (svc *Service) EnrollStudent(ctx context.Context, ne NewEnrollment) (StudentEnrollment, error) {
	usr, err := svc.users.GetUserByID(ctx, ne.StudentID)
	if err != nil || !usr.IsActive || !usr.IsStudent() {
		return StudentEnrollment{}, ErrInvalidReference
	}
	if err := svc.checkClassRef(ctx, ne.ClassID); err != nil {
		return StudentEnrollment{}, err
	}

	return svc.repo.CreateEnrollment(ctx, StudentEnrollment{
		StudentID: ne.StudentID,
		ClassID:   ne.ClassID,
		CreatedAt: time.Now().UTC(),
	})
}

// ResolveTeacherAssignment selects the teacher's first mapping and ignores
// the rest; a teacher holding several (class, subject) mappings gets no say
// in which one drives the attendance form.
// TODO: let teachers pick the mapping once the frontend grows a selector.
func (svc *Service) ResolveTeacherAssignment(ctx context.Context, teacherID int) (ResolvedAssignment, error) {
	return svc.repo.GetFirstTeacherAssignment(ctx, teacherID)
}

func (svc *Service) QueryAssignments(ctx context.Context) ([]AssignmentInfo, error) {
	return svc.repo.QueryAssignments(ctx)
}

// Roster lists the students enrolled in a class, ordered by id.
func (svc *Service) Roster(ctx context.Context, classID int) ([]RosterEntry, error) {
	return svc.repo.QueryRoster(ctx, classID)
}

// StudentClass returns the class a student is enrolled in, or ErrNotEnrolled.
func (svc *Service) StudentClass(ctx context.Context, studentID int) (ClassSummary, error) {
	return svc.repo.GetStudentClass(ctx, studentID)
}

// TaughtStudents unions the rosters of every class the teacher is assigned
// to, deduplicated by student identity.
func (svc *Service) TaughtStudents(ctx context.Context, teacherID int) ([]TaughtStudent, error) {
	return svc.repo.QueryTaughtStudents(ctx, teacherID)
}

func (svc *Service) checkTeacherRef(ctx context.Context, teacherID int) error {
	usr, err := svc.users.GetUserByID(ctx, teacherID)
	if err != nil || !usr.IsActive || !usr.IsTeacher() {
		return ErrInvalidReference
	}
	return nil
}

func (svc *Service) checkClassRef(ctx context.Context, classID int) error {
	class, err := svc.catalog.GetClassByID(ctx, classID)
	if err != nil || !class.IsActive {
		return ErrInvalidReference
	}
	return nil
}
