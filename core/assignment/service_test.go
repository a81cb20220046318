package assignment_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/shule/core/academic"
	"github.com/trezcool/shule/core/assignment"
	"github.com/trezcool/shule/core/user"
	dummydb "github.com/trezcool/shule/storage/database/dummy"
	testutil "github.com/trezcool/shule/tests"
)

type fixtures struct {
	svc     *assignment.Service
	repo    assignment.Repository
	users   user.Repository
	catalog academic.Repository

	teacher, student, admin user.User
	class, other            academic.Class
	maths, bio              academic.Subject
}

func setup(t *testing.T) *fixtures {
	t.Helper()

	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("dummydb.Open() failed, %v", err)
	}
	f := &fixtures{
		repo:    dummydb.NewAssignmentRepository(db),
		users:   dummydb.NewUserRepository(db),
		catalog: dummydb.NewAcademicRepository(db),
	}
	f.svc = assignment.NewService(f.repo, f.users, f.catalog)

	f.teacher = testutil.CreateUser(t, f.users, "Teacher Tess", "tess@test.cd", "s3cr3tWord", user.RoleTeacher, true)
	f.student = testutil.CreateUser(t, f.users, "Student Sam", "sam@test.cd", "s3cr3tWord", user.RoleStudent, true)
	f.admin = testutil.CreateUser(t, f.users, "Admin Ann", "ann@test.cd", "s3cr3tWord", user.RoleAdmin, true)
	f.class = testutil.CreateClass(t, f.catalog, "Form 1", "2025-2026", true)
	f.other = testutil.CreateClass(t, f.catalog, "Form 2", "2025-2026", true)
	f.maths = testutil.CreateSubject(t, f.catalog, "Maths", f.class.ID, true)
	f.bio = testutil.CreateSubject(t, f.catalog, "Biology", f.other.ID, true)
	return f
}

func TestService_AssignTeacher(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	ta, err := f.svc.AssignTeacher(ctx, assignment.NewAssignment{
		TeacherID: f.teacher.ID, ClassID: f.class.ID, SubjectID: f.maths.ID,
	})
	if err != nil {
		t.Fatalf("AssignTeacher() failed: %v", err)
	}
	if ta.ID == 0 {
		t.Error("AssignTeacher() did not assign an ID")
	}

	dormantSubject := testutil.CreateSubject(t, f.catalog, "History", f.class.ID, false)

	tests := []struct {
		name    string
		na      assignment.NewAssignment
		wantErr error
	}{
		{
			name:    "exact duplicate",
			na:      assignment.NewAssignment{TeacherID: f.teacher.ID, ClassID: f.class.ID, SubjectID: f.maths.ID},
			wantErr: assignment.ErrDuplicateAssignment,
		},
		{
			name: "same teacher, different subject",
			na:   assignment.NewAssignment{TeacherID: f.teacher.ID, ClassID: f.other.ID, SubjectID: f.bio.ID},
		},
		{
			name:    "student as teacher",
			na:      assignment.NewAssignment{TeacherID: f.student.ID, ClassID: f.class.ID, SubjectID: f.maths.ID},
			wantErr: assignment.ErrInvalidReference,
		},
		{
			name:    "admin as teacher",
			na:      assignment.NewAssignment{TeacherID: f.admin.ID, ClassID: f.class.ID, SubjectID: f.maths.ID},
			wantErr: assignment.ErrInvalidReference,
		},
		{
			name:    "unknown teacher",
			na:      assignment.NewAssignment{TeacherID: 999, ClassID: f.class.ID, SubjectID: f.maths.ID},
			wantErr: assignment.ErrInvalidReference,
		},
		{
			name:    "unknown class",
			na:      assignment.NewAssignment{TeacherID: f.teacher.ID, ClassID: 999, SubjectID: f.maths.ID},
			wantErr: assignment.ErrInvalidReference,
		},
		{
			name:    "deactivated subject",
			na:      assignment.NewAssignment{TeacherID: f.teacher.ID, ClassID: f.class.ID, SubjectID: dormantSubject.ID},
			wantErr: assignment.ErrInvalidReference,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := f.svc.AssignTeacher(ctx, tt.na); err != tt.wantErr {
				t.Errorf("AssignTeacher() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestService_EnrollStudent(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	if _, err := f.svc.EnrollStudent(ctx, assignment.NewEnrollment{StudentID: f.student.ID, ClassID: f.class.ID}); err != nil {
		t.Fatalf("EnrollStudent() failed: %v", err)
	}

	tests := []struct {
		name    string
		ne      assignment.NewEnrollment
		wantErr error
	}{
		{
			name:    "re-enrollment in same class",
			ne:      assignment.NewEnrollment{StudentID: f.student.ID, ClassID: f.class.ID},
			wantErr: assignment.ErrAlreadyEnrolled,
		},
		{
			name:    "re-enrollment in another class",
			ne:      assignment.NewEnrollment{StudentID: f.student.ID, ClassID: f.other.ID},
			wantErr: assignment.ErrAlreadyEnrolled,
		},
		{
			name:    "teacher as student",
			ne:      assignment.NewEnrollment{StudentID: f.teacher.ID, ClassID: f.class.ID},
			wantErr: assignment.ErrInvalidReference,
		},
		{
			name:    "unknown student",
			ne:      assignment.NewEnrollment{StudentID: 999, ClassID: f.class.ID},
			wantErr: assignment.ErrInvalidReference,
		},
		{
			name:    "unknown class",
			ne:      assignment.NewEnrollment{StudentID: f.admin.ID, ClassID: 999},
			wantErr: assignment.ErrInvalidReference,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := f.svc.EnrollStudent(ctx, tt.ne); err != tt.wantErr {
				t.Errorf("EnrollStudent() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	// StudentClass resolves the enrollment; unenrolled students get ErrNotEnrolled
	summary, err := f.svc.StudentClass(ctx, f.student.ID)
	if err != nil {
		t.Fatalf("StudentClass() failed: %v", err)
	}
	assert.Equal(t, assignment.ClassSummary{ClassName: "Form 1", AcademicYear: "2025-2026"}, summary)

	if _, err = f.svc.StudentClass(ctx, 999); err != assignment.ErrNotEnrolled {
		t.Errorf("StudentClass() error = %v, want %v", err, assignment.ErrNotEnrolled)
	}
}

func TestService_ResolveTeacherAssignment(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	// no mapping yet
	if _, err := f.svc.ResolveTeacherAssignment(ctx, f.teacher.ID); err != assignment.ErrNoAssignment {
		t.Errorf("ResolveTeacherAssignment() error = %v, want %v", err, assignment.ErrNoAssignment)
	}

	first := testutil.CreateAssignment(t, f.repo, f.teacher.ID, f.class.ID, f.maths.ID)
	testutil.CreateAssignment(t, f.repo, f.teacher.ID, f.other.ID, f.bio.ID)

	// the lowest-id mapping wins, later ones are ignored
	resolved, err := f.svc.ResolveTeacherAssignment(ctx, f.teacher.ID)
	if err != nil {
		t.Fatalf("ResolveTeacherAssignment() failed: %v", err)
	}
	assert.Equal(t, assignment.ResolvedAssignment{
		ID:          first.ID,
		TeacherID:   f.teacher.ID,
		ClassID:     f.class.ID,
		SubjectID:   f.maths.ID,
		ClassName:   "Form 1",
		SubjectName: "Maths",
	}, resolved)
}

func TestService_RosterAndTaughtStudents(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	sam2 := testutil.CreateUser(t, f.users, "Student Sue", "sue@test.cd", "s3cr3tWord", user.RoleStudent, true)
	other := testutil.CreateUser(t, f.users, "Student Omar", "omar@test.cd", "s3cr3tWord", user.RoleStudent, true)

	testutil.CreateEnrollment(t, f.repo, f.student.ID, f.class.ID)
	testutil.CreateEnrollment(t, f.repo, sam2.ID, f.class.ID)
	testutil.CreateEnrollment(t, f.repo, other.ID, f.other.ID)

	roster, err := f.svc.Roster(ctx, f.class.ID)
	if err != nil {
		t.Fatalf("Roster() failed: %v", err)
	}
	assert.Equal(t, []assignment.RosterEntry{
		{StudentID: f.student.ID, Name: "Student Sam"},
		{StudentID: sam2.ID, Name: "Student Sue"},
	}, roster)

	// two mappings on the same class must not duplicate its students
	testutil.CreateAssignment(t, f.repo, f.teacher.ID, f.class.ID, f.maths.ID)
	history := testutil.CreateSubject(t, f.catalog, "History", f.class.ID, true)
	testutil.CreateAssignment(t, f.repo, f.teacher.ID, f.class.ID, history.ID)

	students, err := f.svc.TaughtStudents(ctx, f.teacher.ID)
	if err != nil {
		t.Fatalf("TaughtStudents() failed: %v", err)
	}
	assert.Equal(t, []assignment.TaughtStudent{
		{Name: "Student Sam", Email: "sam@test.cd", ClassName: "Form 1"},
		{Name: "Student Sue", Email: "sue@test.cd", ClassName: "Form 1"},
	}, students)
}
