package academic_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/shule/core/academic"
	dummydb "github.com/trezcool/shule/storage/database/dummy"
	testutil "github.com/trezcool/shule/tests"
)

func setup(t *testing.T) (*academic.Service, academic.Repository) {
	t.Helper()

	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("dummydb.Open() failed, %v", err)
	}
	repo := dummydb.NewAcademicRepository(db)
	return academic.NewService(repo), repo
}

func TestService_AddClass(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	class, err := svc.AddClass(ctx, academic.NewClass{Name: "Form 1", AcademicYear: "2025-2026"})
	if err != nil {
		t.Fatalf("AddClass() failed: %v", err)
	}
	if !class.IsActive {
		t.Error("AddClass() new classes must start active")
	}

	// an active class already holds the name
	if _, err = svc.AddClass(ctx, academic.NewClass{Name: "Form 1", AcademicYear: "2026-2027"}); err != academic.ErrClassExists {
		t.Errorf("AddClass() error = %v, want %v", err, academic.ErrClassExists)
	}

	// a deactivated class frees its name
	if _, err = svc.DeactivateClass(ctx, class.ID); err != nil {
		t.Fatalf("DeactivateClass() failed: %v", err)
	}
	if _, err = svc.AddClass(ctx, academic.NewClass{Name: "Form 1", AcademicYear: "2026-2027"}); err != nil {
		t.Errorf("AddClass() after deactivation failed: %v", err)
	}
}

func TestService_AddSubject(t *testing.T) {
	svc, repo := setup(t)
	ctx := context.Background()

	class := testutil.CreateClass(t, repo, "Form 1", "2025-2026", true)
	other := testutil.CreateClass(t, repo, "Form 2", "2025-2026", true)
	dormant := testutil.CreateClass(t, repo, "Form 3", "2025-2026", false)

	subject, err := svc.AddSubject(ctx, academic.NewSubject{Name: "Maths", ClassID: class.ID})
	if err != nil {
		t.Fatalf("AddSubject() failed: %v", err)
	}
	if !subject.IsActive {
		t.Error("AddSubject() new subjects must start active")
	}

	tests := []struct {
		name    string
		ns      academic.NewSubject
		wantErr error
	}{
		{name: "duplicate in same class", ns: academic.NewSubject{Name: "Maths", ClassID: class.ID}, wantErr: academic.ErrSubjectExists},
		{name: "same name in another class", ns: academic.NewSubject{Name: "Maths", ClassID: other.ID}},
		{name: "unknown class", ns: academic.NewSubject{Name: "Maths", ClassID: 999}, wantErr: academic.ErrClassNotFound},
		{name: "deactivated class", ns: academic.NewSubject{Name: "Maths", ClassID: dormant.ID}, wantErr: academic.ErrClassNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.AddSubject(ctx, tt.ns); err != tt.wantErr {
				t.Errorf("AddSubject() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	// a deactivated subject frees its (name, class) pair
	if _, err = svc.DeactivateSubject(ctx, subject.ID); err != nil {
		t.Fatalf("DeactivateSubject() failed: %v", err)
	}
	if _, err = svc.AddSubject(ctx, academic.NewSubject{Name: "Maths", ClassID: class.ID}); err != nil {
		t.Errorf("AddSubject() after deactivation failed: %v", err)
	}
}

func TestService_QueryActive(t *testing.T) {
	svc, repo := setup(t)
	ctx := context.Background()

	form1 := testutil.CreateClass(t, repo, "Form 1", "2025-2026", true)
	form2 := testutil.CreateClass(t, repo, "Form 2", "2025-2026", true)
	testutil.CreateClass(t, repo, "Form 3", "2025-2026", false)

	maths := testutil.CreateSubject(t, repo, "Maths", form1.ID, true)
	bio := testutil.CreateSubject(t, repo, "Biology", form2.ID, true)
	testutil.CreateSubject(t, repo, "History", form1.ID, false)

	classes, err := svc.QueryActiveClasses(ctx)
	if err != nil {
		t.Fatalf("QueryActiveClasses() failed: %v", err)
	}
	assert.Equal(t, []academic.Class{form1, form2}, classes)

	subjects, err := svc.QueryActiveSubjects(ctx)
	if err != nil {
		t.Fatalf("QueryActiveSubjects() failed: %v", err)
	}
	assert.Equal(t, []academic.SubjectInfo{
		{ID: maths.ID, Name: "Maths", ClassID: form1.ID, ClassName: "Form 1"},
		{ID: bio.ID, Name: "Biology", ClassID: form2.ID, ClassName: "Form 2"},
	}, subjects)

	// scoped to one class
	subjects, err = svc.QueryActiveSubjects(ctx, form1.ID)
	if err != nil {
		t.Fatalf("QueryActiveSubjects() failed: %v", err)
	}
	assert.Equal(t, []academic.SubjectInfo{
		{ID: maths.ID, Name: "Maths", ClassID: form1.ID, ClassName: "Form 1"},
	}, subjects)
}
