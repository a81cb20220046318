package dummydb

import (
	"context"
	"sort"

	"github.com/trezcool/shule/core/assignment"
)

type assignmentRepository struct {
	db          *DB
	assignments *assignmentTable
	enrollments *enrollmentTable
}

var _ assignment.Repository = (*assignmentRepository)(nil) // interface compliance check

func NewAssignmentRepository(db *DB) assignment.Repository {
	return &assignmentRepository{db: db, assignments: db.assignment, enrollments: db.enrollment}
}

func (repo *assignmentRepository) CreateAssignment(ctx context.Context, ta assignment.TeacherAssignment) (assignment.TeacherAssignment, error) {
	repo.assignments.Lock()
	defer repo.assignments.Unlock()

	for _, a := range repo.assignments.table {
		if a.TeacherID == ta.TeacherID && a.ClassID == ta.ClassID && a.SubjectID == ta.SubjectID {
			return assignment.TeacherAssignment{}, assignment.ErrDuplicateAssignment
		}
	}

	repo.assignments.pk++
	ta.ID = repo.assignments.pk
	repo.assignments.table[ta.ID] = &ta
	return ta, nil
}

func (repo *assignmentRepository) QueryAssignments(ctx context.Context) ([]assignment.AssignmentInfo, error) {
	repo.assignments.RLock()
	defer repo.assignments.RUnlock()

	infos := make([]assignment.AssignmentInfo, 0, len(repo.assignments.table))
	for _, a := range repo.assignments.table {
		info := assignment.AssignmentInfo{ID: a.ID}
		if u, err := NewUserRepository(repo.db).GetUserByID(ctx, a.TeacherID); err == nil {
			info.TeacherName = u.Name
		}
		if c, ok := repo.db.class.table[a.ClassID]; ok {
			info.ClassName = c.Name
		}
		if s, ok := repo.db.subject.table[a.SubjectID]; ok {
			info.SubjectName = s.Name
		}
		infos = append(infos, info)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].ID < infos[j].ID })
	return infos, nil
}

func (repo *assignmentRepository) GetFirstTeacherAssignment(ctx context.Context, teacherID int) (assignment.ResolvedAssignment, error) {
	repo.assignments.RLock()
	defer repo.assignments.RUnlock()

	var first *assignment.TeacherAssignment
	for _, a := range repo.assignments.table {
		if a.TeacherID != teacherID {
			continue
		}
		if first == nil || a.ID < first.ID {
			first = a
		}
	}
	if first == nil {
		return assignment.ResolvedAssignment{}, assignment.ErrNoAssignment
	}

	resolved := assignment.ResolvedAssignment{
		ID:        first.ID,
		TeacherID: first.TeacherID,
		ClassID:   first.ClassID,
		SubjectID: first.SubjectID,
	}
	if c, ok := repo.db.class.table[first.ClassID]; ok {
		resolved.ClassName = c.Name
	}
	if s, ok := repo.db.subject.table[first.SubjectID]; ok {
		resolved.SubjectName = s.Name
	}
	return resolved, nil
}

func (repo *assignmentRepository) CreateEnrollment(ctx context.Context, se assignment.StudentEnrollment) (assignment.StudentEnrollment, error) {
	repo.enrollments.Lock()
	defer repo.enrollments.Unlock()

	for _, e := range repo.enrollments.table {
		if e.StudentID == se.StudentID {
			return assignment.StudentEnrollment{}, assignment.ErrAlreadyEnrolled
		}
	}

	repo.enrollments.pk++
	se.ID = repo.enrollments.pk
	repo.enrollments.table[se.ID] = &se
	return se, nil
}

func (repo *assignmentRepository) QueryRoster(ctx context.Context, classID int) ([]assignment.RosterEntry, error) {
	repo.enrollments.RLock()
	defer repo.enrollments.RUnlock()

	roster := make([]assignment.RosterEntry, 0, len(repo.enrollments.table))
	for _, e := range repo.enrollments.table {
		if e.ClassID != classID {
			continue
		}
		entry := assignment.RosterEntry{StudentID: e.StudentID}
		if u, err := NewUserRepository(repo.db).GetUserByID(ctx, e.StudentID); err == nil {
			entry.Name = u.Name
		}
		roster = append(roster, entry)
	}
	sort.Slice(roster, func(i, j int) bool { return roster[i].StudentID < roster[j].StudentID })
	return roster, nil
}

func (repo *assignmentRepository) GetStudentClass(ctx context.Context, studentID int) (assignment.ClassSummary, error) {
	repo.enrollments.RLock()
	defer repo.enrollments.RUnlock()

	for _, e := range repo.enrollments.table {
		if e.StudentID != studentID {
			continue
		}
		var summary assignment.ClassSummary
		if c, ok := repo.db.class.table[e.ClassID]; ok {
			summary.ClassName = c.Name
			summary.AcademicYear = c.AcademicYear
		}
		return summary, nil
	}
	return assignment.ClassSummary{}, assignment.ErrNotEnrolled
}

func (repo *assignmentRepository) QueryTaughtStudents(ctx context.Context, teacherID int) ([]assignment.TaughtStudent, error) {
	repo.assignments.RLock()
	defer repo.assignments.RUnlock()
	repo.enrollments.RLock()
	defer repo.enrollments.RUnlock()

	taughtClasses := make(map[int]bool)
	for _, a := range repo.assignments.table {
		if a.TeacherID == teacherID {
			taughtClasses[a.ClassID] = true
		}
	}

	seen := make(map[assignment.TaughtStudent]bool)
	students := make([]assignment.TaughtStudent, 0)
	for _, e := range repo.enrollments.table {
		if !taughtClasses[e.ClassID] {
			continue
		}
		var student assignment.TaughtStudent
		if u, err := NewUserRepository(repo.db).GetUserByID(ctx, e.StudentID); err == nil {
			student.Name = u.Name
			student.Email = u.Email
		}
		if c, ok := repo.db.class.table[e.ClassID]; ok {
			student.ClassName = c.Name
		}
		if seen[student] {
			continue
		}
		seen[student] = true
		students = append(students, student)
	}
	sort.Slice(students, func(i, j int) bool { return students[i].Name < students[j].Name })
	return students, nil
}
