package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/trezcool/shule/core/academic"
	"github.com/trezcool/shule/core/assignment"
	"github.com/trezcool/shule/core/user"
)

func CreateUser(
	t *testing.T,
	repo user.Repository,
	name, email, pwd, role string,
	isActive bool,
	createdAt ...time.Time,
) user.User {
	t.Helper()

	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	usr := user.User{
		Name:      name,
		Email:     email,
		Role:      role,
		IsActive:  isActive,
		CreatedAt: tstamp,
		UpdatedAt: tstamp,
	}
	if pwd != "" {
		if err := usr.SetPassword(pwd); err != nil {
			t.Fatalf("CreateUser() failed: %v", err)
		}
	}
	usr, err := repo.CreateUser(context.Background(), usr)
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	return usr
}

func CreateClass(
	t *testing.T,
	repo academic.Repository,
	name, year string,
	isActive bool,
) academic.Class {
	t.Helper()

	now := time.Now().UTC()
	class, err := repo.CreateClass(context.Background(), academic.Class{
		Name:         name,
		AcademicYear: year,
		IsActive:     isActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		t.Fatalf("CreateClass() failed: %v", err)
	}
	return class
}

func CreateSubject(
	t *testing.T,
	repo academic.Repository,
	name string,
	classID int,
	isActive bool,
) academic.Subject {
	t.Helper()

	now := time.Now().UTC()
	subject, err := repo.CreateSubject(context.Background(), academic.Subject{
		Name:      name,
		ClassID:   classID,
		IsActive:  isActive,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("CreateSubject() failed: %v", err)
	}
	return subject
}

func CreateAssignment(
	t *testing.T,
	repo assignment.Repository,
	teacherID, classID, subjectID int,
) assignment.TeacherAssignment {
	t.Helper()

	ta, err := repo.CreateAssignment(context.Background(), assignment.TeacherAssignment{
		TeacherID: teacherID,
		ClassID:   classID,
		SubjectID: subjectID,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("CreateAssignment() failed: %v", err)
	}
	return ta
}

func CreateEnrollment(
	t *testing.T,
	repo assignment.Repository,
	studentID, classID int,
) assignment.StudentEnrollment {
	t.Helper()

	se, err := repo.CreateEnrollment(context.Background(), assignment.StudentEnrollment{
		StudentID: studentID,
		ClassID:   classID,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("CreateEnrollment() failed: %v", err)
	}
	return se
}
