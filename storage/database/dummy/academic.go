package dummydb

import (
	"context"
	"sort"

	"github.com/trezcool/shule/core/academic"
)

type academicRepository struct {
	classes  *classTable
	subjects *subjectTable
}

var _ academic.Repository = (*academicRepository)(nil) // interface compliance check

func NewAcademicRepository(db *DB) academic.Repository {
	return &academicRepository{classes: db.class, subjects: db.subject}
}

func (repo *academicRepository) CreateClass(ctx context.Context, class academic.Class) (academic.Class, error) {
	repo.classes.Lock()
	defer repo.classes.Unlock()

	for _, c := range repo.classes.table {
		if c.IsActive && c.Name == class.Name {
			return academic.Class{}, academic.ErrClassExists
		}
	}

	repo.classes.pk++
	class.ID = repo.classes.pk
	repo.classes.table[class.ID] = &class
	return class, nil
}

func (repo *academicRepository) QueryActiveClasses(ctx context.Context) ([]academic.Class, error) {
	repo.classes.RLock()
	defer repo.classes.RUnlock()

	classes := make([]academic.Class, 0, len(repo.classes.table))
	for _, c := range repo.classes.table {
		if c.IsActive {
			classes = append(classes, *c)
		}
	}
	sort.Slice(classes, func(i, j int) bool { return classes[i].ID < classes[j].ID })
	return classes, nil
}

func (repo *academicRepository) GetClassByID(ctx context.Context, id int) (academic.Class, error) {
	repo.classes.RLock()
	defer repo.classes.RUnlock()

	if c, ok := repo.classes.table[id]; ok {
		return *c, nil
	}
	return academic.Class{}, academic.ErrClassNotFound
}

func (repo *academicRepository) SetClassActive(ctx context.Context, id int, active bool) (academic.Class, error) {
	repo.classes.Lock()
	defer repo.classes.Unlock()

	c, ok := repo.classes.table[id]
	if !ok {
		return academic.Class{}, academic.ErrClassNotFound
	}
	c.IsActive = active
	return *c, nil
}

func (repo *academicRepository) CreateSubject(ctx context.Context, subject academic.Subject) (academic.Subject, error) {
	repo.subjects.Lock()
	defer repo.subjects.Unlock()

	for _, s := range repo.subjects.table {
		if s.IsActive && s.Name == subject.Name && s.ClassID == subject.ClassID {
			return academic.Subject{}, academic.ErrSubjectExists
		}
	}

	repo.subjects.pk++
	subject.ID = repo.subjects.pk
	repo.subjects.table[subject.ID] = &subject
	return subject, nil
}

func (repo *academicRepository) QueryActiveSubjects(ctx context.Context, classID ...int) ([]academic.SubjectInfo, error) {
	repo.subjects.RLock()
	defer repo.subjects.RUnlock()
	repo.classes.RLock()
	defer repo.classes.RUnlock()

	infos := make([]academic.SubjectInfo, 0, len(repo.subjects.table))
	for _, s := range repo.subjects.table {
		if !s.IsActive {
			continue
		}
		if len(classID) > 0 && s.ClassID != classID[0] {
			continue
		}
		info := academic.SubjectInfo{ID: s.ID, Name: s.Name, ClassID: s.ClassID}
		if c, ok := repo.classes.table[s.ClassID]; ok {
			info.ClassName = c.Name
		}
		infos = append(infos, info)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].ID < infos[j].ID })
	return infos, nil
}

func (repo *academicRepository) GetSubjectByID(ctx context.Context, id int) (academic.Subject, error) {
	repo.subjects.RLock()
	defer repo.subjects.RUnlock()

	if s, ok := repo.subjects.table[id]; ok {
		return *s, nil
	}
	return academic.Subject{}, academic.ErrSubjectNotFound
}

func (repo *academicRepository) SetSubjectActive(ctx context.Context, id int, active bool) (academic.Subject, error) {
	repo.subjects.Lock()
	defer repo.subjects.Unlock()

	s, ok := repo.subjects.table[id]
	if !ok {
		return academic.Subject{}, academic.ErrSubjectNotFound
	}
	s.IsActive = active
	return *s, nil
}
