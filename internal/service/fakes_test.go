package service

import (
	"context"
	"sync"

	"github.com/stemsi/course-enrollment/internal/model"
	"github.com/stemsi/course-enrollment/internal/repository"
)

// memCourses is an in-memory CourseStore. Its enrollment rows are shared with
// memEnrollments so both stores see the same table.
type memCourses struct {
	mu      sync.Mutex
	courses map[int64]*model.Course
	nextID  int64
	nextCS  int64
	saves   int
	saveErr error
}

func newMemCourses(courses ...model.Course) *memCourses {
	m := &memCourses{courses: map[int64]*model.Course{}, nextID: 100, nextCS: 1000}
	for _, c := range courses {
		c := c
		if c.Enrollments == nil {
			c.Enrollments = []model.CourseStudent{}
		}
		m.courses[c.ID] = &c
	}
	return m
}

func cloneCourse(c *model.Course) *model.Course {
	out := *c
	out.Enrollments = append([]model.CourseStudent{}, c.Enrollments...)
	return &out
}

func (m *memCourses) List(_ context.Context, _ model.CourseFilter) ([]model.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.Course{}
	for _, c := range m.courses {
		out = append(out, *cloneCourse(c))
	}
	return out, nil
}

func (m *memCourses) GetByID(_ context.Context, id int64) (*model.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.courses[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneCourse(c), nil
}

func (m *memCourses) Create(_ context.Context, c *model.Course) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	c.ID = m.nextID
	c.Enrollments = []model.CourseStudent{}
	m.courses[c.ID] = cloneCourse(c)
	return nil
}

func (m *memCourses) Update(_ context.Context, c *model.Course) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.courses[c.ID]
	if !ok {
		return repository.ErrNotFound
	}
	stored.Name, stored.Description, stored.Credits = c.Name, c.Description, c.Credits
	c.CreatedAt = stored.CreatedAt
	return nil
}

func (m *memCourses) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.courses[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.courses, id)
	return nil
}

// Save mirrors CourseRepository.Save: only rows without an id are inserted,
// and an existing (student, course) pair yields the existing id.
func (m *memCourses) Save(_ context.Context, c *model.Course) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	stored, ok := m.courses[c.ID]
	if !ok {
		return repository.ErrNotFound
	}
	for i := range c.Enrollments {
		cs := &c.Enrollments[i]
		if cs.ID != 0 {
			continue
		}
		cs.CourseID = c.ID
		if existing, found := stored.FindEnrollment(cs.StudentID); found {
			cs.ID = existing.ID
			continue
		}
		m.nextCS++
		cs.ID = m.nextCS
		stored.Enrollments = append(stored.Enrollments, *cs)
	}
	return nil
}

func (m *memCourses) rows(courseID int64) []model.CourseStudent {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.courses[courseID]
	if !ok {
		return nil
	}
	return append([]model.CourseStudent{}, c.Enrollments...)
}

// memEnrollments is a CourseStudentStore over the rows held by memCourses.
type memEnrollments struct {
	courses *memCourses
	deletes []int64
}

func (e *memEnrollments) List(_ context.Context) ([]model.CourseStudent, error) {
	e.courses.mu.Lock()
	defer e.courses.mu.Unlock()
	out := []model.CourseStudent{}
	for _, c := range e.courses.courses {
		out = append(out, c.Enrollments...)
	}
	return out, nil
}

func (e *memEnrollments) GetByID(_ context.Context, id int64) (*model.CourseStudent, error) {
	e.courses.mu.Lock()
	defer e.courses.mu.Unlock()
	for _, c := range e.courses.courses {
		for _, cs := range c.Enrollments {
			if cs.ID == id {
				cs := cs
				return &cs, nil
			}
		}
	}
	return nil, repository.ErrNotFound
}

func (e *memEnrollments) Create(_ context.Context, cs *model.CourseStudent) error {
	e.courses.mu.Lock()
	defer e.courses.mu.Unlock()
	c, ok := e.courses.courses[cs.CourseID]
	if !ok {
		return repository.ErrCourseMissing
	}
	if _, dup := c.FindEnrollment(cs.StudentID); dup {
		return repository.ErrDuplicateEnrollment
	}
	e.courses.nextCS++
	cs.ID = e.courses.nextCS
	c.Enrollments = append(c.Enrollments, *cs)
	return nil
}

func (e *memEnrollments) Update(_ context.Context, cs *model.CourseStudent) error {
	e.courses.mu.Lock()
	defer e.courses.mu.Unlock()
	target, ok := e.courses.courses[cs.CourseID]
	if !ok {
		return repository.ErrCourseMissing
	}
	for _, c := range e.courses.courses {
		for _, existing := range c.Enrollments {
			if existing.ID == cs.ID {
				c.RemoveEnrollment(cs.ID)
				target.Enrollments = append(target.Enrollments, *cs)
				return nil
			}
		}
	}
	return repository.ErrNotFound
}

func (e *memEnrollments) Delete(_ context.Context, id int64) error {
	e.courses.mu.Lock()
	defer e.courses.mu.Unlock()
	e.deletes = append(e.deletes, id)
	for _, c := range e.courses.courses {
		for _, cs := range c.Enrollments {
			if cs.ID == id {
				c.RemoveEnrollment(id)
				return nil
			}
		}
	}
	return repository.ErrNotFound
}

// stubStudents is a StudentFetcher that counts calls.
type stubStudents struct {
	mu       sync.Mutex
	students map[int64]*model.Student
	err      error
	calls    int
}

func (s *stubStudents) FetchStudent(_ context.Context, id int64) (*model.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	st, ok := s.students[id]
	if !ok {
		return nil, nil
	}
	out := *st
	return &out, nil
}

func (s *stubStudents) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}
