package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/course-enrollment/internal/model"
	"github.com/stemsi/course-enrollment/internal/repository"
	"github.com/stemsi/course-enrollment/internal/validator"
)

func init() {
	gin.SetMode(gin.TestMode)
	validator.Setup()
}

func do(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	r.ServeHTTP(w, req)
	return w
}

// courseTable backs both the course and the relationship stores.
type courseTable struct {
	courses map[int64]*model.Course
	nextCS  int64
	err     error
}

func newCourseTable(courses ...model.Course) *courseTable {
	t := &courseTable{courses: map[int64]*model.Course{}, nextCS: 100}
	for _, c := range courses {
		c := c
		c.Enrollments = append([]model.CourseStudent{}, c.Enrollments...)
		t.courses[c.ID] = &c
	}
	return t
}

func (t *courseTable) List(_ context.Context, f model.CourseFilter) ([]model.Course, error) {
	if t.err != nil {
		return nil, t.err
	}
	var out []model.Course
	for _, c := range t.courses {
		if f.Credits != nil && c.Credits != *f.Credits {
			continue
		}
		out = append(out, *c)
	}
	return out, nil
}

func (t *courseTable) GetByID(_ context.Context, id int64) (*model.Course, error) {
	if t.err != nil {
		return nil, t.err
	}
	c, ok := t.courses[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := *c
	out.Enrollments = append([]model.CourseStudent{}, c.Enrollments...)
	return &out, nil
}

func (t *courseTable) Create(_ context.Context, c *model.Course) error {
	c.ID = int64(len(t.courses) + 1)
	t.courses[c.ID] = c
	return nil
}

func (t *courseTable) Update(_ context.Context, c *model.Course) error {
	stored, ok := t.courses[c.ID]
	if !ok {
		return repository.ErrNotFound
	}
	stored.Name, stored.Description, stored.Credits = c.Name, c.Description, c.Credits
	return nil
}

func (t *courseTable) Delete(_ context.Context, id int64) error {
	if _, ok := t.courses[id]; !ok {
		return repository.ErrNotFound
	}
	delete(t.courses, id)
	return nil
}

func (t *courseTable) Save(_ context.Context, c *model.Course) error {
	if t.err != nil {
		return t.err
	}
	for i := range c.Enrollments {
		if c.Enrollments[i].ID == 0 {
			t.nextCS++
			c.Enrollments[i].ID = t.nextCS
		}
	}
	t.courses[c.ID] = c
	return nil
}

type joinTable struct{ t *courseTable }

func (j joinTable) List(_ context.Context) ([]model.CourseStudent, error) {
	var out []model.CourseStudent
	for _, c := range j.t.courses {
		out = append(out, c.Enrollments...)
	}
	return out, nil
}

func (j joinTable) GetByID(_ context.Context, id int64) (*model.CourseStudent, error) {
	for _, c := range j.t.courses {
		for _, cs := range c.Enrollments {
			if cs.ID == id {
				return &cs, nil
			}
		}
	}
	return nil, repository.ErrNotFound
}

func (j joinTable) Create(_ context.Context, cs *model.CourseStudent) error {
	c, ok := j.t.courses[cs.CourseID]
	if !ok {
		return repository.ErrCourseMissing
	}
	if _, dup := c.FindEnrollment(cs.StudentID); dup {
		return repository.ErrDuplicateEnrollment
	}
	j.t.nextCS++
	cs.ID = j.t.nextCS
	c.AddEnrollment(*cs)
	return nil
}

func (j joinTable) Update(ctx context.Context, cs *model.CourseStudent) error {
	if _, err := j.GetByID(ctx, cs.ID); err != nil {
		return err
	}
	if err := j.Delete(ctx, cs.ID); err != nil {
		return err
	}
	c, ok := j.t.courses[cs.CourseID]
	if !ok {
		return repository.ErrCourseMissing
	}
	c.AddEnrollment(*cs)
	return nil
}

func (j joinTable) Delete(_ context.Context, id int64) error {
	for _, c := range j.t.courses {
		for _, cs := range c.Enrollments {
			if cs.ID == id {
				c.RemoveEnrollment(id)
				return nil
			}
		}
	}
	return repository.ErrNotFound
}

type studentTable struct {
	students map[int64]model.Student
}

func (s *studentTable) List(_ context.Context) ([]model.Student, error) {
	var out []model.Student
	for _, st := range s.students {
		out = append(out, st)
	}
	return out, nil
}

func (s *studentTable) GetByID(_ context.Context, id int64) (*model.Student, error) {
	st, ok := s.students[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &st, nil
}

func (s *studentTable) Create(_ context.Context, st *model.Student) error {
	for _, existing := range s.students {
		if existing.Email == st.Email {
			return repository.ErrDuplicateEmail
		}
	}
	st.ID = int64(len(s.students) + 1)
	s.students[st.ID] = *st
	return nil
}

func (s *studentTable) Update(_ context.Context, st *model.Student) error {
	if _, ok := s.students[st.ID]; !ok {
		return repository.ErrNotFound
	}
	s.students[st.ID] = *st
	return nil
}

func (s *studentTable) Delete(_ context.Context, id int64) error {
	if _, ok := s.students[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.students, id)
	return nil
}

type stubFetcher struct {
	students map[int64]*model.Student
	err      error
	calls    int
}

func (f *stubFetcher) FetchStudent(_ context.Context, id int64) (*model.Student, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.students[id], nil
}
