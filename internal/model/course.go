package model

import "time"

// Course is an offered unit of study. It owns its enrollment rows.
type Course struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Credits     int             `json:"credits"`
	CreatedAt   time.Time       `json:"created_at"`
	Enrollments []CourseStudent `json:"enrollments"`
}

// AddEnrollment appends a relationship row to the course's collection.
// The row is persisted by the next CourseRepository.Save.
func (c *Course) AddEnrollment(cs CourseStudent) {
	c.Enrollments = append(c.Enrollments, cs)
}

// FindEnrollment returns the row linking studentID to this course, if any.
func (c *Course) FindEnrollment(studentID int64) (CourseStudent, bool) {
	for _, cs := range c.Enrollments {
		if cs.StudentID == studentID && cs.CourseID == c.ID {
			return cs, true
		}
	}
	return CourseStudent{}, false
}

// RemoveEnrollment drops the row with the given id from the in-memory collection.
func (c *Course) RemoveEnrollment(id int64) {
	kept := c.Enrollments[:0]
	for _, cs := range c.Enrollments {
		if cs.ID != id {
			kept = append(kept, cs)
		}
	}
	c.Enrollments = kept
}

// CourseFilter narrows a course listing. Zero values mean "no filter".
type CourseFilter struct {
	Credits      *int
	CreatedAfter *time.Time
	Description  string
}

// CourseQuery is the query string accepted by the course listing.
type CourseQuery struct {
	Credits      *int   `form:"credits" binding:"omitempty,min=0"`
	CreatedAfter string `form:"created_after" binding:"omitempty,datetime=2006-01-02"`
	Description  string `form:"description" binding:"omitempty,max=255"`
}

// Filter converts the query into a CourseFilter. CreatedAfter must already
// have passed validation.
func (q CourseQuery) Filter() (CourseFilter, error) {
	f := CourseFilter{Credits: q.Credits, Description: q.Description}
	if q.CreatedAfter != "" {
		t, err := time.Parse(time.DateOnly, q.CreatedAfter)
		if err != nil {
			return CourseFilter{}, err
		}
		f.CreatedAfter = &t
	}
	return f, nil
}

// CreateCourseRequest is the payload for creating a course.
type CreateCourseRequest struct {
	Name        string     `json:"name" binding:"required,min=1,max=255"`
	Description string     `json:"description" binding:"required,min=1"`
	Credits     *int       `json:"credits" binding:"required,min=0,max=100"`
	CreatedAt   *time.Time `json:"created_at"`
}

// UpdateCourseRequest is the payload for updating a course.
// created_at and enrollments are never touched by an update.
type UpdateCourseRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=255"`
	Description string `json:"description" binding:"required,min=1"`
	Credits     *int   `json:"credits" binding:"required,min=0,max=100"`
}
