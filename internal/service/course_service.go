package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/stemsi/course-enrollment/internal/model"
	"github.com/stemsi/course-enrollment/internal/repository"
)

type CourseService struct {
	courses CourseStore
	log     zerolog.Logger
}

func NewCourseService(courses CourseStore, log zerolog.Logger) *CourseService {
	return &CourseService{
		courses: courses,
		log:     log.With().Str("component", "course_service").Logger(),
	}
}

// List returns the courses matching f. An empty filter lists everything.
func (s *CourseService) List(ctx context.Context, f model.CourseFilter) ([]model.Course, error) {
	return s.courses.List(ctx, f)
}

func (s *CourseService) GetByID(ctx context.Context, id int64) (*model.Course, error) {
	c, err := s.courses.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrCourseNotFound
	}
	return c, err
}

func (s *CourseService) Create(ctx context.Context, c *model.Course) error {
	if err := s.courses.Create(ctx, c); err != nil {
		return err
	}
	c.Enrollments = []model.CourseStudent{}
	s.log.Info().Int64("course_id", c.ID).Str("name", c.Name).Msg("course created")
	return nil
}

// Update rewrites name, description and credits, then returns the stored
// course with its enrollments.
func (s *CourseService) Update(ctx context.Context, c *model.Course) (*model.Course, error) {
	if err := s.courses.Update(ctx, c); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}
	return s.GetByID(ctx, c.ID)
}

// Delete removes the course together with its enrollment rows.
func (s *CourseService) Delete(ctx context.Context, id int64) error {
	if err := s.courses.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrCourseNotFound
		}
		return err
	}
	s.log.Info().Int64("course_id", id).Msg("course deleted")
	return nil
}
