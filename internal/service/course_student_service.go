package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/stemsi/course-enrollment/internal/model"
	"github.com/stemsi/course-enrollment/internal/repository"
)

// CourseStudentService manages relationship rows directly, without consulting
// the estudiantes service. Store errors ErrDuplicateEnrollment and
// ErrCourseMissing are passed through unchanged.
type CourseStudentService struct {
	enrollments CourseStudentStore
	log         zerolog.Logger
}

func NewCourseStudentService(enrollments CourseStudentStore, log zerolog.Logger) *CourseStudentService {
	return &CourseStudentService{
		enrollments: enrollments,
		log:         log.With().Str("component", "course_student_service").Logger(),
	}
}

func (s *CourseStudentService) List(ctx context.Context) ([]model.CourseStudent, error) {
	return s.enrollments.List(ctx)
}

func (s *CourseStudentService) GetByID(ctx context.Context, id int64) (*model.CourseStudent, error) {
	cs, err := s.enrollments.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrEnrollmentNotFound
	}
	return cs, err
}

func (s *CourseStudentService) Create(ctx context.Context, cs *model.CourseStudent) error {
	return s.enrollments.Create(ctx, cs)
}

func (s *CourseStudentService) Update(ctx context.Context, cs *model.CourseStudent) error {
	err := s.enrollments.Update(ctx, cs)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrEnrollmentNotFound
	}
	return err
}

func (s *CourseStudentService) Delete(ctx context.Context, id int64) error {
	err := s.enrollments.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrEnrollmentNotFound
	}
	return err
}
