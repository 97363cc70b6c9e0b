package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/stemsi/course-enrollment/internal/model"
	"github.com/stemsi/course-enrollment/internal/repository"
)

// StudentService owns student records in the estudiantes service.
// repository.ErrDuplicateEmail is passed through unchanged.
type StudentService struct {
	students StudentStore
	log      zerolog.Logger
}

func NewStudentService(students StudentStore, log zerolog.Logger) *StudentService {
	return &StudentService{
		students: students,
		log:      log.With().Str("component", "student_service").Logger(),
	}
}

func (s *StudentService) List(ctx context.Context) ([]model.Student, error) {
	return s.students.List(ctx)
}

func (s *StudentService) GetByID(ctx context.Context, id int64) (*model.Student, error) {
	st, err := s.students.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrStudentNotFound
	}
	return st, err
}

func (s *StudentService) Create(ctx context.Context, st *model.Student) error {
	if err := s.students.Create(ctx, st); err != nil {
		return err
	}
	s.log.Info().Int64("student_id", st.ID).Msg("student created")
	return nil
}

// Update rewrites every field except created_at, which is refreshed from the store.
func (s *StudentService) Update(ctx context.Context, st *model.Student) error {
	err := s.students.Update(ctx, st)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrStudentNotFound
	}
	return err
}

// Delete removes the student. Relationship rows in the cursos service that
// point at it are left in place.
func (s *StudentService) Delete(ctx context.Context, id int64) error {
	if err := s.students.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrStudentNotFound
		}
		return err
	}
	s.log.Info().Int64("student_id", id).Msg("student deleted")
	return nil
}
