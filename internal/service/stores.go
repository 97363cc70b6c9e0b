package service

import (
	"context"

	"github.com/stemsi/course-enrollment/internal/model"
)

// CourseStore is implemented by repository.CourseRepository.
type CourseStore interface {
	List(ctx context.Context, f model.CourseFilter) ([]model.Course, error)
	GetByID(ctx context.Context, id int64) (*model.Course, error)
	Create(ctx context.Context, c *model.Course) error
	Update(ctx context.Context, c *model.Course) error
	Delete(ctx context.Context, id int64) error
	Save(ctx context.Context, c *model.Course) error
}

// CourseStudentStore is implemented by repository.CourseStudentRepository.
type CourseStudentStore interface {
	List(ctx context.Context) ([]model.CourseStudent, error)
	GetByID(ctx context.Context, id int64) (*model.CourseStudent, error)
	Create(ctx context.Context, cs *model.CourseStudent) error
	Update(ctx context.Context, cs *model.CourseStudent) error
	Delete(ctx context.Context, id int64) error
}

// StudentStore is implemented by repository.StudentRepository.
type StudentStore interface {
	List(ctx context.Context) ([]model.Student, error)
	GetByID(ctx context.Context, id int64) (*model.Student, error)
	Create(ctx context.Context, s *model.Student) error
	Update(ctx context.Context, s *model.Student) error
	Delete(ctx context.Context, id int64) error
}

// StudentFetcher is implemented by client.StudentClient.
type StudentFetcher interface {
	FetchStudent(ctx context.Context, id int64) (*model.Student, error)
}
