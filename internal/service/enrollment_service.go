package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/stemsi/course-enrollment/internal/client"
	"github.com/stemsi/course-enrollment/internal/model"
	"github.com/stemsi/course-enrollment/internal/repository"
)

// LookupOutcome tags the result of resolving a student against the estudiantes service.
type LookupOutcome int

const (
	StudentFound LookupOutcome = iota
	StudentNotFound
	StudentUpstreamError
)

func (o LookupOutcome) String() string {
	switch o {
	case StudentFound:
		return "found"
	case StudentNotFound:
		return "not_found"
	case StudentUpstreamError:
		return "upstream_error"
	default:
		return "unknown"
	}
}

// StudentLookup is the tagged result of LookupStudent. Student is set only
// for StudentFound, Err only for StudentUpstreamError.
type StudentLookup struct {
	Outcome LookupOutcome
	Student *model.Student
	Err     error
}

// EnrollmentService adds and removes students from a course's enrollment set.
type EnrollmentService struct {
	courses     CourseStore
	enrollments CourseStudentStore
	students    StudentFetcher
	log         zerolog.Logger
}

// NewEnrollmentService creates a new EnrollmentService.
func NewEnrollmentService(
	courses CourseStore,
	enrollments CourseStudentStore,
	students StudentFetcher,
	log zerolog.Logger,
) *EnrollmentService {
	return &EnrollmentService{
		courses:     courses,
		enrollments: enrollments,
		students:    students,
		log:         log.With().Str("component", "enrollment_service").Logger(),
	}
}

// LookupStudent resolves a student through the estudiantes service.
// An empty or undecodable payload counts as StudentNotFound; any failed call
// counts as StudentUpstreamError with an error matching client.ErrUpstreamCallFailed.
func (s *EnrollmentService) LookupStudent(ctx context.Context, studentID int64) StudentLookup {
	student, err := s.students.FetchStudent(ctx, studentID)
	switch {
	case err != nil:
		var upErr *client.UpstreamError
		if !errors.As(err, &upErr) {
			err = &client.UpstreamError{Message: err.Error(), Cause: err}
		}
		return StudentLookup{Outcome: StudentUpstreamError, Err: err}
	case student == nil:
		return StudentLookup{Outcome: StudentNotFound}
	default:
		return StudentLookup{Outcome: StudentFound, Student: student}
	}
}

// AddStudent enrolls the referenced student in the course and returns the
// student record. Enrolling an already enrolled student succeeds without
// writing anything.
//
// Errors: ErrCourseNotFound (checked before any remote call), ErrStudentNotFound,
// or an error matching client.ErrUpstreamCallFailed.
func (s *EnrollmentService) AddStudent(ctx context.Context, courseID int64, ref model.StudentReference) (*model.Student, error) {
	course, err := s.loadCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	lookup := s.LookupStudent(ctx, ref.ID)
	switch lookup.Outcome {
	case StudentUpstreamError:
		s.log.Warn().Err(lookup.Err).
			Int64("course_id", courseID).
			Int64("student_id", ref.ID).
			Msg("student lookup failed while enrolling")
		return nil, lookup.Err
	case StudentNotFound:
		return nil, ErrStudentNotFound
	}

	student := lookup.Student
	if _, ok := course.FindEnrollment(student.ID); ok {
		s.log.Debug().
			Int64("course_id", course.ID).
			Int64("student_id", student.ID).
			Msg("student already enrolled")
		return student, nil
	}

	course.AddEnrollment(model.CourseStudent{StudentID: student.ID, CourseID: course.ID})
	if err := s.courses.Save(ctx, course); err != nil {
		return nil, fmt.Errorf("save course %d: %w", course.ID, err)
	}

	s.log.Info().
		Int64("course_id", course.ID).
		Int64("student_id", student.ID).
		Msg("student enrolled")
	return student, nil
}

// RemoveStudent deletes the enrollment row linking the referenced student to
// the course. It reports false when the course, the student or the row does
// not exist; the only error outcomes are upstream failures and store failures.
func (s *EnrollmentService) RemoveStudent(ctx context.Context, courseID int64, ref model.StudentReference) (bool, error) {
	course, err := s.loadCourse(ctx, courseID)
	if errors.Is(err, ErrCourseNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	lookup := s.LookupStudent(ctx, ref.ID)
	switch lookup.Outcome {
	case StudentUpstreamError:
		s.log.Warn().Err(lookup.Err).
			Int64("course_id", courseID).
			Int64("student_id", ref.ID).
			Msg("student lookup failed while unenrolling")
		return false, lookup.Err
	case StudentNotFound:
		return false, nil
	}

	cs, ok := course.FindEnrollment(lookup.Student.ID)
	if !ok {
		return false, nil
	}

	if err := s.enrollments.Delete(ctx, cs.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Deleted by someone else between the read and now.
			return false, nil
		}
		return false, fmt.Errorf("delete enrollment %d: %w", cs.ID, err)
	}
	course.RemoveEnrollment(cs.ID)

	s.log.Info().
		Int64("course_id", course.ID).
		Int64("student_id", cs.StudentID).
		Msg("student unenrolled")
	return true, nil
}

func (s *EnrollmentService) loadCourse(ctx context.Context, id int64) (*model.Course, error) {
	course, err := s.courses.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrCourseNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load course %d: %w", id, err)
	}
	return course, nil
}
