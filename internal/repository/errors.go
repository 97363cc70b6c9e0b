package repository

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound is returned by every lookup, update and delete that matched no row.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateEnrollment is returned when a (student_id, course_id) pair already exists.
	ErrDuplicateEnrollment = errors.New("student is already enrolled in this course")
	// ErrCourseMissing is returned when a relationship row points to an unknown course.
	ErrCourseMissing = errors.New("referenced course does not exist")
	// ErrDuplicateEmail is returned when a student email is already taken.
	ErrDuplicateEmail = errors.New("student with this email already exists")
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// notFound maps pgx.ErrNoRows to ErrNotFound and leaves every other error alone.
func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
