package repository

import (
	"context"
	"time"

	"github.com/stemsi/course-enrollment/internal/database"
	"github.com/stemsi/course-enrollment/internal/model"
)

const studentColumns = `id, name, surname, email, phone, birth_date, created_at`

// StudentRepository handles student data access for the estudiantes service.
type StudentRepository struct {
	db database.DB
}

// NewStudentRepository creates a new StudentRepository.
func NewStudentRepository(db database.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// List retrieves all students ordered by surname, then name.
func (r *StudentRepository) List(ctx context.Context) ([]model.Student, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+studentColumns+` FROM students ORDER BY surname, name, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	students := []model.Student{}
	for rows.Next() {
		var s model.Student
		if err := rows.Scan(&s.ID, &s.Name, &s.Surname, &s.Email, &s.Phone, &s.BirthDate, &s.CreatedAt); err != nil {
			return nil, err
		}
		students = append(students, s)
	}
	return students, rows.Err()
}

// GetByID retrieves a student by ID. Returns ErrNotFound if absent.
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*model.Student, error) {
	s := &model.Student{}
	err := r.db.QueryRow(ctx,
		`SELECT `+studentColumns+` FROM students WHERE id = $1`, id,
	).Scan(&s.ID, &s.Name, &s.Surname, &s.Email, &s.Phone, &s.BirthDate, &s.CreatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return s, nil
}

// Create inserts a new student. created_at defaults to NOW() unless the caller set it.
func (r *StudentRepository) Create(ctx context.Context, s *model.Student) error {
	var createdAt *time.Time
	if !s.CreatedAt.IsZero() {
		createdAt = &s.CreatedAt
	}
	err := r.db.QueryRow(ctx,
		`INSERT INTO students (name, surname, email, phone, birth_date, created_at)
		 VALUES ($1, $2, $3, $4, $5, COALESCE($6::timestamptz, NOW()))
		 RETURNING id, created_at`,
		s.Name, s.Surname, s.Email, s.Phone, s.BirthDate, createdAt,
	).Scan(&s.ID, &s.CreatedAt)
	if pgCode(err) == pgUniqueViolation {
		return ErrDuplicateEmail
	}
	return err
}

// Update modifies a student's details. created_at is never rewritten.
func (r *StudentRepository) Update(ctx context.Context, s *model.Student) error {
	err := r.db.QueryRow(ctx,
		`UPDATE students SET name = $1, surname = $2, email = $3, phone = $4, birth_date = $5
		 WHERE id = $6
		 RETURNING created_at`,
		s.Name, s.Surname, s.Email, s.Phone, s.BirthDate, s.ID,
	).Scan(&s.CreatedAt)
	if pgCode(err) == pgUniqueViolation {
		return ErrDuplicateEmail
	}
	return notFound(err)
}

// Delete removes a student by ID.
func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
