package repository

import (
	"context"

	"github.com/stemsi/course-enrollment/internal/database"
	"github.com/stemsi/course-enrollment/internal/model"
)

// CourseStudentRepository handles direct access to relationship rows by their own id.
type CourseStudentRepository struct {
	db database.DB
}

// NewCourseStudentRepository creates a new CourseStudentRepository.
func NewCourseStudentRepository(db database.DB) *CourseStudentRepository {
	return &CourseStudentRepository{db: db}
}

// List retrieves every relationship row.
func (r *CourseStudentRepository) List(ctx context.Context) ([]model.CourseStudent, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, student_id, course_id FROM course_students ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []model.CourseStudent{}
	for rows.Next() {
		var cs model.CourseStudent
		if err := rows.Scan(&cs.ID, &cs.StudentID, &cs.CourseID); err != nil {
			return nil, err
		}
		result = append(result, cs)
	}
	return result, rows.Err()
}

// GetByID retrieves a relationship row. Returns ErrNotFound if absent.
func (r *CourseStudentRepository) GetByID(ctx context.Context, id int64) (*model.CourseStudent, error) {
	cs := &model.CourseStudent{}
	err := r.db.QueryRow(ctx,
		`SELECT id, student_id, course_id FROM course_students WHERE id = $1`, id,
	).Scan(&cs.ID, &cs.StudentID, &cs.CourseID)
	if err != nil {
		return nil, notFound(err)
	}
	return cs, nil
}

// Create inserts a relationship row.
func (r *CourseStudentRepository) Create(ctx context.Context, cs *model.CourseStudent) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO course_students (student_id, course_id) VALUES ($1, $2) RETURNING id`,
		cs.StudentID, cs.CourseID,
	).Scan(&cs.ID)
	return classifyEnrollmentErr(err)
}

// Update repoints an existing relationship row.
func (r *CourseStudentRepository) Update(ctx context.Context, cs *model.CourseStudent) error {
	err := r.db.QueryRow(ctx,
		`UPDATE course_students SET student_id = $1, course_id = $2 WHERE id = $3 RETURNING id`,
		cs.StudentID, cs.CourseID, cs.ID,
	).Scan(&cs.ID)
	return classifyEnrollmentErr(notFound(err))
}

// Delete removes a relationship row by its id.
func (r *CourseStudentRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM course_students WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func classifyEnrollmentErr(err error) error {
	switch pgCode(err) {
	case pgUniqueViolation:
		return ErrDuplicateEnrollment
	case pgForeignKeyViolation:
		return ErrCourseMissing
	}
	return err
}
