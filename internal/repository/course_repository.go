package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/stemsi/course-enrollment/internal/database"
	"github.com/stemsi/course-enrollment/internal/model"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// CourseRepository handles course data access. A course is always returned
// together with its enrollment rows.
type CourseRepository struct {
	db database.DB
}

// NewCourseRepository creates a new CourseRepository.
func NewCourseRepository(db database.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

// List retrieves courses matching the filter, ordered by id.
func (r *CourseRepository) List(ctx context.Context, f model.CourseFilter) ([]model.Course, error) {
	q := psql.Select("id", "name", "description", "credits", "created_at").
		From("courses").
		OrderBy("id")

	if f.Credits != nil {
		q = q.Where(sq.Eq{"credits": *f.Credits})
	}
	if f.CreatedAfter != nil {
		q = q.Where(sq.Gt{"created_at": *f.CreatedAfter})
	}
	if f.Description != "" {
		q = q.Where(sq.Like{"description": "%" + likeEscaper.Replace(f.Description) + "%"})
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build course query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	courses := []model.Course{}
	ids := []int64{}
	for rows.Next() {
		var c model.Course
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.Credits, &c.CreatedAt); err != nil {
			return nil, err
		}
		c.Enrollments = []model.CourseStudent{}
		courses = append(courses, c)
		ids = append(ids, c.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(ids) == 0 {
		return courses, nil
	}

	byCourse, err := r.enrollmentsFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range courses {
		if cs, ok := byCourse[courses[i].ID]; ok {
			courses[i].Enrollments = cs
		}
	}
	return courses, nil
}

// GetByID retrieves a course and its enrollment rows. Returns ErrNotFound if absent.
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*model.Course, error) {
	c := &model.Course{}
	err := r.db.QueryRow(ctx,
		`SELECT id, name, description, credits, created_at
		 FROM courses WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name, &c.Description, &c.Credits, &c.CreatedAt)
	if err != nil {
		return nil, notFound(err)
	}

	byCourse, err := r.enrollmentsFor(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	c.Enrollments = byCourse[id]
	if c.Enrollments == nil {
		c.Enrollments = []model.CourseStudent{}
	}
	return c, nil
}

// Create inserts a new course. created_at defaults to NOW() unless the caller set it.
func (r *CourseRepository) Create(ctx context.Context, c *model.Course) error {
	return r.insert(ctx, r.db, c)
}

// Update modifies name, description and credits. created_at is never rewritten.
func (r *CourseRepository) Update(ctx context.Context, c *model.Course) error {
	return r.update(ctx, r.db, c)
}

// Delete removes a course; its enrollment rows go with it (ON DELETE CASCADE).
func (r *CourseRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Save upserts the course and inserts every enrollment row that has no id yet,
// all in one transaction. Existing rows are left untouched, so concurrent saves
// of the same course never drop each other's enrollments.
func (r *CourseRepository) Save(ctx context.Context, c *model.Course) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	if err := r.save(ctx, tx, c); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (r *CourseRepository) save(ctx context.Context, tx pgx.Tx, c *model.Course) error {
	if c.ID == 0 {
		if err := r.insert(ctx, tx, c); err != nil {
			return err
		}
	} else if err := r.update(ctx, tx, c); err != nil {
		return err
	}

	for i := range c.Enrollments {
		cs := &c.Enrollments[i]
		if cs.ID != 0 {
			continue
		}
		cs.CourseID = c.ID
		// The no-op update makes RETURNING yield the existing id on conflict.
		err := tx.QueryRow(ctx,
			`INSERT INTO course_students (student_id, course_id)
			 VALUES ($1, $2)
			 ON CONFLICT (student_id, course_id) DO UPDATE SET course_id = EXCLUDED.course_id
			 RETURNING id`,
			cs.StudentID, cs.CourseID,
		).Scan(&cs.ID)
		if err != nil {
			return fmt.Errorf("insert enrollment: %w", err)
		}
	}
	return nil
}

type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func (r *CourseRepository) insert(ctx context.Context, db rowQuerier, c *model.Course) error {
	var createdAt *time.Time
	if !c.CreatedAt.IsZero() {
		createdAt = &c.CreatedAt
	}
	return db.QueryRow(ctx,
		`INSERT INTO courses (name, description, credits, created_at)
		 VALUES ($1, $2, $3, COALESCE($4::timestamptz, NOW()))
		 RETURNING id, created_at`,
		c.Name, c.Description, c.Credits, createdAt,
	).Scan(&c.ID, &c.CreatedAt)
}

func (r *CourseRepository) update(ctx context.Context, db rowQuerier, c *model.Course) error {
	err := db.QueryRow(ctx,
		`UPDATE courses SET name = $1, description = $2, credits = $3
		 WHERE id = $4
		 RETURNING created_at`,
		c.Name, c.Description, c.Credits, c.ID,
	).Scan(&c.CreatedAt)
	return notFound(err)
}

func (r *CourseRepository) enrollmentsFor(ctx context.Context, courseIDs []int64) (map[int64][]model.CourseStudent, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, student_id, course_id FROM course_students
		 WHERE course_id = ANY($1) ORDER BY id`, courseIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byCourse := make(map[int64][]model.CourseStudent, len(courseIDs))
	for rows.Next() {
		var cs model.CourseStudent
		if err := rows.Scan(&cs.ID, &cs.StudentID, &cs.CourseID); err != nil {
			return nil, err
		}
		byCourse[cs.CourseID] = append(byCourse[cs.CourseID], cs)
	}
	return byCourse, rows.Err()
}
