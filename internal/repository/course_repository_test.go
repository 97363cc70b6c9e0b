package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v2"
	"github.com/stemsi/course-enrollment/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

var courseCols = []string{"id", "name", "description", "credits", "created_at"}
var enrollmentCols = []string{"id", "student_id", "course_id"}

func TestCourseRepository_GetByID(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name    string
		setup   func(mock pgxmock.PgxPoolIface)
		wantErr error
		check   func(t *testing.T, c *model.Course)
	}{
		{
			name: "found with enrollments",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`SELECT id, name, description, credits, created_at\s+FROM courses WHERE id = \$1`).
					WithArgs(int64(1)).
					WillReturnRows(pgxmock.NewRows(courseCols).AddRow(int64(1), "Go", "Backend in Go", 4, now))
				mock.ExpectQuery(`FROM course_students\s+WHERE course_id = ANY\(\$1\)`).
					WithArgs([]int64{1}).
					WillReturnRows(pgxmock.NewRows(enrollmentCols).
						AddRow(int64(10), int64(7), int64(1)).
						AddRow(int64(11), int64(8), int64(1)))
			},
			check: func(t *testing.T, c *model.Course) {
				assert.Equal(t, "Go", c.Name)
				assert.Equal(t, 4, c.Credits)
				require.Len(t, c.Enrollments, 2)
				assert.Equal(t, int64(7), c.Enrollments[0].StudentID)
			},
		},
		{
			name: "found without enrollments",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`FROM courses WHERE id = \$1`).
					WithArgs(int64(1)).
					WillReturnRows(pgxmock.NewRows(courseCols).AddRow(int64(1), "Go", "Backend in Go", 4, now))
				mock.ExpectQuery(`FROM course_students`).
					WithArgs([]int64{1}).
					WillReturnRows(pgxmock.NewRows(enrollmentCols))
			},
			check: func(t *testing.T, c *model.Course) {
				assert.NotNil(t, c.Enrollments)
				assert.Empty(t, c.Enrollments)
			},
		},
		{
			name: "not found",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`FROM courses WHERE id = \$1`).
					WithArgs(int64(1)).
					WillReturnError(pgx.ErrNoRows)
			},
			wantErr: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := newMock(t)
			tt.setup(mock)

			c, err := NewCourseRepository(mock).GetByID(context.Background(), 1)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, c)
			} else {
				require.NoError(t, err)
				tt.check(t, c)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCourseRepository_List_Filters(t *testing.T) {
	mock := newMock(t)
	now := time.Now()
	after := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	credits := 4

	mock.ExpectQuery(`FROM courses WHERE credits = \$1 AND created_at > \$2 AND description LIKE \$3 ORDER BY id`).
		WithArgs(4, after, `%50\%%`).
		WillReturnRows(pgxmock.NewRows(courseCols).
			AddRow(int64(1), "Go", "50% practice", 4, now).
			AddRow(int64(2), "SQL", "50% theory", 4, now))
	mock.ExpectQuery(`FROM course_students`).
		WithArgs([]int64{1, 2}).
		WillReturnRows(pgxmock.NewRows(enrollmentCols).AddRow(int64(5), int64(9), int64(2)))

	courses, err := NewCourseRepository(mock).List(context.Background(), model.CourseFilter{
		Credits:      &credits,
		CreatedAfter: &after,
		Description:  "50%",
	})
	require.NoError(t, err)
	require.Len(t, courses, 2)
	assert.Empty(t, courses[0].Enrollments)
	assert.Equal(t, []model.CourseStudent{{ID: 5, StudentID: 9, CourseID: 2}}, courses[1].Enrollments)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepository_List_EmptySkipsEnrollmentQuery(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(`SELECT id, name, description, credits, created_at FROM courses ORDER BY id`).
		WillReturnRows(pgxmock.NewRows(courseCols))

	courses, err := NewCourseRepository(mock).List(context.Background(), model.CourseFilter{})
	require.NoError(t, err)
	assert.NotNil(t, courses)
	assert.Empty(t, courses)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepository_Create_DefaultsCreatedAt(t *testing.T) {
	mock := newMock(t)
	now := time.Now()

	mock.ExpectQuery(`INSERT INTO courses`).
		WithArgs("Go", "Backend in Go", 4, pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(3), now))

	c := &model.Course{Name: "Go", Description: "Backend in Go", Credits: 4}
	require.NoError(t, NewCourseRepository(mock).Create(context.Background(), c))
	assert.Equal(t, int64(3), c.ID)
	assert.Equal(t, now, c.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepository_Update_NotFound(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(`UPDATE courses SET name = \$1, description = \$2, credits = \$3`).
		WithArgs("Go", "Backend", 3, int64(99)).
		WillReturnError(pgx.ErrNoRows)

	err := NewCourseRepository(mock).Update(context.Background(), &model.Course{ID: 99, Name: "Go", Description: "Backend", Credits: 3})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepository_Delete(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec(`DELETE FROM courses WHERE id = \$1`).
			WithArgs(int64(1)).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))

		assert.NoError(t, NewCourseRepository(mock).Delete(context.Background(), 1))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec(`DELETE FROM courses WHERE id = \$1`).
			WithArgs(int64(2)).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		assert.ErrorIs(t, NewCourseRepository(mock).Delete(context.Background(), 2), ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCourseRepository_Save_InsertsOnlyNewEnrollments(t *testing.T) {
	mock := newMock(t)
	created := time.Now().Add(-time.Hour)

	mock.ExpectBegin()
	mock.ExpectQuery(`UPDATE courses SET`).
		WithArgs("Go", "Backend in Go", 4, int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(created))
	mock.ExpectQuery(`INSERT INTO course_students \(student_id, course_id\)`).
		WithArgs(int64(7), int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(42)))
	mock.ExpectCommit()

	c := &model.Course{
		ID: 1, Name: "Go", Description: "Backend in Go", Credits: 4,
		Enrollments: []model.CourseStudent{
			{ID: 10, StudentID: 3, CourseID: 1},
			{StudentID: 7},
		},
	}
	require.NoError(t, NewCourseRepository(mock).Save(context.Background(), c))

	assert.Equal(t, created, c.CreatedAt)
	assert.Equal(t, model.CourseStudent{ID: 42, StudentID: 7, CourseID: 1}, c.Enrollments[1])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepository_Save_NewCourse(t *testing.T) {
	mock := newMock(t)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO courses`).
		WithArgs("Go", "Backend in Go", 4, pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(5), now))
	mock.ExpectCommit()

	c := &model.Course{Name: "Go", Description: "Backend in Go", Credits: 4}
	require.NoError(t, NewCourseRepository(mock).Save(context.Background(), c))
	assert.Equal(t, int64(5), c.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepository_Save_RollsBackOnFailure(t *testing.T) {
	mock := newMock(t)
	boom := errors.New("connection reset")

	mock.ExpectBegin()
	mock.ExpectQuery(`UPDATE courses SET`).
		WithArgs("Go", "Backend in Go", 4, int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(time.Now()))
	mock.ExpectQuery(`INSERT INTO course_students`).
		WithArgs(int64(7), int64(1)).
		WillReturnError(boom)
	mock.ExpectRollback()

	c := &model.Course{ID: 1, Name: "Go", Description: "Backend in Go", Credits: 4,
		Enrollments: []model.CourseStudent{{StudentID: 7}}}
	err := NewCourseRepository(mock).Save(context.Background(), c)
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepository_Save_MissingCourse(t *testing.T) {
	mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`UPDATE courses SET`).
		WithArgs("Go", "Backend in Go", 4, int64(9)).
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectRollback()

	err := NewCourseRepository(mock).Save(context.Background(), &model.Course{ID: 9, Name: "Go", Description: "Backend in Go", Credits: 4})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPgCode(t *testing.T) {
	assert.Equal(t, pgUniqueViolation, pgCode(&pgconn.PgError{Code: "23505"}))
	assert.Equal(t, "", pgCode(errors.New("plain")))
	assert.Equal(t, "", pgCode(nil))
}
