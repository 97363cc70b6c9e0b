package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/course-enrollment/internal/model"
	"github.com/stemsi/course-enrollment/internal/repository"
	"github.com/stemsi/course-enrollment/internal/response"
	"github.com/stemsi/course-enrollment/internal/service"
	"github.com/stemsi/course-enrollment/internal/validator"
)

type CourseStudentHandler struct {
	courseStudentService *service.CourseStudentService
	log                  zerolog.Logger
}

func NewCourseStudentHandler(courseStudentService *service.CourseStudentService, log zerolog.Logger) *CourseStudentHandler {
	return &CourseStudentHandler{
		courseStudentService: courseStudentService,
		log:                  log.With().Str("component", "course_student_handler").Logger(),
	}
}

// List godoc
// GET /api/v1/course-students
func (h *CourseStudentHandler) List(c *gin.Context) {
	rows, err := h.courseStudentService.List(c.Request.Context())
	if err != nil {
		internalError(c, h.log, err, "failed to list enrollments")
		return
	}
	if rows == nil {
		rows = []model.CourseStudent{}
	}
	response.Success(c, http.StatusOK, "enrollments retrieved", rows)
}

// Get godoc
// GET /api/v1/course-students/:id
func (h *CourseStudentHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	cs, err := h.courseStudentService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, "failed to load enrollment")
		return
	}
	response.Success(c, http.StatusOK, "enrollment found", cs)
}

// Create godoc
// POST /api/v1/course-students
func (h *CourseStudentHandler) Create(c *gin.Context) {
	var req model.CourseStudentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	cs := &model.CourseStudent{StudentID: req.StudentID, CourseID: req.CourseID}
	if err := h.courseStudentService.Create(c.Request.Context(), cs); err != nil {
		h.fail(c, err, "failed to create enrollment")
		return
	}
	response.Success(c, http.StatusCreated, "enrollment created", cs)
}

// Update godoc
// PUT /api/v1/course-students/:id
func (h *CourseStudentHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.CourseStudentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	cs := &model.CourseStudent{ID: id, StudentID: req.StudentID, CourseID: req.CourseID}
	if err := h.courseStudentService.Update(c.Request.Context(), cs); err != nil {
		h.fail(c, err, "failed to update enrollment")
		return
	}
	response.Success(c, http.StatusOK, "enrollment updated", cs)
}

// Delete godoc
// DELETE /api/v1/course-students/:id
func (h *CourseStudentHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.courseStudentService.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err, "failed to delete enrollment")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CourseStudentHandler) fail(c *gin.Context, err error, msg string) {
	switch {
	case errors.Is(err, service.ErrEnrollmentNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrEnrollmentNotFound)
	case errors.Is(err, repository.ErrCourseMissing):
		response.Fail(c, http.StatusNotFound, response.ErrCourseNotFound)
	case errors.Is(err, repository.ErrDuplicateEnrollment):
		response.Fail(c, http.StatusConflict, response.ErrAlreadyEnrolled)
	default:
		internalError(c, h.log, err, msg)
	}
}
