package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/course-enrollment/internal/client"
	"github.com/stemsi/course-enrollment/internal/model"
	"github.com/stemsi/course-enrollment/internal/response"
	"github.com/stemsi/course-enrollment/internal/service"
	"github.com/stemsi/course-enrollment/internal/validator"
)

// EnrollmentHandler serves the enroll/unenroll endpoints. Unlike the CRUD
// endpoints these answer with raw bodies: the student, a boolean, an empty
// 404, or a bare {message}.
type EnrollmentHandler struct {
	enrollmentService *service.EnrollmentService
	log               zerolog.Logger
}

func NewEnrollmentHandler(enrollmentService *service.EnrollmentService, log zerolog.Logger) *EnrollmentHandler {
	return &EnrollmentHandler{
		enrollmentService: enrollmentService,
		log:               log.With().Str("component", "enrollment_handler").Logger(),
	}
}

// AddStudent godoc
// PUT /api/v1/courses/:id/enroll  {"id": 7}
func (h *EnrollmentHandler) AddStudent(c *gin.Context) {
	courseID, ref, ok := h.bind(c)
	if !ok {
		return
	}

	student, err := h.enrollmentService.AddStudent(c.Request.Context(), courseID, ref)
	switch {
	case err == nil:
		c.JSON(http.StatusCreated, student)
	case errors.Is(err, service.ErrCourseNotFound), errors.Is(err, service.ErrStudentNotFound):
		c.Status(http.StatusNotFound)
	case errors.Is(err, client.ErrUpstreamCallFailed):
		response.Message(c, http.StatusBadRequest, err.Error())
	default:
		h.log.Error().Err(err).Int64("course_id", courseID).Int64("student_id", ref.ID).Msg("failed to enroll student")
		response.Message(c, http.StatusInternalServerError, response.GetMessage(response.ErrInternal))
	}
}

// RemoveStudent godoc
// DELETE /api/v1/courses/:id/enroll  {"id": 7}
func (h *EnrollmentHandler) RemoveStudent(c *gin.Context) {
	courseID, ref, ok := h.bind(c)
	if !ok {
		return
	}

	removed, err := h.enrollmentService.RemoveStudent(c.Request.Context(), courseID, ref)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, removed)
	case errors.Is(err, client.ErrUpstreamCallFailed):
		response.Message(c, http.StatusBadRequest, err.Error())
	default:
		h.log.Error().Err(err).Int64("course_id", courseID).Int64("student_id", ref.ID).Msg("failed to unenroll student")
		response.Message(c, http.StatusInternalServerError, response.GetMessage(response.ErrInternal))
	}
}

func (h *EnrollmentHandler) bind(c *gin.Context) (int64, model.StudentReference, bool) {
	var ref model.StudentReference

	courseID, ok := parseID(c, "id")
	if !ok {
		response.Message(c, http.StatusBadRequest, response.GetMessage(response.ErrInvalidID))
		return 0, ref, false
	}
	if fields := validator.Bind(c, &ref); fields != nil {
		response.Message(c, http.StatusBadRequest, validator.FirstMessage(fields))
		return 0, ref, false
	}
	return courseID, ref, true
}
