package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/course-enrollment/internal/model"
	"github.com/stemsi/course-enrollment/internal/response"
	"github.com/stemsi/course-enrollment/internal/service"
	"github.com/stemsi/course-enrollment/internal/validator"
)

type CourseHandler struct {
	courseService *service.CourseService
	log           zerolog.Logger
}

func NewCourseHandler(courseService *service.CourseService, log zerolog.Logger) *CourseHandler {
	return &CourseHandler{
		courseService: courseService,
		log:           log.With().Str("component", "course_handler").Logger(),
	}
}

// List godoc
// GET /api/v1/courses?credits=4&created_after=2024-01-31&description=text
func (h *CourseHandler) List(c *gin.Context) {
	var q model.CourseQuery
	if fields := validator.BindQuery(c, &q); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrInvalidFilter, fields)
		return
	}
	filter, err := q.Filter()
	if err != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrInvalidFilter,
			map[string]string{"created_after": err.Error()})
		return
	}

	courses, err := h.courseService.List(c.Request.Context(), filter)
	if err != nil {
		internalError(c, h.log, err, "failed to list courses")
		return
	}
	if courses == nil {
		courses = []model.Course{}
	}

	response.Success(c, http.StatusOK, "courses retrieved", courses)
}

// Get godoc
// GET /api/v1/courses/:id
func (h *CourseHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	course, err := h.courseService.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrCourseNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrCourseNotFound)
			return
		}
		internalError(c, h.log, err, "failed to load course")
		return
	}
	response.Success(c, http.StatusOK, "course found", course)
}

// Create godoc
// POST /api/v1/courses
func (h *CourseHandler) Create(c *gin.Context) {
	var req model.CreateCourseRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	course := &model.Course{
		Name:        req.Name,
		Description: req.Description,
		Credits:     *req.Credits,
	}
	if req.CreatedAt != nil {
		course.CreatedAt = *req.CreatedAt
	}

	if err := h.courseService.Create(c.Request.Context(), course); err != nil {
		internalError(c, h.log, err, "failed to create course")
		return
	}
	response.Success(c, http.StatusCreated, "course created", course)
}

// Update godoc
// PUT /api/v1/courses/:id
func (h *CourseHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.UpdateCourseRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	course, err := h.courseService.Update(c.Request.Context(), &model.Course{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Credits:     *req.Credits,
	})
	if err != nil {
		if errors.Is(err, service.ErrCourseNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrCourseNotFound)
			return
		}
		internalError(c, h.log, err, "failed to update course")
		return
	}
	response.Success(c, http.StatusOK, "course updated", course)
}

// Delete godoc
// DELETE /api/v1/courses/:id
func (h *CourseHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.courseService.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrCourseNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrCourseNotFound)
			return
		}
		internalError(c, h.log, err, "failed to delete course")
		return
	}
	response.Success(c, http.StatusOK, "course deleted", nil)
}
