package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/course-enrollment/internal/config"
	"github.com/stemsi/course-enrollment/internal/handler"
	"github.com/stemsi/course-enrollment/internal/middleware"
	"github.com/stemsi/course-enrollment/internal/response"
)

// CursosHandlers groups the handlers served by the cursos binary.
type CursosHandlers struct {
	Course        *handler.CourseHandler
	CourseStudent *handler.CourseStudentHandler
	Enrollment    *handler.EnrollmentHandler
}

// EstudiantesHandlers groups the handlers served by the estudiantes binary.
type EstudiantesHandlers struct {
	Student *handler.StudentHandler
}

// SetupCursosRouter configures the course and enrollment routes.
func SetupCursosRouter(handlers *CursosHandlers, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	router := newEngine(cfg, log)

	api := router.Group("/api/v1")
	api.Use(middleware.NoStore())
	{
		courses := api.Group("/courses")
		courses.GET("", handlers.Course.List)
		courses.POST("", handlers.Course.Create)
		courses.GET("/:id", handlers.Course.Get)
		courses.PUT("/:id", handlers.Course.Update)
		courses.DELETE("/:id", handlers.Course.Delete)
		courses.PUT("/:id/enroll", handlers.Enrollment.AddStudent)
		courses.DELETE("/:id/enroll", handlers.Enrollment.RemoveStudent)

		joins := api.Group("/course-students")
		joins.GET("", handlers.CourseStudent.List)
		joins.POST("", handlers.CourseStudent.Create)
		joins.GET("/:id", handlers.CourseStudent.Get)
		joins.PUT("/:id", handlers.CourseStudent.Update)
		joins.DELETE("/:id", handlers.CourseStudent.Delete)
	}

	return router
}

// SetupEstudiantesRouter configures the student routes.
func SetupEstudiantesRouter(handlers *EstudiantesHandlers, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	router := newEngine(cfg, log)

	api := router.Group("/api/v1")
	api.Use(middleware.NoStore())
	{
		students := api.Group("/students")
		students.GET("", handlers.Student.List)
		students.POST("", handlers.Student.Create)
		students.GET("/:id", handlers.Student.Get)
		students.PUT("/:id", handlers.Student.Update)
		students.DELETE("/:id", handlers.Student.Delete)
	}

	return router
}

// newEngine builds a gin engine with the middleware stack both services share.
func newEngine(cfg *config.Config, log zerolog.Logger) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(gin.Recovery())

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Request IDs first so the access log can pick them up.
	router.Use(response.RequestIDMiddleware())
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.Brotli())

	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "ok", gin.H{
			"status":  "ok",
			"service": cfg.Service,
		})
	})

	return router
}
