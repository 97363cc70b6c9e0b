package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/stemsi/course-enrollment/internal/client"
	"github.com/stemsi/course-enrollment/internal/config"
	"github.com/stemsi/course-enrollment/internal/database"
	"github.com/stemsi/course-enrollment/internal/handler"
	"github.com/stemsi/course-enrollment/internal/logger"
	"github.com/stemsi/course-enrollment/internal/repository"
	"github.com/stemsi/course-enrollment/internal/router"
	"github.com/stemsi/course-enrollment/internal/service"
	"github.com/stemsi/course-enrollment/internal/validator"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load(config.ServiceCursos)

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat, string(cfg.Service))
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Str("student_service_url", cfg.StudentServiceURL).
		Dur("student_service_timeout", cfg.StudentServiceTimeout).
		Msg("Starting cursos service")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Initialize Repositories ───────────────────────────────────────
	courseRepo := repository.NewCourseRepository(pool)
	courseStudentRepo := repository.NewCourseStudentRepository(pool)

	// ─── Remote Student Client ─────────────────────────────────────────
	studentClient := client.NewStudentClient(cfg.StudentServiceURL, cfg.StudentServiceTimeout, log)

	// ─── Initialize Services ──────────────────────────────────────────
	courseService := service.NewCourseService(courseRepo, log)
	courseStudentService := service.NewCourseStudentService(courseStudentRepo, log)
	enrollmentService := service.NewEnrollmentService(courseRepo, courseStudentRepo, studentClient, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.CursosHandlers{
		Course:        handler.NewCourseHandler(courseService, log),
		CourseStudent: handler.NewCourseStudentHandler(courseStudentService, log),
		Enrollment:    handler.NewEnrollmentHandler(enrollmentService, log),
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupCursosRouter(handlers, cfg, log)

	serve(cfg, r, log)
}

// serve runs the HTTP server until SIGINT/SIGTERM, then drains in-flight
// requests for up to 5 seconds.
func serve(cfg *config.Config, h http.Handler, log zerolog.Logger) {
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
