package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
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
	cfg := config.Load(config.ServiceEstudiantes)

	log := logger.Setup(cfg.LogLevel, cfg.LogFormat, string(cfg.Service))
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting estudiantes service")

	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	studentService := service.NewStudentService(repository.NewStudentRepository(pool), log)

	handlers := &router.EstudiantesHandlers{
		Student: handler.NewStudentHandler(studentService, log),
	}
	r := router.SetupEstudiantesRouter(handlers, cfg, log)

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

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

func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
