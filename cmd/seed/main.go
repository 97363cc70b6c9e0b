package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"time"

	"github.com/stemsi/course-enrollment/internal/config"
	"github.com/stemsi/course-enrollment/internal/database"
	"github.com/stemsi/course-enrollment/internal/logger"
	"github.com/stemsi/course-enrollment/internal/model"
	"github.com/stemsi/course-enrollment/internal/repository"
	"github.com/stemsi/course-enrollment/internal/service"
)

var courses = []model.Course{
	{Name: "Programación Orientada a Objetos", Description: "Clases, herencia y polimorfismo", Credits: 4},
	{Name: "Bases de Datos", Description: "Modelo relacional y SQL", Credits: 4},
	{Name: "Aplicaciones Distribuidas", Description: "Microservicios y comunicación HTTP", Credits: 3},
	{Name: "Estructuras de Datos", Description: "Listas, árboles y grafos", Credits: 4},
	{Name: "Ingeniería de Software", Description: "Requisitos, diseño y pruebas", Credits: 3},
}

var students = []struct{ name, surname string }{
	{"Juan", "Pérez"}, {"Ana", "Torres"}, {"Carlos", "Andrade"}, {"María", "Guerrero"},
	{"Luis", "Cevallos"}, {"Sofía", "Benítez"}, {"Diego", "Salazar"}, {"Valeria", "Moreno"},
	{"Andrés", "Paredes"}, {"Camila", "Vásconez"},
}

func main() {
	var serviceName string
	flag.StringVar(&serviceName, "service", string(config.ServiceEstudiantes), "Database to seed: cursos or estudiantes")
	flag.Parse()

	cfg := config.Load(config.Service(serviceName))
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat, "seed")
	if cfg.Service != config.ServiceCursos && cfg.Service != config.ServiceEstudiantes {
		log.Fatal().Str("service", serviceName).Msg("Unknown service")
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	switch cfg.Service {
	case config.ServiceCursos:
		courseService := service.NewCourseService(repository.NewCourseRepository(pool), log)

		fmt.Printf("=== Seeding %d Courses ===\n", len(courses))
		created := 0
		for i := range courses {
			c := courses[i]
			if err := courseService.Create(ctx, &c); err != nil {
				fmt.Printf("Error creating course %s: %v\n", c.Name, err)
				continue
			}
			created++
		}
		fmt.Printf("\nSeed completed! Successfully added %d/%d courses.\n", created, len(courses))

	case config.ServiceEstudiantes:
		studentService := service.NewStudentService(repository.NewStudentRepository(pool), log)

		fmt.Printf("=== Seeding %d Students ===\n", len(students))
		created, skipped := 0, 0
		for i, s := range students {
			birth := time.Date(2000+i%5, time.Month(i%12+1), 10+i, 0, 0, 0, 0, time.UTC)
			student := &model.Student{
				Name:      s.name,
				Surname:   s.surname,
				Email:     fmt.Sprintf("estudiante%02d@universidad.edu", i+1),
				Phone:     fmt.Sprintf("09%08d", 12345600+i),
				BirthDate: &birth,
			}
			err := studentService.Create(ctx, student)
			switch {
			case errors.Is(err, repository.ErrDuplicateEmail):
				skipped++
			case err != nil:
				fmt.Printf("Error creating student %s %s: %v\n", s.name, s.surname, err)
			default:
				created++
			}
		}
		fmt.Printf("\nSeed completed! Added %d/%d students (%d already present).\n", created, len(students), skipped)
	}
}
