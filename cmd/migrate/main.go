package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/stemsi/course-enrollment/internal/config"
	"github.com/stemsi/course-enrollment/migrations"
)

func main() {
	var (
		serviceName  string
		migrationDir string
	)
	flag.StringVar(&serviceName, "service", string(config.ServiceCursos), "Service whose schema to migrate: cursos or estudiantes")
	flag.StringVar(&migrationDir, "path", "", "Read migrations from this directory instead of the embedded set")
	flag.Parse()

	service := config.Service(serviceName)
	embedded, ok := embeddedSource(service)
	if !ok {
		log.Fatalf("Unknown service %q", serviceName)
	}

	// Load config
	cfg := config.Load(service)
	dbURL := cfg.DatabaseURL
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	var (
		m   *migrate.Migrate
		err error
	)
	if migrationDir != "" {
		m, err = migrate.New(fmt.Sprintf("file://%s", migrationDir), dbURL)
	} else {
		src, srcErr := iofs.New(embedded, string(service))
		if srcErr != nil {
			log.Fatalf("Embedded migrations unreadable: %v", srcErr)
		}
		m, err = migrate.NewWithSourceInstance("iofs", src, dbURL)
	}
	if err != nil {
		log.Fatalf("Migration failed to initialize: %v", err)
	}
	defer m.Close()

	args := flag.Args()
	if len(args) < 1 {
		printUsage()
		return
	}

	command := args[0]
	switch command {
	case "up":
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatalf("Up failed: %v", err)
		}
		fmt.Printf("Migrated %s up successfully\n", service)
	case "down":
		if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatalf("Down failed: %v", err)
		}
		fmt.Printf("Migrated %s down successfully\n", service)
	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			log.Fatalf("Version failed: %v", err)
		}
		fmt.Printf("Version: %d, Dirty: %t\n", version, dirty)
	case "force":
		if len(args) < 2 {
			log.Fatal("force requires version argument")
		}
		v, err := strconv.Atoi(args[1])
		if err != nil {
			log.Fatalf("Invalid version: %v", err)
		}
		if err := m.Force(v); err != nil {
			log.Fatalf("Force failed: %v", err)
		}
		fmt.Printf("Forced version to %d\n", v)
	default:
		printUsage()
	}
}

func embeddedSource(service config.Service) (fs.FS, bool) {
	switch service {
	case config.ServiceCursos:
		return migrations.Cursos, true
	case config.ServiceEstudiantes:
		return migrations.Estudiantes, true
	default:
		return nil, false
	}
}

func printUsage() {
	fmt.Println("Usage: migrate [flags] <command>")
	fmt.Println("Commands: up, down, version, force <version>")
	fmt.Println("Flags:")
	flag.PrintDefaults()
}
