// Package migrations embeds the SQL schema of both services so the migrate
// binary can run without a checkout of this directory.
package migrations

import "embed"

//go:embed cursos/*.sql
var Cursos embed.FS

//go:embed estudiantes/*.sql
var Estudiantes embed.FS
