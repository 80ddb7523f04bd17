package app

import (
	"embed"
	"errors"
	"log/slog"
	"os"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// initMigration applies pending schema migrations before modules start.
// Disabled via database.migrate for environments where migrations run
// out of band.
func (a *App) initMigration() {
	if !a.config.GetBool("database.migrate") {
		return
	}

	src, err := iofs.New(migrationFS, "migrations")
	if err != nil {
		slog.Error("failed to load embedded migrations", "error", err)
		os.Exit(1)
	}

	// the pgx driver registers itself under the pgx5 scheme
	dsn := strings.Replace(a.config.GetString("database.url"), "postgres://", "pgx5://", 1)

	m, err := migrate.NewWithSourceInstance("iofs", src, dsn)
	if err != nil {
		slog.Error("failed to init migration", "error", err)
		os.Exit(1)
	}
	defer func() { _, _ = m.Close() }()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		slog.Error("failed to apply migrations", "error", err)
		os.Exit(1)
	}
}
