package migration

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/pressly/goose/v3"

	"kycapi/internal/logging"
)

//go:embed sql/*.sql
var migrationFiles embed.FS

const migrationDir = "sql"

// gooseLogger routes goose output through the structured logger.
type gooseLogger struct {
	logger *slog.Logger
	dbHost string
}

func (l gooseLogger) Printf(format string, v ...any) {
	l.logger.Info(strings.TrimSpace(fmt.Sprintf(format, v...)),
		"component", "database",
		"event", "db_migration_step",
		"db_host", l.dbHost,
	)
}

func (l gooseLogger) Fatalf(format string, v ...any) {
	// goose only calls Fatalf from its CLI helpers; surface it as an error line.
	l.logger.Error(strings.TrimSpace(fmt.Sprintf(format, v...)),
		"component", "database",
		"event", "db_migration_failed",
		"db_host", l.dbHost,
	)
}

func setup(ctx context.Context, dbHost string) error {
	goose.SetBaseFS(migrationFiles)
	goose.SetLogger(gooseLogger{logger: logging.From(ctx), dbHost: dbHost})
	return goose.SetDialect("postgres")
}

// EnsureMigrated applies every pending embedded migration.
func EnsureMigrated(ctx context.Context, db *sql.DB, dbHost string) error {
	start := time.Now()
	logger := logging.From(ctx)

	logger.Info("checking schema",
		"component", "database",
		"event", "db_migration_check",
		"status", "starting",
		"db_host", dbHost,
	)

	if err := setup(ctx, dbHost); err != nil {
		return fmt.Errorf("configure migrations: %w", err)
	}

	if err := goose.UpContext(ctx, db, migrationDir); err != nil {
		logger.Error("migration failed",
			"component", "database",
			"event", "db_migration_failed",
			"status", "error",
			"error_message", err.Error(),
			"db_host", dbHost,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return fmt.Errorf("apply migrations: %w", err)
	}

	version, err := goose.GetDBVersionContext(ctx, db)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}

	logger.Info("schema up to date",
		"component", "database",
		"event", "db_migration_success",
		"status", "success",
		"db_host", dbHost,
		"version", version,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// Status logs the applied state of every embedded migration.
func Status(ctx context.Context, db *sql.DB, dbHost string) error {
	if err := setup(ctx, dbHost); err != nil {
		return fmt.Errorf("configure migrations: %w", err)
	}
	return goose.StatusContext(ctx, db, migrationDir)
}

// Down rolls back the most recent migration.
func Down(ctx context.Context, db *sql.DB, dbHost string) error {
	if err := setup(ctx, dbHost); err != nil {
		return fmt.Errorf("configure migrations: %w", err)
	}
	return goose.DownContext(ctx, db, migrationDir)
}
