package main

import (
	"context"
	"database/sql"
	"os"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"kycapi/internal/config"
	"kycapi/internal/database"
	"kycapi/internal/database/migration"
	"kycapi/internal/logging"
)

type migrateFunc func(ctx context.Context, db *sql.DB, dbHost string) error

func main() {
	var logLevel string
	cfg := config.Load()

	// withDB opens the database configured by DB_* variables and runs fn on it.
	withDB := func(fn migrateFunc) cli.ActionFunc {
		return func(ctx context.Context, c *cli.Command) error {
			db, err := database.NewPostgres(ctx, cfg.Database)
			if err != nil {
				return goerr.Wrap(err, "failed to connect to database", goerr.V("db_host", cfg.Database.Host))
			}
			defer db.Close()
			return fn(ctx, db, cfg.Database.Host)
		}
	}

	app := &cli.Command{
		Name:  "migrate",
		Usage: "Manage the KYC database schema",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "debug, info, warn or error",
				Value:       cfg.LogLevel,
				Sources:     cli.EnvVars("LOG_LEVEL"),
				Destination: &logLevel,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			logger := logging.New(os.Stdout, logLevel, time.UTC)
			logging.SetDefault(logger)
			return logging.With(ctx, logger), nil
		},
		Commands: []*cli.Command{
			{
				Name:   "up",
				Usage:  "Apply every pending migration",
				Action: withDB(migration.EnsureMigrated),
			},
			{
				Name:   "status",
				Usage:  "Show the applied state of each migration",
				Action: withDB(migration.Status),
			},
			{
				Name:   "down",
				Usage:  "Roll back the most recent migration",
				Action: withDB(migration.Down),
			},
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logging.Default().Error("migrate failed", "error", err.Error())
		os.Exit(1)
	}
}
