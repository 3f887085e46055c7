// Package database opens the PostgreSQL pool shared by the repositories.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/XSAM/otelsql"
	_ "github.com/jackc/pgx/v5/stdlib"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"

	"kycapi/internal/config"
	"kycapi/internal/logging"
)

const (
	appName            = "kycapi"
	defaultPingTimeout = 5 * time.Second
)

var (
	sqlOpen = sql.Open

	ErrIncompleteConfig = errors.New("database: DATABASE_URL or DB_HOST, DB_PORT, DB_USER and DB_NAME are required")
)

// BuildPostgresDSN returns the connection URL for c. DATABASE_URL wins over
// the individual DB_* fields; application_name is added when missing.
func BuildPostgresDSN(c config.DatabaseConfig) (string, error) {
	u, err := dsnURL(c)
	if err != nil {
		return "", err
	}

	q := u.Query()
	if q.Get("application_name") == "" {
		q.Set("application_name", appName)
	}
	if c.SSLMode != "" && q.Get("sslmode") == "" {
		q.Set("sslmode", c.SSLMode)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func dsnURL(c config.DatabaseConfig) (*url.URL, error) {
	if c.URL != "" {
		u, err := url.Parse(c.URL)
		if err != nil {
			return nil, fmt.Errorf("database: parse DATABASE_URL: %w", err)
		}
		if u.Scheme != "postgres" && u.Scheme != "postgresql" {
			return nil, fmt.Errorf("database: unsupported scheme %q", u.Scheme)
		}
		return u, nil
	}

	if c.Host == "" || c.Port == "" || c.User == "" || c.Name == "" {
		return nil, ErrIncompleteConfig
	}
	u := &url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(c.Host, c.Port),
		Path:   c.Name,
		User:   url.User(c.User),
	}
	if c.Password != "" {
		u.User = url.UserPassword(c.User, c.Password)
	}
	return u, nil
}

func applyPool(db *sql.DB, c config.DatabaseConfig) {
	if c.MaxOpenConns > 0 {
		db.SetMaxOpenConns(c.MaxOpenConns)
	}
	if c.MaxIdleConns > 0 {
		db.SetMaxIdleConns(c.MaxIdleConns)
	}
	if c.ConnMaxLifetimeSec > 0 {
		db.SetConnMaxLifetime(time.Duration(c.ConnMaxLifetimeSec) * time.Second)
	}
}

// NewPostgres opens a pool on the pgx stdlib driver, traced through otelsql,
// and pings it before returning.
func NewPostgres(ctx context.Context, c config.DatabaseConfig) (*sql.DB, error) {
	dsn, err := BuildPostgresDSN(c)
	if err != nil {
		return nil, err
	}

	driver, err := otelsql.Register("pgx",
		otelsql.WithAttributes(semconv.DBSystemPostgreSQL),
		otelsql.WithSQLCommenter(true),
	)
	if err != nil {
		return nil, fmt.Errorf("database: register otelsql: %w", err)
	}

	db, err := sqlOpen(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("database: open: %w", err)
	}
	applyPool(db, c)

	timeout := defaultPingTimeout
	if c.PingTimeoutSec > 0 {
		timeout = time.Duration(c.PingTimeoutSec) * time.Second
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("database: ping: %w", err)
	}

	logging.From(ctx).Info("database connected",
		"component", "database",
		"via_url", c.URL != "",
		"max_open", db.Stats().MaxOpenConnections,
	)
	return db, nil
}
