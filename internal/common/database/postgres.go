// internal/common/database/postgres.go
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"cac-forms/internal/common/config"

	"github.com/lib/pq"
)

// uniqueViolation is the SQLSTATE postgres reports for a UNIQUE constraint hit.
const uniqueViolation = "23505"

// PostgresClient wraps the SQL database connection
type PostgresClient struct {
	Name string
	DB   *sql.DB
}

// NewPostgres opens a pooled connection for one logical store.
func NewPostgres(name string, cfg config.PostgresConfig) (*PostgresClient, error) {
	db, err := sql.Open("postgres", cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres store %s: %w", name, err)
	}

	db.SetMaxOpenConns(cfg.MaxConnections)
	db.SetMaxIdleConns(cfg.MaxIdle)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)

	return &PostgresClient{Name: name, DB: db}, nil
}

// Ping tests the database connection
func (c *PostgresClient) Ping(ctx context.Context) error {
	return c.DB.PingContext(ctx)
}

// Close closes the database connection
func (c *PostgresClient) Close() error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}

// IsUniqueViolation reports whether err is a postgres unique-constraint failure.
// When constraintHint is non-empty the violated constraint name must contain it.
func IsUniqueViolation(err error, constraintHint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	if string(pqErr.Code) != uniqueViolation {
		return false
	}
	return constraintHint == "" || strings.Contains(pqErr.Constraint, constraintHint)
}
