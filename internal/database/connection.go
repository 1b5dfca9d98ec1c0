// Package database manages the PostgreSQL connection pool and schema
// migrations for the study store.
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

// Config holds database configuration
type Config struct {
	Host        string
	Port        int
	Database    string
	Username    string
	Password    string
	MaxConns    int32
	MinConns    int32
	MaxConnLife time.Duration
	MaxConnIdle time.Duration
	SSLMode     string
}

// URL renders the config as a connection URL for database/sql and migrate.
func (c Config) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Username, c.Password, c.Host, c.Port, c.Database, c.SSLMode)
}

// Pool wraps the pgx connection pool used for readiness checks and
// pool statistics alongside the study store's own connection.
type Pool struct {
	pgx *pgxpool.Pool
	log *logrus.Logger
}

// applyLimits copies the pool sizing from Config onto the parsed pgx
// config, falling back to the sizing the study store uses when unset.
func applyLimits(pc *pgxpool.Config, cfg Config) {
	pc.MaxConns = cfg.MaxConns
	if pc.MaxConns <= 0 {
		pc.MaxConns = 25
	}
	pc.MinConns = cfg.MinConns
	if pc.MinConns < 0 {
		pc.MinConns = 0
	}
	pc.MaxConnLifetime = cfg.MaxConnLife
	if pc.MaxConnLifetime <= 0 {
		pc.MaxConnLifetime = 5 * time.Minute
	}
	pc.MaxConnIdleTime = cfg.MaxConnIdle
	if pc.MaxConnIdleTime <= 0 {
		pc.MaxConnIdleTime = time.Minute
	}
}

// Open connects a pgx pool to the configured database and verifies it
// answers before returning.
func Open(ctx context.Context, cfg Config, logger *logrus.Logger) (*Pool, error) {
	pc, err := pgxpool.ParseConfig(cfg.URL())
	if err != nil {
		return nil, fmt.Errorf("parsing database config: %w", err)
	}
	applyLimits(pc, cfg)

	pgx, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}
	if err := pgx.Ping(ctx); err != nil {
		pgx.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"host":      cfg.Host,
		"database":  cfg.Database,
		"max_conns": pc.MaxConns,
	}).Info("Database pool ready")

	return &Pool{pgx: pgx, log: logger}, nil
}

// Ping reports whether the database still answers. Used as the health
// endpoint's readiness check.
func (p *Pool) Ping(ctx context.Context) error {
	return p.pgx.Ping(ctx)
}

// Stat returns connection pool statistics.
func (p *Pool) Stat() *pgxpool.Stat {
	return p.pgx.Stat()
}

// Close releases the pool.
func (p *Pool) Close() {
	if p.pgx != nil {
		p.pgx.Close()
		p.log.Info("Database pool closed")
	}
}
