package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/sirupsen/logrus"
)

// Migrator applies the studies schema migrations from a directory of
// numbered up/down SQL files before the store opens.
type Migrator struct {
	m   *migrate.Migrate
	log *logrus.Logger
}

// NewMigrator builds a migrator reading migration files from dir and
// applying them to the database at databaseURL.
func NewMigrator(databaseURL, dir string, logger *logrus.Logger) (*Migrator, error) {
	m, err := migrate.New("file://"+dir, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("creating migrator: %w", err)
	}
	return &Migrator{m: m, log: logger}, nil
}

// Up applies every pending migration. A schema already at the latest
// version is not an error.
func (mg *Migrator) Up(ctx context.Context) error {
	mg.log.Info("Applying studies schema migrations")

	if err := mg.m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			mg.log.Info("Studies schema already up to date")
			return nil
		}
		return fmt.Errorf("applying migrations: %w", err)
	}
	mg.logVersion("applied")
	return nil
}

// Down rolls back the most recent migration.
func (mg *Migrator) Down(ctx context.Context) error {
	mg.log.Info("Rolling back one studies schema migration")

	if err := mg.m.Steps(-1); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			mg.log.Info("No migration to roll back")
			return nil
		}
		return fmt.Errorf("rolling back migration: %w", err)
	}
	mg.logVersion("rolled back")
	return nil
}

// Version returns the current schema version and whether it is dirty.
func (mg *Migrator) Version() (uint, bool, error) {
	return mg.m.Version()
}

func (mg *Migrator) logVersion(action string) {
	version, dirty, err := mg.m.Version()
	if err != nil {
		mg.log.WithError(err).Warn("Could not read schema version")
		return
	}
	mg.log.WithFields(logrus.Fields{
		"version": version,
		"dirty":   dirty,
	}).Info("Studies schema migration " + action)
}

// Close releases the migrator's source and database handles.
func (mg *Migrator) Close() error {
	srcErr, dbErr := mg.m.Close()
	if srcErr != nil {
		return fmt.Errorf("closing migration source: %w", srcErr)
	}
	if dbErr != nil {
		return fmt.Errorf("closing migration database: %w", dbErr)
	}
	return nil
}
