// Package migration applies the SQL files under migrations/ with
// golang-migrate.
package migration

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"
)

const (
	ActionUp      = "up"
	ActionDown    = "down"
	ActionDrop    = "drop"
	ActionVersion = "version"
)

// migrator is the part of *migrate.Migrate the actions use.
type migrator interface {
	Up() error
	Steps(n int) error
	Drop() error
	Force(version int) error
	Version() (uint, bool, error)
}

// Run opens the migration source in dir against databaseURL and performs
// action.
func Run(action, dir, databaseURL string, logger *zap.Logger) error {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("resolve path for %s: %w", dir, err)
	}

	m, err := migrate.New("file://"+filepath.ToSlash(absDir), databaseURL)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}
	defer m.Close()

	return apply(m, action, logger.Named("migration"))
}

func apply(m migrator, action string, log *zap.Logger) error {
	switch action {
	case ActionUp:
		if err := clearDirty(m, log); err != nil {
			return err
		}
		if err := m.Up(); err != nil {
			if errors.Is(err, migrate.ErrNoChange) {
				log.Info("database is up to date")
				return nil
			}
			return fmt.Errorf("apply migrations: %w", err)
		}
		logVersion(m, log)
		return nil

	case ActionDown:
		if err := m.Steps(-1); err != nil {
			if errors.Is(err, migrate.ErrNoChange) || errors.Is(err, migrate.ErrNilVersion) {
				log.Info("nothing to roll back")
				return nil
			}
			return fmt.Errorf("roll back migration: %w", err)
		}
		logVersion(m, log)
		return nil

	case ActionDrop:
		return m.Drop()

	case ActionVersion:
		logVersion(m, log)
		return nil

	default:
		return fmt.Errorf("unsupported action %q", action)
	}
}

// clearDirty forces a dirty version back to clean so the next Up can retry
// the failed file.
func clearDirty(m migrator, log *zap.Logger) error {
	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("read migration version: %w", err)
	}
	if !dirty {
		return nil
	}

	log.Warn("database in dirty state, forcing version", zap.Uint("version", version))
	if err := m.Force(int(version)); err != nil {
		return fmt.Errorf("force version %d: %w", version, err)
	}
	return nil
}

func logVersion(m migrator, log *zap.Logger) {
	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		log.Info("no migration applied")
		return
	}
	if err != nil {
		log.Warn("read migration version failed", zap.Error(err))
		return
	}
	log.Info("migration version", zap.Uint("version", version), zap.Bool("dirty", dirty))
}
