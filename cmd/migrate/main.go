package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	pgstore "github.com/dwarvesf/swappy/internal/store/postgres"
	"github.com/dwarvesf/swappy/internal/utils/config"
	"github.com/dwarvesf/swappy/internal/utils/logger"
)

func newMigrate(db *gorm.DB, dir string) (*migrate.Migrate, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get database connection")
	}

	driver, err := postgres.WithInstance(sqlDB, &postgres.Config{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create postgres driver")
	}

	m, err := migrate.NewWithDatabaseInstance(fmt.Sprintf("file://%s", dir), "postgres", driver)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create migrate instance")
	}
	return m, nil
}

// runMigrations applies every pending migration, or rolls back steps
// migrations when steps is positive and down is set.
func runMigrations(m *migrate.Migrate, down bool, steps int) error {
	var err error
	switch {
	case down && steps > 0:
		err = m.Steps(-steps)
	case down:
		err = m.Down()
	default:
		err = m.Up()
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return errors.Wrap(err, "migration failed")
	}
	return nil
}

func main() {
	dir := flag.String("dir", filepath.Join("migrations", "schema"), "migration directory")
	down := flag.Bool("down", false, "roll back instead of applying")
	steps := flag.Int("steps", 0, "number of migrations to roll back, all when 0")
	flag.Parse()

	appConfig := config.New()
	logger := logger.New(appConfig.Environment)

	db := pgstore.New(appConfig, logger)

	m, err := newMigrate(db, *dir)
	if err != nil {
		logger.Error("[main][newMigrate]", map[string]string{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	if err := runMigrations(m, *down, *steps); err != nil {
		logger.Error("[main][runMigrations] failed to run migrations", map[string]string{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		logger.Error("[main][Version]", map[string]string{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	logger.Info("Migrations completed successfully", map[string]string{
		"version": fmt.Sprint(version),
		"dirty":   fmt.Sprint(dirty),
	})
}
