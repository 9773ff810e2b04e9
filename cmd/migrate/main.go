package main

import (
	"database/sql"
	"errors"
	"os"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"

	"fyyur/internal/config"
	"fyyur/internal/logging"
	"fyyur/migrations"
)

func main() {
	logger := logging.New(logging.Config{})

	if len(os.Args) != 2 || (os.Args[1] != "up" && os.Args[1] != "down") {
		logger.Fatal(errors.New("invalid arguments"), "usage: migrate [up|down]")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal(err, "failed to load configuration")
	}

	db, err := sql.Open("postgres", cfg.Database.URL)
	if err != nil {
		logger.Fatal(err, "failed to connect to database")
	}
	defer db.Close()

	// Create the postgres driver for migrations
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		logger.Fatal(err, "failed to create postgres driver")
	}

	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		logger.Fatal(err, "failed to open embedded migrations")
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		logger.Fatal(err, "failed to create migrate instance")
	}

	if os.Args[1] == "up" {
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			logger.Fatal(err, "failed to run migrations")
		}
		logger.Info("migrations applied successfully")
		return
	}

	if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		logger.Fatal(err, "failed to rollback migrations")
	}
	logger.Info("migrations rolled back successfully")
}
