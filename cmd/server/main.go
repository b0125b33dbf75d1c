// Command server runs the atlas trip planning API.
package main

import (
	"fmt"
	"os"

	"github.com/meandevstar/atlas-backend/internal/config"
	"github.com/meandevstar/atlas-backend/internal/platform/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	db, err := setupDatabase(cfg, log)
	if err != nil {
		return err
	}

	if err := runMigrations(db, log); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			log.Error("failed to close database", "error", closeErr)
		}
		return err
	}

	app, err := newApplication(cfg, log, db)
	if err != nil {
		if closeErr := db.Close(); closeErr != nil {
			log.Error("failed to close database", "error", closeErr)
		}
		return err
	}
	defer app.cleanup()

	return app.startServer(app.setupRouter())
}
