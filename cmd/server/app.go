package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/meandevstar/atlas-backend/internal/api"
	"github.com/meandevstar/atlas-backend/internal/config"
	"github.com/meandevstar/atlas-backend/internal/platform/awsbucket"
	"github.com/meandevstar/atlas-backend/internal/platform/awsmail"
	"github.com/meandevstar/atlas-backend/internal/platform/geosearch"
	"github.com/meandevstar/atlas-backend/internal/platform/postgres"
	"github.com/meandevstar/atlas-backend/internal/service"
	"github.com/meandevstar/atlas-backend/internal/service/auth"
	"github.com/meandevstar/atlas-backend/internal/store"
)

// application holds the wired dependency graph of the server. Every
// collaborator is constructed exactly once here and injected downward;
// no package-level client instances exist anywhere.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	jwtService auth.JWTService
	userStore  store.UserStore

	authHandler *api.AuthHandler
	tripHandler *api.TripHandler
	userHandler *api.UserHandler
}

// newApplication wires stores, collaborators, services and handlers
// from the loaded configuration and an open database connection.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}
	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)

	userStore := postgres.NewUserStore(db, hasher, logger)
	tripStore := postgres.NewTripStore(db, logger)

	bucket, err := awsbucket.New(cfg.AWS, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create object store: %w", err)
	}
	mailer, err := awsmail.New(cfg.AWS, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create mailer: %w", err)
	}
	poiIndex, err := geosearch.New(cfg.Search, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create poi index: %w", err)
	}

	authService := service.NewAuthService(
		userStore, jwtService, hasher, mailer, cfg.Server.FrontURL, logger)
	tripService := service.NewTripService(tripStore, bucket, logger)
	userService := service.NewUserService(userStore, logger)
	poiService := service.NewPoiService(poiIndex, logger)

	app := &application{
		config:      cfg,
		logger:      logger,
		db:          db,
		jwtService:  jwtService,
		userStore:   userStore,
		authHandler: api.NewAuthHandler(authService, logger),
		tripHandler: api.NewTripHandler(tripService, poiService, logger),
		userHandler: api.NewUserHandler(userService, logger),
	}
	return app, nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database", "error", err)
		}
	}
}
