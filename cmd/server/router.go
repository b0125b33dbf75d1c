package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	apimiddleware "github.com/meandevstar/atlas-backend/internal/api/middleware"
)

// setupRouter configures the application router: standard chi
// middleware, the request-scoped logger, and every route of the API.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(apimiddleware.RequestLogger(app.logger))

	authGuard := apimiddleware.NewAuthMiddleware(app.jwtService, app.userStore, app.logger)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", app.authHandler.SignUp)
		r.Post("/signin", app.authHandler.SignIn)
		r.Post("/verify-email", app.authHandler.VerifyEmail)
		r.Post("/send-verify-email", app.authHandler.SendVerifyEmail)

		r.Group(func(r chi.Router) {
			r.Use(authGuard.Authenticate)
			r.Get("/check-token", app.authHandler.CheckToken)
			r.Put("/profile", app.authHandler.UpdateProfile)
		})
	})

	r.Route("/trips", func(r chi.Router) {
		r.Get("/search-poi", app.tripHandler.SearchPoi)

		r.Group(func(r chi.Router) {
			r.Use(authGuard.Authenticate)
			r.Post("/", app.tripHandler.CreateTrip)
			r.Get("/mine", app.tripHandler.GetAllTrips)
			r.Get("/{id}", app.tripHandler.GetTrip)
			r.Put("/{id}", app.tripHandler.UpdateTrip)
			r.Delete("/{id}", app.tripHandler.DeleteTrip)
			r.Post("/poi-img-upload", app.tripHandler.UploadPoiImage)
			r.Delete("/poi-img-remove/{key}", app.tripHandler.RemovePoiImage)
		})
	})

	r.Route("/users", func(r chi.Router) {
		r.Get("/{search}", app.userHandler.GetUser)

		r.Group(func(r chi.Router) {
			r.Use(authGuard.Authenticate)
			r.Post("/follow", app.userHandler.FollowUser)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
