// Package middleware provides the HTTP middleware of the API, most
// importantly the authentication guard.
package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/meandevstar/atlas-backend/internal/api/shared"
	"github.com/meandevstar/atlas-backend/internal/domain"
	"github.com/meandevstar/atlas-backend/internal/platform/logger"
	"github.com/meandevstar/atlas-backend/internal/service/auth"
	"github.com/meandevstar/atlas-backend/internal/store"
)

// AuthMiddleware is the authentication guard: it resolves a bearer
// token into the account it was issued for and attaches that identity
// to the request context. It only ever reads the stored identity.
type AuthMiddleware struct {
	jwtService auth.JWTService
	users      store.UserStore
	logger     *slog.Logger
}

// NewAuthMiddleware creates an AuthMiddleware.
func NewAuthMiddleware(jwtService auth.JWTService, users store.UserStore, log *slog.Logger) *AuthMiddleware {
	if jwtService == nil {
		panic("jwtService cannot be nil")
	}
	if users == nil {
		panic("users cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &AuthMiddleware{
		jwtService: jwtService,
		users:      users,
		logger:     log.With(slog.String("component", "auth_middleware")),
	}
}

// Authenticate guards a route. Three outcomes: no credential rejects
// with "Please sign in"; a credential that is malformed, expired, or
// references a missing account rejects with "Session expired"; a valid
// credential attaches the identity and lets the pipeline continue.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContextOrDefault(r.Context(), m.logger)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			shared.RespondError(w, r, domain.Unauthorized("Please sign in"))
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			shared.RespondError(w, r, domain.Unauthorized("Session expired"))
			return
		}

		claims, err := m.jwtService.ValidateToken(r.Context(), parts[1])
		if err != nil {
			log.Debug("token rejected", "error", err)
			shared.RespondError(w, r, domain.Unauthorized("Session expired"))
			return
		}

		identity, err := m.users.GetByID(r.Context(), claims.UserID)
		if err != nil {
			log.Debug("token references unknown account",
				"user_id", claims.UserID,
				"error", err)
			shared.RespondError(w, r, domain.Unauthorized("Session expired"))
			return
		}

		ctx := shared.WithIdentity(r.Context(), identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
