package api

import (
	"log/slog"
	"net/http"

	"github.com/meandevstar/atlas-backend/internal/api/shared"
	"github.com/meandevstar/atlas-backend/internal/domain"
	"github.com/meandevstar/atlas-backend/internal/service"
)

// UserHandler adapts the user endpoints to the UserService.
type UserHandler struct {
	userService *service.UserService
	logger      *slog.Logger
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(userService *service.UserService, log *slog.Logger) *UserHandler {
	if userService == nil {
		panic("userService cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &UserHandler{
		userService: userService,
		logger:      log.With(slog.String("component", "user_handler")),
	}
}

// GetUser handles GET /users/{search}: lookup by ID or username.
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	var req GetUserRequest
	if err := shared.Bind(r, &req); err != nil {
		shared.RespondError(w, r, err)
		return
	}

	result, err := h.userService.GetUser(r.Context(), req.Search)
	if err != nil {
		shared.RespondError(w, r, err)
		return
	}

	shared.Respond(w, r, result)
}

// FollowUser handles POST /users/follow: the idempotent follow toggle.
func (h *UserHandler) FollowUser(w http.ResponseWriter, r *http.Request) {
	identity := shared.IdentityFromContext(r.Context())
	if identity == nil {
		shared.RespondError(w, r, domain.Unauthorized("Please sign in"))
		return
	}

	var req FollowUserRequest
	if err := shared.Bind(r, &req); err != nil {
		shared.RespondError(w, r, err)
		return
	}

	result, err := h.userService.FollowUser(r.Context(), req.Username, identity)
	if err != nil {
		shared.RespondError(w, r, err)
		return
	}

	shared.Respond(w, r, result)
}
