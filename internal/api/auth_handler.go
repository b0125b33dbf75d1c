package api

import (
	"log/slog"
	"net/http"

	"github.com/meandevstar/atlas-backend/internal/api/shared"
	"github.com/meandevstar/atlas-backend/internal/domain"
	"github.com/meandevstar/atlas-backend/internal/service"
)

// AuthHandler adapts the account endpoints to the AuthService.
type AuthHandler struct {
	authService *service.AuthService
	logger      *slog.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(authService *service.AuthService, log *slog.Logger) *AuthHandler {
	if authService == nil {
		panic("authService cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &AuthHandler{
		authService: authService,
		logger:      log.With(slog.String("component", "auth_handler")),
	}
}

// SignUp handles POST /auth/signup.
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req SignUpRequest
	if err := shared.Bind(r, &req); err != nil {
		shared.RespondError(w, r, err)
		return
	}

	result, err := h.authService.SignUp(r.Context(), service.SignUpInput{
		Username:    req.Username,
		DisplayName: req.DisplayName,
		Email:       req.Email,
		Password:    req.Password,
	})
	if err != nil {
		shared.RespondError(w, r, err)
		return
	}

	shared.Respond(w, r, result)
}

// SignIn handles POST /auth/signin.
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req SignInRequest
	if err := shared.Bind(r, &req); err != nil {
		shared.RespondError(w, r, err)
		return
	}

	result, err := h.authService.SignIn(r.Context(), service.SignInInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		shared.RespondError(w, r, err)
		return
	}

	shared.Respond(w, r, result)
}

// CheckToken handles GET /auth/check-token. It requires the auth guard
// and reissues a fresh token for the authenticated identity.
func (h *AuthHandler) CheckToken(w http.ResponseWriter, r *http.Request) {
	identity := shared.IdentityFromContext(r.Context())
	if identity == nil {
		shared.RespondError(w, r, domain.Unauthorized("Please sign in"))
		return
	}

	result, err := h.authService.CheckToken(r.Context(), identity)
	if err != nil {
		shared.RespondError(w, r, err)
		return
	}

	shared.Respond(w, r, result)
}

// VerifyEmail handles POST /auth/verify-email.
func (h *AuthHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	var req VerifyEmailRequest
	if err := shared.Bind(r, &req); err != nil {
		shared.RespondError(w, r, err)
		return
	}

	result, err := h.authService.VerifyEmailToken(r.Context(), req.Token)
	if err != nil {
		shared.RespondError(w, r, err)
		return
	}

	shared.Respond(w, r, result)
}

// SendVerifyEmail handles POST /auth/send-verify-email.
func (h *AuthHandler) SendVerifyEmail(w http.ResponseWriter, r *http.Request) {
	var req SendVerifyEmailRequest
	if err := shared.Bind(r, &req); err != nil {
		shared.RespondError(w, r, err)
		return
	}

	result, err := h.authService.SendVerifyEmail(r.Context(), req.Email)
	if err != nil {
		shared.RespondError(w, r, err)
		return
	}

	shared.Respond(w, r, result)
}

// UpdateProfile handles PUT /auth/profile.
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req UpdateProfileRequest
	if err := shared.Bind(r, &req); err != nil {
		shared.RespondError(w, r, err)
		return
	}

	result, err := h.authService.UpdateProfile(r.Context(), service.UpdateProfileInput{
		OldEmail:    req.OldEmail,
		NewEmail:    req.NewEmail,
		DisplayName: req.DisplayName,
		OldPassword: req.OldPassword,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		shared.RespondError(w, r, err)
		return
	}

	shared.Respond(w, r, result)
}
