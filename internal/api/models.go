package api

import (
	"github.com/meandevstar/atlas-backend/internal/domain"
)

// Request payloads for every endpoint. The validate tags are the
// declarative per-endpoint schemas; shared.Bind enforces them before
// any domain operation runs.

// SignUpRequest is the payload for POST /auth/signup.
type SignUpRequest struct {
	Username    string `json:"username"    validate:"required"`
	DisplayName string `json:"displayName" validate:"required"`
	Email       string `json:"email"       validate:"required,email"`
	Password    string `json:"password"    validate:"required"`
}

// Normalize canonicalizes the email before validation.
func (r *SignUpRequest) Normalize() {
	r.Email = domain.NormalizeEmail(r.Email)
}

// SignInRequest is the payload for POST /auth/signin.
type SignInRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Normalize canonicalizes the email before validation.
func (r *SignInRequest) Normalize() {
	r.Email = domain.NormalizeEmail(r.Email)
}

// VerifyEmailRequest is the payload for POST /auth/verify-email.
type VerifyEmailRequest struct {
	Token string `json:"token" validate:"required"`
}

// SendVerifyEmailRequest is the payload for POST /auth/send-verify-email.
type SendVerifyEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// Normalize canonicalizes the email before validation.
func (r *SendVerifyEmailRequest) Normalize() {
	r.Email = domain.NormalizeEmail(r.Email)
}

// UpdateProfileRequest is the payload for PUT /auth/profile. A password
// change is requested by providing both old and new passwords.
type UpdateProfileRequest struct {
	OldEmail    string `json:"oldEmail"    validate:"required,email"`
	NewEmail    string `json:"newEmail"    validate:"required,email"`
	DisplayName string `json:"displayName"`
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword" validate:"required_with=OldPassword"`
}

// Normalize canonicalizes both emails before validation.
func (r *UpdateProfileRequest) Normalize() {
	r.OldEmail = domain.NormalizeEmail(r.OldEmail)
	r.NewEmail = domain.NormalizeEmail(r.NewEmail)
}

// CreateTripRequest is the payload for POST /trips.
type CreateTripRequest struct {
	TripName  string            `json:"tripName" validate:"required"`
	Data      []domain.Waypoint `json:"data"     validate:"required"`
	Published bool              `json:"published"`
}

// UpdateTripRequest is the payload for PUT /trips/{id}. Absent fields
// leave the stored value untouched.
type UpdateTripRequest struct {
	TripName  *string            `json:"tripName"`
	Data      *[]domain.Waypoint `json:"data"`
	Published *bool              `json:"published"`
}

// FollowUserRequest is the payload for POST /users/follow.
type FollowUserRequest struct {
	Username string `json:"username" validate:"required"`
}

// GetUserRequest binds the {search} path parameter of GET /users/{search}.
type GetUserRequest struct {
	Search string `json:"search" validate:"required"`
}

// SearchPoiRequest binds the poiName query parameter of
// GET /trips/search-poi.
type SearchPoiRequest struct {
	PoiName string `json:"poiName" validate:"required"`
}
