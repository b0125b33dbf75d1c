package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/meandevstar/atlas-backend/internal/domain"
	"github.com/meandevstar/atlas-backend/internal/platform/logger"
	"github.com/meandevstar/atlas-backend/internal/service/auth"
	"github.com/meandevstar/atlas-backend/internal/store"
)

// SignUpInput is the normalized payload for account creation.
type SignUpInput struct {
	Username    string
	DisplayName string
	Email       string
	Password    string
}

// SignInInput is the normalized payload for authentication.
type SignInInput struct {
	Email    string
	Password string
}

// UpdateProfileInput is the normalized payload for profile updates. The
// password change is applied only when OldPassword is set, and only
// after it has been checked against the stored digest.
type UpdateProfileInput struct {
	OldEmail    string
	NewEmail    string
	DisplayName string
	OldPassword string
	NewPassword string
}

// AuthResult is returned by authentication operations. Token is empty
// until the account's email address has been verified.
type AuthResult struct {
	Token string             `json:"token,omitempty"`
	User  domain.UserProfile `json:"user"`
}

// MessageResult carries a human-readable outcome with no data payload.
type MessageResult struct {
	Message string `json:"message"`
}

// AuthService implements the account domain module: sign-up, sign-in,
// session refresh, email verification, and profile updates.
type AuthService struct {
	users     store.UserStore
	jwt       auth.JWTService
	passwords auth.PasswordHasher
	mailer    Mailer
	frontURL  string
	logger    *slog.Logger
}

// NewAuthService creates an AuthService with its collaborators.
func NewAuthService(
	users store.UserStore,
	jwt auth.JWTService,
	passwords auth.PasswordHasher,
	mailer Mailer,
	frontURL string,
	log *slog.Logger,
) *AuthService {
	if users == nil {
		panic("users cannot be nil")
	}
	if jwt == nil {
		panic("jwt cannot be nil")
	}
	if passwords == nil {
		panic("passwords cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &AuthService{
		users:     users,
		jwt:       jwt,
		passwords: passwords,
		mailer:    mailer,
		frontURL:  frontURL,
		logger:    log.With(slog.String("component", "auth_service")),
	}
}

// SignUp registers a new account. The email must not already be on file.
// A verification email is sent; no token is issued until the address has
// been verified.
func (s *AuthService) SignUp(ctx context.Context, input SignUpInput) (*AuthResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	count, err := s.users.CountByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, domain.BadRequest("Email already exists")
	}

	user, err := domain.NewUser(input.Username, input.DisplayName, input.Email, input.Password)
	if err != nil {
		return nil, domain.BadRequest(err.Error())
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			return nil, domain.BadRequest("Email already exists")
		}
		if errors.Is(err, store.ErrUsernameExists) {
			return nil, domain.BadRequest("Username already exists")
		}
		return nil, err
	}

	if _, err := s.sendVerifyEmail(ctx, user); err != nil {
		// The account exists; a failed delivery should not orphan it.
		// The client can request a fresh email later.
		log.Warn("failed to send verification email",
			"error", err,
			"user_id", user.ID)
	}

	return &AuthResult{User: domain.PublicUser(user)}, nil
}

// SignIn authenticates an account by email and password. A token is
// issued only when the account's email has been verified.
func (s *AuthService) SignIn(ctx context.Context, input SignInInput) (*AuthResult, error) {
	user, err := s.users.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, domain.Unauthorized("No user with that email registered")
		}
		return nil, err
	}

	if err := s.passwords.Compare(user.HashedPassword, input.Password); err != nil {
		return nil, domain.Unauthorized("Incorrect password")
	}

	result := &AuthResult{User: domain.PublicUser(user)}
	if user.EmailVerified {
		token, err := s.jwt.GenerateToken(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		result.Token = token
	}

	return result, nil
}

// CheckToken reissues a fresh token for the already-authenticated
// identity. Used by clients to refresh a session.
func (s *AuthService) CheckToken(ctx context.Context, identity *domain.User) (*AuthResult, error) {
	token, err := s.jwt.GenerateToken(ctx, identity.ID)
	if err != nil {
		return nil, err
	}

	return &AuthResult{
		Token: token,
		User:  domain.PublicUser(identity),
	}, nil
}

// VerifyEmailToken validates an email-verification token, marks the
// account verified, and signs the user in.
func (s *AuthService) VerifyEmailToken(ctx context.Context, tokenString string) (*AuthResult, error) {
	claims, err := s.jwt.ValidateEmailToken(ctx, tokenString)
	if err != nil {
		return nil, domain.BadRequest("Invalid or expired verification token")
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, domain.BadRequest("Invalid or expired verification token")
		}
		return nil, err
	}

	user.EmailVerified = true
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.jwt.GenerateToken(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &AuthResult{
		Token: token,
		User:  domain.PublicUser(user),
	}, nil
}

// SendVerifyEmail delivers a fresh verification email to the account
// registered under the given address.
func (s *AuthService) SendVerifyEmail(ctx context.Context, email string) (*MessageResult, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, domain.NotFound("Email not found")
		}
		return nil, err
	}

	return s.sendVerifyEmail(ctx, user)
}

func (s *AuthService) sendVerifyEmail(ctx context.Context, user *domain.User) (*MessageResult, error) {
	if s.mailer == nil {
		return nil, fmt.Errorf("mailer is not configured")
	}

	emailToken, err := s.jwt.GenerateEmailToken(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	body := fmt.Sprintf(
		`Please verify your email by clicking following <a href="%s/email-validation?token=%s">link</a>`,
		s.frontURL, emailToken,
	)
	if err := s.mailer.SendEmail(ctx, []string{user.Email}, "Verify your email", body); err != nil {
		return nil, err
	}

	return &MessageResult{Message: "Email sent successfully"}, nil
}

// UpdateProfile changes an account's email, display name and optionally
// its password. A password change requires the old password to check out.
func (s *AuthService) UpdateProfile(ctx context.Context, input UpdateProfileInput) (*AuthResult, error) {
	oldEmail := domain.NormalizeEmail(input.OldEmail)
	newEmail := domain.NormalizeEmail(input.NewEmail)

	user, err := s.users.GetByEmail(ctx, oldEmail)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, domain.Unauthorized("No user with that email registered")
		}
		return nil, err
	}

	if input.OldPassword != "" {
		if err := s.passwords.Compare(user.HashedPassword, input.OldPassword); err != nil {
			return nil, domain.Unauthorized("Password is not correct!")
		}
		user.Password = input.NewPassword
	}

	user.Email = newEmail
	if input.DisplayName != "" {
		user.DisplayName = input.DisplayName
	}

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			return nil, domain.BadRequest("Email already exists")
		}
		return nil, err
	}

	token, err := s.jwt.GenerateToken(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &AuthResult{
		Token: token,
		User:  domain.PublicUser(user),
	}, nil
}
