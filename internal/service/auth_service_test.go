package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/meandevstar/atlas-backend/internal/config"
	"github.com/meandevstar/atlas-backend/internal/domain"
	"github.com/meandevstar/atlas-backend/internal/service"
	"github.com/meandevstar/atlas-backend/internal/service/auth"
)

const testFrontURL = "https://app.example.com"

func newTestJWT(t *testing.T) auth.JWTService {
	t.Helper()
	svc, err := auth.NewJWTService(config.AuthConfig{
		JWTSecret:                 "test-secret-key-thats-long-enough-for-hmac",
		TokenLifetimeMinutes:      60,
		EmailTokenLifetimeMinutes: 1440,
	})
	require.NoError(t, err)
	return svc
}

func newAuthFixture(t *testing.T) (*service.AuthService, *mockUserStore, *mockMailer) {
	t.Helper()
	users := newMockUserStore()
	mailer := &mockMailer{}
	hasher := auth.NewBcryptHasher(bcrypt.MinCost)
	svc := service.NewAuthService(users, newTestJWT(t), hasher, mailer, testFrontURL, nil)
	return svc, users, mailer
}

func signUpInput() service.SignUpInput {
	return service.SignUpInput{
		Username:    "wanderer",
		DisplayName: "Wanderer",
		Email:       "traveler@example.com",
		Password:    "secret123",
	}
}

func TestSignUp(t *testing.T) {
	t.Parallel()

	t.Run("creates account and sends verification email", func(t *testing.T) {
		t.Parallel()
		svc, users, mailer := newAuthFixture(t)

		result, err := svc.SignUp(context.Background(), signUpInput())
		require.NoError(t, err)

		assert.Empty(t, result.Token, "no token before email verification")
		assert.Equal(t, "traveler@example.com", result.User.Email)
		assert.False(t, result.User.EmailVerified)

		stored, err := users.GetByEmail(context.Background(), "traveler@example.com")
		require.NoError(t, err)
		assert.Empty(t, stored.Password, "plaintext never persisted")
		assert.NotEmpty(t, stored.HashedPassword)

		require.Len(t, mailer.sent, 1)
		assert.Equal(t, []string{"traveler@example.com"}, mailer.sent[0].recipients)
		assert.Equal(t, "Verify your email", mailer.sent[0].subject)
		assert.Contains(t, mailer.sent[0].htmlBody, testFrontURL+"/email-validation?token=")
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		t.Parallel()
		svc, _, _ := newAuthFixture(t)

		_, err := svc.SignUp(context.Background(), signUpInput())
		require.NoError(t, err)

		_, err = svc.SignUp(context.Background(), signUpInput())
		require.Error(t, err)
		domainErr := domain.AsError(err)
		assert.Equal(t, 400, domainErr.Status)
		assert.Equal(t, "Email already exists", domainErr.Message)
	})

	t.Run("succeeds when email delivery fails", func(t *testing.T) {
		t.Parallel()
		svc, users, mailer := newAuthFixture(t)
		mailer.failSend = errors.New("ses unavailable")

		result, err := svc.SignUp(context.Background(), signUpInput())
		require.NoError(t, err, "failed delivery must not orphan the account")
		assert.NotEqual(t, uuid.Nil, result.User.ID)

		_, err = users.GetByEmail(context.Background(), "traveler@example.com")
		assert.NoError(t, err)
	})
}

func TestSignIn(t *testing.T) {
	t.Parallel()

	t.Run("unknown email", func(t *testing.T) {
		t.Parallel()
		svc, _, _ := newAuthFixture(t)

		_, err := svc.SignIn(context.Background(), service.SignInInput{
			Email:    "nobody@example.com",
			Password: "whatever",
		})
		require.Error(t, err)
		domainErr := domain.AsError(err)
		assert.Equal(t, 401, domainErr.Status)
		assert.Equal(t, "No user with that email registered", domainErr.Message)
	})

	t.Run("wrong password", func(t *testing.T) {
		t.Parallel()
		svc, _, _ := newAuthFixture(t)
		_, err := svc.SignUp(context.Background(), signUpInput())
		require.NoError(t, err)

		_, err = svc.SignIn(context.Background(), service.SignInInput{
			Email:    "traveler@example.com",
			Password: "wrong",
		})
		require.Error(t, err)
		domainErr := domain.AsError(err)
		assert.Equal(t, 401, domainErr.Status)
		assert.Equal(t, "Incorrect password", domainErr.Message)
	})

	t.Run("unverified account gets no token", func(t *testing.T) {
		t.Parallel()
		svc, _, _ := newAuthFixture(t)
		_, err := svc.SignUp(context.Background(), signUpInput())
		require.NoError(t, err)

		result, err := svc.SignIn(context.Background(), service.SignInInput{
			Email:    "traveler@example.com",
			Password: "secret123",
		})
		require.NoError(t, err)
		assert.Empty(t, result.Token)
		assert.Equal(t, "traveler@example.com", result.User.Email)
	})

	t.Run("verified account gets token", func(t *testing.T) {
		t.Parallel()
		svc, users, _ := newAuthFixture(t)
		signed, err := svc.SignUp(context.Background(), signUpInput())
		require.NoError(t, err)

		user, err := users.GetByID(context.Background(), signed.User.ID)
		require.NoError(t, err)
		user.EmailVerified = true
		require.NoError(t, users.Update(context.Background(), user))

		result, err := svc.SignIn(context.Background(), service.SignInInput{
			Email:    "traveler@example.com",
			Password: "secret123",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, result.Token)
	})
}

func TestVerifyEmailToken(t *testing.T) {
	t.Parallel()

	t.Run("verifies account and signs in", func(t *testing.T) {
		t.Parallel()
		svc, users, mailer := newAuthFixture(t)
		signed, err := svc.SignUp(context.Background(), signUpInput())
		require.NoError(t, err)

		// Extract the token from the delivered link.
		require.Len(t, mailer.sent, 1)
		body := mailer.sent[0].htmlBody
		marker := "?token="
		idx := strings.Index(body, marker)
		require.Greater(t, idx, 0)
		token := body[idx+len(marker):]
		token = token[:strings.Index(token, `"`)]

		result, err := svc.VerifyEmailToken(context.Background(), token)
		require.NoError(t, err)
		assert.NotEmpty(t, result.Token)
		assert.True(t, result.User.EmailVerified)

		stored, err := users.GetByID(context.Background(), signed.User.ID)
		require.NoError(t, err)
		assert.True(t, stored.EmailVerified)
	})

	t.Run("rejects garbage token", func(t *testing.T) {
		t.Parallel()
		svc, _, _ := newAuthFixture(t)

		_, err := svc.VerifyEmailToken(context.Background(), "garbage")
		require.Error(t, err)
		domainErr := domain.AsError(err)
		assert.Equal(t, 400, domainErr.Status)
		assert.Equal(t, "Invalid or expired verification token", domainErr.Message)
	})

	t.Run("rejects access token as verification token", func(t *testing.T) {
		t.Parallel()
		svc, _, _ := newAuthFixture(t)
		jwtSvc := newTestJWT(t)
		accessToken, err := jwtSvc.GenerateToken(context.Background(), uuid.New())
		require.NoError(t, err)

		_, err = svc.VerifyEmailToken(context.Background(), accessToken)
		require.Error(t, err)
		assert.Equal(t, "Invalid or expired verification token", domain.AsError(err).Message)
	})
}

func TestSendVerifyEmail(t *testing.T) {
	t.Parallel()

	t.Run("unknown email", func(t *testing.T) {
		t.Parallel()
		svc, _, _ := newAuthFixture(t)

		_, err := svc.SendVerifyEmail(context.Background(), "nobody@example.com")
		require.Error(t, err)
		domainErr := domain.AsError(err)
		assert.Equal(t, 404, domainErr.Status)
		assert.Equal(t, "Email not found", domainErr.Message)
	})

	t.Run("delivers a fresh email", func(t *testing.T) {
		t.Parallel()
		svc, _, mailer := newAuthFixture(t)
		_, err := svc.SignUp(context.Background(), signUpInput())
		require.NoError(t, err)

		result, err := svc.SendVerifyEmail(context.Background(), "traveler@example.com")
		require.NoError(t, err)
		assert.Equal(t, "Email sent successfully", result.Message)
		assert.Len(t, mailer.sent, 2)
	})
}

func TestCheckToken(t *testing.T) {
	t.Parallel()

	svc, _, _ := newAuthFixture(t)
	identity, err := domain.NewUser("wanderer", "Wanderer", "a@b.com", "pw")
	require.NoError(t, err)

	result, err := svc.CheckToken(context.Background(), identity)
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, identity.ID, result.User.ID)
}

func TestUpdateProfile(t *testing.T) {
	t.Parallel()

	t.Run("wrong old password", func(t *testing.T) {
		t.Parallel()
		svc, _, _ := newAuthFixture(t)
		_, err := svc.SignUp(context.Background(), signUpInput())
		require.NoError(t, err)

		_, err = svc.UpdateProfile(context.Background(), service.UpdateProfileInput{
			OldEmail:    "traveler@example.com",
			NewEmail:    "traveler@example.com",
			OldPassword: "wrong",
			NewPassword: "newpass",
		})
		require.Error(t, err)
		domainErr := domain.AsError(err)
		assert.Equal(t, 401, domainErr.Status)
		assert.Equal(t, "Password is not correct!", domainErr.Message)
	})

	t.Run("changes email and password", func(t *testing.T) {
		t.Parallel()
		svc, _, _ := newAuthFixture(t)
		_, err := svc.SignUp(context.Background(), signUpInput())
		require.NoError(t, err)

		result, err := svc.UpdateProfile(context.Background(), service.UpdateProfileInput{
			OldEmail:    "Traveler@Example.com",
			NewEmail:    "New@Example.com",
			DisplayName: "Globetrotter",
			OldPassword: "secret123",
			NewPassword: "newsecret",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, result.Token)
		assert.Equal(t, "new@example.com", result.User.Email, "emails are normalized")
		assert.Equal(t, "Globetrotter", result.User.DisplayName)

		// Old password no longer works, the new one does.
		_, err = svc.SignIn(context.Background(), service.SignInInput{
			Email:    "new@example.com",
			Password: "secret123",
		})
		assert.Error(t, err)

		_, err = svc.SignIn(context.Background(), service.SignInInput{
			Email:    "new@example.com",
			Password: "newsecret",
		})
		assert.NoError(t, err)
	})

	t.Run("keeps password without old password", func(t *testing.T) {
		t.Parallel()
		svc, _, _ := newAuthFixture(t)
		_, err := svc.SignUp(context.Background(), signUpInput())
		require.NoError(t, err)

		_, err = svc.UpdateProfile(context.Background(), service.UpdateProfileInput{
			OldEmail: "traveler@example.com",
			NewEmail: "traveler@example.com",
		})
		require.NoError(t, err)

		_, err = svc.SignIn(context.Background(), service.SignInInput{
			Email:    "traveler@example.com",
			Password: "secret123",
		})
		assert.NoError(t, err)
	})
}
