package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/meandevstar/atlas-backend/internal/domain"
)

// UserStore defines the interface for account persistence.
type UserStore interface {
	// Create saves a new user. The plaintext Password on the user is
	// hashed before storage and never written anywhere.
	// Returns ErrEmailExists or ErrUsernameExists on unique violations,
	// or a validation error wrapped in ErrInvalidEntity.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by ID. Returns ErrUserNotFound if absent.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail retrieves a user by normalized email address.
	// Returns ErrUserNotFound if absent.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// GetByUsername retrieves a user by username.
	// Returns ErrUserNotFound if absent.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// CountByEmail reports how many accounts carry the given email.
	// Used for existence checks without loading the record.
	CountByEmail(ctx context.Context, email string) (int, error)

	// Update persists changes to an existing user. If a plaintext
	// Password is set it is hashed and replaces the stored digest.
	// Returns ErrUserNotFound if the user does not exist.
	Update(ctx context.Context, user *domain.User) error

	// GetFollowerRefs resolves follower IDs into profile summaries.
	// Unknown IDs are silently skipped.
	GetFollowerRefs(ctx context.Context, ids []uuid.UUID) ([]domain.FollowerRef, error)
}
