package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/meandevstar/atlas-backend/internal/domain"
	"github.com/meandevstar/atlas-backend/internal/platform/logger"
	"github.com/meandevstar/atlas-backend/internal/service/auth"
	"github.com/meandevstar/atlas-backend/internal/store"
)

// UserStore implements store.UserStore using PostgreSQL. Password
// hashing happens here so plaintext never crosses the store boundary.
type UserStore struct {
	db     store.DBTX
	hasher auth.PasswordHasher
	logger *slog.Logger
}

var _ store.UserStore = (*UserStore)(nil)

// NewUserStore creates a PostgreSQL implementation of store.UserStore.
func NewUserStore(db store.DBTX, hasher auth.PasswordHasher, log *slog.Logger) *UserStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if hasher == nil {
		panic("hasher cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &UserStore{
		db:     db,
		hasher: hasher,
		logger: log.With(slog.String("component", "user_store")),
	}
}

const userColumns = "id, username, display_name, email, hashed_password, email_verified, followers, created_at, updated_at"

// Create implements store.UserStore.Create.
func (s *UserStore) Create(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(); err != nil {
		log.Warn("user validation failed during create",
			"error", err,
			"user_id", user.ID)
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	if user.Password != "" {
		digest, err := s.hasher.Hash(user.Password)
		if err != nil {
			log.Error("failed to hash password", "error", err, "user_id", user.ID)
			return fmt.Errorf("failed to hash password: %w", err)
		}
		user.HashedPassword = digest
		user.Password = ""
	}

	followers, err := json.Marshal(followerIDs(user))
	if err != nil {
		return fmt.Errorf("failed to encode followers: %w", err)
	}

	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err = s.db.ExecContext(ctx, query,
		user.ID,
		user.Username,
		user.DisplayName,
		user.Email,
		user.HashedPassword,
		user.EmailVerified,
		followers,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if constraint := uniqueViolation(err); constraint != "" {
			log.Debug("unique violation during user creation",
				"constraint", constraint,
				"user_id", user.ID)
			if strings.Contains(constraint, "username") {
				return store.ErrUsernameExists
			}
			return store.ErrEmailExists
		}
		log.Error("failed to create user", "error", err, "user_id", user.ID)
		return err
	}

	log.Info("user created", "user_id", user.ID)
	return nil
}

// GetByID implements store.UserStore.GetByID.
func (s *UserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return s.getOne(ctx, query, id)
}

// GetByEmail implements store.UserStore.GetByEmail.
func (s *UserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return s.getOne(ctx, query, domain.NormalizeEmail(email))
}

// GetByUsername implements store.UserStore.GetByUsername.
func (s *UserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	return s.getOne(ctx, query, username)
}

// CountByEmail implements store.UserStore.CountByEmail.
func (s *UserStore) CountByEmail(ctx context.Context, email string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM users WHERE email = $1`
	err := s.db.QueryRowContext(ctx, query, domain.NormalizeEmail(email)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count users by email: %w", err)
	}
	return count, nil
}

// Update implements store.UserStore.Update.
func (s *UserStore) Update(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if user.Password != "" {
		digest, err := s.hasher.Hash(user.Password)
		if err != nil {
			log.Error("failed to hash password", "error", err, "user_id", user.ID)
			return fmt.Errorf("failed to hash password: %w", err)
		}
		user.HashedPassword = digest
		user.Password = ""
	}

	if err := user.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	followers, err := json.Marshal(followerIDs(user))
	if err != nil {
		return fmt.Errorf("failed to encode followers: %w", err)
	}

	user.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE users
		SET username = $2, display_name = $3, email = $4, hashed_password = $5,
		    email_verified = $6, followers = $7, updated_at = $8
		WHERE id = $1
	`
	result, err := s.db.ExecContext(ctx, query,
		user.ID,
		user.Username,
		user.DisplayName,
		user.Email,
		user.HashedPassword,
		user.EmailVerified,
		followers,
		user.UpdatedAt,
	)
	if err != nil {
		if constraint := uniqueViolation(err); constraint != "" {
			if strings.Contains(constraint, "username") {
				return store.ErrUsernameExists
			}
			return store.ErrEmailExists
		}
		log.Error("failed to update user", "error", err, "user_id", user.ID)
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if rows == 0 {
		return store.ErrUserNotFound
	}

	log.Debug("user updated", "user_id", user.ID)
	return nil
}

// GetFollowerRefs implements store.UserStore.GetFollowerRefs.
func (s *UserStore) GetFollowerRefs(ctx context.Context, ids []uuid.UUID) ([]domain.FollowerRef, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}

	query := `
		SELECT id, username, display_name, email
		FROM users
		WHERE id IN (` + strings.Join(placeholders, ", ") + `)
	`
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query followers: %w", err)
	}
	defer rows.Close()

	var refs []domain.FollowerRef
	for rows.Next() {
		var ref domain.FollowerRef
		if err := rows.Scan(&ref.ID, &ref.Username, &ref.DisplayName, &ref.Email); err != nil {
			return nil, fmt.Errorf("failed to scan follower row: %w", err)
		}
		refs = append(refs, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate follower rows: %w", err)
	}

	return refs, nil
}

func (s *UserStore) getOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	var user domain.User
	var followers []byte

	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID,
		&user.Username,
		&user.DisplayName,
		&user.Email,
		&user.HashedPassword,
		&user.EmailVerified,
		&followers,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrUserNotFound
		}
		return nil, err
	}

	if len(followers) > 0 {
		if err := json.Unmarshal(followers, &user.Followers); err != nil {
			return nil, fmt.Errorf("failed to decode followers: %w", err)
		}
	}

	return &user, nil
}

// followerIDs never returns nil so the column always holds a JSON array.
func followerIDs(user *domain.User) []uuid.UUID {
	if user.Followers == nil {
		return []uuid.UUID{}
	}
	return user.Followers
}
