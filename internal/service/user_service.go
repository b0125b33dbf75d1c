package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/meandevstar/atlas-backend/internal/domain"
	"github.com/meandevstar/atlas-backend/internal/platform/logger"
	"github.com/meandevstar/atlas-backend/internal/store"
)

// FollowResult is returned by the follow toggle.
type FollowResult struct {
	User    domain.UserProfile `json:"user"`
	Message string             `json:"message"`
}

// UserService implements the user domain module: lookup and the
// follow/unfollow toggle.
type UserService struct {
	users  store.UserStore
	logger *slog.Logger
}

// NewUserService creates a UserService.
func NewUserService(users store.UserStore, log *slog.Logger) *UserService {
	if users == nil {
		panic("users cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &UserService{
		users:  users,
		logger: log.With(slog.String("component", "user_service")),
	}
}

// GetUser looks up an account by ID when search parses as a UUID, by
// username otherwise. The profile includes resolved follower summaries.
func (s *UserService) GetUser(ctx context.Context, search string) (*domain.UserProfile, error) {
	var user *domain.User
	var err error

	if id, parseErr := uuid.Parse(search); parseErr == nil {
		user, err = s.users.GetByID(ctx, id)
	} else {
		user, err = s.users.GetByUsername(ctx, search)
	}
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, domain.Unauthorized("No user with that email registered")
		}
		return nil, err
	}

	profile := domain.PublicUser(user)
	if len(user.Followers) > 0 {
		refs, err := s.users.GetFollowerRefs(ctx, user.Followers)
		if err != nil {
			return nil, err
		}
		profile.Followers = refs
	}

	return &profile, nil
}

// FollowUser toggles the caller's membership in the follow relation with
// the named account: following becomes unfollowing and vice versa. The
// caller cannot follow itself.
func (s *UserService) FollowUser(ctx context.Context, username string, identity *domain.User) (*FollowResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	target, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, domain.Unauthorized("No user with that email registered")
		}
		return nil, err
	}

	if target.ID == identity.ID {
		return nil, domain.BadRequest("You can't follow yourself")
	}

	followed := identity.ToggleFollower(target.ID)
	if err := s.users.Update(ctx, identity); err != nil {
		return nil, err
	}

	verb := "unfollowed"
	if followed {
		verb = "followed"
	}
	log.Debug("follow toggled",
		"user_id", identity.ID,
		"target_id", target.ID,
		"followed", followed)

	return &FollowResult{
		User:    domain.PublicUser(identity),
		Message: fmt.Sprintf("You've %s %s!", verb, username),
	}, nil
}
