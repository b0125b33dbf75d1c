package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User represents a registered account of the trip planner.
// HashedPassword is the only credential ever persisted; the plaintext
// Password field is populated transiently during sign-up or password
// changes and must be hashed before storage.
type User struct {
	ID             uuid.UUID   `json:"id"`
	Username       string      `json:"username"`
	DisplayName    string      `json:"display_name"`
	Email          string      `json:"email"`
	Password       string      `json:"-"`
	HashedPassword string      `json:"-"`
	EmailVerified  bool        `json:"email_verified"`
	Followers      []uuid.UUID `json:"followers"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

// NewUser creates a User from sign-up input. The email is normalized
// (trimmed, lower-cased) and the plaintext password is carried for the
// store to hash. Returns a validation error if any field is unusable.
func NewUser(username, displayName, email, password string) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		ID:          uuid.New(),
		Username:    username,
		DisplayName: displayName,
		Email:       NormalizeEmail(email),
		Password:    password,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}
	return user, nil
}

// Validate checks the User fields for structural problems. Business rules
// such as email uniqueness belong to the store, not here.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrEmptyUserID
	}
	if u.Username == "" {
		return ErrEmptyUsername
	}
	if u.DisplayName == "" {
		return ErrEmptyDisplayName
	}
	if u.Email == "" {
		return ErrEmptyEmail
	}
	if !validEmail(u.Email) {
		return ErrInvalidEmail
	}
	if u.Password == "" && u.HashedPassword == "" {
		return ErrEmptyPassword
	}
	return nil
}

// IsFollowing reports whether id is in the user's follower set.
func (u *User) IsFollowing(id uuid.UUID) bool {
	for _, fid := range u.Followers {
		if fid == id {
			return true
		}
	}
	return false
}

// ToggleFollower adds id to the follower set when absent and removes it
// when present. Returns true when the call resulted in a follow.
func (u *User) ToggleFollower(id uuid.UUID) bool {
	for i, fid := range u.Followers {
		if fid == id {
			u.Followers = append(u.Followers[:i], u.Followers[i+1:]...)
			return false
		}
	}
	u.Followers = append(u.Followers, id)
	return true
}

// NormalizeEmail canonicalizes an email address the way every entry point
// must before comparing or persisting it.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// validEmail performs a minimal structural check: one '@' with a dotted
// domain after it. Request-level validation applies the stricter
// validator tag; this is the last line of defense for entities built
// outside the HTTP pipeline.
func validEmail(email string) bool {
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}
	domain := email[at+1:]
	dot := strings.Index(domain, ".")
	return dot > 0 && dot < len(domain)-1
}

// UserProfile is the public projection of a User: the fields that are safe
// to return to any client. Credentials never appear here.
type UserProfile struct {
	ID            uuid.UUID     `json:"_id"`
	Username      string        `json:"username"`
	DisplayName   string        `json:"displayName"`
	Email         string        `json:"email"`
	EmailVerified bool          `json:"verified"`
	Followers     []FollowerRef `json:"followers,omitempty"`
}

// FollowerRef is the summary of a followed account embedded in a profile.
type FollowerRef struct {
	ID          uuid.UUID `json:"_id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"displayName"`
	Email       string    `json:"email"`
}

// PublicUser projects a User into its public profile. Follower summaries
// are resolved separately by the caller when needed.
func PublicUser(u *User) UserProfile {
	return UserProfile{
		ID:            u.ID,
		Username:      u.Username,
		DisplayName:   u.DisplayName,
		Email:         u.Email,
		EmailVerified: u.EmailVerified,
	}
}
