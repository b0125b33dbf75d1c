package service_test

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/meandevstar/atlas-backend/internal/domain"
	"github.com/meandevstar/atlas-backend/internal/service/auth"
	"github.com/meandevstar/atlas-backend/internal/store"
)

// mockUserStore is a map-backed store.UserStore. It hashes plaintext
// passwords the same way the real store does, so service-level flows
// behave identically.
type mockUserStore struct {
	mu     sync.Mutex
	users  map[uuid.UUID]*domain.User
	hasher auth.PasswordHasher
}

func newMockUserStore() *mockUserStore {
	return &mockUserStore{
		users:  make(map[uuid.UUID]*domain.User),
		hasher: auth.NewBcryptHasher(bcrypt.MinCost),
	}
}

func (m *mockUserStore) Create(ctx context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.users {
		if existing.Email == user.Email {
			return store.ErrEmailExists
		}
		if existing.Username == user.Username {
			return store.ErrUsernameExists
		}
	}

	if user.Password != "" {
		digest, err := m.hasher.Hash(user.Password)
		if err != nil {
			return err
		}
		user.HashedPassword = digest
		user.Password = ""
	}

	copied := *user
	m.users[user.ID] = &copied
	return nil
}

func (m *mockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, user := range m.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, store.ErrUserNotFound
}

func (m *mockUserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, user := range m.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, store.ErrUserNotFound
}

func (m *mockUserStore) CountByEmail(ctx context.Context, email string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	count := 0
	for _, user := range m.users {
		if user.Email == email {
			count++
		}
	}
	return count, nil
}

func (m *mockUserStore) Update(ctx context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[user.ID]; !ok {
		return store.ErrUserNotFound
	}
	for _, existing := range m.users {
		if existing.ID != user.ID && existing.Email == user.Email {
			return store.ErrEmailExists
		}
	}

	if user.Password != "" {
		digest, err := m.hasher.Hash(user.Password)
		if err != nil {
			return err
		}
		user.HashedPassword = digest
		user.Password = ""
	}

	copied := *user
	m.users[user.ID] = &copied
	return nil
}

func (m *mockUserStore) GetFollowerRefs(ctx context.Context, ids []uuid.UUID) ([]domain.FollowerRef, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	refs := make([]domain.FollowerRef, 0, len(ids))
	for _, id := range ids {
		user, ok := m.users[id]
		if !ok {
			continue
		}
		refs = append(refs, domain.FollowerRef{
			ID:          user.ID,
			Username:    user.Username,
			DisplayName: user.DisplayName,
			Email:       user.Email,
		})
	}
	return refs, nil
}

// mockTripStore is a map-backed store.TripStore.
type mockTripStore struct {
	mu    sync.Mutex
	trips map[uuid.UUID]*domain.Trip
}

func newMockTripStore() *mockTripStore {
	return &mockTripStore{trips: make(map[uuid.UUID]*domain.Trip)}
}

func (m *mockTripStore) Create(ctx context.Context, trip *domain.Trip) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := *trip
	m.trips[trip.ID] = &copied
	return nil
}

func (m *mockTripStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Trip, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	trip, ok := m.trips[id]
	if !ok {
		return nil, store.ErrTripNotFound
	}
	copied := *trip
	return &copied, nil
}

func (m *mockTripStore) GetByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Trip, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var result []*domain.Trip
	for _, trip := range m.trips {
		if trip.UserID == ownerID {
			copied := *trip
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (m *mockTripStore) UpdateByID(ctx context.Context, id uuid.UUID, update store.TripUpdate) (*domain.Trip, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	trip, ok := m.trips[id]
	if !ok {
		return nil, store.ErrTripNotFound
	}
	if update.TripName != nil {
		trip.TripName = *update.TripName
	}
	if update.Data != nil {
		trip.Data = *update.Data
	}
	if update.Published != nil {
		trip.Published = *update.Published
	}
	copied := *trip
	return &copied, nil
}

func (m *mockTripStore) DeleteByID(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.trips[id]; !ok {
		return store.ErrTripNotFound
	}
	delete(m.trips, id)
	return nil
}

// mockObjectStore records puts and deletes, optionally failing deletes
// for specific keys.
type mockObjectStore struct {
	mu       sync.Mutex
	objects  map[string][]byte
	deleted  []string
	failKeys map[string]error
}

func newMockObjectStore() *mockObjectStore {
	return &mockObjectStore{
		objects:  make(map[string][]byte),
		failKeys: make(map[string]error),
	}
}

func (m *mockObjectStore) PutObject(ctx context.Context, key string, body []byte) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.objects[key] = body
	return fmt.Sprintf("https://bucket.example.com/%s", key), nil
}

func (m *mockObjectStore) DeleteObject(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err, ok := m.failKeys[key]; ok {
		return err
	}
	delete(m.objects, key)
	m.deleted = append(m.deleted, key)
	return nil
}

// mockMailer records sent emails, optionally failing.
type mockMailer struct {
	mu       sync.Mutex
	sent     []sentEmail
	failSend error
}

type sentEmail struct {
	recipients []string
	subject    string
	htmlBody   string
}

func (m *mockMailer) SendEmail(ctx context.Context, recipients []string, subject, htmlBody string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failSend != nil {
		return m.failSend
	}
	m.sent = append(m.sent, sentEmail{recipients: recipients, subject: subject, htmlBody: htmlBody})
	return nil
}

// mockPoiIndex returns canned hits and records the requested size.
type mockPoiIndex struct {
	hits     []domain.Poi
	err      error
	lastTerm string
	lastSize int
}

func (m *mockPoiIndex) Search(ctx context.Context, term string, size int) ([]domain.Poi, error) {
	m.lastTerm = term
	m.lastSize = size
	if m.err != nil {
		return nil, m.err
	}
	if len(m.hits) > size {
		return m.hits[:size], nil
	}
	return m.hits, nil
}
