package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/meandevstar/atlas-backend/internal/domain"
)

// TripUpdate describes a partial update of a trip document. Nil fields
// are left untouched.
type TripUpdate struct {
	TripName  *string
	Data      *[]domain.Waypoint
	Published *bool
}

// TripStore defines the interface for trip persistence.
type TripStore interface {
	// Create saves a new trip. Returns a validation error wrapped in
	// ErrInvalidEntity if the trip is malformed.
	Create(ctx context.Context, trip *domain.Trip) error

	// GetByID retrieves a trip by ID. Returns ErrTripNotFound if absent.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Trip, error)

	// GetByOwner retrieves every trip owned by the given user, most
	// recently updated first.
	GetByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Trip, error)

	// UpdateByID applies a partial update and returns the updated trip.
	// Returns ErrTripNotFound if the trip does not exist.
	UpdateByID(ctx context.Context, id uuid.UUID, update TripUpdate) (*domain.Trip, error)

	// DeleteByID removes a trip. Returns ErrTripNotFound if absent.
	DeleteByID(ctx context.Context, id uuid.UUID) error
}
