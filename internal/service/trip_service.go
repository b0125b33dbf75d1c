package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/meandevstar/atlas-backend/internal/domain"
	"github.com/meandevstar/atlas-backend/internal/platform/logger"
	"github.com/meandevstar/atlas-backend/internal/store"
)

// CreateTripInput is the normalized payload for trip creation.
type CreateTripInput struct {
	TripName  string
	Data      []domain.Waypoint
	Published bool
}

// UpdateTripInput is the normalized payload for a partial trip update.
// Nil fields are left untouched.
type UpdateTripInput struct {
	TripName  *string
	Data      *[]domain.Waypoint
	Published *bool
}

// TripListResult is the envelope for a list of trips.
type TripListResult struct {
	Data []domain.TripDetails `json:"data"`
}

// TripResult is the envelope for a single trip.
type TripResult struct {
	Data domain.TripDetails `json:"data"`
}

// UploadResult is returned after a POI photo upload.
type UploadResult struct {
	FileURL string `json:"fileURL"`
	FileKey string `json:"fileKey"`
}

// TripService implements the trip domain module.
type TripService struct {
	trips   store.TripStore
	objects ObjectStore
	logger  *slog.Logger
}

// NewTripService creates a TripService with its collaborators.
func NewTripService(trips store.TripStore, objects ObjectStore, log *slog.Logger) *TripService {
	if trips == nil {
		panic("trips cannot be nil")
	}
	if objects == nil {
		panic("objects cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &TripService{
		trips:   trips,
		objects: objects,
		logger:  log.With(slog.String("component", "trip_service")),
	}
}

// CreateTrip persists a new trip owned by ownerID.
func (s *TripService) CreateTrip(ctx context.Context, input CreateTripInput, ownerID uuid.UUID) (*domain.TripDetails, error) {
	trip, err := domain.NewTrip(input.TripName, input.Data, input.Published, ownerID)
	if err != nil {
		return nil, domain.BadRequest(err.Error())
	}

	if err := s.trips.Create(ctx, trip); err != nil {
		return nil, err
	}

	details := domain.PublicTrip(trip)
	return &details, nil
}

// UpdateTrip applies a partial update and returns the updated trip.
func (s *TripService) UpdateTrip(ctx context.Context, tripID uuid.UUID, input UpdateTripInput) (*domain.TripDetails, error) {
	trip, err := s.trips.UpdateByID(ctx, tripID, store.TripUpdate{
		TripName:  input.TripName,
		Data:      input.Data,
		Published: input.Published,
	})
	if err != nil {
		if errors.Is(err, store.ErrTripNotFound) {
			return nil, domain.NotFound("Trip not found")
		}
		return nil, err
	}

	details := domain.PublicTrip(trip)
	return &details, nil
}

// GetTripByID retrieves a single trip.
func (s *TripService) GetTripByID(ctx context.Context, tripID uuid.UUID) (*TripResult, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		if errors.Is(err, store.ErrTripNotFound) {
			return nil, domain.NotFound("Trip not found")
		}
		return nil, err
	}

	return &TripResult{Data: domain.PublicTrip(trip)}, nil
}

// GetAllTrips retrieves every trip owned by ownerID.
func (s *TripService) GetAllTrips(ctx context.Context, ownerID uuid.UUID) (*TripListResult, error) {
	trips, err := s.trips.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	details := make([]domain.TripDetails, 0, len(trips))
	for _, trip := range trips {
		details = append(details, domain.PublicTrip(trip))
	}

	return &TripListResult{Data: details}, nil
}

// DeleteTrip removes a trip and the POI photos attached to its
// waypoints. Photo deletions run concurrently; the trip row is removed
// only after every photo delete has succeeded. If any photo delete
// fails the whole operation fails and the trip record survives.
func (s *TripService) DeleteTrip(ctx context.Context, tripID uuid.UUID) (*MessageResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		if errors.Is(err, store.ErrTripNotFound) {
			return nil, domain.NotFound("Cannot find trip")
		}
		return nil, err
	}

	keys := trip.PoiPhotoKeys()
	if len(keys) > 0 {
		g, gctx := errgroup.WithContext(ctx)
		for _, key := range keys {
			key := key
			g.Go(func() error {
				return s.objects.DeleteObject(gctx, key)
			})
		}
		if err := g.Wait(); err != nil {
			log.Error("photo cleanup failed, keeping trip record",
				"error", err,
				"trip_id", tripID,
				"photo_count", len(keys))
			return nil, err
		}
	}

	if err := s.trips.DeleteByID(ctx, tripID); err != nil {
		if errors.Is(err, store.ErrTripNotFound) {
			return nil, domain.NotFound("Cannot find trip")
		}
		return nil, err
	}

	return &MessageResult{
		Message: fmt.Sprintf("Successfully removed trip with Id of %s", tripID),
	}, nil
}

// UploadPoiImage stores an uploaded photo under a fresh key and returns
// its location. The key keeps the original file extension when the name
// has exactly one, defaulting to jpg.
func (s *TripService) UploadPoiImage(ctx context.Context, filename string, content []byte) (*UploadResult, error) {
	ext := "jpg"
	if parts := strings.Split(filename, "."); len(parts) == 2 {
		ext = parts[1]
	}
	key := fmt.Sprintf("%s.%s", uuid.New(), ext)

	url, err := s.objects.PutObject(ctx, key, content)
	if err != nil {
		return nil, err
	}

	return &UploadResult{FileURL: url, FileKey: key}, nil
}

// RemovePoiImage deletes a previously uploaded photo by key.
func (s *TripService) RemovePoiImage(ctx context.Context, key string) (*MessageResult, error) {
	if key == "" {
		return nil, domain.BadRequest("Invalid request!")
	}

	if err := s.objects.DeleteObject(ctx, key); err != nil {
		return nil, err
	}

	return &MessageResult{Message: "Successfully removed"}, nil
}
