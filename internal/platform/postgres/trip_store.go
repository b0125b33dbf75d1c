package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/meandevstar/atlas-backend/internal/domain"
	"github.com/meandevstar/atlas-backend/internal/platform/logger"
	"github.com/meandevstar/atlas-backend/internal/store"
)

// TripStore implements store.TripStore using PostgreSQL.
type TripStore struct {
	db     store.DBTX
	logger *slog.Logger
}

var _ store.TripStore = (*TripStore)(nil)

// NewTripStore creates a PostgreSQL implementation of store.TripStore.
func NewTripStore(db store.DBTX, log *slog.Logger) *TripStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &TripStore{
		db:     db,
		logger: log.With(slog.String("component", "trip_store")),
	}
}

const tripColumns = "id, trip_name, user_id, data, published, created_at, updated_at"

// Create implements store.TripStore.Create.
func (s *TripStore) Create(ctx context.Context, trip *domain.Trip) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := trip.Validate(); err != nil {
		log.Warn("trip validation failed during create",
			"error", err,
			"trip_id", trip.ID)
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	data, err := json.Marshal(waypoints(trip))
	if err != nil {
		return fmt.Errorf("failed to encode trip data: %w", err)
	}

	query := `
		INSERT INTO trips (` + tripColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err = s.db.ExecContext(ctx, query,
		trip.ID,
		trip.TripName,
		trip.UserID,
		data,
		trip.Published,
		trip.CreatedAt,
		trip.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			log.Warn("foreign key violation during trip creation",
				"trip_id", trip.ID,
				"user_id", trip.UserID)
			return fmt.Errorf("%w: owner %s not found", store.ErrInvalidEntity, trip.UserID)
		}
		log.Error("failed to create trip", "error", err, "trip_id", trip.ID)
		return err
	}

	log.Info("trip created", "trip_id", trip.ID, "user_id", trip.UserID)
	return nil
}

// GetByID implements store.TripStore.GetByID.
func (s *TripStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Trip, error) {
	query := `SELECT ` + tripColumns + ` FROM trips WHERE id = $1`

	trip, err := scanTrip(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrTripNotFound
		}
		return nil, err
	}
	return trip, nil
}

// GetByOwner implements store.TripStore.GetByOwner.
func (s *TripStore) GetByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Trip, error) {
	query := `SELECT ` + tripColumns + ` FROM trips WHERE user_id = $1 ORDER BY updated_at DESC`

	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query trips by owner: %w", err)
	}
	defer rows.Close()

	trips := make([]*domain.Trip, 0)
	for rows.Next() {
		trip, err := scanTrip(rows)
		if err != nil {
			return nil, err
		}
		trips = append(trips, trip)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate trip rows: %w", err)
	}

	return trips, nil
}

// UpdateByID implements store.TripStore.UpdateByID.
func (s *TripStore) UpdateByID(ctx context.Context, id uuid.UUID, update store.TripUpdate) (*domain.Trip, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	set := "updated_at = $2"
	args := []any{id, time.Now().UTC()}

	if update.TripName != nil {
		args = append(args, *update.TripName)
		set += fmt.Sprintf(", trip_name = $%d", len(args))
	}
	if update.Data != nil {
		data, err := json.Marshal(*update.Data)
		if err != nil {
			return nil, fmt.Errorf("failed to encode trip data: %w", err)
		}
		args = append(args, data)
		set += fmt.Sprintf(", data = $%d", len(args))
	}
	if update.Published != nil {
		args = append(args, *update.Published)
		set += fmt.Sprintf(", published = $%d", len(args))
	}

	query := `
		UPDATE trips SET ` + set + `
		WHERE id = $1
		RETURNING ` + tripColumns

	trip, err := scanTrip(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrTripNotFound
		}
		log.Error("failed to update trip", "error", err, "trip_id", id)
		return nil, err
	}

	log.Debug("trip updated", "trip_id", id)
	return trip, nil
}

// DeleteByID implements store.TripStore.DeleteByID.
func (s *TripStore) DeleteByID(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM trips WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete trip", "error", err, "trip_id", id)
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if rows == 0 {
		return store.ErrTripNotFound
	}

	log.Info("trip deleted", "trip_id", id)
	return nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTrip(row rowScanner) (*domain.Trip, error) {
	var trip domain.Trip
	var data []byte

	err := row.Scan(
		&trip.ID,
		&trip.TripName,
		&trip.UserID,
		&data,
		&trip.Published,
		&trip.CreatedAt,
		&trip.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(data) > 0 {
		if err := json.Unmarshal(data, &trip.Data); err != nil {
			return nil, fmt.Errorf("failed to decode trip data: %w", err)
		}
	}

	return &trip, nil
}

// waypoints never returns nil so the column always holds a JSON array.
func waypoints(trip *domain.Trip) []domain.Waypoint {
	if trip.Data == nil {
		return []domain.Waypoint{}
	}
	return trip.Data
}
