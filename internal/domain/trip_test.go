package domain_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meandevstar/atlas-backend/internal/domain"
)

func TestNewTrip(t *testing.T) {
	t.Parallel()

	owner := uuid.New()

	t.Run("creates a valid trip", func(t *testing.T) {
		t.Parallel()
		trip, err := domain.NewTrip("Summer in Kyoto", nil, false, owner)
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, trip.ID)
		assert.Equal(t, "Summer in Kyoto", trip.TripName)
		assert.Equal(t, owner, trip.UserID)
		assert.Empty(t, trip.Data, "an empty itinerary is valid")
	})

	t.Run("rejects missing name", func(t *testing.T) {
		t.Parallel()
		_, err := domain.NewTrip("", nil, false, owner)
		assert.ErrorIs(t, err, domain.ErrEmptyTripName)
	})

	t.Run("rejects missing owner", func(t *testing.T) {
		t.Parallel()
		_, err := domain.NewTrip("Summer in Kyoto", nil, false, uuid.Nil)
		assert.ErrorIs(t, err, domain.ErrEmptyTripOwner)
	})
}

func TestPoiPhotoKeys(t *testing.T) {
	t.Parallel()

	trip := &domain.Trip{
		TripName: "Summer in Kyoto",
		UserID:   uuid.New(),
		Data: []domain.Waypoint{
			{Type: domain.WaypointTypePoi, Name: "Fushimi Inari", Photos: []domain.Photo{
				{Key: "a.jpg", URL: "https://bucket/a.jpg"},
				{Key: "b.jpg", URL: "https://bucket/b.jpg"},
			}},
			{Type: "lodging", Name: "Ryokan", Photos: []domain.Photo{
				{Key: "ignored.jpg"},
			}},
			{Type: domain.WaypointTypePoi, Name: "Kinkaku-ji"},
			{Type: domain.WaypointTypePoi, Name: "Gion", Photos: []domain.Photo{
				{Key: "c.png", URL: "https://bucket/c.png"},
			}},
		},
	}

	assert.Equal(t, []string{"a.jpg", "b.jpg", "c.png"}, trip.PoiPhotoKeys())
}

func TestPoiPhotoKeysEmpty(t *testing.T) {
	t.Parallel()

	trip := &domain.Trip{Data: []domain.Waypoint{{Type: "transit"}}}
	assert.Empty(t, trip.PoiPhotoKeys())
}
