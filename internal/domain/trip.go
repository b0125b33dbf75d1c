package domain

import (
	"time"

	"github.com/google/uuid"
)

// WaypointTypePoi marks an itinerary entry as a point of interest, which
// may carry uploaded photos subject to object-store cleanup.
const WaypointTypePoi = "poi"

// Photo is an uploaded image attached to a waypoint. Key addresses the
// object in the bucket; URL is the public location returned at upload time.
type Photo struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// Waypoint is one entry of a trip itinerary. Entries of type "poi" may
// hold photos; other types (lodging, transit, free-form notes) do not.
type Waypoint struct {
	Type     string  `json:"type,omitempty"`
	Name     string  `json:"name,omitempty"`
	Notes    string  `json:"notes,omitempty"`
	Lat      float64 `json:"lat,omitempty"`
	Lng      float64 `json:"lng,omitempty"`
	Photos   []Photo `json:"photos,omitempty"`
	DayIndex int     `json:"dayIndex,omitempty"`
}

// Trip is a user-owned trip document: a named, ordered itinerary.
type Trip struct {
	ID        uuid.UUID  `json:"id"`
	TripName  string     `json:"trip_name"`
	UserID    uuid.UUID  `json:"user_id"`
	Data      []Waypoint `json:"data"`
	Published bool       `json:"published"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// NewTrip creates a Trip owned by ownerID. An empty itinerary is valid;
// a trip always has a name and an owner.
func NewTrip(tripName string, data []Waypoint, published bool, ownerID uuid.UUID) (*Trip, error) {
	now := time.Now().UTC()
	trip := &Trip{
		ID:        uuid.New(),
		TripName:  tripName,
		UserID:    ownerID,
		Data:      data,
		Published: published,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := trip.Validate(); err != nil {
		return nil, err
	}
	return trip, nil
}

// Validate checks the Trip fields for structural problems.
func (t *Trip) Validate() error {
	if t.TripName == "" {
		return ErrEmptyTripName
	}
	if t.UserID == uuid.Nil {
		return ErrEmptyTripOwner
	}
	return nil
}

// PoiPhotoKeys collects the object keys of every photo attached to a
// point-of-interest waypoint. These are exactly the objects that must be
// removed before the trip record itself can be deleted.
func (t *Trip) PoiPhotoKeys() []string {
	var keys []string
	for _, wp := range t.Data {
		if wp.Type != WaypointTypePoi || len(wp.Photos) == 0 {
			continue
		}
		for _, photo := range wp.Photos {
			keys = append(keys, photo.Key)
		}
	}
	return keys
}

// TripDetails is the public projection of a Trip.
type TripDetails struct {
	ID        uuid.UUID  `json:"_id"`
	TripName  string     `json:"tripName"`
	UserID    uuid.UUID  `json:"userId"`
	Data      []Waypoint `json:"data"`
	Published bool       `json:"published"`
}

// PublicTrip projects a Trip into the fields returned to clients.
func PublicTrip(t *Trip) TripDetails {
	return TripDetails{
		ID:        t.ID,
		TripName:  t.TripName,
		UserID:    t.UserID,
		Data:      t.Data,
		Published: t.Published,
	}
}
