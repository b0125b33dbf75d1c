package service

import (
	"context"

	"github.com/meandevstar/atlas-backend/internal/domain"
)

// ObjectStore is the narrow interface over the photo bucket. Services
// never see bucket names or SDK types.
type ObjectStore interface {
	// PutObject stores bytes under key and returns the public URL.
	PutObject(ctx context.Context, key string, body []byte) (string, error)

	// DeleteObject removes the object stored under key.
	DeleteObject(ctx context.Context, key string) error
}

// Mailer is the narrow interface over outbound email delivery.
type Mailer interface {
	// SendEmail delivers an HTML email to the given recipients.
	SendEmail(ctx context.Context, recipients []string, subject, htmlBody string) error
}

// PoiIndex is the narrow interface over the point-of-interest search
// index.
type PoiIndex interface {
	// Search runs a fuzzy name search and returns up to size ranked hits.
	Search(ctx context.Context, term string, size int) ([]domain.Poi, error)
}
