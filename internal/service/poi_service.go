package service

import (
	"context"
	"log/slog"

	"github.com/meandevstar/atlas-backend/internal/domain"
)

// poiPageSize is the fixed number of hits returned by a POI search.
const poiPageSize = 5

// PoiSearchResult is the envelope for POI search hits.
type PoiSearchResult struct {
	Data []domain.Poi `json:"data"`
}

// PoiService implements POI name search over the search index
// collaborator.
type PoiService struct {
	index  PoiIndex
	logger *slog.Logger
}

// NewPoiService creates a PoiService.
func NewPoiService(index PoiIndex, log *slog.Logger) *PoiService {
	if index == nil {
		panic("index cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &PoiService{
		index:  index,
		logger: log.With(slog.String("component", "poi_service")),
	}
}

// SearchByName runs a fuzzy search over POI names and their
// administrative regions, returning at most five ranked hits.
func (s *PoiService) SearchByName(ctx context.Context, term string) (*PoiSearchResult, error) {
	hits, err := s.index.Search(ctx, term, poiPageSize)
	if err != nil {
		return nil, err
	}

	return &PoiSearchResult{Data: hits}, nil
}
