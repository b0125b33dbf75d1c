// Package geosearch implements the POI search collaborator on top of
// Elasticsearch. The index holds geonames documents with name and
// administrative-region fields.
package geosearch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	elasticsearch "github.com/elastic/go-elasticsearch/v8"

	"github.com/meandevstar/atlas-backend/internal/config"
	"github.com/meandevstar/atlas-backend/internal/domain"
	"github.com/meandevstar/atlas-backend/internal/platform/logger"
)

// Index queries the POI documents of a single Elasticsearch index.
type Index struct {
	client *elasticsearch.Client
	index  string
	logger *slog.Logger
}

// New creates an Index from the search configuration.
func New(cfg config.SearchConfig, log *slog.Logger) (*Index, error) {
	if cfg.PoiIndex == "" {
		return nil, fmt.Errorf("poi index name is required")
	}
	if log == nil {
		log = slog.Default()
	}

	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: cfg.Addresses,
		CloudID:   cfg.CloudID,
		Username:  cfg.Username,
		Password:  cfg.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create elasticsearch client: %w", err)
	}

	return &Index{
		client: client,
		index:  cfg.PoiIndex,
		logger: log.With(slog.String("component", "poi_index")),
	}, nil
}

// searchResponse is the slice of the Elasticsearch response body we care
// about.
type searchResponse struct {
	Hits struct {
		Hits []struct {
			Score  float64    `json:"_score"`
			Source domain.Poi `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// Search runs a fuzzy multi_match query over the name and
// administrative-region fields and returns up to size ranked hits.
func (i *Index) Search(ctx context.Context, term string, size int) ([]domain.Poi, error) {
	log := logger.FromContextOrDefault(ctx, i.logger)

	query := map[string]any{
		"size": size,
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     term,
				"fields":    []string{"name", "admin1_name", "admin2_name"},
				"fuzziness": "AUTO",
			},
		},
	}

	body, err := json.Marshal(query)
	if err != nil {
		return nil, fmt.Errorf("failed to encode search query: %w", err)
	}

	res, err := i.client.Search(
		i.client.Search.WithContext(ctx),
		i.client.Search.WithIndex(i.index),
		i.client.Search.WithBody(strings.NewReader(string(body))),
	)
	if err != nil {
		log.Error("poi search request failed", "error", err, "term", term)
		return nil, fmt.Errorf("poi search failed: %w", err)
	}
	defer func() {
		if cerr := res.Body.Close(); cerr != nil {
			log.Warn("failed to close search response body", "error", cerr)
		}
	}()

	if res.IsError() {
		msg, _ := io.ReadAll(res.Body)
		log.Error("poi search returned error response",
			"status", res.StatusCode,
			"term", term)
		return nil, fmt.Errorf("poi search failed: status %d: %s", res.StatusCode, msg)
	}

	var parsed searchResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	hits := make([]domain.Poi, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		poi := hit.Source
		poi.Score = hit.Score
		hits = append(hits, poi)
	}

	log.Debug("poi search completed", "term", term, "hits", len(hits))
	return hits, nil
}
