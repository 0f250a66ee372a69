package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/lshepard/theaiwhotaughtme/internal/dto"
)

type placesSearcher interface {
	Search(ctx context.Context, input string) ([]dto.PlaceSuggestion, error)
}

// PlacesService fronts the autocomplete proxy. Inputs under two characters
// short-circuit to an empty result without an upstream call.
type PlacesService struct {
	client  placesSearcher
	metrics *MetricsService
	logger  *zap.Logger
}

// NewPlacesService constructs the service.
func NewPlacesService(client placesSearcher, metrics *MetricsService, logger *zap.Logger) *PlacesService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PlacesService{client: client, metrics: metrics, logger: logger}
}

// Search returns school suggestions for the input text.
func (s *PlacesService) Search(ctx context.Context, input string) ([]dto.PlaceSuggestion, error) {
	input = strings.TrimSpace(input)
	if len(input) < 2 {
		return []dto.PlaceSuggestion{}, nil
	}

	start := time.Now()
	suggestions, err := s.client.Search(ctx, input)
	s.metrics.ObserveUpstreamCall("places", time.Since(start), err != nil)
	if err != nil {
		s.logger.Error("places search failed", zap.Error(err))
		return nil, err
	}
	return suggestions, nil
}
