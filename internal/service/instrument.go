package service

import (
	"context"
	"time"

	"github.com/UnknownOlympus/placebridge/internal/metrics"
	"github.com/UnknownOlympus/placebridge/internal/models"
	"github.com/UnknownOlympus/placebridge/internal/provider"
)

type instrumentedSearcher struct {
	next     provider.Searcher
	provider string
	metrics  *metrics.Metrics
}

// InstrumentSearcher records request duration and errors of s under the given provider label.
func InstrumentSearcher(s provider.Searcher, name models.Provider, m *metrics.Metrics) provider.Searcher {
	return &instrumentedSearcher{next: s, provider: string(name), metrics: m}
}

func (s *instrumentedSearcher) Search(ctx context.Context, query string) ([]models.PlaceInfo, error) {
	startTime := time.Now()
	places, err := s.next.Search(ctx, query)
	s.metrics.RequestSeconds.WithLabelValues(s.provider, "search").Observe(time.Since(startTime).Seconds())
	if err != nil {
		s.metrics.UpstreamErrors.WithLabelValues(s.provider).Inc()
	}

	return places, err
}

type instrumentedDetailFetcher struct {
	next     provider.DetailFetcher
	provider string
	metrics  *metrics.Metrics
}

// InstrumentDetailFetcher records request duration and errors of f under the given provider label.
func InstrumentDetailFetcher(f provider.DetailFetcher, name models.Provider, m *metrics.Metrics) provider.DetailFetcher {
	return &instrumentedDetailFetcher{next: f, provider: string(name), metrics: m}
}

func (f *instrumentedDetailFetcher) FetchDetail(ctx context.Context, id string) (*models.PlaceInfo, error) {
	startTime := time.Now()
	place, err := f.next.FetchDetail(ctx, id)
	f.metrics.RequestSeconds.WithLabelValues(f.provider, "detail").Observe(time.Since(startTime).Seconds())
	if err != nil {
		f.metrics.UpstreamErrors.WithLabelValues(f.provider).Inc()
	}

	return place, err
}
