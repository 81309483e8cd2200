// Package service converts place entries from one map provider to the other.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/UnknownOlympus/placebridge/internal/geo"
	"github.com/UnknownOlympus/placebridge/internal/matching"
	"github.com/UnknownOlympus/placebridge/internal/metrics"
	"github.com/UnknownOlympus/placebridge/internal/models"
	"github.com/UnknownOlympus/placebridge/internal/placeurl"
	"github.com/UnknownOlympus/placebridge/internal/provider"
	"github.com/UnknownOlympus/placebridge/internal/resolver"
	"github.com/UnknownOlympus/placebridge/internal/textnorm"
)

// DefaultMaxDistanceMeters is the distance verdict threshold used when the caller gives none.
const DefaultMaxDistanceMeters = 300.0

var (
	// ErrUnresolvedSource is returned when an entry has no name, address or place id.
	ErrUnresolvedSource = resolver.ErrUnresolvedSource
	// ErrNoSearchResults is returned when every query of the cascade found nothing.
	ErrNoSearchResults = errors.New("no search results")
	// ErrNoCandidateSelected is returned when candidates exist but none could be picked.
	ErrNoCandidateSelected = errors.New("could not select a candidate")
	// ErrUnknownDirection is returned for a direction other than the two supported ones.
	ErrUnknownDirection = errors.New("unknown conversion direction")
)

// SourceResolver describes an entry on its own provider.
type SourceResolver interface {
	Resolve(ctx context.Context, direction models.Direction, entry models.SourceEntry) (models.PlaceInfo, error)
}

// Converter resolves entries on their source provider and finds the best match on the target provider.
type Converter struct {
	log        *slog.Logger                          // Logger for conversion activities
	sources    SourceResolver                        // Resolver for the input entries
	searchers  map[models.Provider]provider.Searcher // Target searchers keyed by provider
	metrics    *metrics.Metrics                      // Metrics for tracking conversions
	numWorkers int                                   // Number of entries converted concurrently
}

// NewConverter creates a new Converter. A non-positive numWorkers converts entries one at a time.
func NewConverter(
	log *slog.Logger,
	sources SourceResolver,
	naver provider.Searcher,
	kakao provider.Searcher,
	metrics *metrics.Metrics,
	numWorkers int,
) *Converter {
	if numWorkers <= 0 {
		numWorkers = 1
	}

	return &Converter{
		log:     log,
		sources: sources,
		searchers: map[models.Provider]provider.Searcher{
			models.ProviderNaver: naver,
			models.ProviderKakao: kakao,
		},
		metrics:    metrics,
		numWorkers: numWorkers,
	}
}

// Convert converts a single entry. Expected failures never escape: they are reported
// as a result with OK set to false and the reason in Error.
func (c *Converter) Convert(
	ctx context.Context,
	direction models.Direction,
	entry models.SourceEntry,
	maxDistanceMeters float64,
) models.ConversionResult {
	match, err := c.convert(ctx, direction, entry, maxDistanceMeters)
	if err != nil {
		c.log.WarnContext(ctx, "Failed to convert entry",
			"index", entry.Index,
			"direction", direction,
			"error", err,
		)
		c.metrics.Conversions.WithLabelValues(string(direction), "failure").Inc()

		return models.ConversionResult{OK: false, Source: entry, Error: err.Error()}
	}

	c.metrics.Conversions.WithLabelValues(string(direction), "success").Inc()

	return models.ConversionResult{OK: true, Source: entry, Match: match}
}

func (c *Converter) convert(
	ctx context.Context,
	direction models.Direction,
	entry models.SourceEntry,
	maxDistanceMeters float64,
) (*models.Match, error) {
	if !direction.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDirection, direction)
	}

	source, err := c.sources.Resolve(ctx, direction, entry)
	if err != nil {
		return nil, err
	}

	target := direction.Target()
	candidates, err := c.searchCascade(ctx, c.searchers[target], QueryCascade(source.Name, source.Address))
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w on %s", ErrNoSearchResults, target)
	}

	picked := matching.Pick(candidates, source)
	if picked == nil {
		return nil, fmt.Errorf("%w on %s", ErrNoCandidateSelected, target)
	}
	c.metrics.MatchScore.Observe(picked.Score)

	c.log.DebugContext(ctx, "Picked target candidate",
		"index", entry.Index,
		"target", picked.ID,
		"score", picked.Score,
	)

	distance := geo.Distance(source.Lat, source.Lng, picked.Lat, picked.Lng)

	return &models.Match{
		TargetURL:      TargetURL(target, picked.ID),
		TargetName:     picked.Name,
		TargetAddress:  picked.Address,
		SourceLat:      source.Lat,
		SourceLng:      source.Lng,
		TargetLat:      picked.Lat,
		TargetLng:      picked.Lng,
		DistanceMeters: distance,
		DistancePass:   DistancePass(distance, maxDistanceMeters),
	}, nil
}

// searchCascade runs queries in order and returns the candidates of the first query that found any.
func (c *Converter) searchCascade(
	ctx context.Context,
	searcher provider.Searcher,
	queries []string,
) ([]models.PlaceInfo, error) {
	for _, query := range queries {
		candidates, err := searcher.Search(ctx, query)
		if err != nil {
			return nil, err
		}
		if len(candidates) > 0 {
			return candidates, nil
		}
		c.log.DebugContext(ctx, "Query returned no candidates", "query", query)
	}

	return nil, nil
}

// QueryCascade lists the target search queries from most to least specific:
// name with address, name alone, then address alone. Blank and repeated queries are dropped.
func QueryCascade(name, address string) []string {
	stripped := textnorm.StripAddressDetail(address)
	candidates := []string{resolver.FallbackQuery(name, address), textnorm.NormalizeSpace(name), stripped}

	queries := make([]string, 0, len(candidates))
	seen := make(map[string]bool)
	for _, query := range candidates {
		if query == "" || seen[query] {
			continue
		}
		seen[query] = true
		queries = append(queries, query)
	}

	return queries
}

// TargetURL is the place link for id on the target provider.
func TargetURL(target models.Provider, id string) string {
	if target == models.ProviderNaver {
		return placeurl.NaverPlaceURL(id)
	}

	return placeurl.KakaoPlaceURL(id)
}

// DistancePass is nil when the distance is unknown, otherwise whether it is within maxDistanceMeters.
func DistancePass(distance *int, maxDistanceMeters float64) *bool {
	if distance == nil {
		return nil
	}

	return models.Ptr(float64(*distance) <= maxDistanceMeters)
}

// ConvertBatch converts entries with a pool of workers and returns the results in input order.
// onDone, when not nil, is called once per finished entry and may be called concurrently.
func (c *Converter) ConvertBatch(
	ctx context.Context,
	direction models.Direction,
	entries []models.SourceEntry,
	maxDistanceMeters float64,
	onDone func(models.ConversionResult),
) []models.ConversionResult {
	results := make([]models.ConversionResult, len(entries))
	if len(entries) == 0 {
		return results
	}

	numWorkers := min(c.numWorkers, len(entries))
	c.log.InfoContext(ctx, "Converting batch",
		"direction", direction,
		"jobs", len(entries),
		"num_workers", numWorkers,
	)

	jobs := make(chan int, len(entries))
	var wgr sync.WaitGroup

	for i := 1; i <= numWorkers; i++ {
		wgr.Add(1)
		go c.worker(ctx, i, &wgr, jobs, func(pos int) {
			results[pos] = c.Convert(ctx, direction, entries[pos], maxDistanceMeters)
			if onDone != nil {
				onDone(results[pos])
			}
		})
	}

	for pos := range entries {
		jobs <- pos
	}
	close(jobs)

	wgr.Wait()
	c.log.InfoContext(ctx, "Batch conversion finished", "direction", direction, "jobs", len(entries))

	return results
}

// worker runs convert for every position received on jobs.
func (c *Converter) worker(ctx context.Context, idx int, wg *sync.WaitGroup, jobs <-chan int, convert func(int)) {
	defer wg.Done()
	for pos := range jobs {
		c.metrics.ActiveWorkers.Inc()
		c.log.DebugContext(ctx, "Converting entry", "worker", idx, "position", pos)
		convert(pos)
		c.metrics.ActiveWorkers.Dec()
	}
}
