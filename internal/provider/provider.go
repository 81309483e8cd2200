package provider

import (
	"context"
	"errors"

	"github.com/UnknownOlympus/placebridge/internal/httpclient"
	"github.com/UnknownOlympus/placebridge/internal/models"
)

// Searcher turns a free text query into candidate places on one map provider.
// An empty result is not an error.
type Searcher interface {
	Search(ctx context.Context, query string) ([]models.PlaceInfo, error)
}

// DetailFetcher looks a place up by its provider id. A nil place without error
// means the provider does not know the id.
type DetailFetcher interface {
	FetchDetail(ctx context.Context, id string) (*models.PlaceInfo, error)
}

// HTTPClient is the outbound HTTP capability the providers depend on.
type HTTPClient = httpclient.HTTPClient

// ErrSearchFailed is returned when a provider answers with a non-success status
// or a body that cannot be parsed.
var ErrSearchFailed = errors.New("upstream search failed")
