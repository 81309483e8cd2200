// Package provider implements search and lookup clients for the supported map providers.
package provider

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/UnknownOlympus/placebridge/internal/models"
)

// ProviderConfig holds configuration for creating a map provider client.
type ProviderConfig struct {
	Type   models.Provider // Type of provider to create
	Client HTTPClient      // Client performs the outbound requests
	Logger *slog.Logger    // Logger for the provider
}

// ErrNoHTTPClient is returned when a provider is created without an HTTP client.
var ErrNoHTTPClient = errors.New("HTTP client is required")

// NewProvider creates a map provider client based on the provided configuration.
//
// Supported provider types:
// - "naver": Naver Map mobile search (HTML)
// - "kakao": Kakao Map search and place info (JSON), also a DetailFetcher
//
// Returns an error if the provider type is unsupported.
func NewProvider(config ProviderConfig) (Searcher, error) {
	if config.Client == nil {
		return nil, ErrNoHTTPClient
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}

	switch config.Type {
	case models.ProviderNaver:
		return NewNaverProvider(config.Client, config.Logger), nil
	case models.ProviderKakao:
		return NewKakaoProvider(config.Client, config.Logger), nil
	default:
		return nil, fmt.Errorf("unsupported provider type: %s", config.Type)
	}
}
