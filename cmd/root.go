package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/UnknownOlympus/placebridge/internal/api"
	"github.com/UnknownOlympus/placebridge/internal/config"
	"github.com/UnknownOlympus/placebridge/internal/httpclient"
	"github.com/UnknownOlympus/placebridge/internal/metrics"
	"github.com/UnknownOlympus/placebridge/internal/models"
	"github.com/UnknownOlympus/placebridge/internal/provider"
	"github.com/UnknownOlympus/placebridge/internal/resolver"
	"github.com/UnknownOlympus/placebridge/internal/service"
	"github.com/spf13/cobra"
)

// Constants for different environment types.
const (
	envLocal = "local"
	envDev   = "development"
	envProd  = "production"
)

var rootCmd = &cobra.Command{
	Use:   "placebridge",
	Short: "Convert place links between Naver Map and Kakao Map",
	Long: `
placebridge finds the Kakao Map place matching a Naver Map place and the other
way around. Each match carries the distance between both places and whether it
is within the accepted threshold.
`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serveCmd, convertCmd)
}

// buildConverter wires the outbound client, both providers and the source resolver into a converter.
func buildConverter(cfg *config.Config, log *slog.Logger, appMetrics *metrics.Metrics) (*service.Converter, error) {
	var trace io.Writer
	if cfg.HTTP.Trace {
		trace = os.Stderr
	}
	client := httpclient.New(httpclient.Options{
		Timeout:   cfg.HTTP.Timeout,
		UserAgent: cfg.HTTP.UserAgent,
		Trace:     trace,
		TraceBody: cfg.Env == envLocal,
	})

	naver, err := provider.NewProvider(provider.ProviderConfig{Type: models.ProviderNaver, Client: client, Logger: log})
	if err != nil {
		return nil, fmt.Errorf("failed to create naver provider: %w", err)
	}
	kakao, err := provider.NewProvider(provider.ProviderConfig{Type: models.ProviderKakao, Client: client, Logger: log})
	if err != nil {
		return nil, fmt.Errorf("failed to create kakao provider: %w", err)
	}
	kakaoDetail, ok := kakao.(provider.DetailFetcher)
	if !ok {
		return nil, errors.New("kakao provider cannot fetch place details")
	}

	naverSearch := service.InstrumentSearcher(naver, models.ProviderNaver, appMetrics)
	kakaoSearch := service.InstrumentSearcher(kakao, models.ProviderKakao, appMetrics)

	sources := resolver.NewSourceResolver(
		log,
		naverSearch,
		kakaoSearch,
		service.InstrumentDetailFetcher(kakaoDetail, models.ProviderKakao, appMetrics),
		httpclient.NewRedirectResolver(client, log),
		cfg.Convert.RedirectMaxHops,
	)

	return service.NewConverter(log, sources, naverSearch, kakaoSearch, appMetrics, cfg.Convert.Workers), nil
}

func limitsFrom(cfg *config.Config) api.Limits {
	return api.Limits{
		MaxEntries:               cfg.Convert.MaxEntries,
		DefaultMaxDistanceMeters: cfg.Convert.MaxDistanceMeters,
	}
}

// setupLogger initializes and returns a logger based on the environment provided.
func setupLogger(env string, out io.Writer) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(out, &slog.HandlerOptions{
				Level:     slog.LevelDebug,
				AddSource: true,
			}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(out, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(out, &slog.HandlerOptions{
				Level:       slog.LevelWarn,
				ReplaceAttr: dropTime,
			}),
		)
	default:
		log = slog.New(
			slog.NewJSONHandler(out, &slog.HandlerOptions{
				Level:       slog.LevelError,
				ReplaceAttr: dropTime,
			}),
		)

		log.Error(
			"The env parameter was not specified or was invalid. Logging will be minimal, by default.",
			slog.String("available_envs", "local, development, production"))
	}

	return log
}

func dropTime(_ []string, a slog.Attr) slog.Attr {
	if a.Key == slog.TimeKey {
		return slog.Attr{}
	}

	return a
}
