package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/UnknownOlympus/placebridge/internal/api"
	"github.com/UnknownOlympus/placebridge/internal/config"
	"github.com/UnknownOlympus/placebridge/internal/metrics"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the conversion API with health and metrics endpoints",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		// Cancel on interrupt so the server shuts down gracefully.
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		cfg := config.MustLoad()
		logger := setupLogger(cfg.Env, os.Stdout)

		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector())
		reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		appMetrics := metrics.NewMetrics(reg)

		converter, err := buildConverter(cfg, logger, appMetrics)
		if err != nil {
			return err
		}

		if cfg.Env != envLocal {
			gin.SetMode(gin.ReleaseMode)
		}
		router := api.NewRouter(logger, api.NewHandler(logger, converter, limitsFrom(cfg)), reg, api.RouterOptions{
			AllowOrigin: cfg.API.AllowOrigin,
			RateLimit:   cfg.API.RateLimit,
		})

		readTimeout := 5
		server := &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           router,
			ReadHeaderTimeout: time.Duration(readTimeout) * time.Second,
			ReadTimeout:       time.Duration(readTimeout) * time.Second,
		}

		group, groupCtx := errgroup.WithContext(ctx)
		group.Go(func() error {
			logger.InfoContext(ctx, "Starting API server", "port", cfg.Port)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("API server failed: %w", err)
			}

			return nil
		})
		group.Go(func() error {
			<-groupCtx.Done()
			logger.InfoContext(ctx, "Shutdown signal received. Stopping application...")

			shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
			defer cancel()

			return server.Shutdown(shutdownCtx)
		})

		if err := group.Wait(); err != nil {
			logger.ErrorContext(ctx, "Application stopped with error", "error", err)
			return err
		}

		logger.InfoContext(ctx, "Application stopped gracefully.")

		return nil
	},
}
