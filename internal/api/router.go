// Package api exposes batch conversion over HTTP together with health and metrics endpoints.
package api

import (
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

// RouterOptions configures the inbound policy of the API.
type RouterOptions struct {
	AllowOrigin string  // Value of the CORS allow-origin header, "*" when empty.
	RateLimit   float64 // Conversion requests per second, zero disables throttling.
}

// NewRouter registers the API, health and metrics routes.
func NewRouter(log *slog.Logger, handler *Handler, gatherer prometheus.Gatherer, opts RouterOptions) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(log))

	router.GET("/healthz", func(ctx *gin.Context) {
		ctx.String(http.StatusOK, "OK")
	})
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	api := router.Group("/api", cors(opts.AllowOrigin))
	api.OPTIONS("/convert", handler.preflight)
	api.POST("/convert", throttle(opts.RateLimit), handler.convert)

	return router
}

func cors(origin string) gin.HandlerFunc {
	if origin == "" {
		origin = "*"
	}

	return func(ctx *gin.Context) {
		ctx.Header("Access-Control-Allow-Origin", origin)
		ctx.Header("Access-Control-Allow-Methods", "POST, OPTIONS")
		ctx.Header("Access-Control-Allow-Headers", "content-type")
		ctx.Next()
	}
}

// throttle rejects requests above perSecond with 429. A non-positive rate lets everything through.
func throttle(perSecond float64) gin.HandlerFunc {
	if perSecond <= 0 {
		return func(ctx *gin.Context) { ctx.Next() }
	}

	limiter := rate.NewLimiter(rate.Limit(perSecond), max(1, int(math.Ceil(perSecond))))

	return func(ctx *gin.Context) {
		if !limiter.Allow() {
			ctx.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		ctx.Next()
	}
}

func requestLogger(log *slog.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()

		log.InfoContext(ctx.Request.Context(), "Handled request",
			"method", ctx.Request.Method,
			"path", ctx.FullPath(),
			"status", ctx.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
