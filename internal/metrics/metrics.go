package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Conversions    *prometheus.CounterVec
	UpstreamErrors *prometheus.CounterVec
	RequestSeconds *prometheus.HistogramVec
	MatchScore     prometheus.Histogram
	ActiveWorkers  prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		Conversions: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "placebridge_conversions_total",
			Help: "Total number of converted entries.",
		}, []string{"direction", "status"}),
		UpstreamErrors: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "placebridge_upstream_errors_total",
			Help: "Total number of errors received from the map providers.",
		}, []string{"provider"}),
		RequestSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "placebridge_upstream_request_duration_seconds",
			Help:    "Duration of requests to the map providers.",
			Buckets: prometheus.DefBuckets,
		}, []string{"provider", "operation"}),
		MatchScore: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Name:    "placebridge_match_score",
			Help:    "Score of the picked target candidate.",
			Buckets: prometheus.LinearBuckets(0.1, 0.1, 10),
		}),
		ActiveWorkers: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "placebridge_active_workers",
			Help: "Current number of active workers converting entries.",
		}),
	}
}
