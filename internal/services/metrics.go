package services

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics collects the service-level Prometheus instruments.
type Metrics struct {
	Requests        *prometheus.CounterVec
	ScoringDuration *prometheus.HistogramVec
	CatalogSize     prometheus.Gauge
	CacheHits       prometheus.Counter
}

// Request outcome labels.
const (
	OutcomeOK                 = "ok"
	OutcomeNoCandidates       = "no_candidates"
	OutcomeDatasetUnavailable = "dataset_unavailable"
	OutcomeError              = "error"
)

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "phonerec_requests_total",
			Help: "Recommendation requests by engine mode and outcome.",
		}, []string{"mode", "outcome"}),
		ScoringDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "phonerec_scoring_duration_seconds",
			Help:    "Time spent scoring a request, by engine mode.",
			Buckets: prometheus.DefBuckets,
		}, []string{"mode"}),
		CatalogSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "phonerec_catalog_rows",
			Help: "Number of catalog rows loaded at startup.",
		}),
		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "phonerec_cache_hits_total",
			Help: "Recommendation responses served from the cache.",
		}),
	}

	if reg != nil {
		reg.MustRegister(m.Requests, m.ScoringDuration, m.CatalogSize, m.CacheHits)
	}
	return m
}
