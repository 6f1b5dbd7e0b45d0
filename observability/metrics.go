package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics are the prometheus collectors of the search pipeline.
type Metrics struct {
	Searches       *prometheus.CounterVec
	SearchDuration *prometheus.HistogramVec
	CacheLookups   *prometheus.CounterVec
	Geocodes       *prometheus.CounterVec
	Analyses       *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Searches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "landwatch",
			Name:      "searches_total",
			Help:      "Searches served, by mode and outcome",
		}, []string{"mode", "outcome"}),
		SearchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "landwatch",
			Name:      "search_duration_seconds",
			Help:      "Time spent building a search response",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		}, []string{"mode"}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "landwatch",
			Name:      "cache_lookups_total",
			Help:      "Response cache lookups, by result",
		}, []string{"result"}),
		Geocodes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "landwatch",
			Name:      "geocodes_total",
			Help:      "Location geocoding attempts, by result",
		}, []string{"result"}),
		Analyses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "landwatch",
			Name:      "analyses_total",
			Help:      "Document analyses, by source",
		}, []string{"source"}),
	}
	if reg != nil {
		reg.MustRegister(m.Searches, m.SearchDuration, m.CacheLookups, m.Geocodes, m.Analyses)
	}
	return m
}
