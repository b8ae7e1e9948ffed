// Package metrics registers the Prometheus collectors exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// CalculationDuration observes how long one aggregate query takes,
	// labelled by query kind.
	CalculationDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "asset_tracker_calculation_duration_seconds",
		Help:    "Duration of balance aggregate calculations.",
		Buckets: prometheus.DefBuckets,
	}, []string{"query"})

	// CacheHits counts aggregate queries answered from the result cache.
	CacheHits = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "asset_tracker_cache_hits_total",
		Help: "Aggregate queries served from cache.",
	}, []string{"query"})

	// CacheMisses counts aggregate queries that had to recompute.
	CacheMisses = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "asset_tracker_cache_misses_total",
		Help: "Aggregate queries that recomputed from a snapshot.",
	}, []string{"query"})

	// LastTotalBalance tracks the most recent all-wallets total, labelled by
	// display currency.
	LastTotalBalance = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "asset_tracker_last_total_balance",
		Help: "Most recently computed all-wallets total in user currency.",
	}, []string{"currency"})
)

// MustRegister registers all collectors with the default registry.
func MustRegister() {
	prometheus.MustRegister(CalculationDuration, CacheHits, CacheMisses, LastTotalBalance)
}
