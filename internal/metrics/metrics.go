package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ChainCallsTotal tracks chain API calls per chain and method
	ChainCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "walletd_chain_calls_total",
			Help: "Total number of chain API calls",
		},
		[]string{"chain", "method"},
	)

	// ChainErrorsTotal tracks chain API errors per chain and method
	ChainErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "walletd_chain_errors_total",
			Help: "Total number of chain API errors",
		},
		[]string{"chain", "method"},
	)

	// ChainCallLatency tracks chain API call latency
	ChainCallLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "walletd_chain_call_latency_seconds",
			Help:    "Chain API call latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"chain", "method"},
	)

	// PriceFetchesTotal tracks live price/rate fetch attempts by outcome
	PriceFetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "walletd_price_fetches_total",
			Help: "Total number of live price and rate fetches",
		},
		[]string{"kind", "outcome"},
	)

	// PriceCacheHits tracks rate cache hits and misses
	PriceCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "walletd_price_cache_total",
			Help: "Price cache lookups by result",
		},
		[]string{"result"},
	)

	// FallbacksServed tracks how often mock fallback data replaced live data
	FallbacksServed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "walletd_price_fallbacks_total",
			Help: "Total number of fallback prices or rates served",
		},
		[]string{"kind"},
	)

	// StoreOpsTotal tracks wallet store operations by outcome
	StoreOpsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "walletd_store_ops_total",
			Help: "Total number of secure store operations",
		},
		[]string{"op", "outcome"},
	)
)
