package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Лента изменений заказов (Kafka).
var (
	ChangeEventsConsumed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_change_events_consumed_total",
			Help: "Number of change events fetched from Kafka",
		},
		[]string{"topic"},
	)
	ChangeEventsApplied = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_change_events_applied_total",
			Help: "Number of change events applied to the sync cache",
		},
		[]string{"topic"},
	)
	ChangeEventsFailed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_change_events_failed_total",
			Help: "Number of change events failed to apply",
		},
		[]string{"topic"},
	)
	ChangeEventsPublished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_change_events_published_total",
			Help: "Change events published after successful mutations",
		},
		[]string{"result"}, // ok|error
	)
)

// Кэш синхронизации.
var (
	CacheOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sync_cache_operations_total",
			Help: "Sync cache operations",
		},
		[]string{"op"}, // hit|miss|stale|dedup|invalidated|evicted|expired
	)
	CacheSize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "sync_cache_entries",
			Help: "Number of query entries currently in the sync cache",
		},
	)
	QueryFetches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sync_cache_fetches_total",
			Help: "Query fetches by query kind and result",
		},
		[]string{"query", "result"}, // result: ok|error|retry
	)
	Mutations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_mutations_total",
			Help: "Order mutations by kind and result",
		},
		[]string{"kind", "result"}, // result: ok|error|rejected
	)
	Subscriptions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "sync_cache_subscriptions",
			Help: "Active view subscriptions with periodic refresh",
		},
	)
)

// Шлюз к API заказов.
var (
	GatewayRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_api_requests_total",
			Help: "Requests to the remote order API",
		},
		[]string{"method", "route", "code"}, // code: HTTP код или "transport"
	)
	GatewayLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "order_api_request_duration_seconds",
			Help:    "Remote order API latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
	AuthAcquisitionFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "order_api_auth_acquisition_failures_total",
			Help: "Silent token acquisitions that failed (request proceeded unauthenticated)",
		},
	)
)

var registerOnce sync.Once

// MustRegister - регистрация в default registry; повторный вызов безопасен.
func MustRegister() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			ChangeEventsConsumed, ChangeEventsApplied, ChangeEventsFailed, ChangeEventsPublished,
			CacheOps, CacheSize, QueryFetches, Mutations, Subscriptions,
			GatewayRequests, GatewayLatency, AuthAcquisitionFailures,
		)
	})
}
