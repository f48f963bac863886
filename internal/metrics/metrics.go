package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "acoruss_payments"

var (
	PaymentsInitiated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "initiated_total",
			Help:      "Payments initiated, by request currency and whether a new row was created",
		},
		[]string{"currency", "created"},
	)

	PaymentAmounts = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "settlement_amounts",
			Help:      "Settlement amounts of initiated payments",
			Buckets:   prometheus.ExponentialBuckets(100, 4, 8),
		},
		[]string{"currency"},
	)

	Transitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transitions_total",
			Help:      "Ledger transitions applied",
		},
		[]string{"transition"},
	)

	Refunds = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "refunds_total",
			Help:      "Refund requests, by outcome",
		},
		[]string{"outcome"},
	)

	RateLimited = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limited_total",
			Help:      "API requests rejected by the per-key rate limit",
		},
	)

	RateFetches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "exchange_rate_fetches_total",
			Help:      "Exchange rate lookups that reached the rate source, by result",
		},
		[]string{"result"},
	)

	WebhookAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "webhook_attempts_total",
			Help:      "Webhook delivery attempts, by event and outcome",
		},
		[]string{"event", "outcome"},
	)

	WebhookLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "webhook_latency_seconds",
			Help:      "Time spent on a single webhook POST",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"event"},
	)
)

var registerOnce sync.Once

// RegisterMetrics registers the collectors with the default registry. Safe to
// call more than once.
func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			PaymentsInitiated,
			PaymentAmounts,
			Transitions,
			Refunds,
			RateLimited,
			RateFetches,
			WebhookAttempts,
			WebhookLatency,
		)
	})
}
