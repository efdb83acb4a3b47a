// Package metrics exposes Prometheus instrumentation for the fulfillment
// workflow. A custom Registerer can be injected in tests to keep metric
// registration isolated.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// FulfillmentMetrics carries the counters and histograms recorded by the
// fulfillment workflow.
type FulfillmentMetrics struct {
	ordersFulfilled     prometheus.Counter
	fulfillmentFailures *prometheus.CounterVec
	fulfillmentDuration prometheus.Histogram
	pickingsParked      prometheus.Counter
	returnsCreated      prometheus.Counter
}

// NewFulfillmentMetrics registers the fulfillment metrics with the given
// registerer. Pass prometheus.DefaultRegisterer in production.
func NewFulfillmentMetrics(reg prometheus.Registerer) *FulfillmentMetrics {
	factory := promauto.With(reg)

	return &FulfillmentMetrics{
		ordersFulfilled: factory.NewCounter(prometheus.CounterOpts{
			Name: "fulfillment_orders_fulfilled_total",
			Help: "Number of orders that completed the fulfillment workflow.",
		}),
		fulfillmentFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "fulfillment_failures_total",
			Help: "Number of failed fulfillment attempts by failure reason.",
		}, []string{"reason"}),
		fulfillmentDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "fulfillment_duration_seconds",
			Help:    "Wall-clock duration of the fulfillment workflow.",
			Buckets: prometheus.DefBuckets,
		}),
		pickingsParked: factory.NewCounter(prometheus.CounterOpts{
			Name: "fulfillment_pickings_parked_total",
			Help: "Number of pickings parked in waiting due to stock shortage.",
		}),
		returnsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "fulfillment_returns_created_total",
			Help: "Number of return pickings created during fulfillment.",
		}),
	}
}

// RecordFulfilled records a completed workflow and its duration.
func (m *FulfillmentMetrics) RecordFulfilled(elapsed time.Duration) {
	m.ordersFulfilled.Inc()
	m.fulfillmentDuration.Observe(elapsed.Seconds())
}

// RecordFailure records a failed fulfillment attempt.
func (m *FulfillmentMetrics) RecordFailure(reason string) {
	m.fulfillmentFailures.WithLabelValues(reason).Inc()
}

// RecordPickingParked records a picking parked on a stock shortage.
func (m *FulfillmentMetrics) RecordPickingParked() {
	m.pickingsParked.Inc()
}

// RecordReturnCreated records a created return picking.
func (m *FulfillmentMetrics) RecordReturnCreated() {
	m.returnsCreated.Inc()
}
