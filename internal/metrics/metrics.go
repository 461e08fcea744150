// Package metrics holds the Prometheus collectors of the dispatch platform.
package metrics

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// LatencyBuckets are the request latency histogram buckets in seconds.
var LatencyBuckets = []float64{0.01, 0.03, 0.05, 0.1, 0.2, 0.4, 1.0, 2.0}

// Entry outcomes recorded by the dispatch worker in addition to the
// business outcomes of DispatchOrderCommandHandler.
const (
	OutcomePoison = "poison"
	OutcomeError  = "error"
)

// Metrics groups every collector the service exports.
type Metrics struct {
	ordersCreated        prometheus.Counter
	ordersPublishFailed  prometheus.Counter
	ordersAssigned       prometheus.Counter
	couriersCreated      prometheus.Counter
	dispatchEntries      *prometheus.CounterVec
	streamEntriesClaimed prometheus.Counter
	httpLatency          *prometheus.HistogramVec
	activeOrders         prometheus.Gauge
	activeCouriers       prometheus.Gauge
}

// New registers the collectors on registerer, prometheus.DefaultRegisterer
// when nil. Registering twice on the same registerer reuses the existing
// collectors.
func New(registerer prometheus.Registerer) *Metrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &Metrics{
		ordersCreated: register(registerer, prometheus.NewCounter(prometheus.CounterOpts{
			Name: "orders_created_total",
			Help: "Total number of orders accepted by intake",
		})),
		ordersPublishFailed: register(registerer, prometheus.NewCounter(prometheus.CounterOpts{
			Name: "orders_publish_failed_total",
			Help: "Orders stored but not announced on the stream",
		})),
		ordersAssigned: register(registerer, prometheus.NewCounter(prometheus.CounterOpts{
			Name: "orders_assigned_total",
			Help: "Total number of orders assigned to a courier",
		})),
		couriersCreated: register(registerer, prometheus.NewCounter(prometheus.CounterOpts{
			Name: "couriers_created_total",
			Help: "Total number of registered couriers",
		})),
		dispatchEntries: register(registerer, prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dispatch_entries_total",
			Help: "Stream entries processed by the dispatch worker, by outcome",
		}, []string{"outcome"})),
		streamEntriesClaimed: register(registerer, prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dispatch_entries_reclaimed_total",
			Help: "Stale pending entries taken over for redelivery",
		})),
		httpLatency: register(registerer, prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_latency_seconds",
			Help:    "HTTP request latency",
			Buckets: LatencyBuckets,
		}, []string{"method", "route", "status"})),
		activeOrders: register(registerer, prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "active_orders",
			Help: "Orders in NEW, ASSIGNED or IN_PROGRESS",
		})),
		activeCouriers: register(registerer, prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "active_couriers",
			Help: "Couriers accepting new orders",
		})),
	}
}

func register[C prometheus.Collector](registerer prometheus.Registerer, collector C) C {
	err := registerer.Register(collector)
	if err == nil {
		return collector
	}

	var already prometheus.AlreadyRegisteredError
	if errors.As(err, &already) {
		existing, ok := already.ExistingCollector.(C)
		if !ok {
			panic(fmt.Sprintf("collector already registered with unexpected type %T", already.ExistingCollector))
		}
		return existing
	}
	panic(fmt.Sprintf("register collector: %v", err))
}

func (m *Metrics) RecordOrderCreated(published bool) {
	m.ordersCreated.Inc()
	if !published {
		m.ordersPublishFailed.Inc()
	}
}

func (m *Metrics) RecordOrderAssigned() {
	m.ordersAssigned.Inc()
}

func (m *Metrics) RecordCourierCreated() {
	m.couriersCreated.Inc()
}

// RecordDispatchEntry counts one processed stream entry.
func (m *Metrics) RecordDispatchEntry(outcome string) {
	m.dispatchEntries.WithLabelValues(outcome).Inc()
}

func (m *Metrics) RecordEntriesClaimed(n int) {
	m.streamEntriesClaimed.Add(float64(n))
}

// ObserveHTTPRequest records the latency of one request. route is the
// matched route pattern, not the raw path.
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, elapsed time.Duration) {
	m.httpLatency.WithLabelValues(method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}

// SetActiveCounts updates both gauges from one store snapshot.
func (m *Metrics) SetActiveCounts(orders, couriers int64) {
	m.activeOrders.Set(float64(orders))
	m.activeCouriers.Set(float64(couriers))
}
