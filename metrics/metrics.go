package metrics

import (
	"time"

	"github.com/GlintPay/storefront/backend"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OpRead  = "read"
	OpWrite = "write"
)

// Metrics is safe to use as a nil pointer, in which case nothing is recorded
type Metrics struct {
	backendCalls   *prometheus.CounterVec
	backendLatency *prometheus.HistogramVec
	fallbacks      prometheus.Counter
	orders         *prometheus.CounterVec
	statusChanges  *prometheus.CounterVec
}

func New(reg prometheus.Registerer, prefix string) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		backendCalls: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: prefix,
			Name:      "backend_calls_total",
			Help:      "Storage backend calls by backend, operation and outcome",
		}, []string{"backend", "operation", "outcome"}),

		backendLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: prefix,
			Name:      "backend_call_seconds",
			Help:      "Storage backend call latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"backend", "operation"}),

		fallbacks: factory.NewCounter(prometheus.CounterOpts{
			Namespace: prefix,
			Name:      "default_document_served_total",
			Help:      "Reads answered with the built-in document because no backend held one",
		}),

		orders: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: prefix,
			Name:      "orders_total",
			Help:      "Orders placed, by whether they were persisted",
		}, []string{"persisted"}),

		statusChanges: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: prefix,
			Name:      "order_status_changes_total",
			Help:      "Order status changes by target status",
		}, []string{"status"}),
	}
}

func (m *Metrics) BackendCall(name string, operation string, err error, elapsed time.Duration) {
	if m == nil {
		return
	}

	outcome := "ok"
	if err != nil {
		outcome = outcomeLabel(err)
	}

	m.backendCalls.WithLabelValues(name, operation, outcome).Inc()
	m.backendLatency.WithLabelValues(name, operation).Observe(elapsed.Seconds())
}

func (m *Metrics) DefaultServed() {
	if m == nil {
		return
	}
	m.fallbacks.Inc()
}

func (m *Metrics) OrderPlaced(persisted bool) {
	if m == nil {
		return
	}
	if persisted {
		m.orders.WithLabelValues("true").Inc()
	} else {
		m.orders.WithLabelValues("false").Inc()
	}
}

func (m *Metrics) StatusChanged(status string) {
	if m == nil {
		return
	}
	m.statusChanges.WithLabelValues(status).Inc()
}

func outcomeLabel(err error) string {
	switch backend.Classify(err) {
	case "not found":
		return "not_found"
	case "configuration missing":
		return "configuration_missing"
	case "remote unavailable":
		return "remote_unavailable"
	case "local I/O failure":
		return "local_io"
	default:
		return "error"
	}
}
