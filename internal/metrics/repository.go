package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	repositoryRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "repository",
		Name:      "operations_total",
		Help:      "Count of repository operations.",
	}, []string{"store", "operation", "chain", "status"})
	repositoryRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "repository",
		Name:      "operation_duration_seconds",
		Help:      "Duration of repository operations.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 15, 20, 30},
	}, []string{"store", "operation", "chain", "status"})
)

// Repository tracks metrics for one storage backend (postgres, clickhouse, redis).
type Repository struct {
	store string
	chain string
}

// NewRepository creates a Repository metrics collector for the named store.
func NewRepository(store, chain string) *Repository {
	if store == "" {
		store = "unknown"
	}
	return &Repository{store: store, chain: chainLabel(chain)}
}

// Observe records duration and status of a repository operation.
func (m Repository) Observe(operation string, err error, started time.Time) {
	status := statusLabel(err)
	repositoryRequestsTotal.WithLabelValues(m.store, operation, m.chain, status).Inc()
	repositoryRequestDuration.WithLabelValues(m.store, operation, m.chain, status).Observe(time.Since(started).Seconds())
}
