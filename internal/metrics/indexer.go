package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	indexerFetchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "indexer",
		Name:      "fetch_duration_seconds",
		Help:      "Duration of fetching and normalizing a single block.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"chain", "status"})

	indexerBlockTransactions = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "indexer",
		Name:      "block_transactions",
		Help:      "Number of transactions per fetched block.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 12), // 1..2048
	}, []string{"chain"})

	indexerWriteDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "indexer",
		Name:      "write_duration_seconds",
		Help:      "Duration of the bulk insert for a single block.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"chain", "status"})

	indexerRowsWritten = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "indexer",
		Name:      "rows_written_total",
		Help:      "Count of transaction rows persisted.",
	}, []string{"chain"})

	indexerHeightsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "indexer",
		Name:      "heights_total",
		Help:      "Count of finished heights by outcome.",
	}, []string{"chain", "outcome"})

	indexerFetchInFlight = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "indexer",
		Name:      "fetch_in_flight",
		Help:      "Number of block fetches currently in flight.",
	}, []string{"chain"})

	indexerMirrorFlushes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "indexer",
		Name:      "mirror_flushes_total",
		Help:      "Count of analytics mirror flushes.",
	}, []string{"chain", "status"})

	indexerMirrorRows = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "indexer",
		Name:      "mirror_rows_total",
		Help:      "Count of rows flushed to the analytics mirror.",
	}, []string{"chain", "status"})
)

// Indexer tracks metrics for the fetch/write sweep.
type Indexer struct {
	chain string
}

// NewIndexer constructs an Indexer collector.
func NewIndexer(chain string) *Indexer {
	return &Indexer{chain: chainLabel(chain)}
}

// ObserveFetch records a fetch+normalize attempt and the block size.
func (m Indexer) ObserveFetch(err error, txs int, started time.Time) {
	indexerFetchDuration.WithLabelValues(m.chain, statusLabel(err)).Observe(time.Since(started).Seconds())
	if err == nil {
		indexerBlockTransactions.WithLabelValues(m.chain).Observe(float64(txs))
	}
}

// ObserveWrite records a bulk insert attempt.
func (m Indexer) ObserveWrite(err error, rows int, started time.Time) {
	indexerWriteDuration.WithLabelValues(m.chain, statusLabel(err)).Observe(time.Since(started).Seconds())
	if err == nil {
		indexerRowsWritten.WithLabelValues(m.chain).Add(float64(rows))
	}
}

// ObserveOutcome counts a height that reached a terminal state.
func (m Indexer) ObserveOutcome(outcome string) {
	indexerHeightsTotal.WithLabelValues(m.chain, outcome).Inc()
}

// FetchInFlight moves the in-flight gauge by delta.
func (m Indexer) FetchInFlight(delta int) {
	indexerFetchInFlight.WithLabelValues(m.chain).Add(float64(delta))
}

// ObserveMirrorFlush records an analytics mirror flush.
func (m Indexer) ObserveMirrorFlush(size int, err error) {
	status := statusLabel(err)
	indexerMirrorFlushes.WithLabelValues(m.chain, status).Inc()
	indexerMirrorRows.WithLabelValues(m.chain, status).Add(float64(size))
}
