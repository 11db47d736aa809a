// Package indexer sweeps a height range: bounded concurrent fetches, one independent write per block,
// and an aggregated report that never aborts on a single height.
package indexer

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"sync"
	"sync/atomic"
	"time"

	"github.com/goodnatureofminers/ethtxs-indexer/internal/evm/model"
	"github.com/goodnatureofminers/ethtxs-indexer/internal/evm/normalize"
	"github.com/goodnatureofminers/ethtxs-indexer/pkg/workerpool"
	"go.uber.org/zap"
)

// Config tunes a sweep. Zero values fall back to defaults.
type Config struct {
	// FetchWidth caps fetches in flight. Writes are not capped by it.
	FetchWidth       int
	ProgressInterval time.Duration
}

// Orchestrator runs sweeps. Mirror and registry are optional.
type Orchestrator struct {
	source     BlockSource
	normalizer BlockNormalizer
	repo       TransactionRepository
	mirror     MirrorRepository
	registry   FailureRegistry
	metrics    IndexerMetrics
	logger     *zap.Logger

	fetchWidth       int
	progressInterval time.Duration

	progress atomic.Pointer[Progress]
}

// NewOrchestrator wires the sweep dependencies.
func NewOrchestrator(
	source BlockSource,
	normalizer BlockNormalizer,
	repo TransactionRepository,
	mirror MirrorRepository,
	registry FailureRegistry,
	metrics IndexerMetrics,
	cfg Config,
	logger *zap.Logger,
) (*Orchestrator, error) {
	if source == nil || normalizer == nil || repo == nil {
		return nil, errors.New("source, normalizer and repository are required")
	}
	if metrics == nil {
		return nil, errors.New("indexer metrics is required")
	}
	if cfg.FetchWidth <= 0 {
		cfg.FetchWidth = defaultFetchWidth
	}
	if cfg.ProgressInterval <= 0 {
		cfg.ProgressInterval = defaultProgressInterval
	}

	return &Orchestrator{
		source:           source,
		normalizer:       normalizer,
		repo:             repo,
		mirror:           mirror,
		registry:         registry,
		metrics:          metrics,
		logger:           logger,
		fetchWidth:       cfg.FetchWidth,
		progressInterval: cfg.ProgressInterval,
	}, nil
}

// ResolveRange fills an open end with the chain head, read once.
func (o *Orchestrator) ResolveRange(ctx context.Context, start uint64, end *uint64) (model.Range, error) {
	if end != nil {
		r := model.Range{Start: start, End: *end}
		return r, r.Validate()
	}
	head, err := o.source.LatestHeight(ctx)
	if err != nil {
		return model.Range{}, fmt.Errorf("resolve chain head: %w", err)
	}
	r := model.Range{Start: start, End: head}
	return r, r.Validate()
}

// Run sweeps every height in r in ascending submission order.
func (o *Orchestrator) Run(ctx context.Context, r model.Range) (Report, error) {
	if err := r.Validate(); err != nil {
		return Report{}, err
	}
	o.logger.Info("sweep started",
		zap.Uint64("range_start", r.Start),
		zap.Uint64("range_end", r.End),
		zap.Int("fetch_width", o.fetchWidth),
	)
	return o.sweep(ctx, r.Len(), r.Heights()), nil
}

// RunHeights sweeps an explicit height list, such as previously failed heights.
func (o *Orchestrator) RunHeights(ctx context.Context, heights []uint64) (Report, error) {
	o.logger.Info("sweep started", zap.Int("heights", len(heights)), zap.Int("fetch_width", o.fetchWidth))
	return o.sweep(ctx, uint64(len(heights)), workerpool.Slice(heights)), nil
}

// Status returns the progress of the current or last sweep.
func (o *Orchestrator) Status() Snapshot {
	p := o.progress.Load()
	if p == nil {
		return Snapshot{}
	}
	return p.Snapshot()
}

func (o *Orchestrator) sweep(ctx context.Context, total uint64, heights iter.Seq[uint64]) Report {
	progress := newProgress(total, time.Now())
	o.progress.Store(progress)

	writer := newBlockWriter(o.repo, o.mirror, o.metrics, o.logger.Named("blockWriter"))
	writer.Start(ctx)

	reporterCtx, stopReporter := context.WithCancel(ctx)
	reporterDone := make(chan struct{})
	go func() {
		defer close(reporterDone)
		o.reportProgress(reporterCtx, progress)
	}()

	var writes sync.WaitGroup
	workerpool.Run(ctx, o.fetchWidth, heights, func(ctx context.Context, height uint64) {
		progress.attempt()
		rows, ok := o.fetchHeight(ctx, height, progress)
		if !ok {
			return
		}
		writes.Add(1)
		go func() {
			defer writes.Done()
			o.writeHeight(ctx, writer, height, rows, progress)
		}()
	})
	writes.Wait()

	writer.Stop()
	stopReporter()
	<-reporterDone

	report := progress.finish()
	o.logSummary(report)
	return report
}

// fetchHeight runs inside a fetch slot: block retrieval, normalization and receipt lookups.
func (o *Orchestrator) fetchHeight(ctx context.Context, height uint64, progress *Progress) ([]model.Row, bool) {
	if err := ctx.Err(); err != nil {
		o.fail(ctx, progress, Failure{Height: height, Stage: StageFetch, Err: err})
		return nil, false
	}

	o.metrics.FetchInFlight(1)
	defer o.metrics.FetchInFlight(-1)

	started := time.Now()
	block, err := o.source.FetchBlock(ctx, height)
	txs := 0
	if block != nil {
		txs = len(block.Transactions)
	}
	o.metrics.ObserveFetch(err, txs, started)
	if err != nil {
		o.fail(ctx, progress, Failure{Height: height, Stage: StageFetch, Err: err})
		return nil, false
	}

	rows, err := o.normalizer.NormalizeBlock(ctx, block)
	if err != nil {
		failure := Failure{Height: height, Stage: StageNormalize, Err: err}
		var txErr *normalize.TxError
		if errors.As(err, &txErr) {
			failure.TxHash = txErr.TxHash.Hex()
		}
		if errors.Is(err, normalize.ErrConversion) {
			o.logger.Error("ledger amount could not be converted exactly",
				zap.Uint64("height", height),
				zap.String("tx_hash", failure.TxHash),
				zap.Error(err),
			)
		}
		o.fail(ctx, progress, failure)
		return nil, false
	}

	progress.fetch()
	return rows, true
}

func (o *Orchestrator) writeHeight(ctx context.Context, writer *blockWriter, height uint64, rows []model.Row, progress *Progress) {
	if err := writer.WriteBlock(ctx, height, rows); err != nil {
		o.fail(ctx, progress, Failure{Height: height, Stage: StageWrite, Err: err})
		return
	}

	progress.commit(len(rows))
	o.metrics.ObserveOutcome(outcomeCommitted)
	if o.registry != nil {
		if err := o.registry.Resolve(ctx, height); err != nil {
			o.logger.Warn("failure registry resolve failed", zap.Uint64("height", height), zap.Error(err))
		}
	}
}

func (o *Orchestrator) fail(ctx context.Context, progress *Progress, f Failure) {
	progress.fail(f)
	o.metrics.ObserveOutcome(string(f.Stage) + "_failed")
	o.logger.Debug("height failed",
		zap.Uint64("height", f.Height),
		zap.String("stage", string(f.Stage)),
		zap.String("tx_hash", f.TxHash),
		zap.Error(f.Err),
	)

	if o.registry == nil {
		return
	}
	// Recorded even after cancellation so the height can be retried later.
	if err := o.registry.RecordFailure(context.WithoutCancel(ctx), f.Height, string(f.Stage), f.Err); err != nil {
		o.logger.Warn("failure registry record failed", zap.Uint64("height", f.Height), zap.Error(err))
	}
}

func (o *Orchestrator) reportProgress(ctx context.Context, progress *Progress) {
	ticker := time.NewTicker(o.progressInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s := progress.Snapshot()
			o.logger.Info("sweep progress",
				zap.Uint64("total", s.Total),
				zap.Uint64("attempted", s.Attempted),
				zap.Uint64("committed", s.Committed),
				zap.Uint64("failed", s.Failed),
				zap.Uint64("rows", s.Rows),
				zap.Duration("elapsed", s.Elapsed),
			)
		}
	}
}

func (o *Orchestrator) logSummary(r Report) {
	o.logger.Info("sweep finished",
		zap.Uint64("attempted", r.Attempted),
		zap.Uint64("committed", r.Committed),
		zap.Uint64("failed", r.Failed),
		zap.Uint64("rows", r.Rows),
		zap.Duration("elapsed", r.Elapsed),
	)

	for i, f := range r.Failures {
		if i == maxLoggedFailures {
			o.logger.Warn("more failed heights omitted", zap.Int("omitted", len(r.Failures)-maxLoggedFailures))
			break
		}
		o.logger.Warn("height failed",
			zap.Uint64("height", f.Height),
			zap.String("stage", string(f.Stage)),
			zap.String("tx_hash", f.TxHash),
			zap.Error(f.Err),
		)
	}
}
