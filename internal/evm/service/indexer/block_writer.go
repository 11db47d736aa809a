package indexer

import (
	"context"
	"time"

	"github.com/goodnatureofminers/ethtxs-indexer/internal/evm/model"
	"github.com/goodnatureofminers/ethtxs-indexer/pkg/batcher"
	"go.uber.org/zap"
)

// blockWriter persists one block per call and forwards committed rows to the optional mirror.
type blockWriter struct {
	repo         TransactionRepository
	metrics      IndexerMetrics
	logger       *zap.Logger
	mirrorBuffer *batcher.Batcher[model.Row]
}

func newBlockWriter(repo TransactionRepository, mirror MirrorRepository, metrics IndexerMetrics, logger *zap.Logger) *blockWriter {
	w := &blockWriter{
		repo:    repo,
		metrics: metrics,
		logger:  logger,
	}
	if mirror != nil {
		w.mirrorBuffer = batcher.New[model.Row](
			logger.Named("mirrorBatcher"),
			mirror.InsertTransactions,
			batcher.Config{
				FlushSize:        mirrorFlushSize,
				FlushInterval:    mirrorFlushInterval,
				FlushesPerSecond: mirrorFlushesPerSecond,
			},
			metrics.ObserveMirrorFlush,
		)
	}
	return w
}

func (w *blockWriter) Start(ctx context.Context) {
	if w.mirrorBuffer != nil {
		w.mirrorBuffer.Start(ctx)
	}
}

// Stop flushes rows still buffered for the mirror.
func (w *blockWriter) Stop() {
	if w.mirrorBuffer != nil {
		w.mirrorBuffer.Stop()
	}
}

// WriteBlock stores rows for height. Mirror failures are logged and never fail the block.
func (w *blockWriter) WriteBlock(ctx context.Context, height uint64, rows []model.Row) error {
	started := time.Now()
	inserted, err := w.repo.InsertTransactions(ctx, height, rows)
	w.metrics.ObserveWrite(err, int(inserted), started)
	if err != nil {
		return err
	}

	if w.mirrorBuffer != nil && len(rows) > 0 {
		if err := w.mirrorBuffer.AddAll(ctx, rows); err != nil {
			w.logger.Warn("mirror enqueue failed", zap.Uint64("height", height), zap.Error(err))
		}
	}
	return nil
}
