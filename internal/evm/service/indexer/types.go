package indexer

import (
	"context"
	"time"

	"github.com/goodnatureofminers/ethtxs-indexer/internal/evm/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	BlockSource interface {
		LatestHeight(ctx context.Context) (uint64, error)
		FetchBlock(ctx context.Context, height uint64) (*model.Block, error)
	}
	BlockNormalizer interface {
		NormalizeBlock(ctx context.Context, block *model.Block) ([]model.Row, error)
	}
	TransactionRepository interface {
		InsertTransactions(ctx context.Context, height uint64, rows []model.Row) (int64, error)
	}
	MirrorRepository interface {
		InsertTransactions(ctx context.Context, rows []model.Row) error
	}
	FailureRegistry interface {
		RecordFailure(ctx context.Context, height uint64, stage string, cause error) error
		Resolve(ctx context.Context, height uint64) error
	}
	IndexerMetrics interface {
		ObserveFetch(err error, txs int, started time.Time)
		ObserveWrite(err error, rows int, started time.Time)
		ObserveOutcome(outcome string)
		FetchInFlight(delta int)
		ObserveMirrorFlush(size int, err error)
	}
)
