package normalize

import (
	"context"

	"github.com/goodnatureofminers/ethtxs-indexer/internal/evm/model"
	"golang.org/x/sync/errgroup"
)

// DefaultReceiptWidth bounds receipt lookups per block when no width is configured.
const DefaultReceiptWidth = 8

// Normalizer turns fetched blocks into rows, resolving receipt statuses concurrently.
type Normalizer struct {
	receipts ReceiptSource
	width    int
	filter   *AddressFilter
}

// NewNormalizer builds a Normalizer. filter may be nil.
func NewNormalizer(receipts ReceiptSource, width int, filter *AddressFilter) *Normalizer {
	if width <= 0 {
		width = DefaultReceiptWidth
	}
	return &Normalizer{
		receipts: receipts,
		width:    width,
		filter:   filter,
	}
}

// NormalizeBlock returns one row per kept transaction in block order. Amounts are converted
// before any receipt is requested so a malformed transaction costs no network round trips.
func (n *Normalizer) NormalizeBlock(ctx context.Context, block *model.Block) ([]model.Row, error) {
	kept := make([]model.Transaction, 0, len(block.Transactions))
	rows := make([]model.Row, 0, len(block.Transactions))
	for _, tx := range block.Transactions {
		if !n.filter.Match(tx) {
			continue
		}
		row, err := ToRow(tx, block.Timestamp, block.Height, false)
		if err != nil {
			return nil, &TxError{TxHash: tx.Hash, Err: err}
		}
		kept = append(kept, tx)
		rows = append(rows, row)
	}

	g := new(errgroup.Group)
	g.SetLimit(n.width)
	for i := range kept {
		g.Go(func() error {
			rows[i].Status = n.receipts.ReceiptStatus(ctx, kept[i].Hash)
			return nil
		})
	}
	_ = g.Wait()

	// Statuses resolved after cancellation are unknown, not failed.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return rows, nil
}
