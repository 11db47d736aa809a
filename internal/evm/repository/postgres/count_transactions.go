package postgres

import (
	"context"
	"fmt"
	"strconv"
	"time"
)

// CountByBlock returns the number of stored rows for a block height.
func (r *Repository) CountByBlock(ctx context.Context, height uint64) (count int64, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("count_by_block", err, start)
	}()

	const query = `SELECT count(*) FROM public.ethtxs WHERE block = $1::TEXT::NUMERIC`
	if err = r.pool.QueryRow(ctx, query, strconv.FormatUint(height, 10)).Scan(&count); err != nil {
		return 0, fmt.Errorf("count rows for block %d: %w", height, err)
	}
	return count, nil
}

// CountByHash returns the number of stored rows for a transaction hash.
func (r *Repository) CountByHash(ctx context.Context, hash string) (count int64, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("count_by_hash", err, start)
	}()

	const query = `SELECT count(*) FROM public.ethtxs WHERE txhash = $1::TEXT::CITEXT`
	if err = r.pool.QueryRow(ctx, query, hash).Scan(&count); err != nil {
		return 0, fmt.Errorf("count rows for tx %s: %w", hash, err)
	}
	return count, nil
}
