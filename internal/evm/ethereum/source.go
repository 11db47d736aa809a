// Package ethereum adapts an EVM JSON-RPC node into block and receipt lookups with retries.
package ethereum

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/goodnatureofminers/ethtxs-indexer/internal/clock"
	"github.com/goodnatureofminers/ethtxs-indexer/internal/evm/model"
	"go.uber.org/ratelimit"
	"go.uber.org/zap"
)

const (
	methodBlockNumber   = "eth_blockNumber"
	methodBlockByNumber = "eth_getBlockByNumber"
	methodReceipt       = "eth_getTransactionReceipt"
)

// Source fetches blocks and receipts from the node, retrying transient failures.
type Source struct {
	rpc     RPC
	policy  RetryPolicy
	limiter ratelimit.Limiter
	metrics RetryMetrics
	sleep   clock.SleepFunc
	logger  *zap.Logger
}

// NewSource builds a Source. requestsPerSecond <= 0 disables rate limiting.
func NewSource(rpc RPC, policy RetryPolicy, requestsPerSecond int, metrics RetryMetrics, logger *zap.Logger) *Source {
	limiter := ratelimit.NewUnlimited()
	if requestsPerSecond > 0 {
		limiter = ratelimit.New(requestsPerSecond)
	}
	return &Source{
		rpc:     rpc,
		policy:  policy.normalized(),
		limiter: limiter,
		metrics: metrics,
		sleep:   clock.SleepWithContext,
		logger:  logger,
	}
}

// LatestHeight returns the current chain head.
func (s *Source) LatestHeight(ctx context.Context) (uint64, error) {
	raw, err := s.call(ctx, methodBlockNumber)
	if err != nil {
		return 0, fmt.Errorf("get block number: %w", err)
	}
	var head hexutil.Uint64
	if err := json.Unmarshal(raw, &head); err != nil {
		return 0, fmt.Errorf("decode block number: %w", err)
	}
	return uint64(head), nil
}

// FetchBlock retrieves the block at height with full transaction objects.
func (s *Source) FetchBlock(ctx context.Context, height uint64) (*model.Block, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, err := s.call(ctx, methodBlockByNumber, hexutil.EncodeUint64(height), true)
	if err != nil {
		return nil, fmt.Errorf("get block %d: %w", height, err)
	}
	if rawNull(raw) {
		return nil, fmt.Errorf("height %d: %w", height, ErrBlockNotFound)
	}

	var block rpcBlock
	if err := json.Unmarshal(raw, &block); err != nil {
		return nil, fmt.Errorf("%w: decode block %d: %v", ErrMalformedBlock, height, err)
	}
	return block.toModel(height)
}

// ReceiptStatus reports whether the receipt confirms success. Lookup failures, missing receipts and
// receipts without a status field all resolve to false.
func (s *Source) ReceiptStatus(ctx context.Context, hash common.Hash) bool {
	raw, err := s.call(ctx, methodReceipt, hash)
	if err != nil {
		s.logger.Debug("receipt lookup failed", zap.String("tx_hash", hash.Hex()), zap.Error(err))
		return false
	}
	if rawNull(raw) {
		return false
	}

	var receipt rpcReceipt
	if err := json.Unmarshal(raw, &receipt); err != nil {
		s.logger.Debug("receipt decode failed", zap.String("tx_hash", hash.Hex()), zap.Error(err))
		return false
	}
	return receipt.Status != nil && uint64(*receipt.Status) == types.ReceiptStatusSuccessful
}

func (s *Source) call(ctx context.Context, method string, args ...any) (json.RawMessage, error) {
	var lastErr error
	for attempt := 1; attempt <= s.policy.MaxAttempts; attempt++ {
		s.limiter.Take()
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var raw json.RawMessage
		err := s.rpc.CallContext(ctx, &raw, method, args...)
		if err == nil {
			return raw, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}

		lastErr = err
		action := Classify(err)
		if action == ActionFatal {
			return nil, fmt.Errorf("%w: %s: %w", ErrTransport, method, err)
		}
		if attempt == s.policy.MaxAttempts {
			break
		}

		wait := s.policy.delay(attempt, action)
		if s.metrics != nil {
			s.metrics.ObserveRetry(method, action.String())
		}
		s.logger.Debug("rpc call failed, retrying",
			zap.String("method", method),
			zap.Int("attempt", attempt),
			zap.String("reason", action.String()),
			zap.Duration("wait", wait),
			zap.Error(err),
		)
		if err := s.sleep(ctx, wait); err != nil {
			return nil, err
		}
	}

	return nil, fmt.Errorf("%w: %s failed after %d attempts: %w", ErrTransport, method, s.policy.MaxAttempts, lastErr)
}
