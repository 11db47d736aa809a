package ethereum

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/goodnatureofminers/ethtxs-indexer/internal/evm/model"
	"github.com/goodnatureofminers/ethtxs-indexer/pkg/safe"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// RPC is the JSON-RPC capability the adapter needs from the node client.
	RPC interface {
		CallContext(ctx context.Context, result any, method string, args ...any) error
	}
	// RPCMetrics records metrics for RPC calls.
	RPCMetrics interface {
		Observe(operation string, err error, started time.Time)
	}
	// RetryMetrics records scheduled retries.
	RetryMetrics interface {
		ObserveRetry(operation, reason string)
	}
)

var (
	// ErrBlockNotFound is returned when the node has no block at the requested height.
	ErrBlockNotFound = errors.New("block not found")
	// ErrTransport wraps calls that failed fatally or exhausted the retry budget.
	ErrTransport = errors.New("rpc transport failure")
	// ErrMalformedBlock is returned when the node response misses required fields.
	ErrMalformedBlock = errors.New("malformed block")
)

type rpcBlock struct {
	Number       *hexutil.Big     `json:"number"`
	Hash         common.Hash      `json:"hash"`
	Timestamp    hexutil.Uint64   `json:"timestamp"`
	Transactions []rpcTransaction `json:"transactions"`
}

type rpcTransaction struct {
	Hash     common.Hash     `json:"hash"`
	From     common.Address  `json:"from"`
	To       *common.Address `json:"to"`
	Value    *hexutil.Big    `json:"value"`
	Gas      *hexutil.Big    `json:"gas"`
	GasPrice *hexutil.Big    `json:"gasPrice"`
}

type rpcReceipt struct {
	TxHash common.Hash     `json:"transactionHash"`
	Status *hexutil.Uint64 `json:"status"`
}

func (b *rpcBlock) toModel(height uint64) (*model.Block, error) {
	if b.Number == nil || !b.Number.ToInt().IsUint64() || b.Number.ToInt().Uint64() != height {
		return nil, fmt.Errorf("%w: requested height %d, node returned %v", ErrMalformedBlock, height, b.Number)
	}
	timestamp, err := safe.Int64(uint64(b.Timestamp))
	if err != nil {
		return nil, fmt.Errorf("%w: block %d timestamp: %v", ErrMalformedBlock, height, err)
	}

	txs := make([]model.Transaction, 0, len(b.Transactions))
	for i, tx := range b.Transactions {
		if tx.Value == nil || tx.Gas == nil {
			return nil, fmt.Errorf("%w: block %d tx %d (%s) missing value or gas", ErrMalformedBlock, height, i, tx.Hash.Hex())
		}
		txs = append(txs, model.Transaction{
			Hash:     tx.Hash,
			From:     tx.From,
			To:       tx.To,
			Value:    new(big.Int).Set(tx.Value.ToInt()),
			Gas:      new(big.Int).Set(tx.Gas.ToInt()),
			GasPrice: optionalBig(tx.GasPrice),
		})
	}

	return &model.Block{
		Height:       height,
		Hash:         b.Hash,
		Timestamp:    timestamp,
		Transactions: txs,
	}, nil
}

func optionalBig(v *hexutil.Big) *big.Int {
	if v == nil {
		return nil
	}
	return new(big.Int).Set(v.ToInt())
}

// rawNull reports whether a JSON-RPC result is the literal null.
func rawNull(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}
