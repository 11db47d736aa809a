package normalize

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/goodnatureofminers/ethtxs-indexer/internal/evm/model"
	"github.com/goodnatureofminers/ethtxs-indexer/pkg/safe"
)

// TxError ties a conversion failure to the transaction that caused it.
type TxError struct {
	TxHash common.Hash
	Err    error
}

func (e *TxError) Error() string {
	return fmt.Sprintf("tx %s: %v", e.TxHash.Hex(), e.Err)
}

func (e *TxError) Unwrap() error {
	return e.Err
}

// ToRow maps a single transaction into a row. It performs no I/O; status is supplied by the caller.
func ToRow(tx model.Transaction, blockTime int64, height uint64, status bool) (model.Row, error) {
	ts, err := safe.Int32(blockTime)
	if err != nil {
		return model.Row{}, fmt.Errorf("%w: block time: %v", ErrConversion, err)
	}
	value, err := Decimal(tx.Value)
	if err != nil {
		return model.Row{}, fmt.Errorf("value: %w", err)
	}
	gas, err := Decimal(tx.Gas)
	if err != nil {
		return model.Row{}, fmt.Errorf("gas: %w", err)
	}
	gasPrice, err := OptionalDecimal(tx.GasPrice)
	if err != nil {
		return model.Row{}, fmt.Errorf("gas price: %w", err)
	}
	block, err := Decimal(new(big.Int).SetUint64(height))
	if err != nil {
		return model.Row{}, fmt.Errorf("block: %w", err)
	}

	return model.Row{
		Time:     ts,
		TxFrom:   addressText(&tx.From),
		TxTo:     addressText(tx.To),
		Value:    value,
		Gas:      gas,
		GasPrice: gasPrice,
		Block:    block,
		TxHash:   tx.Hash.Hex(),
		Status:   status,
	}, nil
}

// addressText renders lowercase 0x-prefixed hex; nil renders empty.
func addressText(addr *common.Address) string {
	if addr == nil {
		return ""
	}
	return hexutil.Encode(addr.Bytes())
}
