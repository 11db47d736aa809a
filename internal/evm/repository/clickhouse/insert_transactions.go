package clickhouse

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/goodnatureofminers/ethtxs-indexer/internal/evm/model"
)

func insertTransactionsQuery() string {
	return `
INSERT INTO ethtxs (
	time,
	txfrom,
	txto,
	value,
	gas,
	gasprice,
	block,
	txhash,
	contract_to,
	contract_value,
	status
)`
}

// InsertTransactions appends rows column by column and sends them as one batch.
func (r *Repository) InsertTransactions(ctx context.Context, rows []model.Row) (err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("insert_transactions", err, start)
	}()

	if len(rows) == 0 {
		return nil
	}

	n := len(rows)
	var (
		times         = make([]time.Time, 0, n)
		txFrom        = make([]string, 0, n)
		txTo          = make([]string, 0, n)
		values        = make([]*big.Int, 0, n)
		gas           = make([]*big.Int, 0, n)
		gasPrice      = make([]*big.Int, 0, n)
		blocks        = make([]uint64, 0, n)
		txHash        = make([]string, 0, n)
		contractTo    = make([]string, 0, n)
		contractValue = make([]string, 0, n)
		statuses      = make([]bool, 0, n)
	)
	for _, row := range rows {
		block := row.Block.BigInt()
		if !block.IsUint64() {
			return fmt.Errorf("tx %s: block %s out of range", row.TxHash, row.Block)
		}
		times = append(times, time.Unix(int64(row.Time), 0).UTC())
		txFrom = append(txFrom, row.TxFrom)
		txTo = append(txTo, row.TxTo)
		values = append(values, row.Value.BigInt())
		gas = append(gas, row.Gas.BigInt())
		gasPrice = append(gasPrice, row.GasPrice.BigInt())
		blocks = append(blocks, block.Uint64())
		txHash = append(txHash, row.TxHash)
		contractTo = append(contractTo, row.ContractTo)
		contractValue = append(contractValue, row.ContractValue)
		statuses = append(statuses, row.Status)
	}

	batch, err := r.conn.PrepareBatch(ctx, insertTransactionsQuery())
	if err != nil {
		return fmt.Errorf("prepare transactions batch: %w", err)
	}

	cols := []any{times, txFrom, txTo, values, gas, gasPrice, blocks, txHash, contractTo, contractValue, statuses}
	for i, col := range cols {
		if err = batch.Column(i).Append(col); err != nil {
			_ = batch.Abort()
			return fmt.Errorf("append column %d: %w", i, err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert transactions: %w", err)
	}
	return nil
}
