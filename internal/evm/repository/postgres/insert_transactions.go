package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/ethtxs-indexer/internal/evm/model"
)

const insertColumns = `time, txfrom, txto, value, gas, gasprice, block, txhash, contract_to, contract_value, status`

const unnestRows = `UNNEST(
	$1::INTEGER[],
	$2::TEXT[]::CITEXT[],
	$3::TEXT[]::CITEXT[],
	$4::TEXT[]::NUMERIC[],
	$5::TEXT[]::NUMERIC[],
	$6::TEXT[]::NUMERIC[],
	$7::TEXT[]::NUMERIC[],
	$8::TEXT[]::CITEXT[],
	$9::TEXT[]::CITEXT[],
	$10::TEXT[]::CITEXT[],
	$11::BOOLEAN[]
)`

func insertTransactionsQuery() string {
	return `INSERT INTO public.ethtxs (` + insertColumns + `)
SELECT * FROM ` + unnestRows
}

func insertNewTransactionsQuery() string {
	return `INSERT INTO public.ethtxs (` + insertColumns + `)
SELECT u.* FROM ` + unnestRows + ` AS u(` + insertColumns + `)
WHERE NOT EXISTS (SELECT 1 FROM public.ethtxs e WHERE e.txhash = u.txhash)`
}

// columns holds one index-aligned array per ethtxs column.
type columns struct {
	time          []int32
	txFrom        []string
	txTo          []string
	value         []string
	gas           []string
	gasPrice      []string
	block         []string
	txHash        []string
	contractTo    []string
	contractValue []string
	status        []bool
}

func newColumns(rows []model.Row) columns {
	n := len(rows)
	c := columns{
		time:          make([]int32, 0, n),
		txFrom:        make([]string, 0, n),
		txTo:          make([]string, 0, n),
		value:         make([]string, 0, n),
		gas:           make([]string, 0, n),
		gasPrice:      make([]string, 0, n),
		block:         make([]string, 0, n),
		txHash:        make([]string, 0, n),
		contractTo:    make([]string, 0, n),
		contractValue: make([]string, 0, n),
		status:        make([]bool, 0, n),
	}
	for _, row := range rows {
		c.time = append(c.time, row.Time)
		c.txFrom = append(c.txFrom, row.TxFrom)
		c.txTo = append(c.txTo, row.TxTo)
		c.value = append(c.value, row.Value.String())
		c.gas = append(c.gas, row.Gas.String())
		c.gasPrice = append(c.gasPrice, row.GasPrice.String())
		c.block = append(c.block, row.Block.String())
		c.txHash = append(c.txHash, row.TxHash)
		c.contractTo = append(c.contractTo, row.ContractTo)
		c.contractValue = append(c.contractValue, row.ContractValue)
		c.status = append(c.status, row.Status)
	}
	return c
}

func (c columns) args() []any {
	return []any{
		c.time,
		c.txFrom,
		c.txTo,
		c.value,
		c.gas,
		c.gasPrice,
		c.block,
		c.txHash,
		c.contractTo,
		c.contractValue,
		c.status,
	}
}

// InsertTransactions writes all rows of one block in a single statement and returns the number of
// rows inserted. A single statement commits all rows or none.
func (r *Repository) InsertTransactions(ctx context.Context, height uint64, rows []model.Row) (inserted int64, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("insert_transactions", err, start)
	}()

	if len(rows) == 0 {
		return 0, nil
	}

	query := insertTransactionsQuery()
	if r.skipExisting {
		query = insertNewTransactionsQuery()
	}

	tag, err := r.pool.Exec(ctx, query, newColumns(rows).args()...)
	if err != nil {
		return 0, fmt.Errorf("%w: block %d (%d rows): %w", ErrWrite, height, len(rows), err)
	}
	return tag.RowsAffected(), nil
}
