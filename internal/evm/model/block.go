// Package model defines domain models for EVM transaction ingestion.
package model

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Block is a ledger block with its full, ordered transaction list.
type Block struct {
	Height       uint64
	Hash         common.Hash
	Timestamp    int64
	Transactions []Transaction
}

// Transaction is a ledger-native transaction as returned by the node.
type Transaction struct {
	Hash  common.Hash
	From  common.Address
	To    *common.Address // nil for contract creation
	Value *big.Int
	Gas   *big.Int
	// GasPrice is nil when the node omits it.
	GasPrice *big.Int
}
