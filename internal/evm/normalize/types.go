package normalize

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

// ReceiptSource resolves the execution status of a transaction.
type ReceiptSource interface {
	ReceiptStatus(ctx context.Context, hash common.Hash) bool
}
