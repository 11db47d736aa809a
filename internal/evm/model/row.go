package model

import "github.com/shopspring/decimal"

// Row is a normalized transaction ready to be persisted into the ethtxs table.
type Row struct {
	Time          int32
	TxFrom        string
	TxTo          string
	Value         decimal.Decimal
	Gas           decimal.Decimal
	GasPrice      decimal.Decimal
	Block         decimal.Decimal
	TxHash        string
	ContractTo    string
	ContractValue string
	Status        bool
}
