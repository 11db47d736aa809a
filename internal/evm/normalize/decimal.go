// Package normalize converts ledger transactions into persistence-ready rows.
package normalize

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

const maxAmountBits = 256

// ErrConversion marks a ledger quantity that could not be represented exactly.
var ErrConversion = errors.New("decimal conversion failed")

// Decimal converts an unsigned 256-bit integer through its base-10 text form and verifies
// that parsing the result back reproduces the input.
func Decimal(v *big.Int) (decimal.Decimal, error) {
	if v == nil {
		return decimal.Zero, fmt.Errorf("%w: missing value", ErrConversion)
	}
	if v.Sign() < 0 {
		return decimal.Zero, fmt.Errorf("%w: negative value %s", ErrConversion, v)
	}
	if v.BitLen() > maxAmountBits {
		return decimal.Zero, fmt.Errorf("%w: value exceeds %d bits", ErrConversion, maxAmountBits)
	}

	d, err := decimal.NewFromString(v.String())
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", ErrConversion, err)
	}
	if d.BigInt().Cmp(v) != 0 {
		return decimal.Zero, fmt.Errorf("%w: %s did not round trip", ErrConversion, v)
	}
	return d, nil
}

// OptionalDecimal is Decimal with an absent value mapped to zero.
func OptionalDecimal(v *big.Int) (decimal.Decimal, error) {
	if v == nil {
		return decimal.Zero, nil
	}
	return Decimal(v)
}
