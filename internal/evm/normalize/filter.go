package normalize

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/goodnatureofminers/ethtxs-indexer/internal/evm/model"
)

// AddressFilter keeps transactions sent from or to one of the watched addresses.
// A nil or empty filter keeps everything.
type AddressFilter struct {
	watched map[common.Address]struct{}
}

// NewAddressFilter parses hex addresses into a filter.
func NewAddressFilter(addresses []string) (*AddressFilter, error) {
	watched := make(map[common.Address]struct{}, len(addresses))
	for _, raw := range addresses {
		if !common.IsHexAddress(raw) {
			return nil, fmt.Errorf("invalid watch address %q", raw)
		}
		watched[common.HexToAddress(raw)] = struct{}{}
	}
	return &AddressFilter{watched: watched}, nil
}

// Len returns the number of watched addresses.
func (f *AddressFilter) Len() int {
	if f == nil {
		return 0
	}
	return len(f.watched)
}

// Match reports whether tx should be kept.
func (f *AddressFilter) Match(tx model.Transaction) bool {
	if f.Len() == 0 {
		return true
	}
	if _, ok := f.watched[tx.From]; ok {
		return true
	}
	if tx.To != nil {
		if _, ok := f.watched[*tx.To]; ok {
			return true
		}
	}
	return false
}
