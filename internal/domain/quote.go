package domain

import "github.com/ethereum/go-ethereum/common"

// Well-known BSC quote asset contracts.
var (
	WBNBAddress = common.HexToAddress("0xbb4cdb9cbd36b01bd1cbaebf2de08d9173bc095c")
	USDTAddress = common.HexToAddress("0x55d398326f99059ff775485246999027b3197955")
	BUSDAddress = common.HexToAddress("0xe9e7cea3dedca5984780bafc599bd69add087d56")
)

// QuoteSet is the fixed set of reference assets swaps are priced against.
// Stable assets are taken at face value in their own currency, the wrapped
// native asset needs a historical USD price.
type QuoteSet struct {
	// Stable maps USD-pegged token addresses to their currency symbol.
	Stable map[common.Address]string
	// WrappedNative is the wrapped native asset (WBNB on BSC).
	WrappedNative common.Address
}

// DefaultQuoteSet returns the BSC quote assets: USDT, BUSD and WBNB.
func DefaultQuoteSet() QuoteSet {
	return QuoteSet{
		Stable: map[common.Address]string{
			USDTAddress: "USDT",
			BUSDAddress: "BUSD",
		},
		WrappedNative: WBNBAddress,
	}
}

// Contains reports whether addr is one of the quote assets.
func (q QuoteSet) Contains(addr common.Address) bool {
	if addr == q.WrappedNative {
		return true
	}
	_, ok := q.Stable[addr]
	return ok
}

// StableSymbol returns the currency symbol when addr is a USD-pegged quote asset.
func (q QuoteSet) StableSymbol(addr common.Address) (string, bool) {
	sym, ok := q.Stable[addr]
	return sym, ok
}
