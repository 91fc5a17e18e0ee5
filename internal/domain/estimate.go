package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ValueEstimate is the fiat-equivalent value of a transaction. Amount is
// invalid when the transaction could not be priced; Basis always records how
// the number was (or was not) derived.
type ValueEstimate struct {
	// Amount estimated value, invalid when the transaction is unpriceable.
	Amount decimal.NullDecimal `json:"amount"`
	// Currency the currency of Amount, e.g. "USDT" or "USDT (from WBNB)".
	Currency string `json:"currency,omitempty"`
	// Basis human-readable description of the derivation.
	Basis string `json:"basis"`
}

// StableAmount returns the amount when it is denominated in a USD proxy
// (USDT-derived or BUSD) and therefore usable for USD volume totals.
func (e ValueEstimate) StableAmount() (decimal.Decimal, bool) {
	if !e.Amount.Valid {
		return decimal.Decimal{}, false
	}
	if strings.Contains(e.Currency, "USDT") || e.Currency == "BUSD" {
		return e.Amount.Decimal, true
	}
	return decimal.Decimal{}, false
}
