// Package domain defines core data structures shared by the wallet report pipeline.
package domain

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// TokenInfo describes a BEP20 token as far as the report needs it.
type TokenInfo struct {
	// Name human-readable token name.
	Name string `json:"name"`
	// Symbol ticker symbol.
	Symbol string `json:"symbol"`
	// Decimals exponent used to scale raw integer amounts.
	Decimals int32 `json:"decimals"`
}

// TokenTransfer is a single decoded BEP20 Transfer event. Immutable once decoded.
type TokenTransfer struct {
	// Token emitting contract address.
	Token common.Address `json:"token_address"`
	// Name token name resolved from metadata.
	Name string `json:"token_name"`
	// Symbol token symbol resolved from metadata.
	Symbol string `json:"token_symbol"`
	// Decimals token decimals used for scaling.
	Decimals int32 `json:"decimals"`
	// From sender address decoded from the first indexed topic.
	From common.Address `json:"from"`
	// To recipient address decoded from the second indexed topic.
	To common.Address `json:"to"`
	// RawAmount unscaled integer amount from the log data payload.
	RawAmount *big.Int `json:"raw_amount"`
	// Amount human-scale quantity, RawAmount / 10^Decimals.
	Amount decimal.Decimal `json:"amount"`
}
