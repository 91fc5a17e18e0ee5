package domain

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// TxKind is the economic action a transaction represents for the wallet.
type TxKind string

const (
	// TxBuy wallet paid a quote asset and received another token.
	TxBuy TxKind = "Buy"
	// TxSell wallet sent a token and received a quote asset.
	TxSell TxKind = "Sell"
	// TxSend wallet only sent token transfers.
	TxSend TxKind = "Send"
	// TxReceive wallet only received token transfers.
	TxReceive TxKind = "Receive"
	// TxInteraction contract call with no token movement at all.
	TxInteraction TxKind = "Interaction"
	// TxOther token flows that match no swap/transfer rule (e.g. quote-for-quote legs).
	TxOther TxKind = "Other"
)

// Classification is the result of classifying one transaction's token flows.
// Main token fields are only set for Buy and Sell.
type Classification struct {
	// Kind economic action of the transaction.
	Kind TxKind `json:"type"`
	// MainSymbol symbol of the non-quote token of a swap.
	MainSymbol string `json:"main_token_symbol,omitempty"`
	// MainToken address of the non-quote token of a swap.
	MainToken common.Address `json:"main_token_address,omitempty"`
	// MainAmount quantity of the main token bought or sold.
	MainAmount decimal.Decimal `json:"main_token_quantity"`
	// QuoteLeg the quote-side transfer a swap is priced from: the quote
	// transfer sent for a Buy, received for a Sell. Nil for non-swaps.
	QuoteLeg *TokenTransfer `json:"-"`
}

// IsSwap reports whether the transaction is a Buy or a Sell.
func (c Classification) IsSwap() bool {
	return c.Kind == TxBuy || c.Kind == TxSell
}
