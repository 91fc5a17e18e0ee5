package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RealizedTrade records one (sell, lot) pairing produced by FIFO matching.
// A single sell emits one trade per lot it drains.
type RealizedTrade struct {
	// Symbol token symbol of the matched lot.
	Symbol string `json:"token_symbol"`
	// BuyTxHash hash of the transaction that created the consumed lot.
	BuyTxHash string `json:"buy_tx_hash"`
	// SellTxHash hash of the selling transaction.
	SellTxHash string `json:"sell_tx_hash"`
	// BuyTime acquisition time of the consumed lot.
	BuyTime time.Time `json:"buy_timestamp"`
	// SellTime time of the selling transaction.
	SellTime time.Time `json:"sell_timestamp"`
	// Quantity quantity matched against this lot.
	Quantity decimal.Decimal `json:"quantity_matched"`
	// BuyUnitCost quote cost per unit of the consumed lot.
	BuyUnitCost decimal.Decimal `json:"buy_cost_per_unit_usdt"`
	// SellUnitProceeds quote proceeds per unit of the sell.
	SellUnitProceeds decimal.Decimal `json:"sell_proceeds_per_unit_usdt"`
	// PnL Quantity * (SellUnitProceeds - BuyUnitCost).
	PnL decimal.Decimal `json:"pnl"`
}
