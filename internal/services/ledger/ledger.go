// Package ledger implements per-token FIFO cost-basis inventory.
package ledger

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/vadiminshakov/walletpnl/internal/domain"
)

// epsilon absorbs decimal rounding when deciding a lot is drained.
var epsilon = decimal.New(1, -9)

// Ledger keeps a queue of open lots per token symbol: buys append at the back,
// sells consume from the front, oldest lot first. A report run owns exactly
// one Ledger; it is not safe for concurrent use.
type Ledger struct {
	lots map[string][]domain.Lot
}

// New returns an empty ledger.
func New() *Ledger {
	return &Ledger{lots: make(map[string][]domain.Lot)}
}

// RecordBuy opens a new lot for symbol. Buys without a positive quantity and a
// positive total cost (e.g. swaps that could not be priced) contribute nothing.
func (l *Ledger) RecordBuy(symbol string, qty, totalCost decimal.Decimal, txHash string, ts time.Time) {
	if !qty.IsPositive() || !totalCost.IsPositive() {
		return
	}

	l.lots[symbol] = append(l.lots[symbol], domain.Lot{
		Quantity:  qty,
		UnitCost:  totalCost.Div(qty),
		BuyTxHash: txHash,
		BuyTime:   ts,
	})
}

// RecordSell matches qty against the open lots of symbol front-to-back,
// emitting one RealizedTrade per consumed lot and returning the trades with
// their summed PnL. Unpriced sells and sells of tokens with no open lots
// return nothing. When open lots cover only part of qty the remainder stays
// unmatched; that is not an error.
func (l *Ledger) RecordSell(symbol string, qty, totalProceeds decimal.Decimal, txHash string, ts time.Time) ([]domain.RealizedTrade, decimal.Decimal) {
	if !qty.IsPositive() || !totalProceeds.IsPositive() {
		return nil, decimal.Zero
	}
	queue := l.lots[symbol]
	if len(queue) == 0 {
		return nil, decimal.Zero
	}

	unitProceeds := totalProceeds.Div(qty)
	remaining := qty
	totalPnL := decimal.Zero
	var trades []domain.RealizedTrade

	for remaining.IsPositive() && len(queue) > 0 {
		lot := &queue[0]
		consumed := decimal.Min(remaining, lot.Quantity)
		pnl := consumed.Mul(unitProceeds.Sub(lot.UnitCost))

		trades = append(trades, domain.RealizedTrade{
			Symbol:           symbol,
			BuyTxHash:        lot.BuyTxHash,
			SellTxHash:       txHash,
			BuyTime:          lot.BuyTime,
			SellTime:         ts,
			Quantity:         consumed,
			BuyUnitCost:      lot.UnitCost,
			SellUnitProceeds: unitProceeds,
			PnL:              pnl,
		})
		totalPnL = totalPnL.Add(pnl)

		lot.Quantity = lot.Quantity.Sub(consumed)
		remaining = remaining.Sub(consumed)
		if lot.Quantity.LessThan(epsilon) {
			queue = queue[1:]
		}
	}

	l.lots[symbol] = queue
	return trades, totalPnL
}

// Holdings returns the remaining open lots per symbol, for end-of-window
// reporting of unrealized positions. Symbols with fully drained queues are
// omitted. The returned slices are copies.
func (l *Ledger) Holdings() map[string][]domain.Lot {
	out := make(map[string][]domain.Lot, len(l.lots))
	for symbol, queue := range l.lots {
		if len(queue) == 0 {
			continue
		}
		out[symbol] = append([]domain.Lot(nil), queue...)
	}
	return out
}
