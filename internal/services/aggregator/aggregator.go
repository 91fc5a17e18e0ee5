// Package aggregator folds per-transaction results into window-level totals.
package aggregator

import (
	"github.com/shopspring/decimal"
	"github.com/vadiminshakov/walletpnl/internal/domain"
)

// Totals hold the aggregate counters of one window. Deterministic given the
// inputs, no side effects.
type Totals struct {
	BuyCount         int
	SellCount        int
	SendCount        int
	ReceiveCount     int
	InteractionCount int
	OtherCount       int

	// VolumeUSDT USD-proxy volume across all transactions with a stable-denominated estimate.
	VolumeUSDT decimal.Decimal
	// BuyVolumeUSDT the Buy share of VolumeUSDT.
	BuyVolumeUSDT decimal.Decimal
	// RealizedPnLUSDT sum of PnL over all realized trades.
	RealizedPnLUSDT decimal.Decimal
	// RealizedLossUSDT magnitude of the negative PnL entries.
	RealizedLossUSDT decimal.Decimal
}

// Summarize folds the processed transactions and the realized-trade log.
func Summarize(details []domain.TransactionDetail, trades []domain.RealizedTrade) Totals {
	t := Totals{
		VolumeUSDT:       decimal.Zero,
		BuyVolumeUSDT:    decimal.Zero,
		RealizedPnLUSDT:  decimal.Zero,
		RealizedLossUSDT: decimal.Zero,
	}

	for _, d := range details {
		switch d.Classification.Kind {
		case domain.TxBuy:
			t.BuyCount++
		case domain.TxSell:
			t.SellCount++
		case domain.TxSend:
			t.SendCount++
		case domain.TxReceive:
			t.ReceiveCount++
		case domain.TxInteraction:
			t.InteractionCount++
		default:
			t.OtherCount++
		}

		amount, ok := d.Estimate.StableAmount()
		if !ok {
			continue
		}
		t.VolumeUSDT = t.VolumeUSDT.Add(amount)
		if d.Classification.Kind == domain.TxBuy {
			t.BuyVolumeUSDT = t.BuyVolumeUSDT.Add(amount)
		}
	}

	for _, tr := range trades {
		t.RealizedPnLUSDT = t.RealizedPnLUSDT.Add(tr.PnL)
		if tr.PnL.IsNegative() {
			t.RealizedLossUSDT = t.RealizedLossUSDT.Add(tr.PnL.Abs())
		}
	}

	return t
}
