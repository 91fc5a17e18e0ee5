package aggregator

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/vadiminshakov/walletpnl/internal/domain"
)

func detail(kind domain.TxKind, est domain.ValueEstimate) domain.TransactionDetail {
	return domain.TransactionDetail{
		Classification: domain.Classification{Kind: kind},
		Estimate:       est,
	}
}

func stableEstimate(amount string) domain.ValueEstimate {
	return domain.ValueEstimate{
		Amount:   decimal.NewNullDecimal(decimal.RequireFromString(amount)),
		Currency: "USDT",
	}
}

func TestSummarize_Counts(t *testing.T) {
	details := []domain.TransactionDetail{
		detail(domain.TxBuy, stableEstimate("100")),
		detail(domain.TxBuy, stableEstimate("50")),
		detail(domain.TxSell, stableEstimate("120")),
		detail(domain.TxSend, domain.ValueEstimate{}),
		detail(domain.TxReceive, domain.ValueEstimate{}),
		detail(domain.TxInteraction, domain.ValueEstimate{}),
		detail(domain.TxOther, domain.ValueEstimate{}),
	}

	totals := Summarize(details, nil)

	assert.Equal(t, 2, totals.BuyCount)
	assert.Equal(t, 1, totals.SellCount)
	assert.Equal(t, 1, totals.SendCount)
	assert.Equal(t, 1, totals.ReceiveCount)
	assert.Equal(t, 1, totals.InteractionCount)
	assert.Equal(t, 1, totals.OtherCount)

	sum := totals.BuyCount + totals.SellCount + totals.SendCount +
		totals.ReceiveCount + totals.InteractionCount + totals.OtherCount
	assert.Equal(t, len(details), sum)
}

func TestSummarize_Volume(t *testing.T) {
	details := []domain.TransactionDetail{
		detail(domain.TxBuy, stableEstimate("100")),
		detail(domain.TxSell, stableEstimate("120")),
		// native BNB estimates count into volume too
		detail(domain.TxSend, domain.ValueEstimate{
			Amount:   decimal.NewNullDecimal(decimal.NewFromInt(30)),
			Currency: "USDT (from native BNB)",
		}),
		// absent estimate contributes nothing
		detail(domain.TxBuy, domain.ValueEstimate{Basis: "no quote-asset leg"}),
	}

	totals := Summarize(details, nil)

	assert.True(t, totals.VolumeUSDT.Equal(decimal.NewFromInt(250)))
	assert.True(t, totals.BuyVolumeUSDT.Equal(decimal.NewFromInt(100)))
}

func TestSummarize_RealizedPnL(t *testing.T) {
	trades := []domain.RealizedTrade{
		{PnL: decimal.RequireFromString("50")},
		{PnL: decimal.RequireFromString("-12.5")},
		{PnL: decimal.RequireFromString("10")},
		{PnL: decimal.RequireFromString("-7.5")},
	}

	totals := Summarize(nil, trades)

	assert.True(t, totals.RealizedPnLUSDT.Equal(decimal.NewFromInt(40)))
	assert.True(t, totals.RealizedLossUSDT.Equal(decimal.NewFromInt(20)))
}

func TestSummarize_Empty(t *testing.T) {
	totals := Summarize(nil, nil)

	assert.Zero(t, totals.BuyCount)
	assert.True(t, totals.VolumeUSDT.IsZero())
	assert.True(t, totals.RealizedPnLUSDT.IsZero())
	assert.True(t, totals.RealizedLossUSDT.IsZero())
}
