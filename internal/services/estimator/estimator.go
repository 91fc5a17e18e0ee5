// Package estimator converts the quote leg of a classified transaction into a
// fiat-equivalent value estimate.
package estimator

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vadiminshakov/walletpnl/internal/domain"
	"go.uber.org/zap"
)

// PriceSource provides a historical USD price of the native asset for a
// calendar date. ok is false when no price exists for that date.
type PriceSource interface {
	HistoricalPriceUSD(ctx context.Context, date time.Time) (price decimal.Decimal, ok bool, err error)
}

// Estimator prices transactions in a USD proxy. Stable quote legs are taken
// verbatim, wrapped-native legs are multiplied by the historical price of the
// transaction date. A failed price lookup never fails the transaction: the
// estimate comes back with an absent amount and a descriptive basis.
type Estimator struct {
	prices PriceSource
	quote  domain.QuoteSet
	logger *zap.Logger
}

// New creates an estimator over the given price source and quote assets.
func New(prices PriceSource, quote domain.QuoteSet, logger *zap.Logger) *Estimator {
	return &Estimator{prices: prices, quote: quote, logger: logger}
}

// Estimate values the quote leg of a classified swap. Non-swaps and swaps
// without a quote leg produce an absent estimate.
func (e *Estimator) Estimate(ctx context.Context, cls domain.Classification, txTime time.Time) domain.ValueEstimate {
	if !cls.IsSwap() || cls.QuoteLeg == nil {
		return domain.ValueEstimate{Basis: "no quote-asset leg"}
	}

	verb := "Sent"
	if cls.Kind == domain.TxSell {
		verb = "Received"
	}
	leg := cls.QuoteLeg
	basis := fmt.Sprintf("%s %s %s", verb, leg.Amount.StringFixed(4), leg.Symbol)

	if sym, ok := e.quote.StableSymbol(leg.Token); ok {
		return domain.ValueEstimate{
			Amount:   decimal.NewNullDecimal(leg.Amount),
			Currency: sym,
			Basis:    basis,
		}
	}

	if leg.Token == e.quote.WrappedNative {
		price, ok := e.lookupPrice(ctx, txTime)
		if !ok {
			return domain.ValueEstimate{Basis: basis + ", BNB price unavailable"}
		}
		return domain.ValueEstimate{
			Amount:   decimal.NewNullDecimal(leg.Amount.Mul(price)),
			Currency: "USDT (from WBNB)",
			Basis:    fmt.Sprintf("%s @ $%s", basis, price.StringFixed(2)),
		}
	}

	return domain.ValueEstimate{Basis: basis + ", quote asset not priceable"}
}

// EstimateNative prices a plain native-currency value, used as a fallback when
// a transaction moved BNB but no transfer-based estimate exists.
func (e *Estimator) EstimateNative(ctx context.Context, valueWei *big.Int, txTime time.Time) domain.ValueEstimate {
	if valueWei == nil || valueWei.Sign() <= 0 {
		return domain.ValueEstimate{Basis: "no native value"}
	}
	amount := decimal.NewFromBigInt(valueWei, -18)

	price, ok := e.lookupPrice(ctx, txTime)
	if !ok {
		return domain.ValueEstimate{
			Basis: fmt.Sprintf("%s native BNB, BNB price unavailable", amount.StringFixed(6)),
		}
	}

	return domain.ValueEstimate{
		Amount:   decimal.NewNullDecimal(amount.Mul(price)),
		Currency: "USDT (from native BNB)",
		Basis:    fmt.Sprintf("%s native BNB @ $%s", amount.StringFixed(6), price.StringFixed(2)),
	}
}

func (e *Estimator) lookupPrice(ctx context.Context, txTime time.Time) (decimal.Decimal, bool) {
	price, ok, err := e.prices.HistoricalPriceUSD(ctx, txTime)
	if err != nil {
		e.logger.Warn("historical price lookup failed",
			zap.Time("date", txTime),
			zap.Error(err))
		return decimal.Decimal{}, false
	}
	return price, ok
}
