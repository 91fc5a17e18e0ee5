package report

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vadiminshakov/walletpnl/internal/services/estimator"
)

// priceCache memoizes historical price lookups by calendar date for the
// duration of one report run. Lookups that errored are not cached so a retry
// within the run can still succeed.
type priceCache struct {
	src    estimator.PriceSource
	byDate map[string]cachedPrice
}

type cachedPrice struct {
	price decimal.Decimal
	ok    bool
}

func newPriceCache(src estimator.PriceSource) *priceCache {
	return &priceCache{src: src, byDate: make(map[string]cachedPrice)}
}

func (c *priceCache) HistoricalPriceUSD(ctx context.Context, date time.Time) (decimal.Decimal, bool, error) {
	key := date.UTC().Format("02-01-2006")
	if hit, ok := c.byDate[key]; ok {
		return hit.price, hit.ok, nil
	}

	price, ok, err := c.src.HistoricalPriceUSD(ctx, date)
	if err != nil {
		return decimal.Decimal{}, false, err
	}

	c.byDate[key] = cachedPrice{price: price, ok: ok}
	return price, ok, nil
}
