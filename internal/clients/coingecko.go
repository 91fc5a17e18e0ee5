package clients

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/vadiminshakov/walletpnl/pkg/retrier"
	"go.uber.org/zap"
)

const (
	// DefaultCoinGeckoURL is the public CoinGecko API base.
	DefaultCoinGeckoURL = "https://api.coingecko.com/api/v3"
	// DefaultPriceDelay is the politeness pause before each price call.
	DefaultPriceDelay = time.Second

	coinGeckoHTTPTimeout = 30 * time.Second
	nativeCoinID         = "binancecoin"
)

// CoinGecko fetches historical BNB prices in USD.
type CoinGecko struct {
	baseURL    string
	delay      time.Duration
	httpClient *http.Client
	retrier    *retrier.Retrier
	logger     *zap.Logger
}

// NewCoinGecko creates a price client. Empty baseURL selects the public API.
func NewCoinGecko(baseURL string, delay time.Duration, logger *zap.Logger) *CoinGecko {
	if baseURL == "" {
		baseURL = DefaultCoinGeckoURL
	}
	if delay == 0 {
		delay = DefaultPriceDelay
	}

	return &CoinGecko{
		baseURL: baseURL,
		delay:   delay,
		httpClient: &http.Client{
			Timeout: coinGeckoHTTPTimeout,
		},
		retrier: retrier.New(retrier.Config{}),
		logger:  logger,
	}
}

// HistoricalPriceUSD returns the BNB/USD price on the given calendar date.
// ok is false when the API has no price for that day.
func (c *CoinGecko) HistoricalPriceUSD(ctx context.Context, date time.Time) (decimal.Decimal, bool, error) {
	if c.delay > 0 {
		select {
		case <-ctx.Done():
			return decimal.Zero, false, ctx.Err()
		case <-time.After(c.delay):
		}
	}

	params := url.Values{}
	params.Set("date", date.UTC().Format("02-01-2006"))
	params.Set("localization", "false")
	reqURL := c.baseURL + "/coins/" + nativeCoinID + "/history?" + params.Encode()

	body, err := retrier.DoWithData(c.retrier, ctx, func(ctx context.Context) ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, errors.Wrap(err, "coingecko: build request")
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, errors.Wrap(err, "coingecko: request failed")
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, errors.Errorf("coingecko: unexpected status %s", resp.Status)
		}
		return io.ReadAll(resp.Body)
	})
	if err != nil {
		return decimal.Zero, false, err
	}

	var payload struct {
		MarketData *struct {
			CurrentPrice map[string]json.Number `json:"current_price"`
		} `json:"market_data"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return decimal.Zero, false, errors.Wrap(err, "coingecko: decode response")
	}

	if payload.MarketData == nil {
		c.logger.Debug("no market data for date", zap.Time("date", date))
		return decimal.Zero, false, nil
	}
	raw, found := payload.MarketData.CurrentPrice["usd"]
	if !found {
		return decimal.Zero, false, nil
	}

	price, err := decimal.NewFromString(raw.String())
	if err != nil {
		return decimal.Zero, false, errors.Wrapf(err, "coingecko: malformed price %q", raw)
	}
	return price, true, nil
}
