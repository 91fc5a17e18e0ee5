// Package clients contains HTTP clients for the external data sources the
// report pipeline consumes: the BscScan block explorer and the CoinGecko
// price API.
package clients

import (
	"context"
	"encoding/json"
	"io"
	"math/big"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/pkg/errors"
	"github.com/vadiminshakov/walletpnl/internal/domain"
	"github.com/vadiminshakov/walletpnl/pkg/retrier"
	"go.uber.org/zap"
)

const (
	// DefaultBscScanURL is the public BscScan API endpoint.
	DefaultBscScanURL = "https://api.bscscan.com/api"
	// DefaultCallDelay is the politeness pause before each explorer call.
	DefaultCallDelay = 250 * time.Millisecond

	bscScanHTTPTimeout = 45 * time.Second
	txPageSize         = 1000
	maxTxPages         = 20

	noTransactionsMessage = "No transactions found"
)

// BscScan is a client for the BscScan-compatible explorer API. Safe for
// concurrent use; every call waits the configured politeness delay first.
type BscScan struct {
	apiURL     string
	apiKey     string
	delay      time.Duration
	httpClient *http.Client
	retrier    *retrier.Retrier
	logger     *zap.Logger
}

// NewBscScan creates an explorer client. Empty apiURL selects the public
// endpoint, a negative delay disables the politeness pause.
func NewBscScan(apiURL, apiKey string, delay time.Duration, logger *zap.Logger) *BscScan {
	if apiURL == "" {
		apiURL = DefaultBscScanURL
	}
	if delay == 0 {
		delay = DefaultCallDelay
	}

	return &BscScan{
		apiURL: apiURL,
		apiKey: apiKey,
		delay:  delay,
		httpClient: &http.Client{
			Timeout: bscScanHTTPTimeout,
		},
		retrier: retrier.New(retrier.Config{}),
		logger:  logger,
	}
}

// envelope is the BscScan API answer for account/block modules.
type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Result  json.RawMessage `json:"result"`
}

// proxyEnvelope is the geth-proxy answer shape.
type proxyEnvelope struct {
	Result json.RawMessage `json:"result"`
}

// txListEntry mirrors one account/txlist row; every field comes as a string.
type txListEntry struct {
	BlockNumber string `json:"blockNumber"`
	TimeStamp   string `json:"timeStamp"`
	Hash        string `json:"hash"`
	From        string `json:"from"`
	To          string `json:"to"`
	Value       string `json:"value"`
	GasUsed     string `json:"gasUsed"`
	IsError     string `json:"isError"`
}

// BlockByTime resolves the block number closest to ts; closest is "before" or "after".
func (c *BscScan) BlockByTime(ctx context.Context, ts time.Time, closest string) (uint64, error) {
	params := url.Values{}
	params.Set("module", "block")
	params.Set("action", "getblocknobytime")
	params.Set("timestamp", strconv.FormatInt(ts.Unix(), 10))
	params.Set("closest", closest)

	env, err := c.call(ctx, params)
	if err != nil {
		return 0, err
	}
	if env.Status == "0" {
		return 0, errors.Errorf("bscscan: %s - %s", env.Message, string(env.Result))
	}

	var blockStr string
	if err := json.Unmarshal(env.Result, &blockStr); err != nil {
		return 0, errors.Wrap(err, "bscscan: decode block number")
	}
	block, err := strconv.ParseUint(blockStr, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "bscscan: unexpected block number %q", blockStr)
	}
	return block, nil
}

// Transactions lists the wallet's transactions in [startBlock, endBlock],
// ascending by timestamp, paging through the API until a short page. Rows
// that fail to parse are skipped individually.
func (c *BscScan) Transactions(ctx context.Context, wallet common.Address, startBlock, endBlock uint64) ([]domain.Transaction, error) {
	var all []domain.Transaction

	for page := 1; page <= maxTxPages; page++ {
		params := url.Values{}
		params.Set("module", "account")
		params.Set("action", "txlist")
		params.Set("address", wallet.Hex())
		params.Set("startblock", strconv.FormatUint(startBlock, 10))
		params.Set("endblock", strconv.FormatUint(endBlock, 10))
		params.Set("page", strconv.Itoa(page))
		params.Set("offset", strconv.Itoa(txPageSize))
		params.Set("sort", "asc")

		env, err := c.call(ctx, params)
		if err != nil {
			return nil, err
		}
		if env.Status == "0" {
			if env.Message == noTransactionsMessage {
				break
			}
			return nil, errors.Errorf("bscscan: %s - %s", env.Message, string(env.Result))
		}

		var entries []txListEntry
		if err := json.Unmarshal(env.Result, &entries); err != nil {
			return nil, errors.Wrap(err, "bscscan: decode transaction list")
		}

		for _, e := range entries {
			tx, err := e.parse()
			if err != nil {
				c.logger.Warn("skipping malformed transaction row",
					zap.String("hash", e.Hash), zap.Error(err))
				continue
			}
			all = append(all, tx)
		}

		if len(entries) < txPageSize {
			break
		}
	}

	return all, nil
}

// TransactionLogs fetches the receipt logs of txHash through the explorer's
// geth proxy. A missing receipt yields no logs and no error.
func (c *BscScan) TransactionLogs(ctx context.Context, txHash string) ([]types.Log, error) {
	params := url.Values{}
	params.Set("module", "proxy")
	params.Set("action", "eth_getTransactionReceipt")
	params.Set("txhash", txHash)

	body, err := c.get(ctx, params)
	if err != nil {
		return nil, err
	}

	var env proxyEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, errors.Wrap(err, "bscscan: decode receipt envelope")
	}
	if len(env.Result) == 0 || string(env.Result) == "null" {
		c.logger.Debug("no receipt for transaction", zap.String("tx", txHash))
		return nil, nil
	}

	var receipt struct {
		Logs []types.Log `json:"logs"`
	}
	if err := json.Unmarshal(env.Result, &receipt); err != nil {
		return nil, errors.Wrapf(err, "bscscan: decode receipt for %s", txHash)
	}
	return receipt.Logs, nil
}

func (c *BscScan) call(ctx context.Context, params url.Values) (*envelope, error) {
	body, err := c.get(ctx, params)
	if err != nil {
		return nil, err
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, errors.Wrap(err, "bscscan: decode response")
	}
	return &env, nil
}

func (c *BscScan) get(ctx context.Context, params url.Values) ([]byte, error) {
	if c.delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.delay):
		}
	}

	if c.apiKey != "" {
		params.Set("apikey", c.apiKey)
	}
	reqURL := c.apiURL + "?" + params.Encode()

	return retrier.DoWithData(c.retrier, ctx, func(ctx context.Context) ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, errors.Wrap(err, "bscscan: build request")
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, errors.Wrap(err, "bscscan: request failed")
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, errors.Errorf("bscscan: unexpected status %s", resp.Status)
		}
		return io.ReadAll(resp.Body)
	})
}

func (e txListEntry) parse() (domain.Transaction, error) {
	blockNumber, err := strconv.ParseUint(e.BlockNumber, 10, 64)
	if err != nil {
		return domain.Transaction{}, errors.Wrap(err, "block number")
	}
	ts, err := strconv.ParseInt(e.TimeStamp, 10, 64)
	if err != nil {
		return domain.Transaction{}, errors.Wrap(err, "timestamp")
	}
	value, ok := new(big.Int).SetString(e.Value, 10)
	if !ok {
		return domain.Transaction{}, errors.Errorf("malformed value %q", e.Value)
	}
	gasUsed, err := strconv.ParseUint(e.GasUsed, 10, 64)
	if err != nil {
		return domain.Transaction{}, errors.Wrap(err, "gas used")
	}

	return domain.Transaction{
		Hash:        e.Hash,
		BlockNumber: blockNumber,
		Time:        time.Unix(ts, 0).UTC(),
		From:        common.HexToAddress(e.From),
		To:          common.HexToAddress(e.To),
		ValueWei:    value,
		GasUsed:     gasUsed,
		Failed:      e.IsError == "1",
	}, nil
}
