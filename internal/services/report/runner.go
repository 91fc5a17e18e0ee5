package report

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/pkg/errors"
	"github.com/vadiminshakov/walletpnl/internal/domain"
	"github.com/vadiminshakov/walletpnl/internal/services/classifier"
	"github.com/vadiminshakov/walletpnl/internal/services/decoder"
	"github.com/vadiminshakov/walletpnl/internal/services/estimator"
	"github.com/vadiminshakov/walletpnl/internal/services/tokeninfo"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const defaultPrefetchLimit = 4

// Explorer is the block-explorer contract the runner consumes: resolve the
// block range of a time window, list wallet transactions in it, and fetch
// receipt logs per transaction.
type Explorer interface {
	// BlockByTime resolves the block closest to ts; closest is "before" or "after".
	BlockByTime(ctx context.Context, ts time.Time, closest string) (uint64, error)
	// Transactions lists wallet transactions in [startBlock, endBlock], ascending by time.
	Transactions(ctx context.Context, wallet common.Address, startBlock, endBlock uint64) ([]domain.Transaction, error)
	// TransactionLogs fetches the receipt logs of one transaction.
	TransactionLogs(ctx context.Context, txHash string) ([]types.Log, error)
}

// RunnerConfig tunes a report runner.
type RunnerConfig struct {
	// Quote the quote-asset set used for classification and valuation.
	Quote domain.QuoteSet
	// KnownTokens extra token metadata merged over the built-in table.
	KnownTokens map[common.Address]domain.TokenInfo
	// Location local calendar the daily window is defined in.
	Location *time.Location
	// WindowStartHour local hour the daily window starts at.
	WindowStartHour int
	// PrefetchLimit max concurrent receipt fetches; 0 uses a default.
	PrefetchLimit int
}

// Runner resolves the current accounting window, fetches the wallet's
// transactions from the explorer and feeds them to the report builder in
// original timestamp order. Receipts are prefetched concurrently, the core
// pipeline itself stays strictly sequential.
type Runner struct {
	explorer Explorer
	prices   estimator.PriceSource
	cfg      RunnerConfig
	now      func() time.Time
	logger   *zap.Logger
}

// NewRunner creates a report runner over the given collaborators.
func NewRunner(explorer Explorer, prices estimator.PriceSource, cfg RunnerConfig, logger *zap.Logger) *Runner {
	if cfg.PrefetchLimit <= 0 {
		cfg.PrefetchLimit = defaultPrefetchLimit
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}

	return &Runner{
		explorer: explorer,
		prices:   prices,
		cfg:      cfg,
		now:      time.Now,
		logger:   logger,
	}
}

// Run builds the report for wallet over the current daily window.
func (r *Runner) Run(ctx context.Context, wallet common.Address) (*domain.WalletReport, error) {
	window := domain.DailyWindow(r.now(), r.cfg.Location, r.cfg.WindowStartHour)

	startBlock, err := r.explorer.BlockByTime(ctx, window.Start, "after")
	if err != nil {
		return nil, errors.Wrap(err, "resolve window start block")
	}
	endBlock, err := r.explorer.BlockByTime(ctx, window.End, "before")
	if err != nil {
		return nil, errors.Wrap(err, "resolve window end block")
	}
	if startBlock > endBlock {
		return nil, errors.Errorf("no valid block range for window %s - %s",
			window.Start.Format(time.RFC3339), window.End.Format(time.RFC3339))
	}

	fetched, err := r.explorer.Transactions(ctx, wallet, startBlock, endBlock)
	if err != nil {
		return nil, errors.Wrapf(err, "fetch transactions for wallet %s", wallet.Hex())
	}

	inWindow := make([]domain.Transaction, 0, len(fetched))
	for _, tx := range fetched {
		if window.Contains(tx.Time) {
			inWindow = append(inWindow, tx)
		}
	}

	logs, err := r.prefetchLogs(ctx, inWindow)
	if err != nil {
		return nil, err
	}

	resolver := tokeninfo.NewResolver(r.cfg.KnownTokens, r.logger)
	builder := NewBuilder(
		wallet,
		logs,
		decoder.New(resolver, r.logger),
		classifier.New(wallet, r.cfg.Quote),
		estimator.New(newPriceCache(r.prices), r.cfg.Quote, r.logger),
		r.logger,
	)

	return builder.Build(ctx, BuildParams{
		Window:         window,
		StartBlock:     startBlock,
		EndBlock:       endBlock,
		FetchedInRange: len(fetched),
		Transactions:   inWindow,
	})
}

// prefetchedLogs is an in-memory LogSource filled ahead of the sequential pass.
type prefetchedLogs struct {
	logs map[string][]types.Log
	errs map[string]error
}

func (p *prefetchedLogs) TransactionLogs(_ context.Context, txHash string) ([]types.Log, error) {
	if err := p.errs[txHash]; err != nil {
		return nil, err
	}
	return p.logs[txHash], nil
}

// prefetchLogs fetches receipts for all transactions with bounded parallelism.
// Per-transaction failures degrade to missing logs; only context cancellation
// aborts the whole run.
func (r *Runner) prefetchLogs(ctx context.Context, txs []domain.Transaction) (*prefetchedLogs, error) {
	results := make([][]types.Log, len(txs))
	failures := make([]error, len(txs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.PrefetchLimit)
	for i, tx := range txs {
		g.Go(func() error {
			logs, err := r.explorer.TransactionLogs(gctx, tx.Hash)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				failures[i] = err
				return nil
			}
			results[i] = logs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, "prefetch transaction logs")
	}

	out := &prefetchedLogs{
		logs: make(map[string][]types.Log, len(txs)),
		errs: make(map[string]error),
	}
	for i, tx := range txs {
		if failures[i] != nil {
			out.errs[tx.Hash] = failures[i]
			continue
		}
		out.logs[tx.Hash] = results[i]
	}
	return out, nil
}
