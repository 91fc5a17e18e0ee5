// Package report assembles a wallet's day-window trading report: it drives the
// decode, classify, estimate and FIFO-matching steps over an ordered
// transaction list and folds the results into a summary.
package report

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/vadiminshakov/walletpnl/internal/domain"
	"github.com/vadiminshakov/walletpnl/internal/services/aggregator"
	"github.com/vadiminshakov/walletpnl/internal/services/classifier"
	"github.com/vadiminshakov/walletpnl/internal/services/decoder"
	"github.com/vadiminshakov/walletpnl/internal/services/estimator"
	"github.com/vadiminshakov/walletpnl/internal/services/ledger"
	"go.uber.org/zap"
)

// LogSource provides the receipt logs of a transaction. A missing receipt is
// reported as no logs, not as an error.
type LogSource interface {
	TransactionLogs(ctx context.Context, txHash string) ([]types.Log, error)
}

// BuildParams carries one report invocation's input. Transactions must be
// ordered ascending by timestamp and already filtered to the window.
type BuildParams struct {
	Window         domain.Window
	StartBlock     uint64
	EndBlock       uint64
	FetchedInRange int
	Transactions   []domain.Transaction
}

// Builder runs the processing pipeline over one window. Every Build call
// starts with an empty FIFO ledger, so separate invocations are independent.
type Builder struct {
	wallet     common.Address
	logs       LogSource
	decoder    *decoder.Decoder
	classifier *classifier.Classifier
	estimator  *estimator.Estimator
	logger     *zap.Logger
}

// NewBuilder wires the pipeline for one wallet.
func NewBuilder(wallet common.Address, logs LogSource, dec *decoder.Decoder,
	cls *classifier.Classifier, est *estimator.Estimator, logger *zap.Logger) *Builder {
	return &Builder{
		wallet:     wallet,
		logs:       logs,
		decoder:    dec,
		classifier: cls,
		estimator:  est,
		logger:     logger,
	}
}

// Build processes the transactions in order and assembles the report.
// Transactions are never reordered: FIFO matching is order-dependent.
func (b *Builder) Build(ctx context.Context, p BuildParams) (*domain.WalletReport, error) {
	led := ledger.New()
	var trades []domain.RealizedTrade
	details := make([]domain.TransactionDetail, 0, len(p.Transactions))

	for _, tx := range p.Transactions {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		logs, err := b.logs.TransactionLogs(ctx, tx.Hash)
		if err != nil {
			b.logger.Warn("receipt unavailable, processing transaction without transfers",
				zap.String("tx", tx.Hash), zap.Error(err))
			logs = nil
		}

		transfers := b.decoder.Decode(logs)
		cls := b.classifier.Classify(transfers)
		est := b.estimator.Estimate(ctx, cls, tx.Time)

		detail := domain.TransactionDetail{
			Transaction:    tx,
			ValueBNB:       nativeAmount(tx.ValueWei),
			Classification: cls,
			Transfers:      transfers,
		}

		txPnL := decimal.Zero
		if stable, ok := est.StableAmount(); ok {
			switch cls.Kind {
			case domain.TxBuy:
				led.RecordBuy(cls.MainSymbol, cls.MainAmount, stable, tx.Hash, tx.Time)
			case domain.TxSell:
				sellTrades, pnl := led.RecordSell(cls.MainSymbol, cls.MainAmount, stable, tx.Hash, tx.Time)
				trades = append(trades, sellTrades...)
				txPnL = pnl
			}
		}
		if cls.Kind == domain.TxSell {
			detail.RealizedPnL = decimal.NewNullDecimal(txPnL)
		}

		// fallback for plain native-value transactions nothing else could price
		if !est.Amount.Valid && tx.ValueWei != nil && tx.ValueWei.Sign() > 0 {
			est = b.estimator.EstimateNative(ctx, tx.ValueWei, tx.Time)
		}
		detail.Estimate = est

		details = append(details, detail)
	}

	totals := aggregator.Summarize(details, trades)

	return &domain.WalletReport{
		Summary: domain.WindowSummary{
			ReportID:         uuid.NewString(),
			Wallet:           b.wallet,
			Window:           p.Window,
			StartBlock:       p.StartBlock,
			EndBlock:         p.EndBlock,
			FetchedInRange:   p.FetchedInRange,
			Processed:        len(details),
			BuyCount:         totals.BuyCount,
			SellCount:        totals.SellCount,
			SendCount:        totals.SendCount,
			ReceiveCount:     totals.ReceiveCount,
			InteractionCount: totals.InteractionCount,
			OtherCount:       totals.OtherCount,
			VolumeUSDT:       totals.VolumeUSDT,
			BuyVolumeUSDT:    totals.BuyVolumeUSDT,
			RealizedPnLUSDT:  totals.RealizedPnLUSDT,
			RealizedLossUSDT: totals.RealizedLossUSDT,
			GeneratedAt:      time.Now().UTC(),
		},
		RealizedTrades: trades,
		Transactions:   details,
		Holdings:       led.Holdings(),
	}, nil
}

func nativeAmount(wei *big.Int) decimal.Decimal {
	if wei == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(wei, -18)
}
