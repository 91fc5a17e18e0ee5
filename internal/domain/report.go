package domain

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// WindowSummary aggregates the processed window. Purely computed, no identity
// of its own beyond the report run id.
type WindowSummary struct {
	// ReportID unique id of this report run.
	ReportID string `json:"report_id"`
	// Wallet the wallet the report was built for.
	Wallet common.Address `json:"wallet_address"`
	// Window the accounting period covered.
	Window Window `json:"time_window"`
	// StartBlock first block of the queried range.
	StartBlock uint64 `json:"start_block"`
	// EndBlock last block of the queried range.
	EndBlock uint64 `json:"end_block"`
	// FetchedInRange transactions returned for the block range before time filtering.
	FetchedInRange int `json:"transactions_in_block_range"`
	// Processed transactions inside the precise time window.
	Processed int `json:"transactions_processed"`

	BuyCount         int `json:"buy_transaction_count"`
	SellCount        int `json:"sell_transaction_count"`
	SendCount        int `json:"send_transaction_count"`
	ReceiveCount     int `json:"receive_transaction_count"`
	InteractionCount int `json:"interaction_transaction_count"`
	OtherCount       int `json:"other_transaction_count"`

	// VolumeUSDT total USD-proxy volume across all priced transactions.
	VolumeUSDT decimal.Decimal `json:"total_usdt_volume"`
	// BuyVolumeUSDT USD-proxy volume of Buy transactions only.
	BuyVolumeUSDT decimal.Decimal `json:"total_usdt_volume_buys"`
	// RealizedPnLUSDT sum of PnL across all realized trades.
	RealizedPnLUSDT decimal.Decimal `json:"total_realized_pnl_usdt"`
	// RealizedLossUSDT magnitude of the negative PnL entries only.
	RealizedLossUSDT decimal.Decimal `json:"total_realized_loss_usdt"`

	// GeneratedAt report creation time.
	GeneratedAt time.Time `json:"generated_at_utc"`
}

// TransactionDetail is the per-transaction slice of the report.
type TransactionDetail struct {
	Transaction

	// ValueBNB native value scaled to BNB.
	ValueBNB decimal.Decimal `json:"value_bnb_native"`
	// Classification economic action and swap legs.
	Classification Classification `json:"classification"`
	// Estimate fiat-equivalent value, possibly absent.
	Estimate ValueEstimate `json:"estimated_value_usdt_equivalent"`
	// RealizedPnL PnL realized by this transaction; only valid for Sells that matched lots.
	RealizedPnL decimal.NullDecimal `json:"realized_pnl_usdt"`
	// Transfers all decoded token transfers of the transaction.
	Transfers []TokenTransfer `json:"bep20_token_transfers"`
}

// WalletReport is the complete output of one report run.
type WalletReport struct {
	Summary        WindowSummary       `json:"summary"`
	RealizedTrades []RealizedTrade     `json:"realized_trades_fifo"`
	Transactions   []TransactionDetail `json:"transactions"`
	// Holdings unconsumed lots per token symbol at the end of the window.
	Holdings map[string][]Lot `json:"outstanding_holdings_fifo"`
}
