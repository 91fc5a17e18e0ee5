// Command walletpnl reports a BSC wallet's activity and realized PnL for
// the current daily accounting window.
//
// Usage:
//
//	walletpnl setup                  (interactive config wizard)
//	walletpnl --config config.yaml   (web server)
//	walletpnl --wallet 0x...         (one-shot report to stdout)
//
// BSCSCAN_API_KEY from the environment is used when the config leaves the
// API key empty.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ethereum/go-ethereum/common"
	"github.com/joho/godotenv"
	"github.com/vadiminshakov/walletpnl/config"
	"github.com/vadiminshakov/walletpnl/internal/clients"
	"github.com/vadiminshakov/walletpnl/internal/domain"
	"github.com/vadiminshakov/walletpnl/internal/services/report"
	"github.com/vadiminshakov/walletpnl/internal/setup"
	"github.com/vadiminshakov/walletpnl/internal/web"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	var cfg *config.Config
	var err error
	if len(os.Args) > 1 && os.Args[1] == "setup" {
		if err := setup.RunTUI(); err != nil {
			logger.Fatal("setup failed", zap.Error(err))
		}
		cfg, err = config.FromFile("config.gen.yaml")
	} else {
		cfg, err = config.Get()
	}
	if err != nil {
		logger.Fatal("failed to get configuration", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	newRunner := runnerFactory(cfg, logger)

	if cfg.Wallet != "" {
		if err := runOnce(ctx, newRunner, cfg.Wallet); err != nil {
			logger.Fatal("report failed", zap.Error(err))
		}
		return
	}

	server := web.NewServer(cfg.ListenAddr, newRunner, logger)
	if err := server.Start(ctx); err != nil {
		logger.Fatal("web server failed", zap.Error(err))
	}
}

// runnerFactory builds per-request report runners. Each runner gets its own
// explorer client so a caller-provided API key never leaks between requests.
func runnerFactory(cfg *config.Config, logger *zap.Logger) web.RunnerFactory {
	prices := clients.NewCoinGecko(cfg.CoinGeckoURL, cfg.PriceDelay, logger)

	known := make(map[common.Address]domain.TokenInfo, len(cfg.KnownTokens))
	for _, t := range cfg.KnownTokens {
		known[common.HexToAddress(t.Address)] = domain.TokenInfo{
			Name:     t.Name,
			Symbol:   t.Symbol,
			Decimals: t.Decimals,
		}
	}

	runnerCfg := report.RunnerConfig{
		Quote:           domain.DefaultQuoteSet(),
		KnownTokens:     known,
		Location:        cfg.Location(),
		WindowStartHour: cfg.WindowStartHour,
	}

	return func(apiKey string) web.ReportRunner {
		if apiKey == "" {
			apiKey = cfg.BscScanAPIKey
		}
		explorer := clients.NewBscScan(cfg.BscScanURL, apiKey, cfg.ExplorerDelay, logger)
		return report.NewRunner(explorer, prices, runnerCfg, logger)
	}
}

func runOnce(ctx context.Context, newRunner web.RunnerFactory, wallet string) error {
	runner := newRunner("")
	rep, err := runner.Run(ctx, common.HexToAddress(wallet))
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
