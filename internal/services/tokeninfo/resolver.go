// Package tokeninfo resolves BEP20 token metadata.
package tokeninfo

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/vadiminshakov/walletpnl/internal/domain"
	"go.uber.org/zap"
)

// Resolver maps token contracts to metadata. A fixed table covers the quote
// assets; unknown tokens get a deterministic placeholder so decoding never
// fails on metadata. Placeholders are memoized per resolver, and a fresh
// resolver is created for every report run.
type Resolver struct {
	known  map[common.Address]domain.TokenInfo
	memo   map[common.Address]domain.TokenInfo
	logger *zap.Logger
}

// NewResolver creates a resolver seeded with the BSC quote assets plus any
// extra known tokens (e.g. from configuration).
func NewResolver(extra map[common.Address]domain.TokenInfo, logger *zap.Logger) *Resolver {
	known := map[common.Address]domain.TokenInfo{
		domain.WBNBAddress: {Name: "Wrapped BNB", Symbol: "WBNB", Decimals: 18},
		domain.USDTAddress: {Name: "Tether USD", Symbol: "USDT", Decimals: 18},
		domain.BUSDAddress: {Name: "BUSD Token", Symbol: "BUSD", Decimals: 18},
	}
	for addr, info := range extra {
		known[addr] = info
	}

	return &Resolver{
		known:  known,
		memo:   make(map[common.Address]domain.TokenInfo),
		logger: logger,
	}
}

// TokenInfo resolves metadata for addr, falling back to a placeholder symbol
// derived from the address suffix with 18 decimals.
func (r *Resolver) TokenInfo(addr common.Address) domain.TokenInfo {
	if info, ok := r.known[addr]; ok {
		return info
	}
	if info, ok := r.memo[addr]; ok {
		return info
	}

	hex := strings.ToLower(addr.Hex())
	suffix := hex[len(hex)-4:]
	info := domain.TokenInfo{
		Name:     fmt.Sprintf("Token (%s)", suffix),
		Symbol:   fmt.Sprintf("TKN-%s", suffix),
		Decimals: 18,
	}

	r.logger.Debug("token metadata unknown, using placeholder", zap.Stringer("token", addr))
	r.memo[addr] = info
	return info
}
