package tokeninfo

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/vadiminshakov/walletpnl/internal/domain"
	"go.uber.org/zap"
)

func TestResolver_KnownQuoteAssets(t *testing.T) {
	r := NewResolver(nil, zap.NewNop())

	tests := []struct {
		addr   common.Address
		symbol string
	}{
		{addr: domain.WBNBAddress, symbol: "WBNB"},
		{addr: domain.USDTAddress, symbol: "USDT"},
		{addr: domain.BUSDAddress, symbol: "BUSD"},
	}

	for _, tt := range tests {
		info := r.TokenInfo(tt.addr)
		assert.Equal(t, tt.symbol, info.Symbol)
		assert.Equal(t, int32(18), info.Decimals)
	}
}

func TestResolver_ExtraTokensOverride(t *testing.T) {
	addr := common.HexToAddress("0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	extra := map[common.Address]domain.TokenInfo{
		addr: {Name: "My Token", Symbol: "MYT", Decimals: 9},
	}
	r := NewResolver(extra, zap.NewNop())

	info := r.TokenInfo(addr)
	assert.Equal(t, "My Token", info.Name)
	assert.Equal(t, "MYT", info.Symbol)
	assert.Equal(t, int32(9), info.Decimals)
}

func TestResolver_PlaceholderForUnknown(t *testing.T) {
	r := NewResolver(nil, zap.NewNop())
	addr := common.HexToAddress("0x1234567890abcdef1234567890abcdef1234BEEF")

	info := r.TokenInfo(addr)

	assert.Equal(t, "Token (beef)", info.Name)
	assert.Equal(t, "TKN-beef", info.Symbol)
	assert.Equal(t, int32(18), info.Decimals)

	// memoized, same placeholder on repeat lookups
	assert.Equal(t, info, r.TokenInfo(addr))
}
