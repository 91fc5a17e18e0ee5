package decoder

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vadiminshakov/walletpnl/internal/domain"
	"go.uber.org/zap"
)

var (
	tokenAddr = common.HexToAddress("0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	fromAddr  = common.HexToAddress("0x1111111111111111111111111111111111111111")
	toAddr    = common.HexToAddress("0x2222222222222222222222222222222222222222")
)

// staticTokens resolves every address to the same metadata.
type staticTokens struct {
	info domain.TokenInfo
}

func (s staticTokens) TokenInfo(addr common.Address) domain.TokenInfo {
	return s.info
}

func addressTopic(addr common.Address) common.Hash {
	return common.BytesToHash(addr.Bytes())
}

func transferLog(token common.Address, from, to common.Address, amount *big.Int) types.Log {
	return types.Log{
		Address: token,
		Topics:  []common.Hash{transferTopic, addressTopic(from), addressTopic(to)},
		Data:    common.LeftPadBytes(amount.Bytes(), 32),
	}
}

func TestDecode_ValidTransfer(t *testing.T) {
	d := New(staticTokens{domain.TokenInfo{Name: "Test Token", Symbol: "TST", Decimals: 18}}, zap.NewNop())

	// 1.5 tokens with 18 decimals
	amount, _ := new(big.Int).SetString("1500000000000000000", 10)
	transfers := d.Decode([]types.Log{transferLog(tokenAddr, fromAddr, toAddr, amount)})

	require.Len(t, transfers, 1)
	tr := transfers[0]
	assert.Equal(t, tokenAddr, tr.Token)
	assert.Equal(t, "Test Token", tr.Name)
	assert.Equal(t, "TST", tr.Symbol)
	assert.Equal(t, int32(18), tr.Decimals)
	assert.Equal(t, fromAddr, tr.From)
	assert.Equal(t, toAddr, tr.To)
	assert.Equal(t, amount, tr.RawAmount)
	assert.True(t, tr.Amount.Equal(decimal.RequireFromString("1.5")))
}

func TestDecode_DecimalsApplied(t *testing.T) {
	d := New(staticTokens{domain.TokenInfo{Symbol: "SIX", Decimals: 6}}, zap.NewNop())

	transfers := d.Decode([]types.Log{transferLog(tokenAddr, fromAddr, toAddr, big.NewInt(2500000))})

	require.Len(t, transfers, 1)
	assert.True(t, transfers[0].Amount.Equal(decimal.RequireFromString("2.5")))
}

func TestDecode_SkipsNonTransferLogs(t *testing.T) {
	d := New(staticTokens{domain.TokenInfo{Symbol: "TST", Decimals: 18}}, zap.NewNop())
	otherTopic := common.HexToHash("0x8c5be1e5ebec7d5bd14f71427d1e84f3dd0314c0f7b2291e5b200ac8c7c3b925")

	tests := []struct {
		name string
		log  types.Log
	}{
		{
			name: "wrong signature",
			log: types.Log{
				Address: tokenAddr,
				Topics:  []common.Hash{otherTopic, addressTopic(fromAddr), addressTopic(toAddr)},
				Data:    common.LeftPadBytes(big.NewInt(1).Bytes(), 32),
			},
		},
		{
			name: "too few topics",
			log: types.Log{
				Address: tokenAddr,
				Topics:  []common.Hash{transferTopic, addressTopic(fromAddr)},
				Data:    common.LeftPadBytes(big.NewInt(1).Bytes(), 32),
			},
		},
		{
			name: "too many topics",
			log: types.Log{
				Address: tokenAddr,
				Topics:  []common.Hash{transferTopic, addressTopic(fromAddr), addressTopic(toAddr), addressTopic(toAddr)},
				Data:    common.LeftPadBytes(big.NewInt(1).Bytes(), 32),
			},
		},
		{
			name: "empty data payload",
			log: types.Log{
				Address: tokenAddr,
				Topics:  []common.Hash{transferTopic, addressTopic(fromAddr), addressTopic(toAddr)},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Empty(t, d.Decode([]types.Log{tt.log}))
		})
	}
}

func TestDecode_KeepsLogOrder(t *testing.T) {
	d := New(staticTokens{domain.TokenInfo{Symbol: "TST", Decimals: 0}}, zap.NewNop())

	logs := []types.Log{
		transferLog(tokenAddr, fromAddr, toAddr, big.NewInt(1)),
		{Address: tokenAddr, Topics: []common.Hash{transferTopic}}, // skipped
		transferLog(tokenAddr, toAddr, fromAddr, big.NewInt(2)),
	}
	transfers := d.Decode(logs)

	require.Len(t, transfers, 2)
	assert.True(t, transfers[0].Amount.Equal(decimal.NewFromInt(1)))
	assert.True(t, transfers[1].Amount.Equal(decimal.NewFromInt(2)))
}

func TestDecode_NoLogs(t *testing.T) {
	d := New(staticTokens{domain.TokenInfo{}}, zap.NewNop())

	assert.Empty(t, d.Decode(nil))
	assert.Empty(t, d.Decode([]types.Log{}))
}
