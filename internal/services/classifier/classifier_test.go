package classifier

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vadiminshakov/walletpnl/internal/domain"
)

var (
	wallet    = common.HexToAddress("0x1111111111111111111111111111111111111111")
	other     = common.HexToAddress("0x2222222222222222222222222222222222222222")
	tokenAddr = common.HexToAddress("0x3333333333333333333333333333333333333333")
)

func transfer(token common.Address, symbol string, from, to common.Address, amount string) domain.TokenTransfer {
	return domain.TokenTransfer{
		Token:  token,
		Symbol: symbol,
		From:   from,
		To:     to,
		Amount: decimal.RequireFromString(amount),
	}
}

func TestClassify(t *testing.T) {
	quote := domain.DefaultQuoteSet()
	c := New(wallet, quote)

	tests := []struct {
		name      string
		transfers []domain.TokenTransfer
		expected  domain.TxKind
	}{
		{
			name: "sent stable and received token is a buy",
			transfers: []domain.TokenTransfer{
				transfer(domain.USDTAddress, "USDT", wallet, other, "200"),
				transfer(tokenAddr, "TKN", other, wallet, "100"),
			},
			expected: domain.TxBuy,
		},
		{
			name: "sent wrapped native and received token is a buy",
			transfers: []domain.TokenTransfer{
				transfer(domain.WBNBAddress, "WBNB", wallet, other, "0.5"),
				transfer(tokenAddr, "TKN", other, wallet, "100"),
			},
			expected: domain.TxBuy,
		},
		{
			name: "sent token and received stable is a sell",
			transfers: []domain.TokenTransfer{
				transfer(tokenAddr, "TKN", wallet, other, "100"),
				transfer(domain.USDTAddress, "USDT", other, wallet, "250"),
			},
			expected: domain.TxSell,
		},
		{
			name: "only outgoing transfers is a send",
			transfers: []domain.TokenTransfer{
				transfer(tokenAddr, "TKN", wallet, other, "10"),
			},
			expected: domain.TxSend,
		},
		{
			name: "only incoming transfers is a receive",
			transfers: []domain.TokenTransfer{
				transfer(tokenAddr, "TKN", other, wallet, "10"),
			},
			expected: domain.TxReceive,
		},
		{
			name:      "no transfers is an interaction",
			transfers: nil,
			expected:  domain.TxInteraction,
		},
		{
			name: "quote for quote swap is other",
			transfers: []domain.TokenTransfer{
				transfer(domain.USDTAddress, "USDT", wallet, other, "100"),
				transfer(domain.BUSDAddress, "BUSD", other, wallet, "100"),
			},
			expected: domain.TxOther,
		},
		{
			name: "token for token swap is other",
			transfers: []domain.TokenTransfer{
				transfer(tokenAddr, "TKN", wallet, other, "100"),
				transfer(common.HexToAddress("0x4444444444444444444444444444444444444444"), "XYZ", other, wallet, "5"),
			},
			expected: domain.TxOther,
		},
		{
			name: "transfers not touching the wallet is other",
			transfers: []domain.TokenTransfer{
				transfer(tokenAddr, "TKN", other, other, "10"),
			},
			expected: domain.TxOther,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cls := c.Classify(tt.transfers)
			assert.Equal(t, tt.expected, cls.Kind)
		})
	}
}

func TestClassify_BuyLegDetails(t *testing.T) {
	c := New(wallet, domain.DefaultQuoteSet())

	cls := c.Classify([]domain.TokenTransfer{
		transfer(domain.USDTAddress, "USDT", wallet, other, "200"),
		transfer(tokenAddr, "TKN", other, wallet, "100"),
	})

	assert.Equal(t, domain.TxBuy, cls.Kind)
	assert.Equal(t, "TKN", cls.MainSymbol)
	assert.Equal(t, tokenAddr, cls.MainToken)
	assert.True(t, cls.MainAmount.Equal(decimal.NewFromInt(100)))
	require.NotNil(t, cls.QuoteLeg)
	assert.Equal(t, "USDT", cls.QuoteLeg.Symbol)
	assert.True(t, cls.QuoteLeg.Amount.Equal(decimal.NewFromInt(200)))
	assert.True(t, cls.IsSwap())
}

func TestClassify_SellLegDetails(t *testing.T) {
	c := New(wallet, domain.DefaultQuoteSet())

	cls := c.Classify([]domain.TokenTransfer{
		transfer(tokenAddr, "TKN", wallet, other, "100"),
		transfer(domain.WBNBAddress, "WBNB", other, wallet, "0.4"),
	})

	assert.Equal(t, domain.TxSell, cls.Kind)
	assert.Equal(t, "TKN", cls.MainSymbol)
	require.NotNil(t, cls.QuoteLeg)
	assert.Equal(t, "WBNB", cls.QuoteLeg.Symbol)
}

func TestClassify_FirstLegInLogOrderWins(t *testing.T) {
	c := New(wallet, domain.DefaultQuoteSet())
	secondToken := common.HexToAddress("0x5555555555555555555555555555555555555555")

	// two received non-quote transfers: the first one becomes the main leg
	cls := c.Classify([]domain.TokenTransfer{
		transfer(domain.USDTAddress, "USDT", wallet, other, "200"),
		transfer(tokenAddr, "AAA", other, wallet, "1"),
		transfer(secondToken, "BBB", other, wallet, "2"),
	})

	assert.Equal(t, domain.TxBuy, cls.Kind)
	assert.Equal(t, "AAA", cls.MainSymbol)

	// two sent quote transfers: the first one becomes the quote leg
	cls = c.Classify([]domain.TokenTransfer{
		transfer(domain.BUSDAddress, "BUSD", wallet, other, "50"),
		transfer(domain.USDTAddress, "USDT", wallet, other, "60"),
		transfer(tokenAddr, "AAA", other, wallet, "1"),
	})

	require.NotNil(t, cls.QuoteLeg)
	assert.Equal(t, "BUSD", cls.QuoteLeg.Symbol)
}

func TestClassify_NonSwapHasNoMainToken(t *testing.T) {
	c := New(wallet, domain.DefaultQuoteSet())

	cls := c.Classify([]domain.TokenTransfer{
		transfer(tokenAddr, "TKN", wallet, other, "10"),
	})

	assert.Equal(t, domain.TxSend, cls.Kind)
	assert.Empty(t, cls.MainSymbol)
	assert.True(t, cls.MainAmount.IsZero())
	assert.Nil(t, cls.QuoteLeg)
	assert.False(t, cls.IsSwap())
}
