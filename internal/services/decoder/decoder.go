// Package decoder extracts BEP20 transfer events from transaction receipt logs.
package decoder

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/shopspring/decimal"
	"github.com/vadiminshakov/walletpnl/internal/domain"
	"go.uber.org/zap"
)

// transferTopic is the event signature of Transfer(address,address,uint256).
var transferTopic = crypto.Keccak256Hash([]byte("Transfer(address,address,uint256)"))

// TokenInfoSource resolves token metadata by contract address. Implementations
// must return a usable placeholder for unknown tokens instead of failing.
type TokenInfoSource interface {
	TokenInfo(addr common.Address) domain.TokenInfo
}

// Decoder converts receipt logs into decoded token transfers.
type Decoder struct {
	tokens TokenInfoSource
	logger *zap.Logger
}

// New creates a decoder resolving token metadata through tokens.
func New(tokens TokenInfoSource, logger *zap.Logger) *Decoder {
	return &Decoder{tokens: tokens, logger: logger}
}

// Decode returns the token transfers of one transaction in log order. Only
// entries carrying the standard transfer signature with exactly two indexed
// address topics are decoded; every other entry, including entries with a
// missing data payload, is skipped without failing the transaction.
func (d *Decoder) Decode(logs []types.Log) []domain.TokenTransfer {
	var transfers []domain.TokenTransfer
	for _, lg := range logs {
		if len(lg.Topics) != 3 || lg.Topics[0] != transferTopic {
			continue
		}
		if len(lg.Data) == 0 {
			d.logger.Debug("transfer log without data payload skipped",
				zap.Stringer("token", lg.Address),
				zap.Uint("log_index", lg.Index))
			continue
		}

		raw := new(big.Int).SetBytes(lg.Data)
		info := d.tokens.TokenInfo(lg.Address)

		transfers = append(transfers, domain.TokenTransfer{
			Token:     lg.Address,
			Name:      info.Name,
			Symbol:    info.Symbol,
			Decimals:  info.Decimals,
			From:      common.BytesToAddress(lg.Topics[1].Bytes()),
			To:        common.BytesToAddress(lg.Topics[2].Bytes()),
			RawAmount: raw,
			Amount:    decimal.NewFromBigInt(raw, -info.Decimals),
		})
	}
	return transfers
}
