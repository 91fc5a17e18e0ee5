// Package classifier decides what economic action a transaction's token flows
// represent for one wallet.
package classifier

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/vadiminshakov/walletpnl/internal/domain"
)

// Classifier classifies transactions by the wallet's net token flow relative
// to a fixed quote-asset set. The called contract is never inspected, which
// keeps the classification DEX-agnostic.
type Classifier struct {
	wallet common.Address
	quote  domain.QuoteSet
}

// New creates a classifier for wallet against the given quote assets.
func New(wallet common.Address, quote domain.QuoteSet) *Classifier {
	return &Classifier{wallet: wallet, quote: quote}
}

// Classify applies the swap/transfer rules to all transfers of one
// transaction, first matching rule wins:
//
//  1. sent quote + received non-quote   -> Buy
//  2. sent non-quote + received quote   -> Sell
//  3. only sent                         -> Send
//  4. only received                     -> Receive
//  5. no transfers at all               -> Interaction
//  6. anything else                     -> Other
//
// When several transfers qualify as a leg, the first one in log order is
// taken. This is a known simplification: multi-hop swaps with more than one
// quote leg may have the wrong leg picked.
func (c *Classifier) Classify(transfers []domain.TokenTransfer) domain.Classification {
	var sent, received []domain.TokenTransfer
	for _, tr := range transfers {
		if tr.From == c.wallet {
			sent = append(sent, tr)
		}
		if tr.To == c.wallet {
			received = append(received, tr)
		}
	}

	sentQuote := c.first(sent, true)
	sentMain := c.first(sent, false)
	receivedQuote := c.first(received, true)
	receivedMain := c.first(received, false)

	switch {
	case sentQuote != nil && receivedMain != nil:
		return domain.Classification{
			Kind:       domain.TxBuy,
			MainSymbol: receivedMain.Symbol,
			MainToken:  receivedMain.Token,
			MainAmount: receivedMain.Amount,
			QuoteLeg:   sentQuote,
		}
	case sentMain != nil && receivedQuote != nil:
		return domain.Classification{
			Kind:       domain.TxSell,
			MainSymbol: sentMain.Symbol,
			MainToken:  sentMain.Token,
			MainAmount: sentMain.Amount,
			QuoteLeg:   receivedQuote,
		}
	case len(sent) > 0 && len(received) == 0:
		return domain.Classification{Kind: domain.TxSend}
	case len(sent) == 0 && len(received) > 0:
		return domain.Classification{Kind: domain.TxReceive}
	case len(transfers) == 0:
		return domain.Classification{Kind: domain.TxInteraction}
	default:
		return domain.Classification{Kind: domain.TxOther}
	}
}

// first returns the first transfer in log order that is (or is not) a quote asset.
func (c *Classifier) first(transfers []domain.TokenTransfer, wantQuote bool) *domain.TokenTransfer {
	for i := range transfers {
		if c.quote.Contains(transfers[i].Token) == wantQuote {
			return &transfers[i]
		}
	}
	return nil
}
