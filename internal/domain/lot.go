package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Lot is an open cost-basis inventory unit created by a Buy. Quantity shrinks
// as later Sells of the same token consume it front-to-back.
type Lot struct {
	// Quantity remaining unsold quantity.
	Quantity decimal.Decimal `json:"qty"`
	// UnitCost quote cost per unit paid at acquisition.
	UnitCost decimal.Decimal `json:"cost_per_unit_usdt"`
	// BuyTxHash hash of the transaction that created the lot.
	BuyTxHash string `json:"tx_hash_buy"`
	// BuyTime timestamp of the acquiring transaction.
	BuyTime time.Time `json:"timestamp_buy"`
}
