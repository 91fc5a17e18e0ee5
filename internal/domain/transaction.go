package domain

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// Transaction is a raw wallet transaction summary as returned by the block
// explorer, already parsed into native types. The list a report is built from
// is ordered ascending by Time.
type Transaction struct {
	// Hash transaction hash.
	Hash string `json:"hash"`
	// BlockNumber block the transaction was mined in.
	BlockNumber uint64 `json:"block_number"`
	// Time block timestamp.
	Time time.Time `json:"time"`
	// From transaction sender.
	From common.Address `json:"from"`
	// To transaction recipient (contract or wallet).
	To common.Address `json:"to"`
	// ValueWei native currency value in wei.
	ValueWei *big.Int `json:"value_wei"`
	// GasUsed gas consumed by the transaction.
	GasUsed uint64 `json:"gas_used"`
	// Failed true when the explorer flags the transaction as errored.
	Failed bool `json:"is_error"`
}
