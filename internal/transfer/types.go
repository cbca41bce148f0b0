package transfer

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Request asks for a native currency transfer. Amount is a decimal ether string.
type Request struct {
	To       string   `json:"to"`
	Amount   string   `json:"amount"`
	GasLimit uint64   `json:"gasLimit,omitempty"`
	GasPrice *big.Int `json:"gasPrice,omitempty"`
	// Memo is logged with the transfer, it never goes on-chain.
	Memo string `json:"memo,omitempty"`
}

// Call is a prepared transaction: a transfer, or a contract call with encoded data.
type Call struct {
	To       common.Address
	Value    *big.Int
	Data     []byte
	GasLimit uint64
	GasPrice *big.Int
}

// Outcome reports the result of one submission. On success TxHash and Receipt are set,
// on failure Kind and Error.
type Outcome struct {
	Success     bool
	TxHash      common.Hash
	Receipt     *types.Receipt
	Kind        Kind
	Error       string
	SubmittedAt time.Time
	ConfirmedAt time.Time
}

// Fee returns the fee actually paid, or nil when there is no receipt.
func (o Outcome) Fee() *big.Int {
	if o.Receipt == nil || o.Receipt.EffectiveGasPrice == nil {
		return nil
	}

	return new(big.Int).Mul(new(big.Int).SetUint64(o.Receipt.GasUsed), o.Receipt.EffectiveGasPrice)
}

// CostEstimate breaks down what a transfer would cost. All amounts are in wei.
type CostEstimate struct {
	Amount   *big.Int
	GasUnits uint64
	GasPrice *big.Int
	GasFee   *big.Int
	Total    *big.Int
}
