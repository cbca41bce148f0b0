package signer

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github/chapool/magic-wallet/internal/wallet/provider"
)

// Signer is an authenticated signing identity bound to one network.
type Signer interface {
	// Address returns the account transactions are sent from
	Address() common.Address

	// Provider returns the network connection the signer is bound to
	Provider() provider.Provider

	// SendTransaction fills in nonce, gas and fees, signs and broadcasts a transaction
	SendTransaction(ctx context.Context, spec TxSpec) (PendingTx, error)
}

// TxSpec describes a transaction before the signer prices it.
type TxSpec struct {
	To       *common.Address
	Value    *big.Int // wei, nil means 0
	Data     []byte
	GasLimit uint64   // 0 means estimate
	GasPrice *big.Int // nil means network fee data
}

// PendingTx is a broadcast transaction awaiting confirmation.
type PendingTx interface {
	Hash() common.Hash

	// Wait blocks until the transaction is mined or ctx is done
	Wait(ctx context.Context) (*types.Receipt, error)
}
