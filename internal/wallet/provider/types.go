package provider

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Backend is the subset of the JSON-RPC client the wallet talks to. Both *ethclient.Client
// and the simulated backend client satisfy it.
type Backend interface {
	ChainID(ctx context.Context) (*big.Int, error)
	BlockNumber(ctx context.Context) (uint64, error)
	HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error)
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	SuggestGasTipCap(ctx context.Context) (*big.Int, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
}

// Provider is the read side of a signing identity's network connection.
type Provider interface {
	// BalanceAt returns the latest balance of account in wei
	BalanceAt(ctx context.Context, account common.Address) (*big.Int, error)

	// EstimateGas estimates the gas units the given call would consume
	EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error)

	// FeeData returns the current fee rates of the network
	FeeData(ctx context.Context) (*FeeData, error)

	// Network identifies the connected chain
	Network(ctx context.Context) (*Network, error)

	// CallContract executes a read-only call against the latest block
	CallContract(ctx context.Context, msg ethereum.CallMsg) ([]byte, error)
}

// Client adds what a signer needs to broadcast transactions and track them.
type Client interface {
	Provider

	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
	BlockNumber(ctx context.Context) (uint64, error)
}

// FeeData is a snapshot of the network's fee rates. GasPrice is always set; the EIP-1559
// fields are nil on networks without a base fee.
type FeeData struct {
	GasPrice             *big.Int
	MaxFeePerGas         *big.Int
	MaxPriorityFeePerGas *big.Int
}

// SupportsEIP1559 reports whether dynamic fee fields are available.
func (f *FeeData) SupportsEIP1559() bool {
	return f != nil && f.MaxFeePerGas != nil && f.MaxPriorityFeePerGas != nil
}

type Network struct {
	ChainID *big.Int
	Name    string
}

// knownNetworks maps chain ids to display names.
//
//nolint:gochecknoglobals // read-only lookup table
var knownNetworks = map[int64]string{
	1:        "mainnet",
	11155111: "sepolia",
	17000:    "holesky",
	1868:     "soneium",
	1946:     "soneium-minato",
	137:      "polygon",
	56:       "bsc",
	97:       "bsc-testnet",
	1337:     "simulated",
	31337:    "anvil",
}

// NetworkName returns the known name of chainID, or "unknown".
func NetworkName(chainID *big.Int) string {
	if chainID == nil || !chainID.IsInt64() {
		return "unknown"
	}
	if name, ok := knownNetworks[chainID.Int64()]; ok {
		return name
	}

	return "unknown"
}
