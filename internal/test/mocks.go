package test

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/mock"
	"github/chapool/magic-wallet/internal/wallet/provider"
	"github/chapool/magic-wallet/internal/wallet/signer"
)

// MockProvider is a mock implementation of provider.Provider for testing
type MockProvider struct {
	mock.Mock
}

var _ provider.Provider = (*MockProvider)(nil)

func (m *MockProvider) BalanceAt(ctx context.Context, account common.Address) (*big.Int, error) {
	args := m.Called(ctx, account)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*big.Int), args.Error(1)
}

func (m *MockProvider) EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error) {
	args := m.Called(ctx, msg)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *MockProvider) FeeData(ctx context.Context) (*provider.FeeData, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provider.FeeData), args.Error(1)
}

func (m *MockProvider) Network(ctx context.Context) (*provider.Network, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provider.Network), args.Error(1)
}

func (m *MockProvider) CallContract(ctx context.Context, msg ethereum.CallMsg) ([]byte, error) {
	args := m.Called(ctx, msg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// MockSigner is a mock implementation of signer.Signer for testing
type MockSigner struct {
	mock.Mock

	Account common.Address
	Backend *MockProvider
}

var _ signer.Signer = (*MockSigner)(nil)

// NewMockSigner returns a signer for account with an empty MockProvider attached.
func NewMockSigner(account common.Address) *MockSigner {
	return &MockSigner{Account: account, Backend: new(MockProvider)}
}

func (m *MockSigner) Address() common.Address {
	return m.Account
}

//nolint:ireturn
func (m *MockSigner) Provider() provider.Provider {
	return m.Backend
}

//nolint:ireturn
func (m *MockSigner) SendTransaction(ctx context.Context, spec signer.TxSpec) (signer.PendingTx, error) {
	args := m.Called(ctx, spec)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(signer.PendingTx), args.Error(1)
}

// MockPendingTx is a mock implementation of signer.PendingTx for testing
type MockPendingTx struct {
	mock.Mock

	TxHash common.Hash
}

var _ signer.PendingTx = (*MockPendingTx)(nil)

func (m *MockPendingTx) Hash() common.Hash {
	return m.TxHash
}

func (m *MockPendingTx) Wait(ctx context.Context) (*types.Receipt, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Receipt), args.Error(1)
}

// SuccessfulReceipt returns a mined receipt for hash with the given gas figures.
func SuccessfulReceipt(hash common.Hash, gasUsed uint64, gasPrice *big.Int) *types.Receipt {
	return &types.Receipt{
		Status:            types.ReceiptStatusSuccessful,
		TxHash:            hash,
		GasUsed:           gasUsed,
		EffectiveGasPrice: gasPrice,
		BlockNumber:       big.NewInt(1),
	}
}

// MockClient is a mock implementation of provider.Client for testing
type MockClient struct {
	MockProvider
}

var _ provider.Client = (*MockClient)(nil)

func (m *MockClient) PendingNonceAt(ctx context.Context, account common.Address) (uint64, error) {
	args := m.Called(ctx, account)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *MockClient) SendTransaction(ctx context.Context, tx *types.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockClient) TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	args := m.Called(ctx, txHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Receipt), args.Error(1)
}

func (m *MockClient) BlockNumber(ctx context.Context) (uint64, error) {
	args := m.Called(ctx)
	return args.Get(0).(uint64), args.Error(1)
}
