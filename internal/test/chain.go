package test

import (
	"context"
	"crypto/ecdsa"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient/simulated"
	"github.com/stretchr/testify/require"
	"github/chapool/magic-wallet/internal/api"
	"github/chapool/magic-wallet/internal/wallet/provider"
	"github/chapool/magic-wallet/internal/wallet/signer"
)

const (
	SimulatedChainID = 1337
	blockInterval    = 10 * time.Millisecond
)

// TestTime is the fixed time of mock clocks in tests.
//
//nolint:gochecknoglobals
var TestTime = api.MockClockTime

// SimulatedChain is an in-memory chain with one funded account.
type SimulatedChain struct {
	Backend *simulated.Backend
	Client  *provider.RPCClient
	Key     *ecdsa.PrivateKey
	Account common.Address
}

// Ether converts whole ether to wei.
func Ether(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), big.NewInt(1_000_000_000_000_000_000))
}

// NewSimulatedChain starts a chain where a fresh account holds funds. It is closed when
// the test ends.
func NewSimulatedChain(t *testing.T, funds *big.Int) *SimulatedChain {
	t.Helper()

	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	account := crypto.PubkeyToAddress(key.PublicKey)

	backend := simulated.NewBackend(types.GenesisAlloc{
		account: {Balance: funds},
	})
	t.Cleanup(func() { _ = backend.Close() })

	client, err := provider.NewFromBackends(backend.Client())
	require.NoError(t, err)

	return &SimulatedChain{
		Backend: backend,
		Client:  client,
		Key:     key,
		Account: account,
	}
}

// AutoMine commits a block every few milliseconds until the test ends.
func (c *SimulatedChain) AutoMine(t *testing.T) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	go func() {
		ticker := time.NewTicker(blockInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.Backend.Commit()
			}
		}
	}()
}

// Signer binds the funded account to the chain with fast receipt polling.
//
//nolint:ireturn
func (c *SimulatedChain) Signer(t *testing.T) signer.Signer {
	t.Helper()

	s, err := signer.New(c.Key, c.Client, signer.WithPollInterval(blockInterval))
	require.NoError(t, err)

	return s
}

// Balance returns the latest balance of account.
func (c *SimulatedChain) Balance(t *testing.T, account common.Address) *big.Int {
	t.Helper()

	balance, err := c.Client.BalanceAt(context.Background(), account)
	require.NoError(t, err)

	return balance
}
