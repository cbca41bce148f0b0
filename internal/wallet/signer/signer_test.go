package signer_test

import (
	"context"
	"crypto/ecdsa"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient/simulated"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github/chapool/magic-wallet/internal/test"
	"github/chapool/magic-wallet/internal/wallet/address"
	"github/chapool/magic-wallet/internal/wallet/provider"
	"github/chapool/magic-wallet/internal/wallet/seed"
	"github/chapool/magic-wallet/internal/wallet/signer"
)

//nolint:dupword
const testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

type chain struct {
	sim    *simulated.Backend
	client *provider.RPCClient
	key    *ecdsa.PrivateKey
}

func newChain(t *testing.T) *chain {
	t.Helper()

	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	funds := new(big.Int).Mul(big.NewInt(100), big.NewInt(1_000_000_000_000_000_000))
	sim := simulated.NewBackend(types.GenesisAlloc{
		crypto.PubkeyToAddress(key.PublicKey): {Balance: funds},
	})
	t.Cleanup(func() { _ = sim.Close() })

	client, err := provider.NewFromBackends(sim.Client())
	require.NoError(t, err)

	return &chain{sim: sim, client: client, key: key}
}

// mine commits blocks in the background until the test ends so Wait can observe receipts.
func (c *chain) mine(t *testing.T) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	go func() {
		ticker := time.NewTicker(10 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.sim.Commit()
			}
		}
	}()
}

func TestSendDynamicFeeTransaction(t *testing.T) {
	c := newChain(t)
	c.mine(t)

	s, err := signer.New(c.key, c.client, signer.WithPollInterval(10*time.Millisecond))
	require.NoError(t, err)

	to := common.HexToAddress("0x00000000000000000000000000000000000000aa")
	value := big.NewInt(1_000_000_000_000_000)

	pending, err := s.SendTransaction(context.Background(), signer.TxSpec{To: &to, Value: value})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	receipt, err := pending.Wait(ctx)
	require.NoError(t, err)
	assert.Equal(t, types.ReceiptStatusSuccessful, receipt.Status)
	assert.Equal(t, pending.Hash(), receipt.TxHash)
	assert.Equal(t, uint8(types.DynamicFeeTxType), receipt.Type)
	assert.Equal(t, uint64(21000), receipt.GasUsed)

	balance, err := c.client.BalanceAt(context.Background(), to)
	require.NoError(t, err)
	assert.Equal(t, value.String(), balance.String())
}

func TestSendLegacyTransactionWithExplicitGasPrice(t *testing.T) {
	c := newChain(t)
	c.mine(t)

	s, err := signer.New(c.key, c.client, signer.WithPollInterval(10*time.Millisecond))
	require.NoError(t, err)

	to := common.HexToAddress("0x00000000000000000000000000000000000000bb")
	gasPrice := big.NewInt(10_000_000_000)

	pending, err := s.SendTransaction(context.Background(), signer.TxSpec{
		To:       &to,
		Value:    big.NewInt(1),
		GasLimit: 30000,
		GasPrice: gasPrice,
	})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	receipt, err := pending.Wait(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint8(types.LegacyTxType), receipt.Type)
	assert.Equal(t, gasPrice.String(), receipt.EffectiveGasPrice.String())
}

func TestSequentialSendsUseIncreasingNonces(t *testing.T) {
	c := newChain(t)

	s, err := signer.New(c.key, c.client)
	require.NoError(t, err)

	to := common.HexToAddress("0x00000000000000000000000000000000000000cc")
	first, err := s.SendTransaction(context.Background(), signer.TxSpec{To: &to, Value: big.NewInt(1)})
	require.NoError(t, err)
	second, err := s.SendTransaction(context.Background(), signer.TxSpec{To: &to, Value: big.NewInt(1)})
	require.NoError(t, err)
	assert.NotEqual(t, first.Hash(), second.Hash())

	c.sim.Commit()

	for _, pending := range []signer.PendingTx{first, second} {
		receipt, err := c.client.TransactionReceipt(context.Background(), pending.Hash())
		require.NoError(t, err)
		assert.Equal(t, types.ReceiptStatusSuccessful, receipt.Status)
	}
}

func TestWaitRespectsContext(t *testing.T) {
	c := newChain(t)

	s, err := signer.New(c.key, c.client, signer.WithPollInterval(10*time.Millisecond))
	require.NoError(t, err)

	to := common.HexToAddress("0x00000000000000000000000000000000000000dd")
	pending, err := s.SendTransaction(context.Background(), signer.TxSpec{To: &to, Value: big.NewInt(1)})
	require.NoError(t, err)

	// never mined
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = pending.Wait(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestFromHex(t *testing.T) {
	c := newChain(t)
	hexKey := common.Bytes2Hex(crypto.FromECDSA(c.key))

	plain, err := signer.FromHex(hexKey, c.client)
	require.NoError(t, err)
	prefixed, err := signer.FromHex("0x"+hexKey, c.client)
	require.NoError(t, err)

	assert.Equal(t, crypto.PubkeyToAddress(c.key.PublicKey), plain.Address())
	assert.Equal(t, plain.Address(), prefixed.Address())

	_, err = signer.FromHex("0xnothex", c.client)
	require.Error(t, err)
}

func TestFromSeed(t *testing.T) {
	c := newChain(t)

	seedManager := seed.NewManager()
	require.NoError(t, seedManager.Initialize(testMnemonic, ""))

	addressService := address.NewService()
	s, err := signer.FromSeed(context.Background(), seedManager, addressService, addressService.GetBIP44Path(0), c.client)
	require.NoError(t, err)
	assert.Equal(t, "0x9858EfFD232B4033E47d90003D41EC34EcaEda94", s.Address().Hex())

	_, err = signer.FromSeed(context.Background(), seed.NewManager(), addressService, addressService.GetBIP44Path(0), c.client)
	require.ErrorIs(t, err, signer.ErrSeedNotInitialized)
}

func TestNewRequiresKeyAndClient(t *testing.T) {
	c := newChain(t)

	_, err := signer.New(nil, c.client)
	require.Error(t, err)

	_, err = signer.New(c.key, nil)
	require.Error(t, err)
}

type rpcError struct {
	code int
	msg  string
}

func (e *rpcError) Error() string  { return e.msg }
func (e *rpcError) ErrorCode() int { return e.code }

func newMockClient() *test.MockClient {
	client := new(test.MockClient)
	client.On("Network", mock.Anything).Return(&provider.Network{ChainID: big.NewInt(test.SimulatedChainID), Name: "simulated"}, nil)
	client.On("PendingNonceAt", mock.Anything, mock.Anything).Return(uint64(7), nil)
	client.On("SendTransaction", mock.Anything, mock.Anything).Return(nil)

	return client
}

func sendLegacy(t *testing.T, client *test.MockClient) signer.PendingTx {
	t.Helper()

	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	s, err := signer.New(key, client, signer.WithPollInterval(time.Millisecond))
	require.NoError(t, err)

	to := common.HexToAddress("0x00000000000000000000000000000000000000aa")
	pending, err := s.SendTransaction(context.Background(), signer.TxSpec{
		To:       &to,
		Value:    big.NewInt(1),
		GasLimit: 21000,
		GasPrice: big.NewInt(1_000_000_000),
	})
	require.NoError(t, err)

	return pending
}

func TestWaitKeepsPollingWhileNodeIndexes(t *testing.T) {
	client := newMockClient()
	indexing := errors.Wrap(&rpcError{code: -32000, msg: "transaction indexing is in progress"}, "failed to get transaction receipt")
	receipt := &types.Receipt{Status: types.ReceiptStatusSuccessful, BlockNumber: big.NewInt(3), GasUsed: 21000}

	client.On("TransactionReceipt", mock.Anything, mock.Anything).Return(nil, indexing).Once()
	client.On("TransactionReceipt", mock.Anything, mock.Anything).Return(nil, ethereum.NotFound).Once()
	client.On("TransactionReceipt", mock.Anything, mock.Anything).Return(receipt, nil).Once()

	pending := sendLegacy(t, client)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	got, err := pending.Wait(ctx)
	require.NoError(t, err)
	assert.Same(t, receipt, got)
	client.AssertNumberOfCalls(t, "TransactionReceipt", 3)
}

func TestWaitStopsOnReceiptError(t *testing.T) {
	client := newMockClient()
	client.On("TransactionReceipt", mock.Anything, mock.Anything).
		Return(nil, &rpcError{code: -32603, msg: "internal error"}).Once()

	pending := sendLegacy(t, client)

	_, err := pending.Wait(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "internal error")
	client.AssertNumberOfCalls(t, "TransactionReceipt", 1)
}
