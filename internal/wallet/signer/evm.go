package signer

import (
	"context"
	"crypto/ecdsa"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github/chapool/magic-wallet/internal/wallet/provider"
)

const DefaultPollInterval = 2 * time.Second

type Option func(*keySigner)

// WithPollInterval sets how often Wait polls for the receipt.
func WithPollInterval(d time.Duration) Option {
	return func(s *keySigner) {
		if d > 0 {
			s.pollInterval = d
		}
	}
}

type keySigner struct {
	key          *ecdsa.PrivateKey
	address      common.Address
	client       provider.Client
	pollInterval time.Duration

	// serializes nonce lookup and broadcast
	mu sync.Mutex
}

var _ Signer = (*keySigner)(nil)

// New binds a private key to a network client.
//
//nolint:ireturn
func New(key *ecdsa.PrivateKey, client provider.Client, opts ...Option) (Signer, error) {
	if key == nil {
		return nil, errors.New("private key is required")
	}
	if client == nil {
		return nil, errors.New("client is required")
	}

	s := &keySigner{
		key:          key,
		address:      crypto.PubkeyToAddress(key.PublicKey),
		client:       client,
		pollInterval: DefaultPollInterval,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// FromHex parses a hex private key, with or without 0x prefix.
//
//nolint:ireturn
func FromHex(hexKey string, client provider.Client, opts ...Option) (Signer, error) {
	key, err := crypto.HexToECDSA(trimHexPrefix(hexKey))
	if err != nil {
		return nil, errors.Wrap(err, "invalid private key")
	}

	return New(key, client, opts...)
}

func trimHexPrefix(s string) string {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		return s[2:]
	}

	return s
}

func (s *keySigner) Address() common.Address {
	return s.address
}

//nolint:ireturn
func (s *keySigner) Provider() provider.Provider {
	return s.client
}

//nolint:ireturn
func (s *keySigner) SendTransaction(ctx context.Context, spec TxSpec) (PendingTx, error) {
	network, err := s.client.Network(ctx)
	if err != nil {
		return nil, err
	}

	value := spec.Value
	if value == nil {
		value = new(big.Int)
	}

	gasLimit := spec.GasLimit
	if gasLimit == 0 {
		gasLimit, err = s.client.EstimateGas(ctx, ethereum.CallMsg{
			From:  s.address,
			To:    spec.To,
			Value: value,
			Data:  spec.Data,
		})
		if err != nil {
			return nil, err
		}
	}

	var fees *provider.FeeData
	if spec.GasPrice == nil {
		fees, err = s.client.FeeData(ctx)
		if err != nil {
			return nil, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	nonce, err := s.client.PendingNonceAt(ctx, s.address)
	if err != nil {
		return nil, err
	}

	//nolint:varnamelen // tx is a common abbreviation for transaction
	tx := buildTx(network.ChainID, nonce, gasLimit, spec, value, fees)

	signed, err := types.SignTx(tx, types.LatestSignerForChainID(network.ChainID), s.key)
	if err != nil {
		return nil, errors.Wrap(err, "failed to sign transaction")
	}

	if err := s.client.SendTransaction(ctx, signed); err != nil {
		return nil, err
	}

	log.Ctx(ctx).Debug().
		Str("tx_hash", signed.Hash().Hex()).
		Uint64("nonce", nonce).
		Uint64("gas_limit", gasLimit).
		Uint8("tx_type", signed.Type()).
		Msg("Transaction broadcast")

	return &pendingTx{
		hash:         signed.Hash(),
		client:       s.client,
		pollInterval: s.pollInterval,
	}, nil
}

// buildTx uses a legacy transaction when an explicit gas price is given or the network has
// no base fee, and an EIP-1559 transaction otherwise.
func buildTx(chainID *big.Int, nonce, gasLimit uint64, spec TxSpec, value *big.Int, fees *provider.FeeData) *types.Transaction {
	if spec.GasPrice == nil && fees.SupportsEIP1559() {
		return types.NewTx(&types.DynamicFeeTx{
			ChainID:   chainID,
			Nonce:     nonce,
			GasTipCap: fees.MaxPriorityFeePerGas,
			GasFeeCap: fees.MaxFeePerGas,
			Gas:       gasLimit,
			To:        spec.To,
			Value:     value,
			Data:      spec.Data,
		})
	}

	gasPrice := spec.GasPrice
	if gasPrice == nil {
		gasPrice = fees.GasPrice
	}

	return types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		GasPrice: gasPrice,
		Gas:      gasLimit,
		To:       spec.To,
		Value:    value,
		Data:     spec.Data,
	})
}

type pendingTx struct {
	hash         common.Hash
	client       provider.Client
	pollInterval time.Duration
}

func (p *pendingTx) Hash() common.Hash {
	return p.hash
}

func (p *pendingTx) Wait(ctx context.Context) (*types.Receipt, error) {
	ticker := time.NewTicker(p.pollInterval)
	defer ticker.Stop()

	for {
		receipt, err := p.client.TransactionReceipt(ctx, p.hash)
		if receipt != nil {
			return receipt, nil
		}
		if err != nil && !provider.IsReceiptPending(err) {
			if ctx.Err() != nil {
				return nil, errors.Wrap(ctx.Err(), "waiting for transaction receipt")
			}
			return nil, err
		}

		select {
		case <-ctx.Done():
			return nil, errors.Wrap(ctx.Err(), "waiting for transaction receipt")
		case <-ticker.C:
		}
	}
}
