package signer

import (
	"context"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
	"github/chapool/magic-wallet/internal/wallet/address"
	"github/chapool/magic-wallet/internal/wallet/provider"
	"github/chapool/magic-wallet/internal/wallet/seed"
)

var ErrSeedNotInitialized = errors.New("seed not initialized")

// FromSeed derives the key at derivationPath from an unlocked seed and binds it to client.
//
//nolint:ireturn
func FromSeed(
	ctx context.Context,
	seedManager seed.Manager,
	addressService address.Service,
	derivationPath string,
	client provider.Client,
	opts ...Option,
) (Signer, error) {
	seedBytes := seedManager.GetSeed()
	if seedBytes == nil {
		return nil, ErrSeedNotInitialized
	}
	defer address.Zero(seedBytes)

	privateKey, err := addressService.DerivePrivateKey(ctx, seedBytes, derivationPath, address.ChainTypeEVM)
	if err != nil {
		return nil, errors.Wrap(err, "failed to derive private key")
	}
	defer address.Zero(privateKey)

	key, err := crypto.ToECDSA(privateKey)
	if err != nil {
		return nil, errors.Wrap(err, "failed to convert private key to ECDSA")
	}

	return New(key, client, opts...)
}
