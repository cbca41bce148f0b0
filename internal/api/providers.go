package api

import (
	"context"
	"testing"
	"time"

	"github.com/dropbox/godropbox/time2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github/chapool/magic-wallet/internal/config"
	"github/chapool/magic-wallet/internal/nft"
	"github/chapool/magic-wallet/internal/transfer"
	"github/chapool/magic-wallet/internal/units"
	"github/chapool/magic-wallet/internal/wallet"
	"github/chapool/magic-wallet/internal/wallet/provider"
	"github/chapool/magic-wallet/internal/wallet/signer"
)

// PROVIDERS - https://github.com/google/wire/blob/main/docs/guide.md#defining-providers

// MockClockTime is what NewClock reports when running under test.
//
//nolint:gochecknoglobals
var MockClockTime = time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

// NoTest is used by InitNewServer to signal that no test instance is present.
func NoTest() []*testing.T {
	return nil
}

// NewClock returns the wall clock, or a mock clock fixed at MockClockTime when a test is given.
//
//nolint:ireturn
func NewClock(t ...*testing.T) time2.Clock {
	if len(t) > 0 && t[0] != nil {
		return time2.NewMockClock(MockClockTime)
	}

	return time2.DefaultClock
}

// NewChainClient dials the configured RPC endpoints.
func NewChainClient(cfg config.Server) (*provider.RPCClient, error) {
	return wallet.Connect(context.Background(), cfg.Chain)
}

// NewSigner opens the configured signing identity. With AllowAnonymous a missing identity
// yields a nil signer and every submission fails as Unauthenticated.
//
//nolint:ireturn
func NewSigner(cfg config.Server, client *provider.RPCClient) (signer.Signer, error) {
	return OpenSigner(context.Background(), cfg, client, wallet.PromptPassword)
}

// OpenSigner is NewSigner with an explicit password prompt.
//
//nolint:ireturn
func OpenSigner(ctx context.Context, cfg config.Server, client *provider.RPCClient, readPassword wallet.PasswordFunc) (signer.Signer, error) {
	s, err := wallet.OpenSigner(ctx, cfg.Wallet, client, readPassword,
		signer.WithPollInterval(cfg.Chain.ReceiptPollInterval))
	if err != nil {
		if cfg.Wallet.AllowAnonymous && errors.Is(err, wallet.ErrNoSigningIdentity) {
			log.Warn().Msg("No signing identity configured, transfers will be rejected")
			return nil, nil
		}
		return nil, err
	}

	return s, nil
}

// NewTransferService builds the orchestrator for s. s may be nil.
func NewTransferService(cfg config.Server, s signer.Signer, clock time2.Clock, recorder transfer.Recorder) *transfer.Orchestrator {
	return transfer.New(s,
		transfer.WithClock(clock),
		transfer.WithBatchPause(cfg.Transfer.BatchPause),
		transfer.WithRecorder(recorder),
	)
}

// NewNFTContract binds the configured NFT contract, or returns nil when none is configured.
func NewNFTContract(cfg config.Server, orchestrator *transfer.Orchestrator) (*nft.Contract, error) {
	if cfg.NFT.ContractAddress == "" {
		return nil, nil
	}

	mintPrice, err := units.ParseEther(cfg.NFT.MintPrice)
	if err != nil {
		return nil, errors.Wrap(err, "invalid NFT mint price")
	}

	return nft.New(cfg.NFT.ContractAddress, orchestrator, mintPrice)
}

// NewNFTService exposes contract to the API. A nil contract leaves the NFT routes answering 404.
//
//nolint:ireturn
func NewNFTService(contract *nft.Contract) NFTService {
	if contract == nil {
		return nil
	}

	return contract
}
