package app

import (
	"context"

	"github.com/dropbox/godropbox/time2"
	"github.com/pkg/errors"
	"github/chapool/magic-wallet/internal/api"
	"github/chapool/magic-wallet/internal/config"
	"github/chapool/magic-wallet/internal/metrics"
	"github/chapool/magic-wallet/internal/nft"
	"github/chapool/magic-wallet/internal/transfer"
	"github/chapool/magic-wallet/internal/wallet"
	"github/chapool/magic-wallet/internal/wallet/provider"
	"github/chapool/magic-wallet/internal/wallet/signer"
)

// App is the set of components every CLI command works with. It shares its providers with
// the server injectors in package api.
type App struct {
	Config       config.Server
	Client       *provider.RPCClient
	Signer       signer.Signer
	Metrics      *metrics.Registry
	Orchestrator *transfer.Orchestrator
	// NFT is nil when no contract address is configured.
	NFT *nft.Contract
}

type options struct {
	readPassword   wallet.PasswordFunc
	allowAnonymous bool
}

type Option func(*options)

// WithPasswordPrompt sets how a keystore password is read when it is not configured.
func WithPasswordPrompt(fn wallet.PasswordFunc) Option {
	return func(o *options) {
		o.readPassword = fn
	}
}

// AllowAnonymous keeps going without a signing identity; every submission then fails as
// Unauthenticated.
func AllowAnonymous() Option {
	return func(o *options) {
		o.allowAnonymous = true
	}
}

// New connects to the chain, unlocks the signer and builds the orchestrator.
func New(ctx context.Context, cfg config.Server, opts ...Option) (*App, error) {
	o := &options{readPassword: wallet.PromptPassword}
	for _, opt := range opts {
		opt(o)
	}

	client, err := wallet.Connect(ctx, cfg.Chain)
	if err != nil {
		return nil, err
	}

	return newWithClient(ctx, cfg, client, o)
}

func newWithClient(ctx context.Context, cfg config.Server, client *provider.RPCClient, o *options) (*App, error) {
	if o.allowAnonymous {
		cfg.Wallet.AllowAnonymous = true
	}

	s, err := api.OpenSigner(ctx, cfg, client, o.readPassword)
	if err != nil {
		client.Close()
		return nil, err
	}

	registry := metrics.New()
	orchestrator := api.NewTransferService(cfg, s, time2.DefaultClock, registry)

	contract, err := api.NewNFTContract(cfg, orchestrator)
	if err != nil {
		client.Close()
		return nil, err
	}

	return &App{
		Config:       cfg,
		Client:       client,
		Signer:       s,
		Metrics:      registry,
		Orchestrator: orchestrator,
		NFT:          contract,
	}, nil
}

// RequireNFT returns the NFT capability or an error naming the missing setting.
func (a *App) RequireNFT() (*nft.Contract, error) {
	if a.NFT == nil {
		return nil, errors.New("no NFT contract configured: set NFT_CONTRACT_ADDRESS")
	}

	return a.NFT, nil
}

func (a *App) Close() {
	a.Client.Close()
}
