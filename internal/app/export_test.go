package app

import (
	"context"

	"github/chapool/magic-wallet/internal/config"
	"github/chapool/magic-wallet/internal/wallet/provider"
)

func NewWithClient(ctx context.Context, cfg config.Server, client *provider.RPCClient, opts ...Option) (*App, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	return newWithClient(ctx, cfg, client, o)
}
