package wallet

import (
	"context"

	"github.com/pkg/errors"
	"github/chapool/magic-wallet/internal/config"
	"github/chapool/magic-wallet/internal/util"
	"github/chapool/magic-wallet/internal/wallet/provider"
)

var ErrUnexpectedChain = errors.New("connected to unexpected chain")

// Connect dials the configured RPC endpoints and, when an expected chain id is configured,
// refuses to continue on any other network.
func Connect(ctx context.Context, cfg config.Chain) (*provider.RPCClient, error) {
	client, err := provider.NewRPCClient(ctx, cfg.RPCURLs)
	if err != nil {
		return nil, err
	}

	if err := checkNetwork(ctx, client, cfg.ExpectedChainID); err != nil {
		client.Close()
		return nil, err
	}

	return client, nil
}

func checkNetwork(ctx context.Context, p provider.Provider, expectedChainID int64) error {
	network, err := p.Network(ctx)
	if err != nil {
		return err
	}

	util.LogFromContext(ctx).Info().
		Str("network", network.Name).
		Str("chain_id", network.ChainID.String()).
		Msg("Connected to network")

	if expectedChainID != 0 && (!network.ChainID.IsInt64() || network.ChainID.Int64() != expectedChainID) {
		return errors.Wrapf(ErrUnexpectedChain, "expected chain id %d, got %s", expectedChainID, network.ChainID)
	}

	return nil
}
