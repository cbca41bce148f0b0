//go:build wireinject

package api

import (
	"testing"

	"github.com/google/wire"
	"github/chapool/magic-wallet/internal/config"
	"github/chapool/magic-wallet/internal/metrics"
	"github/chapool/magic-wallet/internal/transfer"
	"github/chapool/magic-wallet/internal/wallet/provider"
)

// INJECTORS - https://github.com/google/wire/blob/main/docs/guide.md#injectors

// serviceSet groups the default set of providers that are required for initing a server
var serviceSet = wire.NewSet(
	newServerWithComponents,
	NewSigner,
	transferServiceSet,
	NewNFTContract,
	NewNFTService,
	metrics.New,
	NewClock,
	wire.Bind(new(ChainChecker), new(*provider.RPCClient)),
)

var transferServiceSet = wire.NewSet(
	NewTransferService,
	wire.Bind(new(TransferService), new(*transfer.Orchestrator)),
	wire.Bind(new(transfer.Recorder), new(*metrics.Registry)),
)

// InitNewServer returns a new Server instance.
func InitNewServer(
	_ config.Server,
) (*Server, error) {
	wire.Build(serviceSet, NewChainClient, NoTest)
	return new(Server), nil
}

// InitNewServerWithClient returns a new Server instance bound to the given chain client.
// All the other components are initialized via go wire according to the configuration.
func InitNewServerWithClient(
	_ config.Server,
	_ *provider.RPCClient,
	t ...*testing.T,
) (*Server, error) {
	wire.Build(serviceSet)
	return new(Server), nil
}
