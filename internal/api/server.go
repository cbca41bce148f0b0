package api

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"net/http"

	"github.com/dropbox/godropbox/time2"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github/chapool/magic-wallet/internal/config"
	"github/chapool/magic-wallet/internal/metrics"
	"github/chapool/magic-wallet/internal/transfer"
	"github/chapool/magic-wallet/internal/wallet/signer"
)

// TransferService is what the API needs from the transfer orchestrator.
type TransferService interface {
	Signer() signer.Signer
	Transfer(ctx context.Context, req transfer.Request) transfer.Outcome
	BatchTransfer(ctx context.Context, reqs []transfer.Request) []transfer.Outcome
	EstimateTotalCost(ctx context.Context, to string, amount string) (*transfer.CostEstimate, error)
	CurrentBalance(ctx context.Context) (string, error)
}

// NFTService is what the API needs from the NFT contract capability.
type NFTService interface {
	Mint(ctx context.Context) transfer.Outcome
	SetApprovalForAll(ctx context.Context, operator string, approved bool) transfer.Outcome
	IsApprovedForAll(ctx context.Context, account string, operator string) (bool, error)
	MintPrice() *big.Int
}

var _ TransferService = (*transfer.Orchestrator)(nil)

// ChainChecker reports whether the RPC connection is alive.
type ChainChecker interface {
	BlockNumber(ctx context.Context) (uint64, error)
}

type Router struct {
	Routes         []*echo.Route
	Root           *echo.Group
	Management     *echo.Group
	APIV1Transfers *echo.Group
	APIV1Wallet    *echo.Group
	APIV1NFT       *echo.Group
}

// Server is a central struct keeping all the dependencies.
// It is initialized with wire, which handles making the new instances of the components
// in the right order. To add a new component, 3 steps are required:
// - declaring it in this struct
// - adding a provider function in providers.go
// - adding the provider's function name to the arguments of wire.Build() in wire.go
//
// Echo and Router are labeled `wire:"-"` and set by router.Init. NFT stays nil when no
// contract is configured.
type Server struct {
	Echo   *echo.Echo `wire:"-"`
	Router *Router    `wire:"-"`

	Config    config.Server
	Clock     time2.Clock
	Metrics   *metrics.Registry
	Chain     ChainChecker
	Transfers TransferService
	NFT       NFTService
}

// newServerWithComponents is used by wire to initialize the server components.
func newServerWithComponents(
	cfg config.Server,
	clock time2.Clock,
	registry *metrics.Registry,
	chain ChainChecker,
	transfers TransferService,
	nftService NFTService,
) *Server {
	return &Server{
		Config:    cfg,
		Clock:     clock,
		Metrics:   registry,
		Chain:     chain,
		Transfers: transfers,
		NFT:       nftService,
	}
}

func NewServer(config config.Server) *Server {
	s := &Server{
		Config: config,
		Clock:  time2.DefaultClock,
	}

	return s
}

func (s *Server) Ready() bool {
	switch {
	case s.Echo == nil, s.Router == nil:
		log.Debug().Msg("Server is not fully initialized: router missing")
		return false
	case s.Transfers == nil:
		log.Debug().Msg("Server is not fully initialized: transfer service missing")
		return false
	case s.Chain == nil:
		log.Debug().Msg("Server is not fully initialized: chain client missing")
		return false
	}

	return true
}

func (s *Server) Start() error {
	if !s.Ready() {
		return errors.New("server is not ready")
	}

	if err := s.Echo.Start(s.Config.Echo.ListenAddress); err != nil {
		return fmt.Errorf("failed to start echo server: %w", err)
	}

	return nil
}

func (s *Server) Shutdown(ctx context.Context) []error {
	log.Warn().Msg("Shutting down server")

	var errs []error

	if s.Echo != nil {
		log.Debug().Msg("Shutting down echo server")

		if err := s.Echo.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("Failed to shutdown echo server")
			errs = append(errs, err)
		}
	}

	if closer, ok := s.Chain.(interface{ Close() }); ok {
		log.Debug().Msg("Closing RPC connections")
		closer.Close()
	}

	return errs
}
