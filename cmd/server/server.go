package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github/chapool/magic-wallet/internal/api"
	"github/chapool/magic-wallet/internal/api/router"
	"github/chapool/magic-wallet/internal/config"
)

const (
	shutdownTimeout = 30 * time.Second
	anonymousFlag   = "allow-anonymous"
)

func New() *cobra.Command {
	var allowAnonymous bool

	cmd := &cobra.Command{
		Use:   "server",
		Short: "Starts the HTTP API",
		Long: `Starts the HTTP API

Requires configuration through ENV and a reachable RPC endpoint.`,
		Args: cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			runServer(allowAnonymous)
		},
	}

	cmd.Flags().BoolVar(&allowAnonymous, anonymousFlag, false,
		"Start without a signing identity; submissions answer 401 (same as WALLET_ALLOW_ANONYMOUS)")

	return cmd
}

func runServer(allowAnonymous bool) {
	cfg := config.DefaultServiceConfigFromEnv()

	if cfg.Echo.Debug {
		log.Warn().Msg("Echo debug mode is enabled")
	}

	if allowAnonymous {
		cfg.Wallet.AllowAnonymous = true
	}

	s, err := api.InitNewServer(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize server")
	}

	router.Init(s)

	go func() {
		if err := s.Start(); err != nil {
			if errors.Is(err, http.ErrServerClosed) {
				log.Info().Msg("Server closed")
			} else {
				log.Fatal().Err(err).Msg("Failed to start server")
			}
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if errs := s.Shutdown(ctx); len(errs) > 0 {
		log.Fatal().Errs("shutdownErrors", errs).Msg("Failed to gracefully shut down server")
	}
}
