package nft

import (
	"context"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github/chapool/magic-wallet/internal/app"
	"github/chapool/magic-wallet/internal/config"
	"github/chapool/magic-wallet/internal/data/dto"
	"github/chapool/magic-wallet/internal/transfer"
	"github/chapool/magic-wallet/internal/util/command"
)

const (
	operatorFlag = "operator"
	accountFlag  = "account"
	revokeFlag   = "revoke"
)

var ErrCallFailed = errors.New("contract call failed")

func New() *cobra.Command {
	return command.NewSubcommandGroup("nft",
		newMint(),
		newApprove(),
		newApproved(),
	)
}

// run bootstraps the app, requires a configured contract and hands both to fn.
func run(cmd *cobra.Command, fn func(ctx context.Context, a *app.App) error) error {
	cfg := config.DefaultServiceConfigFromEnv()

	ctx, cancel := command.ContextFromFlags(cmd, cfg.Transfer.Timeout)
	defer cancel()

	a, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	if _, err := a.RequireNFT(); err != nil {
		return err
	}

	return fn(ctx, a)
}

func printOutcome(cmd *cobra.Command, outcome transfer.Outcome) error {
	if err := command.PrintJSON(cmd, dto.NewOutcome(outcome)); err != nil {
		return err
	}

	if !outcome.Success {
		return ErrCallFailed
	}

	return nil
}
