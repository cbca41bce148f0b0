package balance

import (
	"github.com/spf13/cobra"
	"github/chapool/magic-wallet/internal/app"
	"github/chapool/magic-wallet/internal/config"
	"github/chapool/magic-wallet/internal/data/dto"
	"github/chapool/magic-wallet/internal/util/command"
)

func New() *cobra.Command {
	return &cobra.Command{
		Use:   "balance",
		Short: "Prints the native balance of the signing account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.DefaultServiceConfigFromEnv()

			ctx, cancel := command.ContextFromFlags(cmd, cfg.Transfer.Timeout)
			defer cancel()

			a, err := app.New(ctx, cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			balance, err := a.Orchestrator.CurrentBalance(ctx)
			if err != nil {
				return err
			}

			return command.PrintJSON(cmd, dto.BalanceResponse{
				Address: a.Signer.Address().Hex(),
				Balance: balance,
			})
		},
	}
}
