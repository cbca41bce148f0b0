package transfer

import (
	"github.com/spf13/cobra"
	"github/chapool/magic-wallet/internal/app"
	"github/chapool/magic-wallet/internal/config"
	"github/chapool/magic-wallet/internal/data/dto"
	"github/chapool/magic-wallet/internal/util/command"
)

func newEstimate() *cobra.Command {
	var to, amount string

	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimates gas fee and total cost of a transfer without sending it",
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

			estimate, err := a.Orchestrator.EstimateTotalCost(ctx, to, amount)
			if err != nil {
				return err
			}

			return command.PrintJSON(cmd, dto.NewCostEstimate(estimate))
		},
	}

	cmd.Flags().StringVar(&to, toFlag, "", "Recipient address (0x...)")
	cmd.Flags().StringVar(&amount, amountFlag, "", "Amount in ether, e.g. 0.01")
	_ = cmd.MarkFlagRequired(toFlag)
	_ = cmd.MarkFlagRequired(amountFlag)

	return cmd
}
