package transfer

import (
	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/swag"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github/chapool/magic-wallet/internal/app"
	"github/chapool/magic-wallet/internal/config"
	"github/chapool/magic-wallet/internal/data/dto"
	"github/chapool/magic-wallet/internal/util/command"
)

func newSend() *cobra.Command {
	var to, amount string
	req := &dto.TransferRequest{}

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Sends native currency to one recipient and waits for confirmation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req.To = swag.String(to)
			req.Amount = swag.String(amount)
			if err := req.Validate(strfmt.Default); err != nil {
				return errors.Wrap(err, "invalid transfer flags")
			}

			cfg := config.DefaultServiceConfigFromEnv()

			ctx, cancel := command.ContextFromFlags(cmd, cfg.Transfer.Timeout)
			defer cancel()

			a, err := app.New(ctx, cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			outcome := a.Orchestrator.Transfer(ctx, req.ToRequest())
			if err := command.PrintJSON(cmd, dto.NewOutcome(outcome)); err != nil {
				return err
			}

			if !outcome.Success {
				return ErrTransferFailed
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&to, toFlag, "", "Recipient address (0x...)")
	cmd.Flags().StringVar(&amount, amountFlag, "", "Amount in ether, e.g. 0.01")
	cmd.Flags().Uint64Var(&req.GasLimit, gasLimitFlag, 0, "Gas limit (0 estimates)")
	cmd.Flags().StringVar(&req.GasPriceGwei, gasPriceGweiFlag, "", "Gas price in gwei (empty uses network fee data)")
	cmd.Flags().StringVar(&req.Memo, memoFlag, "", "Note written to the log only")
	_ = cmd.MarkFlagRequired(toFlag)
	_ = cmd.MarkFlagRequired(amountFlag)

	return cmd
}
