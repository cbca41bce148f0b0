package nft

import (
	"context"

	"github.com/spf13/cobra"
	"github/chapool/magic-wallet/internal/app"
	"github/chapool/magic-wallet/internal/data/dto"
	"github/chapool/magic-wallet/internal/util/command"
)

func newApproved() *cobra.Command {
	q := dto.ApprovalQuery{}

	cmd := &cobra.Command{
		Use:   "approved",
		Short: "Checks whether operator may manage all tokens of account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, func(ctx context.Context, a *app.App) error {
				approved, err := a.NFT.IsApprovedForAll(ctx, q.Account, q.Operator)
				if err != nil {
					return err
				}

				account := q.Account
				if account == "" && a.Signer != nil {
					account = a.Signer.Address().Hex()
				}

				return command.PrintJSON(cmd, dto.ApprovalResponse{
					Account:  account,
					Operator: q.Operator,
					Approved: approved,
				})
			})
		},
	}

	cmd.Flags().StringVar(&q.Operator, operatorFlag, "", "Operator address (0x...)")
	cmd.Flags().StringVar(&q.Account, accountFlag, "", "Token owner (default: signing account)")
	_ = cmd.MarkFlagRequired(operatorFlag)

	return cmd
}
