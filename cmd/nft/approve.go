package nft

import (
	"context"

	"github.com/spf13/cobra"
	"github/chapool/magic-wallet/internal/app"
)

func newApprove() *cobra.Command {
	var (
		operator string
		revoke   bool
	)

	cmd := &cobra.Command{
		Use:   "approve",
		Short: "Grants (or with --revoke removes) operator approval for all tokens",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, func(ctx context.Context, a *app.App) error {
				return printOutcome(cmd, a.NFT.SetApprovalForAll(ctx, operator, !revoke))
			})
		},
	}

	cmd.Flags().StringVar(&operator, operatorFlag, "", "Operator address (0x...)")
	cmd.Flags().BoolVar(&revoke, revokeFlag, false, "Revoke instead of grant")
	_ = cmd.MarkFlagRequired(operatorFlag)

	return cmd
}
