package nft

import (
	"context"

	"github.com/spf13/cobra"
	"github/chapool/magic-wallet/internal/app"
)

func newMint() *cobra.Command {
	return &cobra.Command{
		Use:   "mint",
		Short: "Mints one token to the signing account, paying NFT_MINT_PRICE",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, func(ctx context.Context, a *app.App) error {
				return printOutcome(cmd, a.NFT.Mint(ctx))
			})
		},
	}
}
