package probe

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github/chapool/magic-wallet/internal/config"
	"github/chapool/magic-wallet/internal/wallet"
)

const readinessTimeout = 10 * time.Second

func newReadiness() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "readiness",
		Short: "Checks that an RPC endpoint answers on the expected chain",
		Long: `Checks that one of CHAIN_RPC_URLS answers and, when CHAIN_EXPECTED_CHAIN_ID
is set, serves that chain. Exits non-zero when a check fails.`,
		Run: func(cmd *cobra.Command, _ []string) {
			verbose, _ := cmd.Flags().GetBool(verboseFlag)
			readinessCmdFunc(verbose)
		},
	}

	cmd.Flags().BoolP(verboseFlag, "v", false, "Show verbose output.")

	return cmd
}

func readinessCmdFunc(verbose bool) {
	cfg := config.DefaultServiceConfigFromEnv()

	ctx, cancel := context.WithTimeout(context.Background(), readinessTimeout)
	defer cancel()

	client, err := wallet.Connect(ctx, cfg.Chain)
	if err != nil {
		log.Fatal().Err(err).Msg("Readiness probe failed")
	}
	defer client.Close()

	block, err := client.BlockNumber(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Readiness probe failed")
	}

	if verbose {
		fmt.Fprintf(os.Stdout, "Readiness probe succeeded at block %d\n", block)
	}
}
