package probe

import (
	"context"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github/chapool/magic-wallet/internal/config"
	"github/chapool/magic-wallet/internal/wallet/keystore"
)

func newLiveness() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "liveness",
		Short: "Checks the local prerequisites of the service",
		Long: `Checks the local prerequisites of the service: the signing identity is
configured and a configured keystore file is readable.
Exits non-zero when a check fails.`,
		Run: func(cmd *cobra.Command, _ []string) {
			verbose, _ := cmd.Flags().GetBool(verboseFlag)
			livenessCmdFunc(verbose)
		},
	}

	cmd.Flags().BoolP(verboseFlag, "v", false, "Show verbose output.")

	return cmd
}

func livenessCmdFunc(verbose bool) {
	cfg := config.DefaultServiceConfigFromEnv()

	if err := checkIdentity(context.Background(), cfg.Wallet); err != nil {
		log.Fatal().Err(err).Msg("Liveness probe failed")
	}

	if verbose {
		fmt.Fprintln(os.Stdout, "Liveness probe succeeded")
	}
}

func checkIdentity(ctx context.Context, cfg config.Wallet) error {
	if cfg.PrivateKey != "" {
		return nil
	}
	if cfg.KeystorePath == "" {
		return errors.New("neither WALLET_PRIVATE_KEY nor WALLET_KEYSTORE_PATH is set")
	}

	keystoreService, err := keystore.NewService(cfg.KeystorePath, nil)
	if err != nil {
		return err
	}

	_, err = keystoreService.GetKeystore(ctx)
	return err
}
