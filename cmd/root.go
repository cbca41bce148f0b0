package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github/chapool/magic-wallet/cmd/balance"
	"github/chapool/magic-wallet/cmd/keystore"
	"github/chapool/magic-wallet/cmd/nft"
	"github/chapool/magic-wallet/cmd/probe"
	"github/chapool/magic-wallet/cmd/server"
	"github/chapool/magic-wallet/cmd/transfer"
	"github/chapool/magic-wallet/internal/config"
	"github/chapool/magic-wallet/internal/util"
	"github/chapool/magic-wallet/internal/util/command"
)

// rootCmd represents the base command when called without any subcommands
//
//nolint:gochecknoglobals
var rootCmd = &cobra.Command{
	Version: config.GetFormattedBuildArgs(),
	Use:     "app",
	Short:   config.ModuleName,
	Long: fmt.Sprintf(`%v

Sends native currency and NFT contract calls from one signing identity
on an EVM network. Requires configuration through ENV (or a .env file).`, config.ModuleName),
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		cfg := config.DefaultServiceConfigFromEnv()
		util.SetupLogger(cfg.Logger.Level, cfg.Logger.PrettyPrintConsole)
	},
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
	rootCmd.PersistentFlags().Duration(command.TimeoutFlag, 0,
		"Abort the command after this duration (default TRANSFER_TIMEOUT, 0 waits indefinitely)")

	// attach the subcommands
	rootCmd.AddCommand(
		balance.New(),
		keystore.New(),
		nft.New(),
		probe.New(),
		server.New(),
		transfer.New(),
	)

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("Failed to execute root command")
		os.Exit(1)
	}
}
