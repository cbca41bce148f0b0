package keystore

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/tyler-smith/go-bip39"
	"github/chapool/magic-wallet/internal/config"
	"github/chapool/magic-wallet/internal/data/dto"
	"github/chapool/magic-wallet/internal/util/command"
	"github/chapool/magic-wallet/internal/wallet"
	walletkeystore "github/chapool/magic-wallet/internal/wallet/keystore"
)

const pathFlag = "path"

var ErrInvalidMnemonic = errors.New("invalid BIP-39 mnemonic")

func New() *cobra.Command {
	return command.NewSubcommandGroup("keystore",
		newCreate(),
		newImport(),
		newAddress(),
	)
}

func newCreate() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Generates a new mnemonic and stores it encrypted in a keystore file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			mnemonic, err := wallet.NewMnemonic()
			if err != nil {
				return err
			}

			ks, err := create(cmd.Context(), path, mnemonic, wallet.PromptPassword)
			if err != nil {
				return err
			}

			errOut := cmd.ErrOrStderr()
			fmt.Fprintln(errOut, "Write down this mnemonic and keep it offline. It is not shown again:")
			fmt.Fprintln(errOut)
			fmt.Fprintln(errOut, "  "+mnemonic)
			fmt.Fprintln(errOut)

			return command.PrintJSON(cmd, dto.AddressResponse{Address: ks.Address})
		},
	}

	cmd.Flags().StringVar(&path, pathFlag, "", "Keystore file (default WALLET_KEYSTORE_PATH)")

	return cmd
}

func newImport() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Stores an existing mnemonic encrypted in a keystore file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			mnemonic, err := wallet.PromptPassword("Enter mnemonic: ")
			if err != nil {
				return err
			}

			ks, err := create(cmd.Context(), path, mnemonic, wallet.PromptPassword)
			if err != nil {
				return err
			}

			return command.PrintJSON(cmd, dto.AddressResponse{Address: ks.Address})
		},
	}

	cmd.Flags().StringVar(&path, pathFlag, "", "Keystore file (default WALLET_KEYSTORE_PATH)")

	return cmd
}

func newAddress() *cobra.Command {
	return &cobra.Command{
		Use:   "address",
		Short: "Unlocks the keystore and prints the account at WALLET_DERIVATION_PATH",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.DefaultServiceConfigFromEnv()

			addr, err := wallet.KeystoreAddress(cmd.Context(), cfg.Wallet, wallet.PromptPassword)
			if err != nil {
				return err
			}

			return command.PrintJSON(cmd, dto.AddressResponse{Address: addr})
		},
	}
}

// create validates mnemonic and writes it to path (or the configured keystore path),
// asking for a new password unless WALLET_KEYSTORE_PASSWORD is set.
func create(ctx context.Context, path string, mnemonic string, readPassword wallet.PasswordFunc) (*walletkeystore.KeystoreJSON, error) {
	cfg := config.DefaultServiceConfigFromEnv()
	if path == "" {
		path = cfg.Wallet.KeystorePath
	}
	if path == "" {
		return nil, errors.New("no keystore path: pass --path or set WALLET_KEYSTORE_PATH")
	}

	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, ErrInvalidMnemonic
	}

	password := cfg.Wallet.KeystorePassword
	if password == "" {
		var err error
		password, err = wallet.PromptNewPassword(readPassword)
		if err != nil {
			return nil, err
		}
	}

	keystoreService, err := walletkeystore.NewService(path, nil)
	if err != nil {
		return nil, err
	}

	return wallet.CreateKeystore(ctx, keystoreService, mnemonic, password)
}
