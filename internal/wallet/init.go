package wallet

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/tyler-smith/go-bip39"
	"github/chapool/magic-wallet/internal/config"
	"github/chapool/magic-wallet/internal/util"
	"github/chapool/magic-wallet/internal/wallet/address"
	"github/chapool/magic-wallet/internal/wallet/keystore"
	"github/chapool/magic-wallet/internal/wallet/provider"
	"github/chapool/magic-wallet/internal/wallet/seed"
	"github/chapool/magic-wallet/internal/wallet/signer"
	"golang.org/x/term"
)

const (
	MinPasswordLength = 8

	// mnemonicEntropyBits yields a 24 word mnemonic
	mnemonicEntropyBits = 256
)

var (
	ErrNoSigningIdentity = errors.New("no signing identity configured: set WALLET_PRIVATE_KEY or WALLET_KEYSTORE_PATH")
	ErrPasswordTooShort  = errors.Errorf("password must be at least %d characters", MinPasswordLength)
)

// PasswordFunc supplies the keystore password when it is not configured.
type PasswordFunc func(prompt string) (string, error)

// OpenSigner builds the signing identity described by cfg. A raw private key takes
// precedence over a keystore. The keystore is unlocked with cfg.KeystorePassword, or with
// readPassword when that is empty.
//
//nolint:ireturn
func OpenSigner(
	ctx context.Context,
	cfg config.Wallet,
	client provider.Client,
	readPassword PasswordFunc,
	opts ...signer.Option,
) (signer.Signer, error) {
	log := util.LogFromContext(ctx).With().Str("component", "wallet_init").Logger()

	if cfg.PrivateKey != "" {
		s, err := signer.FromHex(cfg.PrivateKey, client, opts...)
		if err != nil {
			return nil, err
		}
		log.Info().Str("address", s.Address().Hex()).Msg("Signer loaded from private key")
		return s, nil
	}

	if cfg.KeystorePath == "" {
		return nil, ErrNoSigningIdentity
	}

	seedManager, addressService, err := unlockKeystore(ctx, cfg, readPassword)
	if err != nil {
		return nil, err
	}
	defer seedManager.Clear()

	s, err := signer.FromSeed(ctx, seedManager, addressService, cfg.DerivationPath, client, opts...)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("address", s.Address().Hex()).
		Str("path", cfg.DerivationPath).
		Msg("Signer unlocked from keystore")

	return s, nil
}

// unlockKeystore decrypts the keystore at cfg.KeystorePath and checks the password
// against the stored verification address. Callers must Clear the returned seed.
//
//nolint:ireturn
func unlockKeystore(ctx context.Context, cfg config.Wallet, readPassword PasswordFunc) (seed.Manager, address.Service, error) {
	log := util.LogFromContext(ctx).With().Str("component", "wallet_init").Logger()

	keystoreService, err := keystore.NewService(cfg.KeystorePath, nil)
	if err != nil {
		return nil, nil, err
	}

	ks, err := keystoreService.GetKeystore(ctx)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to get keystore")
	}

	password := cfg.KeystorePassword
	if password == "" {
		if readPassword == nil {
			return nil, nil, errors.New("keystore password is not configured")
		}
		log.Info().Str("path", cfg.KeystorePath).Msg("Keystore found. Please enter password to unlock...")
		password, err = readPassword("Enter keystore password: ")
		if err != nil {
			return nil, nil, errors.Wrap(err, "failed to read password")
		}
	}

	mnemonic, err := keystoreService.DecryptMnemonic(ctx, ks, password)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to decrypt keystore (invalid password?)")
	}

	seedManager := seed.NewManager()
	if err := seedManager.Initialize(mnemonic, ""); err != nil {
		return nil, nil, errors.Wrap(err, "failed to initialize seed manager")
	}

	addressService := address.NewService()
	if err := VerifyAddress(ctx, seedManager, addressService, ks); err != nil {
		seedManager.Clear()
		return nil, nil, err
	}

	return seedManager, addressService, nil
}

// KeystoreAddress unlocks the configured keystore and returns the account address at
// cfg.DerivationPath. Nothing is signed and no network is needed.
func KeystoreAddress(ctx context.Context, cfg config.Wallet, readPassword PasswordFunc) (string, error) {
	if cfg.KeystorePath == "" {
		return "", ErrNoSigningIdentity
	}

	seedManager, addressService, err := unlockKeystore(ctx, cfg, readPassword)
	if err != nil {
		return "", err
	}
	defer seedManager.Clear()

	return deriveAddress(ctx, seedManager, addressService, cfg.DerivationPath)
}

// NewMnemonic generates a fresh 24 word BIP-39 mnemonic.
func NewMnemonic() (string, error) {
	entropy, err := bip39.NewEntropy(mnemonicEntropyBits)
	if err != nil {
		return "", errors.Wrap(err, "failed to generate entropy")
	}

	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", errors.Wrap(err, "failed to generate mnemonic")
	}

	return mnemonic, nil
}

// CreateKeystore encrypts mnemonic under password and records the verification address
// used to detect a wrong password on unlock.
func CreateKeystore(ctx context.Context, keystoreService keystore.Service, mnemonic, password string) (*keystore.KeystoreJSON, error) {
	log := util.LogFromContext(ctx).With().Str("component", "wallet_init").Logger()

	if len(password) < MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	mnemonic = strings.Join(strings.Fields(mnemonic), " ")

	seedManager := seed.NewManager()
	defer seedManager.Clear()

	if err := seedManager.Initialize(mnemonic, ""); err != nil {
		return nil, err
	}

	addressService := address.NewService()
	path := addressService.GetBIP44Path(VerificationAddressIndex)
	verificationAddress, err := deriveAddress(ctx, seedManager, addressService, path)
	if err != nil {
		return nil, err
	}

	ks, err := keystoreService.CreateKeystore(ctx, mnemonic, password, verificationAddress, path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create keystore")
	}

	log.Info().
		Str("address", verificationAddress).
		Int("index", VerificationAddressIndex).
		Msg("Keystore created successfully")

	return ks, nil
}

// PromptPassword reads a password from the terminal without echoing it.
//
//nolint:forbidigo // Password input requires direct terminal I/O
func PromptPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)

	passwordBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return "", errors.Wrap(err, "failed to read password from terminal")
	}

	fmt.Fprintln(os.Stderr)

	return string(passwordBytes), nil
}

// PromptNewPassword asks for a password twice and enforces the minimum length.
func PromptNewPassword(readPassword PasswordFunc) (string, error) {
	password, err := readPassword(fmt.Sprintf("Enter password for keystore (min %d characters): ", MinPasswordLength))
	if err != nil {
		return "", errors.Wrap(err, "failed to read password")
	}

	if len(password) < MinPasswordLength {
		return "", ErrPasswordTooShort
	}

	passwordConfirm, err := readPassword("Confirm password: ")
	if err != nil {
		return "", errors.Wrap(err, "failed to read password confirmation")
	}

	if password != passwordConfirm {
		return "", errors.New("passwords do not match")
	}

	return password, nil
}
