package wallet

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github/chapool/magic-wallet/internal/util"
	"github/chapool/magic-wallet/internal/wallet/address"
	"github/chapool/magic-wallet/internal/wallet/keystore"
	"github/chapool/magic-wallet/internal/wallet/seed"
)

// VerificationAddressIndex is the address index used for password verification
const VerificationAddressIndex = 0

var ErrPasswordVerification = errors.New("password verification failed: derived address does not match stored verification address")

// VerifyAddress derives the verification address from the unlocked seed and compares it
// with the one stored in the keystore. Keystores without a stored address pass.
func VerifyAddress(ctx context.Context, seedManager seed.Manager, addressService address.Service, ks *keystore.KeystoreJSON) error {
	log := util.LogFromContext(ctx).With().Str("component", "password_verification").Logger()

	if ks.Address == "" {
		log.Info().Msg("No verification address stored in keystore, skipping verification")
		return nil
	}

	path := ks.VerificationPath
	if path == "" {
		path = addressService.GetBIP44Path(VerificationAddressIndex)
	}

	derivedAddress, err := deriveAddress(ctx, seedManager, addressService, path)
	if err != nil {
		return err
	}

	if !strings.EqualFold(derivedAddress, ks.Address) {
		log.Warn().
			Str("derived", derivedAddress).
			Str("stored", ks.Address).
			Msg("Password verification failed: addresses do not match")
		return ErrPasswordVerification
	}

	log.Debug().Msg("Password verification successful")

	return nil
}

func deriveAddress(ctx context.Context, seedManager seed.Manager, addressService address.Service, path string) (string, error) {
	seedBytes := seedManager.GetSeed()
	if seedBytes == nil {
		return "", errors.New("seed not initialized")
	}
	defer address.Zero(seedBytes)

	derived, err := addressService.DeriveAddress(ctx, seedBytes, path, address.ChainTypeEVM)
	if err != nil {
		return "", errors.Wrap(err, "failed to derive verification address")
	}

	return derived, nil
}
