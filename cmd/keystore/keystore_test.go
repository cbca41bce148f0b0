package keystore_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/magic-wallet/cmd/keystore"
	"github/chapool/magic-wallet/internal/config"
	"github/chapool/magic-wallet/internal/wallet"
)

//nolint:dupword
const testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func passwords(values ...string) wallet.PasswordFunc {
	return func(string) (string, error) {
		v := values[0]
		values = values[1:]
		return v, nil
	}
}

func TestCreateWithPrompt(t *testing.T) {
	t.Setenv("WALLET_KEYSTORE_PASSWORD", "")
	path := filepath.Join(t.TempDir(), "keystore.json")

	ks, err := keystore.Create(context.Background(), path, testMnemonic, passwords("correct horse", "correct horse"))
	require.NoError(t, err)
	assert.Equal(t, "0x9858EfFD232B4033E47d90003D41EC34EcaEda94", ks.Address)

	addr, err := wallet.KeystoreAddress(context.Background(), config.Wallet{
		KeystorePath:     path,
		KeystorePassword: "correct horse",
		DerivationPath:   "m/44'/60'/0'/0/0",
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, ks.Address, addr)
}

func TestCreateRejectsInvalidMnemonic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keystore.json")

	_, err := keystore.Create(context.Background(), path, "abandon abandon", passwords())
	require.ErrorIs(t, err, keystore.ErrInvalidMnemonic)
	assert.NoFileExists(t, path)
}

func TestCreateRequiresPath(t *testing.T) {
	t.Setenv("WALLET_KEYSTORE_PATH", "")

	_, err := keystore.Create(context.Background(), "", testMnemonic, passwords())
	require.Error(t, err)
}

func TestCreateRejectsMismatchedPasswords(t *testing.T) {
	t.Setenv("WALLET_KEYSTORE_PASSWORD", "")
	path := filepath.Join(t.TempDir(), "keystore.json")

	_, err := keystore.Create(context.Background(), path, testMnemonic, passwords("correct horse", "wrong horse"))
	require.Error(t, err)
	assert.NoFileExists(t, path)
}
