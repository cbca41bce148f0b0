package address

import "context"

// ChainTypeEVM is the only chain family supported by this wallet.
const ChainTypeEVM = "evm"

// Service provides address derivation functionality
type Service interface {
	// DeriveAddress derives an address from seed (all EVM chains use same path, same address)
	DeriveAddress(ctx context.Context, seed []byte, path string, chainType string) (string, error)

	// DerivePrivateKey derives a private key from seed
	// WARNING: Private key should be cleared after use
	DerivePrivateKey(ctx context.Context, seed []byte, path string, chainType string) ([]byte, error)

	// GetBIP44Path gets BIP44 path (fixed format for EVM chains)
	GetBIP44Path(addressIndex int) string
}
