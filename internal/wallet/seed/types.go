package seed

// Manager holds the BIP-39 seed of the unlocked wallet in memory.
type Manager interface {
	// Initialize derives the seed from mnemonic and an optional BIP-39 passphrase
	Initialize(mnemonic string, passphrase string) error

	// GetSeed returns a copy of the seed, nil when not initialized
	GetSeed() []byte

	IsInitialized() bool

	// Clear wipes the seed from memory
	Clear()
}
