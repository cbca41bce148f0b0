package address

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// IsValid reports whether s is a well-formed account address: a 0x prefix followed by
// 40 hex digits. All-lowercase and all-uppercase forms are accepted as is; mixed case
// must match the EIP-55 checksum.
func IsValid(s string) bool {
	if !strings.HasPrefix(s, "0x") || !common.IsHexAddress(s) {
		return false
	}

	digits := s[2:]
	if digits == strings.ToLower(digits) || digits == strings.ToUpper(digits) {
		return true
	}

	return common.HexToAddress(s).Hex() == s
}

// Parse returns the address for s, or false when IsValid rejects it.
func Parse(s string) (common.Address, bool) {
	if !IsValid(s) {
		return common.Address{}, false
	}

	return common.HexToAddress(s), true
}
