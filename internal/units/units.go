// Package units converts between the network's smallest unit (wei) and human-readable
// decimal strings.
package units

import (
	"math/big"
	"regexp"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

const (
	EtherDecimals int32 = 18
	GweiDecimals  int32 = 9
)

var (
	ErrInvalidNumber    = errors.New("invalid decimal number")
	ErrTooManyDecimals  = errors.New("too many decimal places")
	ErrNegativeValue    = errors.New("value must not be negative")
	ErrNonPositiveValue = errors.New("value must be positive")

	// Plain decimal notation only; exponents, signs and thousands separators are rejected.
	decimalPattern = regexp.MustCompile(`^(\d+(\.\d*)?|\.\d+)$`)
)

// ParseUnits parses a decimal string into an integer amount of the smallest unit
// with the given number of decimals.
func ParseUnits(value string, decimals int32) (*big.Int, error) {
	value = strings.TrimSpace(value)
	if !decimalPattern.MatchString(value) {
		return nil, errors.Wrapf(ErrInvalidNumber, "%q", value)
	}

	if strings.HasPrefix(value, ".") {
		value = "0" + value
	}
	value = strings.TrimSuffix(value, ".")

	d, err := decimal.NewFromString(value)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidNumber, "%q", value)
	}

	scaled := d.Shift(decimals)
	if !scaled.IsInteger() {
		return nil, errors.Wrapf(ErrTooManyDecimals, "%q has more than %d decimals", value, decimals)
	}

	return scaled.BigInt(), nil
}

// ParseEther parses an ether amount into wei.
func ParseEther(value string) (*big.Int, error) {
	return ParseUnits(value, EtherDecimals)
}

// ParsePositiveEther parses an ether amount and rejects zero.
func ParsePositiveEther(value string) (*big.Int, error) {
	wei, err := ParseEther(value)
	if err != nil {
		return nil, err
	}
	if wei.Sign() <= 0 {
		return nil, errors.Wrapf(ErrNonPositiveValue, "%q", value)
	}

	return wei, nil
}

// ParseGwei parses a gwei amount into wei.
func ParseGwei(value string) (*big.Int, error) {
	return ParseUnits(value, GweiDecimals)
}

// FormatUnits renders an integer amount of the smallest unit as a decimal string.
// Whole numbers keep a trailing ".0" so the result always reads as a decimal.
func FormatUnits(value *big.Int, decimals int32) string {
	if value == nil {
		value = new(big.Int)
	}

	s := decimal.NewFromBigInt(value, -decimals).String()
	if !strings.Contains(s, ".") {
		s += ".0"
	}

	return s
}

// FormatEther renders wei as an ether decimal string.
func FormatEther(wei *big.Int) string {
	return FormatUnits(wei, EtherDecimals)
}

// FormatGwei renders wei as a gwei decimal string.
func FormatGwei(wei *big.Int) string {
	return FormatUnits(wei, GweiDecimals)
}

// FormatEtherFixed renders wei as ether rounded to places decimals, for display.
func FormatEtherFixed(wei *big.Int, places int32) string {
	if wei == nil {
		wei = new(big.Int)
	}

	return decimal.NewFromBigInt(wei, -EtherDecimals).StringFixed(places)
}
