package units_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/magic-wallet/internal/units"
)

func TestParseEther(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1", "1000000000000000000"},
		{"1.0", "1000000000000000000"},
		{"0.5", "500000000000000000"},
		{".5", "500000000000000000"},
		{"0.000000000000000001", "1"},
		{" 2.25 ", "2250000000000000000"},
		{"0", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := units.ParseEther(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestParseEtherRejects(t *testing.T) {
	for _, in := range []string{"", "abc", "-1", "+1", "1e18", "NaN", "Infinity", "1,5", "1.2.3", "."} {
		t.Run(in, func(t *testing.T) {
			_, err := units.ParseEther(in)
			require.Error(t, err)
			assert.ErrorIs(t, err, units.ErrInvalidNumber)
		})
	}
}

func TestParseEtherTooManyDecimals(t *testing.T) {
	_, err := units.ParseEther("0.0000000000000000001")
	assert.ErrorIs(t, err, units.ErrTooManyDecimals)
}

func TestParsePositiveEther(t *testing.T) {
	_, err := units.ParsePositiveEther("0.0")
	assert.ErrorIs(t, err, units.ErrNonPositiveValue)

	wei, err := units.ParsePositiveEther("0.001")
	require.NoError(t, err)
	assert.Equal(t, "1000000000000000", wei.String())
}

func TestParseGwei(t *testing.T) {
	wei, err := units.ParseGwei("2")
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(2_000_000_000), wei)
}

func TestFormatEther(t *testing.T) {
	assert.Equal(t, "1.0", units.FormatEther(big.NewInt(1_000_000_000_000_000_000)))
	assert.Equal(t, "0.000042", units.FormatEther(big.NewInt(42_000_000_000_000)))
	assert.Equal(t, "0.0", units.FormatEther(nil))
	assert.Equal(t, "0.000000000000000001", units.FormatEther(big.NewInt(1)))
	assert.Equal(t, "2.0", units.FormatGwei(big.NewInt(2_000_000_000)))
}

func TestFormatEtherFixed(t *testing.T) {
	wei, err := units.ParseEther("1.23456")
	require.NoError(t, err)
	assert.Equal(t, "1.2346", units.FormatEtherFixed(wei, 4))
}

func TestRoundTrip(t *testing.T) {
	wei, err := units.ParseEther("1.000042")
	require.NoError(t, err)
	assert.Equal(t, "1.000042", units.FormatEther(wei))
}
