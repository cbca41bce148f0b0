package transfer_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/magic-wallet/cmd/transfer"
)

func TestLoadBatchArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transfers.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"to": "0x6Fac4D18c912343BF86fa7049364Dd4E424Ab9C0", "amount": "0.1", "memo": "rent"},
		{"to": "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266", "amount": "0.2"}
	]`), 0o600))

	batch, err := transfer.LoadBatch(nil, path)
	require.NoError(t, err)

	reqs := batch.ToRequests()
	require.Len(t, reqs, 2)
	assert.Equal(t, "0x6Fac4D18c912343BF86fa7049364Dd4E424Ab9C0", reqs[0].To)
	assert.Equal(t, "0.1", reqs[0].Amount)
	assert.Equal(t, "rent", reqs[0].Memo)
	assert.Equal(t, "0.2", reqs[1].Amount)
}

func TestLoadBatchObjectFromStdin(t *testing.T) {
	stdin := strings.NewReader(`{"transfers": [{"to": "0x6Fac4D18c912343BF86fa7049364Dd4E424Ab9C0", "amount": "1", "gasPriceGwei": "2.5"}]}`)

	batch, err := transfer.LoadBatch(stdin, "-")
	require.NoError(t, err)

	reqs := batch.ToRequests()
	require.Len(t, reqs, 1)
	require.NotNil(t, reqs[0].GasPrice)
	assert.Equal(t, "2500000000", reqs[0].GasPrice.String())
}

func TestLoadBatchErrors(t *testing.T) {
	_, err := transfer.LoadBatch(nil, filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)

	_, err = transfer.LoadBatch(strings.NewReader(`[]`), "-")
	require.Error(t, err)

	_, err = transfer.LoadBatch(strings.NewReader(`{not json`), "-")
	require.Error(t, err)

	_, err = transfer.LoadBatch(strings.NewReader(`[{"to": "0x1", "amount": "1", "gasPriceGwei": "-1"}]`), "-")
	require.Error(t, err)
}

func TestLoadBatchRequiresFields(t *testing.T) {
	_, err := transfer.LoadBatch(strings.NewReader(`[{"to": "0x6Fac4D18c912343BF86fa7049364Dd4E424Ab9C0"}]`), "-")
	require.Error(t, err)

	_, err = transfer.LoadBatch(strings.NewReader(`{"transfers": null}`), "-")
	require.Error(t, err)
}
