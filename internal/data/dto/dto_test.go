package dto_test

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-openapi/errors"
	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/swag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/magic-wallet/internal/data/dto"
	"github/chapool/magic-wallet/internal/transfer"
)

const recipient = "0x6Fac4D18c912343BF86fa7049364Dd4E424Ab9C0"

func validationNames(t *testing.T, err error) []string {
	t.Helper()

	var ce *errors.CompositeError
	require.ErrorAs(t, err, &ce)

	names := make([]string, 0, len(ce.Errors))
	for _, e := range ce.Errors {
		ve, ok := e.(*errors.Validation)
		require.True(t, ok, "unexpected error %T", e)
		names = append(names, ve.Name)
	}

	return names
}

func TestTransferRequestRequiresFields(t *testing.T) {
	err := (&dto.TransferRequest{}).Validate(strfmt.Default)
	require.Error(t, err)
	assert.ElementsMatch(t, []string{"to", "amount"}, validationNames(t, err))
}

func TestTransferRequestLeavesValuesToOrchestrator(t *testing.T) {
	// empty and malformed values are classified later, not rejected here
	req := &dto.TransferRequest{To: swag.String(""), Amount: swag.String("lots")}
	require.NoError(t, req.Validate(strfmt.Default))

	r := req.ToRequest()
	assert.Empty(t, r.To)
	assert.Equal(t, "lots", r.Amount)
	assert.Nil(t, r.GasPrice)
}

func TestTransferRequestGasPrice(t *testing.T) {
	req := &dto.TransferRequest{To: swag.String(recipient), Amount: swag.String("1"), GasPriceGwei: "1.5"}
	require.NoError(t, req.Validate(strfmt.Default))
	assert.Equal(t, "1500000000", req.ToRequest().GasPrice.String())

	for _, bad := range []string{"0", "-2", "cheap"} {
		req := &dto.TransferRequest{To: swag.String(recipient), Amount: swag.String("1"), GasPriceGwei: bad}
		err := req.Validate(strfmt.Default)
		require.Error(t, err, bad)
		assert.Equal(t, []string{"gasPriceGwei"}, validationNames(t, err))
	}
}

func TestTransferRequestMemoLength(t *testing.T) {
	req := &dto.TransferRequest{To: swag.String(recipient), Amount: swag.String("1"), Memo: strings.Repeat("m", 257)}
	err := req.Validate(strfmt.Default)
	require.Error(t, err)
	assert.Equal(t, []string{"memo"}, validationNames(t, err))
}

func TestBatchTransferRequestValidate(t *testing.T) {
	var missing dto.BatchTransferRequest
	require.Error(t, missing.Validate(strfmt.Default))

	empty := dto.BatchTransferRequest{Transfers: []*dto.TransferRequest{}}
	require.Error(t, empty.Validate(strfmt.Default))

	tooMany := dto.BatchTransferRequest{}
	for i := 0; i <= dto.MaxBatchSize; i++ {
		tooMany.Transfers = append(tooMany.Transfers, &dto.TransferRequest{To: swag.String(recipient), Amount: swag.String("1")})
	}
	require.Error(t, tooMany.Validate(strfmt.Default))

	tooMany.Transfers = tooMany.Transfers[:dto.MaxBatchSize]
	require.NoError(t, tooMany.Validate(strfmt.Default))
}

func TestBatchTransferRequestNamesFailingItem(t *testing.T) {
	var batch dto.BatchTransferRequest
	require.NoError(t, json.Unmarshal([]byte(`{"transfers": [
		{"to": "`+recipient+`", "amount": "1"},
		{"to": "`+recipient+`"}
	]}`), &batch))

	err := batch.Validate(strfmt.Default)
	require.Error(t, err)
	assert.Equal(t, []string{"transfers.1.amount"}, validationNames(t, err))
}

func TestApprovalRequestValidate(t *testing.T) {
	var req dto.ApprovalRequest
	require.NoError(t, json.Unmarshal([]byte(`{"operator": "`+recipient+`", "approved": false}`), &req))
	require.NoError(t, req.Validate(strfmt.Default))
	assert.False(t, swag.BoolValue(req.Approved))

	req = dto.ApprovalRequest{Operator: swag.String(recipient)}
	err := req.Validate(strfmt.Default)
	require.Error(t, err)
	assert.Equal(t, []string{"approved"}, validationNames(t, err))
}

func TestOutcomeTimestamps(t *testing.T) {
	submittedAt := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	out := dto.NewOutcome(transfer.Outcome{
		Success:     true,
		TxHash:      common.HexToHash("0x01"),
		SubmittedAt: submittedAt,
	})
	require.NoError(t, out.Validate(strfmt.Default))
	assert.Nil(t, out.ConfirmedAt)

	raw, err := json.Marshal(out)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"submittedAt":"2025-01-02T03:04:05.000Z"`)
	assert.NotContains(t, string(raw), "confirmedAt")
}

func TestOutcomeValidate(t *testing.T) {
	require.Error(t, (&dto.Outcome{Success: true}).Validate(strfmt.Default))
	require.Error(t, (&dto.Outcome{Success: false}).Validate(strfmt.Default))
	require.NoError(t, (&dto.Outcome{Success: false, Kind: "InvalidAmount", Error: "Invalid amount"}).Validate(strfmt.Default))
}

func TestBatchTransferResponseCounts(t *testing.T) {
	res := dto.NewBatchTransferResponse([]transfer.Outcome{
		{Success: true, TxHash: common.HexToHash("0x01")},
		{Kind: transfer.KindInvalidAddress, Error: "Invalid recipient address"},
	})
	assert.Equal(t, 1, res.Succeeded)
	assert.Equal(t, 1, res.Failed)
	require.NoError(t, res.Validate(strfmt.Default))

	res.Failed = 0
	require.Error(t, res.Validate(strfmt.Default))
}
