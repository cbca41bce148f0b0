package transfers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/magic-wallet/internal/api"
	"github/chapool/magic-wallet/internal/api/httperrors"
	"github/chapool/magic-wallet/internal/data/dto"
	"github/chapool/magic-wallet/internal/test"
	"github/chapool/magic-wallet/internal/transfer"
)

const recipient = "0x00000000000000000000000000000000000000A1"

func TestPostTransfer(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server, chain *test.SimulatedChain) {
		res := test.PerformRequest(t, s, http.MethodPost, "/api/v1/transfers", map[string]interface{}{
			"to":     recipient,
			"amount": "1.5",
			"memo":   "invoice 42",
		}, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		var response dto.Outcome
		test.ParseResponseAndValidate(t, res, &response)
		assert.True(t, response.Success)
		assert.Len(t, response.TxHash, 66)
		assert.Equal(t, uint64(21000), response.GasUsed)
		assert.NotEmpty(t, response.Fee)
		assert.Empty(t, response.Kind)
		require.NotNil(t, response.SubmittedAt)
		assert.True(t, test.TestTime.Equal(time.Time(*response.SubmittedAt)))

		assert.Equal(t, "1500000000000000000", chain.Balance(t, common.HexToAddress(recipient)).String())
	})
}

func TestPostTransferWithGasPrice(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server, _ *test.SimulatedChain) {
		res := test.PerformRequest(t, s, http.MethodPost, "/api/v1/transfers", map[string]interface{}{
			"to":           recipient,
			"amount":       "0.1",
			"gasLimit":     25000,
			"gasPriceGwei": "20",
		}, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		var response dto.Outcome
		test.ParseResponseAndValidate(t, res, &response)
		assert.True(t, response.Success)
		// 21000 gas at 20 gwei
		assert.Equal(t, "0.00042", response.Fee)
	})
}

func TestPostTransferFailures(t *testing.T) {
	tests := []struct {
		name string
		body map[string]interface{}
		kind transfer.Kind
	}{
		{"invalid address", map[string]interface{}{"to": "0x123", "amount": "1"}, transfer.KindInvalidAddress},
		{"invalid amount", map[string]interface{}{"to": recipient, "amount": "-1"}, transfer.KindInvalidAmount},
		{"zero amount", map[string]interface{}{"to": recipient, "amount": "0"}, transfer.KindInvalidAmount},
		{"insufficient funds", map[string]interface{}{"to": recipient, "amount": "1000000"}, transfer.KindInsufficientFunds},
	}

	test.WithTestServer(t, func(s *api.Server, _ *test.SimulatedChain) {
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				res := test.PerformRequest(t, s, http.MethodPost, "/api/v1/transfers", tt.body, nil)
				require.Equal(t, http.StatusUnprocessableEntity, res.Result().StatusCode)

				var response dto.Outcome
				test.ParseResponseAndValidate(t, res, &response)
				assert.False(t, response.Success)
				assert.Equal(t, string(tt.kind), response.Kind)
				assert.NotEmpty(t, response.Error)
				assert.Empty(t, response.TxHash)
			})
		}
	})
}

func TestPostTransferBadGasPrice(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server, _ *test.SimulatedChain) {
		res := test.PerformRequest(t, s, http.MethodPost, "/api/v1/transfers", map[string]interface{}{
			"to":           recipient,
			"amount":       "1",
			"gasPriceGwei": "cheap",
		}, nil)
		require.Equal(t, http.StatusBadRequest, res.Result().StatusCode)
	})
}

func TestPostTransferUnauthenticated(t *testing.T) {
	test.WithAnonymousTestServer(t, func(s *api.Server, chain *test.SimulatedChain) {
		res := test.PerformRequest(t, s, http.MethodPost, "/api/v1/transfers", map[string]interface{}{
			"to":     recipient,
			"amount": "1",
		}, nil)
		test.RequireHTTPError(t, res, httperrors.ErrUnauthenticated)

		assert.Equal(t, "0", chain.Balance(t, common.HexToAddress(recipient)).String())
	})
}

func TestPostBatchTransferUnauthenticated(t *testing.T) {
	test.WithAnonymousTestServer(t, func(s *api.Server, chain *test.SimulatedChain) {
		res := test.PerformRequest(t, s, http.MethodPost, "/api/v1/transfers/batch", map[string]interface{}{
			"transfers": []map[string]interface{}{
				{"to": recipient, "amount": "1"},
				{"to": recipient, "amount": "2"},
			},
		}, nil)
		test.RequireHTTPError(t, res, httperrors.ErrUnauthenticated)

		assert.Equal(t, "0", chain.Balance(t, common.HexToAddress(recipient)).String())
	})
}

func TestPostBatchTransfer(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server, chain *test.SimulatedChain) {
		res := test.PerformRequest(t, s, http.MethodPost, "/api/v1/transfers/batch", map[string]interface{}{
			"transfers": []map[string]interface{}{
				{"to": recipient, "amount": "1"},
				{"to": "nope", "amount": "1"},
				{"to": recipient, "amount": "2"},
			},
		}, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		var response dto.BatchTransferResponse
		test.ParseResponseAndValidate(t, res, &response)
		assert.Equal(t, 2, response.Succeeded)
		assert.Equal(t, 1, response.Failed)
		require.Len(t, response.Outcomes, 3)
		assert.True(t, response.Outcomes[0].Success)
		assert.Equal(t, string(transfer.KindInvalidAddress), response.Outcomes[1].Kind)
		assert.True(t, response.Outcomes[2].Success)

		assert.Equal(t, test.Ether(3).String(), chain.Balance(t, common.HexToAddress(recipient)).String())
	})
}

func TestPostBatchTransferInvalidBody(t *testing.T) {
	tooMany := make([]map[string]interface{}, dto.MaxBatchSize+1)
	for i := range tooMany {
		tooMany[i] = map[string]interface{}{"to": recipient, "amount": "0.001"}
	}

	tests := []struct {
		name string
		body map[string]interface{}
	}{
		{"empty", map[string]interface{}{"transfers": []interface{}{}}},
		{"missing transfers", map[string]interface{}{}},
		{"missing amount", map[string]interface{}{"transfers": []map[string]interface{}{{"to": recipient}}}},
		{"too many", map[string]interface{}{"transfers": tooMany}},
	}

	test.WithTestServer(t, func(s *api.Server, chain *test.SimulatedChain) {
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				res := test.PerformRequest(t, s, http.MethodPost, "/api/v1/transfers/batch", tt.body, nil)
				require.Equal(t, http.StatusBadRequest, res.Result().StatusCode)

				var response httperrors.HTTPError
				test.ParseResponseAndValidate(t, res, &response)
				assert.Equal(t, httperrors.TypeBadRequest, response.Type)
			})
		}

		assert.Equal(t, "0", chain.Balance(t, common.HexToAddress(recipient)).String())
	})
}

func TestPostEstimate(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server, _ *test.SimulatedChain) {
		res := test.PerformRequest(t, s, http.MethodPost, "/api/v1/transfers/estimate", map[string]interface{}{
			"to":     recipient,
			"amount": "1",
		}, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		var response dto.CostEstimate
		test.ParseResponseAndValidate(t, res, &response)
		assert.Equal(t, "1.0", response.Amount)
		assert.Equal(t, uint64(21000), response.GasUnits)
		assert.NotEmpty(t, response.GasFee)
		assert.NotEqual(t, response.Amount, response.Total)
	})
}

func TestPostEstimateInvalidInput(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server, _ *test.SimulatedChain) {
		res := test.PerformRequest(t, s, http.MethodPost, "/api/v1/transfers/estimate", map[string]interface{}{
			"to":     "0x123",
			"amount": "1",
		}, nil)
		test.RequireHTTPError(t, res, &httperrors.HTTPError{
			Code:  http.StatusBadRequest,
			Type:  string(transfer.KindInvalidAddress),
			Title: "Invalid recipient address",
		})
	})
}

func TestPostEstimateUnauthenticated(t *testing.T) {
	test.WithAnonymousTestServer(t, func(s *api.Server, _ *test.SimulatedChain) {
		res := test.PerformRequest(t, s, http.MethodPost, "/api/v1/transfers/estimate", map[string]interface{}{
			"to":     recipient,
			"amount": "1",
		}, nil)
		test.RequireHTTPError(t, res, httperrors.ErrUnauthenticated)
	})
}
