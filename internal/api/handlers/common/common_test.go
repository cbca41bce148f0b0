package common_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/magic-wallet/internal/api"
	"github/chapool/magic-wallet/internal/config"
	"github/chapool/magic-wallet/internal/test"
)

func TestGetReadyReadiness(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server, _ *test.SimulatedChain) {
		res := test.PerformRequest(t, s, http.MethodGet, "/-/ready", nil, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)
		require.Equal(t, "Ready.", res.Body.String())
	})
}

func TestGetReadyReadinessBroken(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server, _ *test.SimulatedChain) {
		// forcefully remove an initialized component to check if ready state works
		s.Transfers = nil

		res := test.PerformRequest(t, s, http.MethodGet, "/-/ready", nil, nil)
		require.Equal(t, 521, res.Result().StatusCode)
		require.Equal(t, "Not ready.", res.Body.String())
	})
}

func TestGetHealthy(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server, _ *test.SimulatedChain) {
		res := test.PerformRequest(t, s, http.MethodGet, "/-/healthy", nil, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)
		require.Equal(t, "Healthy.", res.Body.String())
	})
}

func TestGetMetrics(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server, _ *test.SimulatedChain) {
		body := map[string]string{"to": "0x123", "amount": "1"}
		res := test.PerformRequest(t, s, http.MethodPost, "/api/v1/transfers", body, nil)
		require.Equal(t, http.StatusUnprocessableEntity, res.Result().StatusCode)

		res = test.PerformRequest(t, s, http.MethodGet, "/metrics", nil, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)
		assert.Contains(t, res.Body.String(), `magic_wallet_submissions_total{operation="transfer",result="InvalidAddress"} 1`)
	})
}

func TestGetMetricsDisabled(t *testing.T) {
	cfg := config.DefaultServiceConfigFromEnv()
	cfg.Metrics.Enabled = false

	test.WithTestServerConfigurable(t, cfg, func(s *api.Server, _ *test.SimulatedChain) {
		res := test.PerformRequest(t, s, http.MethodGet, "/metrics", nil, nil)
		require.Equal(t, http.StatusNotFound, res.Result().StatusCode)
	})
}
