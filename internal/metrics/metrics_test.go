package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/magic-wallet/internal/metrics"
)

func TestObserveOutcome(t *testing.T) {
	m := metrics.New()

	m.ObserveOutcome("transfer", "success", 3*time.Second)
	m.ObserveOutcome("transfer", "success", 4*time.Second)
	m.ObserveOutcome("transfer", "InsufficientFunds", 0)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)

	assert.Contains(t, string(body), `magic_wallet_submissions_total{operation="transfer",result="success"} 2`)
	assert.Contains(t, string(body), `magic_wallet_submissions_total{operation="transfer",result="InsufficientFunds"} 1`)
	assert.Contains(t, string(body), `magic_wallet_confirmation_seconds_count{operation="transfer"} 2`)
	assert.Contains(t, string(body), "go_goroutines")
}
