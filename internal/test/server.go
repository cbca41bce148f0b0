package test

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/go-openapi/runtime"
	"github.com/go-openapi/strfmt"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"github/chapool/magic-wallet/internal/api"
	"github/chapool/magic-wallet/internal/api/httperrors"
	"github/chapool/magic-wallet/internal/api/router"
	"github/chapool/magic-wallet/internal/config"
)

// WithTestServer runs closure against a server bound to a funded account on an
// auto-mining simulated chain.
func WithTestServer(t *testing.T, closure func(s *api.Server, chain *SimulatedChain)) {
	t.Helper()

	WithTestServerConfigurable(t, config.DefaultServiceConfigFromEnv(), closure)
}

func WithTestServerConfigurable(t *testing.T, cfg config.Server, closure func(s *api.Server, chain *SimulatedChain)) {
	t.Helper()

	chain := NewSimulatedChain(t, Ether(100))
	chain.AutoMine(t)

	s := NewTestServer(t, cfg, chain)
	closure(s, chain)
}

// WithAnonymousTestServer runs closure against a server started without a signing identity.
func WithAnonymousTestServer(t *testing.T, closure func(s *api.Server, chain *SimulatedChain)) {
	t.Helper()

	chain := NewSimulatedChain(t, Ether(100))

	cfg := testConfig(config.DefaultServiceConfigFromEnv())
	cfg.Wallet.AllowAnonymous = true

	s := initTestServer(t, cfg, chain)
	require.Nil(t, s.Transfers.Signer())

	closure(s, chain)
}

// NewTestServer wires a server for chain's funded account. The batch pause is dropped so
// batches run fast and receipts are polled at the chain's block interval.
func NewTestServer(t *testing.T, cfg config.Server, chain *SimulatedChain) *api.Server {
	t.Helper()

	cfg = testConfig(cfg)
	cfg.Wallet.PrivateKey = hex.EncodeToString(crypto.FromECDSA(chain.Key))

	return initTestServer(t, cfg, chain)
}

func testConfig(cfg config.Server) config.Server {
	cfg.Wallet.PrivateKey = ""
	cfg.Wallet.KeystorePath = ""
	cfg.Wallet.AllowAnonymous = false
	cfg.Chain.ReceiptPollInterval = blockInterval
	cfg.Transfer.BatchPause = 0
	cfg.NFT.ContractAddress = ""

	return cfg
}

func initTestServer(t *testing.T, cfg config.Server, chain *SimulatedChain) *api.Server {
	t.Helper()

	s, err := api.InitNewServerWithClient(cfg, chain.Client, t)
	require.NoError(t, err)

	router.Init(s)
	require.True(t, s.Ready())

	return s
}

// PerformRequest runs a request against the server's echo instance. A non-nil body is
// sent as JSON.
func PerformRequest(t *testing.T, s *api.Server, method string, path string, body interface{}, headers http.Header) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	for k, v := range headers {
		req.Header[k] = v
	}
	if body != nil && req.Header.Get(echo.HeaderContentType) == "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	res := httptest.NewRecorder()
	s.Echo.ServeHTTP(res, req)

	return res
}

// ParseResponseAndValidate decodes the JSON body of res into v and validates it against
// the default format registry.
func ParseResponseAndValidate(t *testing.T, res *httptest.ResponseRecorder, v runtime.Validatable) {
	t.Helper()

	require.NoError(t, json.NewDecoder(res.Body).Decode(v))
	require.NoError(t, v.Validate(strfmt.Default))
}

// RequireHTTPError asserts res carries httpErr's status and type.
func RequireHTTPError(t *testing.T, res *httptest.ResponseRecorder, httpErr *httperrors.HTTPError) {
	t.Helper()

	require.Equal(t, httpErr.Code, res.Result().StatusCode)

	var response httperrors.HTTPError
	ParseResponseAndValidate(t, res, &response)
	require.Equal(t, httpErr.Code, response.Code)
	require.Equal(t, httpErr.Type, response.Type)
	require.Equal(t, httpErr.Title, response.Title)
}
