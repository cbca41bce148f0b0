package provider

import (
	"context"
	"io"
	"math/big"
	"net"
	"net/url"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

var ErrNoBackend = errors.New("all RPC clients are unavailable")

// baseFeeMultiplier doubles the base fee in MaxFeePerGas so a transaction stays
// includable for a few blocks of rising fees.
const baseFeeMultiplier = 2

// DialFunc opens a backend for an RPC URL.
type DialFunc func(ctx context.Context, url string) (Backend, error)

// RPCClient is a Client over one or more RPC endpoints. Calls go to the current endpoint;
// transport failures move on to the next one, JSON-RPC errors are returned as is.
type RPCClient struct {
	mu       sync.Mutex
	urls     []string
	backends []Backend
	current  int
	dial     DialFunc
}

var _ Client = (*RPCClient)(nil)

func dialEthclient(ctx context.Context, url string) (Backend, error) {
	client, err := ethclient.DialContext(ctx, url)
	if err != nil {
		return nil, err
	}

	return client, nil
}

// NewRPCClient dials every URL. Endpoints that fail to dial are retried lazily on use;
// at least one must succeed.
func NewRPCClient(ctx context.Context, urls []string) (*RPCClient, error) {
	return newRPCClient(ctx, urls, dialEthclient)
}

func newRPCClient(ctx context.Context, urls []string, dial DialFunc) (*RPCClient, error) {
	if len(urls) == 0 {
		return nil, errors.New("at least one RPC URL is required")
	}

	backends := make([]Backend, len(urls))
	connected := 0
	for i, u := range urls {
		backend, err := dial(ctx, u)
		if err != nil {
			log.Warn().
				Str("url", redactURL(u)).
				Err(err).
				Msg("Failed to connect to RPC node, will retry on use")
			continue
		}
		backends[i] = backend
		connected++
	}

	if connected == 0 {
		return nil, errors.New("failed to connect to any RPC node")
	}

	return &RPCClient{
		urls:     urls,
		backends: backends,
		dial:     dial,
	}, nil
}

// NewFromBackends wraps already connected backends, e.g. a simulated chain in tests.
func NewFromBackends(backends ...Backend) (*RPCClient, error) {
	if len(backends) == 0 {
		return nil, errors.New("at least one backend is required")
	}

	return &RPCClient{
		urls:     make([]string, len(backends)),
		backends: backends,
	}, nil
}

// Close closes all backends that support it.
func (c *RPCClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, backend := range c.backends {
		if closer, ok := backend.(interface{ Close() }); ok {
			closer.Close()
		}
	}
}

func (c *RPCClient) BalanceAt(ctx context.Context, account common.Address) (*big.Int, error) {
	balance, err := call(ctx, c, func(b Backend) (*big.Int, error) {
		return b.BalanceAt(ctx, account, nil)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get balance")
	}

	return balance, nil
}

func (c *RPCClient) EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error) {
	gas, err := call(ctx, c, func(b Backend) (uint64, error) {
		return b.EstimateGas(ctx, msg)
	})
	if err != nil {
		return 0, errors.Wrap(err, "failed to estimate gas")
	}

	return gas, nil
}

// FeeData mirrors what wallets show as "current fees": the legacy gas price plus, on
// London chains, maxFee = 2*baseFee + tip and the suggested tip.
func (c *RPCClient) FeeData(ctx context.Context) (*FeeData, error) {
	gasPrice, err := call(ctx, c, func(b Backend) (*big.Int, error) {
		return b.SuggestGasPrice(ctx)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to suggest gas price")
	}

	fees := &FeeData{GasPrice: gasPrice}

	header, err := call(ctx, c, func(b Backend) (*types.Header, error) {
		return b.HeaderByNumber(ctx, nil)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get latest header")
	}
	if header.BaseFee == nil {
		return fees, nil
	}

	tipCap, err := call(ctx, c, func(b Backend) (*big.Int, error) {
		return b.SuggestGasTipCap(ctx)
	})
	if err != nil {
		log.Debug().Err(err).Msg("Gas tip cap unavailable, falling back to legacy pricing")
		return fees, nil
	}

	fees.MaxPriorityFeePerGas = tipCap
	fees.MaxFeePerGas = new(big.Int).Add(
		new(big.Int).Mul(header.BaseFee, big.NewInt(baseFeeMultiplier)),
		tipCap,
	)

	return fees, nil
}

func (c *RPCClient) Network(ctx context.Context) (*Network, error) {
	chainID, err := call(ctx, c, func(b Backend) (*big.Int, error) {
		return b.ChainID(ctx)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get chain ID")
	}

	return &Network{ChainID: chainID, Name: NetworkName(chainID)}, nil
}

func (c *RPCClient) CallContract(ctx context.Context, msg ethereum.CallMsg) ([]byte, error) {
	out, err := call(ctx, c, func(b Backend) ([]byte, error) {
		return b.CallContract(ctx, msg, nil)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to call contract")
	}

	return out, nil
}

func (c *RPCClient) PendingNonceAt(ctx context.Context, account common.Address) (uint64, error) {
	nonce, err := call(ctx, c, func(b Backend) (uint64, error) {
		return b.PendingNonceAt(ctx, account)
	})
	if err != nil {
		return 0, errors.Wrap(err, "failed to get pending nonce")
	}

	return nonce, nil
}

// SendTransaction broadcasts a signed transaction. It is never retried on another
// endpoint: the first node may already have accepted it.
func (c *RPCClient) SendTransaction(ctx context.Context, tx *types.Transaction) error {
	backend, _, err := c.backend(ctx)
	if err != nil {
		return err
	}

	if err := backend.SendTransaction(ctx, tx); err != nil {
		return errors.Wrap(err, "failed to send transaction")
	}

	return nil
}

// TransactionReceipt returns an error satisfying IsReceiptPending while the transaction
// is pending or the node is still indexing it.
func (c *RPCClient) TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	receipt, err := call(ctx, c, func(b Backend) (*types.Receipt, error) {
		return b.TransactionReceipt(ctx, txHash)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transaction receipt")
	}

	return receipt, nil
}

func (c *RPCClient) BlockNumber(ctx context.Context) (uint64, error) {
	number, err := call(ctx, c, func(b Backend) (uint64, error) {
		return b.BlockNumber(ctx)
	})
	if err != nil {
		return 0, errors.Wrap(err, "failed to get latest block number")
	}

	return number, nil
}

// call runs fn on the current backend, failing over on transport errors.
func call[T any](ctx context.Context, c *RPCClient, fn func(Backend) (T, error)) (T, error) {
	var zero T
	var lastErr error

	for attempt := 0; attempt < len(c.backends); attempt++ {
		backend, idx, err := c.backend(ctx)
		if err != nil {
			if lastErr != nil {
				return zero, lastErr
			}
			return zero, err
		}

		result, err := fn(backend)
		if err == nil {
			return result, nil
		}
		if ctx.Err() != nil || !isTransportError(err) {
			return zero, err
		}

		log.Warn().
			Str("url", redactURL(c.urls[idx])).
			Err(err).
			Msg("RPC endpoint failed, trying next one")
		c.advance(idx)
		lastErr = err
	}

	return zero, lastErr
}

// backend returns the current backend, redialing endpoints whose initial dial failed.
func (c *RPCClient) backend(ctx context.Context) (Backend, int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := 0; i < len(c.backends); i++ {
		idx := (c.current + i) % len(c.backends)
		if c.backends[idx] == nil && c.dial != nil && c.urls[idx] != "" {
			backend, err := c.dial(ctx, c.urls[idx])
			if err != nil {
				continue
			}
			c.backends[idx] = backend
		}
		if c.backends[idx] != nil {
			c.current = idx
			return c.backends[idx], idx, nil
		}
	}

	return nil, 0, ErrNoBackend
}

func (c *RPCClient) advance(failed int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current == failed {
		c.current = (failed + 1) % len(c.backends)
	}
}

// receiptIndexingMessage is how geth answers receipt lookups while its transaction index
// catches up with the chain head.
const receiptIndexingMessage = "transaction indexing is in progress"

// IsReceiptPending reports whether a receipt lookup failed only because the receipt is not
// available yet. Callers keep polling on these errors.
func IsReceiptPending(err error) bool {
	if err == nil {
		return false
	}

	return errors.Is(err, ethereum.NotFound) || strings.Contains(err.Error(), receiptIndexingMessage)
}

// isTransportError separates "could not talk to the node" from answers of the node.
func isTransportError(err error) bool {
	var rpcErr rpc.Error
	if errors.As(err, &rpcErr) || errors.Is(err, ethereum.NotFound) {
		return false
	}

	var httpErr rpc.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode >= 500
	}

	var netErr net.Error
	var urlErr *url.Error
	return errors.As(err, &netErr) ||
		errors.As(err, &urlErr) ||
		errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrUnexpectedEOF)
}

// redactURL drops credentials and query strings (API keys) before logging.
func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "<redacted>"
	}

	return u.Scheme + "://" + u.Host
}
