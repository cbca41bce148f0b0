package transfer

import (
	"context"
	"math/big"
	"time"

	"github.com/dropbox/godropbox/time2"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/rs/zerolog"
	"github/chapool/magic-wallet/internal/units"
	"github/chapool/magic-wallet/internal/util"
	"github/chapool/magic-wallet/internal/wallet/address"
	"github/chapool/magic-wallet/internal/wallet/signer"
)

const DefaultBatchPause = 2 * time.Second

const (
	OperationTransfer = "transfer"
	OperationSubmit   = "submit"
)

// Recorder receives one observation per finished submission. result is "success" or the
// failure kind; confirmation is zero unless a receipt was obtained.
type Recorder interface {
	ObserveOutcome(operation string, result string, confirmation time.Duration)
}

type noopRecorder struct{}

func (noopRecorder) ObserveOutcome(string, string, time.Duration) {}

type Option func(*Orchestrator)

func WithClock(clock time2.Clock) Option {
	return func(o *Orchestrator) {
		o.clock = clock
	}
}

// WithBatchPause sets the pause between consecutive batch transfers.
func WithBatchPause(d time.Duration) Option {
	return func(o *Orchestrator) {
		if d >= 0 {
			o.pause = d
		}
	}
}

func WithRecorder(r Recorder) Option {
	return func(o *Orchestrator) {
		if r != nil {
			o.recorder = r
		}
	}
}

// Orchestrator validates, prices, submits and confirms transactions for one signer.
// It holds no mutable state; a nil signer makes every operation fail as unauthenticated.
type Orchestrator struct {
	signer   signer.Signer
	clock    time2.Clock
	pause    time.Duration
	sleep    func(ctx context.Context, d time.Duration)
	recorder Recorder
}

func New(s signer.Signer, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		signer:   s,
		clock:    time2.DefaultClock,
		pause:    DefaultBatchPause,
		sleep:    sleepContext,
		recorder: noopRecorder{},
	}
	for _, opt := range opts {
		opt(o)
	}

	return o
}

// Signer returns the bound signing capability, nil if none.
//
//nolint:ireturn
func (o *Orchestrator) Signer() signer.Signer {
	return o.signer
}

// Transfer sends req.Amount ether to req.To and waits for the receipt. Invalid input is
// rejected before any network call; network failures are classified, never retried.
func (o *Orchestrator) Transfer(ctx context.Context, req Request) Outcome {
	log := util.LogFromContext(ctx).With().
		Str("to", req.To).
		Str("amount", req.Amount).
		Logger()
	if req.Memo != "" {
		log = log.With().Str("memo", req.Memo).Logger()
	}

	if o.signer == nil {
		return o.fail(log, OperationTransfer, newError(KindUnauthenticated, ErrCapabilityUnavailable))
	}

	to, ok := address.Parse(req.To)
	if !ok {
		return o.fail(log, OperationTransfer, newError(KindInvalidAddress, nil))
	}

	value, err := units.ParsePositiveEther(req.Amount)
	if err != nil {
		return o.fail(log, OperationTransfer, newError(KindInvalidAmount, err))
	}

	return o.submit(log.WithContext(ctx), log, OperationTransfer, Call{
		To:       to,
		Value:    value,
		GasLimit: req.GasLimit,
		GasPrice: req.GasPrice,
	})
}

// Submit runs a prepared call through the same estimate, price, send, wait pipeline as
// Transfer. The call is not validated beyond the signer being present.
func (o *Orchestrator) Submit(ctx context.Context, call Call) Outcome {
	log := util.LogFromContext(ctx).With().
		Str("to", call.To.Hex()).
		Int("data_len", len(call.Data)).
		Logger()

	if o.signer == nil {
		return o.fail(log, OperationSubmit, newError(KindUnauthenticated, ErrCapabilityUnavailable))
	}

	return o.submit(log.WithContext(ctx), log, OperationSubmit, call)
}

func (o *Orchestrator) submit(ctx context.Context, log zerolog.Logger, operation string, call Call) Outcome {
	p := o.signer.Provider()

	network, err := p.Network(ctx)
	if err != nil {
		return o.fail(log, operation, Classify(err))
	}
	log.Debug().
		Str("network", network.Name).
		Str("chain_id", network.ChainID.String()).
		Msg("Submitting transaction")

	value := call.Value
	if value == nil {
		value = new(big.Int)
	}

	gasLimit := call.GasLimit
	if gasLimit == 0 {
		to := call.To
		gasLimit, err = p.EstimateGas(ctx, ethereum.CallMsg{
			From:  o.signer.Address(),
			To:    &to,
			Value: value,
			Data:  call.Data,
		})
		if err != nil {
			return o.fail(log, operation, Classify(err))
		}
	}

	gasPrice := call.GasPrice
	if gasPrice == nil {
		fees, err := p.FeeData(ctx)
		if err != nil {
			return o.fail(log, operation, Classify(err))
		}
		gasPrice = fees.GasPrice
	}

	to := call.To
	pending, err := o.signer.SendTransaction(ctx, signer.TxSpec{
		To:       &to,
		Value:    value,
		Data:     call.Data,
		GasLimit: gasLimit,
		GasPrice: gasPrice,
	})
	if err != nil {
		return o.fail(log, operation, Classify(err))
	}

	submittedAt := o.clock.Now()
	log = log.With().Str("tx_hash", pending.Hash().Hex()).Logger()
	log.Info().
		Uint64("gas_limit", gasLimit).
		Str("gas_price", gasPrice.String()).
		Msg("Transaction sent, waiting for confirmation")

	receipt, err := pending.Wait(ctx)
	if err != nil {
		outcome := o.fail(log, operation, Classify(err))
		outcome.SubmittedAt = submittedAt
		return outcome
	}

	confirmedAt := o.clock.Now()

	if receipt.Status != types.ReceiptStatusSuccessful {
		event := log.Warn().Uint64("gas_used", receipt.GasUsed)
		if receipt.BlockNumber != nil {
			event = event.Uint64("block_number", receipt.BlockNumber.Uint64())
		}
		if fee := (Outcome{Receipt: receipt}).Fee(); fee != nil {
			event = event.Str("fee", fee.String())
		}
		event.Msg("Transaction reverted")

		outcome := o.fail(log, operation, &Error{
			Kind:    KindProviderError,
			Message: "Transfer failed: transaction " + receipt.TxHash.Hex() + " reverted",
		})
		outcome.SubmittedAt = submittedAt
		outcome.ConfirmedAt = confirmedAt
		return outcome
	}

	log.Info().
		Uint64("block_number", receipt.BlockNumber.Uint64()).
		Uint64("gas_used", receipt.GasUsed).
		Msg("Transaction confirmed")
	o.recorder.ObserveOutcome(operation, "success", confirmedAt.Sub(submittedAt))

	return Outcome{
		Success:     true,
		TxHash:      receipt.TxHash,
		Receipt:     receipt,
		SubmittedAt: submittedAt,
		ConfirmedAt: confirmedAt,
	}
}

func (o *Orchestrator) fail(log zerolog.Logger, operation string, classified *Error) Outcome {
	event := log.Warn().Str("kind", string(classified.Kind))
	if classified.Cause != nil {
		event = event.Err(classified.Cause)
	}
	event.Msg(classified.Message)

	o.recorder.ObserveOutcome(operation, string(classified.Kind), 0)

	return Outcome{
		Kind:  classified.Kind,
		Error: classified.Message,
	}
}

// CurrentBalance returns the signer's balance as a decimal ether string.
func (o *Orchestrator) CurrentBalance(ctx context.Context) (string, error) {
	if o.signer == nil {
		return "", ErrCapabilityUnavailable
	}

	balance, err := o.signer.Provider().BalanceAt(ctx, o.signer.Address())
	if err != nil {
		return "", err
	}

	return units.FormatEther(balance), nil
}

// EstimateTotalCost estimates gas for the transfer shape and prices it at the current
// gas price. Nothing is cached or sent.
func (o *Orchestrator) EstimateTotalCost(ctx context.Context, to string, amount string) (*CostEstimate, error) {
	if o.signer == nil {
		return nil, ErrCapabilityUnavailable
	}

	toAddress, ok := address.Parse(to)
	if !ok {
		return nil, newError(KindInvalidAddress, nil)
	}

	value, err := units.ParsePositiveEther(amount)
	if err != nil {
		return nil, newError(KindInvalidAmount, err)
	}

	p := o.signer.Provider()

	gasUnits, err := p.EstimateGas(ctx, ethereum.CallMsg{
		From:  o.signer.Address(),
		To:    &toAddress,
		Value: value,
	})
	if err != nil {
		return nil, err
	}

	fees, err := p.FeeData(ctx)
	if err != nil {
		return nil, err
	}

	gasFee := new(big.Int).Mul(new(big.Int).SetUint64(gasUnits), fees.GasPrice)

	return &CostEstimate{
		Amount:   value,
		GasUnits: gasUnits,
		GasPrice: fees.GasPrice,
		GasFee:   gasFee,
		Total:    new(big.Int).Add(value, gasFee),
	}, nil
}

func sleepContext(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
