package transfer

import (
	"context"
	"strings"

	"github.com/ethereum/go-ethereum/core"
	"github.com/ethereum/go-ethereum/core/txpool"
	"github.com/pkg/errors"
)

// Kind is the category of a failed transfer.
type Kind string

const (
	KindInvalidAddress    Kind = "InvalidAddress"
	KindInvalidAmount     Kind = "InvalidAmount"
	KindUnauthenticated   Kind = "Unauthenticated"
	KindInsufficientFunds Kind = "InsufficientFunds"
	KindUnderpriced       Kind = "Underpriced"
	KindNonceConflict     Kind = "NonceConflict"
	KindProviderError     Kind = "ProviderError"
)

var ErrCapabilityUnavailable = errors.New("no signing capability available")

// Error is a classified failure with the message shown to users.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func newError(kind Kind, cause error) *Error {
	return &Error{Kind: kind, Message: message(kind, cause), Cause: cause}
}

func message(kind Kind, cause error) string {
	switch kind {
	case KindInvalidAddress:
		return "Invalid recipient address"
	case KindInvalidAmount:
		return "Invalid amount"
	case KindUnauthenticated:
		return "Please sign in first to transfer ETH"
	case KindInsufficientFunds:
		return "Insufficient funds for this transfer (including gas fees)"
	case KindUnderpriced:
		return "Transaction underpriced. Try increasing gas price."
	case KindNonceConflict:
		return "Transaction nonce expired. Please try again."
	case KindProviderError:
	}

	if cause == nil {
		return "Transfer failed"
	}

	return "Transfer failed: " + rootMessage(cause)
}

// rootMessage drops the "failed to ..." wrapping added on the way up.
func rootMessage(err error) string {
	return errors.Cause(err).Error()
}

type rule struct {
	kind      Kind
	sentinels []error
	// fragments match errors that crossed JSON-RPC and lost their identity
	fragments []string
}

//nolint:gochecknoglobals
var rules = []rule{
	{
		kind:      KindInsufficientFunds,
		sentinels: []error{core.ErrInsufficientFunds, core.ErrInsufficientFundsForTransfer},
		fragments: []string{"insufficient funds", "insufficient balance"},
	},
	{
		kind:      KindUnderpriced,
		sentinels: []error{txpool.ErrUnderpriced, txpool.ErrReplaceUnderpriced, core.ErrFeeCapTooLow},
		fragments: []string{"underpriced", "max fee per gas less than block base fee", "fee cap less than block base fee"},
	},
	{
		kind:      KindNonceConflict,
		sentinels: []error{core.ErrNonceTooLow, core.ErrNonceTooHigh, txpool.ErrAlreadyKnown},
		fragments: []string{"nonce too low", "nonce too high", "nonce has already been used", "already known"},
	},
}

// Classify maps any error from the signing or network layer to a classified *Error.
// Already classified errors are returned unchanged.
func Classify(err error) *Error {
	if err == nil {
		return nil
	}

	var classified *Error
	if errors.As(err, &classified) {
		return classified
	}

	if errors.Is(err, ErrCapabilityUnavailable) {
		return newError(KindUnauthenticated, err)
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return newError(KindProviderError, err)
	}

	for _, r := range rules {
		for _, sentinel := range r.sentinels {
			if errors.Is(err, sentinel) {
				return newError(r.kind, err)
			}
		}
	}

	msg := strings.ToLower(err.Error())
	for _, r := range rules {
		for _, fragment := range r.fragments {
			if strings.Contains(msg, fragment) {
				return newError(r.kind, err)
			}
		}
	}

	return newError(KindProviderError, err)
}
