package transfer_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/ethereum/go-ethereum/core"
	"github.com/ethereum/go-ethereum/core/txpool"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/magic-wallet/internal/transfer"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		kind    transfer.Kind
		message string
	}{
		{
			name:    "insufficient funds sentinel",
			err:     errors.Wrap(core.ErrInsufficientFunds, "failed to send transaction"),
			kind:    transfer.KindInsufficientFunds,
			message: "Insufficient funds for this transfer (including gas fees)",
		},
		{
			name:    "insufficient funds over rpc",
			err:     errors.New("insufficient funds for gas * price + value: balance 0, tx cost 21000000000000"),
			kind:    transfer.KindInsufficientFunds,
			message: "Insufficient funds for this transfer (including gas fees)",
		},
		{
			name:    "insufficient funds for transfer during estimate",
			err:     errors.Wrap(errors.New("insufficient funds for transfer"), "failed to estimate gas"),
			kind:    transfer.KindInsufficientFunds,
			message: "Insufficient funds for this transfer (including gas fees)",
		},
		{
			name:    "replacement underpriced sentinel",
			err:     fmt.Errorf("send: %w", txpool.ErrReplaceUnderpriced),
			kind:    transfer.KindUnderpriced,
			message: "Transaction underpriced. Try increasing gas price.",
		},
		{
			name:    "underpriced over rpc",
			err:     errors.New("transaction underpriced: tip needed 1, tip permitted 0"),
			kind:    transfer.KindUnderpriced,
			message: "Transaction underpriced. Try increasing gas price.",
		},
		{
			name:    "fee cap below base fee",
			err:     errors.New("max fee per gas less than block base fee: address 0x0, maxFeePerGas: 1, baseFee: 7"),
			kind:    transfer.KindUnderpriced,
			message: "Transaction underpriced. Try increasing gas price.",
		},
		{
			name:    "nonce too low sentinel",
			err:     errors.Wrap(core.ErrNonceTooLow, "failed to send transaction"),
			kind:    transfer.KindNonceConflict,
			message: "Transaction nonce expired. Please try again.",
		},
		{
			name:    "nonce too high over rpc",
			err:     errors.New("nonce too high: next nonce 3, tx nonce 9"),
			kind:    transfer.KindNonceConflict,
			message: "Transaction nonce expired. Please try again.",
		},
		{
			name:    "already known",
			err:     errors.New("already known"),
			kind:    transfer.KindNonceConflict,
			message: "Transaction nonce expired. Please try again.",
		},
		{
			name:    "missing capability",
			err:     transfer.ErrCapabilityUnavailable,
			kind:    transfer.KindUnauthenticated,
			message: "Please sign in first to transfer ETH",
		},
		{
			name:    "context canceled",
			err:     errors.Wrap(context.Canceled, "waiting for transaction receipt"),
			kind:    transfer.KindProviderError,
			message: "Transfer failed: context canceled",
		},
		{
			name:    "anything else",
			err:     errors.Wrap(errors.New("connection reset by peer"), "failed to get chain ID"),
			kind:    transfer.KindProviderError,
			message: "Transfer failed: connection reset by peer",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			classified := transfer.Classify(tt.err)
			require.NotNil(t, classified)
			assert.Equal(t, tt.kind, classified.Kind)
			assert.Equal(t, tt.message, classified.Message)
			assert.ErrorIs(t, classified, tt.err)
		})
	}
}

func TestClassifyKeepsClassifiedErrors(t *testing.T) {
	original := &transfer.Error{Kind: transfer.KindInvalidAmount, Message: "Invalid amount"}

	assert.Same(t, original, transfer.Classify(errors.Wrap(original, "batch item 2")))
	assert.Nil(t, transfer.Classify(nil))
}
