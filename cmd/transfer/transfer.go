package transfer

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github/chapool/magic-wallet/internal/util/command"
)

const (
	toFlag           = "to"
	amountFlag       = "amount"
	gasLimitFlag     = "gas-limit"
	gasPriceGweiFlag = "gas-price-gwei"
	memoFlag         = "memo"
	fileFlag         = "file"
)

// ErrTransferFailed makes the process exit non-zero after the failed outcome was printed.
var ErrTransferFailed = errors.New("transfer failed")

func New() *cobra.Command {
	return command.NewSubcommandGroup("transfer",
		newSend(),
		newBatch(),
		newEstimate(),
	)
}
