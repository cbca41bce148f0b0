package transfer

import (
	"bytes"
	"encoding/json"
	"io"
	"os"

	"github.com/go-openapi/strfmt"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github/chapool/magic-wallet/internal/app"
	"github/chapool/magic-wallet/internal/config"
	"github/chapool/magic-wallet/internal/data/dto"
	"github/chapool/magic-wallet/internal/util/command"
)

func newBatch() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Sends a list of transfers one after another",
		Long: `Sends a list of transfers one after another, pausing TRANSFER_BATCH_PAUSE between them.
A failed transfer does not stop the batch.

The file holds either a JSON array of {"to", "amount", "memo"} objects or an object
with such an array under "transfers". Use - to read from stdin.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			batch, err := loadBatch(cmd.InOrStdin(), file)
			if err != nil {
				return err
			}

			cfg := config.DefaultServiceConfigFromEnv()

			ctx, cancel := command.ContextFromFlags(cmd, cfg.Transfer.Timeout)
			defer cancel()

			a, err := app.New(ctx, cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			outcomes := a.Orchestrator.BatchTransfer(ctx, batch.ToRequests())

			res := dto.NewBatchTransferResponse(outcomes)

			if err := command.PrintJSON(cmd, res); err != nil {
				return err
			}

			if res.Failed > 0 {
				return errors.Wrapf(ErrTransferFailed, "%d of %d transfers", res.Failed, len(outcomes))
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&file, fileFlag, "", "JSON file with the transfers, - for stdin")
	_ = cmd.MarkFlagRequired(fileFlag)

	return cmd
}

func loadBatch(stdin io.Reader, path string) (*dto.BatchTransferRequest, error) {
	var (
		raw []byte
		err error
	)

	if path == "-" {
		raw, err = io.ReadAll(stdin)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to read batch file")
	}

	batch := &dto.BatchTransferRequest{}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		err = json.Unmarshal(trimmed, &batch.Transfers)
	} else {
		err = json.Unmarshal(trimmed, batch)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse batch file")
	}

	if err := batch.Validate(strfmt.Default); err != nil {
		return nil, err
	}

	return batch, nil
}
