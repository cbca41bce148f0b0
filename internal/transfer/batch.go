package transfer

import (
	"context"

	"github.com/google/uuid"
	"github/chapool/magic-wallet/internal/util"
)

// BatchTransfer runs the requests one after another, pausing between them, and returns
// one outcome per request in input order. A failed transfer never stops the batch. Once
// ctx is done the remaining requests fail without being sent.
func (o *Orchestrator) BatchTransfer(ctx context.Context, reqs []Request) []Outcome {
	log := util.LogFromContext(ctx).With().
		Str("batch_id", uuid.NewString()).
		Int("size", len(reqs)).
		Logger()
	ctx = log.WithContext(ctx)

	log.Info().Msg("Starting batch transfer")

	outcomes := make([]Outcome, 0, len(reqs))
	succeeded := 0
	for i, req := range reqs {
		itemLog := log.With().Int("index", i).Logger()

		var outcome Outcome
		if err := ctx.Err(); err != nil {
			outcome = o.fail(itemLog, OperationTransfer, Classify(err))
		} else {
			outcome = o.Transfer(itemLog.WithContext(ctx), req)
		}

		outcomes = append(outcomes, outcome)
		if outcome.Success {
			succeeded++
		}

		if i < len(reqs)-1 && ctx.Err() == nil {
			o.sleep(ctx, o.pause)
		}
	}

	log.Info().
		Int("succeeded", succeeded).
		Int("failed", len(reqs)-succeeded).
		Msg("Batch transfer finished")

	return outcomes
}
