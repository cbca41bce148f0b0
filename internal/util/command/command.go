package command

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

// NewSubcommandGroup returns a command that only groups the given subcommands
// and prints its help when invoked on its own.
func NewSubcommandGroup(use string, subcommands ...*cobra.Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: use + " subcommands",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(subcommands...)

	return cmd
}

// Context returns a context cancelled on SIGINT/SIGTERM and, when timeout is positive,
// after timeout has elapsed.
func Context(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	if timeout <= 0 {
		return ctx, stop
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	return ctx, func() {
		cancel()
		stop()
	}
}

// TimeoutFlag is the persistent flag bounding a whole command run.
const TimeoutFlag = "timeout"

// ContextFromFlags returns Context bound to the --timeout flag of cmd. fallback applies
// when the flag is unset or zero.
func ContextFromFlags(cmd *cobra.Command, fallback time.Duration) (context.Context, context.CancelFunc) {
	timeout, err := cmd.Flags().GetDuration(TimeoutFlag)
	if err != nil || timeout <= 0 {
		timeout = fallback
	}

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}

	return Context(parent, timeout)
}

// PrintJSON writes v as indented JSON to the command's output.
func PrintJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}
