package cmd

import (
	"context"
	"os"
	"os/signal"
	"strings"

	"github.com/mj1618/win-ctrl/internal/apperr"
	"github.com/mj1618/win-ctrl/internal/output"
	"github.com/spf13/cobra"
)

// report prints v on success or the failure envelope on error. Failures
// return errReported so the process exits non-zero without printing twice.
func report(v any, err error) error {
	if err != nil {
		if perr := output.Print(apperr.Envelope(err)); perr != nil {
			return perr
		}
		return errReported
	}
	return output.Print(v)
}

// commandContext is cancelled on interrupt.
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(cmd.Context(), os.Interrupt)
}

// windowID returns the --window-id value, or nil when the flag was not set.
func windowID(cmd *cobra.Command) *int {
	return optionalInt(cmd, "window-id")
}

func optionalInt(cmd *cobra.Command, name string) *int {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, err := cmd.Flags().GetInt(name)
	if err != nil {
		return nil
	}
	return &v
}

// addWindowIDFlag registers --window-id on each command.
func addWindowIDFlag(cmds ...*cobra.Command) {
	for _, c := range cmds {
		c.Flags().Int("window-id", 0, "AeroSpace window ID (default: focused window)")
	}
}

// splitList splits a comma-separated flag value.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
