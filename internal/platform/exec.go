package platform

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
)

// OSExecutor runs processes with os/exec.
type OSExecutor struct{}

// Run implements Executor. Both output streams are trimmed of surrounding
// whitespace.
func (OSExecutor) Run(ctx context.Context, name string, args ...string) (Result, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := Result{
		Stdout: strings.TrimSpace(stdout.String()),
		Stderr: strings.TrimSpace(stderr.String()),
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
		return res, nil
	}
	if err != nil {
		return res, err
	}
	return res, nil
}
