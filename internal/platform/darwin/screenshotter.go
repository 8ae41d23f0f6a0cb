package darwin

import (
	"context"
	"fmt"
	"strconv"

	"github.com/mj1618/win-ctrl/internal/platform"
)

// DefaultScreencaptureBin is the macOS screenshot utility.
const DefaultScreencaptureBin = "screencapture"

// ScreencaptureScreenshotter implements platform.Screenshotter by running
// screencapture(1).
type ScreencaptureScreenshotter struct {
	exec platform.Executor
	bin  string
}

// NewScreenshotter creates a screenshotter. An empty bin selects
// DefaultScreencaptureBin.
func NewScreenshotter(exec platform.Executor, bin string) *ScreencaptureScreenshotter {
	if bin == "" {
		bin = DefaultScreencaptureBin
	}
	return &ScreencaptureScreenshotter{exec: exec, bin: bin}
}

// CaptureWindow captures one window by its CGWindowID.
func (s *ScreencaptureScreenshotter) CaptureWindow(ctx context.Context, opts platform.ScreenshotOptions) error {
	if opts.WindowID <= 0 {
		return fmt.Errorf("invalid window id %d", opts.WindowID)
	}
	args := []string{"-l", strconv.Itoa(opts.WindowID), "-t", string(format(opts))}
	if opts.NoShadow {
		args = append(args, "-o")
	}
	args = append(args, opts.OutputPath)
	return s.run(ctx, args)
}

// CaptureDisplay captures a display by its 1-based index.
func (s *ScreencaptureScreenshotter) CaptureDisplay(ctx context.Context, opts platform.ScreenshotOptions) error {
	index := opts.DisplayIndex
	if index <= 0 {
		index = 1
	}
	args := []string{"-D", strconv.Itoa(index), "-t", string(format(opts)), opts.OutputPath}
	return s.run(ctx, args)
}

func (s *ScreencaptureScreenshotter) run(ctx context.Context, args []string) error {
	res, err := s.exec.Run(ctx, s.bin, args...)
	if err != nil {
		return fmt.Errorf("failed to run %s: %w", s.bin, err)
	}
	if res.ExitCode != 0 {
		return &platform.ExitError{
			Command: append([]string{s.bin}, args...),
			Code:    res.ExitCode,
			Stderr:  res.Stderr,
		}
	}
	return nil
}

func format(opts platform.ScreenshotOptions) platform.ImageFormat {
	if opts.Format == "" {
		return platform.FormatPNG
	}
	return opts.Format
}
