package platform

import "context"

// Executor runs an external program and waits for it to exit.
type Executor interface {
	// Run executes name with args. A non-zero exit status is reported through
	// Result.ExitCode, not err; err is reserved for failures to start or wait
	// on the process (for example exec.ErrNotFound).
	Run(ctx context.Context, name string, args ...string) (Result, error)
}

// Screenshotter captures screenshots to files.
type Screenshotter interface {
	// CaptureWindow captures a single window by its system window ID.
	CaptureWindow(ctx context.Context, opts ScreenshotOptions) error

	// CaptureDisplay captures a whole display by its 1-based display index.
	CaptureDisplay(ctx context.Context, opts ScreenshotOptions) error
}

// DisplayInventory reports the physical displays known to the OS.
type DisplayInventory interface {
	// Displays returns the connected displays. Implementations are
	// best-effort: an unavailable inventory yields an empty slice.
	Displays(ctx context.Context) ([]SystemDisplay, error)
}
