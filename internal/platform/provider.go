package platform

import (
	"fmt"
	"runtime"
)

// Provider bundles all platform backends for the current OS.
type Provider struct {
	Executor      Executor
	Screenshotter Screenshotter
	Displays      DisplayInventory
}

// ErrUnsupported is returned on unsupported platforms.
var ErrUnsupported = fmt.Errorf("win-ctrl is not supported on %s/%s; supported: darwin/amd64, darwin/arm64", runtime.GOOS, runtime.GOARCH)

// ProviderOptions carries the executable names a platform backend should use.
type ProviderOptions struct {
	ScreencaptureBin  string
	SystemProfilerBin string
}

// NewProviderFunc is set by platform-specific packages via init().
// See internal/platform/darwin/init.go for the macOS registration.
var NewProviderFunc func(opts ProviderOptions) (*Provider, error)

// NewProvider returns a Provider for the current OS.
func NewProvider(opts ProviderOptions) (*Provider, error) {
	if NewProviderFunc == nil {
		return nil, ErrUnsupported
	}
	return NewProviderFunc(opts)
}
