//go:build darwin

package darwin

import "github.com/mj1618/win-ctrl/internal/platform"

func init() {
	platform.NewProviderFunc = func(opts platform.ProviderOptions) (*platform.Provider, error) {
		exec := platform.OSExecutor{}
		return &platform.Provider{
			Executor:      exec,
			Screenshotter: NewScreenshotter(exec, opts.ScreencaptureBin),
			Displays:      NewDisplayInventory(exec, opts.SystemProfilerBin),
		}, nil
	}
}
