// Package app wires configuration, platform backends and the operation
// services into one value shared by the CLI and the MCP server.
package app

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/mj1618/win-ctrl/internal/actions"
	"github.com/mj1618/win-ctrl/internal/aerospace"
	"github.com/mj1618/win-ctrl/internal/capture"
	"github.com/mj1618/win-ctrl/internal/config"
	"github.com/mj1618/win-ctrl/internal/display"
	"github.com/mj1618/win-ctrl/internal/focus"
	"github.com/mj1618/win-ctrl/internal/logging"
	"github.com/mj1618/win-ctrl/internal/platform"
	"github.com/mj1618/win-ctrl/internal/preset"
)

// App holds every service an operation may need.
type App struct {
	Config   config.Config
	Log      *log.Logger
	WM       *aerospace.Client
	Displays *display.Service
	Actions  *actions.Service
	Capture  *capture.Service
	Focus    *focus.Service
	Presets  preset.Store

	closers []func() error
}

// New builds an App for the current OS. On platforms without a backend
// the AeroSpace commands still run through the OS executor; screenshots
// and the display inventory are unavailable.
func New(cfg config.Config, logger *log.Logger) (*App, error) {
	provider, err := platform.NewProvider(platform.ProviderOptions{
		ScreencaptureBin:  cfg.ScreencaptureBin,
		SystemProfilerBin: cfg.SystemProfilerBin,
	})
	if errors.Is(err, platform.ErrUnsupported) {
		if logger != nil {
			logger.Warn("platform backend unavailable; screenshots and display inventory disabled", "err", err)
		}
		provider, err = &platform.Provider{Executor: platform.OSExecutor{}}, nil
	}
	if err != nil {
		return nil, err
	}
	return NewWithProvider(cfg, logger, provider)
}

// NewWithProvider builds an App on an explicit provider.
func NewWithProvider(cfg config.Config, logger *log.Logger, provider *platform.Provider) (*App, error) {
	if logger == nil {
		logger = logging.Discard()
	}
	store, closer, err := openStore(cfg)
	if err != nil {
		return nil, err
	}

	wm := aerospace.New(provider.Executor,
		aerospace.WithBinary(cfg.AerospaceBin),
		aerospace.WithLogger(logger.WithPrefix("aerospace")))
	displays := display.NewService(wm, provider.Displays, logger.WithPrefix("display"))

	a := &App{
		Config:   cfg,
		Log:      logger,
		WM:       wm,
		Displays: displays,
		Actions:  actions.New(wm, logger.WithPrefix("actions")),
		Capture: capture.New(wm, provider.Screenshotter,
			capture.WithDir(cfg.CaptureDir),
			capture.WithLogger(logger.WithPrefix("capture"))),
		Focus: focus.NewService(wm, displays, store,
			focus.WithLogger(logger.WithPrefix("focus"))),
		Presets: store,
	}
	if closer != nil {
		a.closers = append(a.closers, closer)
	}
	logger.Debug("app ready", "preset_backend", cfg.PresetBackend, "config", cfg.Path)
	return a, nil
}

func openStore(cfg config.Config) (preset.Store, func() error, error) {
	switch cfg.PresetBackend {
	case config.BackendSQLite:
		s, err := preset.OpenSQLite(cfg.PresetDB)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open preset database %s: %w", cfg.PresetDB, err)
		}
		return s, s.Close, nil
	case config.BackendFile, "":
		return preset.NewFileStore(cfg.PresetDir), nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown preset backend %q", cfg.PresetBackend)
	}
}

// Close releases the preset store.
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c())
	}
	a.closers = nil
	return errors.Join(errs...)
}
