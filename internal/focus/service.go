// Package focus arranges windows around the current display configuration:
// focus presets, named zones, content-aware sizing and bulk relocation of
// application categories.
package focus

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mj1618/win-ctrl/internal/aerospace"
	"github.com/mj1618/win-ctrl/internal/display"
	"github.com/mj1618/win-ctrl/internal/platform"
	"github.com/mj1618/win-ctrl/internal/preset"
)

// Screen size assumed when the primary display's resolution is unknown.
const (
	defaultScreenWidth  = 1920
	defaultScreenHeight = 1080
)

// Displays reports the current display descriptors.
type Displays interface {
	Displays(ctx context.Context) ([]display.Descriptor, error)
}

// Service implements the focus operations.
type Service struct {
	wm       *aerospace.Client
	displays Displays
	store    preset.Store
	log      *log.Logger
	now      func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// WithClock overrides the time source used for preset timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a Service.
func NewService(wm *aerospace.Client, displays Displays, store preset.Store, opts ...Option) *Service {
	s := &Service{
		wm:       wm,
		displays: displays,
		store:    store,
		log:      log.New(io.Discard),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// category classifies the current display configuration.
func (s *Service) category(ctx context.Context) (display.Category, []display.Descriptor, error) {
	displays, err := s.displays.Displays(ctx)
	if err != nil {
		return "", nil, err
	}
	c, _ := display.Classify(displays)
	return c, displays, nil
}

// screen returns the effective size of d, falling back to 1920x1080.
func screen(d display.Descriptor, ok bool) platform.Size {
	size := d.EffectiveResolution
	if size.Width <= 0 {
		size = d.Resolution
	}
	if !ok || size.Width <= 0 || size.Height <= 0 {
		return platform.Size{Width: defaultScreenWidth, Height: defaultScreenHeight}
	}
	return size
}

func (s *Service) primaryScreen(ctx context.Context) (platform.Size, error) {
	displays, err := s.displays.Displays(ctx)
	if err != nil {
		return platform.Size{}, err
	}
	d, ok := display.Primary(displays)
	return screen(d, ok), nil
}

// pixels converts a percentage of total into a whole pixel count.
func pixels(total int, percent float64) int {
	return int(float64(total) * percent / 100)
}

// signed formats a relative resize amount.
func signed(n int) string {
	if n >= 0 {
		return "+" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

// focusThen focuses a window and runs fn with it focused.
func (s *Service) focusThen(ctx context.Context, id int, fn func() error) error {
	if err := s.wm.FocusWindow(ctx, id); err != nil {
		return err
	}
	if fn == nil {
		return nil
	}
	return fn()
}

func (s *Service) logSkips(op string, skipped []SkippedWindow) {
	for _, sk := range skipped {
		s.log.Warn(fmt.Sprintf("%s: skipped window", op), "window_id", sk.WindowID, "app", sk.AppName, "reason", sk.Reason)
	}
}
