package focus

import (
	"context"
	"strconv"

	"github.com/mj1618/win-ctrl/internal/aerospace"
	"github.com/mj1618/win-ctrl/internal/apperr"
)

// ContentProfile gives comfortable widths for a kind of content, either in
// characters (with a character width) or directly in pixels.
type ContentProfile struct {
	MinChars       int
	OptimalChars   int
	MaxChars       int
	CharWidthPx    int
	MinWidthPx     int
	OptimalWidthPx int
	MaxWidthPx     int
}

// chromePx is added to character-based widths for window decorations.
const chromePx = 50

// OptimalWidth returns the preferred window width in pixels.
func (p ContentProfile) OptimalWidth() int {
	if p.OptimalChars > 0 {
		return p.OptimalChars*p.CharWidthPx + chromePx
	}
	return p.OptimalWidthPx
}

// ContentTypes lists the profile names in a stable order.
var ContentTypes = []string{"code_editor", "browser", "terminal", "document", "communication"}

// ContentProfiles holds the sizing table.
var ContentProfiles = map[string]ContentProfile{
	"code_editor":   {MinChars: 80, OptimalChars: 120, MaxChars: 140, CharWidthPx: 10},
	"browser":       {MinWidthPx: 1024, OptimalWidthPx: 1280, MaxWidthPx: 1400},
	"terminal":      {MinChars: 80, OptimalChars: 100, MaxChars: 120, CharWidthPx: 9},
	"document":      {MinChars: 50, OptimalChars: 70, MaxChars: 80, CharWidthPx: 10},
	"communication": {MinWidthPx: 350, OptimalWidthPx: 450, MaxWidthPx: 600},
}

// OptimalOptions configures ResizeOptimal.
type OptimalOptions struct {
	WindowID        *int
	ContentType     string
	MaxWidthPercent int
	MinWidthPercent int
}

// Dimensions reports the computed size. Height is never computed.
type Dimensions struct {
	Width                int  `yaml:"width"                  json:"width"`
	Height               *int `yaml:"height"                 json:"height"`
	OptimalCharsPerLine  *int `yaml:"optimal_chars_per_line" json:"optimal_chars_per_line"`
	ScreenWidth          int  `yaml:"screen_width"           json:"screen_width"`
	TargetPercentOfWidth int  `yaml:"target_percent"         json:"target_percent"`
}

// OptimalResult is returned by ResizeOptimal.
type OptimalResult struct {
	Success       bool       `yaml:"success"        json:"success"`
	WindowID      int        `yaml:"window_id"      json:"window_id"`
	ContentType   string     `yaml:"content_type"   json:"content_type"`
	NewDimensions Dimensions `yaml:"new_dimensions" json:"new_dimensions"`
}

// OptimalWidth clamps the profile's preferred width to [min%, max%] of
// screenWidth.
func OptimalWidth(p ContentProfile, screenWidth, minPercent, maxPercent int) int {
	maxPx := screenWidth * maxPercent / 100
	minPx := screenWidth * minPercent / 100
	return max(minPx, min(p.OptimalWidth(), maxPx))
}

// ResizeOptimal sizes a window for its content, relative to the primary
// display.
func (s *Service) ResizeOptimal(ctx context.Context, opts OptimalOptions) (OptimalResult, error) {
	if opts.ContentType == "" {
		opts.ContentType = "code_editor"
	}
	if opts.MaxWidthPercent == 0 {
		opts.MaxWidthPercent = 80
	}
	if opts.MinWidthPercent == 0 {
		opts.MinWidthPercent = 40
	}
	if err := aerospace.ValidateEnum("content_type", opts.ContentType, ContentTypes); err != nil {
		return OptimalResult{}, err
	}
	if err := validatePercents(opts.MinWidthPercent, opts.MaxWidthPercent); err != nil {
		return OptimalResult{}, err
	}

	w, err := s.wm.ResolveWindow(ctx, opts.WindowID)
	if err != nil {
		return OptimalResult{}, err
	}
	size, err := s.primaryScreen(ctx)
	if err != nil {
		return OptimalResult{}, err
	}

	profile := ContentProfiles[opts.ContentType]
	width := OptimalWidth(profile, size.Width, opts.MinWidthPercent, opts.MaxWidthPercent)

	if err := s.wm.FocusWindow(ctx, w.ID); err != nil {
		return OptimalResult{}, err
	}
	if err := s.wm.SetLayout(ctx, "h_tiles"); err != nil {
		return OptimalResult{}, err
	}
	if err := s.wm.Resize(ctx, "width", strconv.Itoa(width)); err != nil {
		return OptimalResult{}, err
	}

	dims := Dimensions{
		Width:                width,
		ScreenWidth:          size.Width,
		TargetPercentOfWidth: width * 100 / size.Width,
	}
	if profile.OptimalChars > 0 {
		chars := profile.OptimalChars
		dims.OptimalCharsPerLine = &chars
	}
	return OptimalResult{
		Success:       true,
		WindowID:      w.ID,
		ContentType:   opts.ContentType,
		NewDimensions: dims,
	}, nil
}

func validatePercents(minPct, maxPct int) error {
	switch {
	case minPct < 1 || minPct > 100:
		return apperr.Invalidf(apperr.Details{"parameter": "min_width_percent", "provided": minPct},
			"min_width_percent must be between 1 and 100, got %d", minPct)
	case maxPct < 1 || maxPct > 100:
		return apperr.Invalidf(apperr.Details{"parameter": "max_width_percent", "provided": maxPct},
			"max_width_percent must be between 1 and 100, got %d", maxPct)
	case minPct > maxPct:
		return apperr.Invalidf(apperr.Details{"min_width_percent": minPct, "max_width_percent": maxPct},
			"min_width_percent (%d) exceeds max_width_percent (%d)", minPct, maxPct)
	}
	return nil
}
