package platform

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Result is the captured outcome of an external process.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Size is a width/height pair in pixels.
type Size struct {
	Width  int `json:"width"  yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// Pixels returns width*height.
func (s Size) Pixels() int {
	return s.Width * s.Height
}

var sizePattern = regexp.MustCompile(`^\s*(\d+)\s*x\s*(\d+)`)

// ParseSize parses resolution strings such as "2560 x 1600 @ 60 Hz" or
// "3024 x 1964 Retina". Only the leading "<W> x <H>" is used.
func ParseSize(s string) (Size, bool) {
	m := sizePattern.FindStringSubmatch(s)
	if m == nil {
		return Size{}, false
	}
	w, _ := strconv.Atoi(m[1])
	h, _ := strconv.Atoi(m[2])
	return Size{Width: w, Height: h}, true
}

// SystemDisplay is one display as reported by the OS display inventory.
type SystemDisplay struct {
	Name       string
	Resolution Size  // Effective (UI) resolution; zero when unparseable
	Native     *Size // Backing pixel resolution, when reported
	IsBuiltin  bool
	IsMain     bool
}

// ImageFormat is a screenshot file format.
type ImageFormat string

const (
	FormatPNG  ImageFormat = "png"
	FormatJPG  ImageFormat = "jpg"
	FormatPDF  ImageFormat = "pdf"
	FormatTIFF ImageFormat = "tiff"
)

// ImageFormats lists the accepted format names, including aliases.
var ImageFormats = []string{"png", "jpg", "jpeg", "pdf", "tiff"}

// ParseImageFormat normalizes a user-supplied format name.
func ParseImageFormat(s string) (ImageFormat, error) {
	switch strings.ToLower(s) {
	case "png":
		return FormatPNG, nil
	case "jpg", "jpeg":
		return FormatJPG, nil
	case "pdf":
		return FormatPDF, nil
	case "tiff", "tif":
		return FormatTIFF, nil
	default:
		return "", fmt.Errorf("unknown image format: %q (expected png, jpg, pdf, or tiff)", s)
	}
}

// Extension returns the file extension including the leading dot.
func (f ImageFormat) Extension() string {
	return "." + string(f)
}

// MIMEType returns the media type for the format.
func (f ImageFormat) MIMEType() string {
	switch f {
	case FormatJPG:
		return "image/jpeg"
	case FormatPDF:
		return "application/pdf"
	case FormatTIFF:
		return "image/tiff"
	default:
		return "image/png"
	}
}

// ScreenshotOptions configures what to capture and where to write it.
type ScreenshotOptions struct {
	WindowID     int         // Capture window by system ID
	DisplayIndex int         // Capture display by 1-based index
	Format       ImageFormat // Output format
	OutputPath   string      // Destination file
	NoShadow     bool        // Omit the window shadow (window captures only)
}

// ExitError reports an external utility that ran but exited non-zero.
type ExitError struct {
	Command []string
	Code    int
	Stderr  string
}

func (e *ExitError) Error() string {
	msg := e.Stderr
	if msg == "" {
		msg = "no error output"
	}
	return fmt.Sprintf("%s exited with status %d: %s", e.Command[0], e.Code, msg)
}
