package capture

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"

	"github.com/mj1618/win-ctrl/internal/platform"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/tiff"
)

// Dimensions is the pixel size of a written capture. Both fields are nil
// when the file cannot be decoded (pdf).
type Dimensions struct {
	Width  *int `yaml:"width"  json:"width"`
	Height *int `yaml:"height" json:"height"`
}

func dimensionsOf(b image.Rectangle) Dimensions {
	w, h := b.Dx(), b.Dy()
	return Dimensions{Width: &w, Height: &h}
}

// raster reports whether format can be decoded and re-encoded in process.
func raster(f platform.ImageFormat) bool {
	return f != platform.FormatPDF
}

func decodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return img, nil
}

func encode(img image.Image, format platform.ImageFormat) ([]byte, error) {
	var buf bytes.Buffer
	var err error
	switch format {
	case platform.FormatJPG:
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality})
	case platform.FormatTIFF:
		err = tiff.Encode(&buf, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		err = png.Encode(&buf, img)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", format, err)
	}
	return buf.Bytes(), nil
}

const jpegQuality = 90

// downscale resizes img by factor (0 < factor < 1) with Catmull-Rom
// resampling. Sizes never drop below one pixel.
func downscale(img image.Image, factor float64) image.Image {
	b := img.Bounds()
	w := max(1, int(float64(b.Dx())*factor))
	h := max(1, int(float64(b.Dy())*factor))
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// toRGBA converts any image to RGBA.
func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(b)
	draw.Draw(rgba, b, img, b.Min, draw.Src)
	return rgba
}

// basicfont.Face7x13 metrics.
const (
	glyphWidth  = 7
	glyphHeight = 13
	bannerPad   = 4
)

var (
	bannerColor  = color.RGBA{A: 170}
	textColor    = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	outlineColor = color.RGBA{A: 200}
)

// label draws text on a translucent banner across the top-left of img.
func label(img image.Image, text string) *image.RGBA {
	rgba := toRGBA(img)
	b := rgba.Bounds()
	banner := image.Rect(b.Min.X, b.Min.Y,
		min(b.Max.X, b.Min.X+len(text)*glyphWidth+2*bannerPad),
		min(b.Max.Y, b.Min.Y+glyphHeight+2*bannerPad))
	draw.Draw(rgba, banner, image.NewUniform(bannerColor), image.Point{}, draw.Over)
	drawTextWithOutline(rgba, text, b.Min.X+bannerPad, b.Min.Y+bannerPad+glyphHeight-3)
	return rgba
}

// drawTextWithOutline draws text with its baseline at (x, y), outlined so
// it stays legible on any background.
func drawTextWithOutline(img *image.RGBA, text string, x, y int) {
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			drawString(img, text, x+dx, y+dy, outlineColor)
		}
	}
	drawString(img, text, x, y, textColor)
}

func drawString(img *image.RGBA, text string, x, y int, c color.Color) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	d.DrawString(text)
}
