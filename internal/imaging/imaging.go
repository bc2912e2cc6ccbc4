// Package imaging decodes user-supplied images and camera frames, scales
// them, encodes them as data URLs, and renders them as terminal half-block
// art.
package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	_ "golang.org/x/image/bmp" // register BMP decoder
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register WebP decoder

	apperrors "github.com/Iron-Ham/townreport/internal/errors"
)

// SVGRasterSize is the edge length SVG files are rasterized to.
const SVGRasterSize = 256

// SupportedExtensions lists file extensions the decoder accepts.
func SupportedExtensions() []string {
	return []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".webp", ".svg"}
}

// IsSupported reports whether path has a decodable extension.
func IsSupported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range SupportedExtensions() {
		if e == ext {
			return true
		}
	}
	return false
}

// LoadFile reads and decodes the image at path.
func LoadFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	return Decode(f, path)
}

// Decode decodes r. The name's extension selects SVG rasterization;
// everything else goes through the registered image decoders.
func Decode(r io.Reader, name string) (image.Image, error) {
	if strings.EqualFold(filepath.Ext(name), ".svg") {
		return decodeSVG(r)
	}

	img, _, err := image.Decode(r)
	if err != nil {
		if err == image.ErrFormat {
			return nil, apperrors.Wrapf(apperrors.ErrUnsupportedFormat, "decode %s", filepath.Base(name))
		}
		return nil, fmt.Errorf("failed to decode %s: %w", filepath.Base(name), err)
	}
	return img, nil
}

func decodeSVG(r io.Reader) (image.Image, error) {
	icon, err := oksvg.ReadIconStream(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse svg: %w", err)
	}

	w, h := SVGRasterSize, SVGRasterSize
	if icon.ViewBox.W > 0 && icon.ViewBox.H > 0 {
		h = int(float64(w) * icon.ViewBox.H / icon.ViewBox.W)
		if h <= 0 {
			h = 1
		}
	}
	icon.SetTarget(0, 0, float64(w), float64(h))

	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, rgba, rgba.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1.0)
	return rgba, nil
}

// Scale resizes img to exactly w x h pixels.
func Scale(img image.Image, w, h int) *image.RGBA {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	return dst
}

// DataURL encodes img as a PNG data URL.
func DataURL(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("failed to encode png: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// RenderBlocks renders img into cols x rows terminal cells. Each cell is an
// upper half block whose foreground is the top pixel and background the
// bottom pixel, so the image is sampled at cols x 2*rows.
func RenderBlocks(img image.Image, cols, rows int) string {
	if img == nil || cols <= 0 || rows <= 0 {
		return ""
	}
	px := Scale(img, cols, rows*2)

	var b strings.Builder
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			top := px.RGBAAt(x, 2*y)
			bottom := px.RGBAAt(x, 2*y+1)
			b.WriteString(lipgloss.NewStyle().
				Foreground(hexColor(top)).
				Background(hexColor(bottom)).
				Render("▀"))
		}
		if y < rows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func hexColor(c color.RGBA) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}
