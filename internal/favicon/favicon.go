package favicon

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"image"
	"image/color"
	"strings"
	"sync"

	_ "image/jpeg"
	_ "image/png"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/draw"
	"golang.org/x/image/font/gofont/gobold"
)

const (
	DefaultSize  = 32
	DefaultColor = "#2563EB"
	DefaultGlyph = "A"

	maxSize = 1024
)

type Options struct {
	Size  int
	Color string
	Glyph string
}

func (o Options) withDefaults() Options {
	if o.Size <= 0 {
		o.Size = DefaultSize
	}
	if strings.TrimSpace(o.Color) == "" {
		o.Color = DefaultColor
	}
	if strings.TrimSpace(o.Glyph) == "" {
		o.Glyph = DefaultGlyph
	}
	return o
}

var (
	fontOnce sync.Once
	boldFont *truetype.Font
	fontErr  error
)

func loadBold() (*truetype.Font, error) {
	fontOnce.Do(func() {
		boldFont, fontErr = truetype.Parse(gobold.TTF)
	})
	return boldFont, fontErr
}

// Generate draws the site mark: a rounded square in the brand color with a
// centered white glyph, encoded as PNG. Output depends only on opts.
func Generate(opts Options) (bytes.Buffer, error) {
	var buf bytes.Buffer
	opts = opts.withDefaults()
	if opts.Size > maxSize {
		return buf, fmt.Errorf("favicon size %d exceeds %d", opts.Size, maxSize)
	}
	bg, err := ParseHexColor(opts.Color)
	if err != nil {
		return buf, err
	}
	f, err := loadBold()
	if err != nil {
		return buf, fmt.Errorf("parse font: %w", err)
	}

	size := float64(opts.Size)
	dc := gg.NewContext(opts.Size, opts.Size)

	dc.DrawRoundedRectangle(0, 0, size, size, size*0.22)
	dc.SetColor(bg)
	dc.Fill()

	dc.SetFontFace(truetype.NewFace(f, &truetype.Options{Size: size * 0.62, DPI: 72}))
	dc.SetColor(color.White)
	dc.DrawStringAnchored(opts.Glyph, size/2, size/2, 0.5, 0.35)

	if err := dc.EncodePNG(&buf); err != nil {
		return buf, fmt.Errorf("encode png: %w", err)
	}
	return buf, nil
}

// Resize decodes a PNG or JPEG, center-crops it to a square and scales it to
// size x size.
func Resize(raw []byte, size int) (bytes.Buffer, error) {
	var out bytes.Buffer
	if size <= 0 || size > maxSize {
		return out, fmt.Errorf("invalid favicon size %d", size)
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return out, fmt.Errorf("decode image: %w", err)
	}

	b := img.Bounds()
	side := b.Dx()
	if b.Dy() < side {
		side = b.Dy()
	}
	if side == 0 {
		return out, fmt.Errorf("decode image: empty bounds")
	}
	x0 := b.Min.X + (b.Dx()-side)/2
	y0 := b.Min.Y + (b.Dy()-side)/2

	cropRect := image.Rect(0, 0, side, side)
	cropped := image.NewRGBA(cropRect)
	draw.Draw(cropped, cropRect, img, image.Point{X: x0, Y: y0}, draw.Src)

	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(dst, dst.Bounds(), cropped, cropped.Bounds(), draw.Over, nil)

	dc := gg.NewContextForRGBA(dst)
	if err := dc.EncodePNG(&out); err != nil {
		return out, fmt.Errorf("encode png: %w", err)
	}
	return out, nil
}

// ParseHexColor accepts "#RRGGBB" or "RRGGBB", case-insensitive.
func ParseHexColor(s string) (color.NRGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: expected 6 hex chars", s)
	}
	raw, err := hex.DecodeString(s)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.NRGBA{R: raw[0], G: raw[1], B: raw[2], A: 0xff}, nil
}
