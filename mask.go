package scratch

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// CaptionStyle describes a generated card: a flat background with optional
// diagonal stripes and a centered one-line caption. A nil Background leaves
// the card transparent and a nil Foreground draws black text.
type CaptionStyle struct {
	Background color.Color
	Stripe     color.Color // nil for a plain background
	Foreground color.Color

	// Size is the font size in pixels. Zero picks a size from the card
	// height, shrunk until the caption fits the width.
	Size float64
}

// DefaultMaskStyle is silver foil with dark lettering.
var DefaultMaskStyle = CaptionStyle{
	Background: color.NRGBA{R: 0xb8, G: 0xb8, B: 0xc0, A: 0xff},
	Stripe:     color.NRGBA{R: 0xcc, G: 0xcc, B: 0xd4, A: 0xff},
	Foreground: color.NRGBA{R: 0x50, G: 0x50, B: 0x58, A: 0xff},
}

// PrizeStyle is the revealed layer hosts show under the mask.
var PrizeStyle = CaptionStyle{
	Background: color.NRGBA{R: 0xff, G: 0xf4, B: 0xd6, A: 0xff},
	Foreground: color.NRGBA{R: 0xc0, G: 0x30, B: 0x20, A: 0xff},
}

const stripeWidth = 8

var goRegular = sync.OnceValues(func() (*opentype.Font, error) {
	return opentype.Parse(goregular.TTF)
})

// NewCaptionMask renders an opaque width×height card with caption upper-cased
// and centered in Go Regular.
func NewCaptionMask(width, height int, caption string, style CaptionStyle) (*image.NRGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("scratch: caption mask %dx%d: %w", width, height, ErrInvalidDimension)
	}
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	if style.Background != nil {
		xdraw.Draw(img, img.Rect, image.NewUniform(style.Background), image.Point{}, xdraw.Src)
	}

	if style.Stripe != nil {
		stripe := color.NRGBAModel.Convert(style.Stripe).(color.NRGBA)
		for y := range height {
			for x := range width {
				if ((x+y)/stripeWidth)%2 == 0 {
					img.SetNRGBA(x, y, stripe)
				}
			}
		}
	}

	caption = cases.Upper(language.Und).String(caption)
	if caption == "" {
		return img, nil
	}
	if err := drawCaption(img, caption, style); err != nil {
		return nil, err
	}
	return img, nil
}

func drawCaption(img *image.NRGBA, caption string, style CaptionStyle) error {
	f, err := goRegular()
	if err != nil {
		return fmt.Errorf("scratch: parse font: %w", err)
	}
	width, height := img.Rect.Dx(), img.Rect.Dy()

	size := style.Size
	auto := size <= 0
	if auto {
		size = float64(height) * 0.3
	}
	face, err := newFace(f, size)
	if err != nil {
		return err
	}
	fg := style.Foreground
	if fg == nil {
		fg = color.Black
	}
	d := &font.Drawer{Dst: img, Src: image.NewUniform(fg), Face: face}

	advance := d.MeasureString(caption).Ceil()
	if limit := width * 9 / 10; auto && advance > limit && advance > 0 {
		_ = face.Close()
		face, err = newFace(f, size*float64(limit)/float64(advance))
		if err != nil {
			return err
		}
		d.Face = face
		advance = d.MeasureString(caption).Ceil()
	}
	defer func() { _ = face.Close() }()

	m := face.Metrics()
	x := (width - advance) / 2
	y := (height + m.Ascent.Ceil() - m.Descent.Ceil()) / 2
	d.Dot = fixed.P(x, y)
	d.DrawString(caption)
	return nil
}

func newFace(f *opentype.Font, size float64) (font.Face, error) {
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("scratch: font face: %w", err)
	}
	return face, nil
}
