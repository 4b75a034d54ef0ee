package scratch

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"

	xdraw "golang.org/x/image/draw"
)

// Pixmap is an in-memory Surface backed by a non-premultiplied RGBA buffer.
// Its logical size is what sessions see; the backing buffer is larger by
// the device scale factor, mirroring a high-density display canvas.
type Pixmap struct {
	width, height int // logical
	scale         float64
	img           *image.NRGBA
}

// NewPixmap creates a fully transparent pixmap with one device pixel per
// logical pixel.
func NewPixmap(width, height int) *Pixmap {
	return NewScaledPixmap(width, height, 1)
}

// NewScaledPixmap creates a fully transparent pixmap of the given logical
// size whose buffer holds scale device pixels per logical pixel.
// Non-positive scales are treated as 1.
func NewScaledPixmap(width, height int, scale float64) *Pixmap {
	if !(scale > 0) {
		scale = 1
	}
	width, height = max(width, 0), max(height, 0)
	dw := int(math.Ceil(float64(width) * scale))
	dh := int(math.Ceil(float64(height) * scale))
	return &Pixmap{
		width:  width,
		height: height,
		scale:  scale,
		img:    image.NewNRGBA(image.Rect(0, 0, dw, dh)),
	}
}

// Width returns the logical width.
func (p *Pixmap) Width() int { return p.width }

// Height returns the logical height.
func (p *Pixmap) Height() int { return p.height }

// Scale returns the device pixels per logical pixel.
func (p *Pixmap) Scale() float64 { return p.scale }

// deviceRect converts a logical rectangle to device pixels, clipped to the
// buffer.
func (p *Pixmap) deviceRect(x, y, w, h float64) image.Rectangle {
	r := image.Rect(
		int(math.Round(x*p.scale)),
		int(math.Round(y*p.scale)),
		int(math.Round((x+w)*p.scale)),
		int(math.Round((y+h)*p.scale)),
	)
	return r.Intersect(p.img.Rect)
}

// Fill paints every pixel with c.
func (p *Pixmap) Fill(c color.Color) {
	xdraw.Draw(p.img, p.img.Rect, image.NewUniform(c), image.Point{}, xdraw.Src)
}

// Clear makes every pixel transparent.
func (p *Pixmap) Clear() {
	clear(p.img.Pix)
}

// ClearRect makes the pixels inside the logical rectangle transparent.
func (p *Pixmap) ClearRect(x, y, w, h float64) {
	if !(w > 0) || !(h > 0) {
		return
	}
	r := p.deviceRect(x, y, w, h)
	if r.Empty() {
		return
	}
	for row := r.Min.Y; row < r.Max.Y; row++ {
		start := p.img.PixOffset(r.Min.X, row)
		clear(p.img.Pix[start : start+4*r.Dx()])
	}
}

// DrawImage composites img over the logical rectangle, scaling it with
// Catmull-Rom when the sizes differ.
func (p *Pixmap) DrawImage(img image.Image, x, y, w, h float64) {
	if img == nil || !(w > 0) || !(h > 0) {
		return
	}
	dst := image.Rect(
		int(math.Round(x*p.scale)),
		int(math.Round(y*p.scale)),
		int(math.Round((x+w)*p.scale)),
		int(math.Round((y+h)*p.scale)),
	)
	src := img.Bounds()
	if dst.Dx() == src.Dx() && dst.Dy() == src.Dy() {
		xdraw.Draw(p.img, dst, img, src.Min, xdraw.Over)
		return
	}
	xdraw.CatmullRom.Scale(p.img, dst, img, src, xdraw.Over, nil)
}

// AlphaAt returns the alpha of the device pixel at (x, y), or 0 outside.
func (p *Pixmap) AlphaAt(x, y int) uint8 {
	if !(image.Point{X: x, Y: y}.In(p.img.Rect)) {
		return 0
	}
	return p.img.Pix[p.img.PixOffset(x, y)+3]
}

// ClearedRatio returns the exact fraction of fully transparent device
// pixels. Sessions never call it; it is the ground truth the coverage grid
// approximates.
func (p *Pixmap) ClearedRatio() float64 {
	n := len(p.img.Pix) / 4
	if n == 0 {
		return 0
	}
	cleared := 0
	for i := 3; i < len(p.img.Pix); i += 4 {
		if p.img.Pix[i] == 0 {
			cleared++
		}
	}
	return float64(cleared) / float64(n)
}

// SavePNG writes the device pixels to a PNG file.
func (p *Pixmap) SavePNG(path string) error {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("scratch: create file: %w", err)
	}
	if err := png.Encode(f, p.img); err != nil {
		_ = f.Close()
		return fmt.Errorf("scratch: encode PNG: %w", err)
	}
	return f.Close()
}

// At implements the image.Image interface in device pixels.
func (p *Pixmap) At(x, y int) color.Color { return p.img.At(x, y) }

// Bounds implements the image.Image interface in device pixels.
func (p *Pixmap) Bounds() image.Rectangle { return p.img.Rect }

// ColorModel implements the image.Image interface.
func (p *Pixmap) ColorModel() color.Model { return color.NRGBAModel }
