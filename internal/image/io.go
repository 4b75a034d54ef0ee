// Package image decodes scratch card mask bitmaps.
//
// Raster formats (PNG, JPEG, GIF, WebP, BMP) go through the standard
// image.Decode registry; SVG documents are rasterized with oksvg.
package image

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register GIF
	_ "image/jpeg" // register JPEG
	_ "image/png"  // register PNG
	"io"
	"math"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	_ "golang.org/x/image/bmp"  // register BMP
	_ "golang.org/x/image/webp" // register WebP
)

// Decoding errors.
var (
	// ErrUnsupportedFormat is returned when the data is not a known format.
	ErrUnsupportedFormat = errors.New("image: unsupported format")

	// ErrEmptyData is returned when there is nothing to decode.
	ErrEmptyData = errors.New("image: empty data")
)

// FormatSVG is the format name reported for SVG documents.
const FormatSVG = "svg"

// sniffLen is how far into the data the SVG root element is searched for.
const sniffLen = 1024

// DecodeBytes decodes a raster image or an SVG document, auto-detecting the
// format. SVG documents are rasterized at their view box size.
func DecodeBytes(data []byte) (image.Image, string, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, "", ErrEmptyData
	}
	if IsSVG(data) {
		img, err := DecodeSVG(bytes.NewReader(data), 0, 0)
		if err != nil {
			return nil, "", err
		}
		return img, FormatSVG, nil
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if errors.Is(err, image.ErrFormat) {
		return nil, "", ErrUnsupportedFormat
	}
	if err != nil {
		return nil, "", fmt.Errorf("image: decode: %w", err)
	}
	return img, format, nil
}

// IsSVG reports whether data looks like an SVG document.
func IsSVG(data []byte) bool {
	head := bytes.TrimLeft(data, "\xef\xbb\xbf \t\r\n")
	if !bytes.HasPrefix(head, []byte("<")) {
		return false
	}
	if len(head) > sniffLen {
		head = head[:sniffLen]
	}
	return bytes.Contains(head, []byte("<svg"))
}

// DecodeSVG rasterizes an SVG document into a width×height RGBA image.
// A non-positive width or height selects the document's view box size.
func DecodeSVG(r io.Reader, width, height int) (*image.RGBA, error) {
	icon, err := oksvg.ReadIconStream(r, oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, fmt.Errorf("image: decode SVG: %w", err)
	}
	if width <= 0 || height <= 0 {
		width = int(math.Ceil(icon.ViewBox.W))
		height = int(math.Ceil(icon.ViewBox.H))
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("image: decode SVG: %w: no view box", ErrEmptyData)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	icon.SetTarget(0, 0, float64(width), float64(height))
	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(width, height, scanner), 1)
	return img, nil
}
