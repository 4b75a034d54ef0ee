package scratch

import (
	"context"
	"image"
)

// Surface is the mutable raster the mask is drawn on. All coordinates are
// logical pixels, the same space pointer samples arrive in; any device
// pixel ratio is the surface's own business.
type Surface interface {
	// Width and Height return the logical size.
	Width() int
	Height() int

	// ClearRect makes every pixel inside the rectangle fully transparent.
	// Rectangles reaching outside the surface are clipped.
	ClearRect(x, y, w, h float64)

	// DrawImage draws img scaled into the given rectangle.
	DrawImage(img image.Image, x, y, w, h float64)
}

// ImageLoader fetches and decodes a mask bitmap.
type ImageLoader interface {
	// Load returns the bitmap for source, a local path or a remote URL.
	Load(ctx context.Context, source string) (image.Image, error)
}
