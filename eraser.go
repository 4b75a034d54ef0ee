package scratch

import "math"

// Eraser computes the rectangles that clear a brush stroke from a raster
// surface. It holds no surface itself: every rectangle is handed to emit,
// which typically clears it and forwards it to a CoverageGrid.
type Eraser struct {
	// Radius is the brush radius in logical pixels.
	Radius float64

	// Gap is the largest distance between consecutive interpolation
	// rectangles along a diagonal segment.
	Gap float64

	// Bounds, when not empty, is the surface area. Diagonal walks skip the
	// stretches of a segment too far outside it for any rectangle to reach
	// it, so a wild sample costs no more than one crossing of the surface.
	Bounds Rect
}

// Disk emits a stack of horizontal strips approximating a filled disk of
// the brush radius around center, one strip per whole-pixel vertical offset.
// The strip at offset delta has half-width round(sqrt(r²-delta²)) and spans
// every row within ±delta, so the strips nest.
func (e Eraser) Disk(center Point, emit func(Rect)) {
	r := e.Radius
	for delta := 0.0; delta <= r; delta++ {
		hw := math.Round(math.Sqrt(r*r - delta*delta))
		emit(Rect{
			X: center.X - hw,
			Y: center.Y - delta,
			W: hw*2 + 1,
			H: delta*2 + 1,
		})
	}
}

// Segment emits the rectangles that join the brush footprints at from and
// to so fast pointer movement leaves no gaps. Axis-aligned segments are
// covered by a single band of brush diameter. Diagonal segments are walked
// in steps of Gap, stopping short of to, with one rectangle per step sized
// to the brush's footprint perpendicular to the stroke. It returns the
// number of rectangles emitted.
func (e Eraser) Segment(from, to Point, emit func(Rect)) int {
	r := e.Radius
	switch {
	case from == to:
		return 0
	case from.Y == to.Y:
		emit(Rect{X: min(from.X, to.X), Y: to.Y - r, W: math.Abs(to.X - from.X), H: r * 2})
		return 1
	case from.X == to.X:
		emit(Rect{X: to.X - r, Y: min(from.Y, to.Y), W: r * 2, H: math.Abs(to.Y - from.Y)})
		return 1
	}

	dx := math.Abs(to.X - from.X)
	dy := math.Abs(to.Y - from.Y)
	distance := math.Hypot(dx, dy)

	// The footprint half-extents follow from similar triangles:
	// r/distance == halfW/dy == halfH/dx.
	calHalfW := r / distance * dy
	calHalfH := r / distance * dx

	first, last := 1.0, math.Inf(1)
	if !e.Bounds.Empty() {
		// A rectangle reaches less than r+Gap past the segment, plus
		// rounding of its center and extents.
		pad := r + e.Gap + 2
		t0, t1, ok := clipSegment(from, to, Rect{
			X: e.Bounds.X - pad, Y: e.Bounds.Y - pad,
			W: e.Bounds.W + 2*pad, H: e.Bounds.H + 2*pad,
		})
		if !ok {
			return 0
		}
		first = max(first, math.Ceil(t0*distance/e.Gap))
		last = math.Floor(t1 * distance / e.Gap)
	}

	n := 0
	for k := first; k <= last; k++ {
		offset := k * e.Gap
		if offset >= distance {
			break
		}
		gap := min(e.Gap, distance-offset)
		halfW := max(calHalfW, gap/2)
		halfH := max(calHalfH, gap/2)

		hOffset := math.Round(offset / distance * dx)
		vOffset := math.Round(offset / distance * dy)
		if to.X < from.X {
			hOffset = -hOffset
		}
		if to.Y < from.Y {
			vOffset = -vOffset
		}

		cx := from.X + hOffset
		cy := from.Y + vOffset
		emit(Rect{
			X: cx - math.Round(halfW),
			Y: cy - math.Round(halfH),
			W: math.Round(2 * halfW),
			H: math.Round(2 * halfH),
		})
		n++
	}
	return n
}

// clipSegment returns the parameter range [t0, t1] of the segment from p0 to
// p1 that lies inside b, or ok == false when the segment misses b.
func clipSegment(p0, p1 Point, b Rect) (t0, t1 float64, ok bool) {
	dx, dy := p1.X-p0.X, p1.Y-p0.Y
	t0, t1 = 0, 1
	for _, edge := range [4][2]float64{
		{-dx, p0.X - b.X},
		{dx, b.X + b.W - p0.X},
		{-dy, p0.Y - b.Y},
		{dy, b.Y + b.H - p0.Y},
	} {
		p, q := edge[0], edge[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, false
			}
			continue
		}
		t := q / p
		if p < 0 {
			if t > t1 {
				return 0, 0, false
			}
			t0 = max(t0, t)
		} else {
			if t < t0 {
				return 0, 0, false
			}
			t1 = min(t1, t)
		}
	}
	return t0, t1, true
}
