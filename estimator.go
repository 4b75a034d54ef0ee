package scratch

// Estimator accounts for the round brush stamp on the coverage grid.
// Interpolation rectangles mark the grid directly; the stamp at each sample
// is a disk, so it goes through the nearest-corner test instead.
type Estimator struct {
	grid   *CoverageGrid
	radius float64
}

// Stamp marks the cells covered by a brush stamp at center.
func (e Estimator) Stamp(center Point) {
	e.grid.MarkCircle(center, e.radius)
}
