package scratch

import (
	"fmt"
	"math"
)

// CoverageGrid is a boolean matrix laid over the surface. A cell is set once
// the brush is considered to have erased the region it covers. The grid is
// independent of rendering: it only ever sees geometry.
//
// Each cell is ErasePointRadius/ErasingCellScale logical pixels square.
// Marked cells are counted as they flip, so ErasedRatio is O(1).
//
// A CoverageGrid is not safe for concurrent use.
type CoverageGrid struct {
	radius float64
	scale  int

	cols, rows int
	cells      []bool // row-major
	marked     int
}

// NewCoverageGrid returns an empty grid whose cells are radius/scale pixels
// square. Call Reset to allocate cells.
func NewCoverageGrid(radius float64, scale int) *CoverageGrid {
	return &CoverageGrid{radius: radius, scale: scale}
}

// gridSize returns the grid dimensions for a surface of the given logical
// size: one radius-sized step per ceil(size/radius), subdivided scale times.
func gridSize(width, height int, cfg Config) (cols, rows int) {
	cols = int(math.Ceil(float64(width)/cfg.ErasePointRadius)) * cfg.ErasingCellScale
	rows = int(math.Ceil(float64(height)/cfg.ErasePointRadius)) * cfg.ErasingCellScale
	return cols, rows
}

// Reset allocates a cols×rows grid with every cell unmarked.
func (g *CoverageGrid) Reset(cols, rows int) error {
	if cols <= 0 || rows <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimension, cols, rows)
	}
	n := cols * rows
	if cap(g.cells) >= n {
		g.cells = g.cells[:n]
		clear(g.cells)
	} else {
		g.cells = make([]bool, n)
	}
	g.cols, g.rows = cols, rows
	g.marked = 0
	return nil
}

// drop releases all cells, leaving an empty grid.
func (g *CoverageGrid) drop() {
	g.cells = g.cells[:0]
	g.cols, g.rows = 0, 0
	g.marked = 0
}

// Cols returns the number of cells per row.
func (g *CoverageGrid) Cols() int { return g.cols }

// Rows returns the number of rows.
func (g *CoverageGrid) Rows() int { return g.rows }

// Len returns the total number of cells.
func (g *CoverageGrid) Len() int { return len(g.cells) }

// MarkedCount returns the number of marked cells.
func (g *CoverageGrid) MarkedCount() int { return g.marked }

// Marked reports whether the cell at (col, row) is marked.
// Cells outside the grid are never marked.
func (g *CoverageGrid) Marked(col, row int) bool {
	if !g.inBounds(col, row) {
		return false
	}
	return g.cells[row*g.cols+col]
}

func (g *CoverageGrid) inBounds(col, row int) bool {
	return col >= 0 && col < g.cols && row >= 0 && row < g.rows
}

func (g *CoverageGrid) mark(col, row int) {
	i := row*g.cols + col
	if !g.cells[i] {
		g.cells[i] = true
		g.marked++
	}
}

// toCells converts a logical length into cell units.
func (g *CoverageGrid) toCells(v float64) float64 {
	return v * float64(g.scale) / g.radius
}

// MarkRect marks every cell touched by the rectangle with the given top-left
// corner and extent. The origin is floored and the extent ceiled in cell
// space; whatever falls outside the grid is dropped.
func (g *CoverageGrid) MarkRect(topLeft Point, w, h float64) {
	if len(g.cells) == 0 || !(w > 0) || !(h > 0) {
		return
	}
	col0 := int(math.Floor(g.toCells(topLeft.X)))
	row0 := int(math.Floor(g.toCells(topLeft.Y)))
	col1 := col0 + int(math.Ceil(g.toCells(w)))
	row1 := row0 + int(math.Ceil(g.toCells(h)))

	col0, col1 = max(col0, 0), min(col1, g.cols)
	row0, row1 = max(row0, 0), min(row1, g.rows)
	for row := row0; row < row1; row++ {
		for col := col0; col < col1; col++ {
			g.mark(col, row)
		}
	}
}

// MarkCircle marks the cells around center that a brush of radius r reaches.
// Only cells within scale cells of the center cell are examined. A cell is
// marked iff r exceeds the distance from center to the nearest point of the
// cell: its facing corner for diagonal neighbours, its facing edge for
// neighbours on the same row or column, zero for the center cell itself.
// This never marks a cell the brush did not touch; partially grazed cells
// at the rim may be missed.
func (g *CoverageGrid) MarkCircle(center Point, r float64) {
	if len(g.cells) == 0 {
		return
	}
	size := g.radius / float64(g.scale)
	ccol := int(math.Floor(g.toCells(center.X)))
	crow := int(math.Floor(g.toCells(center.Y)))

	for col := ccol - g.scale; col <= ccol+g.scale; col++ {
		if col < 0 || col >= g.cols {
			continue
		}
		dx := nearestOffset(col, ccol, center.X, size)
		for row := crow - g.scale; row <= crow+g.scale; row++ {
			if row < 0 || row >= g.rows {
				continue
			}
			dy := nearestOffset(row, crow, center.Y, size)
			if r > math.Hypot(dx, dy) {
				g.mark(col, row)
			}
		}
	}
}

// nearestOffset returns the distance along one axis from v to the facing
// edge of cell, or 0 when cell is the axis-aligned center cell.
func nearestOffset(cell, centerCell int, v, size float64) float64 {
	switch {
	case cell < centerCell:
		return v - size*float64(cell+1)
	case cell > centerCell:
		return size*float64(cell) - v
	default:
		return 0
	}
}

// ErasedRatio returns the fraction of marked cells in [0, 1].
// It returns ErrEmptyGrid when the grid has no cells.
func (g *CoverageGrid) ErasedRatio() (float64, error) {
	if len(g.cells) == 0 {
		return 0, ErrEmptyGrid
	}
	return float64(g.marked) / float64(len(g.cells)), nil
}
