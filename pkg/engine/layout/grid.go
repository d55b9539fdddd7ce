// Package layout resolves grid-relative theme regions into pixel rectangles.
package layout

import "math"

// Rect is an integer pixel rectangle.
type Rect struct {
	X, Y, W, H int
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() int { return r.X + r.W }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() int { return r.Y + r.H }

// CenterY returns the vertical center.
func (r Rect) CenterY() int { return r.Y + r.H/2 }

// Inset returns the rectangle shrunk by n pixels on every side.
func (r Rect) Inset(n int) Rect {
	return Rect{X: r.X + n, Y: r.Y + n, W: r.W - 2*n, H: r.H - 2*n}
}

// GridRect is a rectangle expressed in grid cells.
type GridRect struct {
	X, Y, W, H int
}

// Grid describes the cell layout a theme positions its regions on.
type Grid struct {
	Cols   int
	Rows   int
	Margin int
	Gutter int
}

// RegionRect converts a grid-cell rectangle into an absolute pixel rectangle
// for the given canvas size. Cell dimensions are computed in float and the
// final rectangle rounded to integer pixels, so regions tile the canvas
// without accumulating drift.
func (g Grid) RegionRect(canvasW, canvasH int, r GridRect) Rect {
	cols, rows := g.Cols, g.Rows
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	m := float64(g.Margin)
	gut := float64(g.Gutter)

	cellW := (float64(canvasW) - 2*m - gut*float64(cols-1)) / float64(cols)
	cellH := (float64(canvasH) - 2*m - gut*float64(rows-1)) / float64(rows)

	px := m + float64(r.X)*(cellW+gut)
	py := m + float64(r.Y)*(cellH+gut)
	pw := float64(r.W)*cellW + float64(r.W-1)*gut
	ph := float64(r.H)*cellH + float64(r.H-1)*gut

	return Rect{
		X: int(math.Round(px)),
		Y: int(math.Round(py)),
		W: int(math.Round(pw)),
		H: int(math.Round(ph)),
	}
}

// Whole returns the grid rectangle covering the entire grid. Unknown region
// ids resolve to this.
func (g Grid) Whole() GridRect {
	return GridRect{X: 0, Y: 0, W: g.Cols, H: g.Rows}
}
