package layout

import "testing"

// defaultGrid matches the built-in overlay theme grid.
func defaultGrid() Grid {
	return Grid{Cols: 24, Rows: 24, Margin: 8, Gutter: 8}
}

func TestRegionRect_HandComputed(t *testing.T) {
	g := defaultGrid()
	// Right column region on a 1280x720 canvas.
	// cellW = (1280 - 16 - 8*23)/24 = 1080/24 = 45
	// cellH = (720 - 16 - 8*23)/24 = 520/24 = 21.666...
	r := g.RegionRect(1280, 720, GridRect{X: 16, Y: 2, W: 8, H: 20})

	if r.X != 856 { // 8 + 16*(45+8) = 856
		t.Errorf("X = %d, want 856", r.X)
	}
	if r.Y != 67 { // round(8 + 2*(21.666+8)) = round(67.333) = 67
		t.Errorf("Y = %d, want 67", r.Y)
	}
	if r.W != 416 { // 8*45 + 7*8 = 416
		t.Errorf("W = %d, want 416", r.W)
	}
	if r.H != 585 { // round(20*21.666... + 19*8) = round(585.333) = 585
		t.Errorf("H = %d, want 585", r.H)
	}
}

func TestRegionRect_MonotonicInCanvasSize(t *testing.T) {
	g := defaultGrid()
	region := GridRect{X: 1, Y: 20, W: 14, H: 3}

	prevW, prevH := -1, -1
	for _, size := range [][2]int{{640, 360}, {1280, 720}, {1920, 1080}, {2560, 1440}} {
		r := g.RegionRect(size[0], size[1], region)
		if r.W < prevW || r.H < prevH {
			t.Errorf("region shrank when canvas grew to %dx%d: %+v", size[0], size[1], r)
		}
		prevW, prevH = r.W, r.H
	}
}

func TestRegionRect_WholeGridCoversCanvas(t *testing.T) {
	g := defaultGrid()
	r := g.RegionRect(1280, 720, g.Whole())

	if r.X != g.Margin || r.Y != g.Margin {
		t.Errorf("whole-grid origin = (%d,%d), want (%d,%d)", r.X, r.Y, g.Margin, g.Margin)
	}
	if r.Right() != 1280-g.Margin || r.Bottom() != 720-g.Margin {
		t.Errorf("whole-grid extent = (%d,%d), want (%d,%d)", r.Right(), r.Bottom(), 1280-g.Margin, 720-g.Margin)
	}
}

func TestRegionRect_DegenerateGrid(t *testing.T) {
	// Zero columns/rows must not divide by zero.
	g := Grid{Cols: 0, Rows: 0, Margin: 0, Gutter: 0}
	r := g.RegionRect(100, 100, GridRect{X: 0, Y: 0, W: 1, H: 1})
	if r.W <= 0 || r.H <= 0 {
		t.Errorf("degenerate grid produced empty rect %+v", r)
	}
}

func TestRectHelpers(t *testing.T) {
	r := Rect{X: 10, Y: 20, W: 100, H: 50}
	if r.Right() != 110 || r.Bottom() != 70 || r.CenterY() != 45 {
		t.Errorf("helpers wrong for %+v", r)
	}
	in := r.Inset(8)
	if in.X != 18 || in.Y != 28 || in.W != 84 || in.H != 34 {
		t.Errorf("Inset(8) = %+v", in)
	}
}
