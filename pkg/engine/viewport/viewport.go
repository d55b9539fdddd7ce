// Package viewport maps a fixed logical canvas onto a physical drawing
// surface. All overlay drawing happens in logical coordinates; the computed
// transform is applied once per frame.
package viewport

import "strings"

// FitMode selects how the logical canvas is fitted to the surface.
type FitMode int

// Fit modes
const (
	// FitContain scales uniformly so the whole canvas is visible,
	// letterboxed and centered.
	FitContain FitMode = iota
	// FitCover scales uniformly so the canvas covers the whole surface,
	// cropping the overflow.
	FitCover
	// FitStretch scales each axis independently; no letterboxing.
	FitStretch
)

// ParseFitMode maps a config string to a fit mode. Unknown or empty values
// fall back to contain.
func ParseFitMode(s string) FitMode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cover":
		return FitCover
	case "stretch":
		return FitStretch
	default:
		return FitContain
	}
}

// String returns the config spelling of the fit mode.
func (m FitMode) String() string {
	switch m {
	case FitCover:
		return "cover"
	case FitStretch:
		return "stretch"
	default:
		return "contain"
	}
}

// Transform is a scale plus translation from logical to surface coordinates.
type Transform struct {
	ScaleX, ScaleY   float64
	OffsetX, OffsetY float64
}

// Compute returns the transform that maps a srcW x srcH logical canvas onto a
// dstW x dstH surface under the given fit mode.
func Compute(srcW, srcH, dstW, dstH float64, mode FitMode) Transform {
	if srcW <= 0 || srcH <= 0 {
		return Transform{ScaleX: 1, ScaleY: 1}
	}
	sx := dstW / srcW
	sy := dstH / srcH

	switch mode {
	case FitStretch:
		return Transform{ScaleX: sx, ScaleY: sy}
	case FitCover:
		s := sx
		if sy > s {
			s = sy
		}
		return uniform(srcW, srcH, dstW, dstH, s)
	default: // contain
		s := sx
		if sy < s {
			s = sy
		}
		return uniform(srcW, srcH, dstW, dstH, s)
	}
}

func uniform(srcW, srcH, dstW, dstH, s float64) Transform {
	return Transform{
		ScaleX:  s,
		ScaleY:  s,
		OffsetX: (dstW - srcW*s) / 2,
		OffsetY: (dstH - srcH*s) / 2,
	}
}

// Apply projects a logical point into surface coordinates.
func (t Transform) Apply(x, y float64) (float64, float64) {
	return x*t.ScaleX + t.OffsetX, y*t.ScaleY + t.OffsetY
}
