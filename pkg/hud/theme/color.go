package theme

import (
	"image/color"
	"strings"
)

// ParseHexColor parses "#RRGGBB", "RRGGBB", "#RGB" and "#RRGGBBAA" color
// strings. The leading '#' is optional, matching what the theme editor has
// historically written. Returns ok=false for anything else.
func ParseHexColor(s string) (color.RGBA, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "#")

	hex := func(c byte) (uint8, bool) {
		switch {
		case c >= '0' && c <= '9':
			return c - '0', true
		case c >= 'a' && c <= 'f':
			return c - 'a' + 10, true
		case c >= 'A' && c <= 'F':
			return c - 'A' + 10, true
		}
		return 0, false
	}
	pair := func(hi, lo byte) (uint8, bool) {
		h, ok1 := hex(hi)
		l, ok2 := hex(lo)
		return h<<4 | l, ok1 && ok2
	}

	switch len(s) {
	case 3: // #RGB shorthand, each digit doubled
		r, ok1 := hex(s[0])
		g, ok2 := hex(s[1])
		b, ok3 := hex(s[2])
		if !ok1 || !ok2 || !ok3 {
			return color.RGBA{}, false
		}
		return color.RGBA{R: r * 17, G: g * 17, B: b * 17, A: 255}, true
	case 6:
		r, ok1 := pair(s[0], s[1])
		g, ok2 := pair(s[2], s[3])
		b, ok3 := pair(s[4], s[5])
		if !ok1 || !ok2 || !ok3 {
			return color.RGBA{}, false
		}
		return color.RGBA{R: r, G: g, B: b, A: 255}, true
	case 8:
		r, ok1 := pair(s[0], s[1])
		g, ok2 := pair(s[2], s[3])
		b, ok3 := pair(s[4], s[5])
		a, ok4 := pair(s[6], s[7])
		if !ok1 || !ok2 || !ok3 || !ok4 {
			return color.RGBA{}, false
		}
		return color.RGBA{R: r, G: g, B: b, A: a}, true
	}
	return color.RGBA{}, false
}
