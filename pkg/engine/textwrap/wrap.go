// Package textwrap provides greedy word wrapping against an arbitrary text
// measure, so the same algorithm serves pixel-metric fonts and fixed-width
// terminal output.
package textwrap

import "strings"

// Measure returns the rendered width of a string in whatever unit the caller
// wraps against (pixels for font faces, runes for terminals).
type Measure func(s string) float64

// Runes measures a string by rune count, for fixed-width output.
func Runes(s string) float64 {
	return float64(len([]rune(s)))
}

// Wrap packs words greedily into lines no wider than maxWidth. Words are
// never broken: a single word wider than maxWidth occupies its own overlong
// line. Whitespace between words collapses to a single space.
func Wrap(s string, maxWidth float64, measure Measure) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	cur := ""
	for _, w := range words {
		candidate := w
		if cur != "" {
			candidate = cur + " " + w
		}
		if measure(candidate) <= maxWidth {
			cur = candidate
			continue
		}
		if cur != "" {
			lines = append(lines, cur)
		}
		cur = w
	}
	if cur != "" {
		lines = append(lines, cur)
	}
	return lines
}

// WrapLimit wraps like Wrap but truncates the result to at most maxLines
// lines. maxLines <= 0 means no limit.
func WrapLimit(s string, maxWidth float64, measure Measure, maxLines int) []string {
	lines := Wrap(s, maxWidth, measure)
	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	return lines
}
