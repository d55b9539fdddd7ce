// Package theme resolves a named theme document into grid geometry, colors,
// and font parameters. Loading always starts from the built-in defaults and
// merges present keys over them field-by-field, so partial and malformed
// themes degrade to the defaults instead of erroring.
package theme

import (
	"encoding/json"
	"image/color"
	"log"
	"os"
	"path/filepath"

	"encounterhud/pkg/engine/layout"
)

// Semantic color keys understood by the renderers.
const (
	ColorCardBG       = "card_bg"
	ColorBorderIdle   = "border_idle"
	ColorBorderActive = "border_active"
	ColorText         = "text"
	ColorHPGood       = "hp_good"
	ColorHPBack       = "hp_back"
	ColorDialogBG     = "dialog_bg"
	ColorDialogBorder = "dialog_border"
)

// Region ids with built-in geometry.
const (
	RegionRoster = "right_column"
	RegionDialog = "dialog_box"
)

// Fonts holds the font family and per-role sizes of a theme.
type Fonts struct {
	Family     string
	BaseSize   int
	DialogSize int
	SmallSize  int
}

// Theme is the resolved description the renderers draw from.
type Theme struct {
	Name    string
	Grid    layout.Grid
	Regions map[string]layout.GridRect
	Colors  map[string]string
	Fonts   Fonts
}

// Defaults returns the built-in theme. Every lookup falls back to these
// values, so a missing theme directory renders identically to an empty one.
func Defaults() *Theme {
	return &Theme{
		Grid: layout.Grid{Cols: 24, Rows: 24, Margin: 8, Gutter: 8},
		Regions: map[string]layout.GridRect{
			RegionRoster: {X: 16, Y: 2, W: 8, H: 20},
			RegionDialog: {X: 1, Y: 20, W: 14, H: 3},
		},
		Colors: map[string]string{
			ColorCardBG:       "#000000",
			ColorBorderIdle:   "#C8C8C8",
			ColorBorderActive: "#FFD864",
			ColorText:         "#FFFFFF",
			ColorHPGood:       "#32C864",
			ColorHPBack:       "#C83232",
			ColorDialogBG:     "#000000",
			ColorDialogBorder: "#C8C8C8",
		},
		Fonts: Fonts{
			Family:     "Consolas",
			BaseSize:   12,
			DialogSize: 14,
			SmallSize:  10,
		},
	}
}

// themeDoc mirrors the theme.json shape. Every field is optional; absent
// keys keep their default values.
type themeDoc struct {
	Layout struct {
		Grid struct {
			Cols   *int `json:"cols"`
			Rows   *int `json:"rows"`
			Margin *int `json:"margin"`
			Gutter *int `json:"gutter"`
		} `json:"grid"`
		Regions map[string]struct {
			GridRect []int `json:"gridRect"`
		} `json:"regions"`
	} `json:"layout"`
	Vars struct {
		Colors map[string]string `json:"colors"`
		Fonts  struct {
			BaseFamily *string `json:"base_family"`
			BaseSize   *int    `json:"base_size"`
			DialogSize *int    `json:"dialog_size"`
			SmallSize  *int    `json:"small_size"`
		} `json:"fonts"`
	} `json:"vars"`
}

// Load resolves the named theme under themesDir. The result always starts
// from Defaults; if the theme document exists and parses, its present keys
// are merged over them. A missing or malformed document is logged and the
// defaults returned, never an error.
func Load(themesDir, name string) *Theme {
	t := Defaults()
	t.Name = name
	if name == "" {
		return t
	}

	data, err := os.ReadFile(filepath.Join(themesDir, name, "theme.json"))
	if err != nil {
		return t // absent theme renders with defaults
	}

	var doc themeDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		log.Printf("theme: malformed document for %q, keeping defaults: %v", name, err)
		return t
	}

	t.merge(&doc)
	return t
}

// merge overlays present document keys over the current values.
func (t *Theme) merge(doc *themeDoc) {
	g := doc.Layout.Grid
	if g.Cols != nil && *g.Cols > 0 {
		t.Grid.Cols = *g.Cols
	}
	if g.Rows != nil && *g.Rows > 0 {
		t.Grid.Rows = *g.Rows
	}
	if g.Margin != nil && *g.Margin >= 0 {
		t.Grid.Margin = *g.Margin
	}
	if g.Gutter != nil && *g.Gutter >= 0 {
		t.Grid.Gutter = *g.Gutter
	}

	for id, region := range doc.Layout.Regions {
		if len(region.GridRect) != 4 {
			continue
		}
		t.Regions[id] = layout.GridRect{
			X: region.GridRect[0],
			Y: region.GridRect[1],
			W: region.GridRect[2],
			H: region.GridRect[3],
		}
	}

	// Unknown color keys are carried, not rejected, matching the
	// permissive document shape.
	for key, val := range doc.Vars.Colors {
		t.Colors[key] = val
	}

	f := doc.Vars.Fonts
	if f.BaseFamily != nil && *f.BaseFamily != "" {
		t.Fonts.Family = *f.BaseFamily
	}
	if f.BaseSize != nil && *f.BaseSize > 0 {
		t.Fonts.BaseSize = *f.BaseSize
	}
	if f.DialogSize != nil && *f.DialogSize > 0 {
		t.Fonts.DialogSize = *f.DialogSize
	}
	if f.SmallSize != nil && *f.SmallSize > 0 {
		t.Fonts.SmallSize = *f.SmallSize
	}
}

// RegionRect resolves a region id to pixels for the given canvas. Unknown
// ids cover the whole grid.
func (t *Theme) RegionRect(canvasW, canvasH int, id string) layout.Rect {
	region, ok := t.Regions[id]
	if !ok {
		region = t.Grid.Whole()
	}
	return t.Grid.RegionRect(canvasW, canvasH, region)
}

// Color resolves a semantic color key. Missing keys and malformed values
// fall back to the built-in default for that key, then to white.
func (t *Theme) Color(key string) color.RGBA {
	if raw, ok := t.Colors[key]; ok {
		if c, ok := ParseHexColor(raw); ok {
			return c
		}
	}
	if raw, ok := Defaults().Colors[key]; ok {
		if c, ok := ParseHexColor(raw); ok {
			return c
		}
	}
	return color.RGBA{R: 255, G: 255, B: 255, A: 255}
}
