// Package frame turns overlay state into flat display lists. Everything here
// is plain geometry and strings so the builders run headless; the renderers
// only paint what a frame describes.
package frame

import (
	"fmt"
	"strings"

	"github.com/leonelquinteros/gotext"

	"encounterhud/pkg/engine/layout"
	"encounterhud/pkg/engine/textwrap"
	"encounterhud/pkg/hud/state"
	"encounterhud/pkg/hud/theme"
)

// Logical canvas dimensions. All frame geometry is expressed on this canvas;
// the window transform maps it onto the physical surface.
const (
	CanvasW = 1280
	CanvasH = 720
)

// Combat card geometry.
const (
	CardHeight   = 100
	CardGap      = 10
	PortraitSlot = 64
	BadgeSize    = 24

	badgeGap       = 4
	maxBarBadges   = 4
	maxEnemyBadges = 6
)

// Dialog panel geometry.
const (
	DialogInset    = 8
	MaxDialogLines = 3
)

// Badge is one status icon slot, already positioned. Letter is the fallback
// glyph drawn when no icon file exists for the key.
type Badge struct {
	Key    string
	Letter string
	X, Y   int
}

// badgeLetter returns the uppercased first rune of a status key.
func badgeLetter(key string) string {
	for _, r := range key {
		return strings.ToUpper(string(r))
	}
	return ""
}

// HPBar is a filled health bar with its caption.
type HPBar struct {
	Rect   layout.Rect
	Fill   float64 // 0..1
	Label  string
	LabelX int
	LabelY int // top edge of the caption
}

// Card is one roster entry laid out inside the roster region.
type Card struct {
	Rect   layout.Rect
	Name   string
	NameX  int
	NameY  int
	Active bool

	PortraitFrame layout.Rect
	PortraitRect  layout.Rect
	PortraitPath  string

	Bar *HPBar // nil for enemies

	Condition  string // enemy condition word, empty otherwise
	ConditionX int
	ConditionY int

	Badges []Badge
}

// CombatFrame is the display list for the roster view.
type CombatFrame struct {
	Region layout.Rect
	Header string
	Cards  []Card
}

// PortraitPlacement is a dialog portrait with its final position and scale.
type PortraitPlacement struct {
	Path  string
	X, Y  int
	W, H  int
	Scale float64
}

// DialogFrame is the display list for the dialog view. The portrait is drawn
// first so the panel overlaps its bottom edge.
type DialogFrame struct {
	Panel    layout.Rect
	Portrait *PortraitPlacement
	Speaker  string
	Lines    []string
}

// SizeFunc reports the pixel dimensions of an image, or false when it cannot
// be read. Placement math degrades to "no portrait" on false.
type SizeFunc func(path string) (w, h int, ok bool)

// BuildCombat lays out the roster region. Combat and dialog are mutually
// exclusive views; outside combat mode the frame is empty and the dialog
// path owns the whole canvas.
func BuildCombat(enc state.EncounterState, mode state.DisplayMode, th *theme.Theme) CombatFrame {
	f := CombatFrame{Region: th.RegionRect(CanvasW, CanvasH, theme.RegionRoster)}
	if mode != state.ModeCombat || len(enc.Combatants) == 0 {
		return f
	}

	if a := enc.Active(); a != nil {
		f.Header = gotext.Get("Round %d. Turn %d/%d: %s",
			enc.Round, enc.ActiveIndex+1, len(enc.Combatants), a.Name)
	} else {
		f.Header = gotext.Get("Round %d", enc.Round)
	}

	total := len(enc.Combatants) * (CardHeight + CardGap)
	startY := f.Region.Y
	if extra := f.Region.H - total; extra > 0 {
		startY += extra / 2
	}

	for i, c := range enc.Combatants {
		y := startY + i*(CardHeight+CardGap)
		card := Card{
			Rect:         layout.Rect{X: f.Region.X, Y: y, W: f.Region.W, H: CardHeight},
			Name:         c.Name,
			Active:       i == enc.ActiveIndex,
			PortraitPath: c.PortraitPath,
		}

		px := card.Rect.X + 10
		py := card.Rect.Y + (CardHeight-PortraitSlot)/2
		card.PortraitRect = layout.Rect{X: px, Y: py, W: PortraitSlot, H: PortraitSlot}
		card.PortraitFrame = layout.Rect{X: px - 2, Y: py - 2, W: PortraitSlot + 4, H: PortraitSlot + 4}

		contentX := px + PortraitSlot + 12
		card.NameX = contentX
		card.NameY = card.Rect.Y + 8

		if c.Side != state.SideEnemy {
			bar := &HPBar{
				Rect: layout.Rect{
					X: contentX,
					Y: card.Rect.Y + 40,
					W: card.Rect.Right() - contentX - 10,
					H: 18,
				},
				Fill:  c.HPFraction(),
				Label: fmt.Sprintf("%d/%d HP", c.HP, c.HPMax),
			}
			bar.LabelX = bar.Rect.X + 6
			bar.LabelY = bar.Rect.Bottom() + 4
			card.Bar = bar

			// Badges stack right to left on the bar.
			sx := bar.Rect.Right() - BadgeSize - badgeGap
			sy := bar.Rect.Y + (bar.Rect.H-BadgeSize)/2
			for _, key := range clip(c.Statuses, maxBarBadges) {
				card.Badges = append(card.Badges, Badge{Key: key, Letter: badgeLetter(key), X: sx, Y: sy})
				sx -= BadgeSize + badgeGap
			}
		} else {
			card.Condition = ConditionWord(c)
			card.ConditionX = contentX
			card.ConditionY = card.Rect.Y + 42

			// Enemy badges run left to right below the condition line.
			sx := contentX
			sy := card.Rect.Y + 72
			for _, key := range clip(c.Statuses, maxEnemyBadges) {
				card.Badges = append(card.Badges, Badge{Key: key, Letter: badgeLetter(key), X: sx, Y: sy})
				sx += BadgeSize + badgeGap
			}
		}

		f.Cards = append(f.Cards, card)
	}

	return f
}

func clip(s []string, n int) []string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

// ConditionWord maps an enemy's health to the vague word shown instead of
// numbers, so players never see exact enemy HP.
func ConditionWord(c state.CombatantRecord) string {
	if c.HP <= 0 {
		return gotext.Get("Defeated")
	}
	switch pct := c.HPFraction(); {
	case pct >= 0.90:
		return gotext.Get("Healthy")
	case pct >= 0.70:
		return gotext.Get("Scratched")
	case pct >= 0.40:
		return gotext.Get("Bruised")
	case pct >= 0.10:
		return gotext.Get("Wounded")
	default:
		return gotext.Get("Critical")
	}
}

// BuildDialog lays out the dialog panel for the current block. The shown
// count limits how many runes of the text are visible; negative shows all.
// Nil means there is nothing to draw.
func BuildDialog(d state.DialogState, meta state.DialogMeta, th *theme.Theme, shown int, measure textwrap.Measure, size SizeFunc) *DialogFrame {
	cur := d.Current()
	if cur == nil {
		return nil
	}

	f := &DialogFrame{
		Panel:   th.RegionRect(CanvasW, CanvasH, theme.RegionDialog),
		Speaker: cur.Speaker,
	}
	if f.Speaker == "" {
		f.Speaker = gotext.Get("Narrator")
	}

	if pm, ok := meta[d.CurrentIndex]; ok && pm.Portrait != "" && size != nil {
		f.Portrait = placePortrait(pm, f.Panel, size)
	}

	text := cur.Text
	if shown >= 0 {
		runes := []rune(text)
		if shown < len(runes) {
			text = string(runes[:shown])
		}
	}
	maxW := float64(f.Panel.W - 2*DialogInset)
	if maxW < 0 {
		maxW = 0
	}
	f.Lines = textwrap.WrapLimit(text, maxW, measure, MaxDialogLines)

	return f
}

// placePortrait resolves a portrait's on-canvas position. A bottom-anchored
// portrait that would poke past the top margin is scaled down to fit, and the
// final position never rises above the margin.
func placePortrait(pm state.PortraitMeta, panel layout.Rect, size SizeFunc) *PortraitPlacement {
	rawW, rawH, ok := size(pm.Portrait)
	if !ok || rawW <= 0 || rawH <= 0 {
		return nil
	}

	scale := pm.Scale
	if scale <= 0 {
		scale = 1
	}
	w := int(float64(rawW) * scale)
	h := int(float64(rawH) * scale)

	var y int
	switch pm.Anchor {
	case state.AnchorTop:
		y = panel.Y + pm.OffsetY
	case state.AnchorCenter:
		y = panel.CenterY() - h/2 + pm.OffsetY
	default:
		y = panel.Bottom() - h + pm.OffsetY
	}

	if pm.Anchor == state.AnchorBottom {
		available := panel.Bottom() - pm.TopMargin + pm.OffsetY
		if available < 1 {
			available = 1
		}
		if h > available {
			fit := float64(available) / float64(h)
			scale *= fit
			w = int(float64(rawW) * scale)
			h = int(float64(rawH) * scale)
			if w < 1 {
				w = 1
			}
			if h < 1 {
				h = 1
			}
			y = panel.Bottom() - h + pm.OffsetY
		}
	}

	if y < pm.TopMargin {
		y = pm.TopMargin
	}

	var x int
	if pm.Side == state.PortraitRight {
		x = panel.Right() - pm.OffsetX - w
	} else {
		x = panel.X + pm.OffsetX
	}

	return &PortraitPlacement{Path: pm.Portrait, X: x, Y: y, W: w, H: h, Scale: scale}
}
