// Package state owns the in-memory copies of the shared overlay documents.
// The GM console is the only writer; this package reloads sections when their
// files change and guarantees that a half-written or malformed document never
// replaces good in-memory state.
package state

import (
	"time"

	"encounterhud/pkg/engine/viewport"
)

// Side classifies a combatant for rendering purposes.
type Side int

// Combatant sides
const (
	SideAlly Side = iota
	SideEnemy
	SideNeutral
)

// String returns the document spelling of the side.
func (s Side) String() string {
	switch s {
	case SideEnemy:
		return "enemy"
	case SideNeutral:
		return "neutral"
	default:
		return "ally"
	}
}

// CombatantRecord is one roster entry. The whole roster is replaced on
// reload; records are never patched in place.
type CombatantRecord struct {
	Name               string
	HP                 int
	HPMax              int
	InitiativeModifier int
	Statuses           []string // normalized keys, duplicates permitted
	PortraitPath       string   // relative to the artifact directory
	Side               Side
}

// HPFraction returns hp/hpMax clamped to [0,1]. A zero hpMax counts as
// empty rather than dividing by zero.
func (c CombatantRecord) HPFraction() float64 {
	if c.HPMax <= 0 {
		return 0
	}
	f := float64(c.HP) / float64(c.HPMax)
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// EncounterState is the full combat roster plus turn bookkeeping.
type EncounterState struct {
	Combatants  []CombatantRecord
	ActiveIndex int // -1 when no turn is active
	Round       int
}

// ClampActive forces ActiveIndex into [-1, len-1]. Called after every roster
// reload; the document is never trusted to hold a valid index.
func (e *EncounterState) ClampActive() {
	if len(e.Combatants) == 0 {
		e.ActiveIndex = -1
		return
	}
	if e.ActiveIndex < 0 {
		e.ActiveIndex = -1
		return
	}
	if e.ActiveIndex >= len(e.Combatants) {
		e.ActiveIndex = len(e.Combatants) - 1
	}
}

// Active returns the acting combatant, or nil when no turn is active.
func (e *EncounterState) Active() *CombatantRecord {
	if e.ActiveIndex < 0 || e.ActiveIndex >= len(e.Combatants) {
		return nil
	}
	return &e.Combatants[e.ActiveIndex]
}

// DialogBlock is one unit of dialog text. An empty speaker renders as the
// narrator.
type DialogBlock struct {
	Speaker      string
	Text         string
	PortraitPath string
}

// DialogState is the ordered dialog script plus the block currently shown.
type DialogState struct {
	Blocks       []DialogBlock
	CurrentIndex int // -1 when the script is empty
}

// ClampCurrent forces CurrentIndex into [-1, len-1], with -1 only for an
// empty script.
func (d *DialogState) ClampCurrent() {
	if len(d.Blocks) == 0 {
		d.CurrentIndex = -1
		return
	}
	if d.CurrentIndex < 0 {
		d.CurrentIndex = 0
	}
	if d.CurrentIndex >= len(d.Blocks) {
		d.CurrentIndex = len(d.Blocks) - 1
	}
}

// Current returns the displayed block, or nil when the script is empty.
func (d *DialogState) Current() *DialogBlock {
	if d.CurrentIndex < 0 || d.CurrentIndex >= len(d.Blocks) {
		return nil
	}
	return &d.Blocks[d.CurrentIndex]
}

// PortraitAnchor positions a dialog portrait vertically relative to the
// panel.
type PortraitAnchor int

// Portrait anchors
const (
	AnchorBottom PortraitAnchor = iota
	AnchorTop
	AnchorCenter
)

// PortraitSide positions a dialog portrait horizontally.
type PortraitSide int

// Portrait sides
const (
	PortraitLeft PortraitSide = iota
	PortraitRight
)

// PortraitMeta is the placement the GM assigned to one dialog block's
// portrait. Zero value means "no portrait".
type PortraitMeta struct {
	Portrait  string // relative image path; empty = none
	Speaker   string // optional speaker label for the block
	OffsetX   int
	OffsetY   int
	Scale     float64
	Side      PortraitSide
	Anchor    PortraitAnchor
	TopMargin int // minimum distance kept from the canvas top
}

// DialogMeta maps a block index to its portrait placement.
type DialogMeta map[int]PortraitMeta

// DisplayMode selects which of the two render paths draws.
type DisplayMode int

// Display modes
const (
	ModeCombat DisplayMode = iota
	ModeDialog
)

// String returns the config spelling of the mode.
func (m DisplayMode) String() string {
	if m == ModeDialog {
		return "dialog"
	}
	return "combat"
}

// RuntimeConfig is the writer-owned runtime configuration. The overlay only
// reads and reacts.
type RuntimeConfig struct {
	Mode         DisplayMode
	PollInterval time.Duration // never below MinPollInterval
	AutoRefresh  bool
	Theme        string
	Fit          viewport.FitMode
	Screen       string // target monitor substring; empty = primary
	Fullscreen   bool
}

// MinPollInterval is the floor for the tick interval, protecting the writer
// from a config typo spinning the poll loop.
const MinPollInterval = 100 * time.Millisecond

// DefaultPollInterval is used when the config document is absent.
const DefaultPollInterval = 200 * time.Millisecond

// DefaultConfig returns the configuration used before the first successful
// config load.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		Mode:         ModeCombat,
		PollInterval: DefaultPollInterval,
		AutoRefresh:  true,
		Theme:        "gm-modern",
		Fit:          viewport.FitContain,
	}
}
