// Package ebiten provides the Ebiten-based graphical overlay renderer.
package ebiten

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"encounterhud/pkg/engine/viewport"
	"encounterhud/pkg/hud/frame"
	"encounterhud/pkg/hud/session"
	"encounterhud/pkg/hud/state"
)

// Overlay is the transparent, borderless always-on-top window the players
// see. Drawing happens on a fixed logical canvas that is mapped onto the
// window by the configured fit mode, so theme geometry never depends on the
// physical surface.
type Overlay struct {
	session *session.Session
	canvas  *ebiten.Image

	reveal frame.Reveal

	// GPU textures decoded from the asset cache, dropped whenever a poll
	// tick reloaded anything.
	textures map[string]*ebiten.Image
}

// New returns an uninitialized overlay renderer.
func New() *Overlay {
	return &Overlay{textures: make(map[string]*ebiten.Image)}
}

// Init creates the logical canvas and configures the window for capture:
// undecorated, floating, transparent background.
func (o *Overlay) Init(s *session.Session) error {
	o.session = s
	o.canvas = ebiten.NewImage(frame.CanvasW, frame.CanvasH)

	ebiten.SetWindowTitle("EncounterOS Overlay")
	ebiten.SetWindowDecorated(false)
	ebiten.SetWindowFloating(true)
	ebiten.SetWindowSize(frame.CanvasW, frame.CanvasH)
	o.applyWindow(s.Store.Config())

	return nil
}

// Run enters the Ebiten game loop and blocks until the overlay exits.
func (o *Overlay) Run() error {
	op := &ebiten.RunGameOptions{ScreenTransparent: true}
	return ebiten.RunGameWithOptions(o, op)
}

// Close releases nothing today; textures die with the process.
func (o *Overlay) Close() error { return nil }

// Update polls for document changes and advances the dialog typing effect.
func (o *Overlay) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}

	now := time.Now()
	res := o.session.Poll(now)
	if res.Reloaded {
		clear(o.textures)
	}
	if res.Config.Window {
		o.applyWindow(o.session.Store.Config())
	}

	snap := o.session.Snapshot()
	if snap.Config.Mode == state.ModeDialog {
		if cur := snap.Dialog.Current(); cur != nil {
			o.reveal.Sync(snap.Dialog.CurrentIndex, cur.Text, now)
			o.reveal.Advance(now)
		}
	}

	return nil
}

// Draw renders the active view onto the logical canvas and blits it through
// the fit transform. The window background stays transparent.
func (o *Overlay) Draw(screen *ebiten.Image) {
	o.canvas.Clear()

	snap := o.session.Snapshot()
	th := o.session.Theme()

	// The two views are mutually exclusive; exactly one path draws per
	// frame.
	switch snap.Config.Mode {
	case state.ModeCombat:
		o.drawCombat(o.canvas, frame.BuildCombat(snap.Roster, snap.Config.Mode, th), th)
	case state.ModeDialog:
		df := frame.BuildDialog(snap.Dialog, snap.Meta, th, o.reveal.Shown(),
			o.measureWith(th), o.session.Assets.ImageSize)
		if df != nil {
			o.drawDialog(o.canvas, df, th)
		}
	}

	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	tr := viewport.Compute(frame.CanvasW, frame.CanvasH, float64(sw), float64(sh), snap.Config.Fit)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(tr.ScaleX, tr.ScaleY)
	op.GeoM.Translate(tr.OffsetX, tr.OffsetY)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(o.canvas, op)
}

// Layout keeps the screen at the window's size; the fit transform in Draw
// does the logical-to-physical mapping.
func (o *Overlay) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth < 1 {
		outsideWidth = 1
	}
	if outsideHeight < 1 {
		outsideHeight = 1
	}
	return outsideWidth, outsideHeight
}
