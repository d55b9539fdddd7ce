package ebiten

import (
	"strings"

	"github.com/hajimehoshi/ebiten/v2"

	"encounterhud/pkg/hud/frame"
	"encounterhud/pkg/hud/state"
)

// applyWindow moves the overlay to the configured monitor and applies the
// fullscreen flag. Windowed mode centers the logical canvas size on the
// target monitor.
func (o *Overlay) applyWindow(cfg state.RuntimeConfig) {
	mon := matchMonitor(cfg.Screen)
	if mon != nil {
		ebiten.SetMonitor(mon)
	}

	ebiten.SetFullscreen(cfg.Fullscreen)
	if !cfg.Fullscreen {
		ebiten.SetWindowSize(frame.CanvasW, frame.CanvasH)
		if mon != nil {
			mw, mh := mon.Size()
			ebiten.SetWindowPosition((mw-frame.CanvasW)/2, (mh-frame.CanvasH)/2)
		}
	}
}

// matchMonitor finds the first monitor whose name contains the given
// substring, case-insensitively. An empty or unmatched name falls back to
// the primary monitor.
func matchMonitor(name string) *ebiten.MonitorType {
	monitors := ebiten.AppendMonitors(nil)
	if len(monitors) == 0 {
		return nil
	}
	if name != "" {
		want := strings.ToLower(name)
		for _, m := range monitors {
			if strings.Contains(strings.ToLower(m.Name()), want) {
				return m
			}
		}
	}
	return monitors[0]
}
