// Package session ties the document store, the change source, the theme and
// the asset cache together. Renderers call Poll once per frame and draw from
// the snapshot; everything about which file to reload when lives here.
package session

import (
	"log"
	"sync"
	"time"

	"encounterhud/pkg/engine/watch"
	"encounterhud/pkg/hud/assets"
	"encounterhud/pkg/hud/paths"
	"encounterhud/pkg/hud/state"
	"encounterhud/pkg/hud/theme"
)

// Session is the overlay's shared runtime state.
type Session struct {
	Paths  paths.Paths
	Store  *state.Store
	Assets *assets.Cache

	source watch.ChangeSource

	mu       sync.RWMutex
	theme    *theme.Theme
	lastPoll time.Time
}

// Result reports what a poll tick did, so the renderer knows whether to
// rebuild its frame or move the window.
type Result struct {
	Reloaded bool
	Config   state.ConfigChanges
}

// New wires a session over the given change source. Call Start before the
// first Poll.
func New(p paths.Paths, src watch.ChangeSource) *Session {
	return &Session{
		Paths:  p,
		Store:  state.New(p),
		Assets: assets.New(p),
		source: src,
		theme:  theme.Defaults(),
	}
}

// Start performs the initial full load and registers every artifact with the
// change source. Load errors are returned but not fatal; the overlay starts
// from defaults and picks the documents up on a later tick.
func (s *Session) Start() []error {
	errs := s.Store.LoadAll()
	cfg := s.Store.Config()

	s.mu.Lock()
	s.theme = theme.Load(s.Paths.ThemesDir(), cfg.Theme)
	s.mu.Unlock()

	s.Assets.RefreshStatusIcons()

	s.source.Watch(watch.Roster, s.Paths.Roster())
	s.source.Watch(watch.Config, s.Paths.Config())
	s.source.Watch(watch.DialogText, s.Paths.DialogText())
	s.source.Watch(watch.DialogIndex, s.Paths.DialogIndex())
	s.source.Watch(watch.DialogMeta, s.Paths.DialogMeta())
	s.source.Watch(watch.StatusIcons, s.Paths.StatusIconDir())
	s.source.Watch(watch.Theme, s.Paths.ThemeDir(cfg.Theme))

	return errs
}

// Theme returns the resolved theme currently in effect.
func (s *Session) Theme() *theme.Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.theme
}

// Snapshot returns an immutable copy of the document state for drawing.
func (s *Session) Snapshot() state.Snapshot {
	return s.Store.Snapshot()
}

// Poll runs one change-detection tick if the configured interval has elapsed.
// With auto refresh off only the config document is examined, so the GM can
// switch refreshing back on remotely.
func (s *Session) Poll(now time.Time) Result {
	cfg := s.Store.Config()

	s.mu.Lock()
	if now.Sub(s.lastPoll) < cfg.PollInterval {
		s.mu.Unlock()
		return Result{}
	}
	s.lastPoll = now
	s.mu.Unlock()

	changed := s.source.Tick()
	if changed.Size() == 0 {
		return Result{}
	}

	var res Result

	// Config applies first so a tick that both re-enables auto refresh and
	// touches a document still picks the document up.
	if changed.Has(watch.Config) {
		s.applyConfig(&res)
		cfg = s.Store.Config()
	}

	apply := func(a watch.Artifact) {
		if a == watch.Config || !cfg.AutoRefresh {
			return
		}
		res.Reloaded = true
		switch a {
		case watch.Roster:
			if err := s.Store.ReloadRoster(); err != nil {
				log.Printf("roster: %v", err)
			}
			s.Assets.InvalidateImages()
		case watch.DialogText:
			if err := s.Store.ReloadDialogText(); err != nil {
				log.Printf("dialog: %v", err)
			}
		case watch.DialogIndex:
			if err := s.Store.ReloadDialogIndex(); err != nil {
				log.Printf("dialog index: %v", err)
			}
		case watch.DialogMeta:
			if err := s.Store.ReloadDialogMeta(); err != nil {
				log.Printf("dialog meta: %v", err)
			}
			s.Assets.InvalidateImages()
		case watch.StatusIcons:
			s.Assets.RefreshStatusIcons()
			s.Assets.InvalidateImages()
		case watch.Theme:
			s.reloadTheme(cfg.Theme)
		}
	}
	changed.Each(apply)

	return res
}

func (s *Session) applyConfig(res *Result) {
	changes, err := s.Store.ReloadConfig()
	if err != nil {
		log.Printf("config: %v", err)
		return
	}
	res.Reloaded = true
	res.Config = changes

	if changes.Theme {
		cfg := s.Store.Config()
		s.reloadTheme(cfg.Theme)
		s.source.Retarget(watch.Theme, s.Paths.ThemeDir(cfg.Theme))
	}
}

func (s *Session) reloadTheme(name string) {
	th := theme.Load(s.Paths.ThemesDir(), name)
	s.mu.Lock()
	s.theme = th
	s.mu.Unlock()
}

// Close releases the change source.
func (s *Session) Close() error {
	return s.source.Close()
}
