package state

import (
	"os"
	"sync"

	"encounterhud/pkg/hud/paths"
)

// Store owns the live copies of every overlay section. Reloads replace a
// section wholesale on parse success and keep the previous value on failure,
// so a writer caught mid-save never blanks the display. Loaded structures
// are never mutated after the swap, which lets Snapshot hand out shallow
// copies safely.
type Store struct {
	mu    sync.RWMutex
	paths paths.Paths

	roster      EncounterState
	blocks      []string
	dialogIndex int
	meta        DialogMeta
	cfg         RuntimeConfig
}

// Snapshot is an immutable per-frame view of the store. Renderers work from
// a snapshot only; they never reach back into the store mid-frame.
type Snapshot struct {
	Roster EncounterState
	Dialog DialogState
	Meta   DialogMeta
	Config RuntimeConfig
}

// New returns a store holding built-in defaults for every section.
func New(p paths.Paths) *Store {
	return &Store{
		paths:  p,
		roster: EncounterState{ActiveIndex: -1, Round: 1},
		meta:   DialogMeta{},
		cfg:    DefaultConfig(),
	}
}

// LoadAll performs the initial load of every section. Individual failures
// leave that section at its defaults; the overlay starts rendering
// regardless.
func (s *Store) LoadAll() []error {
	var errs []error
	if _, err := s.ReloadConfig(); err != nil {
		errs = append(errs, err)
	}
	for _, reload := range []func() error{
		s.ReloadRoster,
		s.ReloadDialogText,
		s.ReloadDialogIndex,
		s.ReloadDialogMeta,
	} {
		if err := reload(); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

// ReloadRoster re-parses the roster document. The active index is re-clamped
// against the new roster length even when only the roster changed.
func (s *Store) ReloadRoster() error {
	data, err := os.ReadFile(s.paths.Roster())
	if err != nil {
		// Absent roster means an empty encounter, not an error.
		s.mu.Lock()
		s.roster = EncounterState{ActiveIndex: -1, Round: 1}
		s.mu.Unlock()
		return nil
	}
	enc, err := ParseRoster(data)
	if err != nil {
		return err // previous roster stays in place
	}
	s.mu.Lock()
	s.roster = enc
	s.mu.Unlock()
	return nil
}

// ReloadDialogText re-parses the dialog block file. The plain-text format
// cannot fail to parse; a missing file clears the script.
func (s *Store) ReloadDialogText() error {
	data, err := os.ReadFile(s.paths.DialogText())
	if err != nil {
		data = nil
	}
	blocks := ParseDialogBlocks(data)
	s.mu.Lock()
	s.blocks = blocks
	s.mu.Unlock()
	return nil
}

// ReloadDialogIndex re-parses the current-index side-channel.
func (s *Store) ReloadDialogIndex() error {
	data, err := os.ReadFile(s.paths.DialogIndex())
	if err != nil {
		s.mu.Lock()
		s.dialogIndex = 0
		s.mu.Unlock()
		return nil
	}
	idx, err := ParseDialogIndex(data)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.dialogIndex = idx
	s.mu.Unlock()
	return nil
}

// ReloadDialogMeta re-parses the portrait metadata document.
func (s *Store) ReloadDialogMeta() error {
	data, err := os.ReadFile(s.paths.DialogMeta())
	if err != nil {
		s.mu.Lock()
		s.meta = DialogMeta{}
		s.mu.Unlock()
		return nil
	}
	meta, err := ParseDialogMeta(data)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.meta = meta
	s.mu.Unlock()
	return nil
}

// ReloadConfig re-parses the runtime configuration and reports which
// settings changed so the caller can reschedule the tick, reload the theme,
// or move the window exactly once.
func (s *Store) ReloadConfig() (ConfigChanges, error) {
	s.mu.RLock()
	prev := s.cfg
	s.mu.RUnlock()

	data, err := os.ReadFile(s.paths.Config())
	if err != nil {
		cfg := DefaultConfig()
		s.mu.Lock()
		s.cfg = cfg
		s.mu.Unlock()
		return diffConfig(prev, cfg), nil
	}
	cfg, err := ParseConfig(data, prev)
	if err != nil {
		return ConfigChanges{}, err
	}
	s.mu.Lock()
	s.cfg = cfg
	s.mu.Unlock()
	return diffConfig(prev, cfg), nil
}

// Config returns the current runtime configuration.
func (s *Store) Config() RuntimeConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// Snapshot captures a consistent view of every section for one frame. The
// dialog state is assembled here so the current index is clamped against
// whatever block count is loaded right now, regardless of which document
// changed last.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Roster: s.roster,
		Dialog: BuildDialog(s.blocks, s.meta, s.dialogIndex),
		Meta:   s.meta,
		Config: s.cfg,
	}
}
