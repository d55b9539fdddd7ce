package state

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"encounterhud/pkg/engine/viewport"
)

// configDoc mirrors config.json. The legacy combat_mode boolean predates the
// mode string and is honored when mode is absent.
type configDoc struct {
	Theme       string `json:"theme"`
	AutoRefresh *bool  `json:"auto_refresh"`
	PollMs      *int   `json:"poll_ms"`
	Mode        string `json:"mode"`
	CombatMode  *bool  `json:"combat_mode"` // legacy
	Overlay     struct {
		Screen     *string `json:"screen"`
		Fit        string  `json:"fit"`
		Fullscreen *bool   `json:"fullscreen"`
	} `json:"overlay"`
}

// ParseConfig decodes the runtime configuration document. Absent keys keep
// the value carried in prev, so the writer can rewrite only the keys it
// changes; the poll interval is floored at MinPollInterval.
func ParseConfig(data []byte, prev RuntimeConfig) (RuntimeConfig, error) {
	var doc configDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return prev, fmt.Errorf("config: %w", err)
	}

	cfg := prev
	if doc.Theme != "" {
		cfg.Theme = doc.Theme
	}
	if doc.AutoRefresh != nil {
		cfg.AutoRefresh = *doc.AutoRefresh
	}
	if doc.PollMs != nil {
		cfg.PollInterval = time.Duration(*doc.PollMs) * time.Millisecond
		if cfg.PollInterval < MinPollInterval {
			cfg.PollInterval = MinPollInterval
		}
	}

	switch strings.ToLower(strings.TrimSpace(doc.Mode)) {
	case "combat":
		cfg.Mode = ModeCombat
	case "dialog":
		cfg.Mode = ModeDialog
	case "":
		if doc.CombatMode != nil {
			if *doc.CombatMode {
				cfg.Mode = ModeCombat
			} else {
				cfg.Mode = ModeDialog
			}
		}
	}

	if doc.Overlay.Screen != nil {
		cfg.Screen = *doc.Overlay.Screen
	}
	if doc.Overlay.Fit != "" {
		cfg.Fit = viewport.ParseFitMode(doc.Overlay.Fit)
	}
	if doc.Overlay.Fullscreen != nil {
		cfg.Fullscreen = *doc.Overlay.Fullscreen
	}
	return cfg, nil
}

// ConfigChanges summarizes what a config reload altered, so the caller can
// apply the corresponding side effects exactly once.
type ConfigChanges struct {
	Interval bool // poll interval or auto-refresh toggled
	Theme    bool // theme name changed
	Mode     bool // display mode switched
	Window   bool // screen / fit / fullscreen changed
}

// Any reports whether anything observable changed.
func (c ConfigChanges) Any() bool {
	return c.Interval || c.Theme || c.Mode || c.Window
}

func diffConfig(old, new RuntimeConfig) ConfigChanges {
	return ConfigChanges{
		Interval: old.PollInterval != new.PollInterval || old.AutoRefresh != new.AutoRefresh,
		Theme:    old.Theme != new.Theme,
		Mode:     old.Mode != new.Mode,
		Window:   old.Screen != new.Screen || old.Fit != new.Fit || old.Fullscreen != new.Fullscreen,
	}
}
