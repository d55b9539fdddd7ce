// Package paths resolves the overlay's shared artifacts relative to a single
// base directory. The GM console writes next to its executable, and the
// overlay is expected to run from the same directory; --dir overrides the
// base for development setups.
package paths

import (
	"os"
	"path/filepath"
)

// Paths locates every watched artifact under one base directory.
type Paths struct {
	Base string
}

// Resolve returns the artifact paths rooted at dir, or at the executable's
// directory when dir is empty.
func Resolve(dir string) (Paths, error) {
	if dir == "" {
		exe, err := os.Executable()
		if err != nil {
			return Paths{}, err
		}
		dir = filepath.Dir(exe)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return Paths{}, err
	}
	return Paths{Base: abs}, nil
}

// Roster is the combat roster document.
func (p Paths) Roster() string { return filepath.Join(p.Base, "party.json") }

// Config is the runtime configuration document.
func (p Paths) Config() string { return filepath.Join(p.Base, "config.json") }

// DialogText is the plain-text dialog block file.
func (p Paths) DialogText() string { return filepath.Join(p.Base, "dialog.txt") }

// DialogIndex is the dialog current-index side-channel, sharing the dialog
// file's stem with a JSON extension.
func (p Paths) DialogIndex() string { return filepath.Join(p.Base, "dialog.json") }

// DialogMeta is the per-block portrait metadata document.
func (p Paths) DialogMeta() string { return filepath.Join(p.Base, "dialog_meta.json") }

// ThemesDir is the root of all theme directories.
func (p Paths) ThemesDir() string { return filepath.Join(p.Base, "themes") }

// ThemeDir is the directory of one named theme.
func (p Paths) ThemeDir(name string) string { return filepath.Join(p.ThemesDir(), name) }

// ThemeFile is the theme document of one named theme.
func (p Paths) ThemeFile(name string) string { return filepath.Join(p.ThemeDir(name), "theme.json") }

// StatusIconDir holds one image per status key.
func (p Paths) StatusIconDir() string { return filepath.Join(p.Base, "icons", "status") }

// FontsDir holds optional font files referenced by theme font families.
func (p Paths) FontsDir() string { return filepath.Join(p.Base, "fonts") }

// FromBase resolves a document-relative path (portrait references are stored
// relative to the base directory) into an absolute one. Absolute inputs pass
// through unchanged.
func (p Paths) FromBase(rel string) string {
	if rel == "" {
		return ""
	}
	if filepath.IsAbs(rel) {
		return filepath.Clean(rel)
	}
	return filepath.Join(p.Base, rel)
}
