// Package watch detects mutations to the shared overlay documents. The GM
// console rewrites them at arbitrary times with no notification, so the
// baseline detector compares modification timestamps once per tick. The
// ChangeSource interface keeps the polling strategy swappable for a
// push-based watcher without touching the store or the renderers.
package watch

import (
	"os"
	"path/filepath"

	"github.com/zyedidia/generic/mapset"
)

// Artifact identifies one watched document or directory.
type Artifact int

// Watched artifacts
const (
	Roster Artifact = iota
	Config
	DialogText
	DialogIndex
	DialogMeta
	StatusIcons
	Theme
)

// String returns a log-friendly artifact name.
func (a Artifact) String() string {
	switch a {
	case Roster:
		return "roster"
	case Config:
		return "config"
	case DialogText:
		return "dialog"
	case DialogIndex:
		return "dialog-index"
	case DialogMeta:
		return "dialog-meta"
	case StatusIcons:
		return "status-icons"
	case Theme:
		return "theme"
	default:
		return "unknown"
	}
}

// ChangeSource reports which artifacts changed since the previous tick.
type ChangeSource interface {
	// Watch registers an artifact at its path. The path's current state
	// becomes the baseline.
	Watch(a Artifact, path string)

	// Tick re-examines every watched artifact and returns the set whose
	// effective timestamp advanced. An artifact appears at most once per
	// tick; an unchanged world returns an empty set.
	Tick() mapset.Set[Artifact]

	// Retarget repoints an artifact at a new path (the active theme
	// directory follows the configured theme name). The new target's
	// current timestamp becomes the baseline, so retargeting alone does
	// not report a change.
	Retarget(a Artifact, path string)

	// Close releases any resources held by the source.
	Close() error
}

// Stamp returns the change-detection timestamp for a path: the file's mtime
// in nanoseconds, or for a directory the maximum mtime over its immediate
// entries. A missing or unreadable path stamps as zero, which is treated as
// "absent, use defaults" rather than an error.
func Stamp(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	if !info.IsDir() {
		return info.ModTime().UnixNano()
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return 0
	}
	var max int64
	for _, entry := range entries {
		fi, err := os.Stat(filepath.Join(path, entry.Name()))
		if err != nil {
			continue
		}
		if ts := fi.ModTime().UnixNano(); ts > max {
			max = ts
		}
	}
	return max
}
