package watch

import (
	"github.com/zyedidia/generic/mapset"
)

type watched struct {
	path string
	last int64
}

// MtimeDetector is the baseline polling ChangeSource. It keeps the last
// observed timestamp per artifact and reports the ones that moved.
type MtimeDetector struct {
	entries map[Artifact]*watched
}

// NewMtimeDetector returns an empty detector. Artifacts are registered with
// Watch before the first Tick.
func NewMtimeDetector() *MtimeDetector {
	return &MtimeDetector{entries: make(map[Artifact]*watched)}
}

// Watch registers an artifact at the given path. The current timestamp is
// the baseline: content present at registration is the caller's initial
// load, not a change.
func (d *MtimeDetector) Watch(a Artifact, path string) {
	d.entries[a] = &watched{path: path, last: Stamp(path)}
}

// Retarget implements ChangeSource.
func (d *MtimeDetector) Retarget(a Artifact, path string) {
	d.Watch(a, path)
}

// Tick implements ChangeSource. Each changed artifact's recorded timestamp
// advances immediately, so a parse failure upstream is not retried until the
// writer touches the file again.
func (d *MtimeDetector) Tick() mapset.Set[Artifact] {
	changed := mapset.New[Artifact]()
	for a, e := range d.entries {
		now := Stamp(e.path)
		if now != e.last {
			e.last = now
			changed.Put(a)
		}
	}
	return changed
}

// Close implements ChangeSource.
func (d *MtimeDetector) Close() error { return nil }
