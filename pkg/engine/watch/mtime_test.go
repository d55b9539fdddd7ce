package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string, when time.Time) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	require.NoError(t, os.Chtimes(path, when, when))
}

func TestMtimeDetector_QuietTickReportsNothing(t *testing.T) {
	dir := t.TempDir()
	fp := filepath.Join(dir, "party.json")
	touch(t, fp, time.Now())

	d := NewMtimeDetector()
	d.Watch(Roster, fp)

	require.Equal(t, 0, d.Tick().Size(), "registration baseline must not count as a change")
	require.Equal(t, 0, d.Tick().Size(), "second quiet tick must also be empty")
}

func TestMtimeDetector_TouchReportsExactlyOnce(t *testing.T) {
	dir := t.TempDir()
	roster := filepath.Join(dir, "party.json")
	config := filepath.Join(dir, "config.json")
	base := time.Now().Add(-time.Minute)
	touch(t, roster, base)
	touch(t, config, base)

	d := NewMtimeDetector()
	d.Watch(Roster, roster)
	d.Watch(Config, config)

	touch(t, roster, base.Add(time.Second))

	changed := d.Tick()
	require.Equal(t, 1, changed.Size())
	require.True(t, changed.Has(Roster))
	require.False(t, changed.Has(Config))

	// The change was consumed; nothing further until the next touch.
	require.Equal(t, 0, d.Tick().Size())
}

func TestMtimeDetector_MissingFileIsAbsentNotError(t *testing.T) {
	dir := t.TempDir()
	fp := filepath.Join(dir, "dialog.txt")

	d := NewMtimeDetector()
	d.Watch(DialogText, fp) // does not exist yet

	require.Equal(t, 0, d.Tick().Size())

	// Creation is a change...
	touch(t, fp, time.Now())
	changed := d.Tick()
	require.True(t, changed.Has(DialogText))

	// ...and so is deletion (timestamp returns to zero).
	require.NoError(t, os.Remove(fp))
	changed = d.Tick()
	require.True(t, changed.Has(DialogText))
}

func TestMtimeDetector_DirectoryStampIsMaxOfEntries(t *testing.T) {
	dir := t.TempDir()
	icons := filepath.Join(dir, "status")
	require.NoError(t, os.Mkdir(icons, 0o755))
	base := time.Now().Add(-time.Minute)
	touch(t, filepath.Join(icons, "poisoned.png"), base)
	touch(t, filepath.Join(icons, "stunned.png"), base)

	d := NewMtimeDetector()
	d.Watch(StatusIcons, icons)
	require.Equal(t, 0, d.Tick().Size())

	// Touching any single file inside bumps the directory's effective stamp.
	touch(t, filepath.Join(icons, "stunned.png"), base.Add(2*time.Second))
	changed := d.Tick()
	require.True(t, changed.Has(StatusIcons))
}

func TestMtimeDetector_Retarget(t *testing.T) {
	dir := t.TempDir()
	oldTheme := filepath.Join(dir, "themes", "gm-modern")
	newTheme := filepath.Join(dir, "themes", "gm-dark")
	require.NoError(t, os.MkdirAll(oldTheme, 0o755))
	require.NoError(t, os.MkdirAll(newTheme, 0o755))
	touch(t, filepath.Join(newTheme, "theme.json"), time.Now())

	d := NewMtimeDetector()
	d.Watch(Theme, oldTheme)
	require.Equal(t, 0, d.Tick().Size())

	// Retargeting adopts the new path's stamp as the baseline.
	d.Retarget(Theme, newTheme)
	require.Equal(t, 0, d.Tick().Size(), "retarget alone must not report a change")

	touch(t, filepath.Join(newTheme, "theme.json"), time.Now().Add(time.Second))
	require.True(t, d.Tick().Has(Theme))
}

func TestStamp_MissingIsZero(t *testing.T) {
	require.EqualValues(t, 0, Stamp(filepath.Join(t.TempDir(), "nope.json")))
	require.EqualValues(t, 0, Stamp(filepath.Join(t.TempDir(), "nodir")))
}
