package watch

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFsnotifySource_MarkFlagsContainedPaths(t *testing.T) {
	src, err := NewFsnotifySource()
	require.NoError(t, err)
	defer src.Close()

	dir := t.TempDir()
	src.Watch(Roster, filepath.Join(dir, "party.json"))
	src.Watch(Theme, dir)

	src.mark(filepath.Join(dir, "party.json"))
	changed := src.Tick()
	require.True(t, changed.Has(Roster))
	require.True(t, changed.Has(Theme), "the file lives inside the watched directory")

	require.Equal(t, 0, src.Tick().Size(), "tick drains the dirty set")
}

func TestFsnotifySource_RetargetDropsOldDirectoryWatch(t *testing.T) {
	src, err := NewFsnotifySource()
	require.NoError(t, err)
	defer src.Close()

	oldDir := t.TempDir()
	newDir := t.TempDir()
	src.Watch(Theme, oldDir)
	src.Retarget(Theme, newDir)

	require.NotContains(t, src.watcher.WatchList(), oldDir)

	src.mark(filepath.Join(oldDir, "theme.json"))
	require.Equal(t, 0, src.Tick().Size(), "old target must no longer report")

	src.mark(filepath.Join(newDir, "theme.json"))
	require.True(t, src.Tick().Has(Theme))
}
