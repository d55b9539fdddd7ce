package state

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"encounterhud/pkg/engine/viewport"
)

func TestParseConfig_FullDocument(t *testing.T) {
	cfg, err := ParseConfig([]byte(`{
		"theme": "gm-dark",
		"auto_refresh": false,
		"poll_ms": 500,
		"mode": "dialog",
		"overlay": {"screen": "HDMI-1", "fit": "cover", "fullscreen": true}
	}`), DefaultConfig())
	require.NoError(t, err)

	require.Equal(t, "gm-dark", cfg.Theme)
	require.False(t, cfg.AutoRefresh)
	require.Equal(t, 500*time.Millisecond, cfg.PollInterval)
	require.Equal(t, ModeDialog, cfg.Mode)
	require.Equal(t, "HDMI-1", cfg.Screen)
	require.Equal(t, viewport.FitCover, cfg.Fit)
	require.True(t, cfg.Fullscreen)
}

func TestParseConfig_AbsentKeysKeepPrevious(t *testing.T) {
	prev := DefaultConfig()
	prev.Theme = "gm-dark"
	prev.Mode = ModeDialog
	prev.Screen = "DP-2"

	cfg, err := ParseConfig([]byte(`{"poll_ms": 250}`), prev)
	require.NoError(t, err)
	require.Equal(t, "gm-dark", cfg.Theme)
	require.Equal(t, ModeDialog, cfg.Mode)
	require.Equal(t, "DP-2", cfg.Screen)
	require.Equal(t, 250*time.Millisecond, cfg.PollInterval)
}

func TestParseConfig_PollIntervalFloor(t *testing.T) {
	cfg, err := ParseConfig([]byte(`{"poll_ms": 10}`), DefaultConfig())
	require.NoError(t, err)
	require.Equal(t, MinPollInterval, cfg.PollInterval)
}

func TestParseConfig_LegacyCombatMode(t *testing.T) {
	cfg, err := ParseConfig([]byte(`{"combat_mode": true}`), DefaultConfig())
	require.NoError(t, err)
	require.Equal(t, ModeCombat, cfg.Mode)

	cfg, err = ParseConfig([]byte(`{"combat_mode": false}`), DefaultConfig())
	require.NoError(t, err)
	require.Equal(t, ModeDialog, cfg.Mode)

	// The mode string wins over the legacy boolean when both appear.
	cfg, err = ParseConfig([]byte(`{"combat_mode": true, "mode": "dialog"}`), DefaultConfig())
	require.NoError(t, err)
	require.Equal(t, ModeDialog, cfg.Mode)
}

func TestParseConfig_MalformedReturnsPrevious(t *testing.T) {
	prev := DefaultConfig()
	prev.Theme = "untouched"
	cfg, err := ParseConfig([]byte(`{"theme": `), prev)
	require.Error(t, err)
	require.Equal(t, "untouched", cfg.Theme)
}

func TestDiffConfig(t *testing.T) {
	old := DefaultConfig()

	changed := old
	changed.PollInterval = 300 * time.Millisecond
	require.True(t, diffConfig(old, changed).Interval)

	changed = old
	changed.Theme = "other"
	d := diffConfig(old, changed)
	require.True(t, d.Theme)
	require.False(t, d.Mode)

	changed = old
	changed.Fullscreen = true
	require.True(t, diffConfig(old, changed).Window)

	require.False(t, diffConfig(old, old).Any())
}
