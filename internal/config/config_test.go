package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "none.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 250*time.Millisecond, cfg.TurnDuration())
	assert.Equal(t, time.Second/60, cfg.FrameInterval())
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
turn_duration_ms = 400
journal = true
db_path = "/tmp/cubes.db"

[keys]
j = "U"
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 400, cfg.TurnDurationMs)
	assert.Equal(t, DefaultFrameRate, cfg.FrameRate)
	assert.True(t, cfg.Journal)
	assert.Equal(t, "/tmp/cubes.db", cfg.DBPath)
	assert.Equal(t, map[string]string{"j": "U"}, cfg.Keys)
}

func TestLoadRejectsBadValues(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("frame_rate = 0\n"), 0644))
	_, err := Load(bad)
	assert.ErrorIs(t, err, ErrInvalid)

	broken := filepath.Join(dir, "broken.toml")
	require.NoError(t, os.WriteFile(broken, []byte("turn_duration_ms = \n"), 0644))
	_, err = Load(broken)
	assert.Error(t, err)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg := Default()
	cfg.FrameRate = 30
	cfg.Keys = map[string]string{"x": "R'"}
	require.NoError(t, cfg.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}
