package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"strender/enhance"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "grayscale", cfg.Render.Scale)
	assert.True(t, cfg.Render.Merge)
	assert.False(t, cfg.Render.Enhance)
	assert.Greater(t, cfg.Render.Workers, 0)
	assert.Equal(t, 2.2, cfg.Composite.Gamma)
	assert.Equal(t, 1.5, cfg.Enhance.LevelGamma)
}

func TestDefaultMatchesEnhanceDefaults(t *testing.T) {
	cfg := Default()
	p := enhance.Defaults()

	assert.Equal(t, p.LevelGamma, cfg.Enhance.LevelGamma)
	assert.Equal(t, p.Saturation, cfg.Enhance.Saturation)
	assert.Equal(t, p.Hue, cfg.Enhance.Hue)
	assert.Equal(t, p.Contrast, cfg.Enhance.Contrast)
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "strender.yaml")
	data := []byte("render:\n  scale: color2\n  merge: false\ncomposite:\n  gamma: 1.8\n")
	require.NoError(t, os.WriteFile(path, data, 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "color2", cfg.Render.Scale)
	assert.False(t, cfg.Render.Merge)
	assert.Equal(t, 1.8, cfg.Composite.Gamma)

	// Untouched fields keep their defaults.
	assert.Equal(t, 1.5, cfg.Enhance.LevelGamma)
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "strender.yaml")
	require.NoError(t, os.WriteFile(path, []byte("render: [broken"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "strender.yaml")

	cfg := Default()
	cfg.Render.Scale = "wvnrl"
	cfg.Enhance.Saturation = 180

	require.NoError(t, Save(cfg, path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}
