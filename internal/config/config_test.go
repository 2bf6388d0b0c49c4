package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDefaults(t *testing.T) {
	var c Config
	c.Resolve(Flags{})

	assert.Equal(t, 800, c.Width)
	assert.Equal(t, 600, c.Height)
	assert.Equal(t, 1.0, c.PixelRatio)
	assert.Equal(t, 5.0, c.ObjectsDistance)
	assert.Equal(t, 200, c.ParticleCount)
	assert.Equal(t, "#E94560", c.MaterialColor)
	assert.Equal(t, "#0F3460", c.ParticleColor)
	assert.Equal(t, 60, c.FPS)
	assert.Equal(t, 1, c.Supersample)
	assert.Positive(t, c.Workers)
	assert.Equal(t, "renders", c.OutputDir)
}

func TestFlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"width": 1024, "fps": 24, "output_dir": "out"}`), 0644))

	c, err := Load(path)
	require.NoError(t, err)
	c.Resolve(Flags{FPS: 30, Height: 512})

	assert.Equal(t, 1024, c.Width)
	assert.Equal(t, 512, c.Height)
	assert.Equal(t, 30, c.FPS)
	assert.Equal(t, "out", c.OutputDir)
}

func TestLoadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
width = 640
height = 360
pixel_ratio = 1.5
material_color = "#ffeded"
particle_count = 50
seed = 42
`), 0644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 640, c.Width)
	assert.Equal(t, 1.5, c.PixelRatio)
	assert.Equal(t, "#ffeded", c.MaterialColor)
	assert.Equal(t, 50, c.ParticleCount)
	assert.Equal(t, uint64(42), c.Seed)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorContains(t, err, "config: read")

	path := filepath.Join(t.TempDir(), "broken.toml")
	require.NoError(t, os.WriteFile(path, []byte("width = "), 0644))
	_, err = Load(path)
	assert.ErrorContains(t, err, "config: parse")
}
