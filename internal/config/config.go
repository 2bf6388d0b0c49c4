package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Config holds scene, surface and output settings.
type Config struct {
	// Surface
	Width      int     `json:"width" toml:"width"`
	Height     int     `json:"height" toml:"height"`
	PixelRatio float64 `json:"pixel_ratio" toml:"pixel_ratio"`
	Background string  `json:"background" toml:"background"`

	// Scene
	ObjectsDistance float64 `json:"objects_distance" toml:"objects_distance"`
	ParticleCount   int     `json:"particle_count" toml:"particle_count"`
	Seed            uint64  `json:"seed" toml:"seed"`
	MaterialColor   string  `json:"material_color" toml:"material_color"`
	ParticleColor   string  `json:"particle_color" toml:"particle_color"`
	GradientMap     string  `json:"gradient_map" toml:"gradient_map"`
	TexturesDir     string  `json:"textures_dir" toml:"textures_dir"`

	// Live parameter file, watched for edits
	ParamsFile string `json:"params_file" toml:"params_file"`

	// Offline rendering
	ScriptFile  string  `json:"script_file" toml:"script_file"`
	OutputDir   string  `json:"output_dir" toml:"output_dir"`
	FPS         int     `json:"fps" toml:"fps"`
	Duration    float64 `json:"duration" toml:"duration"`
	Supersample int     `json:"supersample" toml:"supersample"`
	Workers     int     `json:"workers" toml:"workers"`
}

// Load reads a JSON config file, or TOML when the extension is .toml.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		err = toml.Unmarshal(data, &cfg)
	} else {
		err = json.Unmarshal(data, &cfg)
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	Width      int
	Height     int
	OutputDir  string
	ParamsFile string
	ScriptFile string
	FPS        int
	Duration   float64
	Workers    int
}

// Resolve applies CLI overrides, then fills empty fields with defaults.
// Relative paths stay relative to the working directory.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Height = flags.Height
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.ParamsFile != "" {
		c.ParamsFile = flags.ParamsFile
	}
	if flags.ScriptFile != "" {
		c.ScriptFile = flags.ScriptFile
	}
	if flags.FPS > 0 {
		c.FPS = flags.FPS
	}
	if flags.Duration > 0 {
		c.Duration = flags.Duration
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}

	if c.Width <= 0 {
		c.Width = 800
	}
	if c.Height <= 0 {
		c.Height = 600
	}
	if c.PixelRatio <= 0 {
		c.PixelRatio = 1
	}
	if c.Background == "" {
		c.Background = "#1E1A20"
	}
	if c.ObjectsDistance <= 0 {
		c.ObjectsDistance = 5
	}
	if c.ParticleCount <= 0 {
		c.ParticleCount = 200
	}
	if c.MaterialColor == "" {
		c.MaterialColor = "#E94560"
	}
	if c.ParticleColor == "" {
		c.ParticleColor = "#0F3460"
	}
	if c.TexturesDir == "" {
		c.TexturesDir = "textures"
	}
	if c.GradientMap == "" {
		c.GradientMap = "3"
	}
	if c.OutputDir == "" {
		c.OutputDir = "renders"
	}
	if c.FPS <= 0 {
		c.FPS = 60
	}
	if c.Duration <= 0 {
		c.Duration = 10
	}
	if c.Supersample <= 0 {
		c.Supersample = 1
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}
