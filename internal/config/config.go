package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"screw-motion/internal/input"
	"screw-motion/internal/mathutil"
	"screw-motion/internal/screw"
)

// Config holds the transform to decompose plus sampling, playback and
// render settings.
type Config struct {
	// Transform input. A rotation beats Euler angles, which beat identity.
	Rotation     []float64 `json:"rotation"`      // 9 values, row-major
	EulerDegrees []float64 `json:"euler_degrees"` // 3 values
	EulerOrder   string    `json:"euler_order"`
	Translation  []float64 `json:"translation"` // 3 values
	Preset       string    `json:"preset"`
	PresetFile   string    `json:"preset_file"`

	// Sampling and playback
	Samples  int     `json:"samples"`
	Duration float64 `json:"duration_seconds"`
	FPS      int     `json:"fps"`

	// Render settings
	OutputDir   string  `json:"output_dir"`
	RenderSize  int     `json:"render_size"`
	Supersample int     `json:"supersample"`
	Texture     string  `json:"texture"`
	CameraYaw   float64 `json:"camera_yaw"`
	CameraPitch float64 `json:"camera_pitch"`
	Perspective bool    `json:"perspective"`
	WriteFrames bool    `json:"write_frames"`
	Workers     int     `json:"workers"`

	// Server
	Listen string `json:"listen"`

	Debug bool `json:"debug"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
// Nil slices and zero values leave the file setting alone.
type Flags struct {
	Rotation     []float64
	EulerDegrees []float64
	EulerOrder   string
	Translation  []float64
	Preset       string
	PresetFile   string
	Samples      int
	Duration     float64
	FPS          int
	OutputDir    string
	RenderSize   int
	Supersample  int
	Texture      string
	Perspective  bool
	WriteFrames  bool
	Workers      int
	Listen       string
	Debug        bool
}

// ParseList parses a list flag of n numbers. An empty flag yields nil so the
// file setting stands. A malformed flag yields an empty non-nil list, which
// overrides the file and makes Transform report that value as missing.
func ParseList(s string, n int) ([]float64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	vs, err := input.ParseNumbers(s, n)
	if err != nil {
		return []float64{}, fmt.Errorf("config: %w", err)
	}
	return vs, nil
}

// Resolve applies flag overrides, then a preset if one is named, then
// defaults for anything still unset.
func (c *Config) Resolve(flags Flags) error {
	// CLI flags override config file
	if flags.Rotation != nil {
		c.Rotation = flags.Rotation
		c.EulerDegrees = nil
	}
	if flags.EulerDegrees != nil {
		c.EulerDegrees = flags.EulerDegrees
		if flags.Rotation == nil {
			c.Rotation = nil
		}
	}
	if flags.EulerOrder != "" {
		c.EulerOrder = flags.EulerOrder
	}
	if flags.Translation != nil {
		c.Translation = flags.Translation
	}
	if flags.Preset != "" {
		c.Preset = flags.Preset
	}
	if flags.PresetFile != "" {
		c.PresetFile = flags.PresetFile
	}
	if flags.Samples > 0 {
		c.Samples = flags.Samples
	}
	if flags.Duration > 0 {
		c.Duration = flags.Duration
	}
	if flags.FPS > 0 {
		c.FPS = flags.FPS
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.RenderSize > 0 {
		c.RenderSize = flags.RenderSize
	}
	if flags.Supersample > 0 {
		c.Supersample = flags.Supersample
	}
	if flags.Texture != "" {
		c.Texture = flags.Texture
	}
	c.Perspective = c.Perspective || flags.Perspective
	c.WriteFrames = c.WriteFrames || flags.WriteFrames
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Listen != "" {
		c.Listen = flags.Listen
	}
	c.Debug = c.Debug || flags.Debug

	// Preset fills transform fields that neither file nor flags set
	if c.Preset != "" {
		if err := c.applyPreset(); err != nil {
			return err
		}
	}

	// Defaults
	if c.Samples <= 0 {
		c.Samples = screw.DefaultSamples
	}
	if c.Duration <= 0 {
		c.Duration = 3
	}
	if c.FPS <= 0 {
		c.FPS = 30
	}
	if c.OutputDir == "" {
		c.OutputDir = "screw-renders"
	}
	if c.RenderSize <= 0 {
		c.RenderSize = 512
	}
	if c.Supersample <= 0 {
		c.Supersample = 2
	}
	if c.CameraYaw == 0 && c.CameraPitch == 0 {
		c.CameraYaw, c.CameraPitch = 35, -25
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.Listen == "" {
		c.Listen = ":8080"
	}
	if c.Texture != "" && !filepath.IsAbs(c.Texture) {
		if abs, err := filepath.Abs(c.Texture); err == nil {
			c.Texture = abs
		}
	}
	return nil
}

func (c *Config) applyPreset() error {
	path := c.PresetFile
	if path == "" {
		path = "presets.json"
	}
	presets, err := LoadPresets(path)
	if err != nil {
		return err
	}
	p, ok := presets[c.Preset]
	if !ok {
		return fmt.Errorf("config: %w: %q in %s", ErrUnknownPreset, c.Preset, path)
	}
	c.UsePreset(p)
	return nil
}

// UsePreset fills the transform fields that are still unset from p.
func (c *Config) UsePreset(p Preset) {
	if c.Rotation == nil && c.EulerDegrees == nil {
		c.Rotation = p.Rotation
		c.EulerDegrees = p.EulerDegrees
		if c.EulerOrder == "" {
			c.EulerOrder = p.EulerOrder
		}
	}
	if c.Translation == nil {
		c.Translation = p.Translation
	}
}

// FrameDuration is the playback clock step for one rendered frame.
func (c *Config) FrameDuration() time.Duration {
	return time.Second / time.Duration(c.FPS)
}

// PlaybackDuration is the time to traverse progress 0 → 1.
func (c *Config) PlaybackDuration() time.Duration {
	return time.Duration(c.Duration * float64(time.Second))
}

// Transform resolves the configured rigid transform. Either pointer is nil
// when that part of the input is absent or malformed.
func (c *Config) Transform() (*mathutil.Mat3, *mathutil.Vec3, error) {
	var rot *mathutil.Mat3
	var err error
	switch {
	case c.Rotation != nil:
		if len(c.Rotation) == 9 {
			var m mathutil.Mat3
			copy(m[:], c.Rotation)
			rot = &m
		}
	case c.EulerDegrees != nil:
		if len(c.EulerDegrees) == 3 {
			rot, err = eulerRotation(c.EulerOrder, c.EulerDegrees)
		}
	default:
		id := mathutil.Mat3Identity()
		rot = &id
	}

	var tr *mathutil.Vec3
	switch {
	case c.Translation == nil:
		tr = &mathutil.Vec3{}
	case len(c.Translation) == 3:
		tr = &mathutil.Vec3{c.Translation[0], c.Translation[1], c.Translation[2]}
	}
	return rot, tr, err
}

func eulerRotation(order string, deg []float64) (*mathutil.Mat3, error) {
	o, err := mathutil.ParseEulerOrder(order)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	m, err := mathutil.EulerToMat3(o,
		mathutil.Deg2Rad(deg[0]), mathutil.Deg2Rad(deg[1]), mathutil.Deg2Rad(deg[2]))
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &m, nil
}
