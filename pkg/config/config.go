// Package config loads wiregraph settings from TOML.
//
// A configuration file selects the geometry policy, the edge policy, the
// engine's diff tolerance and render defaults:
//
//	[geometry]
//	kind = "orthogonal"   # or "octilinear"
//	epsilon = 1e-6
//	grid = 0              # 0 disables snapping
//	padding = 10
//
//	[policy]
//	layered = false
//
//	[engine]
//	diff_tolerance = 1e-9
//
//	[render]
//	scale = 1.0
//	cache = true
//
// Every key is optional; missing keys keep their [Default] value.
package config

import (
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/wiregraph/pkg/engine"
	"github.com/matzehuels/wiregraph/pkg/errors"
	"github.com/matzehuels/wiregraph/pkg/geom"
	"github.com/matzehuels/wiregraph/pkg/policy"
)

// Geometry kinds.
const (
	KindOrthogonal = "orthogonal"
	KindOctilinear = "octilinear"
)

// Config is the full configuration.
type Config struct {
	Geometry GeometryConfig `toml:"geometry"`
	Policy   PolicyConfig   `toml:"policy"`
	Engine   EngineConfig   `toml:"engine"`
	Render   RenderConfig   `toml:"render"`
}

// GeometryConfig selects and tunes the geometry policy.
type GeometryConfig struct {
	Kind    string  `toml:"kind"`
	Epsilon float64 `toml:"epsilon"`
	Grid    float64 `toml:"grid"`
	Padding float64 `toml:"padding"`
}

// PolicyConfig selects the edge policy.
type PolicyConfig struct {
	// Layered keeps traces on different copper layers apart.
	Layered bool `toml:"layered"`
}

// EngineConfig tunes the engine.
type EngineConfig struct {
	DiffTolerance float64 `toml:"diff_tolerance"`
}

// RenderConfig holds render defaults.
type RenderConfig struct {
	Scale float64 `toml:"scale"`
	Cache bool    `toml:"cache"`
	// CacheDir overrides the render cache location.
	CacheDir string `toml:"cache_dir,omitempty"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Geometry: GeometryConfig{
			Kind:    KindOrthogonal,
			Epsilon: geom.DefaultEpsilon,
			Padding: geom.DefaultPadding,
		},
		Engine: EngineConfig{DiffTolerance: engine.DefaultDiffTolerance},
		Render: RenderConfig{Scale: 1, Cache: true},
	}
}

// DefaultPath returns the per-user configuration file location, or "" when
// no config directory is known.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "wiregraph", "config.toml")
}

// Load reads and validates a configuration file.
func Load(path string) (Config, error) {
	if err := errors.ValidatePath(path); err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
	}
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}
	return Parse(data)
}

// Parse decodes TOML over the defaults and validates the result. Unknown keys
// are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown config key %q", undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	switch c.Geometry.Kind {
	case KindOrthogonal, KindOctilinear:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "geometry.kind must be %q or %q, got %q",
			KindOrthogonal, KindOctilinear, c.Geometry.Kind)
	}
	if c.Geometry.Epsilon <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "geometry.epsilon must be positive")
	}
	if c.Geometry.Grid < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "geometry.grid must not be negative")
	}
	if c.Geometry.Grid > 0 && c.Geometry.Grid <= c.Geometry.Epsilon {
		return errors.New(errors.ErrCodeInvalidConfig, "geometry.grid must exceed geometry.epsilon")
	}
	if c.Geometry.Padding <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "geometry.padding must be positive")
	}
	if c.Engine.DiffTolerance < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "engine.diff_tolerance must not be negative")
	}
	if c.Render.Scale <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "render.scale must be positive")
	}
	return nil
}

// Encode writes the configuration as TOML.
func (c Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// GeometryPolicy builds the configured geometry policy.
func (c Config) GeometryPolicy() geom.Policy {
	g := c.Geometry
	if g.Kind == KindOctilinear {
		return geom.Octilinear{Grid: g.Grid, Eps: g.Epsilon, Padding: g.Padding}
	}
	return geom.Orthogonal{Grid: g.Grid, Eps: g.Epsilon, Padding: g.Padding}
}

// EdgePolicy builds the configured edge policy.
func (c Config) EdgePolicy() policy.EdgePolicy {
	if c.Policy.Layered {
		return policy.Layered{}
	}
	return policy.Schematic{}
}

// EngineOptions turns the configuration into engine options.
func (c Config) EngineOptions(logger *log.Logger) engine.Options {
	return engine.Options{
		Geometry:      c.GeometryPolicy(),
		Vertices:      policy.DefaultVertexPolicy{},
		Edges:         c.EdgePolicy(),
		Logger:        logger,
		DiffTolerance: c.Engine.DiffTolerance,
	}
}
