// Package config handles molviz configuration loading and management.
package config

import (
	"fmt"

	"github.com/Faultbox/molviz/internal/bonds"
	"github.com/Faultbox/molviz/internal/geometry"
	"github.com/Faultbox/molviz/internal/loader"
	"github.com/Faultbox/molviz/internal/transport"
)

// Config holds all molviz settings.
type Config struct {
	Build     BuildConfig     `yaml:"build" toml:"build"`
	Transport TransportConfig `yaml:"transport" toml:"transport"`
	Logging   LoggingConfig   `yaml:"logging" toml:"logging"`

	// Transforms maps a molecule ID to a column-major 4x4 root transform
	// used instead of unit-radius normalization.
	Transforms map[string][]float32 `yaml:"transforms,omitempty" toml:"transforms,omitempty"`
}

// BuildConfig holds parsing, bond inference and batching settings.
type BuildConfig struct {
	Model                   int     `yaml:"model" toml:"model"`
	MergeLikeAtoms          bool    `yaml:"merge_like_atoms" toml:"merge_like_atoms"`
	MeshVertexLimit         int     `yaml:"mesh_vertex_limit" toml:"mesh_vertex_limit"`
	AtomCutoff              int     `yaml:"atom_cutoff" toml:"atom_cutoff"`
	BondFudgeFactor         float32 `yaml:"bond_fudge_factor" toml:"bond_fudge_factor"`
	AdjacencyFilter         bool    `yaml:"adjacency_filter" toml:"adjacency_filter"`
	MaxExplicitBondDistance float32 `yaml:"max_explicit_bond_distance" toml:"max_explicit_bond_distance"`
	ColorScheme             string  `yaml:"color_scheme" toml:"color_scheme"`
	BallShape               string  `yaml:"ball_shape" toml:"ball_shape"`
	BallSize                float32 `yaml:"ball_size" toml:"ball_size"`
	StickRadius             float32 `yaml:"stick_radius" toml:"stick_radius"`
	StickSides              int     `yaml:"stick_sides" toml:"stick_sides"`
	Verbose                 bool    `yaml:"verbose" toml:"verbose"`
}

// TransportConfig holds worker settings.
type TransportConfig struct {
	UseWorker bool `yaml:"use_worker" toml:"use_worker"`
	QueueSize int  `yaml:"queue_size" toml:"queue_size"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level" toml:"level"`
	LogFile string `yaml:"log_file" toml:"log_file"`
	JSON    bool   `yaml:"json" toml:"json"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	g := geometry.DefaultOptions()
	b := bonds.DefaultOptions()
	return &Config{
		Build: BuildConfig{
			MergeLikeAtoms:          g.MergeLikeAtoms,
			MeshVertexLimit:         g.MeshVertexLimit,
			AtomCutoff:              g.AtomCutoff,
			BondFudgeFactor:         b.FudgeFactor,
			AdjacencyFilter:         b.AdjacencyFilter,
			MaxExplicitBondDistance: b.MaxExplicitDistance,
			ColorScheme:             g.ColorScheme.String(),
			BallShape:               g.BallShape.String(),
			BallSize:                g.BallSize,
			StickRadius:             g.StickRadius,
			StickSides:              g.StickSides,
		},
		Transport: TransportConfig{
			UseWorker: true,
			QueueSize: transport.DefaultQueueSize,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// LoaderOptions converts the build section into pipeline options.
func (c *Config) LoaderOptions() (loader.Options, error) {
	scheme, err := geometry.ParseColorScheme(c.Build.ColorScheme)
	if err != nil {
		return loader.Options{}, fmt.Errorf("build.color_scheme: %w", err)
	}
	shape, err := geometry.ParseBallShape(c.Build.BallShape)
	if err != nil {
		return loader.Options{}, fmt.Errorf("build.ball_shape: %w", err)
	}

	return loader.Options{
		Model: c.Build.Model,
		Bonds: bonds.Options{
			FudgeFactor:         c.Build.BondFudgeFactor,
			AdjacencyFilter:     c.Build.AdjacencyFilter,
			MaxExplicitDistance: c.Build.MaxExplicitBondDistance,
		},
		Geometry: geometry.Options{
			MergeLikeAtoms:  c.Build.MergeLikeAtoms,
			MeshVertexLimit: c.Build.MeshVertexLimit,
			AtomCutoff:      c.Build.AtomCutoff,
			ColorScheme:     scheme,
			BallShape:       shape,
			BallSize:        c.Build.BallSize,
			StickRadius:     c.Build.StickRadius,
			StickSides:      c.Build.StickSides,
			Verbose:         c.Build.Verbose,
		},
	}, nil
}

// NewClient returns a transport client for the configured build options,
// backed by a worker when the transport section asks for one.
func (c *Config) NewClient() (*transport.Client, error) {
	opts, err := c.LoaderOptions()
	if err != nil {
		return nil, err
	}
	var b transport.Boundary
	if c.Transport.UseWorker {
		b = transport.NewWorker(c.Transport.QueueSize)
	}
	return transport.NewClient(b, transport.Options{Loader: opts}), nil
}
