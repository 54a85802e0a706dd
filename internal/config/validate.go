package config

import (
	"errors"
	"fmt"

	"github.com/Faultbox/molviz/internal/geometry"
	"github.com/Faultbox/molviz/internal/logger"
)

// ErrInvalid marks every validation failure.
var ErrInvalid = errors.New("invalid config")

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	b := c.Build
	if b.Model < 0 {
		add("build.model must not be negative, got %d", b.Model)
	}
	if b.MeshVertexLimit <= 0 {
		add("build.mesh_vertex_limit must be positive, got %d", b.MeshVertexLimit)
	}
	if b.AtomCutoff < 0 {
		add("build.atom_cutoff must not be negative, got %d", b.AtomCutoff)
	}
	if b.BondFudgeFactor < 0 {
		add("build.bond_fudge_factor must not be negative, got %g", b.BondFudgeFactor)
	}
	if b.MaxExplicitBondDistance < 0 {
		add("build.max_explicit_bond_distance must not be negative, got %g", b.MaxExplicitBondDistance)
	}
	if _, err := geometry.ParseColorScheme(b.ColorScheme); err != nil {
		add("build.color_scheme %q", b.ColorScheme)
	}
	if _, err := geometry.ParseBallShape(b.BallShape); err != nil {
		add("build.ball_shape %q", b.BallShape)
	}
	if b.BallSize <= 0 || b.StickRadius <= 0 {
		add("build.ball_size and build.stick_radius must be positive")
	}
	if b.StickSides < 3 {
		add("build.stick_sides must be at least 3, got %d", b.StickSides)
	}

	if c.Transport.QueueSize < 0 {
		add("transport.queue_size must not be negative, got %d", c.Transport.QueueSize)
	}

	for id, m := range c.Transforms {
		if len(m) != 16 {
			add("transforms.%s has %d elements, want 16", id, len(m))
		}
	}

	if !logger.ValidLevel(c.Logging.Level) {
		add("logging.level %q", c.Logging.Level)
	}

	return errors.Join(errs...)
}
