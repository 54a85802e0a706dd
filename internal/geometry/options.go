// Package geometry turns a parsed model and its bonds into a ball-and-stick
// scene. Primitives of the same color are merged into shared vertex buffers
// capped at a fixed vertex budget.
package geometry

import (
	"errors"
	"fmt"
	"strings"
)

// Build errors.
var (
	ErrTooManyAtoms       = errors.New("too many atoms to render")
	ErrPrimitiveTooLarge  = errors.New("primitive exceeds mesh vertex limit")
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	ErrInvalidBallShape   = errors.New("invalid ball shape")
	ErrModelOutOfRange    = errors.New("model index out of range")
)

// ColorScheme selects how bonds are colored. Balls always use CPK element
// colors.
type ColorScheme uint8

const (
	SchemeElement   ColorScheme = iota // neutral bonds
	SchemeResidue                      // bonds within one residue by residue name
	SchemeStructure                    // helix, sheet or unassigned
	SchemeChain                        // palette by chain position
	SchemeNone                         // same as SchemeElement
)

var schemeNames = map[ColorScheme]string{
	SchemeElement:   "element",
	SchemeResidue:   "residue",
	SchemeStructure: "structure",
	SchemeChain:     "chain",
	SchemeNone:      "none",
}

// String returns the configuration name of the scheme.
func (c ColorScheme) String() string {
	if s, ok := schemeNames[c]; ok {
		return s
	}
	return fmt.Sprintf("ColorScheme(%d)", c)
}

// ParseColorScheme maps a configuration name to a scheme. The empty string
// and "cpk" select SchemeElement.
func ParseColorScheme(name string) (ColorScheme, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "element", "cpk":
		return SchemeElement, nil
	case "residue":
		return SchemeResidue, nil
	case "structure":
		return SchemeStructure, nil
	case "chain":
		return SchemeChain, nil
	case "none":
		return SchemeNone, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidColorScheme, name)
	}
}

// BallShape selects the atom primitive.
type BallShape uint8

const (
	BallBox BallShape = iota
	BallIcosahedron
)

// String returns the configuration name of the shape.
func (b BallShape) String() string {
	switch b {
	case BallBox:
		return "box"
	case BallIcosahedron:
		return "icosahedron"
	default:
		return fmt.Sprintf("BallShape(%d)", b)
	}
}

// ParseBallShape maps a configuration name to a shape.
func ParseBallShape(name string) (BallShape, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "box", "cube":
		return BallBox, nil
	case "icosahedron", "ico":
		return BallIcosahedron, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidBallShape, name)
	}
}

// Options controls geometry building.
type Options struct {
	// MergeLikeAtoms batches same-colored primitives into shared buffers.
	// When false every primitive becomes its own mesh node.
	MergeLikeAtoms bool

	// MeshVertexLimit caps the vertex count of one batch.
	MeshVertexLimit int

	// AtomCutoff aborts the build for larger models. Zero disables it.
	AtomCutoff int

	ColorScheme ColorScheme
	BallShape   BallShape

	BallSize    float32 // box edge, or icosahedron diameter
	StickRadius float32
	StickSides  int

	// Verbose logs empty batches and bond diagnostics.
	Verbose bool
}

// DefaultOptions returns the standard build settings.
func DefaultOptions() Options {
	return Options{
		MergeLikeAtoms:  true,
		MeshVertexLimit: 65000,
		AtomCutoff:      14000,
		ColorScheme:     SchemeElement,
		BallShape:       BallBox,
		BallSize:        0.2,
		StickRadius:     0.05,
		StickSides:      3,
	}
}

// withDefaults fills zero numeric fields from DefaultOptions.
func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.MeshVertexLimit <= 0 {
		o.MeshVertexLimit = d.MeshVertexLimit
	}
	if o.BallSize <= 0 {
		o.BallSize = d.BallSize
	}
	if o.StickRadius <= 0 {
		o.StickRadius = d.StickRadius
	}
	if o.StickSides < 3 {
		o.StickSides = d.StickSides
	}
	return o
}
