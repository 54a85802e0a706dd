// Package loader runs the whole text-to-scene pipeline: parse a PDB
// document, infer its bonds and batch it into a ball-and-stick scene.
package loader

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/molviz/internal/bonds"
	"github.com/Faultbox/molviz/internal/geometry"
	"github.com/Faultbox/molviz/internal/logger"
	"github.com/Faultbox/molviz/internal/scene"
	"github.com/Faultbox/molviz/pkg/math"
	"github.com/Faultbox/molviz/pkg/pdb"
)

// ErrInvalidTransform is returned when a configured transform is not a
// 16-element matrix.
var ErrInvalidTransform = errors.New("transform must have 16 elements")

// DefaultPosition is where Normalize places a model with no configured
// transform.
var DefaultPosition = math.Vec3{X: 0, Y: 0, Z: 1}

// Options configures one pipeline run.
type Options struct {
	Model    int // index into Structure.Models
	Bonds    bonds.Options
	Geometry geometry.Options
}

// DefaultOptions builds the first model with default inference and batching.
func DefaultOptions() Options {
	return Options{
		Bonds:    bonds.DefaultOptions(),
		Geometry: geometry.DefaultOptions(),
	}
}

// BuildStructure infers bonds for the selected model of s and batches it.
func BuildStructure(s *pdb.Structure, opts Options) (*scene.Tree, error) {
	if opts.Model < 0 || opts.Model >= len(s.Models) {
		return nil, fmt.Errorf("%w: %d of %d", geometry.ErrModelOutOfRange, opts.Model, len(s.Models))
	}
	log := logger.Named("loader")
	start := time.Now()

	atoms := s.Models[opts.Model].Atoms
	res := bonds.Infer(atoms, s.Bonds, opts.Bonds)

	tree, err := geometry.Build(s, opts.Model, res.Connectivity, opts.Geometry)
	if err != nil {
		return nil, fmt.Errorf("building %s: %w", s.Name, err)
	}

	sum := geometry.Summarize(tree)
	log.Info("structure built",
		zap.String("structure", s.Name),
		zap.Int("atoms", len(atoms)),
		zap.Int("bonds", res.Connectivity.Len()),
		zap.Int("meshes", sum.Meshes),
		zap.Int("vertices", sum.Vertices),
		zap.Duration("elapsed", time.Since(start)))

	return tree, nil
}

// BuildText parses text and builds it. name becomes the root node name.
func BuildText(name, text string, opts Options) (*scene.Tree, error) {
	s := pdb.Parse(text)
	s.Name = name
	return BuildStructure(s, opts)
}

// BuildFile reads the document at path and builds it.
func BuildFile(path string, opts Options) (*scene.Tree, error) {
	s, err := pdb.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return BuildStructure(s, opts)
}

// Normalize sets the root transform of t for presentation. A transform
// configured for molID is used as is; otherwise the model is scaled to unit
// radius and moved to DefaultPosition.
func Normalize(t *scene.Tree, transforms map[string][]float32, molID string) error {
	root := t.Root()
	if root == scene.NoNode {
		return scene.ErrNoSuchNode
	}

	if v, ok := transforms[molID]; ok {
		m, ok := math.Mat4FromSlice(v)
		if !ok {
			return fmt.Errorf("%w: %s has %d", ErrInvalidTransform, molID, len(v))
		}
		t.Node(root).Transform = m
		return nil
	}

	scale := float32(1)
	if r := scene.Radius(t); r > 0 {
		scale = 1 / r
	}
	t.Node(root).Transform = math.Compose(DefaultPosition, math.QuatIdentity(), math.Vec3{X: scale, Y: scale, Z: scale})
	return nil
}

// Attach merges an externally loaded subtree, such as a ribbon model, under
// the root of t.
func Attach(t *scene.Tree, sub *scene.Tree) (scene.NodeIndex, error) {
	i, err := t.Merge(t.Root(), sub)
	if err != nil {
		return scene.NoNode, fmt.Errorf("attaching subtree: %w", err)
	}
	return i, nil
}
