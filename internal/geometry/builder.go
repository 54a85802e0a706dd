package geometry

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/molviz/internal/bonds"
	"github.com/Faultbox/molviz/internal/chem"
	"github.com/Faultbox/molviz/internal/logger"
	"github.com/Faultbox/molviz/internal/scene"
	"github.com/Faultbox/molviz/pkg/math"
	"github.com/Faultbox/molviz/pkg/pdb"
)

// Build creates the ball-and-stick scene for model index modelIdx of s.
//
// Every atom becomes a ball colored by element and every bond in conn a
// stick colored by opts.ColorScheme. The whole scene is centered on the
// midpoint of its vertex extent. The returned tree's root is named after
// the structure and carries s as user data; its children are the batches in
// creation order.
func Build(s *pdb.Structure, modelIdx int, conn *bonds.Connectivity, opts Options) (*scene.Tree, error) {
	if modelIdx < 0 || modelIdx >= len(s.Models) {
		return nil, fmt.Errorf("%w: %d of %d", ErrModelOutOfRange, modelIdx, len(s.Models))
	}
	atoms := s.Models[modelIdx].Atoms

	if opts.AtomCutoff > 0 && len(atoms) > opts.AtomCutoff {
		return nil, fmt.Errorf("%w: %d atoms, cutoff %d", ErrTooManyAtoms, len(atoms), opts.AtomCutoff)
	}
	opts = opts.withDefaults()

	colorer, err := newBondColorer(opts.ColorScheme, s, atoms)
	if err != nil {
		return nil, err
	}

	log := logger.Named("geometry")
	set := newBatchSet(opts.MeshVertexLimit, opts.MergeLikeAtoms)

	// The default bond batch always exists when merging, even if empty.
	if opts.MergeLikeAtoms {
		key := batchKey{bond: true, color: colorer.fallback}
		set.openBatch(key, key.name())
	}

	ball := ballTemplate(opts)
	for i := range atoms {
		a := &atoms[i]
		elem := strings.ToLower(chem.ElementSymbol(a.Element, a.Name))
		key := batchKey{element: elem, color: chem.ElementColor(elem)}
		name := fmt.Sprintf("atom_%d", a.Serial)
		if err := set.add(key, name, ball.translated(a.Position)); err != nil {
			return nil, err
		}
	}

	if conn != nil {
		stick := cylinderTemplate(opts.StickRadius, opts.StickSides)
		for _, p := range conn.Pairs() {
			if p.A < 0 || p.B >= len(atoms) {
				continue
			}
			a, b := &atoms[p.A], &atoms[p.B]
			m, ok := stickTransform(a.Position, b.Position)
			if !ok {
				continue
			}
			key := batchKey{bond: true, color: colorer.resolve(a, b)}
			name := fmt.Sprintf("bond_%d_%d", a.Serial, b.Serial)
			if err := set.add(key, name, stick.instance(m)); err != nil {
				return nil, err
			}
		}
	}

	var offset math.Vec3
	if bb := set.bounds(); !bb.IsEmpty() {
		offset = bb.Center().Negate()
		set.translate(offset)
	}
	off := offset.Array()
	log.Debug("centered model",
		zap.String("structure", s.Name),
		zap.Float32s("offset", off[:]))

	tree := scene.NewTree(s.Name)
	root := tree.Root()
	tree.Node(root).UserData = s

	for _, b := range set.batches {
		geo := scene.NewGeometry()
		flat := make([]float32, 0, 3*len(b.positions))
		for _, p := range b.positions {
			flat = append(flat, p.X, p.Y, p.Z)
		}
		geo.SetAttribute(scene.AttrPosition, scene.NewFloat32Attribute(3, flat))
		geo.SetAttribute(scene.AttrNormal, scene.NewFloat32Attribute(3, faceNormals(b.positions)))

		tree.AddChild(root, scene.Node{
			Name: b.name,
			Mesh: &scene.Mesh{Geometry: geo, Material: b.material},
		})
	}

	if opts.Verbose {
		for _, b := range set.batches {
			if b.vertexCount() == 0 {
				log.Info("no faces in mesh", zap.String("mesh", b.name))
			}
		}
		if conn != nil {
			bonds.Diagnose(atoms, conn).Log(log, atoms)
		}
	}

	return tree, nil
}

// Summary counts what a built scene contains.
type Summary struct {
	Meshes    int
	Vertices  int
	Materials int
}

// Summarize counts meshes, vertices and distinct materials under the root.
func Summarize(t *scene.Tree) Summary {
	var s Summary
	seen := make(map[*scene.Material]struct{})
	for _, i := range t.Meshes() {
		m := t.Node(i).Mesh
		s.Meshes++
		if m.Geometry != nil {
			s.Vertices += m.Geometry.VertexCount()
		}
		if _, ok := seen[m.Material]; !ok && m.Material != nil {
			seen[m.Material] = struct{}{}
			s.Materials++
		}
	}
	return s
}
