package wire

import (
	"errors"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/Faultbox/molviz/internal/chem"
	"github.com/Faultbox/molviz/internal/logger"
	"github.com/Faultbox/molviz/internal/scene"
	"github.com/Faultbox/molviz/pkg/math"
)

// Result is a rebuilt tree plus the problems that were worked around.
type Result struct {
	Tree *scene.Tree

	// Nodes maps descriptor object IDs to the rebuilt nodes. Rebuilt nodes
	// get fresh IDs; this map is the only link back to the descriptor.
	Nodes map[string]scene.NodeIndex

	// Skipped holds one error per geometry or mesh that could not be
	// rebuilt. The affected nodes exist but carry no mesh.
	Skipped []error
}

// Deserialize rebuilds a tree from lib and buf. Attribute data is not
// copied: every attribute is a view into buf. User data comes back as the
// json.RawMessage it was stored as.
//
// Geometries with an unknown type tag are dropped and their meshes left
// empty. A buffer shorter than an attribute it must hold is a hard error.
func Deserialize(lib *Library, buf []byte) (*Result, error) {
	if len(buf) < lib.ByteLength {
		return nil, fmt.Errorf("%w: have %d bytes, descriptor needs %d", ErrBufferTooShort, len(buf), lib.ByteLength)
	}
	res := &Result{Tree: scene.New()}

	materials := make(map[string]*scene.Material, len(lib.Materials))
	for id, rec := range lib.Materials {
		materials[id] = scene.NewMaterial(rec.Name, chem.Color(rec.Color))
	}

	geometries := make(map[string]*scene.Geometry, len(lib.Geometries))
	for _, id := range sortedKeys(lib.Geometries) {
		geo, err := rebuildGeometry(id, lib.Geometries[id], buf)
		if err != nil {
			if errors.Is(err, ErrBufferTooShort) {
				return nil, err
			}
			logger.Warn("dropping geometry", zap.String("geometry", id), zap.Error(err))
			res.Skipped = append(res.Skipped, err)
			continue
		}
		geometries[id] = geo
	}

	t := res.Tree
	nodes := make(map[string]scene.NodeIndex, len(lib.Objects))
	order := objectOrder(lib)

	for _, id := range order {
		rec := lib.Objects[id]
		n := scene.Node{
			Name: rec.Name,
			Transform: math.Compose(
				math.Vec3FromArray(rec.Position),
				math.Quat{X: rec.Rotation[0], Y: rec.Rotation[1], Z: rec.Rotation[2], W: rec.Rotation[3]},
				math.Vec3FromArray(rec.Scale),
			),
			UserData: userData(rec),
		}

		if rec.Mesh != "" {
			mesh, err := rebuildMesh(lib, rec.Mesh, geometries, materials)
			if err != nil {
				res.Skipped = append(res.Skipped, fmt.Errorf("object %s: %w", id, err))
			} else {
				n.Mesh = mesh
			}
		}
		nodes[id] = t.AddNode(n)
	}

	// Children lists define sibling order. A parent link that its parent's
	// list omits is honored afterwards, appended at the end.
	for _, id := range order {
		for _, cid := range lib.Objects[id].Children {
			res.link(nodes, id, cid)
		}
	}
	for _, id := range order {
		rec := lib.Objects[id]
		if rec.Parent != "" && t.Parent(nodes[id]) == scene.NoNode {
			if _, ok := nodes[rec.Parent]; ok {
				res.link(nodes, rec.Parent, id)
			}
		}
	}

	root := scene.NoNode
	for _, id := range order {
		if i := nodes[id]; t.Parent(i) == scene.NoNode {
			root = i
			break
		}
	}
	if root == scene.NoNode {
		return nil, ErrEmptyLibrary
	}
	res.Nodes = nodes
	t.SetRoot(root)

	return res, nil
}

// link attaches child cid under parent id, recording what it cannot do.
func (res *Result) link(nodes map[string]scene.NodeIndex, id, cid string) {
	t := res.Tree
	p := nodes[id]
	c, ok := nodes[cid]
	switch {
	case !ok:
		res.Skipped = append(res.Skipped, fmt.Errorf("object %s: %w: child %s", id, ErrDanglingReference, cid))
	case t.Parent(c) == p:
	case t.Parent(c) != scene.NoNode:
		res.Skipped = append(res.Skipped, fmt.Errorf("object %s: %w: child %s already has a parent", id, ErrDuplicateChild, cid))
	default:
		if err := t.Attach(p, c); err != nil {
			res.Skipped = append(res.Skipped, fmt.Errorf("object %s child %s: %w", id, cid, err))
		}
	}
}

// userData returns the record's encoded user data as a json.RawMessage, or
// nil when there is none.
func userData(rec ObjectRecord) any {
	if len(rec.UserData) == 0 {
		return nil
	}
	return rec.UserData
}

func rebuildGeometry(id string, attrs map[string]AttributeRecord, buf []byte) (*scene.Geometry, error) {
	geo := scene.NewGeometry()

	for _, name := range sortedKeys(attrs) {
		rec := attrs[name]
		typ, ok := scene.ParseAttributeType(rec.Type)
		if !ok {
			return nil, fmt.Errorf("geometry %s attribute %s: %w: %q", id, name, ErrUnknownAttributeType, rec.Type)
		}
		if rec.Offset < 0 || rec.Length < 0 || rec.Offset > len(buf) ||
			rec.Length > (len(buf)-rec.Offset)/typ.Size() {
			return nil, fmt.Errorf("geometry %s attribute %s: %w: %d %s elements at %d of %d",
				id, name, ErrBufferTooShort, rec.Length, typ, rec.Offset, len(buf))
		}
		end := rec.Offset + rec.Length*typ.Size()
		geo.SetAttribute(name, &scene.Attribute{
			Type:     typ,
			ItemSize: rec.Stride,
			Raw:      buf[rec.Offset:end:end],
		})
	}
	return geo, nil
}

func rebuildMesh(lib *Library, meshID string, geometries map[string]*scene.Geometry, materials map[string]*scene.Material) (*scene.Mesh, error) {
	rec, ok := lib.Meshes[meshID]
	if !ok {
		return nil, fmt.Errorf("%w: mesh %s", ErrDanglingReference, meshID)
	}
	geo, ok := geometries[rec.Geometry]
	if !ok {
		return nil, fmt.Errorf("%w: geometry %s", ErrDanglingReference, rec.Geometry)
	}
	mat, ok := materials[rec.Material]
	if !ok {
		return nil, fmt.Errorf("%w: material %s", ErrDanglingReference, rec.Material)
	}
	return &scene.Mesh{Geometry: geo, Material: mat}, nil
}

// objectOrder returns lib.Order followed by any objects it omits, sorted.
func objectOrder(lib *Library) []string {
	order := make([]string, 0, len(lib.Objects))
	listed := make(map[string]bool, len(lib.Order))
	for _, id := range lib.Order {
		if _, ok := lib.Objects[id]; ok && !listed[id] {
			listed[id] = true
			order = append(order, id)
		}
	}
	for _, id := range sortedKeys(lib.Objects) {
		if !listed[id] {
			order = append(order, id)
		}
	}
	return order
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
