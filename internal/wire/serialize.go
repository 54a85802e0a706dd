package wire

import (
	"encoding/json"

	"go.uber.org/zap"

	"github.com/Faultbox/molviz/internal/logger"
	"github.com/Faultbox/molviz/internal/scene"
)

// Serialize flattens the subtree under the tree's root.
func Serialize(t *scene.Tree) (*Library, []byte) {
	return SerializeNode(t, t.Root())
}

// SerializeNode flattens the subtree rooted at from. The subtree root is
// recorded without a parent. Geometries and materials shared by several
// meshes are written once. User data is encoded as JSON; a value that cannot
// be encoded is logged and left out.
func SerializeNode(t *scene.Tree, from scene.NodeIndex) (*Library, []byte) {
	lib := newLibrary()
	if from == scene.NoNode {
		return lib, nil
	}

	// First pass: size the shared buffer.
	total := 0
	sized := make(map[*scene.Geometry]bool)
	t.Walk(from, func(i scene.NodeIndex, _ int) bool {
		m := t.Node(i).Mesh
		if m == nil || m.Geometry == nil || sized[m.Geometry] {
			return true
		}
		sized[m.Geometry] = true
		for _, name := range m.Geometry.Names() {
			total += align(m.Geometry.Attribute(name).ByteLength())
		}
		return true
	})

	buf := make([]byte, total)
	lib.ByteLength = total
	offset := 0

	// Second pass: record nodes and copy attribute data.
	t.Walk(from, func(i scene.NodeIndex, _ int) bool {
		n := t.Node(i)
		id := n.ID.String()

		pos, rot, scale := n.Transform.Decompose()
		rec := ObjectRecord{
			Name:     n.Name,
			Position: pos.Array(),
			Rotation: [4]float32{rot.X, rot.Y, rot.Z, rot.W},
			Scale:    scale.Array(),
			Children: make([]string, 0, len(t.Children(i))),
		}
		if p := t.Parent(i); p != scene.NoNode && i != from {
			rec.Parent = t.Node(p).ID.String()
		}
		for _, c := range t.Children(i) {
			rec.Children = append(rec.Children, t.Node(c).ID.String())
		}
		if n.UserData != nil {
			raw, err := json.Marshal(n.UserData)
			if err != nil {
				logger.Warn("user data not serialized", zap.String("object", n.Name), zap.Error(err))
			} else {
				rec.UserData = raw
			}
		}

		if m := n.Mesh; m != nil && m.Geometry != nil && m.Material != nil {
			geoID := m.Geometry.ID.String()
			matID := m.Material.ID.String()
			lib.Meshes[id] = MeshRecord{Geometry: geoID, Material: matID}
			rec.Mesh = id

			if _, ok := lib.Materials[matID]; !ok {
				lib.Materials[matID] = MaterialRecord{Name: m.Material.Name, Color: uint32(m.Material.Color)}
			}
			if _, ok := lib.Geometries[geoID]; !ok {
				attrs := make(map[string]AttributeRecord, len(m.Geometry.Names()))
				for _, name := range m.Geometry.Names() {
					a := m.Geometry.Attribute(name)
					copy(buf[offset:], a.Raw)
					attrs[name] = AttributeRecord{
						Stride: a.ItemSize,
						Offset: offset,
						Length: a.Len(),
						Type:   a.Type.String(),
					}
					offset += align(a.ByteLength())
				}
				lib.Geometries[geoID] = attrs
			}
		}

		lib.Objects[id] = rec
		lib.Order = append(lib.Order, id)
		return true
	})

	logger.Debug("scene serialized",
		zap.Int("objects", len(lib.Objects)),
		zap.Int("geometries", len(lib.Geometries)),
		zap.Int("bytes", total))

	return lib, buf
}
