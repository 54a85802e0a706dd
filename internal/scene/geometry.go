package scene

import (
	"github.com/google/uuid"

	"github.com/Faultbox/molviz/internal/chem"
	"github.com/Faultbox/molviz/pkg/math"
)

// Standard attribute names.
const (
	AttrPosition = "position"
	AttrNormal   = "normal"
)

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// EmptyBounds returns an inverted box that any point will expand.
func EmptyBounds() Bounds {
	return Bounds{
		Min: math.Vec3{X: 1e30, Y: 1e30, Z: 1e30},
		Max: math.Vec3{X: -1e30, Y: -1e30, Z: -1e30},
	}
}

// Extend grows the box to include p.
func (b *Bounds) Extend(p math.Vec3) {
	b.Min = b.Min.Min(p)
	b.Max = b.Max.Max(p)
}

// Union grows the box to include other.
func (b *Bounds) Union(other Bounds) {
	if other.IsEmpty() {
		return
	}
	b.Extend(other.Min)
	b.Extend(other.Max)
}

// IsEmpty reports whether no point has been added.
func (b Bounds) IsEmpty() bool {
	return b.Min.X > b.Max.X
}

// Center returns the midpoint of the box.
func (b Bounds) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Geometry is a set of named vertex attributes.
type Geometry struct {
	ID    uuid.UUID
	attrs map[string]*Attribute
	names []string
}

// NewGeometry returns an empty geometry with a fresh ID.
func NewGeometry() *Geometry {
	return &Geometry{ID: uuid.New(), attrs: make(map[string]*Attribute)}
}

// SetAttribute adds or replaces a named attribute.
func (g *Geometry) SetAttribute(name string, a *Attribute) {
	if _, ok := g.attrs[name]; !ok {
		g.names = append(g.names, name)
	}
	g.attrs[name] = a
}

// Attribute returns the named attribute, or nil.
func (g *Geometry) Attribute(name string) *Attribute {
	return g.attrs[name]
}

// Names returns the attribute names in insertion order.
func (g *Geometry) Names() []string {
	return g.names
}

// VertexCount returns the number of positions.
func (g *Geometry) VertexCount() int {
	if pos := g.attrs[AttrPosition]; pos != nil {
		return pos.Count()
	}
	return 0
}

// ByteLength returns the combined size of all attribute data.
func (g *Geometry) ByteLength() int {
	n := 0
	for _, a := range g.attrs {
		n += a.ByteLength()
	}
	return n
}

// Positions decodes the position attribute.
func (g *Geometry) Positions() ([]math.Vec3, error) {
	pos := g.attrs[AttrPosition]
	if pos == nil {
		return nil, nil
	}
	flat, err := pos.Float32s()
	if err != nil {
		return nil, err
	}
	out := make([]math.Vec3, len(flat)/3)
	for i := range out {
		out[i] = math.Vec3{X: flat[3*i], Y: flat[3*i+1], Z: flat[3*i+2]}
	}
	return out, nil
}

// Bounds returns the box around all positions.
func (g *Geometry) Bounds() Bounds {
	b := EmptyBounds()
	pts, err := g.Positions()
	if err != nil {
		return b
	}
	for _, p := range pts {
		b.Extend(p)
	}
	return b
}

// Translate offsets every position by d.
func (g *Geometry) Translate(d math.Vec3) error {
	pts, err := g.Positions()
	if err != nil || pts == nil {
		return err
	}
	flat := make([]float32, 0, 3*len(pts))
	for _, p := range pts {
		p = p.Add(d)
		flat = append(flat, p.X, p.Y, p.Z)
	}
	g.attrs[AttrPosition] = NewFloat32Attribute(3, flat)
	return nil
}

// Material is a flat-colored surface.
type Material struct {
	ID    uuid.UUID
	Name  string
	Color chem.Color
}

// NewMaterial returns a material with a fresh ID.
func NewMaterial(name string, color chem.Color) *Material {
	return &Material{ID: uuid.New(), Name: name, Color: color}
}

// Mesh pairs a geometry with a material. Both may be shared between meshes.
type Mesh struct {
	Geometry *Geometry
	Material *Material
}
