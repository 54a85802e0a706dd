package scene

import (
	"errors"
	"testing"

	"github.com/Faultbox/molviz/pkg/math"
)

func triangle(x float32) *Geometry {
	g := NewGeometry()
	g.SetAttribute(AttrPosition, NewFloat32Attribute(3, []float32{
		x, 0, 0,
		x + 1, 0, 0,
		x, 1, 0,
	}))
	return g
}

func TestAttributeTypes(t *testing.T) {
	tests := []struct {
		typ  AttributeType
		tag  string
		size int
	}{
		{Int8, "Int8", 1},
		{Uint8, "Uint8", 1},
		{Uint8Clamped, "Uint8Clamped", 1},
		{Int16, "Int16", 2},
		{Uint16, "Uint16", 2},
		{Int32, "Int32", 4},
		{Uint32, "Uint32", 4},
		{Float32, "Float32", 4},
		{Float64, "Float64", 8},
	}

	for _, tt := range tests {
		if tt.typ.String() != tt.tag {
			t.Errorf("String() = %q, want %q", tt.typ.String(), tt.tag)
		}
		if tt.typ.Size() != tt.size {
			t.Errorf("%s Size() = %d, want %d", tt.tag, tt.typ.Size(), tt.size)
		}
		got, ok := ParseAttributeType(tt.tag)
		if !ok || got != tt.typ {
			t.Errorf("ParseAttributeType(%q) = %v, %v", tt.tag, got, ok)
		}
	}

	if _, ok := ParseAttributeType("BigInt64"); ok {
		t.Error("ParseAttributeType(BigInt64) should fail")
	}
}

func TestAttributeValues(t *testing.T) {
	a, err := NewAttribute(Int16, 1, []int16{-3, 7})
	if err != nil {
		t.Fatalf("NewAttribute() error: %v", err)
	}
	if a.Len() != 2 || a.ByteLength() != 4 {
		t.Errorf("Len/ByteLength = %d/%d, want 2/4", a.Len(), a.ByteLength())
	}
	if a.At(0) != -3 || a.At(1) != 7 {
		t.Errorf("At() = %v, %v", a.At(0), a.At(1))
	}
	if _, err := a.Float32s(); !errors.Is(err, ErrAttributeType) {
		t.Errorf("Float32s() on Int16 error = %v, want ErrAttributeType", err)
	}

	if _, err := NewAttribute(Float64, 1, []float32{1, 2, 3}); !errors.Is(err, ErrAttributeType) {
		t.Errorf("mismatched element size error = %v, want ErrAttributeType", err)
	}

	f := NewFloat32Attribute(3, []float32{1.5, -2, 3})
	vals, err := f.Float32s()
	if err != nil || len(vals) != 3 || vals[0] != 1.5 || vals[1] != -2 {
		t.Errorf("Float32s() = %v, %v", vals, err)
	}
	if f.Count() != 1 {
		t.Errorf("Count() = %d, want 1", f.Count())
	}

	c := f.Clone()
	c.Raw[0] ^= 0xff
	if f.At(0) != 1.5 {
		t.Error("Clone shares element data")
	}
}

func TestGeometryTranslateAndBounds(t *testing.T) {
	g := triangle(0)
	if g.VertexCount() != 3 {
		t.Fatalf("VertexCount() = %d, want 3", g.VertexCount())
	}

	if err := g.Translate(math.Vec3{X: -0.5, Y: -0.5, Z: 2}); err != nil {
		t.Fatalf("Translate() error: %v", err)
	}
	b := g.Bounds()
	want := Bounds{Min: math.Vec3{X: -0.5, Y: -0.5, Z: 2}, Max: math.Vec3{X: 0.5, Y: 0.5, Z: 2}}
	if b != want {
		t.Errorf("Bounds() = %+v, want %+v", b, want)
	}
	if c := b.Center(); c != (math.Vec3{X: 0, Y: 0, Z: 2}) {
		t.Errorf("Center() = %v", c)
	}
	if !EmptyBounds().IsEmpty() || b.IsEmpty() {
		t.Error("IsEmpty() gave the wrong answer")
	}
}

func TestTreeStructure(t *testing.T) {
	tr := NewTree("root")
	root := tr.Root()
	a := tr.AddChild(root, Node{Name: "a"})
	b := tr.AddChild(a, Node{Name: "b"})
	c := tr.AddChild(root, Node{Name: "c"})

	if tr.Parent(b) != a || tr.Parent(a) != root {
		t.Error("Parent() gave the wrong index")
	}

	var order []string
	tr.Walk(root, func(i NodeIndex, _ int) bool {
		order = append(order, tr.Node(i).Name)
		return true
	})
	want := []string{"root", "a", "b", "c"}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("Walk order = %v, want %v", order, want)
		}
	}

	if err := tr.Attach(b, a); !errors.Is(err, ErrCycle) {
		t.Errorf("Attach(b, a) error = %v, want ErrCycle", err)
	}
	if err := tr.Attach(c, b); err != nil {
		t.Fatalf("Attach(c, b) error: %v", err)
	}
	if len(tr.Children(a)) != 0 || tr.Parent(b) != c {
		t.Error("re-attach did not move the node")
	}
	if err := tr.Attach(root, NodeIndex(99)); !errors.Is(err, ErrNoSuchNode) {
		t.Errorf("Attach to missing node error = %v, want ErrNoSuchNode", err)
	}

	if tr.Find(tr.Node(c).ID) != c {
		t.Error("Find() did not locate node by ID")
	}
}

func TestTransforms(t *testing.T) {
	tr := NewTree("root")
	root := tr.Root()
	tr.Node(root).Transform = math.Scale(10, 10, 10)
	a := tr.AddChild(root, Node{Name: "a", Transform: math.Translate(1, 0, 0)})
	b := tr.AddChild(a, Node{Name: "b", Transform: math.Translate(0, 2, 0)})

	rel := tr.RelativeTransform(b, root).TransformVec3(math.Vec3{})
	if rel != (math.Vec3{X: 1, Y: 2, Z: 0}) {
		t.Errorf("RelativeTransform origin = %v, want (1,2,0)", rel)
	}
	world := tr.WorldTransform(b).TransformVec3(math.Vec3{})
	if world != (math.Vec3{X: 10, Y: 20, Z: 0}) {
		t.Errorf("WorldTransform origin = %v, want (10,20,0)", world)
	}
}

func TestRadius(t *testing.T) {
	tr := NewTree("root")
	root := tr.Root()
	tr.Node(root).Transform = math.Scale(100, 100, 100) // ignored
	mat := NewMaterial("white", 0xffffff)

	tr.AddChild(root, Node{Mesh: &Mesh{Geometry: triangle(0), Material: mat}})
	tr.AddChild(root, Node{
		Transform: math.Translate(0, 3, 0),
		Mesh:      &Mesh{Geometry: triangle(0), Material: mat},
	})

	// Farthest vertex is (0, 4, 0) after the child translation.
	if r := Radius(tr); !math.ApproxEqual(float64(r), 4, 1e-6) {
		t.Errorf("Radius() = %f, want 4", r)
	}

	b := TreeBounds(tr)
	if b.Max.Y != 4 || b.Min.Y != 0 {
		t.Errorf("TreeBounds() = %+v", b)
	}

	if r := Radius(NewTree("empty")); r != 0 {
		t.Errorf("Radius(empty) = %f, want 0", r)
	}
}

func TestMerge(t *testing.T) {
	tr := NewTree("molecule")
	sub := NewTree("ribbon")
	helix := sub.AddChild(sub.Root(), Node{Name: "helix1"})
	sub.AddChild(helix, Node{Name: "segment"})

	idx, err := tr.Merge(tr.Root(), sub)
	if err != nil {
		t.Fatalf("Merge() error: %v", err)
	}
	if tr.Node(idx).Name != "ribbon" || tr.Parent(idx) != tr.Root() {
		t.Error("merged root not attached under parent")
	}
	if tr.Len() != 4 {
		t.Errorf("Len() = %d, want 4", tr.Len())
	}
	if tr.Node(idx).ID != sub.Node(sub.Root()).ID {
		t.Error("Merge should keep node IDs")
	}

	if _, err := tr.Merge(tr.Root(), New()); !errors.Is(err, ErrNoSuchNode) {
		t.Errorf("Merge(empty) error = %v, want ErrNoSuchNode", err)
	}
}
