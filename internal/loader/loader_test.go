package loader

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Faultbox/molviz/internal/geometry"
	"github.com/Faultbox/molviz/internal/scene"
	"github.com/Faultbox/molviz/pkg/math"
	"github.com/Faultbox/molviz/pkg/pdb"
)

func atomLine(serial int, name, elem string, x, y, z float32) string {
	return pdb.FormatAtom(pdb.Atom{
		Serial:    serial,
		Name:      name,
		ResName:   "GLY",
		ChainID:   "A",
		ResSeq:    1,
		Position:  math.Vec3{X: x, Y: y, Z: z},
		Occupancy: 1,
		Element:   elem,
	})
}

// carbonNitrogen is a two-atom document with one inferable bond.
func carbonNitrogen() string {
	return strings.Join([]string{
		atomLine(1, "C", "C", 0, 0, 0),
		atomLine(2, "N", "N", 1.4, 0, 0),
		"END",
	}, "\n")
}

func TestBuildText(t *testing.T) {
	tree, err := BuildText("cn", carbonNitrogen(), DefaultOptions())
	if err != nil {
		t.Fatalf("BuildText: %v", err)
	}
	if got := tree.Node(tree.Root()).Name; got != "cn" {
		t.Errorf("root = %q, want cn", got)
	}
	sum := geometry.Summarize(tree)
	if sum.Meshes != 3 {
		t.Errorf("meshes = %d, want 3", sum.Meshes)
	}
	if sum.Vertices != 90 {
		t.Errorf("vertices = %d, want 90", sum.Vertices)
	}
}

func TestBuildFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "1abc.pdb")
	if err := os.WriteFile(path, []byte(carbonNitrogen()), 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	tree, err := BuildFile(path, DefaultOptions())
	if err != nil {
		t.Fatalf("BuildFile: %v", err)
	}
	if got := tree.Node(tree.Root()).Name; got != "1abc" {
		t.Errorf("root = %q, want 1abc", got)
	}

	if _, err := BuildFile(filepath.Join(t.TempDir(), "missing.pdb"), DefaultOptions()); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file err = %v, want ErrNotExist", err)
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Options)
		want   error
	}{
		{"model past end", func(o *Options) { o.Model = 1 }, geometry.ErrModelOutOfRange},
		{"negative model", func(o *Options) { o.Model = -1 }, geometry.ErrModelOutOfRange},
		{"atom cutoff", func(o *Options) { o.Geometry.AtomCutoff = 1 }, geometry.ErrTooManyAtoms},
		{"bad scheme", func(o *Options) { o.Geometry.ColorScheme = geometry.ColorScheme(99) }, geometry.ErrInvalidColorScheme},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.modify(&opts)
			_, err := BuildText("cn", carbonNitrogen(), opts)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestNormalizeDefault(t *testing.T) {
	tree, err := BuildText("cn", carbonNitrogen(), DefaultOptions())
	if err != nil {
		t.Fatalf("BuildText: %v", err)
	}
	if err := Normalize(tree, nil, "cn"); err != nil {
		t.Fatalf("Normalize: %v", err)
	}

	var max float32
	for _, i := range tree.Meshes() {
		pts, err := tree.Node(i).Mesh.Geometry.Positions()
		if err != nil {
			t.Fatalf("Positions: %v", err)
		}
		m := tree.WorldTransform(i)
		for _, p := range pts {
			if d := m.TransformVec3(p).Sub(DefaultPosition).Length(); d > max {
				max = d
			}
		}
	}
	if !math.ApproxEqual(float64(max), 1, 1e-5) {
		t.Errorf("normalized radius = %f, want 1", max)
	}
}

func TestNormalizeConfigured(t *testing.T) {
	tree, err := BuildText("cn", carbonNitrogen(), DefaultOptions())
	if err != nil {
		t.Fatalf("BuildText: %v", err)
	}

	want := math.Translate(1, 2, 3).Mul(math.RotateY(0.5))
	transforms := map[string][]float32{
		"cn":  want.Slice(),
		"bad": {1, 0, 0},
	}

	if err := Normalize(tree, transforms, "cn"); err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if got := tree.Node(tree.Root()).Transform; !got.ApproxEqual(want, 1e-6) {
		t.Errorf("root transform = %v, want %v", got, want)
	}

	if err := Normalize(tree, transforms, "bad"); !errors.Is(err, ErrInvalidTransform) {
		t.Errorf("err = %v, want ErrInvalidTransform", err)
	}
	if err := Normalize(scene.New(), nil, "cn"); !errors.Is(err, scene.ErrNoSuchNode) {
		t.Errorf("empty tree err = %v, want ErrNoSuchNode", err)
	}
}

func TestNormalizeEmptyModel(t *testing.T) {
	tree := scene.NewTree("empty")
	if err := Normalize(tree, nil, "empty"); err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	want := math.Translate(0, 0, 1)
	if got := tree.Node(tree.Root()).Transform; !got.ApproxEqual(want, 1e-6) {
		t.Errorf("root transform = %v, want %v", got, want)
	}
}

func TestAttach(t *testing.T) {
	tree, err := BuildText("cn", carbonNitrogen(), DefaultOptions())
	if err != nil {
		t.Fatalf("BuildText: %v", err)
	}
	before := tree.Len()

	ribbon := scene.NewTree("ribbon")
	ribbon.AddChild(ribbon.Root(), scene.Node{Name: "helix"})

	i, err := Attach(tree, ribbon)
	if err != nil {
		t.Fatalf("Attach: %v", err)
	}
	if tree.Len() != before+2 {
		t.Errorf("nodes = %d, want %d", tree.Len(), before+2)
	}
	if tree.Parent(i) != tree.Root() {
		t.Errorf("ribbon parent = %d, want root", tree.Parent(i))
	}
	if n := len(tree.Children(i)); n != 1 {
		t.Errorf("ribbon children = %d, want 1", n)
	}

	if _, err := Attach(tree, scene.New()); !errors.Is(err, scene.ErrNoSuchNode) {
		t.Errorf("empty subtree err = %v, want ErrNoSuchNode", err)
	}
}
