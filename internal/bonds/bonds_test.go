package bonds

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Faultbox/molviz/pkg/math"
	"github.com/Faultbox/molviz/pkg/pdb"
)

func atom(serial int, elem, chain string, seq int, x, y, z float32) pdb.Atom {
	return pdb.Atom{
		Serial:   serial,
		Name:     elem,
		ResName:  "GLY",
		ChainID:  chain,
		ResSeq:   seq,
		Position: math.Vec3{X: x, Y: y, Z: z},
		Element:  elem,
	}
}

func TestInferDistance(t *testing.T) {
	tests := []struct {
		name  string
		dist  float32
		elemB string
		want  int
	}{
		{"C-N peptide length", 1.40, "N", 1},
		{"C-N far apart", 5.0, "N", 0},
		{"C-C single", 1.54, "C", 1},
		{"C-C too short", 1.0, "C", 0},
		{"C-H", 1.09, "H", 1},
		{"unknown element uses default radius", 1.5, "Xx", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			atoms := []pdb.Atom{
				atom(1, "C", "A", 1, 0, 0, 0),
				atom(2, tt.elemB, "A", 1, tt.dist, 0, 0),
			}
			res := Infer(atoms, nil, DefaultOptions())
			if got := res.Connectivity.Len(); got != tt.want {
				t.Errorf("bonds = %d, want %d", got, tt.want)
			}
			if res.Inferred != tt.want {
				t.Errorf("Inferred = %d, want %d", res.Inferred, tt.want)
			}
		})
	}
}

func TestInferAdjacencyFilter(t *testing.T) {
	tests := []struct {
		name   string
		chainB string
		seqB   int
		filter bool
		want   int
	}{
		{"same residue", "A", 1, true, 1},
		{"next residue", "A", 2, true, 1},
		{"two residues apart", "A", 3, true, 0},
		{"other chain", "B", 1, true, 0},
		{"filter off, other chain", "B", 1, false, 1},
		{"filter off, far residue", "A", 40, false, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			atoms := []pdb.Atom{
				atom(1, "C", "A", 1, 0, 0, 0),
				atom(2, "N", tt.chainB, tt.seqB, 1.40, 0, 0),
			}
			opts := DefaultOptions()
			opts.AdjacencyFilter = tt.filter
			if got := Infer(atoms, nil, opts).Connectivity.Len(); got != tt.want {
				t.Errorf("bonds = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestInferExplicit(t *testing.T) {
	// Far apart, so only declared bonds can connect them.
	atoms := []pdb.Atom{
		atom(1, "C", "A", 1, 0, 0, 0),
		atom(2, "C", "A", 1, 10, 0, 0),
		atom(3, "C", "A", 1, 20, 0, 0),
	}

	tests := []struct {
		name         string
		bonds        []pdb.ExplicitBond
		maxDist      float32
		wantBonds    int
		wantRejected int
	}{
		{"one declared bond", []pdb.ExplicitBond{{Source: 1, Partners: [4]int{2}}}, 0, 1, 0},
		{"two partners", []pdb.ExplicitBond{{Source: 2, Partners: [4]int{1, 3}}}, 0, 2, 0},
		{"self bond", []pdb.ExplicitBond{{Source: 2, Partners: [4]int{2}}}, 0, 0, 1},
		{"out of range", []pdb.ExplicitBond{{Source: 1, Partners: [4]int{99}}}, 0, 0, 1},
		{"symmetric duplicate", []pdb.ExplicitBond{
			{Source: 1, Partners: [4]int{2}},
			{Source: 2, Partners: [4]int{1}},
		}, 0, 1, 0},
		{"too long", []pdb.ExplicitBond{{Source: 1, Partners: [4]int{3}}}, 7, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			opts.MaxExplicitDistance = tt.maxDist
			res := Infer(atoms, tt.bonds, opts)
			if got := res.Connectivity.Len(); got != tt.wantBonds {
				t.Errorf("bonds = %d, want %d", got, tt.wantBonds)
			}
			if res.Rejected != tt.wantRejected {
				t.Errorf("Rejected = %d, want %d", res.Rejected, tt.wantRejected)
			}
		})
	}
}

func TestInferExplicitAlreadyInferred(t *testing.T) {
	atoms := []pdb.Atom{
		atom(1, "C", "A", 1, 0, 0, 0),
		atom(2, "N", "A", 1, 1.40, 0, 0),
	}
	res := Infer(atoms, []pdb.ExplicitBond{{Source: 2, Partners: [4]int{1}}}, DefaultOptions())

	if res.Connectivity.Len() != 1 {
		t.Errorf("bonds = %d, want 1", res.Connectivity.Len())
	}
	if res.Inferred != 1 || res.Explicit != 0 {
		t.Errorf("Inferred/Explicit = %d/%d, want 1/0", res.Inferred, res.Explicit)
	}
}

func TestInferEmptyModel(t *testing.T) {
	bonds := []pdb.ExplicitBond{{Source: 1, Partners: [4]int{2, 3}}}
	res := Infer(nil, bonds, DefaultOptions())

	if res.Connectivity.Len() != 0 {
		t.Errorf("bonds = %d, want 0", res.Connectivity.Len())
	}
	if res.Rejected != 2 {
		t.Errorf("Rejected = %d, want 2", res.Rejected)
	}
}

func TestConnectivity(t *testing.T) {
	c := NewConnectivity()

	if !c.Add(3, 1) {
		t.Error("Add(3, 1) should be new")
	}
	if c.Add(1, 3) {
		t.Error("Add(1, 3) should be a duplicate")
	}
	if c.Add(2, 2) {
		t.Error("Add(2, 2) should be rejected")
	}
	c.Add(0, 1)
	c.Add(1, 2)

	if !c.Has(3, 1) || !c.Has(1, 3) {
		t.Error("Has should be symmetric")
	}
	if c.Len() != 3 {
		t.Errorf("Len() = %d, want 3", c.Len())
	}

	want := []Pair{{A: 0, B: 1}, {A: 1, B: 2}, {A: 1, B: 3}}
	got := c.Pairs()
	if len(got) != len(want) {
		t.Fatalf("Pairs() len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Pairs()[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	deg := c.Degrees(4)
	wantDeg := []int{1, 3, 1, 1}
	for i := range wantDeg {
		if deg[i] != wantDeg[i] {
			t.Errorf("Degrees()[%d] = %d, want %d", i, deg[i], wantDeg[i])
		}
	}
}

func TestDiagnose(t *testing.T) {
	atoms := []pdb.Atom{
		atom(1, "C", "A", 1, 0, 0, 0),
		atom(2, "N", "A", 1, 1.40, 0, 0),
		atom(3, "C", "A", 1, 30, 0, 0),
		atom(4, "O", "W", 100, 50, 0, 0),
	}
	atoms[3].Kind = pdb.KindHetAtom

	res := Infer(atoms, nil, DefaultOptions())
	d := Diagnose(atoms, res.Connectivity)

	if d.MaxBonds != 1 {
		t.Errorf("MaxBonds = %d, want 1", d.MaxBonds)
	}
	if len(d.Unbonded) != 1 || d.Unbonded[0] != 2 {
		t.Errorf("Unbonded = %v, want [2]", d.Unbonded)
	}

	core, logs := observer.New(zap.InfoLevel)
	d.Log(zap.New(core), atoms)
	if n := logs.FilterMessage("unbonded atom").Len(); n != 1 {
		t.Errorf("unbonded log lines = %d, want 1", n)
	}
	if n := logs.FilterMessage("most bonded atom").Len(); n != 1 {
		t.Errorf("summary log lines = %d, want 1", n)
	}
}
