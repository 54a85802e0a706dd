// Package bonds derives the covalent connectivity of a model from atom
// distances and merges it with the bonds a document declares explicitly.
package bonds

import (
	"go.uber.org/zap"

	"github.com/Faultbox/molviz/internal/chem"
	"github.com/Faultbox/molviz/internal/logger"
	"github.com/Faultbox/molviz/pkg/pdb"
)

// Options controls bond inference.
type Options struct {
	// FudgeFactor is the relative tolerance between the measured distance
	// and the sum of covalent radii.
	FudgeFactor float32

	// AdjacencyFilter skips pairs on different chains or more than one
	// residue apart.
	AdjacencyFilter bool

	// MaxExplicitDistance drops declared bonds longer than this many
	// angstroms. Zero disables the check.
	MaxExplicitDistance float32
}

// DefaultOptions returns the standard inference settings.
func DefaultOptions() Options {
	return Options{
		FudgeFactor:     0.16,
		AdjacencyFilter: true,
	}
}

// Result is the outcome of Infer.
type Result struct {
	Connectivity *Connectivity

	Inferred int // bonds found by the distance heuristic
	Explicit int // declared bonds not already inferred
	Rejected int // declared pairs dropped (self, out of range, too long)
}

// Infer computes the connectivity of atoms. Every unordered pair is tested
// against the covalent distance heuristic, then declared bonds are added
// unless already present. Declared pairs referring to atoms outside the
// model are dropped.
func Infer(atoms []pdb.Atom, explicit []pdb.ExplicitBond, opts Options) *Result {
	res := &Result{Connectivity: NewConnectivity()}

	radii := make([]float32, len(atoms))
	for i := range atoms {
		radii[i], _ = chem.CovalentRadius(chem.ElementSymbol(atoms[i].Element, atoms[i].Name))
	}

	for i := range atoms {
		ai := &atoms[i]
		for j := i + 1; j < len(atoms); j++ {
			aj := &atoms[j]
			if opts.AdjacencyFilter && !adjacent(ai, aj) {
				continue
			}
			if bonded(ai.Position.Distance(aj.Position), radii[i]+radii[j], opts.FudgeFactor) {
				if res.Connectivity.Add(i, j) {
					res.Inferred++
				}
			}
		}
	}

	for _, b := range explicit {
		for _, p := range b.Pairs() {
			if !validPair(p, len(atoms)) {
				res.Rejected++
				continue
			}
			if opts.MaxExplicitDistance > 0 &&
				atoms[p.A].Position.Distance(atoms[p.B].Position) > opts.MaxExplicitDistance {
				res.Rejected++
				continue
			}
			if res.Connectivity.Add(p.A, p.B) {
				res.Explicit++
			}
		}
	}

	logger.Debug("bonds inferred",
		zap.Int("atoms", len(atoms)),
		zap.Int("inferred", res.Inferred),
		zap.Int("explicit", res.Explicit),
		zap.Int("rejected", res.Rejected))

	return res
}

// adjacent reports whether two atoms share a chain and are at most one
// residue apart.
func adjacent(a, b *pdb.Atom) bool {
	if a.ChainID != b.ChainID {
		return false
	}
	d := a.ResSeq - b.ResSeq
	return d >= -1 && d <= 1
}

// bonded applies the covalent distance test |dist - ref| <= fudge*ref.
func bonded(dist, ref, fudge float32) bool {
	diff := dist - ref
	if diff < 0 {
		diff = -diff
	}
	return diff <= fudge*ref
}

func validPair(p Pair, n int) bool {
	return p.A != p.B && p.A >= 0 && p.B < n
}
