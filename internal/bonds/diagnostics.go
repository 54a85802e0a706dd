package bonds

import (
	"go.uber.org/zap"

	"github.com/Faultbox/molviz/pkg/pdb"
)

// Diagnostics summarizes bond counts for validation output.
type Diagnostics struct {
	BondCounts []int // bonds per atom
	MaxBonds   int
	Unbonded   []int // indices of standard atoms with no bonds
}

// Diagnose counts bonds per atom. Heteroatoms (waters, ligand ions) are not
// reported as unbonded.
func Diagnose(atoms []pdb.Atom, conn *Connectivity) Diagnostics {
	d := Diagnostics{BondCounts: conn.Degrees(len(atoms))}
	for i, n := range d.BondCounts {
		if n > d.MaxBonds {
			d.MaxBonds = n
		}
		if n == 0 && !atoms[i].IsHetero() {
			d.Unbonded = append(d.Unbonded, i)
		}
	}
	return d
}

// Log writes the diagnostics to log. Each unbonded atom gets its own line.
func (d Diagnostics) Log(log *zap.Logger, atoms []pdb.Atom) {
	log.Info("most bonded atom", zap.Int("bonds", d.MaxBonds))
	for _, i := range d.Unbonded {
		a := &atoms[i]
		log.Warn("unbonded atom",
			zap.Int("serial", a.Serial),
			zap.String("name", a.Name),
			zap.String("residue", a.ResName),
			zap.String("chain", a.ChainID),
			zap.Int("resSeq", a.ResSeq))
	}
}
