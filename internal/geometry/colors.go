package geometry

import (
	"github.com/Faultbox/molviz/internal/chem"
	"github.com/Faultbox/molviz/pkg/pdb"
)

// bondColorer resolves the color of a bond between two atoms.
type bondColorer struct {
	resolve  func(a, b *pdb.Atom) chem.Color
	fallback chem.Color // color of bonds the policy does not classify
}

// newBondColorer selects the resolver for scheme once per build.
func newBondColorer(scheme ColorScheme, s *pdb.Structure, atoms []pdb.Atom) (bondColorer, error) {
	switch scheme {
	case SchemeElement, SchemeNone:
		return bondColorer{resolve: neutralColor, fallback: chem.NeutralColor}, nil
	case SchemeResidue:
		return bondColorer{resolve: residueColor, fallback: chem.NeutralColor}, nil
	case SchemeStructure:
		return bondColorer{resolve: structureColor(s), fallback: chem.UnassignedColor}, nil
	case SchemeChain:
		return bondColorer{resolve: chainColor(s, atoms), fallback: chem.NeutralColor}, nil
	default:
		return bondColorer{}, ErrInvalidColorScheme
	}
}

func neutralColor(_, _ *pdb.Atom) chem.Color {
	return chem.NeutralColor
}

// residueColor colors bonds inside one residue by the residue name.
func residueColor(a, b *pdb.Atom) chem.Color {
	if a.ResSeq != b.ResSeq {
		return chem.NeutralColor
	}
	if c, ok := chem.ResidueColor(a.ResName); ok {
		return c
	}
	return chem.NeutralColor
}

// structureColor checks helices first, then sheets. The first range whose
// chain and span contain both endpoints wins.
func structureColor(s *pdb.Structure) func(a, b *pdb.Atom) chem.Color {
	return func(a, b *pdb.Atom) chem.Color {
		if a.ChainID != b.ChainID {
			return chem.UnassignedColor
		}
		for _, h := range s.Helices {
			if h.Contains(a.ChainID, a.ResSeq) && h.Contains(b.ChainID, b.ResSeq) {
				return chem.HelixColor
			}
		}
		for _, sh := range s.Sheets {
			if sh.Contains(a.ChainID, a.ResSeq) && sh.Contains(b.ChainID, b.ResSeq) {
				return chem.SheetColor
			}
		}
		return chem.UnassignedColor
	}
}

// chainColor indexes the palette by the chain's position in the DBREF list.
// Without DBREF records, chains are numbered by first appearance among the
// atoms.
func chainColor(s *pdb.Structure, atoms []pdb.Atom) func(a, b *pdb.Atom) chem.Color {
	order := make(map[string]int)
	if len(s.Chains) > 0 {
		for i, c := range s.Chains {
			if _, dup := order[c.ChainID]; !dup {
				order[c.ChainID] = i
			}
		}
	} else {
		for i := range atoms {
			if _, seen := order[atoms[i].ChainID]; !seen {
				order[atoms[i].ChainID] = len(order)
			}
		}
	}

	return func(a, _ *pdb.Atom) chem.Color {
		idx, ok := order[a.ChainID]
		if !ok {
			return chem.NeutralColor
		}
		return chem.ChainColor(idx)
	}
}
