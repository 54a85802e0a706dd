package pdb

import (
	"fmt"
	"strings"
)

// FormatAtom renders an atom as an 80-column ATOM/HETATM line.
func FormatAtom(a Atom) string {
	rec := recordAtom
	if a.Kind == KindHetAtom {
		rec = recordHetAtm
	}
	name := a.Name
	// Names shorter than four characters start in column 14.
	if len(name) < 4 {
		name = " " + name
	}
	return fmt.Sprintf("%-6s%5d %-4s%1s%3s %1s%4d%1s   %8.3f%8.3f%8.3f%6.2f%6.2f          %2s%2s",
		rec, a.Serial, name, a.AltLoc, a.ResName, a.ChainID, a.ResSeq, a.ICode,
		a.Position.X, a.Position.Y, a.Position.Z, a.Occupancy, a.TempFactor,
		a.Element, a.Charge)
}

// FormatConect renders an explicit bond as a CONECT line. Absent partners
// are written as blank fields.
func FormatConect(b ExplicitBond) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%-6s%5d", recordConect, b.Source)
	for _, p := range b.Partners {
		if p == 0 {
			sb.WriteString("     ")
			continue
		}
		fmt.Fprintf(&sb, "%5d", p)
	}
	return sb.String()
}
