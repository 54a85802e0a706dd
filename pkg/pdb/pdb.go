// Package pdb parses Protein Data Bank text into atoms, explicit bonds and
// secondary structure annotations.
//
// Records are decoded with fixed column grammars. Lines that do not match a
// grammar are skipped, so a damaged record never aborts an otherwise valid
// document.
package pdb

import (
	"fmt"

	"github.com/Faultbox/molviz/pkg/math"
)

// RecordKind distinguishes standard residue atoms from heteroatoms.
type RecordKind uint8

const (
	KindAtom    RecordKind = iota // ATOM record
	KindHetAtom                   // HETATM record
)

// String returns the PDB record name for the kind.
func (k RecordKind) String() string {
	switch k {
	case KindAtom:
		return "ATOM"
	case KindHetAtom:
		return "HETATM"
	default:
		return fmt.Sprintf("Unknown(%d)", k)
	}
}

// Atom is one decoded ATOM or HETATM line.
type Atom struct {
	Serial     int        // Atom serial number (1-based)
	Name       string     // Atom name
	AltLoc     string     // Alternate location indicator
	ResName    string     // Residue name
	ChainID    string     // Chain identifier
	ResSeq     int        // Residue sequence number
	ICode      string     // Insertion code
	Position   math.Vec3  // Orthogonal coordinates in angstroms
	Occupancy  float32    // Occupancy
	TempFactor float32    // Temperature factor
	Element    string     // Element symbol, original case
	Charge     string     // Formal charge
	Kind       RecordKind // ATOM or HETATM
}

// IsHetero reports whether the atom came from a HETATM record.
func (a *Atom) IsHetero() bool {
	return a.Kind == KindHetAtom
}

// MaxBondPartners is the number of partner fields on a CONECT line.
const MaxBondPartners = 4

// ExplicitBond is one decoded CONECT line. Indices are the serial numbers as
// written in the file; zero marks an absent partner.
type ExplicitBond struct {
	Source   int
	Partners [MaxBondPartners]int
}

// BondPair is an unordered pair of zero-based atom indices with A <= B.
type BondPair struct {
	A, B int
}

// Pairs returns the declared partners as zero-based (min, max) pairs.
// Absent partners are skipped. Self bonds are returned as-is (A == B) and
// left for the consumer to reject.
func (b ExplicitBond) Pairs() []BondPair {
	pairs := make([]BondPair, 0, MaxBondPartners)
	for _, p := range b.Partners {
		if p == 0 {
			continue
		}
		a, c := b.Source-1, p-1
		if a > c {
			a, c = c, a
		}
		pairs = append(pairs, BondPair{A: a, B: c})
	}
	return pairs
}

// Model is one set of atom coordinates.
type Model struct {
	Serial    int  // MODEL serial number
	HasSerial bool // false for the implicit model of a marker-less document
	Atoms     []Atom
}

// ChainRange is a decoded DBREF line.
type ChainRange struct {
	ProteinID string
	ChainID   string
	SeqBegin  int
	SeqEnd    int
}

// HelixRange is a decoded HELIX line.
type HelixRange struct {
	Serial  int
	ID      string
	ChainID string
	Start   int
	End     int
	Class   int
}

// SheetRange is a decoded SHEET line (one strand).
type SheetRange struct {
	Strand  int
	SheetID string
	ChainID string
	Start   int
	End     int
}

// Contains reports whether residue seq on chain lies within the range.
func (c ChainRange) Contains(chain string, seq int) bool {
	return c.ChainID == chain && seq >= c.SeqBegin && seq <= c.SeqEnd
}

// Contains reports whether residue seq on chain lies within the helix.
func (h HelixRange) Contains(chain string, seq int) bool {
	return h.ChainID == chain && seq >= h.Start && seq <= h.End
}

// Contains reports whether residue seq on chain lies within the strand.
func (s SheetRange) Contains(chain string, seq int) bool {
	return s.ChainID == chain && seq >= s.Start && seq <= s.End
}

// Structure is a parsed PDB document.
//
// Bonds and annotations are collected document-wide, even when the document
// holds several MODEL blocks.
type Structure struct {
	Name    string
	Models  []Model
	Bonds   []ExplicitBond
	Chains  []ChainRange
	Helices []HelixRange
	Sheets  []SheetRange
}

// AtomCount returns the number of atoms across all models.
func (s *Structure) AtomCount() int {
	n := 0
	for i := range s.Models {
		n += len(s.Models[i].Atoms)
	}
	return n
}

// ChainIndex returns the position of chain in the DBREF list, or -1.
func (s *Structure) ChainIndex(chain string) int {
	for i, c := range s.Chains {
		if c.ChainID == chain {
			return i
		}
	}
	return -1
}
