package pdb

import (
	"strconv"
	"strings"

	"github.com/Faultbox/molviz/pkg/math"
)

// Record keywords, columns 1-6.
const (
	recordAtom   = "ATOM  "
	recordHetAtm = "HETATM"
	recordConect = "CONECT"
	recordDBRef  = "DBREF "
	recordHelix  = "HELIX "
	recordSheet  = "SHEET "
	recordModel  = "MODEL "
	recordEndMdl = "ENDMDL"
)

// Minimum and maximum line widths accepted by the grammars.
const (
	atomMinCols   = 54 // through the z coordinate
	atomMaxCols   = 80
	conectMinCols = 11
	dbrefMinCols  = 25
	helixMinCols  = 37
	sheetMinCols  = 37
)

// line wraps one text line with 1-based, inclusive column accessors.
// Columns count characters, not bytes.
type line []rune

func newLine(s string) line {
	return line(strings.TrimSuffix(s, "\r"))
}

// cols returns the trimmed text in columns [start, end]. Columns past the
// end of the line read as blank.
func (l line) cols(start, end int) string {
	rs, re := start-1, end
	if rs < 0 || rs >= len(l) || re < rs {
		return ""
	}
	if re > len(l) {
		re = len(l)
	}
	return strings.TrimSpace(string(l[rs:re]))
}

func (l line) keyword() string {
	if len(l) < 6 {
		return string(l) + strings.Repeat(" ", 6-len(l))
	}
	return string(l[:6])
}

// atoi parses a required integer field.
func (l line) atoi(start, end int) (int, bool) {
	n, err := strconv.Atoi(l.cols(start, end))
	return n, err == nil
}

// optAtoi parses an optional integer field; blank reads as zero.
func (l line) optAtoi(start, end int) (int, bool) {
	s := l.cols(start, end)
	if s == "" {
		return 0, true
	}
	n, err := strconv.Atoi(s)
	return n, err == nil
}

// atof parses a required float field.
func (l line) atof(start, end int) (float32, bool) {
	f, err := strconv.ParseFloat(l.cols(start, end), 32)
	return float32(f), err == nil
}

// optAtof parses an optional float field; blank reads as zero.
func (l line) optAtof(start, end int) (float32, bool) {
	s := l.cols(start, end)
	if s == "" {
		return 0, true
	}
	f, err := strconv.ParseFloat(s, 32)
	return float32(f), err == nil
}

// ParseAtom decodes an ATOM or HETATM line.
func ParseAtom(text string) (Atom, bool) {
	l := newLine(text)
	if len(l) < atomMinCols || len(l) > atomMaxCols {
		return Atom{}, false
	}

	var a Atom
	switch l.keyword() {
	case recordAtom:
		a.Kind = KindAtom
	case recordHetAtm:
		a.Kind = KindHetAtom
	default:
		return Atom{}, false
	}

	var ok bool
	if a.Serial, ok = l.atoi(7, 11); !ok {
		return Atom{}, false
	}
	a.Name = l.cols(13, 16)
	a.AltLoc = l.cols(17, 17)
	a.ResName = l.cols(18, 20)
	a.ChainID = l.cols(22, 22)
	if a.ResSeq, ok = l.atoi(23, 26); !ok {
		return Atom{}, false
	}
	a.ICode = l.cols(27, 27)

	var x, y, z float32
	if x, ok = l.atof(31, 38); !ok {
		return Atom{}, false
	}
	if y, ok = l.atof(39, 46); !ok {
		return Atom{}, false
	}
	if z, ok = l.atof(47, 54); !ok {
		return Atom{}, false
	}
	a.Position = math.Vec3{X: x, Y: y, Z: z}

	if a.Occupancy, ok = l.optAtof(55, 60); !ok {
		return Atom{}, false
	}
	if a.TempFactor, ok = l.optAtof(61, 66); !ok {
		return Atom{}, false
	}
	a.Element = l.cols(77, 78)
	a.Charge = l.cols(79, 80)
	return a, true
}

// ParseConect decodes a CONECT line. Blank or missing partner fields are
// absent partners.
func ParseConect(text string) (ExplicitBond, bool) {
	l := newLine(text)
	if len(l) < conectMinCols || l.keyword() != recordConect {
		return ExplicitBond{}, false
	}

	var b ExplicitBond
	var ok bool
	if b.Source, ok = l.atoi(7, 11); !ok {
		return ExplicitBond{}, false
	}
	for i := 0; i < MaxBondPartners; i++ {
		start := 12 + i*5
		if b.Partners[i], ok = l.optAtoi(start, start+4); !ok {
			return ExplicitBond{}, false
		}
	}
	return b, true
}

// ParseDBRef decodes a DBREF line into a chain range.
func ParseDBRef(text string) (ChainRange, bool) {
	l := newLine(text)
	if len(l) < dbrefMinCols || l.keyword() != recordDBRef {
		return ChainRange{}, false
	}

	c := ChainRange{
		ProteinID: l.cols(8, 11),
		ChainID:   l.cols(13, 13),
	}
	var ok bool
	if c.SeqBegin, ok = l.atoi(15, 18); !ok {
		return ChainRange{}, false
	}
	if c.SeqEnd, ok = l.atoi(21, 24); !ok {
		return ChainRange{}, false
	}
	return c, true
}

// ParseHelix decodes a HELIX line. The range is attributed to the initial
// residue's chain.
func ParseHelix(text string) (HelixRange, bool) {
	l := newLine(text)
	if len(l) < helixMinCols || l.keyword() != recordHelix {
		return HelixRange{}, false
	}

	h := HelixRange{
		ID:      l.cols(12, 14),
		ChainID: l.cols(20, 20),
	}
	var ok bool
	if h.Serial, ok = l.atoi(8, 10); !ok {
		return HelixRange{}, false
	}
	if h.Start, ok = l.atoi(22, 25); !ok {
		return HelixRange{}, false
	}
	if h.End, ok = l.atoi(34, 37); !ok {
		return HelixRange{}, false
	}
	if h.Class, ok = l.optAtoi(39, 40); !ok {
		return HelixRange{}, false
	}
	return h, true
}

// ParseSheet decodes a SHEET line. The range is attributed to the initial
// residue's chain.
func ParseSheet(text string) (SheetRange, bool) {
	l := newLine(text)
	if len(l) < sheetMinCols || l.keyword() != recordSheet {
		return SheetRange{}, false
	}

	s := SheetRange{
		SheetID: l.cols(12, 14),
		ChainID: l.cols(22, 22),
	}
	var ok bool
	if s.Strand, ok = l.atoi(8, 10); !ok {
		return SheetRange{}, false
	}
	if s.Start, ok = l.atoi(23, 26); !ok {
		return SheetRange{}, false
	}
	if s.End, ok = l.atoi(34, 37); !ok {
		return SheetRange{}, false
	}
	return s, true
}

// ParseModelStart recognizes a MODEL line. hasSerial is false when the
// serial field is blank or not a number; the line is still a model marker.
func ParseModelStart(text string) (serial int, hasSerial bool, ok bool) {
	l := newLine(text)
	if l.keyword() != recordModel {
		return 0, false, false
	}
	serial, hasSerial = l.atoi(11, 14)
	return serial, hasSerial, true
}

// IsModelEnd recognizes an ENDMDL line.
func IsModelEnd(text string) bool {
	return strings.HasPrefix(text, recordEndMdl)
}
