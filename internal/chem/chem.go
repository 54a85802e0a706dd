// Package chem holds the read-only lookup tables used to display and bond
// atoms: CPK element colors, covalent radii, residue colors, the chain
// palette and secondary structure colors.
//
// Element symbols are case-insensitive. Lookups lowercase the key; the
// tables themselves are never mutated, so they are safe for concurrent use.
package chem

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/Faultbox/molviz/pkg/math"
)

// Color is a 24-bit 0xRRGGBB display color.
type Color uint32

// RGB returns the color as normalized float components.
func (c Color) RGB() (r, g, b float32) {
	r = float32((c>>16)&0xff) / 255
	g = float32((c>>8)&0xff) / 255
	b = float32(c&0xff) / 255
	return r, g, b
}

// FromRGB packs normalized float components into a Color. Components are
// clamped to [0, 1].
func FromRGB(r, g, b float32) Color {
	to8 := func(v float32) Color {
		return Color(math.Clamp(v, 0, 1)*255 + 0.5)
	}
	return to8(r)<<16 | to8(g)<<8 | to8(b)
}

// String returns the color as "#rrggbb".
func (c Color) String() string {
	return fmt.Sprintf("#%06x", uint32(c)&0xffffff)
}

// Fixed colors.
const (
	NeutralColor    Color = 0xffffff // bonds with no policy color, unknown elements
	HelixColor      Color = 0xd804e0
	SheetColor      Color = 0xcef615
	UnassignedColor Color = 0xcfcfcf
)

// DefaultCovalentRadius is used for elements missing from the radius table,
// in angstroms.
const DefaultCovalentRadius float32 = 0.75

// ElementColor returns the CPK color for an element symbol.
func ElementColor(symbol string) Color {
	if c, ok := cpkColors[strings.ToLower(symbol)]; ok {
		return c
	}
	return NeutralColor
}

// CovalentRadius returns the covalent radius of an element in angstroms and
// whether the element is in the table. Unknown elements report
// DefaultCovalentRadius.
func CovalentRadius(symbol string) (float32, bool) {
	pm, ok := covalentRadii[strings.ToLower(symbol)]
	if !ok {
		return DefaultCovalentRadius, false
	}
	return float32(pm) * 0.01, true
}

// ResidueColor returns the display color for a residue name.
func ResidueColor(resName string) (Color, bool) {
	c, ok := residueColors[strings.ToUpper(strings.TrimSpace(resName))]
	return c, ok
}

// ChainColor returns the palette color for the chain at position idx.
// Negative positions get the neutral color.
func ChainColor(idx int) Color {
	if idx < 0 {
		return NeutralColor
	}
	return chainPalette[idx%len(chainPalette)]
}

// ChainPaletteSize returns the number of distinct chain colors.
func ChainPaletteSize() int {
	return len(chainPalette)
}

// ElementSymbol returns the element of an atom. When the element columns are
// blank it is derived from the atom name: leading digits are skipped and the
// first letter is used, so " CA " yields "C" and "1HB " yields "H".
func ElementSymbol(element, atomName string) string {
	if e := strings.TrimSpace(element); e != "" {
		return e
	}
	for _, r := range strings.TrimSpace(atomName) {
		if unicode.IsLetter(r) {
			return string(unicode.ToUpper(r))
		}
	}
	return ""
}
