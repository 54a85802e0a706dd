package chem

import (
	"testing"
)

func TestElementColor(t *testing.T) {
	tests := []struct {
		symbol string
		want   Color
	}{
		{"C", 0x909090},
		{"c", 0x909090},
		{"N", 0x3050f8},
		{"O", 0xff0d0d},
		{"Fe", 0xe06633},
		{"FE", 0xe06633},
		{"Xx", NeutralColor},
		{"", NeutralColor},
	}

	for _, tt := range tests {
		if got := ElementColor(tt.symbol); got != tt.want {
			t.Errorf("ElementColor(%q) = %v, want %v", tt.symbol, got, tt.want)
		}
	}
}

func TestCovalentRadius(t *testing.T) {
	tests := []struct {
		symbol string
		want   float32
		known  bool
	}{
		{"C", 0.73, true},
		{"n", 0.71, true},
		{"H", 0.31, true},
		{"Br", 1.20, true},
		{"Au", DefaultCovalentRadius, false},
	}

	for _, tt := range tests {
		got, known := CovalentRadius(tt.symbol)
		if known != tt.known {
			t.Errorf("CovalentRadius(%q) known = %v, want %v", tt.symbol, known, tt.known)
		}
		if diff := got - tt.want; diff > 1e-6 || diff < -1e-6 {
			t.Errorf("CovalentRadius(%q) = %f, want %f", tt.symbol, got, tt.want)
		}
	}
}

func TestResidueColor(t *testing.T) {
	if c, ok := ResidueColor("ala"); !ok || c != 0xc8c8c8 {
		t.Errorf("ResidueColor(ala) = %v, %v", c, ok)
	}
	if _, ok := ResidueColor("HOH"); ok {
		t.Error("ResidueColor(HOH) should be unknown")
	}
}

func TestChainColor(t *testing.T) {
	n := ChainPaletteSize()
	if ChainColor(0) != 0xff3737 {
		t.Errorf("ChainColor(0) = %v, want #ff3737", ChainColor(0))
	}
	if ChainColor(n) != ChainColor(0) {
		t.Error("palette should wrap around")
	}
	if ChainColor(-1) != NeutralColor {
		t.Errorf("ChainColor(-1) = %v, want neutral", ChainColor(-1))
	}
}

func TestColorRGB(t *testing.T) {
	r, g, b := Color(0xff8000).RGB()
	if r != 1 || g < 0.5 || g > 0.51 || b != 0 {
		t.Errorf("RGB() = %f,%f,%f", r, g, b)
	}
	if got := FromRGB(r, g, b); got != 0xff8000 {
		t.Errorf("FromRGB() = %v, want #ff8000", got)
	}
	if got := Color(0x0a0b0c).String(); got != "#0a0b0c" {
		t.Errorf("String() = %q", got)
	}
}

func TestFromRGBClamps(t *testing.T) {
	tests := []struct {
		r, g, b float32
		want    Color
	}{
		{1.5, 0.5, -0.2, 0xff8000},
		{-1, -1, -1, 0x000000},
		{2, 2, 2, 0xffffff},
	}

	for _, tt := range tests {
		if got := FromRGB(tt.r, tt.g, tt.b); got != tt.want {
			t.Errorf("FromRGB(%v, %v, %v) = %v, want %v", tt.r, tt.g, tt.b, got, tt.want)
		}
	}
}

func TestElementSymbol(t *testing.T) {
	tests := []struct {
		element, name, want string
	}{
		{"N", "N", "N"},
		{" O", "OXT", "O"},
		{"", "CA", "C"},
		{"", "1HB", "H"},
		{"", "", ""},
	}

	for _, tt := range tests {
		if got := ElementSymbol(tt.element, tt.name); got != tt.want {
			t.Errorf("ElementSymbol(%q, %q) = %q, want %q", tt.element, tt.name, got, tt.want)
		}
	}
}
