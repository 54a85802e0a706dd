package pdb

import (
	"bytes"
	"compress/gzip"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Faultbox/molviz/pkg/math"
)

// atomLine builds a valid ATOM line for tests.
func atomLine(serial int, name, res, chain string, seq int, x, y, z float32, elem string) string {
	return FormatAtom(Atom{
		Serial:    serial,
		Name:      name,
		ResName:   res,
		ChainID:   chain,
		ResSeq:    seq,
		Position:  math.Vec3{X: x, Y: y, Z: z},
		Occupancy: 1,
		Element:   elem,
	})
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"lf", "a\nb\nc", []string{"a", "b", "c"}},
		{"crlf", "a\r\nb\r\nc", []string{"a", "b", "c"}},
		{"single", "abc", []string{"abc"}},
		{"empty", "", []string{""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitLines(tt.text)
			if len(got) != len(tt.want) {
				t.Fatalf("SplitLines() len = %d, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("line %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestParseNoMarkers(t *testing.T) {
	doc := strings.Join([]string{
		"HEADER    TEST",
		atomLine(1, "N", "MET", "A", 1, 0, 0, 0, "N"),
		atomLine(2, "CA", "MET", "A", 1, 1.4, 0, 0, "C"),
		atomLine(3, "C", "MET", "A", 1, 2.0, 1.2, 0, "C"),
		"END",
	}, "\n")

	s := Parse(doc)
	if len(s.Models) != 1 {
		t.Fatalf("Models = %d, want 1", len(s.Models))
	}
	m := s.Models[0]
	if m.HasSerial {
		t.Error("implicit model should have no serial")
	}
	if len(m.Atoms) != 3 {
		t.Fatalf("Atoms = %d, want 3", len(m.Atoms))
	}
	if m.Atoms[1].Name != "CA" {
		t.Errorf("Atoms[1].Name = %q, want CA", m.Atoms[1].Name)
	}
	if s.AtomCount() != 3 {
		t.Errorf("AtomCount() = %d, want 3", s.AtomCount())
	}
}

func TestParseConectOnly(t *testing.T) {
	s := Parse("CONECT    1    2    3\n")
	if len(s.Models) != 1 || len(s.Models[0].Atoms) != 0 {
		t.Fatalf("want one empty model, got %d models", len(s.Models))
	}
	if len(s.Bonds) != 1 {
		t.Fatalf("Bonds = %d, want 1", len(s.Bonds))
	}
	if got := len(s.Bonds[0].Pairs()); got != 2 {
		t.Errorf("Pairs() = %d, want 2", got)
	}
}

func TestParseEmpty(t *testing.T) {
	s := Parse("")
	if len(s.Models) != 1 {
		t.Fatalf("Models = %d, want 1", len(s.Models))
	}
	if s.AtomCount() != 0 {
		t.Errorf("AtomCount() = %d, want 0", s.AtomCount())
	}
}

func TestParseLineEndingsAgree(t *testing.T) {
	lines := []string{
		atomLine(1, "N", "GLY", "A", 1, 0, 0, 0, "N"),
		atomLine(2, "CA", "GLY", "A", 1, 1.45, 0, 0, "C"),
		"CONECT    1    2",
	}
	lf := Parse(strings.Join(lines, "\n"))
	crlf := Parse(strings.Join(lines, "\r\n"))

	if lf.AtomCount() != 2 || crlf.AtomCount() != 2 {
		t.Fatalf("AtomCount lf=%d crlf=%d, want 2", lf.AtomCount(), crlf.AtomCount())
	}
	for i := range lf.Models[0].Atoms {
		if lf.Models[0].Atoms[i] != crlf.Models[0].Atoms[i] {
			t.Errorf("atom %d differs between LF and CRLF", i)
		}
	}
	if len(lf.Bonds) != 1 || len(crlf.Bonds) != 1 {
		t.Errorf("Bonds lf=%d crlf=%d, want 1", len(lf.Bonds), len(crlf.Bonds))
	}
}

func TestParseModels(t *testing.T) {
	doc := strings.Join([]string{
		atomLine(99, "O", "HOH", "A", 1, 0, 0, 0, "O"), // outside any block
		"MODEL        1",
		atomLine(1, "N", "GLY", "A", 1, 0, 0, 0, "N"),
		atomLine(2, "CA", "GLY", "A", 1, 1.45, 0, 0, "C"),
		"ENDMDL",
		"MODEL        2",
		atomLine(1, "N", "GLY", "A", 1, 0.1, 0, 0, "N"),
		"ENDMDL",
		"MODEL        3",
		atomLine(1, "N", "GLY", "A", 1, 0.2, 0, 0, "N"),
		"MODEL        4",
		atomLine(1, "N", "GLY", "A", 1, 0.3, 0, 0, "N"),
	}, "\n")

	s := Parse(doc)
	if len(s.Models) != 4 {
		t.Fatalf("Models = %d, want 4", len(s.Models))
	}

	wantAtoms := []int{2, 1, 1, 1}
	for i, m := range s.Models {
		if m.Serial != i+1 || !m.HasSerial {
			t.Errorf("model %d serial = %d (has=%v), want %d", i, m.Serial, m.HasSerial, i+1)
		}
		if len(m.Atoms) != wantAtoms[i] {
			t.Errorf("model %d atoms = %d, want %d", i, len(m.Atoms), wantAtoms[i])
		}
	}
}

func TestParseSkipsMalformed(t *testing.T) {
	good := atomLine(1, "N", "GLY", "A", 1, 0, 0, 0, "N")
	bad := good[:30] + "  xx.xxx" + good[38:]
	s := Parse(strings.Join([]string{good, bad, good}, "\n"))

	if s.AtomCount() != 2 {
		t.Errorf("AtomCount() = %d, want 2", s.AtomCount())
	}
}

func TestParseAnnotations(t *testing.T) {
	doc := strings.Join([]string{sampleDBRef, sampleHelix, sampleSheet, sampleAtom}, "\n")
	s := Parse(doc)

	if len(s.Chains) != 1 || len(s.Helices) != 1 || len(s.Sheets) != 1 {
		t.Fatalf("annotations = %d/%d/%d, want 1/1/1", len(s.Chains), len(s.Helices), len(s.Sheets))
	}
	if s.ChainIndex("A") != 0 {
		t.Errorf("ChainIndex(A) = %d, want 0", s.ChainIndex("A"))
	}
	if s.ChainIndex("Z") != -1 {
		t.Errorf("ChainIndex(Z) = %d, want -1", s.ChainIndex("Z"))
	}
}

func TestReadFile(t *testing.T) {
	doc := strings.Join([]string{
		atomLine(1, "N", "GLY", "A", 1, 0, 0, 0, "N"),
		atomLine(2, "CA", "GLY", "A", 1, 1.45, 0, 0, "C"),
	}, "\n")

	dir := t.TempDir()

	plain := filepath.Join(dir, "1abc.pdb")
	if err := os.WriteFile(plain, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if _, err := gz.Write([]byte(doc)); err != nil {
		t.Fatal(err)
	}
	if err := gz.Close(); err != nil {
		t.Fatal(err)
	}
	compressed := filepath.Join(dir, "2xyz.ent.gz")
	if err := os.WriteFile(compressed, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		path string
		name string
	}{
		{plain, "1abc"},
		{compressed, "2xyz"},
	}

	for _, tt := range tests {
		s, err := ReadFile(tt.path)
		if err != nil {
			t.Fatalf("ReadFile(%s) error: %v", tt.path, err)
		}
		if s.Name != tt.name {
			t.Errorf("Name = %q, want %q", s.Name, tt.name)
		}
		if s.AtomCount() != 2 {
			t.Errorf("%s: AtomCount() = %d, want 2", tt.name, s.AtomCount())
		}
	}
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.pdb"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("ReadFile() error = %v, want fs.ErrNotExist", err)
	}
}

func TestReadByteOrderMark(t *testing.T) {
	doc := atomLine(1, "N", "GLY", "A", 1, 0, 0, 0, "N") + "\n" +
		atomLine(2, "CA", "GLY", "A", 1, 1.46, 0, 0, "C") + "\n"
	data := append([]byte{0xef, 0xbb, 0xbf}, doc...)

	s, err := Read(bytes.NewReader(data), "bom")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if n := s.AtomCount(); n != 2 {
		t.Fatalf("atoms = %d, want 2", n)
	}
	if got := s.Models[0].Atoms[0].Serial; got != 1 {
		t.Errorf("first serial = %d, want 1", got)
	}
}

func TestReadLatin1Columns(t *testing.T) {
	// Segment ID in columns 73-76 holds a Latin-1 byte.
	line := []byte(atomLine(1, "CA", "GLY", "A", 1, 1.5, 2.5, 3.5, "C"))
	line[72] = 0xe9

	s, err := Read(bytes.NewReader(append(line, '\n')), "latin1")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if n := s.AtomCount(); n != 1 {
		t.Fatalf("atoms = %d, want 1", n)
	}
	a := s.Models[0].Atoms[0]
	if a.Element != "C" || a.Position.Z != 3.5 {
		t.Errorf("atom = %+v, want element C at z 3.5", a)
	}
}
