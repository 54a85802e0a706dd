package pdb

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Faultbox/molviz/pkg/encoding"
)

// SplitLines splits a document on CRLF, falling back to LF when the
// document contains no CRLF pairs.
func SplitLines(text string) []string {
	lines := strings.Split(text, "\r\n")
	if len(lines) == 1 {
		lines = strings.Split(text, "\n")
	}
	return lines
}

// Parse decodes a PDB document. It never fails: lines that match no grammar
// are skipped, and a document without atoms yields one empty model.
func Parse(text string) *Structure {
	lines := SplitLines(text)
	s := &Structure{}

	hasMarkers := false
	for _, ln := range lines {
		if _, _, ok := ParseModelStart(ln); ok || IsModelEnd(ln) {
			hasMarkers = true
			break
		}
	}

	var implicit Model
	var cur *Model
	closeModel := func() {
		if cur != nil {
			s.Models = append(s.Models, *cur)
			cur = nil
		}
	}

	for _, ln := range lines {
		switch newLine(ln).keyword() {
		case recordModel:
			serial, hasSerial, _ := ParseModelStart(ln)
			// An unterminated block is closed by the next MODEL line.
			closeModel()
			cur = &Model{Serial: serial, HasSerial: hasSerial}
		case recordEndMdl:
			closeModel()
		case recordAtom, recordHetAtm:
			atom, ok := ParseAtom(ln)
			if !ok {
				continue
			}
			switch {
			case !hasMarkers:
				implicit.Atoms = append(implicit.Atoms, atom)
			case cur != nil:
				cur.Atoms = append(cur.Atoms, atom)
			}
		case recordConect:
			if b, ok := ParseConect(ln); ok {
				s.Bonds = append(s.Bonds, b)
			}
		case recordDBRef:
			if c, ok := ParseDBRef(ln); ok {
				s.Chains = append(s.Chains, c)
			}
		case recordHelix:
			if h, ok := ParseHelix(ln); ok {
				s.Helices = append(s.Helices, h)
			}
		case recordSheet:
			if sh, ok := ParseSheet(ln); ok {
				s.Sheets = append(s.Sheets, sh)
			}
		}
	}
	closeModel()

	if !hasMarkers {
		s.Models = []Model{implicit}
	}
	if len(s.Models) == 0 {
		s.Models = []Model{{}}
	}
	return s
}

// Read parses a document from r. name labels the structure. Input with a
// byte order mark or in ISO-8859-1 is converted to UTF-8 first.
func Read(r io.Reader, name string) (*Structure, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	s := Parse(encoding.ToUTF8(data))
	s.Name = name
	return s, nil
}

// ReadFile parses the document at path. Files ending in .gz are
// decompressed transparently.
func ReadFile(path string) (*Structure, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if filepath.Ext(path) == ".gz" {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("opening gzip stream: %w", err)
		}
		defer gz.Close()
		r = gz
	}
	return Read(r, StructureName(path))
}

// StructureName derives a structure name from a file path by stripping the
// directory and the .pdb / .ent / .gz extensions.
func StructureName(path string) string {
	name := filepath.Base(path)
	name = strings.TrimSuffix(name, ".gz")
	for _, ext := range []string{".pdb", ".ent"} {
		name = strings.TrimSuffix(name, ext)
	}
	return name
}
