package wire

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Extensions of the descriptor and buffer files.
const (
	DescriptorExt = ".json"
	BufferExt     = ".bin"
)

// EncodeLibrary writes lib as indented JSON.
func EncodeLibrary(w io.Writer, lib *Library) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(lib)
}

// DecodeLibrary reads a JSON descriptor.
func DecodeLibrary(r io.Reader) (*Library, error) {
	var lib Library
	if err := json.NewDecoder(r).Decode(&lib); err != nil {
		return nil, fmt.Errorf("decoding library: %w", err)
	}
	return &lib, nil
}

// WriteFiles stores lib and buf as dir/name.json and dir/name.bin and returns
// the descriptor path.
func WriteFiles(dir, name string, lib *Library, buf []byte) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating output dir: %w", err)
	}

	jsonPath := filepath.Join(dir, name+DescriptorExt)
	f, err := os.Create(jsonPath)
	if err != nil {
		return "", fmt.Errorf("creating descriptor: %w", err)
	}
	if err := EncodeLibrary(f, lib); err != nil {
		f.Close()
		return "", fmt.Errorf("writing descriptor: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing descriptor: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, name+BufferExt), buf, 0644); err != nil {
		return "", fmt.Errorf("writing buffer: %w", err)
	}
	return jsonPath, nil
}

// ReadFiles loads a descriptor and the buffer file next to it.
func ReadFiles(jsonPath string) (*Library, []byte, error) {
	f, err := os.Open(jsonPath)
	if err != nil {
		return nil, nil, fmt.Errorf("opening descriptor: %w", err)
	}
	defer f.Close()

	lib, err := DecodeLibrary(f)
	if err != nil {
		return nil, nil, err
	}

	binPath := strings.TrimSuffix(jsonPath, DescriptorExt) + BufferExt
	buf, err := os.ReadFile(binPath)
	if err != nil {
		return nil, nil, fmt.Errorf("reading buffer: %w", err)
	}
	return lib, buf, nil
}
