// Package wire flattens a scene subtree into a JSON-friendly descriptor plus
// one contiguous binary buffer, and rebuilds an equivalent tree from them.
//
// The buffer is the only large allocation; the descriptor refers into it by
// byte offset so it can be handed across a boundary without copying.
package wire

import (
	"encoding/json"
	"errors"
)

// Wire errors.
var (
	ErrUnknownAttributeType = errors.New("unknown attribute type")
	ErrBufferTooShort       = errors.New("buffer too short")
	ErrDanglingReference    = errors.New("dangling reference")
	ErrDuplicateChild       = errors.New("object listed under two parents")
	ErrEmptyLibrary         = errors.New("library has no root object")
)

// bufferAlign is the alignment of every attribute offset.
const bufferAlign = 8

// AttributeRecord locates one attribute inside the shared buffer.
type AttributeRecord struct {
	Stride int    `json:"stride"` // elements per vertex
	Offset int    `json:"offset"` // byte offset into the buffer
	Length int    `json:"length"` // element count
	Type   string `json:"type"`   // element type tag, e.g. "Float32"
}

// MeshRecord references a geometry and a material by ID.
type MeshRecord struct {
	Geometry string `json:"geometry"`
	Material string `json:"material"`
}

// MaterialRecord describes a flat-colored material.
type MaterialRecord struct {
	Name  string `json:"name,omitempty"`
	Color uint32 `json:"color"`
}

// ObjectRecord describes one node. The transform is stored decomposed. User
// data travels as JSON and is handed back undecoded.
type ObjectRecord struct {
	Name     string     `json:"name"`
	Position [3]float32 `json:"position"`
	Rotation [4]float32 `json:"rotation"` // quaternion x, y, z, w
	Scale    [3]float32 `json:"scale"`
	Parent   string     `json:"parent,omitempty"`
	Children []string   `json:"children"`
	Mesh     string     `json:"mesh,omitempty"`

	UserData json.RawMessage `json:"userData,omitempty"`
}

// Library is the descriptor of a serialized subtree.
type Library struct {
	Objects    map[string]ObjectRecord               `json:"objects"`
	Meshes     map[string]MeshRecord                 `json:"meshes"`
	Materials  map[string]MaterialRecord             `json:"materials"`
	Geometries map[string]map[string]AttributeRecord `json:"geometries"`

	// Order lists object IDs in pre-order, root first.
	Order []string `json:"order"`

	// ByteLength is the size of the shared buffer.
	ByteLength int `json:"byteLength"`
}

func newLibrary() *Library {
	return &Library{
		Objects:    make(map[string]ObjectRecord),
		Meshes:     make(map[string]MeshRecord),
		Materials:  make(map[string]MaterialRecord),
		Geometries: make(map[string]map[string]AttributeRecord),
	}
}

func align(n int) int {
	return (n + bufferAlign - 1) &^ (bufferAlign - 1)
}
