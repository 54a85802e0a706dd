package scene

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// ErrAttributeType is returned when an attribute is read as the wrong
// element type.
var ErrAttributeType = errors.New("attribute type mismatch")

// AttributeType identifies the numeric representation of attribute
// elements.
type AttributeType uint8

const (
	Int8 AttributeType = iota
	Uint8
	Uint8Clamped
	Int16
	Uint16
	Int32
	Uint32
	Float32
	Float64
)

var attributeTypeNames = [...]string{
	Int8:         "Int8",
	Uint8:        "Uint8",
	Uint8Clamped: "Uint8Clamped",
	Int16:        "Int16",
	Uint16:       "Uint16",
	Int32:        "Int32",
	Uint32:       "Uint32",
	Float32:      "Float32",
	Float64:      "Float64",
}

// String returns the type tag used on the wire.
func (t AttributeType) String() string {
	if int(t) < len(attributeTypeNames) {
		return attributeTypeNames[t]
	}
	return fmt.Sprintf("AttributeType(%d)", t)
}

// Size returns the element size in bytes, or 0 for an invalid type.
func (t AttributeType) Size() int {
	switch t {
	case Int8, Uint8, Uint8Clamped:
		return 1
	case Int16, Uint16:
		return 2
	case Int32, Uint32, Float32:
		return 4
	case Float64:
		return 8
	default:
		return 0
	}
}

// ParseAttributeType maps a wire type tag back to its type.
func ParseAttributeType(tag string) (AttributeType, bool) {
	for i, name := range attributeTypeNames {
		if name == tag {
			return AttributeType(i), true
		}
	}
	return 0, false
}

// Attribute is one named per-vertex array. Elements are stored little-endian
// in Raw, which may be a view into a larger shared buffer.
type Attribute struct {
	Type     AttributeType
	ItemSize int // elements per vertex
	Raw      []byte
}

// NewFloat32Attribute encodes float32 data.
func NewFloat32Attribute(itemSize int, data []float32) *Attribute {
	return newAttribute(Float32, itemSize, data)
}

// NewUint16Attribute encodes uint16 data, typically an index buffer.
func NewUint16Attribute(itemSize int, data []uint16) *Attribute {
	return newAttribute(Uint16, itemSize, data)
}

// NewUint32Attribute encodes uint32 data.
func NewUint32Attribute(itemSize int, data []uint32) *Attribute {
	return newAttribute(Uint32, itemSize, data)
}

// NewAttribute encodes data of any fixed-size numeric slice type. The slice
// element size must match t.
func NewAttribute(t AttributeType, itemSize int, data any) (*Attribute, error) {
	raw, err := binary.Append(nil, binary.LittleEndian, data)
	if err != nil {
		return nil, fmt.Errorf("encoding %s attribute: %w", t, err)
	}
	if t.Size() == 0 || len(raw)%t.Size() != 0 {
		return nil, fmt.Errorf("%w: %d bytes for %s", ErrAttributeType, len(raw), t)
	}
	return &Attribute{Type: t, ItemSize: itemSize, Raw: raw}, nil
}

func newAttribute(t AttributeType, itemSize int, data any) *Attribute {
	raw, err := binary.Append(nil, binary.LittleEndian, data)
	if err != nil {
		panic(fmt.Sprintf("scene: encoding %s attribute: %v", t, err))
	}
	return &Attribute{Type: t, ItemSize: itemSize, Raw: raw}
}

// Len returns the number of elements.
func (a *Attribute) Len() int {
	if sz := a.Type.Size(); sz > 0 {
		return len(a.Raw) / sz
	}
	return 0
}

// Count returns the number of vertices (elements / item size).
func (a *Attribute) Count() int {
	if a.ItemSize <= 0 {
		return 0
	}
	return a.Len() / a.ItemSize
}

// ByteLength returns the size of the element data in bytes.
func (a *Attribute) ByteLength() int {
	return len(a.Raw)
}

// Float32s decodes a Float32 attribute into a new slice.
func (a *Attribute) Float32s() ([]float32, error) {
	if a.Type != Float32 {
		return nil, fmt.Errorf("%w: have %s, want Float32", ErrAttributeType, a.Type)
	}
	out := make([]float32, a.Len())
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(a.Raw[4*i:]))
	}
	return out, nil
}

// At returns element i converted to float64, whatever the element type.
func (a *Attribute) At(i int) float64 {
	b := a.Raw[i*a.Type.Size():]
	switch a.Type {
	case Int8:
		return float64(int8(b[0]))
	case Uint8, Uint8Clamped:
		return float64(b[0])
	case Int16:
		return float64(int16(binary.LittleEndian.Uint16(b)))
	case Uint16:
		return float64(binary.LittleEndian.Uint16(b))
	case Int32:
		return float64(int32(binary.LittleEndian.Uint32(b)))
	case Uint32:
		return float64(binary.LittleEndian.Uint32(b))
	case Float32:
		return float64(math.Float32frombits(binary.LittleEndian.Uint32(b)))
	case Float64:
		return math.Float64frombits(binary.LittleEndian.Uint64(b))
	default:
		return 0
	}
}

// Clone returns a copy that owns its element data.
func (a *Attribute) Clone() *Attribute {
	c := *a
	c.Raw = append([]byte(nil), a.Raw...)
	return &c
}
