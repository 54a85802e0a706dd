package geometry

import (
	"fmt"

	"github.com/Faultbox/molviz/internal/chem"
	"github.com/Faultbox/molviz/internal/scene"
	"github.com/Faultbox/molviz/pkg/math"
)

// batchState is the lifecycle of one batch.
type batchState uint8

const (
	batchOpen batchState = iota // accepting primitives
	batchFull                   // closed; a new batch took over its key
)

// batch accumulates triangles for one material.
type batch struct {
	name      string
	material  *scene.Material
	positions []math.Vec3
	state     batchState
}

func (b *batch) vertexCount() int {
	return len(b.positions)
}

// batchKey identifies a material bucket. Atoms are bucketed by element,
// bonds by color.
type batchKey struct {
	bond    bool
	element string
	color   chem.Color
}

func (k batchKey) name() string {
	if k.bond {
		if k.color == chem.NeutralColor {
			return "bonds"
		}
		return fmt.Sprintf("bonds_%06x", uint32(k.color))
	}
	e := k.element
	if e == "" {
		e = "unknown"
	}
	return e + "_group"
}

// batchSet holds the open batch per key and every batch in creation order.
type batchSet struct {
	limit     int
	merge     bool
	open      map[batchKey]*batch
	materials map[batchKey]*scene.Material
	batches   []*batch
}

func newBatchSet(limit int, merge bool) *batchSet {
	return &batchSet{
		limit:     limit,
		merge:     merge,
		open:      make(map[batchKey]*batch),
		materials: make(map[batchKey]*scene.Material),
	}
}

// material returns the shared material of key, creating it on first use.
func (s *batchSet) material(key batchKey) *scene.Material {
	m, ok := s.materials[key]
	if !ok {
		m = scene.NewMaterial(key.name(), key.color)
		s.materials[key] = m
	}
	return m
}

// openBatch starts a new batch for key and makes it the open one.
func (s *batchSet) openBatch(key batchKey, name string) *batch {
	b := &batch{name: name, material: s.material(key)}
	s.batches = append(s.batches, b)
	s.open[key] = b
	return b
}

// add appends one primitive instance. With merging, the open batch for key
// is closed and replaced when the primitive would push it past the limit.
// Without merging, every primitive gets its own batch named name.
func (s *batchSet) add(key batchKey, name string, verts []math.Vec3) error {
	if len(verts) > s.limit {
		return fmt.Errorf("%w: %d vertices, limit %d", ErrPrimitiveTooLarge, len(verts), s.limit)
	}

	if !s.merge {
		b := s.openBatch(key, name)
		b.positions = append(b.positions, verts...)
		b.state = batchFull
		return nil
	}

	b, ok := s.open[key]
	switch {
	case !ok:
		b = s.openBatch(key, key.name())
	case b.vertexCount()+len(verts) > s.limit:
		b.state = batchFull
		b = s.openBatch(key, key.name())
	}
	b.positions = append(b.positions, verts...)
	return nil
}

// bounds returns the box around every emitted vertex.
func (s *batchSet) bounds() scene.Bounds {
	bb := scene.EmptyBounds()
	for _, b := range s.batches {
		for _, p := range b.positions {
			bb.Extend(p)
		}
	}
	return bb
}

// translate offsets every batch by d.
func (s *batchSet) translate(d math.Vec3) {
	for _, b := range s.batches {
		for i := range b.positions {
			b.positions[i] = b.positions[i].Add(d)
		}
	}
}
