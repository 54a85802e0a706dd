package scene

// Radius returns the largest distance from the root's origin to any mesh
// vertex, measured in the root's local space. An empty tree has radius 0.
func Radius(t *Tree) float32 {
	var max float32
	root := t.Root()
	for _, i := range t.Meshes() {
		geo := t.Node(i).Mesh.Geometry
		if geo == nil {
			continue
		}
		pts, err := geo.Positions()
		if err != nil {
			continue
		}
		m := t.RelativeTransform(i, root)
		for _, p := range pts {
			if d := m.TransformVec3(p).Length(); d > max {
				max = d
			}
		}
	}
	return max
}

// TreeBounds returns the box around every mesh vertex in the root's local
// space.
func TreeBounds(t *Tree) Bounds {
	b := EmptyBounds()
	root := t.Root()
	for _, i := range t.Meshes() {
		geo := t.Node(i).Mesh.Geometry
		if geo == nil {
			continue
		}
		pts, err := geo.Positions()
		if err != nil {
			continue
		}
		m := t.RelativeTransform(i, root)
		for _, p := range pts {
			b.Extend(m.TransformVec3(p))
		}
	}
	return b
}
