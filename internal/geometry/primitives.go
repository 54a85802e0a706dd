package geometry

import (
	gomath "math"

	"github.com/Faultbox/molviz/pkg/math"
)

// template is a non-indexed triangle list in model space.
type template []math.Vec3

// instance returns the template transformed by m.
func (t template) instance(m math.Mat4) []math.Vec3 {
	out := make([]math.Vec3, len(t))
	for i, p := range t {
		out[i] = m.TransformVec3(p)
	}
	return out
}

// translated returns the template offset by d.
func (t template) translated(d math.Vec3) []math.Vec3 {
	out := make([]math.Vec3, len(t))
	for i, p := range t {
		out[i] = p.Add(d)
	}
	return out
}

// boxTemplate returns a cube of the given edge length centered on the
// origin: 12 triangles, 36 vertices.
func boxTemplate(size float32) template {
	h := size / 2
	c := [8]math.Vec3{
		{X: -h, Y: -h, Z: -h}, {X: h, Y: -h, Z: -h}, {X: h, Y: h, Z: -h}, {X: -h, Y: h, Z: -h},
		{X: -h, Y: -h, Z: h}, {X: h, Y: -h, Z: h}, {X: h, Y: h, Z: h}, {X: -h, Y: h, Z: h},
	}
	// Counter-clockwise when viewed from outside.
	faces := [6][4]int{
		{4, 5, 6, 7}, // +Z
		{1, 0, 3, 2}, // -Z
		{5, 1, 2, 6}, // +X
		{0, 4, 7, 3}, // -X
		{7, 6, 2, 3}, // +Y
		{0, 1, 5, 4}, // -Y
	}

	t := make(template, 0, 36)
	for _, f := range faces {
		t = append(t, c[f[0]], c[f[1]], c[f[2]], c[f[0]], c[f[2]], c[f[3]])
	}
	return t
}

// icosahedronTemplate returns an icosahedron of the given circumradius:
// 20 triangles, 60 vertices.
func icosahedronTemplate(radius float32) template {
	p := float32((1 + gomath.Sqrt(5)) / 2)
	v := [12]math.Vec3{
		{X: -1, Y: p}, {X: 1, Y: p}, {X: -1, Y: -p}, {X: 1, Y: -p},
		{Y: -1, Z: p}, {Y: 1, Z: p}, {Y: -1, Z: -p}, {Y: 1, Z: -p},
		{X: p, Z: -1}, {X: p, Z: 1}, {X: -p, Z: -1}, {X: -p, Z: 1},
	}
	for i := range v {
		v[i] = v[i].Normalize().Scale(radius)
	}
	faces := [20][3]int{
		{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
		{1, 5, 9}, {5, 11, 4}, {11, 10, 2}, {10, 7, 6}, {7, 1, 8},
		{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
		{4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7}, {9, 8, 1},
	}

	t := make(template, 0, 60)
	for _, f := range faces {
		t = append(t, v[f[0]], v[f[1]], v[f[2]])
	}
	return t
}

// cylinderTemplate returns an open cylinder of unit length along +Z,
// centered on the origin: 2 triangles per side.
func cylinderTemplate(radius float32, sides int) template {
	ring := func(k int, z float32) math.Vec3 {
		a := 2 * gomath.Pi * float64(k) / float64(sides)
		return math.Vec3{
			X: radius * float32(gomath.Cos(a)),
			Y: radius * float32(gomath.Sin(a)),
			Z: z,
		}
	}

	t := make(template, 0, 6*sides)
	for k := 0; k < sides; k++ {
		a, b := ring(k, -0.5), ring(k+1, -0.5)
		c, d := ring(k+1, 0.5), ring(k, 0.5)
		t = append(t, a, b, c, a, c, d)
	}
	return t
}

// ballTemplate returns the atom primitive for opts.
func ballTemplate(opts Options) template {
	if opts.BallShape == BallIcosahedron {
		return icosahedronTemplate(opts.BallSize / 2)
	}
	return boxTemplate(opts.BallSize)
}

var unitZ = math.Vec3{Z: 1}

// stickTransform places the unit cylinder between from and to. ok is false
// for coincident endpoints.
func stickTransform(from, to math.Vec3) (m math.Mat4, ok bool) {
	length := from.Distance(to)
	if length == 0 {
		return math.Identity(), false
	}
	dir := to.Sub(from).Scale(1 / length)
	mid := from.Lerp(to, 0.5)
	rot := math.QuatFromUnitVectors(unitZ, dir)
	return math.Compose(mid, rot, math.Vec3{X: 1, Y: 1, Z: length}), true
}

// faceNormals returns one flat normal per vertex of a triangle list.
func faceNormals(pts []math.Vec3) []float32 {
	out := make([]float32, 0, 3*len(pts))
	for i := 0; i+2 < len(pts); i += 3 {
		n := pts[i+1].Sub(pts[i]).Cross(pts[i+2].Sub(pts[i])).Normalize()
		for k := 0; k < 3; k++ {
			out = append(out, n.X, n.Y, n.Z)
		}
	}
	return out
}
