package math

import "golang.org/x/exp/constraints"

// Clamp returns f clamped to the range [low, high].
func Clamp[T constraints.Ordered](f, low, high T) T {
	if f < low {
		return low
	}
	if f > high {
		return high
	}
	return f
}

// Min returns the smaller of a and b.
func Min[T constraints.Ordered](a, b T) T {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of a and b.
func Max[T constraints.Ordered](a, b T) T {
	if a > b {
		return a
	}
	return b
}

// ApproxEqual reports whether a and b agree within a relative tolerance,
// falling back to an absolute tolerance near zero.
func ApproxEqual(a, b, tol float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	scale := Max(abs64(a), abs64(b))
	if scale < 1 {
		return d <= tol
	}
	return d <= tol*scale
}

func abs64(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
