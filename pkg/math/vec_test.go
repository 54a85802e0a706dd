package math

import (
	"testing"
)

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	got := x.Cross(y)
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3MinMax(t *testing.T) {
	a := Vec3{1, 5, -3}
	b := Vec3{2, -1, 0}
	if got, want := a.Min(b), (Vec3{1, -1, -3}); got != want {
		t.Errorf("Vec3.Min() = %v, want %v", got, want)
	}
	if got, want := a.Max(b), (Vec3{2, 5, 0}); got != want {
		t.Errorf("Vec3.Max() = %v, want %v", got, want)
	}
}

func TestVec3Lerp(t *testing.T) {
	a := Vec3{0, 0, 0}
	b := Vec3{10, 20, 30}
	if got, want := a.Lerp(b, 0.5), (Vec3{5, 10, 15}); got != want {
		t.Errorf("Vec3.Lerp() = %v, want %v", got, want)
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(5, 0, 3); got != 3 {
		t.Errorf("Clamp(5, 0, 3) = %v", got)
	}
	if got := Clamp(float32(-1), 0, 1); got != 0 {
		t.Errorf("Clamp(-1, 0, 1) = %v", got)
	}
}

func TestApproxEqual(t *testing.T) {
	tests := []struct {
		a, b float64
		want bool
	}{
		{1000, 1000.001, true},
		{1000, 1001, false},
		{0, 1e-7, true},
		{0, 1e-3, false},
	}
	for _, tt := range tests {
		if got := ApproxEqual(tt.a, tt.b, 1e-5); got != tt.want {
			t.Errorf("ApproxEqual(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}
