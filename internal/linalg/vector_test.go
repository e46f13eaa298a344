package linalg

import (
	"math"
	"testing"
)

func TestNormalized(t *testing.T) {
	tests := []struct {
		name string
		in   Vec3
		want Vec3
	}{
		{"zero stays zero", Vec3{}, Vec3{}},
		{"axis", Vec3{0, 5, 0}, Vec3{0, 1, 0}},
		{"diagonal", Vec3{3, 4, 0}, Vec3{0.6, 0.8, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalized(tt.in)
			if !ApproxEqual(got, tt.want, 1e-12) {
				t.Errorf("Normalized(%v) = %v, want %v", tt.in, got, tt.want)
			}
			if !IsFinite(got) {
				t.Errorf("Normalized(%v) produced non-finite %v", tt.in, got)
			}
		})
	}
}

func TestIsFinite(t *testing.T) {
	if IsFinite(Vec3{math.NaN(), 0, 0}) {
		t.Error("NaN component reported finite")
	}
	if IsFinite(Vec3{0, math.Inf(-1), 0}) {
		t.Error("Inf component reported finite")
	}
	if !IsFinite(Vec3{1, 2, 3}) {
		t.Error("finite vector reported non-finite")
	}
}

func TestDistance(t *testing.T) {
	if d := Distance(Vec3{1, 1, 1}, Vec3{1, 4, 5}); math.Abs(d-5) > 1e-12 {
		t.Errorf("expected distance 5, got %f", d)
	}
}
