package geom

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func floatApproxEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) < epsilon
}

func vec3ApproxEqual(a, b mgl64.Vec3, epsilon float64) bool {
	return a.Sub(b).Len() < epsilon
}

func TestTriangleArea(t *testing.T) {
	tests := []struct {
		name     string
		a, b, c  mgl64.Vec3
		expected float64
	}{
		{
			name:     "unit right triangle in XY plane",
			a:        mgl64.Vec3{0, 0, 0},
			b:        mgl64.Vec3{1, 0, 0},
			c:        mgl64.Vec3{0, 1, 0},
			expected: 0.5,
		},
		{
			name:     "scaled triangle",
			a:        mgl64.Vec3{0, 0, 0},
			b:        mgl64.Vec3{2, 0, 0},
			c:        mgl64.Vec3{0, 2, 0},
			expected: 2.0,
		},
		{
			name:     "triangle off the axis planes",
			a:        mgl64.Vec3{1, 1, 1},
			b:        mgl64.Vec3{2, 1, 1},
			c:        mgl64.Vec3{1, 1, 2},
			expected: 0.5,
		},
		{
			name:     "degenerate collinear triangle",
			a:        mgl64.Vec3{0, 0, 0},
			b:        mgl64.Vec3{1, 1, 1},
			c:        mgl64.Vec3{2, 2, 2},
			expected: 0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			area := TriangleArea(tt.a, tt.b, tt.c)
			if !floatApproxEqual(area, tt.expected, 1e-12) {
				t.Errorf("TriangleArea = %v, expected %v", area, tt.expected)
			}
		})
	}
}

func TestTriangleNormal(t *testing.T) {
	tests := []struct {
		name     string
		a, b, c  mgl64.Vec3
		expected mgl64.Vec3
	}{
		{
			name:     "counter-clockwise in XY plane points +Z",
			a:        mgl64.Vec3{0, 0, 0},
			b:        mgl64.Vec3{1, 0, 0},
			c:        mgl64.Vec3{0, 1, 0},
			expected: mgl64.Vec3{0, 0, 1},
		},
		{
			name:     "clockwise winding flips the normal",
			a:        mgl64.Vec3{0, 0, 0},
			b:        mgl64.Vec3{0, 1, 0},
			c:        mgl64.Vec3{1, 0, 0},
			expected: mgl64.Vec3{0, 0, -1},
		},
		{
			name:     "degenerate triangle yields zero vector",
			a:        mgl64.Vec3{0, 0, 0},
			b:        mgl64.Vec3{1, 1, 1},
			c:        mgl64.Vec3{2, 2, 2},
			expected: mgl64.Vec3{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			normal := TriangleNormal(tt.a, tt.b, tt.c)
			if !vec3ApproxEqual(normal, tt.expected, 1e-12) {
				t.Errorf("TriangleNormal = %v, expected %v", normal, tt.expected)
			}
		})
	}
}

func TestClosestPointOnTriangle(t *testing.T) {
	// Reference triangle in the XY plane
	a := mgl64.Vec3{0, 0, 0}
	b := mgl64.Vec3{2, 0, 0}
	c := mgl64.Vec3{0, 2, 0}

	tests := []struct {
		name     string
		point    mgl64.Vec3
		expected mgl64.Vec3
	}{
		{
			name:     "projection inside the triangle",
			point:    mgl64.Vec3{0.5, 0.5, 3},
			expected: mgl64.Vec3{0.5, 0.5, 0},
		},
		{
			name:     "point exactly on the surface",
			point:    mgl64.Vec3{0.5, 0.5, 0},
			expected: mgl64.Vec3{0.5, 0.5, 0},
		},
		{
			name:     "clamped to vertex A",
			point:    mgl64.Vec3{-1, -1, 0},
			expected: a,
		},
		{
			name:     "clamped to vertex B",
			point:    mgl64.Vec3{5, -1, 0},
			expected: b,
		},
		{
			name:     "clamped to vertex C",
			point:    mgl64.Vec3{-1, 5, 0},
			expected: c,
		},
		{
			name:     "clamped to edge AB",
			point:    mgl64.Vec3{1, -2, 0},
			expected: mgl64.Vec3{1, 0, 0},
		},
		{
			name:     "clamped to edge AC",
			point:    mgl64.Vec3{-2, 1, 0},
			expected: mgl64.Vec3{0, 1, 0},
		},
		{
			name:     "clamped to hypotenuse BC",
			point:    mgl64.Vec3{2, 2, 0},
			expected: mgl64.Vec3{1, 1, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			closest := ClosestPointOnTriangle(tt.point, a, b, c)
			if !vec3ApproxEqual(closest, tt.expected, 1e-12) {
				t.Errorf("ClosestPointOnTriangle = %v, expected %v", closest, tt.expected)
			}
		})
	}
}

func TestPointTriangleDistance(t *testing.T) {
	a := mgl64.Vec3{0, 0, 0}
	b := mgl64.Vec3{2, 0, 0}
	c := mgl64.Vec3{0, 2, 0}

	tests := []struct {
		name     string
		point    mgl64.Vec3
		expected float64
	}{
		{"perpendicular above interior", mgl64.Vec3{0.5, 0.5, 3}, 3},
		{"on the surface", mgl64.Vec3{0.5, 0.5, 0}, 0},
		{"beyond vertex A", mgl64.Vec3{-3, -4, 0}, 5},
		{"beyond edge AB", mgl64.Vec3{1, -2, 0}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := PointTriangleDistance(tt.point, a, b, c)
			if !floatApproxEqual(d, tt.expected, 1e-12) {
				t.Errorf("PointTriangleDistance = %v, expected %v", d, tt.expected)
			}
		})
	}
}
