package geom

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

// rotationZ builds a rotation of angle radians around the Z axis.
func rotationZ(angle float64) mgl64.Mat3 {
	cos, sin := math.Cos(angle), math.Sin(angle)
	m := mgl64.Ident3()
	m.Set(0, 0, cos)
	m.Set(0, 1, -sin)
	m.Set(1, 0, sin)
	m.Set(1, 1, cos)
	return m
}

func TestIdentityTransform(t *testing.T) {
	identity := IdentityTransform()
	points := []mgl64.Vec3{
		{0, 0, 0},
		{1, 2, 3},
		{-4.5, 0.25, 1e6},
	}

	for _, p := range points {
		if !vec3ApproxEqual(identity.Apply(p), p, 1e-15) {
			t.Errorf("identity transform moved %v to %v", p, identity.Apply(p))
		}
	}
}

func TestTransformApply(t *testing.T) {
	tests := []struct {
		name      string
		transform Transform
		point     mgl64.Vec3
		expected  mgl64.Vec3
	}{
		{
			name:      "pure translation",
			transform: Transform{Rotation: mgl64.Ident3(), Translation: mgl64.Vec3{1, 2, 3}},
			point:     mgl64.Vec3{1, 1, 1},
			expected:  mgl64.Vec3{2, 3, 4},
		},
		{
			name:      "quarter turn around Z",
			transform: Transform{Rotation: rotationZ(math.Pi / 2)},
			point:     mgl64.Vec3{1, 0, 0},
			expected:  mgl64.Vec3{0, 1, 0},
		},
		{
			name:      "rotate then translate",
			transform: Transform{Rotation: rotationZ(math.Pi / 2), Translation: mgl64.Vec3{10, 0, 0}},
			point:     mgl64.Vec3{1, 0, 0},
			expected:  mgl64.Vec3{10, 1, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.transform.Apply(tt.point)
			if !vec3ApproxEqual(result, tt.expected, 1e-12) {
				t.Errorf("Apply(%v) = %v, expected %v", tt.point, result, tt.expected)
			}
		})
	}
}

func TestTransformCompose(t *testing.T) {
	first := Transform{Rotation: rotationZ(math.Pi / 4), Translation: mgl64.Vec3{1, 0, 0}}
	second := Transform{Rotation: rotationZ(math.Pi / 4), Translation: mgl64.Vec3{0, 1, 0}}

	composed := second.Compose(first)
	points := []mgl64.Vec3{
		{0, 0, 0},
		{1, 2, 3},
		{-1, 0.5, 2},
	}

	for _, p := range points {
		direct := second.Apply(first.Apply(p))
		viaComposed := composed.Apply(p)
		if !vec3ApproxEqual(direct, viaComposed, 1e-12) {
			t.Errorf("compose mismatch for %v: sequential %v, composed %v", p, direct, viaComposed)
		}
	}
}

func TestTransformComposeWithIdentity(t *testing.T) {
	transform := Transform{Rotation: rotationZ(1.3), Translation: mgl64.Vec3{4, -2, 7}}
	identity := IdentityTransform()

	p := mgl64.Vec3{2, 3, 5}
	if !vec3ApproxEqual(transform.Compose(identity).Apply(p), transform.Apply(p), 1e-12) {
		t.Error("T ∘ I should equal T")
	}
	if !vec3ApproxEqual(identity.Compose(transform).Apply(p), transform.Apply(p), 1e-12) {
		t.Error("I ∘ T should equal T")
	}
}

func TestApplyCloudDoesNotMutateInput(t *testing.T) {
	original := NewPointCloud([]mgl64.Vec3{{1, 0, 0}, {0, 1, 0}})
	transform := Transform{Rotation: mgl64.Ident3(), Translation: mgl64.Vec3{5, 5, 5}}

	transformed := transform.ApplyCloud(original)

	if !vec3ApproxEqual(original.Points[0], mgl64.Vec3{1, 0, 0}, 1e-15) {
		t.Error("input cloud was mutated")
	}
	if !vec3ApproxEqual(transformed.Points[0], mgl64.Vec3{6, 5, 5}, 1e-12) {
		t.Errorf("transformed point = %v, expected {6 5 5}", transformed.Points[0])
	}
	if transformed.Len() != original.Len() {
		t.Errorf("transformed cloud has %d points, expected %d", transformed.Len(), original.Len())
	}
}

func TestApplyCloudRotatesNormals(t *testing.T) {
	cloud := PointCloud{
		Points:  []mgl64.Vec3{{1, 0, 0}},
		Normals: []mgl64.Vec3{{1, 0, 0}},
	}
	transform := Transform{Rotation: rotationZ(math.Pi / 2), Translation: mgl64.Vec3{100, 100, 100}}

	transformed := transform.ApplyCloud(cloud)

	// Normals rotate but never translate
	if !vec3ApproxEqual(transformed.Normals[0], mgl64.Vec3{0, 1, 0}, 1e-12) {
		t.Errorf("normal = %v, expected {0 1 0}", transformed.Normals[0])
	}
}
