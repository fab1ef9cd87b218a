package geom

import "github.com/go-gl/mathgl/mgl64"

// Transform represents a rigid transform: a rotation (orthonormal 3x3
// matrix, determinant +1) followed by a translation. Applied to a point as
// rotate-then-translate.
type Transform struct {
	Rotation    mgl64.Mat3
	Translation mgl64.Vec3
}

// IdentityTransform creates an identity transform
func IdentityTransform() Transform {
	return Transform{Rotation: mgl64.Ident3()}
}

// Apply transforms a single point: R*p + t.
func (t Transform) Apply(p mgl64.Vec3) mgl64.Vec3 {
	return t.Rotation.Mul3x1(p).Add(t.Translation)
}

// Compose returns the transform equivalent to applying other first,
// then t: (t ∘ other)(p) = t(other(p)).
func (t Transform) Compose(other Transform) Transform {
	return Transform{
		Rotation:    t.Rotation.Mul3(other.Rotation),
		Translation: t.Rotation.Mul3x1(other.Translation).Add(t.Translation),
	}
}

// ApplyCloud returns a new cloud with every point transformed. Normals,
// if present, are rotated only (translation does not apply to directions).
// The input cloud is not modified.
func (t Transform) ApplyCloud(c PointCloud) PointCloud {
	out := PointCloud{Points: make([]mgl64.Vec3, len(c.Points))}
	for i, p := range c.Points {
		out.Points[i] = t.Apply(p)
	}
	if len(c.Normals) > 0 {
		out.Normals = make([]mgl64.Vec3, len(c.Normals))
		for i, n := range c.Normals {
			out.Normals[i] = t.Rotation.Mul3x1(n)
		}
	}
	return out
}
