package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// TriangleArea returns the area of triangle abc: half the magnitude of the
// cross product of two edge vectors.
func TriangleArea(a, b, c mgl64.Vec3) float64 {
	ab := b.Sub(a)
	ac := c.Sub(a)
	return 0.5 * ab.Cross(ac).Len()
}

// TriangleNormal returns the unit normal of triangle abc following the
// winding order (right-hand rule). Returns the zero vector for a
// degenerate (zero-area) triangle.
func TriangleNormal(a, b, c mgl64.Vec3) mgl64.Vec3 {
	ab := b.Sub(a)
	ac := c.Sub(a)
	normal := ab.Cross(ac)

	length := normal.Len()
	if length < 1e-12 {
		// Degenerate triangle (zero area)
		return mgl64.Vec3{}
	}
	return normal.Mul(1.0 / length)
}

// ClosestPointOnTriangle returns the point of triangle abc closest to p.
//
// The query point is projected onto the triangle's plane; if the
// projection falls inside the triangle (all barycentric coordinates
// non-negative) the projection is the answer, otherwise the closest point
// lies on an edge or a vertex. The implementation walks the Voronoi
// regions of the triangle's features, testing vertex regions first, then
// edge regions, before concluding the projection is interior.
func ClosestPointOnTriangle(p, a, b, c mgl64.Vec3) mgl64.Vec3 {
	ab := b.Sub(a)
	ac := c.Sub(a)
	ap := p.Sub(a)

	// Vertex region A
	d1 := ab.Dot(ap)
	d2 := ac.Dot(ap)
	if d1 <= 0 && d2 <= 0 {
		return a
	}

	// Vertex region B
	bp := p.Sub(b)
	d3 := ab.Dot(bp)
	d4 := ac.Dot(bp)
	if d3 >= 0 && d4 <= d3 {
		return b
	}

	// Edge region AB
	vc := d1*d4 - d3*d2
	if vc <= 0 && d1 >= 0 && d3 <= 0 {
		v := d1 / (d1 - d3)
		return a.Add(ab.Mul(v))
	}

	// Vertex region C
	cp := p.Sub(c)
	d5 := ab.Dot(cp)
	d6 := ac.Dot(cp)
	if d6 >= 0 && d5 <= d6 {
		return c
	}

	// Edge region AC
	vb := d5*d2 - d1*d6
	if vb <= 0 && d2 >= 0 && d6 <= 0 {
		w := d2 / (d2 - d6)
		return a.Add(ac.Mul(w))
	}

	// Edge region BC
	va := d3*d6 - d5*d4
	if va <= 0 && (d4-d3) >= 0 && (d5-d6) >= 0 {
		w := (d4 - d3) / ((d4 - d3) + (d5 - d6))
		return b.Add(c.Sub(b).Mul(w))
	}

	// Interior: barycentric combination
	denom := va + vb + vc
	if math.Abs(denom) < 1e-18 {
		// Degenerate triangle, fall back to the nearest vertex
		best := a
		bestDist := p.Sub(a).LenSqr()
		if d := p.Sub(b).LenSqr(); d < bestDist {
			best, bestDist = b, d
		}
		if d := p.Sub(c).LenSqr(); d < bestDist {
			best = c
		}
		return best
	}
	v := vb / denom
	w := vc / denom
	return a.Add(ab.Mul(v)).Add(ac.Mul(w))
}

// PointTriangleDistance returns the distance from p to triangle abc.
func PointTriangleDistance(p, a, b, c mgl64.Vec3) float64 {
	return p.Sub(ClosestPointOnTriangle(p, a, b, c)).Len()
}
