package geom

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
)

// SampleSurface draws n points uniformly over the mesh surface. A face is
// picked with probability proportional to its area, then a point is drawn
// uniformly inside it using the square-root barycentric trick.
//
// The caller provides the random source so that sampling can be made
// deterministic.
func SampleSurface(m Mesh, n int, rng *rand.Rand) (PointCloud, error) {
	if m.Cloud.IsEmpty() {
		return PointCloud{}, ErrEmptyInput
	}
	if len(m.Faces) == 0 {
		return PointCloud{}, ErrNoFaces
	}

	// Cumulative area table for proportional face selection
	cumulative := make([]float64, len(m.Faces))
	total := 0.0
	for i := range m.Faces {
		a, b, c := m.Triangle(i)
		total += TriangleArea(a, b, c)
		cumulative[i] = total
	}
	if total <= 0 {
		return PointCloud{}, ErrNoFaces
	}

	points := make([]mgl64.Vec3, n)
	for i := 0; i < n; i++ {
		face := searchCumulative(cumulative, rng.Float64()*total)
		a, b, c := m.Triangle(face)

		// Uniform barycentric sample: sqrt(r1) folds the parallelogram
		// back onto the triangle without biasing toward a vertex.
		r1 := math.Sqrt(rng.Float64())
		r2 := rng.Float64()
		u := 1 - r1
		v := r1 * (1 - r2)
		w := r1 * r2
		points[i] = a.Mul(u).Add(b.Mul(v)).Add(c.Mul(w))
	}
	return NewPointCloud(points), nil
}

// searchCumulative returns the first index whose cumulative value is
// >= target (binary search).
func searchCumulative(cumulative []float64, target float64) int {
	lo, hi := 0, len(cumulative)-1
	for lo < hi {
		mid := (lo + hi) / 2
		if cumulative[mid] < target {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}
