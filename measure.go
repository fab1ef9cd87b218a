package chisel

import (
	"github.com/akmonengine/chisel/geom"
)

// MeasurementResult holds the geometric measurements of a single mesh.
type MeasurementResult struct {
	// SurfaceArea is the sum of all triangle areas.
	SurfaceArea float64
	// Volume is the signed divergence-theorem integral (tetrahedron
	// decomposition referenced to the origin). Only meaningful for a
	// closed, consistently outward-wound mesh.
	Volume float64
	// PossiblyInvalid is set when the boundary-edge probe finds any edge
	// not shared by exactly two faces, meaning the surface is open or
	// non-manifold and Volume is not a valid volume. The numeric value is
	// still returned; this is a warning, not an error.
	PossiblyInvalid bool

	VertexCount int
	FaceCount   int
	Bounds      geom.AABB
}

// Measure computes surface area and volume of a mesh along with bounding
// box and size metadata. Fails with geom.ErrEmptyInput for a mesh without
// vertices and geom.ErrNoFaces for a mesh without faces.
//
// Exhaustive manifoldness verification is out of scope: the edge probe is
// a cheap necessary condition for watertightness, not a proof.
func Measure(mesh geom.Mesh) (MeasurementResult, error) {
	if mesh.Cloud.IsEmpty() {
		return MeasurementResult{}, geom.ErrEmptyInput
	}
	if mesh.FaceCount() == 0 {
		return MeasurementResult{}, geom.ErrNoFaces
	}

	area := 0.0
	volume := 0.0
	for i := range mesh.Faces {
		a, b, c := mesh.Triangle(i)
		area += geom.TriangleArea(a, b, c)
		// Signed volume of the tetrahedron (origin, a, b, c)
		volume += a.Dot(b.Cross(c)) / 6.0
	}

	return MeasurementResult{
		SurfaceArea:     area,
		Volume:          volume,
		PossiblyInvalid: hasOpenEdges(mesh),
		VertexCount:     mesh.VertexCount(),
		FaceCount:       mesh.FaceCount(),
		Bounds:          mesh.Cloud.Bounds(),
	}, nil
}

// edgeKey identifies an undirected edge by its sorted vertex indices.
type edgeKey struct {
	A, B int
}

func newEdgeKey(a, b int) edgeKey {
	if a > b {
		a, b = b, a
	}
	return edgeKey{A: a, B: b}
}

// hasOpenEdges counts how many faces share each undirected edge. On a
// closed manifold surface every edge is shared by exactly two faces; any
// other count marks a boundary or a non-manifold junction.
func hasOpenEdges(mesh geom.Mesh) bool {
	edgeCount := make(map[edgeKey]int, 3*len(mesh.Faces)/2)
	for _, f := range mesh.Faces {
		edgeCount[newEdgeKey(f[0], f[1])]++
		edgeCount[newEdgeKey(f[1], f[2])]++
		edgeCount[newEdgeKey(f[2], f[0])]++
	}
	for _, count := range edgeCount {
		if count != 2 {
			return true
		}
	}
	return false
}
