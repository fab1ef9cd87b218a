package chisel

import (
	"math"

	"github.com/akmonengine/chisel/geom"
	"github.com/akmonengine/chisel/kdtree"
	"github.com/go-gl/mathgl/mgl64"
)

// C2M computes the signed cloud-to-mesh distance record: for every query
// point, the distance to the closest point on the mesh surface, positive
// when the query lies on the outside of the nearest triangle (along its
// winding normal) and negative when it lies inside.
//
// Precondition: the mesh's face winding must be consistently oriented
// outward. Inconsistent winding yields unreliable signs; the engine does
// not detect or correct it.
//
// The face search is narrowed with a k-d tree over face centroids: the
// exact distance to the nearest-centroid face is an upper bound b, and any
// face that could beat b has its centroid within b + maxFaceRadius of the
// query, so one radius query yields a complete candidate set.
func C2M(points geom.PointCloud, mesh geom.Mesh, workers int) (DistanceRecord, error) {
	if points.IsEmpty() || mesh.Cloud.IsEmpty() {
		return nil, geom.ErrEmptyInput
	}
	if mesh.FaceCount() == 0 {
		return nil, geom.ErrNoFaces
	}

	centroids := mesh.FaceCentroids()
	tree, err := kdtree.New(geom.NewPointCloud(centroids))
	if err != nil {
		return nil, err
	}

	// Largest centroid-to-vertex distance over all faces; the slack that
	// makes the radius query complete.
	maxRadius := 0.0
	for i := range mesh.Faces {
		a, b, c := mesh.Triangle(i)
		for _, v := range [3]mgl64.Vec3{a, b, c} {
			maxRadius = math.Max(maxRadius, v.Sub(centroids[i]).Len())
		}
	}

	record := make(DistanceRecord, points.Len())
	taskRange(workers, points.Len(), func(start, end int) {
		for i := start; i < end; i++ {
			record[i] = signedDistance(points.Points[i], mesh, tree, centroids, maxRadius)
		}
	})
	return record, nil
}

// signedDistance finds the face closest to q and signs the distance by the
// winding normal of that face.
func signedDistance(q mgl64.Vec3, mesh geom.Mesh, tree *kdtree.Tree, centroids []mgl64.Vec3, maxRadius float64) float64 {
	seed, _ := tree.Nearest(q)
	a, b, c := mesh.Triangle(seed)

	bestFace := seed
	bestPoint := geom.ClosestPointOnTriangle(q, a, b, c)
	bestDist := q.Sub(bestPoint).Len()

	for _, face := range tree.InRadius(q, bestDist+maxRadius) {
		if face == seed {
			continue
		}
		fa, fb, fc := mesh.Triangle(face)
		candidate := geom.ClosestPointOnTriangle(q, fa, fb, fc)
		if d := q.Sub(candidate).Len(); d < bestDist {
			bestFace, bestPoint, bestDist = face, candidate, d
		}
	}

	fa, fb, fc := mesh.Triangle(bestFace)
	normal := geom.TriangleNormal(fa, fb, fc)
	if q.Sub(bestPoint).Dot(normal) >= 0 {
		return bestDist
	}
	return -bestDist
}

// CountSigns reduces a signed record to its positive (outside), negative
// (inside) and exactly-zero counts.
func CountSigns(record DistanceRecord) (positive, negative, zero int) {
	for _, d := range record {
		switch {
		case d > 0:
			positive++
		case d < 0:
			negative++
		default:
			zero++
		}
	}
	return positive, negative, zero
}
