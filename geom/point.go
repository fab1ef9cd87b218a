package geom

import "github.com/go-gl/mathgl/mgl64"

// PointCloud is an ordered set of points, optionally with per-point
// normals. Order carries no geometric meaning; it is only used to line up
// indexed outputs (distance records) with their query points.
//
// A cloud is treated as immutable once built: every algorithm in the
// engine reads it without modification, and transforms produce new clouds.
type PointCloud struct {
	Points []mgl64.Vec3
	// Normals is either empty or has the same length as Points. Unit
	// length is not enforced by the type; algorithms relying on
	// orientation require it to be meaningful.
	Normals []mgl64.Vec3
}

// NewPointCloud creates a cloud over the given points, without normals.
func NewPointCloud(points []mgl64.Vec3) PointCloud {
	return PointCloud{Points: points}
}

// Len returns the number of points.
func (c PointCloud) Len() int {
	return len(c.Points)
}

// IsEmpty returns true if the cloud has no points.
func (c PointCloud) IsEmpty() bool {
	return len(c.Points) == 0
}

// Centroid returns the arithmetic mean of all points.
// The cloud must be non-empty.
func (c PointCloud) Centroid() mgl64.Vec3 {
	var sum mgl64.Vec3
	for _, p := range c.Points {
		sum = sum.Add(p)
	}
	return sum.Mul(1.0 / float64(len(c.Points)))
}

// Bounds returns the axis-aligned bounding box of the cloud.
// The cloud must be non-empty.
func (c PointCloud) Bounds() AABB {
	return AABBFromPoints(c.Points)
}
