package geom

import "github.com/go-gl/mathgl/mgl64"

// Mesh is a triangle mesh: a cloud of vertices plus faces indexing into it.
// Each face is a triple of vertex indices; winding order defines the face
// normal via the right-hand rule, and algorithms that need a signed result
// (C2M, volume) assume winding is consistently oriented outward.
type Mesh struct {
	Cloud PointCloud
	Faces [][3]int
}

// NewMesh builds a mesh and validates that every face references an
// existing vertex. Returns ErrEmptyInput for a mesh without vertices and
// *FaceError for an out-of-range face index. A mesh without faces is
// valid here; operations that require faces check ErrNoFaces themselves.
func NewMesh(vertices []mgl64.Vec3, faces [][3]int) (Mesh, error) {
	if len(vertices) == 0 {
		return Mesh{}, ErrEmptyInput
	}
	for fi, f := range faces {
		for _, vi := range f {
			if vi < 0 || vi >= len(vertices) {
				return Mesh{}, &FaceError{Face: fi, Vertex: vi, VertexCount: len(vertices)}
			}
		}
	}
	return Mesh{Cloud: NewPointCloud(vertices), Faces: faces}, nil
}

// VertexCount returns the number of vertices.
func (m Mesh) VertexCount() int {
	return m.Cloud.Len()
}

// FaceCount returns the number of triangles.
func (m Mesh) FaceCount() int {
	return len(m.Faces)
}

// Triangle returns the three vertices of face i.
func (m Mesh) Triangle(i int) (a, b, c mgl64.Vec3) {
	f := m.Faces[i]
	return m.Cloud.Points[f[0]], m.Cloud.Points[f[1]], m.Cloud.Points[f[2]]
}

// FaceCentroids returns the centroid of every face, in face order.
func (m Mesh) FaceCentroids() []mgl64.Vec3 {
	centroids := make([]mgl64.Vec3, len(m.Faces))
	for i := range m.Faces {
		a, b, c := m.Triangle(i)
		centroids[i] = a.Add(b).Add(c).Mul(1.0 / 3.0)
	}
	return centroids
}
