package geom

import (
	"errors"
	"fmt"
)

// ErrEmptyInput is returned when a point cloud, mesh or distance record
// with zero elements is passed to a component that requires data.
var ErrEmptyInput = errors.New("geom: empty input")

// ErrNoFaces is returned when an operation requires mesh faces but the
// mesh has none.
var ErrNoFaces = errors.New("geom: mesh has no faces")

// FaceError reports a face referencing a vertex index outside the mesh's
// vertex range. It is detected at mesh construction.
type FaceError struct {
	Face        int // index of the offending face
	Vertex      int // out-of-range vertex index it references
	VertexCount int // number of vertices in the mesh
}

func (e *FaceError) Error() string {
	return fmt.Sprintf("geom: face %d references vertex %d, mesh has %d vertices",
		e.Face, e.Vertex, e.VertexCount)
}
