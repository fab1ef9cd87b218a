// Package kdtree implements a k-d tree for nearest-neighbor queries over a
// 3D point cloud.
//
// The tree is built once by recursive median splitting on alternating axes
// and is read-only afterwards, so it can be queried concurrently from any
// number of goroutines. Queries descend toward the query point and prune
// every subtree whose splitting plane is farther away than the best
// candidate found so far, giving expected O(log n) lookups for
// well-distributed inputs. Degenerate inputs (all points collinear or
// coincident) degrade toward O(n) per query; this is accepted and not
// optimized further.
//
// Nodes live in a flat arena addressed by integer index rather than as
// pointer-linked structs, which keeps the tree compact and cache-friendly.
//
// References:
//   - Bentley: "Multidimensional Binary Search Trees Used for Associative
//     Searching" (1975)
//   - Friedman, Bentley, Finkel: "An Algorithm for Finding Best Matches in
//     Logarithmic Expected Time" (1977)
package kdtree

import (
	"math"
	"sort"

	"github.com/akmonengine/chisel/geom"
	"github.com/go-gl/mathgl/mgl64"
)

// node is one arena slot. Children reference other slots by index;
// -1 means no child.
type node struct {
	point       mgl64.Vec3
	index       int32 // position of the point in the source cloud
	left, right int32
	axis        int8
}

// Tree is an immutable k-d tree over the points of a cloud.
type Tree struct {
	nodes []node
	root  int32
}

// New builds a tree over the cloud's points. Fails with geom.ErrEmptyInput
// if the cloud has no points. The cloud is read during construction only.
func New(cloud geom.PointCloud) (*Tree, error) {
	if cloud.IsEmpty() {
		return nil, geom.ErrEmptyInput
	}

	indices := make([]int32, cloud.Len())
	for i := range indices {
		indices[i] = int32(i)
	}

	t := &Tree{nodes: make([]node, 0, cloud.Len())}
	t.root = t.build(cloud.Points, indices, 0)
	return t, nil
}

// build recursively splits indices at the median along the current axis
// and returns the arena index of the subtree root.
func (t *Tree) build(points []mgl64.Vec3, indices []int32, depth int) int32 {
	if len(indices) == 0 {
		return -1
	}

	axis := int8(depth % 3)
	sort.Slice(indices, func(i, j int) bool {
		return points[indices[i]][axis] < points[indices[j]][axis]
	})
	median := len(indices) / 2

	id := int32(len(t.nodes))
	t.nodes = append(t.nodes, node{
		point: points[indices[median]],
		index: indices[median],
		axis:  axis,
		left:  -1,
		right: -1,
	})

	// Children must be built after the parent slot is reserved, since the
	// arena grows during recursion.
	left := t.build(points, indices[:median], depth+1)
	right := t.build(points, indices[median+1:], depth+1)
	t.nodes[id].left = left
	t.nodes[id].right = right
	return id
}

// Len returns the number of indexed points.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Nearest returns the index of the indexed point closest to q, and the
// Euclidean distance to it.
func (t *Tree) Nearest(q mgl64.Vec3) (int, float64) {
	best := int32(-1)
	bestSq := math.MaxFloat64
	t.nearest(t.root, q, &best, &bestSq)
	return int(best), math.Sqrt(bestSq)
}

func (t *Tree) nearest(id int32, q mgl64.Vec3, best *int32, bestSq *float64) {
	if id < 0 {
		return
	}
	n := &t.nodes[id]

	if d := q.Sub(n.point).LenSqr(); d < *bestSq {
		*bestSq = d
		*best = n.index
	}

	// Descend the side containing the query first; the far side only
	// needs visiting if the splitting plane is closer than the current
	// best candidate.
	delta := q[n.axis] - n.point[n.axis]
	near, far := n.left, n.right
	if delta > 0 {
		near, far = n.right, n.left
	}

	t.nearest(near, q, best, bestSq)
	if delta*delta < *bestSq {
		t.nearest(far, q, best, bestSq)
	}
}

// InRadius returns the indices of all indexed points within radius r of q,
// in no particular order.
func (t *Tree) InRadius(q mgl64.Vec3, r float64) []int {
	if r < 0 {
		return nil
	}
	var out []int
	t.inRadius(t.root, q, r*r, &out)
	return out
}

func (t *Tree) inRadius(id int32, q mgl64.Vec3, rSq float64, out *[]int) {
	if id < 0 {
		return
	}
	n := &t.nodes[id]

	if q.Sub(n.point).LenSqr() <= rSq {
		*out = append(*out, int(n.index))
	}

	delta := q[n.axis] - n.point[n.axis]
	near, far := n.left, n.right
	if delta > 0 {
		near, far = n.right, n.left
	}

	t.inRadius(near, q, rSq, out)
	if delta*delta <= rSq {
		t.inRadius(far, q, rSq, out)
	}
}
