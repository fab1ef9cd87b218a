package chisel

import (
	"github.com/akmonengine/chisel/geom"
	"github.com/akmonengine/chisel/kdtree"
)

// DistanceRecord holds one scalar distance per query point, in query
// order. C2C distances are unsigned; C2M distances are signed.
type DistanceRecord []float64

// C2C computes the cloud-to-cloud distance record: for every point of
// cloud, the Euclidean distance to its nearest neighbor in target. The
// clouds are expected to be already aligned (see the icp package). The
// record has one entry per point of cloud, always >= 0; comparing a cloud
// against itself yields all zeros.
//
// workers > 1 partitions the query loop across goroutines.
func C2C(cloud, target geom.PointCloud, workers int) (DistanceRecord, error) {
	if cloud.IsEmpty() {
		return nil, geom.ErrEmptyInput
	}
	tree, err := kdtree.New(target)
	if err != nil {
		return nil, err
	}

	record := make(DistanceRecord, cloud.Len())
	taskRange(workers, cloud.Len(), func(start, end int) {
		for i := start; i < end; i++ {
			_, d := tree.Nearest(cloud.Points[i])
			record[i] = d
		}
	})
	return record, nil
}
