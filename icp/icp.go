// Package icp implements Iterative Closest Point rigid alignment of two
// point clouds.
//
// ICP alternates two steps until the mean correspondence distance stops
// improving: (1) pair every source point with its nearest neighbor in the
// target, rejecting pairs beyond a distance cutoff; (2) solve for the rigid
// transform minimizing the sum of squared distances between the surviving
// pairs, in closed form via the cross-covariance SVD. The incremental
// transform is composed with the accumulated one and re-applied to the
// original source, so numerical error does not pile up in the cloud itself.
//
// Non-convergence within the iteration cap is not an error: the best
// transform found is still returned with Converged set to false, and
// downstream analysis proceeds with the caveat. Clouds with no semantic
// overlap either fail with ErrInsufficientCorrespondences or converge to a
// meaningless transform; the aligner does not attempt to detect overlap.
//
// References:
//   - Besl, McKay: "A Method for Registration of 3-D Shapes" (1992)
//   - Arun, Huang, Blostein: "Least-Squares Fitting of Two 3-D Point Sets"
//     (1987)
package icp

import (
	"context"
	"errors"
	"math"

	"github.com/akmonengine/chisel/geom"
	"github.com/akmonengine/chisel/kdtree"
	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/mat"
)

// ErrInsufficientCorrespondences is returned when fewer than three
// correspondences survive the cutoff in some iteration; a rigid transform
// is underdetermined below that. The caller may retry with a larger
// CutoffFactor.
var ErrInsufficientCorrespondences = errors.New("icp: fewer than 3 correspondences survive the distance cutoff")

// Params holds the alignment configuration. All distances are in the units
// of the input clouds.
type Params struct {
	// MaxIterations caps the correspondence/fit loop.
	MaxIterations int
	// Tolerance stops the loop when the relative change of the mean
	// correspondence distance between iterations falls below it.
	Tolerance float64
	// CutoffFactor rejects correspondences farther than this multiple of
	// the previous iteration's mean distance, keeping the fit robust to
	// partial overlap. No cutoff is applied on the first iteration.
	CutoffFactor float64
}

// DefaultParams returns the standard configuration.
func DefaultParams() Params {
	return Params{
		MaxIterations: 50,
		Tolerance:     1e-6,
		CutoffFactor:  3.0,
	}
}

// Result is the outcome of an alignment.
type Result struct {
	// Transform maps the source cloud onto the target's frame.
	Transform geom.Transform
	// Converged reports whether the relative mean-distance change dropped
	// below Tolerance before MaxIterations was reached.
	Converged bool
	// MeanDistance is the final mean correspondence distance.
	MeanDistance float64
	// Iterations actually performed.
	Iterations int
}

// Correspondence pairs a source point with its nearest target point.
// Produced internally each iteration and not retained.
type Correspondence struct {
	Source   int
	Target   int
	Distance float64
}

// Align estimates the rigid transform mapping source onto target.
//
// The context is checked between iterations; a canceled context aborts the
// alignment with ctx.Err(). Neither input cloud is modified.
func Align(ctx context.Context, source, target geom.PointCloud, params Params) (Result, error) {
	if source.IsEmpty() || target.IsEmpty() {
		return Result{}, geom.ErrEmptyInput
	}

	tree, err := kdtree.New(target)
	if err != nil {
		return Result{}, err
	}

	accumulated := geom.IdentityTransform()
	current := source
	prevMean := math.Inf(1)
	result := Result{Transform: accumulated}

	for iter := 0; iter < params.MaxIterations; iter++ {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		result.Iterations = iter + 1

		cutoff := math.Inf(1)
		if !math.IsInf(prevMean, 1) {
			cutoff = params.CutoffFactor * prevMean
		}

		pairs := correspond(current, target, tree, cutoff)
		if len(pairs) < 3 {
			return result, ErrInsufficientCorrespondences
		}

		increment := fitRigid(current, target, pairs)
		accumulated = increment.Compose(accumulated)
		current = accumulated.ApplyCloud(source)

		mean := meanNearest(current, tree)
		result.Transform = accumulated
		result.MeanDistance = mean

		// A mean this small is already at floating-point noise level;
		// identical clouds land here in the first iteration.
		if mean < 1e-12 {
			result.Converged = true
			break
		}
		if relativeChange(prevMean, mean) < params.Tolerance {
			result.Converged = true
			break
		}
		prevMean = mean
	}

	return result, nil
}

func relativeChange(prev, mean float64) float64 {
	if math.IsInf(prev, 1) {
		return math.Inf(1)
	}
	return math.Abs(prev-mean) / math.Max(prev, 1e-30)
}

// correspond pairs every point of the current source iterate with its
// nearest target point, dropping pairs beyond the cutoff.
func correspond(current, target geom.PointCloud, tree *kdtree.Tree, cutoff float64) []Correspondence {
	pairs := make([]Correspondence, 0, current.Len())
	for i, p := range current.Points {
		j, d := tree.Nearest(p)
		if d > cutoff {
			continue
		}
		pairs = append(pairs, Correspondence{Source: i, Target: j, Distance: d})
	}
	return pairs
}

// meanNearest is the mean nearest-neighbor distance from every point of
// the cloud to the indexed target; the convergence signal.
func meanNearest(cloud geom.PointCloud, tree *kdtree.Tree) float64 {
	total := 0.0
	for _, p := range cloud.Points {
		_, d := tree.Nearest(p)
		total += d
	}
	return total / float64(cloud.Len())
}

// fitRigid solves the least-squares rigid transform taking the paired
// source points onto their target points (Arun et al.): center both sets
// on their centroids, decompose the cross-covariance with SVD, and form
// R = V Uᵀ, correcting the reflection case by negating the last right
// singular vector when det(R) < 0. The translation follows from the
// centroids.
func fitRigid(current, target geom.PointCloud, pairs []Correspondence) geom.Transform {
	var srcCentroid, tgtCentroid mgl64.Vec3
	for _, pair := range pairs {
		srcCentroid = srcCentroid.Add(current.Points[pair.Source])
		tgtCentroid = tgtCentroid.Add(target.Points[pair.Target])
	}
	inv := 1.0 / float64(len(pairs))
	srcCentroid = srcCentroid.Mul(inv)
	tgtCentroid = tgtCentroid.Mul(inv)

	// Cross-covariance H = Σ (p - p̄)(q - q̄)ᵀ
	h := mat.NewDense(3, 3, nil)
	for _, pair := range pairs {
		p := current.Points[pair.Source].Sub(srcCentroid)
		q := target.Points[pair.Target].Sub(tgtCentroid)
		for r := 0; r < 3; r++ {
			for c := 0; c < 3; c++ {
				h.Set(r, c, h.At(r, c)+p[r]*q[c])
			}
		}
	}

	var svd mat.SVD
	svd.Factorize(h, mat.SVDFull)
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	var r mat.Dense
	r.Mul(&v, u.T())

	if mat.Det(&r) < 0 {
		// Reflection: flip the singular vector of the smallest singular
		// value (the last column of V) and rebuild.
		for row := 0; row < 3; row++ {
			v.Set(row, 2, -v.At(row, 2))
		}
		r.Mul(&v, u.T())
	}

	rotation := mgl64.Ident3()
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			rotation.Set(row, col, r.At(row, col))
		}
	}

	return geom.Transform{
		Rotation:    rotation,
		Translation: tgtCentroid.Sub(rotation.Mul3x1(srcCentroid)),
	}
}
