// Package chisel compares two reconstructed triangle meshes: it rigidly
// aligns one onto the other (icp), measures cloud-to-cloud and signed
// cloud-to-mesh deviation, computes surface area and volume, and reduces
// the distance records to summary statistics. The engine is pure
// computation over in-memory geometry; loading mesh files and rendering
// reports belong to external collaborators.
package chisel

import (
	"context"
	"math/rand"
	"time"

	"github.com/akmonengine/chisel/geom"
	"github.com/akmonengine/chisel/icp"
)

// DistanceAnalysis bundles a distance record with its summary statistics.
type DistanceAnalysis struct {
	Record DistanceRecord
	Stats  SummaryStatistics
}

// Report is the full structured outcome of a mesh comparison, ready to be
// handed to an external reporting layer (CSV, plots, PDF).
type Report struct {
	// Alignment of the candidate cloud onto the reference frame. May have
	// Converged=false; the rest of the report is still computed with the
	// best transform found.
	Alignment icp.Result

	// Cloud-to-cloud deviation, both directions.
	CandidateToReference DistanceAnalysis
	ReferenceToCandidate DistanceAnalysis

	// Signed cloud-to-mesh deviation of the aligned candidate cloud
	// against the reference surface, with sign counts.
	C2M                               DistanceAnalysis
	C2MPositive, C2MNegative, C2MZero int

	// Geometric measurements of each input mesh.
	Reference MeasurementResult
	Candidate MeasurementResult
}

// Comparison configures and runs the full mesh comparison pipeline.
// The zero value is usable: one worker, default ICP parameters, raw mesh
// vertices as clouds.
type Comparison struct {
	// Workers fans the C2C/C2M point loops out over this many goroutines.
	Workers int
	// ICP parameters; zero value replaced by icp.DefaultParams.
	ICP icp.Params
	// SamplePoints > 0 draws that many uniform surface samples from each
	// mesh instead of using the raw vertices, decoupling the comparison
	// from the two meshes' tessellation densities.
	SamplePoints int
	// Rand drives surface sampling. Seeding it makes a comparison
	// reproducible; nil falls back to a time-seeded source.
	Rand *rand.Rand
}

// Run compares the candidate mesh against the reference mesh.
//
// Stages: derive point clouds, align candidate onto reference, compute
// both C2C directions, compute signed C2M against the reference surface,
// measure both meshes, summarize. The context is checked between stages
// (and inside ICP between iterations).
func (c *Comparison) Run(ctx context.Context, reference, candidate geom.Mesh) (*Report, error) {
	refCloud, err := c.cloudOf(reference)
	if err != nil {
		return nil, err
	}
	candCloud, err := c.cloudOf(candidate)
	if err != nil {
		return nil, err
	}

	params := c.ICP
	if params.MaxIterations == 0 {
		params = icp.DefaultParams()
	}

	report := &Report{}
	report.Alignment, err = icp.Align(ctx, candCloud, refCloud, params)
	if err != nil {
		return nil, err
	}
	aligned := report.Alignment.Transform.ApplyCloud(candCloud)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if report.CandidateToReference, err = c.analyzeC2C(aligned, refCloud); err != nil {
		return nil, err
	}
	if report.ReferenceToCandidate, err = c.analyzeC2C(refCloud, aligned); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c2m, err := C2M(aligned, reference, c.Workers)
	if err != nil {
		return nil, err
	}
	stats, err := Summarize(c2m)
	if err != nil {
		return nil, err
	}
	report.C2M = DistanceAnalysis{Record: c2m, Stats: stats}
	report.C2MPositive, report.C2MNegative, report.C2MZero = CountSigns(c2m)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if report.Reference, err = Measure(reference); err != nil {
		return nil, err
	}
	if report.Candidate, err = Measure(candidate); err != nil {
		return nil, err
	}

	return report, nil
}

func (c *Comparison) analyzeC2C(cloud, target geom.PointCloud) (DistanceAnalysis, error) {
	record, err := C2C(cloud, target, c.Workers)
	if err != nil {
		return DistanceAnalysis{}, err
	}
	stats, err := Summarize(record)
	if err != nil {
		return DistanceAnalysis{}, err
	}
	return DistanceAnalysis{Record: record, Stats: stats}, nil
}

// cloudOf derives the comparison cloud for a mesh: its raw vertices, or a
// uniform surface sampling when SamplePoints is set.
func (c *Comparison) cloudOf(mesh geom.Mesh) (geom.PointCloud, error) {
	if c.SamplePoints <= 0 {
		if mesh.Cloud.IsEmpty() {
			return geom.PointCloud{}, geom.ErrEmptyInput
		}
		return mesh.Cloud, nil
	}
	rng := c.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return geom.SampleSurface(mesh, c.SamplePoints, rng)
}
