package chisel

import (
	"math"
	"sort"

	"github.com/akmonengine/chisel/geom"
	"gonum.org/v1/gonum/stat"
)

// Severity classifies a mean distance into domain-calibrated tiers.
type Severity int

const (
	SeveritySmall Severity = iota
	SeverityMedium
	SeverityLarge
)

// Fixed thresholds in distance units; calibrated for the reconstruction
// comparisons this engine was built for, not derived from the data.
const (
	severitySmallThreshold = 0.01
	severityLargeThreshold = 0.05
)

func (s Severity) String() string {
	switch s {
	case SeveritySmall:
		return "small"
	case SeverityMedium:
		return "medium"
	case SeverityLarge:
		return "large"
	}
	return "unknown"
}

// SummaryStatistics reduces a distance record to its summary values.
type SummaryStatistics struct {
	Mean   float64
	Max    float64
	Min    float64
	Median float64
	// StdDev uses the population formula (divide by n, not n-1).
	StdDev float64
	// RMS is sqrt of the mean of squares.
	RMS   float64
	Count int
}

// Severity classifies the magnitude of the mean distance. The absolute
// value is used so a signed (C2M) record cannot dodge the thresholds by
// averaging negative.
func (s SummaryStatistics) Severity() Severity {
	mean := math.Abs(s.Mean)
	switch {
	case mean < severitySmallThreshold:
		return SeveritySmall
	case mean <= severityLargeThreshold:
		return SeverityMedium
	default:
		return SeverityLarge
	}
}

// Summarize computes summary statistics over a non-empty distance record.
func Summarize(record DistanceRecord) (SummaryStatistics, error) {
	if len(record) == 0 {
		return SummaryStatistics{}, geom.ErrEmptyInput
	}

	xs := []float64(record)
	mean := stat.Mean(xs, nil)

	min, max := xs[0], xs[0]
	for _, x := range xs[1:] {
		min = math.Min(min, x)
		max = math.Max(max, x)
	}

	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	sort.Float64s(sorted)

	return SummaryStatistics{
		Mean:   mean,
		Max:    max,
		Min:    min,
		Median: stat.Quantile(0.5, stat.Empirical, sorted, nil),
		// Second central moment is the population variance.
		StdDev: math.Sqrt(stat.MomentAbout(2, xs, mean, nil)),
		// Second moment about zero is the mean of squares.
		RMS:   math.Sqrt(stat.MomentAbout(2, xs, 0, nil)),
		Count: len(xs),
	}, nil
}
