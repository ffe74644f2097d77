// Package features derives per-genome summary features from an aggregated
// feature matrix.
package features

import (
	"github.com/symcla/symcla/internal/matrix"
	"github.com/symcla/symcla/internal/model"
)

// Default bitscore tiers. Chosen empirically as confidence proxies.
const (
	DefaultMidThreshold  = 20.0
	DefaultHighThreshold = 100.0
)

// Thresholds holds the bitscore tier boundaries for the summary counts.
type Thresholds struct {
	Mid  float64
	High float64
}

// DefaultThresholds returns the published tier boundaries.
func DefaultThresholds() Thresholds {
	return Thresholds{Mid: DefaultMidThreshold, High: DefaultHighThreshold}
}

// Count returns, per genome in matrix row order, the number of marker
// columns with score > 0, score >= Mid, and score >= High.
func Count(fm *matrix.FeatureMatrix, th Thresholds) []model.ThresholdCounts {
	out := make([]model.ThresholdCounts, 0, len(fm.Genomes))
	for i, genome := range fm.Genomes {
		counts := model.ThresholdCounts{Genome: genome}
		for _, score := range fm.Data[i] {
			if score > 0 {
				counts.GT0++
			}
			if score >= th.Mid {
				counts.GE20++
			}
			if score >= th.High {
				counts.GE100++
			}
		}
		out = append(out, counts)
	}
	return out
}
