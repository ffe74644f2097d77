package pipeline

import (
	"github.com/symcla/symcla/internal/matrix"
	"github.com/symcla/symcla/internal/model"
)

// UniversalMarkerCount is the size of the fixed universal single-copy
// marker set the completeness estimate is defined over.
const UniversalMarkerCount = 56

// CompletenessPhase binarizes the universal-marker matrix and expresses
// per-genome marker presence as a percentage of the marker set. Score
// magnitude is ignored: a marker either hit or it did not. The signal is a
// data-quality proxy and never feeds into classification.
func CompletenessPhase(fm *matrix.FeatureMatrix) []model.Completeness {
	out := make([]model.Completeness, 0, len(fm.Genomes))
	for i, genome := range fm.Genomes {
		detected := 0
		for _, score := range fm.Data[i] {
			if score > 0 {
				detected++
			}
		}
		out = append(out, model.Completeness{
			Genome:  genome,
			Percent: 100 * float64(detected) / float64(len(fm.Models)),
		})
	}
	return out
}
