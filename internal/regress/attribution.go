package regress

import (
	"github.com/symcla/symcla/internal/matrix"
)

// Contribution is one (genome, feature) share of a prediction, before
// filtering and identity reversal.
type Contribution struct {
	Genome  string
	Feature string
	Value   float64
}

// Attribute decomposes each row's prediction into additive per-feature
// contributions. For every row the contributions sum to that row's
// prediction minus the model baseline. The decomposition is exact for an
// additive model and is the attribution collaborator the rest of the
// pipeline treats as a black box.
func (m *Model) Attribute(fm *matrix.FeatureMatrix) ([]Contribution, error) {
	if err := m.CheckContract(fm.Models); err != nil {
		return nil, err
	}

	out := make([]Contribution, 0, len(fm.Genomes)*len(fm.Models))
	for i, genome := range fm.Genomes {
		for j, feature := range fm.Models {
			out = append(out, Contribution{
				Genome:  genome,
				Feature: feature,
				Value:   m.Coefficients[j] * (fm.Data[i][j] - m.Means[j]),
			})
		}
	}
	return out, nil
}
