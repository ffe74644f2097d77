package pipeline

import (
	"github.com/symcla/symcla/internal/annot"
	"github.com/symcla/symcla/internal/identity"
	"github.com/symcla/symcla/internal/matrix"
	"github.com/symcla/symcla/internal/model"
	"github.com/symcla/symcla/internal/regress"
)

// AbsentProtein marks an attribution whose feature fired on no concrete
// protein: either the model produced no hit for that genome, or the
// contribution belongs to the zero-fill baseline. Such features are
// reported, not omitted.
const AbsentProtein = "absent"

// DefaultNoiseFloor is the minimum absolute contribution worth reporting.
const DefaultNoiseFloor = 0.01

// AttributePhase filters raw contributions to material ones, joins each to
// its functional annotation and, where one exists, the winning protein from
// the best-hit table, and reverses genome and protein identifiers back to
// their original form.
func AttributePhase(
	contribs []regress.Contribution,
	fm *matrix.FeatureMatrix,
	best matrix.BestHits,
	annots annot.Table,
	ids *identity.Map,
	noiseFloor float64,
) ([]model.AttributionRecord, error) {
	var out []model.AttributionRecord
	for _, c := range contribs {
		if c.Value <= noiseFloor && c.Value >= -noiseFloor {
			continue
		}

		genomeOrig, err := ids.Original(c.Genome)
		if err != nil {
			return nil, err
		}
		bitscore, err := fm.At(c.Genome, c.Feature)
		if err != nil {
			return nil, err
		}

		protein := AbsentProtein
		if bh, ok := best.Lookup(c.Genome, c.Feature); ok {
			protein, err = ids.ProteinOriginal(c.Genome, bh.Protein)
			if err != nil {
				return nil, err
			}
		}

		out = append(out, model.AttributionRecord{
			Genome:       genomeOrig,
			Feature:      c.Feature,
			Contribution: c.Value,
			Bitscore:     bitscore,
			Annotation:   annots.Describe(c.Feature),
			Protein:      protein,
		})
	}
	return out, nil
}
