package pipeline

import (
	"math"

	"go.uber.org/zap"

	"github.com/symcla/symcla/internal/identity"
	"github.com/symcla/symcla/internal/model"
)

// AssemblePhase merges predictions, threshold counts, and completeness on
// genome id and reverses identifiers. The merge is an inner join: a genome
// missing from any input is excluded from the final table, with a warning
// naming it. Numeric columns are rounded to 3 decimals for presentation.
func AssemblePhase(
	preds []model.Prediction,
	counts []model.ThresholdCounts,
	completeness []model.Completeness,
	ids *identity.Map,
) ([]model.ResultRow, error) {
	countsBy := make(map[string]model.ThresholdCounts, len(counts))
	for _, c := range counts {
		countsBy[c.Genome] = c
	}
	completeBy := make(map[string]model.Completeness, len(completeness))
	for _, c := range completeness {
		completeBy[c.Genome] = c
	}

	rows := make([]model.ResultRow, 0, len(preds))
	for _, p := range preds {
		tc, okCounts := countsBy[p.Genome]
		cp, okComplete := completeBy[p.Genome]
		if !okCounts || !okComplete {
			zap.L().Warn("pipeline: genome dropped from final table by inner join",
				zap.String("genome", p.Genome),
				zap.Bool("has_counts", okCounts),
				zap.Bool("has_completeness", okComplete),
			)
			continue
		}

		orig, err := ids.Original(p.Genome)
		if err != nil {
			return nil, err
		}
		rows = append(rows, model.ResultRow{
			Genome:       orig,
			Completeness: round3(cp.Percent),
			GT0:          tc.GT0,
			GE20:         tc.GE20,
			GE100:        tc.GE100,
			Score:        round3(p.Score),
		})
	}
	return rows, nil
}

func round3(x float64) float64 {
	return math.Round(x*1000) / 1000
}
