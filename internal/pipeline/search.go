package pipeline

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/symcla/symcla/internal/hmmer"
	"github.com/symcla/symcla/internal/model"
)

// SearchPhase runs one homology search over the merged corpus and parses
// the resulting hit table. A failed or silent external tool is surfaced as
// a warning and treated as a zero-hit result: the dense-fill rules
// downstream still produce a complete matrix. Parse failures stay fatal.
func SearchPhase(ctx context.Context, searcher hmmer.Searcher, p hmmer.Params) ([]model.HitRecord, error) {
	if err := searcher.Search(ctx, p); err != nil {
		if !eris.Is(err, hmmer.ErrExternalTool) {
			return nil, err
		}
		zap.L().Warn("pipeline: homology search failed, treating as zero hits",
			zap.String("hmm", p.HMMFile),
			zap.Error(err),
		)
		return nil, nil
	}

	hits, err := hmmer.ParseFile(p.OutFile)
	if err != nil {
		return nil, err
	}
	if len(hits) == 0 {
		zap.L().Warn("pipeline: homology search produced no hits",
			zap.String("hmm", p.HMMFile),
		)
	}
	return hits, nil
}
