// Package pipeline orchestrates the classification stages. Stages run
// strictly in sequence; each one fully consumes its predecessor's output.
package pipeline

import (
	"context"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/symcla/symcla/internal/annot"
	"github.com/symcla/symcla/internal/config"
	"github.com/symcla/symcla/internal/export"
	"github.com/symcla/symcla/internal/features"
	"github.com/symcla/symcla/internal/hmmer"
	"github.com/symcla/symcla/internal/matrix"
	"github.com/symcla/symcla/internal/model"
	"github.com/symcla/symcla/internal/regress"
	"github.com/symcla/symcla/internal/store"
)

// Pipeline runs the classify operation end to end.
type Pipeline struct {
	cfg      *config.Config
	store    store.Store
	searcher hmmer.Searcher
}

// Options tunes one classify invocation.
type Options struct {
	XLSX     bool
	KeepWork bool
}

// Output file names inside the output directory.
const (
	ResultsFile       = "symcla.tsv"
	ContributionsFile = "contributions.tsv"
	WorkbookFile      = "symcla.xlsx"
)

// New creates a Pipeline with its collaborators.
func New(cfg *config.Config, st store.Store, searcher hmmer.Searcher) *Pipeline {
	return &Pipeline{cfg: cfg, store: st, searcher: searcher}
}

// Classify runs the full pipeline for one input directory. On failure the
// working directory is retained for debugging; on success it is removed
// unless opts.KeepWork is set.
func (p *Pipeline) Classify(ctx context.Context, inputDir, outDir string, opts Options) (*model.ClassifyResult, error) {
	log := zap.L().With(zap.String("input", inputDir), zap.String("out", outDir))
	log.Info("pipeline: starting classification")

	run, err := p.store.CreateRun(ctx, inputDir, outDir)
	if err != nil {
		return nil, err
	}
	result := &model.ClassifyResult{RunID: run.ID}

	setStatus := func(status model.RunStatus) {
		if statusErr := p.store.UpdateRunStatus(ctx, run.ID, status); statusErr != nil {
			log.Warn("pipeline: failed to update status", zap.Error(statusErr))
		}
	}
	fail := func(err error) (*model.ClassifyResult, error) {
		if markErr := p.store.MarkRunFailed(ctx, run.ID, err); markErr != nil {
			log.Warn("pipeline: failed to mark run failed", zap.Error(markErr))
		}
		return result, err
	}

	trackPhase := func(name string, fn func() (*model.PhaseResult, error)) error {
		phase, phaseErr := p.store.CreatePhase(ctx, run.ID, name)
		if phaseErr != nil {
			log.Warn("pipeline: failed to create phase", zap.String("phase", name), zap.Error(phaseErr))
		}

		start := time.Now()
		phaseResult, fnErr := fn()
		duration := time.Since(start).Milliseconds()

		if phaseResult == nil {
			phaseResult = &model.PhaseResult{}
		}
		phaseResult.Name = name
		phaseResult.Duration = duration

		if fnErr != nil {
			phaseResult.Status = model.PhaseStatusFailed
			phaseResult.Error = fnErr.Error()
			log.Error("pipeline: phase failed",
				zap.String("phase", name),
				zap.Int64("duration_ms", duration),
				zap.Error(fnErr),
			)
		} else {
			phaseResult.Status = model.PhaseStatusComplete
			log.Info("pipeline: phase complete",
				zap.String("phase", name),
				zap.Int64("duration_ms", duration),
			)
		}

		if phase != nil {
			if completeErr := p.store.CompletePhase(ctx, phase.ID, phaseResult); completeErr != nil {
				log.Warn("pipeline: failed to record phase", zap.Error(completeErr))
			}
		}
		result.Phases = append(result.Phases, *phaseResult)
		return fnErr
	}

	// Setup: fail fast before any work.
	markerHMM := filepath.Join(p.cfg.Data.Dir, p.cfg.Data.MarkerHMM)
	universalHMM := filepath.Join(p.cfg.Data.Dir, p.cfg.Data.UniversalHMM)
	modelFile := filepath.Join(p.cfg.Data.Dir, p.cfg.Data.ModelFile)
	annotFile := filepath.Join(p.cfg.Data.Dir, p.cfg.Data.Annotations)

	rc := NewRunContext(inputDir, outDir)
	if err := rc.Setup(markerHMM, universalHMM, modelFile, annotFile); err != nil {
		return fail(err)
	}

	frozen, err := regress.LoadModel(modelFile)
	if err != nil {
		return fail(err)
	}
	annots, err := annot.Load(annotFile)
	if err != nil {
		return fail(err)
	}

	// Stage 1: identity map + merged corpus.
	setStatus(model.RunStatusRenaming)
	var genomes []model.Genome
	err = trackPhase("1_rename", func() (*model.PhaseResult, error) {
		gs, renameErr := RenamePhase(rc)
		if renameErr != nil {
			return nil, renameErr
		}
		genomes = gs
		return &model.PhaseResult{Metadata: map[string]any{"genomes": len(gs)}}, nil
	})
	if err != nil {
		return fail(err)
	}

	// Stages 2-3: the two independent homology searches.
	setStatus(model.RunStatusSearching)
	var markerHits, universalHits []model.HitRecord
	err = trackPhase("2_search_markers", func() (*model.PhaseResult, error) {
		hits, searchErr := SearchPhase(ctx, p.searcher, hmmer.Params{
			HMMFile:    markerHMM,
			CorpusFile: rc.CorpusPath,
			OutFile:    rc.MarkerTblPath,
			Workers:    p.cfg.Search.Workers,
			EValue:     p.cfg.Search.EValue,
		})
		if searchErr != nil {
			return nil, searchErr
		}
		markerHits = hits
		return &model.PhaseResult{Metadata: map[string]any{"hits": len(hits)}}, nil
	})
	if err != nil {
		return fail(err)
	}

	err = trackPhase("3_search_universal", func() (*model.PhaseResult, error) {
		hits, searchErr := SearchPhase(ctx, p.searcher, hmmer.Params{
			HMMFile:    universalHMM,
			CorpusFile: rc.CorpusPath,
			OutFile:    rc.UniversalTblPath,
			Workers:    p.cfg.Search.Workers,
			EValue:     p.cfg.Search.EValue,
		})
		if searchErr != nil {
			return nil, searchErr
		}
		universalHits = hits
		return &model.PhaseResult{Metadata: map[string]any{"hits": len(hits)}}, nil
	})
	if err != nil {
		return fail(err)
	}

	// Stage 4: dense matrices over the declared closed sets.
	setStatus(model.RunStatusAggregating)
	var (
		markerFM, universalFM *matrix.FeatureMatrix
		bestHits              matrix.BestHits
	)
	err = trackPhase("4_aggregate", func() (*model.PhaseResult, error) {
		markerModels, listErr := hmmer.ListModelNames(markerHMM)
		if listErr != nil {
			return nil, listErr
		}
		universalModels, listErr := hmmer.ListModelNames(universalHMM)
		if listErr != nil {
			return nil, listErr
		}
		if len(universalModels) != UniversalMarkerCount {
			log.Warn("pipeline: universal marker set size differs from expected",
				zap.Int("got", len(universalModels)),
				zap.Int("want", UniversalMarkerCount),
			)
		}

		genomeIDs := rc.IDs.Genomes()
		var aggErr error
		markerFM, bestHits, aggErr = matrix.Aggregate(markerHits, markerModels, genomeIDs)
		if aggErr != nil {
			return nil, aggErr
		}
		universalFM, _, aggErr = matrix.Aggregate(universalHits, universalModels, genomeIDs)
		if aggErr != nil {
			return nil, aggErr
		}
		return &model.PhaseResult{Metadata: map[string]any{
			"marker_models":    len(markerModels),
			"universal_models": len(universalModels),
		}}, nil
	})
	if err != nil {
		return fail(err)
	}

	// Stage 5: frozen model application.
	setStatus(model.RunStatusClassifying)
	var preds []model.Prediction
	err = trackPhase("5_classify", func() (*model.PhaseResult, error) {
		ps, predErr := frozen.Predict(markerFM)
		if predErr != nil {
			return nil, predErr
		}
		preds = ps
		return &model.PhaseResult{Metadata: map[string]any{"predictions": len(ps)}}, nil
	})
	if err != nil {
		return fail(err)
	}

	// Stage 6: per-feature attribution.
	setStatus(model.RunStatusAttributing)
	var attributions []model.AttributionRecord
	err = trackPhase("6_attribute", func() (*model.PhaseResult, error) {
		contribs, attrErr := frozen.Attribute(markerFM)
		if attrErr != nil {
			return nil, attrErr
		}
		recs, attrErr := AttributePhase(contribs, markerFM, bestHits, annots, rc.IDs, p.cfg.Classify.NoiseFloor)
		if attrErr != nil {
			return nil, attrErr
		}
		attributions = recs
		return &model.PhaseResult{Metadata: map[string]any{
			"raw":      len(contribs),
			"material": len(recs),
		}}, nil
	})
	if err != nil {
		return fail(err)
	}

	// Stages 7-8: completeness and final assembly.
	setStatus(model.RunStatusAssembling)
	completeness := CompletenessPhase(universalFM)
	counts := features.Count(markerFM, features.Thresholds{
		Mid:  p.cfg.Classify.MidThreshold,
		High: p.cfg.Classify.HighThreshold,
	})

	var rows []model.ResultRow
	err = trackPhase("7_assemble", func() (*model.PhaseResult, error) {
		rs, asmErr := AssemblePhase(preds, counts, completeness, rc.IDs)
		if asmErr != nil {
			return nil, asmErr
		}
		rows = rs
		return &model.PhaseResult{Metadata: map[string]any{"rows": len(rs)}}, nil
	})
	if err != nil {
		return fail(err)
	}

	// Stage 9: user-facing artifacts.
	err = trackPhase("8_export", func() (*model.PhaseResult, error) {
		if exportErr := export.WriteResultsTSV(rows, filepath.Join(outDir, ResultsFile)); exportErr != nil {
			return nil, exportErr
		}
		if exportErr := export.WriteContributionsTSV(attributions, filepath.Join(outDir, ContributionsFile)); exportErr != nil {
			return nil, exportErr
		}
		if opts.XLSX {
			if exportErr := export.WriteWorkbook(rows, attributions, filepath.Join(outDir, WorkbookFile)); exportErr != nil {
				return nil, exportErr
			}
		}
		return &model.PhaseResult{}, nil
	})
	if err != nil {
		return fail(err)
	}

	result.Rows = rows
	result.Contributions = attributions

	summary := Summarize(rows)
	summary.Phases = result.Phases
	result.Report = summary.Report

	if saveErr := p.store.UpdateRunResult(ctx, run.ID, summary); saveErr != nil {
		log.Warn("pipeline: failed to save run result", zap.Error(saveErr))
	}

	if !opts.KeepWork {
		if cleanErr := rc.Cleanup(); cleanErr != nil {
			log.Warn("pipeline: cleanup failed", zap.Error(cleanErr))
		}
	}

	log.Info("pipeline: classification complete",
		zap.String("run_id", run.ID),
		zap.Int("genomes", len(genomes)),
		zap.Int("rows", len(rows)),
	)
	return result, nil
}
