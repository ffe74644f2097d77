// Package matrix aggregates raw homology hits into the dense genome×model
// feature matrix the classifier consumes. Row and column order are
// deterministic regardless of raw-hit arrival order.
package matrix

import (
	"sort"

	"github.com/rotisserie/eris"

	"github.com/symcla/symcla/internal/model"
)

// GenomeColumn is the header of the pinned-first identifier column in the
// rendered form of a feature matrix.
const GenomeColumn = "genome"

// FeatureMatrix is a fully dense genome×model score table. Rows cover every
// declared genome, columns every declared model; cells with no hit hold 0.
type FeatureMatrix struct {
	Genomes []string // declared genome order
	Models  []string // lexicographic model order
	Data    [][]float64

	rowIdx map[string]int
	colIdx map[string]int
}

// BestHit is the winning (maximum-score) hit for one (genome, model) pair,
// kept so attribution can name the contributing protein.
type BestHit struct {
	Protein string
	Score   float64
	EValue  float64
}

// BestHits indexes winning hits by genome then model internal id.
type BestHits map[string]map[string]BestHit

// Lookup returns the winning hit for a (genome, model) pair, if any.
func (b BestHits) Lookup(genome, mdl string) (BestHit, bool) {
	byModel, ok := b[genome]
	if !ok {
		return BestHit{}, false
	}
	hit, ok := byModel[mdl]
	return hit, ok
}

// Aggregate reduces raw hits into a dense matrix over the two closed sets:
// all declared model names and all genome internal ids in the run. Multiple
// hits per (genome, model) pair reduce to the maximum score; ties break to
// the lexicographically smallest protein id so re-aggregation of the same
// table is bit-identical. A hit naming an undeclared genome or model means
// upstream bookkeeping is corrupt and aborts the run.
func Aggregate(hits []model.HitRecord, models, genomes []string) (*FeatureMatrix, BestHits, error) {
	fm, err := newZero(models, genomes)
	if err != nil {
		return nil, nil, err
	}

	// Deterministic reduction order: score descending, then protein id, so
	// the first hit seen per (genome, model) pair is always the winner.
	ordered := make([]model.HitRecord, len(hits))
	copy(ordered, hits)
	sort.Slice(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if a.Genome != b.Genome {
			return a.Genome < b.Genome
		}
		if a.Model != b.Model {
			return a.Model < b.Model
		}
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		return a.Protein < b.Protein
	})

	best := make(BestHits)
	for _, h := range ordered {
		row, ok := fm.rowIdx[h.Genome]
		if !ok {
			return nil, nil, eris.Errorf("matrix: hit references undeclared genome %q", h.Genome)
		}
		col, ok := fm.colIdx[h.Model]
		if !ok {
			return nil, nil, eris.Errorf("matrix: hit references undeclared model %q", h.Model)
		}

		byModel, ok := best[h.Genome]
		if !ok {
			byModel = make(map[string]BestHit)
			best[h.Genome] = byModel
		}
		if _, taken := byModel[h.Model]; taken {
			continue // a stronger (or tie-winning) hit already holds the cell
		}
		byModel[h.Model] = BestHit{Protein: h.Protein, Score: h.Score, EValue: h.EValue}
		fm.Data[row][col] = h.Score
	}

	return fm, best, nil
}

// newZero builds the all-zero dense matrix over the declared sets.
func newZero(models, genomes []string) (*FeatureMatrix, error) {
	if len(genomes) == 0 {
		return nil, eris.New("matrix: no genomes declared")
	}
	if len(models) == 0 {
		return nil, eris.New("matrix: no models declared")
	}

	cols := make([]string, len(models))
	copy(cols, models)
	sort.Strings(cols)

	fm := &FeatureMatrix{
		Genomes: make([]string, len(genomes)),
		Models:  cols,
		Data:    make([][]float64, len(genomes)),
		rowIdx:  make(map[string]int, len(genomes)),
		colIdx:  make(map[string]int, len(cols)),
	}
	copy(fm.Genomes, genomes)

	for i, g := range fm.Genomes {
		if _, dup := fm.rowIdx[g]; dup {
			return nil, eris.Errorf("matrix: duplicate genome %q declared", g)
		}
		fm.rowIdx[g] = i
		fm.Data[i] = make([]float64, len(cols))
	}
	for j, c := range cols {
		if _, dup := fm.colIdx[c]; dup {
			return nil, eris.Errorf("matrix: duplicate model %q declared", c)
		}
		fm.colIdx[c] = j
	}
	return fm, nil
}

// Row returns one genome's feature vector in column order.
func (fm *FeatureMatrix) Row(genome string) ([]float64, error) {
	i, ok := fm.rowIdx[genome]
	if !ok {
		return nil, eris.Errorf("matrix: unknown genome %q", genome)
	}
	return fm.Data[i], nil
}

// At returns one cell.
func (fm *FeatureMatrix) At(genome, mdl string) (float64, error) {
	i, ok := fm.rowIdx[genome]
	if !ok {
		return 0, eris.Errorf("matrix: unknown genome %q", genome)
	}
	j, ok := fm.colIdx[mdl]
	if !ok {
		return 0, eris.Errorf("matrix: unknown model %q", mdl)
	}
	return fm.Data[i][j], nil
}

// Header returns the rendered column order: the genome id column pinned
// first, then the models lexicographically.
func (fm *FeatureMatrix) Header() []string {
	out := make([]string, 0, len(fm.Models)+1)
	out = append(out, GenomeColumn)
	out = append(out, fm.Models...)
	return out
}
