package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/symcla/symcla/internal/annot"
	"github.com/symcla/symcla/internal/hmmer"
	"github.com/symcla/symcla/internal/identity"
	"github.com/symcla/symcla/internal/matrix"
	"github.com/symcla/symcla/internal/model"
	"github.com/symcla/symcla/internal/regress"
)

func TestSetupRejectsExistingOutputDir(t *testing.T) {
	rc := NewRunContext(t.TempDir(), t.TempDir())
	err := rc.Setup()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrOutputExists)
}

func TestSetupRejectsMissingReference(t *testing.T) {
	base := t.TempDir()
	rc := NewRunContext(base, filepath.Join(base, "out"))
	err := rc.Setup(filepath.Join(base, "absent.hmm"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingReference)
	assert.NoDirExists(t, rc.OutDir)
}

func TestSetupCreatesLayout(t *testing.T) {
	base := t.TempDir()
	ref := filepath.Join(base, "ref.hmm")
	require.NoError(t, os.WriteFile(ref, []byte("NAME  X\n"), 0o644))

	rc := NewRunContext(base, filepath.Join(base, "out"))
	require.NoError(t, rc.Setup(ref))
	assert.DirExists(t, rc.WorkDir)
	assert.DirExists(t, rc.MapDir)

	require.NoError(t, rc.Cleanup())
	assert.NoDirExists(t, rc.WorkDir)
	assert.DirExists(t, rc.MapDir)
}

func TestRenamePhase(t *testing.T) {
	base := t.TempDir()
	inputDir := filepath.Join(base, "in")
	require.NoError(t, os.MkdirAll(inputDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(inputDir, "zeta.fasta"),
		[]byte(">z1 some description\nMKL\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(inputDir, "acme.faa"),
		[]byte(">first\nMAA\nGGG\n>second\nMCC\n"), 0o644))

	rc := NewRunContext(inputDir, filepath.Join(base, "out"))
	require.NoError(t, rc.Setup())

	genomes, err := RenamePhase(rc)
	require.NoError(t, err)
	require.Len(t, genomes, 2)

	// Assignment is lexicographic over original ids, not directory order.
	assert.Equal(t, "acme", genomes[0].OriginalID)
	assert.Equal(t, "g1", genomes[0].InternalID)
	assert.Equal(t, 2, genomes[0].Proteins)
	assert.Equal(t, "zeta", genomes[1].OriginalID)
	assert.Equal(t, "g2", genomes[1].InternalID)

	corpus, err := os.ReadFile(rc.CorpusPath)
	require.NoError(t, err)
	assert.Contains(t, string(corpus), ">g1|p1\n")
	assert.Contains(t, string(corpus), ">g1|p2\n")
	assert.Contains(t, string(corpus), ">g2|p1\n")
	assert.NotContains(t, string(corpus), "first")

	// The persisted map reverses back to originals.
	reloaded, err := identity.Load(rc.MapDir)
	require.NoError(t, err)
	orig, err := reloaded.ProteinOriginal("g1", "p2")
	require.NoError(t, err)
	assert.Equal(t, "second", orig)
}

func TestRenamePhaseEmptyDir(t *testing.T) {
	base := t.TempDir()
	inputDir := filepath.Join(base, "in")
	require.NoError(t, os.MkdirAll(inputDir, 0o755))

	rc := NewRunContext(inputDir, filepath.Join(base, "out"))
	require.NoError(t, rc.Setup())

	_, err := RenamePhase(rc)
	require.Error(t, err)
	assert.ErrorIs(t, err, identity.ErrEmptyBatch)
}

func TestSearchPhaseLenientOnToolFailure(t *testing.T) {
	searcher := &mockSearcher{tables: map[string]string{}}
	hits, err := SearchPhase(context.Background(), searcher, hmmer.Params{
		HMMFile: "db.hmm",
		OutFile: filepath.Join(t.TempDir(), "out.tbl"),
	})
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestSearchPhaseParsesHits(t *testing.T) {
	searcher := &mockSearcher{tables: map[string]string{
		"db.hmm": "g1|p1 - PF1 - 1e-50 100.0 0.1\n",
	}}
	hits, err := SearchPhase(context.Background(), searcher, hmmer.Params{
		HMMFile: "db.hmm",
		OutFile: filepath.Join(t.TempDir(), "out.tbl"),
	})
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "g1", hits[0].Genome)
	assert.Equal(t, "PF1", hits[0].Model)
	assert.InDelta(t, 100.0, hits[0].Score, 1e-9)
}

func TestCompletenessPhase(t *testing.T) {
	models := []string{"UM1", "UM2", "UM3", "UM4"}
	hits := []model.HitRecord{
		{Genome: "g1", Protein: "p1", Model: "UM1", Score: 12},
		{Genome: "g1", Protein: "p1", Model: "UM3", Score: 0.4},
		{Genome: "g1", Protein: "p2", Model: "UM4", Score: 30},
	}
	fm, _, err := matrix.Aggregate(hits, models, []string{"g1", "g2"})
	require.NoError(t, err)

	out := CompletenessPhase(fm)
	require.Len(t, out, 2)
	assert.InDelta(t, 75.0, out[0].Percent, 1e-9)
	assert.Zero(t, out[1].Percent)
}

func TestAttributePhaseFilterAndJoin(t *testing.T) {
	ids, err := identity.NewMap([]string{"acme"})
	require.NoError(t, err)
	_, err = ids.AddProteins("g1", []string{"orig_prot"})
	require.NoError(t, err)

	hits := []model.HitRecord{{Genome: "g1", Protein: "p1", Model: "PF1", Score: 42}}
	fm, best, err := matrix.Aggregate(hits, []string{"PF1", "PF2"}, []string{"g1"})
	require.NoError(t, err)

	contribs := []regress.Contribution{
		{Genome: "g1", Feature: "PF1", Value: 0.5},
		{Genome: "g1", Feature: "PF2", Value: -0.2},
		{Genome: "g1", Feature: "PF2", Value: 0.004},
	}
	annots := annot.Table{"PF1": "porin"}

	recs, err := AttributePhase(contribs, fm, best, annots, ids, DefaultNoiseFloor)
	require.NoError(t, err)
	require.Len(t, recs, 2)

	assert.Equal(t, "acme", recs[0].Genome)
	assert.Equal(t, "PF1", recs[0].Feature)
	assert.InDelta(t, 0.5, recs[0].Contribution, 1e-9)
	assert.InDelta(t, 42.0, recs[0].Bitscore, 1e-9)
	assert.Equal(t, "porin", recs[0].Annotation)
	assert.Equal(t, "orig_prot", recs[0].Protein)

	assert.Equal(t, "PF2", recs[1].Feature)
	assert.Equal(t, AbsentProtein, recs[1].Protein)
	assert.Equal(t, "unknown", recs[1].Annotation)
	assert.Zero(t, recs[1].Bitscore)
}

func TestAssemblePhaseInnerJoinAndRounding(t *testing.T) {
	ids, err := identity.NewMap([]string{"acme", "zeta"})
	require.NoError(t, err)

	preds := []model.Prediction{
		{Genome: "g1", Score: 0.123456},
		{Genome: "g2", Score: 1.5},
	}
	counts := []model.ThresholdCounts{
		{Genome: "g1", GT0: 3, GE20: 2, GE100: 1},
	}
	completeness := []model.Completeness{
		{Genome: "g1", Percent: 100.0 / 3.0},
		{Genome: "g2", Percent: 50},
	}

	rows, err := AssemblePhase(preds, counts, completeness, ids)
	require.NoError(t, err)

	// g2 has no threshold counts and is dropped by the inner join.
	require.Len(t, rows, 1)
	assert.Equal(t, "acme", rows[0].Genome)
	assert.InDelta(t, 0.123, rows[0].Score, 1e-9)
	assert.InDelta(t, 33.333, rows[0].Completeness, 1e-9)
	assert.Equal(t, 3, rows[0].GT0)
}

func TestSummarize(t *testing.T) {
	rows := []model.ResultRow{
		{Genome: "a", Score: 0.1, Completeness: 80},
		{Genome: "b", Score: 0.9, Completeness: 90},
		{Genome: "c", Score: 1.5, Completeness: 100},
	}
	res := Summarize(rows)
	assert.Equal(t, 3, res.Genomes)
	assert.Equal(t, 1, res.FreeLiving)
	assert.Equal(t, 1, res.HostAssoc)
	assert.Equal(t, 1, res.Intracellular)
	assert.InDelta(t, 90.0, res.MeanComplete, 1e-9)
	assert.True(t, strings.HasPrefix(res.Report, "classified 3 genomes"))
}

func TestSummarizeEmpty(t *testing.T) {
	res := Summarize(nil)
	assert.Zero(t, res.Genomes)
	assert.Equal(t, "no genomes classified", res.Report)
}
