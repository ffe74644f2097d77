package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/symcla/symcla/internal/model"
)

var sampleRows = []model.ResultRow{
	{Genome: "bin one", Completeness: 71.429, GT0: 40, GE20: 40, GE100: 12, Score: 0.05},
	{Genome: "bin two", Completeness: 100, GT0: 120, GE20: 98, GE100: 31, Score: 1.5},
}

var sampleRecs = []model.AttributionRecord{
	{Genome: "bin one", Feature: "PF00115", Contribution: 0.231, Bitscore: 153.4, Annotation: "cytochrome c oxidase subunit II", Protein: "WP_0001.1"},
	{Genome: "bin two", Feature: "PF02241", Contribution: -0.044, Bitscore: 0, Annotation: "flagellar hook protein FlgE", Protein: "absent"},
}

func readTSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	r := csv.NewReader(f)
	r.Comma = '\t'
	rows, err := r.ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriteResultsTSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "symcla.tsv")
	require.NoError(t, WriteResultsTSV(sampleRows, path))

	rows := readTSV(t, path)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{
		"genome_id", "completeness_percent", "features_gt0",
		"features_ge20", "features_ge100", "symcla_score",
	}, rows[0])
	assert.Equal(t, []string{"bin one", "71.429", "40", "40", "12", "0.05"}, rows[1])
	assert.Equal(t, []string{"bin two", "100", "120", "98", "31", "1.5"}, rows[2])
}

func TestWriteContributionsTSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contributions.tsv")
	require.NoError(t, WriteContributionsTSV(sampleRecs, path))

	rows := readTSV(t, path)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{
		"genome_id", "feature", "contribution", "bitscore",
		"functional_annotation", "protein_id",
	}, rows[0])
	assert.Equal(t, []string{"bin one", "PF00115", "0.231", "153.4", "cytochrome c oxidase subunit II", "WP_0001.1"}, rows[1])
	assert.Equal(t, "absent", rows[2][5])
}

func TestWriteWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "symcla.xlsx")
	require.NoError(t, WriteWorkbook(sampleRows, sampleRecs, path))

	f, err := xlsx.OpenFile(path)
	require.NoError(t, err)
	require.Len(t, f.Sheets, 2)

	results := f.Sheets[0]
	assert.Equal(t, "results", results.Name)
	require.Len(t, results.Rows, 3)
	assert.Equal(t, "category", results.Rows[0].Cells[6].String())
	assert.Equal(t, string(model.CategoryFreeLiving), results.Rows[1].Cells[6].String())
	assert.Equal(t, string(model.CategoryIntracellular), results.Rows[2].Cells[6].String())

	contribs := f.Sheets[1]
	assert.Equal(t, "contributions", contribs.Name)
	require.Len(t, contribs.Rows, 3)
	assert.Equal(t, "PF00115", contribs.Rows[1].Cells[1].String())
}
