// Package export writes the user-facing result tables.
package export

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/rotisserie/eris"

	"github.com/symcla/symcla/internal/model"
)

// resultColumns is the external output contract: column set and order of
// the per-genome results table.
var resultColumns = []string{
	"genome_id",
	"completeness_percent",
	"features_gt0",
	"features_ge20",
	"features_ge100",
	"symcla_score",
}

// contributionColumns is the column contract of the feature-contribution
// table.
var contributionColumns = []string{
	"genome_id",
	"feature",
	"contribution",
	"bitscore",
	"functional_annotation",
	"protein_id",
}

// WriteResultsTSV writes the final per-genome table.
func WriteResultsTSV(rows []model.ResultRow, path string) error {
	return writeTSV(path, resultColumns, len(rows), func(i int) []string {
		r := rows[i]
		return []string{
			r.Genome,
			formatFloat(r.Completeness),
			strconv.Itoa(r.GT0),
			strconv.Itoa(r.GE20),
			strconv.Itoa(r.GE100),
			formatFloat(r.Score),
		}
	})
}

// WriteContributionsTSV writes the per-feature attribution table.
func WriteContributionsTSV(recs []model.AttributionRecord, path string) error {
	return writeTSV(path, contributionColumns, len(recs), func(i int) []string {
		r := recs[i]
		return []string{
			r.Genome,
			r.Feature,
			formatFloat(r.Contribution),
			formatFloat(r.Bitscore),
			r.Annotation,
			r.Protein,
		}
	})
}

func writeTSV(path string, header []string, n int, row func(int) []string) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "export: create %s", path)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	w.Comma = '\t'
	if err := w.Write(header); err != nil {
		return eris.Wrapf(err, "export: write header %s", path)
	}
	for i := 0; i < n; i++ {
		if err := w.Write(row(i)); err != nil {
			return eris.Wrapf(err, "export: write row %s", path)
		}
	}
	w.Flush()
	return eris.Wrapf(w.Error(), "export: flush %s", path)
}

func formatFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}
