package export

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/symcla/symcla/internal/model"
)

// WriteWorkbook writes a two-sheet workbook: the results table and the
// feature-contribution table. The results sheet carries an extra category
// column since the workbook is meant for human review.
func WriteWorkbook(rows []model.ResultRow, recs []model.AttributionRecord, path string) error {
	f := xlsx.NewFile()

	results, err := f.AddSheet("results")
	if err != nil {
		return eris.Wrap(err, "export: add results sheet")
	}
	header := results.AddRow()
	for _, c := range resultColumns {
		header.AddCell().SetString(c)
	}
	header.AddCell().SetString("category")
	for _, r := range rows {
		row := results.AddRow()
		row.AddCell().SetString(r.Genome)
		row.AddCell().SetFloat(r.Completeness)
		row.AddCell().SetInt(r.GT0)
		row.AddCell().SetInt(r.GE20)
		row.AddCell().SetInt(r.GE100)
		row.AddCell().SetFloat(r.Score)
		row.AddCell().SetString(string(model.Categorize(r.Score)))
	}

	contribs, err := f.AddSheet("contributions")
	if err != nil {
		return eris.Wrap(err, "export: add contributions sheet")
	}
	header = contribs.AddRow()
	for _, c := range contributionColumns {
		header.AddCell().SetString(c)
	}
	for _, r := range recs {
		row := contribs.AddRow()
		row.AddCell().SetString(r.Genome)
		row.AddCell().SetString(r.Feature)
		row.AddCell().SetFloat(r.Contribution)
		row.AddCell().SetFloat(r.Bitscore)
		row.AddCell().SetString(r.Annotation)
		row.AddCell().SetString(r.Protein)
	}

	return eris.Wrapf(f.Save(path), "export: save %s", path)
}
