// Package annot loads the fixed reference table mapping marker model names
// to human-readable functional descriptions. The table is precomputed
// offline by majority consensus over annotated member proteins.
package annot

import (
	"encoding/csv"
	"os"

	"github.com/rotisserie/eris"
)

// Table maps feature (model) name to functional annotation.
type Table map[string]string

// Load reads a two-column TSV of feature name and description. Lines with
// more than two columns keep tabs inside the description out of the format,
// so exactly two fields are required.
func Load(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "annot: open %s", path)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = '\t'
	r.FieldsPerRecord = 2
	r.LazyQuotes = true

	rows, err := r.ReadAll()
	if err != nil {
		return nil, eris.Wrapf(err, "annot: read %s", path)
	}

	t := make(Table, len(rows))
	for _, row := range rows {
		if _, dup := t[row[0]]; dup {
			return nil, eris.Errorf("annot: duplicate feature %q in %s", row[0], path)
		}
		t[row[0]] = row[1]
	}
	return t, nil
}

// Describe returns the annotation for a feature, or "unknown" for features
// absent from the table.
func (t Table) Describe(feature string) string {
	if desc, ok := t[feature]; ok {
		return desc
	}
	return "unknown"
}
