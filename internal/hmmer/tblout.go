package hmmer

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/symcla/symcla/internal/identity"
	"github.com/symcla/symcla/internal/model"
)

// ErrParse is returned when a hit-table row does not match the expected
// token layout. Fatal for the run: skipping a malformed row would silently
// corrupt the dense-matrix invariant.
var ErrParse = eris.New("hmmer: malformed hit table row")

// Fixed token positions in the per-target table.
const (
	colTarget = 0
	colQuery  = 2
	colEValue = 4
	colScore  = 5
	minCols   = 6
)

// ParseFile reads a per-target hit table into hit records, splitting the
// genome-qualified target ids. A missing or empty file is a legitimate
// zero-hit result and yields an empty slice: even under the permissive
// reporting threshold, low-quality proteins can produce no hit at all.
func ParseFile(path string) ([]model.HitRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, eris.Wrapf(err, "hmmer: open hit table %s", path)
	}
	defer f.Close()

	var hits []model.HitRecord
	lineNo := 0
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		hit, err := parseRow(line)
		if err != nil {
			return nil, eris.Wrapf(err, "%s:%d", path, lineNo)
		}
		hits = append(hits, hit)
	}
	if err := scanner.Err(); err != nil {
		return nil, eris.Wrapf(err, "hmmer: scan %s", path)
	}
	return hits, nil
}

func parseRow(line string) (model.HitRecord, error) {
	fields := strings.Fields(line)
	if len(fields) < minCols {
		return model.HitRecord{}, eris.Wrapf(ErrParse, "%d tokens, want at least %d", len(fields), minCols)
	}

	genome, protein, err := identity.SplitQualified(fields[colTarget])
	if err != nil {
		return model.HitRecord{}, eris.Wrapf(ErrParse, "target %q", fields[colTarget])
	}

	evalue, err := strconv.ParseFloat(fields[colEValue], 64)
	if err != nil {
		return model.HitRecord{}, eris.Wrapf(ErrParse, "e-value %q", fields[colEValue])
	}
	score, err := strconv.ParseFloat(fields[colScore], 64)
	if err != nil {
		return model.HitRecord{}, eris.Wrapf(ErrParse, "score %q", fields[colScore])
	}

	return model.HitRecord{
		Genome:  genome,
		Protein: protein,
		Model:   fields[colQuery],
		EValue:  evalue,
		Score:   score,
	}, nil
}
