package hmmer

import (
	"bufio"
	"os"
	"strings"

	"github.com/rotisserie/eris"
)

// ListModelNames reads the NAME records of a profile-HMM database. The
// result is the closed set of query-model names the search can report,
// including models that will never produce a hit.
func ListModelNames(hmmFile string) ([]string, error) {
	f, err := os.Open(hmmFile)
	if err != nil {
		return nil, eris.Wrapf(err, "hmmer: open profile db %s", hmmFile)
	}
	defer f.Close()

	var names []string
	seen := make(map[string]bool)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "NAME") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, eris.Wrapf(ErrParse, "profile NAME record %q in %s", line, hmmFile)
		}
		if seen[fields[1]] {
			return nil, eris.Errorf("hmmer: duplicate profile name %q in %s", fields[1], hmmFile)
		}
		seen[fields[1]] = true
		names = append(names, fields[1])
	}
	if err := scanner.Err(); err != nil {
		return nil, eris.Wrapf(err, "hmmer: scan profile db %s", hmmFile)
	}
	if len(names) == 0 {
		return nil, eris.Errorf("hmmer: no profiles found in %s", hmmFile)
	}
	return names, nil
}
