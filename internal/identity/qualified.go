package identity

import (
	"strings"

	"github.com/rotisserie/eris"
)

// Delim separates the genome and protein parts of a qualified id as it
// appears in the merged corpus headers and the homology-search hit tables.
const Delim = "|"

// ErrBadQualifiedID is returned when a qualified id does not match the
// `genome|protein` grammar.
var ErrBadQualifiedID = eris.New("identity: malformed qualified id")

// Qualify builds the wire form of a (genome, protein) internal id pair.
func Qualify(genomeInternal, proteinInternal string) string {
	return genomeInternal + Delim + proteinInternal
}

// SplitQualified parses a qualified id back into its genome and protein
// parts. Grammar: two non-empty tokens without whitespace joined by exactly
// one delimiter. Anything else is a parse error; malformed ids are never
// skipped because a dropped row would corrupt the dense-matrix invariant.
func SplitQualified(qualified string) (genome, protein string, err error) {
	parts := strings.Split(qualified, Delim)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", eris.Wrapf(ErrBadQualifiedID, "%q", qualified)
	}
	if strings.ContainsAny(parts[0], " \t") || strings.ContainsAny(parts[1], " \t") {
		return "", "", eris.Wrapf(ErrBadQualifiedID, "%q", qualified)
	}
	return parts[0], parts[1], nil
}
