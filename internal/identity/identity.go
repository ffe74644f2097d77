// Package identity assigns run-scoped internal identifiers to genomes and
// proteins so that arbitrary caller-supplied names can flow through
// fixed-schema intermediate files, and reverses the renaming afterwards.
// The persisted map is the sole source of truth for reversal; no later
// stage re-derives original names.
package identity

import (
	"fmt"
	"sort"

	"github.com/rotisserie/eris"
)

var (
	// ErrEmptyBatch is returned when a map is built over zero genomes.
	ErrEmptyBatch = eris.New("identity: empty input batch")
	// ErrDuplicateID is returned when original identifiers collide.
	ErrDuplicateID = eris.New("identity: duplicate original identifier")
	// ErrUnknownID is returned on reverse lookup of an unmapped key.
	ErrUnknownID = eris.New("identity: unknown identifier")
)

const (
	genomePrefix  = "g"
	proteinPrefix = "p"
)

// Map is the run-wide bidirectional identifier mapping. Genome internal ids
// are a bijection over the batch; protein internal ids are a bijection only
// within their genome and are unambiguous solely as a qualified pair.
type Map struct {
	toOriginal map[string]string
	toInternal map[string]string
	order      []string // genome internal ids in assignment order
	proteins   map[string]*ProteinMap
}

// ProteinMap maps one genome's protein identifiers.
type ProteinMap struct {
	genome     string
	toOriginal map[string]string
	toInternal map[string]string
	order      []string
}

// NewMap assigns internal genome ids g1..gN over the batch, in lexicographic
// order of the original identifiers. Errors on an empty batch or colliding
// originals; collisions are caller errors and are never silently deduplicated.
func NewMap(originals []string) (*Map, error) {
	if len(originals) == 0 {
		return nil, ErrEmptyBatch
	}

	sorted := make([]string, len(originals))
	copy(sorted, originals)
	sort.Strings(sorted)

	m := &Map{
		toOriginal: make(map[string]string, len(sorted)),
		toInternal: make(map[string]string, len(sorted)),
		proteins:   make(map[string]*ProteinMap, len(sorted)),
	}
	for i, orig := range sorted {
		if _, seen := m.toInternal[orig]; seen {
			return nil, eris.Wrapf(ErrDuplicateID, "genome %q", orig)
		}
		internal := fmt.Sprintf("%s%d", genomePrefix, i+1)
		m.toOriginal[internal] = orig
		m.toInternal[orig] = internal
		m.order = append(m.order, internal)
	}
	return m, nil
}

// Genomes returns all genome internal ids in assignment order.
func (m *Map) Genomes() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// Internal returns the internal id for an original genome id.
func (m *Map) Internal(original string) (string, error) {
	id, ok := m.toInternal[original]
	if !ok {
		return "", eris.Wrapf(ErrUnknownID, "genome %q", original)
	}
	return id, nil
}

// Original reverses a genome internal id.
func (m *Map) Original(internal string) (string, error) {
	orig, ok := m.toOriginal[internal]
	if !ok {
		return "", eris.Wrapf(ErrUnknownID, "genome %q", internal)
	}
	return orig, nil
}

// AddProteins assigns internal protein ids p1..pM for one genome, in the
// order given (source file order). Errors if the genome is unknown, already
// has a protein map, or the originals collide within the genome.
func (m *Map) AddProteins(genomeInternal string, originals []string) (*ProteinMap, error) {
	if _, ok := m.toOriginal[genomeInternal]; !ok {
		return nil, eris.Wrapf(ErrUnknownID, "genome %q", genomeInternal)
	}
	if _, ok := m.proteins[genomeInternal]; ok {
		return nil, eris.Errorf("identity: protein map already built for genome %q", genomeInternal)
	}

	pm := &ProteinMap{
		genome:     genomeInternal,
		toOriginal: make(map[string]string, len(originals)),
		toInternal: make(map[string]string, len(originals)),
	}
	for i, orig := range originals {
		if _, seen := pm.toInternal[orig]; seen {
			return nil, eris.Wrapf(ErrDuplicateID, "protein %q in genome %q", orig, genomeInternal)
		}
		internal := fmt.Sprintf("%s%d", proteinPrefix, i+1)
		pm.toOriginal[internal] = orig
		pm.toInternal[orig] = internal
		pm.order = append(pm.order, internal)
	}
	m.proteins[genomeInternal] = pm
	return pm, nil
}

// Proteins returns the protein map for a genome.
func (m *Map) Proteins(genomeInternal string) (*ProteinMap, error) {
	pm, ok := m.proteins[genomeInternal]
	if !ok {
		return nil, eris.Wrapf(ErrUnknownID, "protein map for genome %q", genomeInternal)
	}
	return pm, nil
}

// ProteinOriginal reverses one protein internal id within a genome.
func (m *Map) ProteinOriginal(genomeInternal, proteinInternal string) (string, error) {
	pm, err := m.Proteins(genomeInternal)
	if err != nil {
		return "", err
	}
	return pm.Original(proteinInternal)
}

// Internal returns the internal id for an original protein id.
func (pm *ProteinMap) Internal(original string) (string, error) {
	id, ok := pm.toInternal[original]
	if !ok {
		return "", eris.Wrapf(ErrUnknownID, "protein %q in genome %q", original, pm.genome)
	}
	return id, nil
}

// Original reverses a protein internal id.
func (pm *ProteinMap) Original(internal string) (string, error) {
	orig, ok := pm.toOriginal[internal]
	if !ok {
		return "", eris.Wrapf(ErrUnknownID, "protein %q in genome %q", internal, pm.genome)
	}
	return orig, nil
}

// Count returns the number of proteins mapped for this genome.
func (pm *ProteinMap) Count() int {
	return len(pm.order)
}
