package identity

import (
	"encoding/csv"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
)

const (
	genomeMapFile = "genomes.tsv"
	proteinMapDir = "proteins"
)

// Save persists the map under dir as TSV files: genomes.tsv holds
// internal/original genome pairs, proteins/<gid>.tsv the per-genome protein
// pairs. The persisted form is what later stages load to reverse renaming.
func (m *Map) Save(dir string) error {
	if err := os.MkdirAll(filepath.Join(dir, proteinMapDir), 0o755); err != nil {
		return eris.Wrap(err, "identity: create map dir")
	}

	writePairs := func(path string, order []string, toOriginal map[string]string) error {
		f, err := os.Create(path)
		if err != nil {
			return eris.Wrapf(err, "identity: create %s", path)
		}
		defer f.Close()

		w := csv.NewWriter(f)
		w.Comma = '\t'
		for _, internal := range order {
			if err := w.Write([]string{internal, toOriginal[internal]}); err != nil {
				return eris.Wrapf(err, "identity: write %s", path)
			}
		}
		w.Flush()
		return eris.Wrapf(w.Error(), "identity: flush %s", path)
	}

	if err := writePairs(filepath.Join(dir, genomeMapFile), m.order, m.toOriginal); err != nil {
		return err
	}
	for gid, pm := range m.proteins {
		path := filepath.Join(dir, proteinMapDir, gid+".tsv")
		if err := writePairs(path, pm.order, pm.toOriginal); err != nil {
			return err
		}
	}
	return nil
}

// Load reads a map previously written by Save.
func Load(dir string) (*Map, error) {
	readPairs := func(path string) ([][2]string, error) {
		f, err := os.Open(path)
		if err != nil {
			return nil, eris.Wrapf(err, "identity: open %s", path)
		}
		defer f.Close()

		r := csv.NewReader(f)
		r.Comma = '\t'
		r.FieldsPerRecord = 2
		rows, err := r.ReadAll()
		if err != nil {
			return nil, eris.Wrapf(err, "identity: read %s", path)
		}
		out := make([][2]string, 0, len(rows))
		for _, row := range rows {
			out = append(out, [2]string{row[0], row[1]})
		}
		return out, nil
	}

	genomePairs, err := readPairs(filepath.Join(dir, genomeMapFile))
	if err != nil {
		return nil, err
	}
	if len(genomePairs) == 0 {
		return nil, ErrEmptyBatch
	}

	m := &Map{
		toOriginal: make(map[string]string, len(genomePairs)),
		toInternal: make(map[string]string, len(genomePairs)),
		proteins:   make(map[string]*ProteinMap),
	}
	for _, pair := range genomePairs {
		internal, orig := pair[0], pair[1]
		if _, seen := m.toOriginal[internal]; seen {
			return nil, eris.Wrapf(ErrDuplicateID, "genome %q in %s", internal, genomeMapFile)
		}
		m.toOriginal[internal] = orig
		m.toInternal[orig] = internal
		m.order = append(m.order, internal)
	}

	entries, err := os.ReadDir(filepath.Join(dir, proteinMapDir))
	if err != nil {
		if os.IsNotExist(err) {
			return m, nil
		}
		return nil, eris.Wrap(err, "identity: read protein map dir")
	}
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".tsv" {
			continue
		}
		gid := e.Name()[:len(e.Name())-len(".tsv")]
		if _, ok := m.toOriginal[gid]; !ok {
			return nil, eris.Wrapf(ErrUnknownID, "protein map file for genome %q", gid)
		}
		pairs, err := readPairs(filepath.Join(dir, proteinMapDir, e.Name()))
		if err != nil {
			return nil, err
		}
		pm := &ProteinMap{
			genome:     gid,
			toOriginal: make(map[string]string, len(pairs)),
			toInternal: make(map[string]string, len(pairs)),
		}
		for _, pair := range pairs {
			internal, orig := pair[0], pair[1]
			pm.toOriginal[internal] = orig
			pm.toInternal[orig] = internal
			pm.order = append(pm.order, internal)
		}
		m.proteins[gid] = pm
	}
	return m, nil
}
