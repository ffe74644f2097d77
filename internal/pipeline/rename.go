package pipeline

import (
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/symcla/symcla/internal/identity"
	"github.com/symcla/symcla/internal/model"
	"github.com/symcla/symcla/internal/seqio"
)

// RenamePhase builds the run's identity map from the input directory,
// writes the merged corpus with qualified internal ids in every header,
// and persists the map for later reversal. The map is immutable afterwards.
func RenamePhase(rc *RunContext) ([]model.Genome, error) {
	files, err := seqio.ListGenomeFiles(rc.InputDir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, eris.Wrapf(identity.ErrEmptyBatch, "no protein FASTA files in %s", rc.InputDir)
	}

	originals := make([]string, 0, len(files))
	byOriginal := make(map[string]seqio.GenomeFile, len(files))
	for _, f := range files {
		originals = append(originals, f.OriginalID)
		byOriginal[f.OriginalID] = f
	}

	ids, err := identity.NewMap(originals)
	if err != nil {
		return nil, err
	}

	corpus, err := seqio.NewWriter(rc.CorpusPath)
	if err != nil {
		return nil, err
	}
	defer corpus.Close()

	var genomes []model.Genome
	for _, gid := range ids.Genomes() {
		orig, err := ids.Original(gid)
		if err != nil {
			return nil, err
		}
		file := byOriginal[orig]

		proteinIDs, err := seqio.ReadIDs(file.Path)
		if err != nil {
			return nil, err
		}
		if len(proteinIDs) == 0 {
			return nil, eris.Errorf("pipeline: %s contains no sequences", file.Path)
		}

		pm, err := ids.AddProteins(gid, proteinIDs)
		if err != nil {
			return nil, err
		}

		err = seqio.ScanFile(file.Path, func(r seqio.Record) error {
			pid, err := pm.Internal(r.ID)
			if err != nil {
				return err
			}
			return corpus.Write(seqio.Record{ID: identity.Qualify(gid, pid), Seq: r.Seq})
		})
		if err != nil {
			return nil, err
		}

		genomes = append(genomes, model.Genome{
			OriginalID: orig,
			InternalID: gid,
			Proteins:   pm.Count(),
		})
		zap.L().Debug("pipeline: renamed genome",
			zap.String("original", orig),
			zap.String("internal", gid),
			zap.Int("proteins", pm.Count()),
		)
	}

	if err := corpus.Close(); err != nil {
		return nil, err
	}
	if err := ids.Save(rc.MapDir); err != nil {
		return nil, err
	}
	rc.IDs = ids
	return genomes, nil
}
