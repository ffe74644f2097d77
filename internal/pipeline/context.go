package pipeline

import (
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"

	"github.com/symcla/symcla/internal/identity"
)

var (
	// ErrOutputExists is returned when the output directory is already
	// present. One classify operation per output directory; there is no
	// locking and no retry.
	ErrOutputExists = eris.New("pipeline: output directory already exists")
	// ErrMissingReference is returned when required reference data cannot
	// be found before any work starts.
	ErrMissingReference = eris.New("pipeline: missing reference data")
)

// RunContext carries everything the stages share: the output and working
// directories, the locations of every intermediate file, and the identity
// map once built. It is threaded explicitly through each stage; no stage
// reads path state from anywhere else.
type RunContext struct {
	InputDir string
	OutDir   string
	WorkDir  string
	MapDir   string

	CorpusPath       string
	MarkerTblPath    string
	UniversalTblPath string

	IDs *identity.Map
}

// NewRunContext derives the fixed file layout for one run.
func NewRunContext(inputDir, outDir string) *RunContext {
	work := filepath.Join(outDir, "work")
	return &RunContext{
		InputDir:         inputDir,
		OutDir:           outDir,
		WorkDir:          work,
		MapDir:           filepath.Join(outDir, "idmap"),
		CorpusPath:       filepath.Join(work, "sequence.fasta"),
		MarkerTblPath:    filepath.Join(work, "markers.tbl"),
		UniversalTblPath: filepath.Join(work, "universal.tbl"),
	}
}

// Setup creates the run directories, failing fast if the output directory
// already exists, and verifies the reference files are present.
func (rc *RunContext) Setup(references ...string) error {
	if _, err := os.Stat(rc.OutDir); err == nil {
		return eris.Wrapf(ErrOutputExists, "%s", rc.OutDir)
	} else if !os.IsNotExist(err) {
		return eris.Wrapf(err, "pipeline: stat output dir %s", rc.OutDir)
	}

	for _, ref := range references {
		if _, err := os.Stat(ref); err != nil {
			return eris.Wrapf(ErrMissingReference, "%s", ref)
		}
	}

	for _, dir := range []string{rc.OutDir, rc.WorkDir, rc.MapDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return eris.Wrapf(err, "pipeline: create %s", dir)
		}
	}
	return nil
}

// Cleanup removes the working directory. Called only after a successful run
// unless the caller asked to keep it; failed runs always retain partial
// state for debugging.
func (rc *RunContext) Cleanup() error {
	return eris.Wrap(os.RemoveAll(rc.WorkDir), "pipeline: remove work dir")
}
