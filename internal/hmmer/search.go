// Package hmmer invokes the external profile-HMM search and parses its
// tabular hit report. The search itself is a black box: one protein corpus
// plus one profile database in, one hit table out.
package hmmer

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// ErrExternalTool is returned when the search binary exits non-zero or
// produces no hit table. Callers treat it as a warning and fall back to an
// empty hit table rather than aborting the run.
var ErrExternalTool = eris.New("hmmer: external search failed")

// Params describes one search invocation.
type Params struct {
	HMMFile    string
	CorpusFile string
	OutFile    string
	Workers    int
	EValue     float64
}

// Searcher runs one homology search. Blocking and synchronous; the only
// parallelism is the worker count handed to the tool itself.
type Searcher interface {
	Search(ctx context.Context, p Params) error
}

// ExecSearcher shells out to hmmsearch.
type ExecSearcher struct {
	Path string
}

// NewExecSearcher returns a Searcher backed by the hmmsearch binary at path.
func NewExecSearcher(path string) *ExecSearcher {
	return &ExecSearcher{Path: path}
}

// Search runs hmmsearch with a permissive reporting threshold, writing the
// per-target table to p.OutFile.
func (s *ExecSearcher) Search(ctx context.Context, p Params) error {
	args := []string{
		"--tblout", p.OutFile,
		"--noali",
		"-o", os.DevNull,
		"-E", fmt.Sprintf("%g", p.EValue),
	}
	if p.Workers > 0 {
		args = append(args, "--cpu", fmt.Sprintf("%d", p.Workers))
	}
	args = append(args, p.HMMFile, p.CorpusFile)

	cmd := exec.CommandContext(ctx, s.Path, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	zap.L().Debug("hmmer: invoking search",
		zap.String("binary", s.Path),
		zap.String("hmm", p.HMMFile),
		zap.String("corpus", p.CorpusFile),
	)

	if err := cmd.Run(); err != nil {
		return eris.Wrapf(ErrExternalTool, "%s: %v: %s", s.Path, err, stderr.String())
	}
	if _, err := os.Stat(p.OutFile); err != nil {
		return eris.Wrapf(ErrExternalTool, "%s produced no hit table at %s", s.Path, p.OutFile)
	}
	return nil
}
