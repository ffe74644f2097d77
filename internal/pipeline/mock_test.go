package pipeline

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"

	"github.com/symcla/symcla/internal/hmmer"
)

// mockSearcher writes a canned hit table for each HMM file instead of
// shelling out. Keyed by the HMM file's base name.
type mockSearcher struct {
	tables map[string]string
	err    error
	calls  []hmmer.Params
}

func (m *mockSearcher) Search(_ context.Context, p hmmer.Params) error {
	m.calls = append(m.calls, p)
	if m.err != nil {
		return m.err
	}
	table, ok := m.tables[filepath.Base(p.HMMFile)]
	if !ok {
		return eris.Wrapf(hmmer.ErrExternalTool, "no canned table for %s", p.HMMFile)
	}
	return os.WriteFile(p.OutFile, []byte(table), 0o644)
}
