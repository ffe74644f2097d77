package seqio

import (
	"bufio"
	"os"

	"github.com/rotisserie/eris"
)

// Writer appends FASTA records to a single output file, wrapping sequence
// lines at a fixed width.
type Writer struct {
	f *os.File
	w *bufio.Writer
}

const lineWidth = 80

// NewWriter creates (truncating) the output file.
func NewWriter(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, eris.Wrapf(err, "seqio: create %s", path)
	}
	return &Writer{f: f, w: bufio.NewWriter(f)}, nil
}

// Write appends one record.
func (w *Writer) Write(r Record) error {
	if _, err := w.w.WriteString(">" + r.ID + "\n"); err != nil {
		return eris.Wrap(err, "seqio: write header")
	}
	for start := 0; start < len(r.Seq); start += lineWidth {
		end := start + lineWidth
		if end > len(r.Seq) {
			end = len(r.Seq)
		}
		if _, err := w.w.Write(r.Seq[start:end]); err != nil {
			return eris.Wrap(err, "seqio: write sequence")
		}
		if err := w.w.WriteByte('\n'); err != nil {
			return eris.Wrap(err, "seqio: write sequence")
		}
	}
	return nil
}

// Close flushes and closes the file.
func (w *Writer) Close() error {
	if err := w.w.Flush(); err != nil {
		w.f.Close()
		return eris.Wrap(err, "seqio: flush corpus")
	}
	return eris.Wrap(w.f.Close(), "seqio: close corpus")
}
