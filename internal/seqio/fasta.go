// Package seqio reads protein multi-FASTA files and writes the merged,
// renamed corpus consumed by the homology searches.
package seqio

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rotisserie/eris"
)

// ErrBadHeader is returned when a sequence header yields no identifier
// token or sequence data precedes the first header.
var ErrBadHeader = eris.New("seqio: malformed sequence header")

// Record is one parsed FASTA sequence. ID is the first whitespace-delimited
// token of the header line.
type Record struct {
	ID  string
	Seq []byte
}

// fastaExts lists the file extensions recognized as protein FASTA input.
var fastaExts = map[string]bool{
	".faa":   true,
	".fa":    true,
	".fasta": true,
}

// GenomeFile is one input file and the genome original id derived from its
// base name.
type GenomeFile struct {
	Path       string
	OriginalID string
}

// ListGenomeFiles returns the protein FASTA files under dir, sorted by
// original id. The base name minus extension is the genome's original id.
func ListGenomeFiles(dir string) ([]GenomeFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, eris.Wrapf(err, "seqio: read input dir %s", dir)
	}

	var files []GenomeFile
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if !fastaExts[ext] {
			continue
		}
		files = append(files, GenomeFile{
			Path:       filepath.Join(dir, e.Name()),
			OriginalID: strings.TrimSuffix(e.Name(), filepath.Ext(e.Name())),
		})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].OriginalID < files[j].OriginalID })
	return files, nil
}

// ScanFile streams the records of one FASTA file to fn in file order.
// A header with no identifier token, or sequence data before the first
// header, is a parse error; the scan stops at the first error.
func ScanFile(path string, fn func(Record) error) error {
	f, err := os.Open(path)
	if err != nil {
		return eris.Wrapf(err, "seqio: open %s", path)
	}
	defer f.Close()

	var (
		current Record
		open    bool
		lineNo  int
	)
	flush := func() error {
		if !open {
			return nil
		}
		open = false
		return fn(current)
	}

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 8*1024*1024)
	for scanner.Scan() {
		lineNo++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		if line[0] == '>' {
			if err := flush(); err != nil {
				return err
			}
			fields := bytes.Fields(line[1:])
			if len(fields) == 0 {
				return eris.Wrapf(ErrBadHeader, "%s:%d: empty header", path, lineNo)
			}
			current = Record{ID: string(fields[0])}
			open = true
			continue
		}
		if !open {
			return eris.Wrapf(ErrBadHeader, "%s:%d: sequence before first header", path, lineNo)
		}
		current.Seq = append(current.Seq, bytes.TrimSpace(line)...)
	}
	if err := scanner.Err(); err != nil {
		return eris.Wrapf(err, "seqio: scan %s", path)
	}
	return flush()
}

// ReadIDs returns the protein identifiers of one file in file order.
func ReadIDs(path string) ([]string, error) {
	var ids []string
	err := ScanFile(path, func(r Record) error {
		ids = append(ids, r.ID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}
