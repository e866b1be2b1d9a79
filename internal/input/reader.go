package input

import (
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// Source is an opened input stream plus everything that must be
// closed with it. Closing the source tears down the whole producer,
// which also unblocks a reader mid-stream when loading is aborted.
type Source struct {
	// Name is the display name: the file path, or "(stdin)".
	Name string

	r         io.Reader
	closers   []io.Closer
	closeOnce sync.Once
	closeErr  error
}

// Open prepares the named file for reading, transparently wrapping
// gzip- and bzip2-compressed files based on their suffix. An empty
// path means standard input.
func Open(path string) (*Source, error) {
	if path == "" {
		return &Source{Name: "(stdin)", r: os.Stdin}, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}

	src := &Source{Name: path, r: f, closers: []io.Closer{f}}
	switch {
	case strings.HasSuffix(path, ".gz"):
		zr, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("open gzip input: %w", err)
		}
		src.r = zr
		src.closers = append(src.closers, zr)
	case strings.HasSuffix(path, ".bz2"):
		src.r = bzip2.NewReader(f)
	}
	return src, nil
}

// Read implements io.Reader.
func (s *Source) Read(p []byte) (int, error) {
	return s.r.Read(p)
}

// Close closes the decompressor (if any) and the underlying file, in
// reverse order of opening. Stdin sources close nothing. Close is
// idempotent and safe for concurrent use: the abort path closes the
// source from a context callback goroutine while the command's
// deferred close runs on the main one.
func (s *Source) Close() error {
	s.closeOnce.Do(func() {
		for i := len(s.closers) - 1; i >= 0; i-- {
			if err := s.closers[i].Close(); err != nil && s.closeErr == nil {
				s.closeErr = err
			}
		}
	})
	return s.closeErr
}

// DefaultDelimiter picks the delimiter implied by a file name: comma
// for .csv (before any compression suffix), otherwise tab. An empty
// name (stdin) defaults to tab.
func DefaultDelimiter(name string) string {
	base := strings.TrimSuffix(strings.TrimSuffix(name, ".gz"), ".bz2")
	if strings.HasSuffix(base, ".csv") {
		return ","
	}
	return "\t"
}
