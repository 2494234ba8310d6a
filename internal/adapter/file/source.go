// Package file reads a dataset from the local filesystem.
package file

import (
	"context"
	"fmt"
	"io"
	"os"
)

// Stdin is the path that selects standard input.
const Stdin = "-"

// Source opens a CSV file. It implements pipeline.Source.
type Source struct {
	path  string
	stdin io.Reader
}

// NewSource creates a Source for path; "-" reads standard input.
func NewSource(path string) *Source {
	return &Source{path: path, stdin: os.Stdin}
}

// Open returns a reader over the file's contents. Closing a stdin reader
// leaves the process's stdin open.
func (s *Source) Open(ctx context.Context) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.path == Stdin {
		return io.NopCloser(s.stdin), nil
	}
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	return f, nil
}

// Name returns the configured path.
func (s *Source) Name() string {
	if s.path == Stdin {
		return "stdin"
	}
	return s.path
}
