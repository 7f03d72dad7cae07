// Package dataset loads the candidate tables from a configured source.
package dataset

import (
	"context"
	"io"
	"os"
	"path/filepath"
)

// Source provides read access to named dataset files. Implementations exist
// for the local filesystem and S3-compatible object storage.
type Source interface {
	// Name identifies the source for logs.
	Name() string

	// Open returns a reader for the named dataset file.
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}

// LocalSource reads dataset files from a directory on disk.
type LocalSource struct {
	dir string
}

// NewLocalSource creates a Source over the given directory.
func NewLocalSource(dir string) *LocalSource {
	return &LocalSource{dir: dir}
}

func (s *LocalSource) Name() string { return "local" }

func (s *LocalSource) Open(_ context.Context, name string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(s.dir, name))
	if err != nil {
		return nil, err
	}
	return f, nil
}
