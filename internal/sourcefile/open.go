package sourcefile

import (
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"

	"h2resconv/internal/errors"
)

type readCloser struct {
	io.Reader
	close func() error
}

func (rc readCloser) Close() error { return rc.close() }

// Open opens a source dataset for reading, decompressing transparently
// by extension. Cluster exports arrive either plain, gzipped (.gz) or
// zstd-compressed (.zst); callers never see the difference.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewStorageError("failed to open input file", err).
			WithContext("path", path)
	}

	switch {
	case strings.HasSuffix(path, ".gz"):
		gz, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, errors.NewParsingError("failed to read gzip header", err).
				WithContext("path", path)
		}
		return readCloser{Reader: gz, close: func() error {
			gerr := gz.Close()
			ferr := f.Close()
			if gerr != nil {
				return gerr
			}
			return ferr
		}}, nil

	case strings.HasSuffix(path, ".zst"):
		dec, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, errors.NewParsingError("failed to initialize zstd reader", err).
				WithContext("path", path)
		}
		return readCloser{Reader: dec, close: func() error {
			dec.Close()
			return f.Close()
		}}, nil
	}

	return f, nil
}
