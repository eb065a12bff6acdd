package store

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/MRandl/catapult-db/internal/mem"
	"github.com/MRandl/catapult-db/internal/mmap"
)

// readFile returns the raw bytes of path and a closer for the backing
// resource. Plain files are memory-mapped; .zst and .lz4 files are
// decompressed into a 64-byte-aligned buffer.
func readFile(path string) ([]byte, io.Closer, error) {
	switch {
	case strings.HasSuffix(path, ".zst"):
		return decompress(path, func(r io.Reader) (io.Reader, func(), error) {
			dec, err := zstd.NewReader(r)
			if err != nil {
				return nil, nil, err
			}
			return dec, dec.Close, nil
		})
	case strings.HasSuffix(path, ".lz4"):
		return decompress(path, func(r io.Reader) (io.Reader, func(), error) {
			return lz4.NewReader(r), func() {}, nil
		})
	default:
		m, err := mmap.Open(path)
		if err != nil {
			return nil, nil, err
		}
		return m.Data, m, nil
	}
}

func decompress(path string, wrap func(io.Reader) (io.Reader, func(), error)) ([]byte, io.Closer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	r, done, err := wrap(f)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s: %v", ErrMalformed, path, err)
	}
	defer done()

	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s: %v", ErrMalformed, path, err)
	}

	// Re-home the decompressed bytes so downstream zero-copy casts see the
	// same alignment a mapped file would have.
	aligned := mem.AllocAligned(len(raw))
	copy(aligned, raw)

	return aligned, nopCloser{}, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
