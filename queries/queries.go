// Package queries reads NumPy .npy query files: one 2D float32 array of
// shape (count, dim). Vectors are copied into a single 64-byte-aligned
// block so each row satisfies the distance kernel's alignment contract.
package queries

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/sbinet/npyio"

	"github.com/MRandl/catapult-db/internal/mem"
	"github.com/MRandl/catapult-db/store"
)

// Set is a loaded batch of query vectors.
type Set struct {
	data []float32
	n    int
	dim  int
}

// Load reads the .npy file at path. A .zst or .lz4 suffix selects
// streaming decompression.
func Load(path string) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	switch {
	case strings.HasSuffix(path, ".zst"):
		dec, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", store.ErrMalformed, path, err)
		}
		defer dec.Close()
		r = dec
	case strings.HasSuffix(path, ".lz4"):
		r = lz4.NewReader(f)
	}

	return read(r, path)
}

func read(r io.Reader, path string) (*Set, error) {
	npy, err := npyio.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", store.ErrMalformed, path, err)
	}

	shape := npy.Header.Descr.Shape
	if len(shape) != 2 {
		return nil, fmt.Errorf("%w: %s: want a 2D array, got shape %v", store.ErrMalformed, path, shape)
	}
	if npy.Header.Descr.Fortran {
		return nil, fmt.Errorf("%w: %s: fortran-ordered arrays are not supported", store.ErrMalformed, path)
	}
	if npy.Header.Descr.Type != "<f4" {
		return nil, fmt.Errorf("%w: %s: want little-endian float32 (<f4), got %q", store.ErrMalformed, path, npy.Header.Descr.Type)
	}

	n, dim := shape[0], shape[1]

	var raw []float32
	if err := npy.Read(&raw); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", store.ErrMalformed, path, err)
	}
	if len(raw) != n*dim {
		return nil, fmt.Errorf("%w: %s: %d values, want %d", store.ErrMalformed, path, len(raw), n*dim)
	}

	data := mem.AllocAlignedFloat32(n * dim)
	copy(data, raw)

	return &Set{data: data, n: n, dim: dim}, nil
}

// Count returns the number of queries.
func (s *Set) Count() int { return s.n }

// Dim returns the query dimensionality.
func (s *Set) Dim() int { return s.dim }

// Vector returns query i as a zero-copy slice.
func (s *Set) Vector(i int) []float32 {
	off := i * s.dim
	return s.data[off : off+s.dim]
}
