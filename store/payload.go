package store

import (
	"encoding/binary"
	"fmt"
	"io"
	"unsafe"

	"github.com/MRandl/catapult-db/internal/simd"
)

// payloadHeaderSize is the file offset at which the vector body begins.
// The header proper is 8 bytes; the rest is padding so the body starts on
// a 64-byte boundary.
const payloadHeaderSize = 64

// Payload holds the corpus vectors: a single contiguous, 64-byte-aligned
// block of n*dim float32 values. Vector lookup is a pointer-offset slice;
// ids are trusted because the graph store validates its neighbor lists at
// load time.
type Payload struct {
	vectors []float32
	n       int
	dim     int
	closer  io.Closer
}

// OpenPayload loads the payload file at path.
//
// Layout (little-endian): u32 count, u32 dim, padding to byte 64, then
// count*dim float32 values. dim must be a multiple of the kernel lane
// count.
func OpenPayload(path string) (*Payload, error) {
	data, closer, err := readFile(path)
	if err != nil {
		return nil, err
	}

	p, err := parsePayload(data)
	if err != nil {
		closer.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	p.closer = closer

	return p, nil
}

func parsePayload(data []byte) (*Payload, error) {
	if len(data) < payloadHeaderSize {
		return nil, fmt.Errorf("%w: payload header truncated (%d bytes)", ErrMalformed, len(data))
	}

	n := int(binary.LittleEndian.Uint32(data[0:]))
	dim := int(binary.LittleEndian.Uint32(data[4:]))

	if dim == 0 || dim%simd.Lanes != 0 {
		return nil, fmt.Errorf("%w: dimension %d is not a positive multiple of %d", ErrMalformed, dim, simd.Lanes)
	}

	body := data[payloadHeaderSize:]
	want := n * dim * 4
	if len(body) != want {
		return nil, fmt.Errorf("%w: payload body is %d bytes, want %d (n=%d dim=%d)", ErrMalformed, len(body), want, n, dim)
	}

	var vectors []float32
	if n > 0 {
		// Little-endian host assumed, matching the file format.
		vectors = unsafe.Slice((*float32)(unsafe.Pointer(&body[0])), n*dim)
	}

	return &Payload{vectors: vectors, n: n, dim: dim}, nil
}

// NewPayload wraps an in-memory vector block. The slice is borrowed, must
// hold n*dim values, and should be 64-byte aligned for the kernel's
// alignment contract.
func NewPayload(vectors []float32, n, dim int) (*Payload, error) {
	if dim == 0 || dim%simd.Lanes != 0 {
		return nil, fmt.Errorf("%w: dimension %d is not a positive multiple of %d", ErrMalformed, dim, simd.Lanes)
	}
	if len(vectors) != n*dim {
		return nil, fmt.Errorf("%w: %d values, want %d (n=%d dim=%d)", ErrMalformed, len(vectors), n*dim, n, dim)
	}
	return &Payload{vectors: vectors, n: n, dim: dim}, nil
}

// Vector returns the vector for id as a zero-copy slice. Bounds are
// trusted.
func (p *Payload) Vector(id uint32) []float32 {
	off := int(id) * p.dim
	return p.vectors[off : off+p.dim]
}

// Count returns the number of corpus vectors.
func (p *Payload) Count() int { return p.n }

// Dim returns the vector dimensionality.
func (p *Payload) Dim() int { return p.dim }

// Close releases the backing mapping, if any.
func (p *Payload) Close() error {
	if p.closer == nil {
		return nil
	}
	err := p.closer.Close()
	p.closer = nil
	p.vectors = nil
	return err
}
