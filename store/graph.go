package store

import (
	"encoding/binary"
	"fmt"
	"io"
	"unsafe"
)

// graphHeaderSize covers u32 node count, u32 entry point, u64 edge count.
const graphHeaderSize = 16

// Graph holds the adjacency of the proximity graph in CSR form: offsets
// into one flat neighbor array, plus the entry point the search seeds
// from. Neighbor order within a list is significant and preserved.
type Graph struct {
	offsets   []uint64
	neighbors []uint32
	entry     uint32
	n         int
	closer    io.Closer
}

// OpenGraph loads the graph metadata file at path.
//
// Layout (little-endian): u32 node count, u32 entry point, u64 total edge
// count, then u64 offsets[count+1] and u32 neighbors[edges]. Every
// neighbor id is validated against the node count.
func OpenGraph(path string) (*Graph, error) {
	data, closer, err := readFile(path)
	if err != nil {
		return nil, err
	}

	g, err := parseGraph(data)
	if err != nil {
		closer.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	g.closer = closer

	return g, nil
}

func parseGraph(data []byte) (*Graph, error) {
	if len(data) < graphHeaderSize {
		return nil, fmt.Errorf("%w: graph header truncated (%d bytes)", ErrMalformed, len(data))
	}

	n := int(binary.LittleEndian.Uint32(data[0:]))
	entry := binary.LittleEndian.Uint32(data[4:])
	edges := binary.LittleEndian.Uint64(data[8:])

	offsetsBytes := uint64(n+1) * 8
	want := graphHeaderSize + offsetsBytes + edges*4
	if uint64(len(data)) != want {
		return nil, fmt.Errorf("%w: graph file is %d bytes, want %d (n=%d edges=%d)", ErrMalformed, len(data), want, n, edges)
	}

	// Little-endian host assumed, matching the file format.
	offsets := unsafe.Slice((*uint64)(unsafe.Pointer(&data[graphHeaderSize])), n+1)

	var neighbors []uint32
	if edges > 0 {
		neighbors = unsafe.Slice((*uint32)(unsafe.Pointer(&data[graphHeaderSize+offsetsBytes])), edges)
	}

	g := &Graph{offsets: offsets, neighbors: neighbors, entry: entry, n: n}
	if err := g.validate(edges); err != nil {
		return nil, err
	}

	return g, nil
}

// NewGraph wraps in-memory adjacency data, running the same validation as
// the file loader. The slices are borrowed.
func NewGraph(offsets []uint64, neighbors []uint32, entry uint32, n int) (*Graph, error) {
	if len(offsets) != n+1 {
		return nil, fmt.Errorf("%w: %d offsets, want %d", ErrMalformed, len(offsets), n+1)
	}
	g := &Graph{offsets: offsets, neighbors: neighbors, entry: entry, n: n}
	if err := g.validate(uint64(len(neighbors))); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Graph) validate(edges uint64) error {
	if g.n == 0 {
		return fmt.Errorf("%w: graph has no nodes", ErrMalformed)
	}
	if uint64(g.entry) >= uint64(g.n) {
		return fmt.Errorf("%w: entry point %d out of range (n=%d)", ErrMalformed, g.entry, g.n)
	}
	if g.offsets[0] != 0 {
		return fmt.Errorf("%w: offsets[0] = %d, want 0", ErrMalformed, g.offsets[0])
	}
	if g.offsets[g.n] != edges {
		return fmt.Errorf("%w: offsets[%d] = %d, want edge count %d", ErrMalformed, g.n, g.offsets[g.n], edges)
	}
	for i := 0; i < g.n; i++ {
		if g.offsets[i] > g.offsets[i+1] {
			return fmt.Errorf("%w: offsets not cumulative at node %d", ErrMalformed, i)
		}
	}
	for i, nb := range g.neighbors {
		if uint64(nb) >= uint64(g.n) {
			return fmt.Errorf("%w: neighbor %d at position %d out of range (n=%d)", ErrMalformed, nb, i, g.n)
		}
	}
	return nil
}

// Neighbors returns the out-neighbor list of id as a zero-copy slice.
func (g *Graph) Neighbors(id uint32) []uint32 {
	return g.neighbors[g.offsets[id]:g.offsets[id+1]]
}

// EntryPoints returns the entry point ids the search seeds from. The file
// format carries one; the slice form keeps the driver agnostic.
func (g *Graph) EntryPoints() []uint32 {
	return []uint32{g.entry}
}

// Count returns the number of nodes.
func (g *Graph) Count() int { return g.n }

// Close releases the backing mapping, if any.
func (g *Graph) Close() error {
	if g.closer == nil {
		return nil
	}
	err := g.closer.Close()
	g.closer = nil
	g.offsets = nil
	g.neighbors = nil
	return err
}
