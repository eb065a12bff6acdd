package searcher

import "github.com/bits-and-blooms/bitset"

// Trajectory is the catapult buffer: a fixed-capacity ring recording the
// (id, distance) of the nodes expanded during the current query, oldest
// overwritten first. The driver does not append the expansion of an entry
// that was itself re-injected. When the beam stalls, the driver re-injects the oldest
// entries not yet used this query; biasing toward the distant past is what
// produces the basin-escape behavior.
//
// A per-slot bitset tracks which slots have already been re-injected. The
// bit travels with the slot, not the node: overwriting a slot clears it.
type Trajectory struct {
	ids      []uint32
	dists    []float32
	injected *bitset.BitSet
	head     int
	size     int
}

// NewTrajectory creates a trajectory ring with the given capacity.
func NewTrajectory(capacity int) *Trajectory {
	return &Trajectory{
		ids:      make([]uint32, capacity),
		dists:    make([]float32, capacity),
		injected: bitset.New(uint(capacity)),
	}
}

// Reset empties the ring for reuse, adopting a new capacity.
func (t *Trajectory) Reset(capacity int) {
	if capacity != len(t.ids) {
		t.ids = make([]uint32, capacity)
		t.dists = make([]float32, capacity)
		t.injected = bitset.New(uint(capacity))
	} else {
		t.injected.ClearAll()
	}
	t.head = 0
	t.size = 0
}

// Len returns the number of live entries.
func (t *Trajectory) Len() int { return t.size }

// Cap returns the ring capacity.
func (t *Trajectory) Cap() int { return len(t.ids) }

// Append records an expanded node, overwriting the oldest entry when full.
func (t *Trajectory) Append(id uint32, d float32) {
	if len(t.ids) == 0 {
		return
	}
	t.ids[t.head] = id
	t.dists[t.head] = d
	t.injected.Clear(uint(t.head))
	t.head = (t.head + 1) % len(t.ids)
	if t.size < len(t.ids) {
		t.size++
	}
}

// SelectOldest visits up to r of the oldest entries whose slots have not
// been re-injected this query, oldest first, marking each slot as it goes.
func (t *Trajectory) SelectOldest(r int, fn func(id uint32, d float32)) {
	if t.size == 0 || r <= 0 {
		return
	}

	start := 0
	if t.size == len(t.ids) {
		start = t.head
	}

	taken := 0
	for i := 0; i < t.size && taken < r; i++ {
		slot := (start + i) % len(t.ids)
		if t.injected.Test(uint(slot)) {
			continue
		}
		t.injected.Set(uint(slot))
		fn(t.ids[slot], t.dists[slot])
		taken++
	}
}
