package searcher

import (
	"math"
	"sort"
)

type frontierEntry struct {
	Candidate
	expanded bool
	injected bool
}

// Frontier is the bounded best-first candidate queue of the beam search.
// It holds at most width entries sorted by (distance, id) ascending, each
// carrying an expanded flag that is flipped in place rather than removing
// the entry, so WorstDistance keeps seeing everything the beam retains.
//
// The backing store is a sorted array with shift insertion. For the beam
// widths this engine runs at (tens to a few hundred) that beats a binary
// heap: the hot scan for the first unexpanded entry is a forward walk over
// a few cache lines, and eviction is a truncation.
type Frontier struct {
	entries []frontierEntry
	width   int
}

// NewFrontier creates a frontier with the given beam width.
func NewFrontier(width int) *Frontier {
	return &Frontier{
		entries: make([]frontierEntry, 0, width),
		width:   width,
	}
}

// Reset clears the frontier for reuse, adopting a new beam width.
func (f *Frontier) Reset(width int) {
	f.entries = f.entries[:0]
	f.width = width
	if cap(f.entries) < width {
		f.entries = make([]frontierEntry, 0, width)
	}
}

// Len returns the number of entries currently held.
func (f *Frontier) Len() int { return len(f.entries) }

// Width returns the beam width.
func (f *Frontier) Width() int { return f.width }

// WorstDistance returns the largest distance currently held, or +Inf while
// the frontier is not yet full. Neighbors at or beyond this distance cannot
// enter the beam and are pruned by the driver.
func (f *Frontier) WorstDistance() float32 {
	if len(f.entries) < f.width {
		return float32(math.Inf(1))
	}
	return f.entries[len(f.entries)-1].Distance
}

// Contains reports whether id is currently in the frontier.
func (f *Frontier) Contains(id uint32) bool {
	for i := range f.entries {
		if f.entries[i].ID == id {
			return true
		}
	}
	return false
}

// Insert offers c to the frontier. When full, c replaces the current worst
// entry iff c sorts before it. Reports whether c was admitted.
func (f *Frontier) Insert(c Candidate) bool {
	return f.insert(c, false)
}

// InsertInjected places a catapult re-injection into the frontier,
// unconditionally evicting the current worst entry when full: the beam
// gives up its worst slot to revisit history, which is what lets a
// trajectory point worse than everything retained re-enter the search.
// Injected entries are expanded like any other but their expansion is not
// recorded in the trajectory ring again.
func (f *Frontier) InsertInjected(c Candidate) {
	if len(f.entries) == f.width {
		f.entries = f.entries[:len(f.entries)-1]
	}
	f.insert(c, true)
}

func (f *Frontier) insert(c Candidate, injected bool) bool {
	idx := sort.Search(len(f.entries), func(i int) bool {
		return !Better(f.entries[i].Candidate, c)
	})

	if len(f.entries) < f.width {
		f.entries = append(f.entries, frontierEntry{})
	} else {
		if idx == len(f.entries) {
			return false
		}
		// Evict the worst; idx stays valid because it precedes the tail.
	}

	copy(f.entries[idx+1:], f.entries[idx:])
	f.entries[idx] = frontierEntry{Candidate: c, injected: injected}
	return true
}

// PopNextUnexpanded returns the best entry whose expanded flag is unset and
// marks it expanded in place. The second result reports whether the entry
// was a catapult re-injection. Returns ok=false when every entry has been
// expanded.
func (f *Frontier) PopNextUnexpanded() (c Candidate, injected bool, ok bool) {
	for i := range f.entries {
		if !f.entries[i].expanded {
			f.entries[i].expanded = true
			return f.entries[i].Candidate, f.entries[i].injected, true
		}
	}
	return Candidate{}, false, false
}

// BestUnexpandedDistance returns the smallest distance among unexpanded
// entries, used by the termination test. Returns ok=false when none remain.
func (f *Frontier) BestUnexpandedDistance() (float32, bool) {
	for i := range f.entries {
		if !f.entries[i].expanded {
			return f.entries[i].Distance, true
		}
	}
	return 0, false
}
