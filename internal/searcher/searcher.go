package searcher

import (
	"sync"
)

// Searcher is a reusable execution context for one in-flight query. It owns
// all per-query scratch state, so the steady state of a worker allocates
// nothing.
//
// Searcher is NOT thread-safe. It is intended to be owned by a single
// goroutine for the duration of a search.
type Searcher struct {
	// Visited tracks distance-computed nodes and caches their distances.
	Visited *Visited

	// Frontier is the bounded best-first beam.
	Frontier *Frontier

	// Results keeps the best-k candidates seen so far.
	Results *ResultHeap

	// Trajectory records the expansion history for catapult re-injection.
	Trajectory *Trajectory

	// ScratchResults is a reusable buffer for assembling the final sorted
	// output.
	ScratchResults []Candidate
}

const (
	defaultVisitedCap = 1024
	defaultWidth      = 128
	defaultK          = 16
	defaultRingCap    = 512
)

var searcherPool = sync.Pool{
	New: func() any {
		return New(defaultVisitedCap, defaultWidth, defaultK, defaultRingCap)
	},
}

// New creates a searcher with the given initial capacities. All structures
// grow or re-shape on Reset, so the values only size the first allocation.
func New(visitedCap, width, k, ringCap int) *Searcher {
	return &Searcher{
		Visited:        NewVisited(visitedCap),
		Frontier:       NewFrontier(width),
		Results:        NewResultHeap(k),
		Trajectory:     NewTrajectory(ringCap),
		ScratchResults: make([]Candidate, 0, k),
	}
}

// Get returns a searcher from the pool.
func Get() *Searcher {
	return searcherPool.Get().(*Searcher)
}

// Put returns a searcher to the pool.
func Put(s *Searcher) {
	searcherPool.Put(s)
}

// Reset prepares the searcher for a new query with the given parameters:
// the visited generation is bumped, the frontier re-shaped to width, the
// result heap to k, and the trajectory ring to ringCap.
func (s *Searcher) Reset(width, k, ringCap int) {
	s.Visited.Reset()
	s.Frontier.Reset(width)
	s.Results.Reset(k)
	s.Trajectory.Reset(ringCap)
	s.ScratchResults = s.ScratchResults[:0]
}
