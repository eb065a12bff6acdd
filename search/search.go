package search

import (
	"github.com/MRandl/catapult-db/distance"
	"github.com/MRandl/catapult-db/internal/searcher"
	"github.com/MRandl/catapult-db/store"
)

// Params are the per-call knobs of one search.
type Params struct {
	// K is the number of results to return.
	K int

	// BeamWidth bounds the candidate frontier. Must be >= K.
	BeamWidth int

	// Catapults enables trajectory re-injection.
	Catapults bool

	// TrajectoryCap is the catapult ring capacity. Zero selects the
	// default of 4x the beam width.
	TrajectoryCap int

	// ReinjectCount is the number of trajectory entries offered per
	// stall. Zero selects the default of max(1, BeamWidth/8).
	ReinjectCount int
}

func (p Params) trajectoryCap() int {
	if p.TrajectoryCap > 0 {
		return p.TrajectoryCap
	}
	return 4 * p.BeamWidth
}

func (p Params) reinjectCount() int {
	if p.ReinjectCount > 0 {
		return p.ReinjectCount
	}
	return max(1, p.BeamWidth/8)
}

// Result is one returned neighbor.
type Result struct {
	ID       uint32
	Distance float32
}

// Engine runs beam searches over one graph + payload pair. The stores are
// borrowed, immutable, and shared; an Engine is safe for concurrent use as
// long as each call owns its Searcher exclusively.
type Engine struct {
	payload *store.Payload
	graph   *store.Graph
	entries []uint32
}

// NewEngine pairs a payload with a graph, verifying they describe the same
// corpus.
func NewEngine(payload *store.Payload, graph *store.Graph) (*Engine, error) {
	if payload.Count() != graph.Count() {
		return nil, ErrCountMismatch
	}
	return &Engine{payload: payload, graph: graph, entries: graph.EntryPoints()}, nil
}

// Dim returns the corpus dimensionality.
func (e *Engine) Dim() int { return e.payload.Dim() }

// Count returns the corpus size.
func (e *Engine) Count() int { return e.payload.Count() }

// Search runs one beam search for query and appends up to p.K results to
// dst in (distance, id) ascending order. The searcher s carries all
// mutable state and is reset on entry; stats may be nil.
func (e *Engine) Search(s *searcher.Searcher, query []float32, p Params, stats *Stats, dst []Result) ([]Result, error) {
	if p.K < 1 {
		return nil, ErrInvalidK
	}
	if p.BeamWidth < p.K {
		return nil, ErrBeamTooNarrow
	}
	if len(query) != e.payload.Dim() {
		return nil, &ErrDimensionMismatch{Expected: e.payload.Dim(), Actual: len(query)}
	}

	ringCap := 0
	if p.Catapults {
		ringCap = p.trajectoryCap()
	}
	s.Reset(p.BeamWidth, p.K, ringCap)
	s.Visited.EnsureCapacity(e.graph.Count())

	// Bounds total re-injection work per query; once spent, the search
	// degrades to the plain beam and the usual termination argument
	// applies.
	injectionBudget := ringCap

	if stats == nil {
		stats = &Stats{}
	}
	stats.BeamCalls++
	usedCatapult := false

	// Seed the beam from the entry points.
	for _, ep := range e.entries {
		if !s.Visited.MarkIfNew(ep) {
			continue
		}
		d := distance.SquaredL2(query, e.payload.Vector(ep))
		stats.DistancesComputed++
		s.Visited.SetDistance(ep, d)

		c := searcher.Candidate{ID: ep, Distance: d}
		s.Results.Offer(c)
		s.Frontier.Insert(c)
	}

	graceActive := false
	for {
		best, ok := s.Frontier.BestUnexpandedDistance()
		if !ok {
			break
		}
		// Optimistic prune: nothing unexpanded can improve the top-k.
		// Strict comparison, so a candidate tying the worst result is
		// still expanded. While the previous step injected or expanded a
		// catapult entry, the prune is deferred so the re-injected
		// region gets its chance before the search is declared done.
		if s.Results.Full() && best > s.Results.WorstDistance() && !graceActive {
			break
		}

		curr, wasInjected, _ := s.Frontier.PopNextUnexpanded()
		stats.NodesExpanded++
		if p.Catapults && !wasInjected {
			s.Trajectory.Append(curr.ID, curr.Distance)
		}

		enteredFrontier := false
		for _, nb := range e.graph.Neighbors(curr.ID) {
			if s.Visited.MarkIfNew(nb) {
				d := distance.SquaredL2(query, e.payload.Vector(nb))
				stats.DistancesComputed++
				s.Visited.SetDistance(nb, d)

				c := searcher.Candidate{ID: nb, Distance: d}
				s.Results.Offer(c)
				if d < s.Frontier.WorstDistance() && s.Frontier.Insert(c) {
					enteredFrontier = true
				}
			} else if wasInjected {
				// Expanding a re-injected node re-offers its visited
				// neighbors from the distance cache, so trajectory points
				// whose surroundings were pruned early get a second
				// chance without touching the kernel or the results.
				d := s.Visited.Distance(nb)
				if d < s.Frontier.WorstDistance() && !s.Frontier.Contains(nb) {
					if s.Frontier.Insert(searcher.Candidate{ID: nb, Distance: d}) {
						enteredFrontier = true
					}
				}
			}
		}

		graceActive = wasInjected
		if p.Catapults && !enteredFrontier {
			stats.Stalls++
			if injectionBudget > 0 {
				s.Trajectory.SelectOldest(min(p.reinjectCount(), injectionBudget), func(id uint32, d float32) {
					if s.Frontier.Contains(id) {
						return
					}
					s.Frontier.InsertInjected(searcher.Candidate{ID: id, Distance: d})
					injectionBudget--
					stats.Injections++
					graceActive = true
					usedCatapult = true
				})
			}
		}
	}

	if usedCatapult {
		stats.SearchesWithCatapults++
	}

	s.ScratchResults = s.Results.Sorted(s.ScratchResults[:0])
	for _, c := range s.ScratchResults {
		dst = append(dst, Result{ID: c.ID, Distance: c.Distance})
	}
	return dst, nil
}
