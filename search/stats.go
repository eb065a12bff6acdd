package search

// Stats accumulates beam-search counters. A Stats value is owned by one
// worker; Merge combines per-worker values after a parallel run.
type Stats struct {
	// BeamCalls counts search invocations.
	BeamCalls uint64

	// NodesExpanded counts frontier entries popped and expanded.
	NodesExpanded uint64

	// DistancesComputed counts kernel invocations.
	DistancesComputed uint64

	// Stalls counts beam steps in which no neighbor entered the frontier.
	// Only searches with catapults enabled count stalls.
	Stalls uint64

	// Injections counts catapult entries admitted to the frontier.
	Injections uint64

	// SearchesWithCatapults counts searches in which at least one
	// injection was admitted.
	SearchesWithCatapults uint64
}

// Merge adds other's counters into s.
func (s *Stats) Merge(other *Stats) {
	s.BeamCalls += other.BeamCalls
	s.NodesExpanded += other.NodesExpanded
	s.DistancesComputed += other.DistancesComputed
	s.Stalls += other.Stalls
	s.Injections += other.Injections
	s.SearchesWithCatapults += other.SearchesWithCatapults
}
