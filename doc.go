// Package catapultdb answers approximate k-nearest-neighbor queries over a
// fixed corpus of float32 vectors using a precomputed proximity graph.
//
// A DB pairs a memory-mapped payload file (the corpus vectors) with a graph
// metadata file (CSR adjacency plus entry point) and runs best-first beam
// searches over them. The optional catapult mode records each query's own
// expansion trajectory and re-injects old trajectory points into the beam
// when it stalls, which lets the search climb out of local basins that a
// plain beam of the same width cannot leave.
//
// The stores are immutable after Open and shared across any number of
// concurrent Search calls; per-query state is pooled internally.
package catapultdb
