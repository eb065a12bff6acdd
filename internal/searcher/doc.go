// Package searcher implements the per-query data structures of the beam
// search: the bounded best-first frontier, the bounded result heap, the
// generation-stamped visited filter, and the catapult trajectory ring.
//
// A Searcher bundles one instance of each. Searchers are NOT thread-safe;
// each in-flight query owns one exclusively. They are designed for reuse:
// every structure resets in O(1) or O(entries touched), never O(corpus),
// except the visited filter's one-time full wipe when its generation
// counter wraps.
package searcher
