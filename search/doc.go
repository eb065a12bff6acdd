// Package search implements the beam-search query engine over a loaded
// proximity graph: seeding from the entry points, best-first expansion
// through the SIMD distance kernel, and the catapult re-injection that
// pulls the beam out of local basins by revisiting its own trajectory.
package search
