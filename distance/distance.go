// Package distance provides the public API for vector distance calculations.
// The implementation lives in internal/simd and processes vectors in
// fixed-width lanes; dimensionality must be a multiple of LaneCount.
package distance

import (
	"github.com/MRandl/catapult-db/internal/simd"
)

// LaneCount is the number of parallel lanes the kernel reduces over.
// Corpus dimensionality must be a multiple of LaneCount.
const LaneCount = simd.Lanes

// SquaredL2 calculates the squared L2 (Euclidean) distance between two
// vectors. Both slices must have the same length, a multiple of LaneCount;
// this is the caller's responsibility and validated by the stores at load
// time, not here.
func SquaredL2(a, b []float32) float32 {
	return simd.SquaredL2(a, b)
}

// Func is a function type for distance calculation.
type Func func(a, b []float32) float32
