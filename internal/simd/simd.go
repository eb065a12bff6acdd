// Package simd provides the lane-parallel float32 kernels used by the
// distance package. This is an internal package - external users should use
// the distance package.
package simd

// Lanes is the number of parallel accumulator lanes. Vector dimensionality
// must be a multiple of Lanes; the payload store enforces this at load time.
const Lanes = 8

// SquaredL2 computes the squared Euclidean distance between a and b.
// Both slices must have the same length, a multiple of Lanes. The kernel
// processes Lanes elements per iteration with independent accumulators and
// reduces them with a pairwise horizontal sum.
func SquaredL2(a, b []float32) float32 {
	var s0, s1, s2, s3, s4, s5, s6, s7 float32

	b = b[:len(a)]
	for i := 0; i <= len(a)-Lanes; i += Lanes {
		d0 := a[i] - b[i]
		d1 := a[i+1] - b[i+1]
		d2 := a[i+2] - b[i+2]
		d3 := a[i+3] - b[i+3]
		d4 := a[i+4] - b[i+4]
		d5 := a[i+5] - b[i+5]
		d6 := a[i+6] - b[i+6]
		d7 := a[i+7] - b[i+7]

		s0 += d0 * d0
		s1 += d1 * d1
		s2 += d2 * d2
		s3 += d3 * d3
		s4 += d4 * d4
		s5 += d5 * d5
		s6 += d6 * d6
		s7 += d7 * d7
	}

	return ((s0 + s4) + (s1 + s5)) + ((s2 + s6) + (s3 + s7))
}

// SquaredL2Generic is the scalar reference implementation.
// It is kept for correctness testing of the lane-unrolled kernel.
func SquaredL2Generic(a, b []float32) float32 {
	var distance float32
	for i := range a {
		distance += (a[i] - b[i]) * (a[i] - b[i])
	}

	return distance
}
