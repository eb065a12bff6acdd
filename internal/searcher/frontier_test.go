package searcher

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFrontier_InsertSorted(t *testing.T) {
	f := NewFrontier(4)

	require.True(t, f.Insert(Candidate{ID: 3, Distance: 3.0}))
	require.True(t, f.Insert(Candidate{ID: 1, Distance: 1.0}))
	require.True(t, f.Insert(Candidate{ID: 2, Distance: 2.0}))

	require.Equal(t, 3, f.Len())
	require.True(t, math.IsInf(float64(f.WorstDistance()), 1), "not full yet")

	c, injected, ok := f.PopNextUnexpanded()
	require.True(t, ok)
	require.False(t, injected)
	require.Equal(t, uint32(1), c.ID)
}

func TestFrontier_EvictsWorstWhenFull(t *testing.T) {
	f := NewFrontier(2)

	f.Insert(Candidate{ID: 1, Distance: 1.0})
	f.Insert(Candidate{ID: 2, Distance: 2.0})
	require.Equal(t, float32(2.0), f.WorstDistance())

	// Worse than worst: dropped.
	require.False(t, f.Insert(Candidate{ID: 3, Distance: 3.0}))
	require.Equal(t, 2, f.Len())

	// Better: evicts id 2.
	require.True(t, f.Insert(Candidate{ID: 4, Distance: 1.5}))
	require.Equal(t, 2, f.Len())
	require.Equal(t, float32(1.5), f.WorstDistance())
	require.False(t, f.Contains(2))
	require.True(t, f.Contains(4))
}

func TestFrontier_PopOrderAndExpansion(t *testing.T) {
	f := NewFrontier(3)
	f.Insert(Candidate{ID: 10, Distance: 5.0})
	f.Insert(Candidate{ID: 20, Distance: 1.0})
	f.Insert(Candidate{ID: 30, Distance: 3.0})

	var order []uint32
	for {
		c, _, ok := f.PopNextUnexpanded()
		if !ok {
			break
		}
		order = append(order, c.ID)
	}
	require.Equal(t, []uint32{20, 30, 10}, order)

	// Entries stay in the frontier after expansion.
	require.Equal(t, 3, f.Len())
	_, hasUnexpanded := f.BestUnexpandedDistance()
	require.False(t, hasUnexpanded)
}

func TestFrontier_TieBreakSmallerID(t *testing.T) {
	f := NewFrontier(4)
	f.Insert(Candidate{ID: 7, Distance: 1.0})
	f.Insert(Candidate{ID: 2, Distance: 1.0})
	f.Insert(Candidate{ID: 5, Distance: 1.0})

	c, _, _ := f.PopNextUnexpanded()
	require.Equal(t, uint32(2), c.ID)
	c, _, _ = f.PopNextUnexpanded()
	require.Equal(t, uint32(5), c.ID)
	c, _, _ = f.PopNextUnexpanded()
	require.Equal(t, uint32(7), c.ID)
}

func TestFrontier_TieEvictionDropsLargerID(t *testing.T) {
	f := NewFrontier(2)
	f.Insert(Candidate{ID: 7, Distance: 1.0})
	f.Insert(Candidate{ID: 9, Distance: 1.0})

	// Same distance, smaller id: sorts before 9, which gets evicted.
	require.True(t, f.Insert(Candidate{ID: 3, Distance: 1.0}))
	require.True(t, f.Contains(3))
	require.True(t, f.Contains(7))
	require.False(t, f.Contains(9))
}

func TestFrontier_InjectedFlag(t *testing.T) {
	f := NewFrontier(2)
	f.InsertInjected(Candidate{ID: 1, Distance: 1.0})
	f.Insert(Candidate{ID: 2, Distance: 2.0})

	c, injected, ok := f.PopNextUnexpanded()
	require.True(t, ok)
	require.True(t, injected)
	require.Equal(t, uint32(1), c.ID)

	c, injected, ok = f.PopNextUnexpanded()
	require.True(t, ok)
	require.False(t, injected)
	require.Equal(t, uint32(2), c.ID)
}

func TestFrontier_InjectedEvictsWorstUnconditionally(t *testing.T) {
	f := NewFrontier(2)
	f.Insert(Candidate{ID: 1, Distance: 1.0})
	f.Insert(Candidate{ID: 2, Distance: 2.0})

	// A normal insert this bad would be dropped; an injection lands by
	// sacrificing the worst slot.
	require.False(t, f.Insert(Candidate{ID: 8, Distance: 9.0}))
	f.InsertInjected(Candidate{ID: 9, Distance: 9.0})

	require.Equal(t, 2, f.Len())
	require.True(t, f.Contains(1))
	require.True(t, f.Contains(9))
	require.False(t, f.Contains(2))
	require.Equal(t, float32(9.0), f.WorstDistance())
}

func TestFrontier_BestUnexpandedDistance(t *testing.T) {
	f := NewFrontier(3)
	f.Insert(Candidate{ID: 1, Distance: 1.0})
	f.Insert(Candidate{ID: 2, Distance: 2.0})

	d, ok := f.BestUnexpandedDistance()
	require.True(t, ok)
	require.Equal(t, float32(1.0), d)

	f.PopNextUnexpanded()

	d, ok = f.BestUnexpandedDistance()
	require.True(t, ok)
	require.Equal(t, float32(2.0), d)
}

func TestFrontier_BoundInvariant(t *testing.T) {
	const width = 8
	f := NewFrontier(width)
	rng := rand.New(rand.NewSource(3))

	for i := 0; i < 1000; i++ {
		f.Insert(Candidate{ID: uint32(i), Distance: rng.Float32()})
		require.LessOrEqual(t, f.Len(), width)
	}
	require.Equal(t, width, f.Len())
}

func TestFrontier_Reset(t *testing.T) {
	f := NewFrontier(2)
	f.Insert(Candidate{ID: 1, Distance: 1.0})
	f.Reset(4)

	require.Equal(t, 0, f.Len())
	require.Equal(t, 4, f.Width())
	require.False(t, f.Contains(1))
}
