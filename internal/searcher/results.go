package searcher

import (
	"math"
	"sort"
)

// 4-ary heap: shallower than binary for the same size, fewer cache misses
// on the down path.
const heapArity = 4

// ResultHeap collects the best-so-far results of one query: a bounded
// max-heap of capacity k ordered worst-first, so the root is the eviction
// candidate. Ties break by id (larger id evicts first) for deterministic
// runs.
type ResultHeap struct {
	candidates []Candidate
	capacity   int
}

// NewResultHeap creates a result heap with the given capacity.
func NewResultHeap(capacity int) *ResultHeap {
	return &ResultHeap{
		candidates: make([]Candidate, 0, capacity),
		capacity:   capacity,
	}
}

// Reset clears the heap for reuse, adopting a new capacity.
func (h *ResultHeap) Reset(capacity int) {
	h.candidates = h.candidates[:0]
	h.capacity = capacity
	if cap(h.candidates) < capacity {
		h.candidates = make([]Candidate, 0, capacity)
	}
}

// Len returns the number of results currently held.
func (h *ResultHeap) Len() int { return len(h.candidates) }

// Full reports whether the heap holds capacity entries.
func (h *ResultHeap) Full() bool { return len(h.candidates) == h.capacity }

// WorstDistance returns the largest distance held, or +Inf while not full.
func (h *ResultHeap) WorstDistance() float32 {
	if len(h.candidates) < h.capacity {
		return float32(math.Inf(1))
	}
	return h.candidates[0].Distance
}

// Offer inserts c if the heap has room or c beats the current worst entry.
// Reports whether c was admitted.
func (h *ResultHeap) Offer(c Candidate) bool {
	if len(h.candidates) < h.capacity {
		h.push(c)
		return true
	}
	if Better(c, h.candidates[0]) {
		h.candidates[0] = c
		h.down(0)
		return true
	}
	return false
}

// Sorted appends the held results to dst in (distance, id) ascending order
// and returns the extended slice. The heap itself is left untouched.
func (h *ResultHeap) Sorted(dst []Candidate) []Candidate {
	start := len(dst)
	dst = append(dst, h.candidates...)
	out := dst[start:]
	sort.Slice(out, func(i, j int) bool { return Better(out[i], out[j]) })
	return dst
}

func (h *ResultHeap) push(c Candidate) {
	h.candidates = append(h.candidates, c)
	h.up(len(h.candidates) - 1)
}

func (h *ResultHeap) up(j int) {
	item := h.candidates[j]
	for j > 0 {
		i := (j - 1) / heapArity
		if !Worse(item, h.candidates[i]) {
			break
		}
		h.candidates[j] = h.candidates[i]
		j = i
	}
	h.candidates[j] = item
}

func (h *ResultHeap) down(i0 int) {
	n := len(h.candidates)
	i := i0
	item := h.candidates[i]
	for {
		firstChild := heapArity*i + 1
		if firstChild >= n {
			break
		}

		worst := firstChild
		lastChild := min(firstChild+heapArity, n)
		for c := firstChild + 1; c < lastChild; c++ {
			if Worse(h.candidates[c], h.candidates[worst]) {
				worst = c
			}
		}

		if !Worse(h.candidates[worst], item) {
			break
		}
		h.candidates[i] = h.candidates[worst]
		i = worst
	}
	h.candidates[i] = item
}
