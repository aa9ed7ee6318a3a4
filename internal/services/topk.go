package services

import (
	"container/heap"
	"sort"

	domain "github.com/ireum-lab/api/internal/domain"
)

// topK keeps the best capacity candidates seen so far on a min-heap: the
// root is always the weakest retained candidate, so each additional
// candidate costs one comparison plus O(log K) on replacement. Rank order
// is descending score with ties broken by hangul then hanja ascending.
type topK struct {
	capacity int
	heap     candidateHeap
}

func newTopK(capacity int) *topK {
	if capacity < 0 {
		capacity = 0
	}
	return &topK{capacity: capacity, heap: make(candidateHeap, 0, capacity)}
}

// Offer considers one candidate. Candidates weaker than the current
// minimum of a full heap are dropped.
func (t *topK) Offer(resp domain.SeedResponse) {
	if t.capacity == 0 {
		return
	}
	if len(t.heap) < t.capacity {
		heap.Push(&t.heap, resp)
		return
	}
	if weaker(t.heap[0], resp) {
		t.heap[0] = resp
		heap.Fix(&t.heap, 0)
	}
}

// Ranked returns the retained candidates in final rank order.
func (t *topK) Ranked() []domain.SeedResponse {
	out := make([]domain.SeedResponse, len(t.heap))
	copy(out, t.heap)
	sort.Slice(out, func(i, j int) bool {
		return weaker(out[j], out[i])
	})
	return out
}

func (t *topK) Len() int { return len(t.heap) }

// weaker reports whether a ranks strictly below b: lower score first,
// then the later hangul string, then the later hanja string. The same
// comparison drives both heap eviction and the final sort so the two
// agree on every tie.
func weaker(a, b domain.SeedResponse) bool {
	if a.Interpretation.Score != b.Interpretation.Score {
		return a.Interpretation.Score < b.Interpretation.Score
	}
	if a.Name.Hangul != b.Name.Hangul {
		return a.Name.Hangul > b.Name.Hangul
	}
	return a.Name.Hanja > b.Name.Hanja
}

type candidateHeap []domain.SeedResponse

func (h candidateHeap) Len() int           { return len(h) }
func (h candidateHeap) Less(i, j int) bool { return weaker(h[i], h[j]) }
func (h candidateHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *candidateHeap) Push(x any)        { *h = append(*h, x.(domain.SeedResponse)) }
func (h *candidateHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}
