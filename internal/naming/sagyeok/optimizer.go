// Package sagyeok implements four-frame (won/hyeong/i/jeong) numerology:
// frame-sum derivation, [1,81] normalization, and a memoized enumeration
// of the stroke-count assignments a surname admits.
package sagyeok

import (
	"errors"
	"fmt"
	"sync"

	domain "github.com/ireum-lab/api/internal/domain"
)

// ErrUnsupportedLength indicates a given-name length outside [1,4]; a
// programming error on the caller's side, not a data-quality issue.
var ErrUnsupportedLength = errors.New("sagyeok: unsupported given-name length")

const (
	// maxStrokes is the practical upper bound for a single character.
	maxStrokes = 81

	strokeSearchMax = 40
)

// Frames holds the four derived frame sums, already normalized into [1,81].
type Frames struct {
	Won    int
	Hyeong int
	I      int
	Jeong  int
}

// Sums returns the frames in won/hyeong/i/jeong order.
func (f Frames) Sums() [4]int {
	return [4]int{f.Won, f.Hyeong, f.I, f.Jeong}
}

// Normalize folds a frame sum into [1,81]: ((v-1) mod 81) + 1, defined
// for every integer including non-positive ones.
func Normalize(v int) int {
	m := (v - 1) % maxStrokes
	if m < 0 {
		m += maxStrokes
	}
	return m + 1
}

// DeriveFrames computes the four normalized frame sums for a surname and
// given-name stroke assignment. A single-character given name has a
// virtual zero appended before the upper/lower split so both halves are
// defined.
func DeriveFrames(surnameStrokes, givenStrokes []int) Frames {
	surTotal := 0
	for _, s := range surnameStrokes {
		surTotal += s
	}
	givenTotal := 0
	for _, s := range givenStrokes {
		givenTotal += s
	}

	padded := givenStrokes
	if len(padded) == 1 {
		padded = []int{padded[0], 0}
	}
	upperTotal := 0
	for _, s := range padded[:len(padded)/2] {
		upperTotal += s
	}
	lowerTotal := 0
	for _, s := range padded[len(padded)/2:] {
		lowerTotal += s
	}

	return Frames{
		Won:    Normalize(givenTotal),
		Hyeong: Normalize(surTotal + upperTotal),
		I:      Normalize(surTotal + lowerTotal),
		Jeong:  Normalize(surTotal + givenTotal),
	}
}

// Optimizer enumerates valid stroke-count assignments against a lucky
// number set and memoizes the result per (surname strokes, length) pair.
// The cache is populate-once, read-many: concurrent searches may race to
// compute the same entry, which is harmless because the computation is
// deterministic.
type Optimizer struct {
	lucky map[int]struct{}

	mu    sync.RWMutex
	cache map[cacheKey]domain.StrokeTupleSet
}

type cacheKey struct {
	surname domain.StrokeTuple
	length  int
}

// NewOptimizer builds an optimizer over the supplied lucky-number set.
func NewOptimizer(lucky map[int]struct{}) *Optimizer {
	set := make(map[int]struct{}, len(lucky))
	for n := range lucky {
		set[n] = struct{}{}
	}
	return &Optimizer{
		lucky: set,
		cache: make(map[cacheKey]domain.StrokeTupleSet),
	}
}

func (o *Optimizer) isLucky(n int) bool {
	_, ok := o.lucky[n]
	return ok
}

// IsValid reports whether a concrete stroke assignment clears all four
// frame checks. The i frame only constrains multi-character given names.
func (o *Optimizer) IsValid(surnameStrokes, givenStrokes []int) bool {
	if len(givenStrokes) == 0 || len(givenStrokes) > domain.MaxGivenNameLength {
		return false
	}
	f := DeriveFrames(surnameStrokes, givenStrokes)
	if !o.isLucky(f.Won) || !o.isLucky(f.Hyeong) || !o.isLucky(f.Jeong) {
		return false
	}
	if len(givenStrokes) > 1 && !o.isLucky(f.I) {
		return false
	}
	return true
}

// ValidTuples returns every stroke assignment in [1,40]^length whose four
// normalized frame sums are all lucky. Results are memoized; repeated
// calls for the same surname/length are O(1) after the first.
func (o *Optimizer) ValidTuples(surnameStrokes []int, length int) (domain.StrokeTupleSet, error) {
	if length < 1 || length > domain.MaxGivenNameLength {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedLength, length)
	}

	key := cacheKey{surname: domain.NewStrokeTuple(surnameStrokes), length: length}

	o.mu.RLock()
	cached, ok := o.cache[key]
	o.mu.RUnlock()
	if ok {
		return cached, nil
	}

	valid := make(domain.StrokeTupleSet)
	assignment := make([]int, length)
	o.enumerate(surnameStrokes, assignment, 0, valid)

	o.mu.Lock()
	// A concurrent caller may have stored the same entry; both copies are
	// identical, keep whichever is already present.
	if existing, ok := o.cache[key]; ok {
		valid = existing
	} else {
		o.cache[key] = valid
	}
	o.mu.Unlock()

	return valid, nil
}

// enumerate walks the stroke assignment space depth first. Worst case is
// 40^n before the validity check; memoization in ValidTuples is what
// keeps repeated surname searches tractable for n >= 3.
func (o *Optimizer) enumerate(surnameStrokes, assignment []int, pos int, out domain.StrokeTupleSet) {
	if pos == len(assignment) {
		if o.IsValid(surnameStrokes, assignment) {
			out[domain.NewStrokeTuple(assignment)] = struct{}{}
		}
		return
	}
	for s := 1; s <= strokeSearchMax; s++ {
		assignment[pos] = s
		o.enumerate(surnameStrokes, assignment, pos+1, out)
	}
	assignment[pos] = 0
}

// CacheSize reports the number of memoized surname/length entries.
func (o *Optimizer) CacheSize() int {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return len(o.cache)
}
