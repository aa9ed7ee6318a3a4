// Package memory implements the repository ports as in-memory dictionary
// scans. Data is loaded once at construction; all lookups afterwards are
// read-only, so concurrent use needs no locking.
package memory

import (
	"context"
	"fmt"
	"sort"

	domain "github.com/ireum-lab/api/internal/domain"
	"github.com/ireum-lab/api/internal/repositories"
)

type pairKey struct {
	hangul string
	hanja  string
}

// HanjaRepository is a dictionary-scan implementation of the hanja port.
type HanjaRepository struct {
	exact    map[pairKey][]domain.HanjaEntry
	byHanja  map[string][]domain.HanjaEntry
	surnames map[pairKey]struct{}
}

// NewHanjaRepository indexes the dictionary entries and the surname pair
// set. surnamePairs lists every known surname as a (hangul, hanja) pair,
// compound surnames included.
func NewHanjaRepository(entries []domain.HanjaEntry, surnamePairs []domain.SurnamePair) *HanjaRepository {
	r := &HanjaRepository{
		exact:    make(map[pairKey][]domain.HanjaEntry, len(entries)),
		byHanja:  make(map[string][]domain.HanjaEntry),
		surnames: make(map[pairKey]struct{}, len(surnamePairs)),
	}
	for _, e := range entries {
		key := pairKey{hangul: e.Hangul, hanja: e.Hanja}
		r.exact[key] = append(r.exact[key], e)
		r.byHanja[e.Hanja] = append(r.byHanja[e.Hanja], e)
		if e.IsSurname {
			r.surnames[key] = struct{}{}
		}
	}
	for _, p := range surnamePairs {
		r.surnames[pairKey{hangul: p.Hangul, hanja: p.Hanja}] = struct{}{}
	}
	return r
}

// GetHanjaInfo implements repositories.HanjaRepository.
func (r *HanjaRepository) GetHanjaInfo(_ context.Context, hangulStr, hanjaStr string, isSurname bool) domain.HanjaEntry {
	if matches := r.exact[pairKey{hangul: hangulStr, hanja: hanjaStr}]; len(matches) > 0 {
		return pick(matches, isSurname)
	}
	if hanjaStr != "" {
		if matches := r.byHanja[hanjaStr]; len(matches) > 0 {
			return pick(matches, isSurname)
		}
	}
	return domain.FallbackHanjaEntry(hangulStr, hanjaStr)
}

// pick prefers an entry matching the surname flag; otherwise the first
// indexed entry wins, which keeps repeated lookups deterministic.
func pick(matches []domain.HanjaEntry, isSurname bool) domain.HanjaEntry {
	for _, m := range matches {
		if m.IsSurname == isSurname {
			return m
		}
	}
	return matches[0]
}

// IsSurname implements repositories.HanjaRepository.
func (r *HanjaRepository) IsSurname(_ context.Context, hangulStr, hanjaStr string) bool {
	_, ok := r.surnames[pairKey{hangul: hangulStr, hanja: hanjaStr}]
	return ok
}

// SurnameEntries implements repositories.HanjaRepository.
func (r *HanjaRepository) SurnameEntries(_ context.Context, hangulStr string) []domain.HanjaEntry {
	var out []domain.HanjaEntry
	for key, matches := range r.exact {
		if key.hangul != hangulStr {
			continue
		}
		for _, m := range matches {
			if m.IsSurname {
				out = append(out, m)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Hanja < out[j].Hanja })
	return out
}

// DecomposeSurname implements repositories.HanjaRepository.
func (r *HanjaRepository) DecomposeSurname(_ context.Context, hangulStr, hanjaStr string) ([]domain.SurnamePair, error) {
	hangulRunes := []rune(hangulStr)
	hanjaRunes := []rune(hanjaStr)
	if len(hangulRunes) != len(hanjaRunes) || len(hangulRunes) == 0 {
		return nil, fmt.Errorf("%w: %q/%q", repositories.ErrMismatchedSurname, hangulStr, hanjaStr)
	}
	pairs := make([]domain.SurnamePair, len(hangulRunes))
	for i := range hangulRunes {
		pairs[i] = domain.SurnamePair{Hangul: string(hangulRunes[i]), Hanja: string(hanjaRunes[i])}
	}
	return pairs, nil
}
