package memory

import (
	"context"

	domain "github.com/ireum-lab/api/internal/domain"
	"github.com/ireum-lab/api/internal/repositories"
)

// NameStat is one stored given-name combination with its per-character
// stroke counts.
type NameStat struct {
	Hangul  string
	Hanja   string
	Strokes []int
}

// StatsRepository is the scan implementation of the stats port: it keeps
// every combination grouped by length and post-filters per request.
type StatsRepository struct {
	byLength map[int][]NameStat
}

// NewStatsRepository groups the stored combinations by rune length.
func NewStatsRepository(stats []NameStat) *StatsRepository {
	r := &StatsRepository{byLength: make(map[int][]NameStat)}
	for _, s := range stats {
		n := len([]rune(s.Hangul))
		r.byLength[n] = append(r.byLength[n], s)
	}
	return r
}

// Combinations implements repositories.StatsRepository by scanning all
// combinations of the requested length and filtering post hoc.
func (r *StatsRepository) Combinations(_ context.Context, blocks []domain.NameBlock, allow domain.StrokeTupleSet) ([]domain.NameCombination, error) {
	var out []domain.NameCombination
	for _, s := range r.byLength[len(blocks)] {
		if allow != nil && !allow.Contains(domain.NewStrokeTuple(s.Strokes)) {
			continue
		}
		if !repositories.MatchesBlocks(s.Hangul, s.Hanja, blocks) {
			continue
		}
		out = append(out, domain.NameCombination{Hangul: s.Hangul, Hanja: s.Hanja})
	}
	repositories.SortCombinations(out)
	return out, nil
}
