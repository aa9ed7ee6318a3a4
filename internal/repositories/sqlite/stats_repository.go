package sqlite

import (
	"context"
	"fmt"
	"strings"

	domain "github.com/ireum-lab/api/internal/domain"
	"github.com/ireum-lab/api/internal/repositories"
)

// StatsRepository is the indexed implementation of the stats port:
// length, complete-syllable, and hanja filters run as field equality in
// SQL; jamo filters and the stroke allow-set are applied post hoc.
type StatsRepository struct {
	store *Store
}

// NewStatsRepository wraps the shared store.
func NewStatsRepository(store *Store) *StatsRepository {
	return &StatsRepository{store: store}
}

// Combinations implements repositories.StatsRepository.
func (r *StatsRepository) Combinations(ctx context.Context, blocks []domain.NameBlock, allow domain.StrokeTupleSet) ([]domain.NameCombination, error) {
	if len(blocks) == 0 || len(blocks) > domain.MaxGivenNameLength {
		return nil, nil
	}

	var (
		where = []string{"length = ?"}
		args  = []any{len(blocks)}
	)
	for i, b := range blocks {
		if b.Kind == domain.FilterComplete {
			where = append(where, fmt.Sprintf("h%d = ?", i+1))
			args = append(args, b.Hangul)
		}
		if b.Hanja != "" {
			where = append(where, fmt.Sprintf("j%d = ?", i+1))
			args = append(args, b.Hanja)
		}
	}

	query := fmt.Sprintf(`SELECT hangul, hanja, s1, s2, s3, s4 FROM name_stats
		WHERE %s ORDER BY hangul ASC, hanja ASC`, strings.Join(where, " AND "))
	rows, err := r.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, unavailable(fmt.Errorf("sqlite: stats query: %w", err))
	}
	defer rows.Close()

	var out []domain.NameCombination
	for rows.Next() {
		var (
			combo   domain.NameCombination
			strokes [domain.MaxGivenNameLength]int
		)
		if err := rows.Scan(&combo.Hangul, &combo.Hanja, &strokes[0], &strokes[1], &strokes[2], &strokes[3]); err != nil {
			return nil, unavailable(fmt.Errorf("sqlite: stats scan: %w", err))
		}
		if allow != nil && !allow.Contains(domain.StrokeTuple(strokes)) {
			continue
		}
		if !repositories.MatchesBlocks(combo.Hangul, combo.Hanja, blocks) {
			continue
		}
		out = append(out, combo)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable(fmt.Errorf("sqlite: stats rows: %w", err))
	}
	repositories.SortCombinations(out)
	return out, nil
}
