package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	domain "github.com/ireum-lab/api/internal/domain"
	"github.com/ireum-lab/api/internal/platform/requestctx"
	"github.com/ireum-lab/api/internal/repositories"

	"go.uber.org/zap"
)

// HanjaRepository is the indexed implementation of the hanja port.
type HanjaRepository struct {
	store *Store
}

// NewHanjaRepository wraps the shared store.
func NewHanjaRepository(store *Store) *HanjaRepository {
	return &HanjaRepository{store: store}
}

const entryColumns = `hangul, hanja, strokes, stroke_element, resource_element,
	phonetic_element, phonetic_polarity, stroke_polarity, is_surname`

// GetHanjaInfo implements repositories.HanjaRepository. Store failures
// degrade to the fallback entry: missing data never fails an evaluation.
func (r *HanjaRepository) GetHanjaInfo(ctx context.Context, hangulStr, hanjaStr string, isSurname bool) domain.HanjaEntry {
	exact := fmt.Sprintf(`SELECT %s FROM hanja_entries
		WHERE hangul = ? AND hanja = ?
		ORDER BY is_surname = ? DESC, rowid ASC LIMIT 1`, entryColumns)
	if entry, ok := r.queryOne(ctx, exact, hangulStr, hanjaStr, boolInt(isSurname)); ok {
		return entry
	}

	if hanjaStr != "" {
		hanjaOnly := fmt.Sprintf(`SELECT %s FROM hanja_entries
			WHERE hanja = ?
			ORDER BY is_surname = ? DESC, rowid ASC LIMIT 1`, entryColumns)
		if entry, ok := r.queryOne(ctx, hanjaOnly, hanjaStr, boolInt(isSurname)); ok {
			return entry
		}
	}

	return domain.FallbackHanjaEntry(hangulStr, hanjaStr)
}

func (r *HanjaRepository) queryOne(ctx context.Context, query string, args ...any) (domain.HanjaEntry, bool) {
	row := r.store.db.QueryRowContext(ctx, query, args...)
	entry, err := scanEntry(row)
	if err != nil {
		if err != sql.ErrNoRows {
			requestctx.Logger(ctx).Warn("hanja lookup failed", zap.Error(err))
		}
		return domain.HanjaEntry{}, false
	}
	return entry, true
}

// IsSurname implements repositories.HanjaRepository.
func (r *HanjaRepository) IsSurname(ctx context.Context, hangulStr, hanjaStr string) bool {
	const query = `SELECT 1 FROM surname_pairs WHERE hangul = ? AND hanja = ?
		UNION SELECT 1 FROM hanja_entries WHERE hangul = ? AND hanja = ? AND is_surname = 1
		LIMIT 1`
	var one int
	err := r.store.db.QueryRowContext(ctx, query, hangulStr, hanjaStr, hangulStr, hanjaStr).Scan(&one)
	if err != nil {
		if err != sql.ErrNoRows {
			requestctx.Logger(ctx).Warn("surname lookup failed", zap.Error(err))
		}
		return false
	}
	return true
}

// SurnameEntries implements repositories.HanjaRepository.
func (r *HanjaRepository) SurnameEntries(ctx context.Context, hangulStr string) []domain.HanjaEntry {
	query := fmt.Sprintf(`SELECT %s FROM hanja_entries
		WHERE hangul = ? AND is_surname = 1 ORDER BY hanja ASC`, entryColumns)
	rows, err := r.store.db.QueryContext(ctx, query, hangulStr)
	if err != nil {
		requestctx.Logger(ctx).Warn("surname entries query failed", zap.Error(err))
		return nil
	}
	defer rows.Close()

	var out []domain.HanjaEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			requestctx.Logger(ctx).Warn("surname entry scan failed", zap.Error(err))
			return out
		}
		out = append(out, entry)
	}
	return out
}

// DecomposeSurname implements repositories.HanjaRepository; decomposition
// is pure rune pairing and shares the port-level error.
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

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (domain.HanjaEntry, error) {
	var (
		entry                     domain.HanjaEntry
		stroke, resource, phon    int
		phonPolarity, strPolarity int
		surname                   int
	)
	err := row.Scan(&entry.Hangul, &entry.Hanja, &entry.Strokes,
		&stroke, &resource, &phon, &phonPolarity, &strPolarity, &surname)
	if err != nil {
		return domain.HanjaEntry{}, err
	}
	entry.StrokeElement = domain.Element(stroke)
	entry.ResourceElement = domain.Element(resource)
	entry.PhoneticElement = domain.Element(phon)
	entry.PhoneticPolarity = domain.Polarity(phonPolarity)
	entry.StrokePolarity = domain.Polarity(strPolarity)
	entry.IsSurname = surname != 0
	return entry, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
