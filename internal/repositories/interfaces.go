// Package repositories declares the read-only data ports the naming core
// depends on. Implementations live in subpackages (memory scan, sqlite
// indexed store) and must stay interchangeable: the same inputs produce
// the same result sets regardless of backend.
package repositories

import (
	"context"

	domain "github.com/ireum-lab/api/internal/domain"
)

// HanjaRepository resolves hanja character metadata and surname membership.
type HanjaRepository interface {
	// GetHanjaInfo resolves a (hangul, hanja) pair with fallback
	// semantics: exact match first, then hanja-only match, then the
	// deterministic fallback entry. It never fails; names with unknown
	// characters must still score. isSurname prefers surname-flagged
	// entries when a reading is ambiguous.
	GetHanjaInfo(ctx context.Context, hangulStr, hanjaStr string, isSurname bool) domain.HanjaEntry

	// IsSurname reports membership of the pair in the surname set,
	// including multi-character compound surnames.
	IsSurname(ctx context.Context, hangulStr, hanjaStr string) bool

	// SurnameEntries lists the surname-flagged entries for a hangul
	// reading, used to resolve wildcard-hanja surname blocks. Order is
	// hanja ascending.
	SurnameEntries(ctx context.Context, hangulStr string) []domain.HanjaEntry

	// DecomposeSurname splits a multi-character surname into aligned
	// per-character pairs.
	DecomposeSurname(ctx context.Context, hangulStr, hanjaStr string) ([]domain.SurnamePair, error)
}

// StatsRepository returns every stored name combination consistent with
// the given-name blocks and, when allow is non-nil, whose stroke tuple is
// in the allow set.
//
// Implementations may filter by indexed field equality or scan all
// combinations of the same length; both must yield the same set, ordered
// by hangul then hanja ascending.
type StatsRepository interface {
	Combinations(ctx context.Context, blocks []domain.NameBlock, allow domain.StrokeTupleSet) ([]domain.NameCombination, error)
}
