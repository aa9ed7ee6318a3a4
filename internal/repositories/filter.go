package repositories

import (
	"sort"

	domain "github.com/ireum-lab/api/internal/domain"
	"github.com/ireum-lab/api/internal/platform/hangul"
)

// MatchesBlocks checks one candidate against every positional filter.
// Shared by both backends so scan and indexed filtering agree on
// semantics.
func MatchesBlocks(hangulStr, hanjaStr string, blocks []domain.NameBlock) bool {
	hangulRunes := []rune(hangulStr)
	hanjaRunes := []rune(hanjaStr)
	if len(hangulRunes) != len(blocks) || len(hanjaRunes) != len(blocks) {
		return false
	}
	for i, b := range blocks {
		if b.Hanja != "" && string(hanjaRunes[i]) != b.Hanja {
			return false
		}
		switch b.Kind {
		case domain.FilterComplete:
			if string(hangulRunes[i]) != b.Hangul {
				return false
			}
		case domain.FilterOnset:
			if string(hangul.Onset(hangulRunes[i])) != b.Hangul {
				return false
			}
		case domain.FilterNucleus:
			if string(hangul.Nucleus(hangulRunes[i])) != b.Hangul {
				return false
			}
		case domain.FilterWildcard:
			// Any syllable matches.
		}
	}
	return true
}

// SortCombinations orders candidates by hangul then hanja ascending, the
// generation-order contract shared by every backend.
func SortCombinations(combos []domain.NameCombination) {
	sort.Slice(combos, func(i, j int) bool {
		if combos[i].Hangul != combos[j].Hangul {
			return combos[i].Hangul < combos[j].Hangul
		}
		return combos[i].Hanja < combos[j].Hanja
	})
}
