package calculators

import (
	domain "github.com/ireum-lab/api/internal/domain"
	"github.com/ireum-lab/api/internal/naming/tables"
	"github.com/ireum-lab/api/internal/platform/hangul"
)

// HangulCalculator scores the phonetic five-element arrangement: each
// syllable's onset maps to an element and its vowel class to a polarity.
type HangulCalculator struct {
	weight float64
}

// NewHangulCalculator returns the phonetic frame scorer with its default
// signal weight.
func NewHangulCalculator() *HangulCalculator {
	return &HangulCalculator{weight: weightHangulElement}
}

// Frame implements Calculator.
func (c *HangulCalculator) Frame() domain.FrameID { return domain.FrameHangulElement }

// Visit implements Calculator.
func (c *HangulCalculator) Visit(ctx *domain.EvalContext, name domain.ResolvedName) {
	entries := name.Entries()
	elems := make([]domain.Element, len(entries))
	polarities := make([]domain.Polarity, len(entries))
	for i, e := range entries {
		elems[i] = phoneticElement(e)
		polarities[i] = phoneticPolarity(e)
	}

	adj := scoreAdjacency(elems, boundaryPair(ctx.SurnameLen))
	balance, deviation := scoreBalance(elems)
	combined := (adj.score + balance) / 2

	share := dominantShare(elems)
	harmony := polarityHarmonious(polarities)
	passed := share <= dominantShareLimit &&
		!adj.hasOvercoming &&
		adj.score >= adjacencyThreshold(len(elems)) &&
		combined >= minimumFrameScore

	ctx.PutInsight(domain.FrameInsight{
		Frame:       domain.FrameHangulElement,
		Score:       clampScore(combined),
		Passed:      passed,
		Arrangement: arrangementString(elems),
		Details: map[string]any{
			"adjacencyScore":  adj.score,
			"balanceScore":    balance,
			"deviation":       deviation,
			"hasOvercoming":   adj.hasOvercoming,
			"generatingPairs": adj.generating,
			"dominantShare":   share,
			"polarities":      polarityString(polarities),
			"polarityHarmony": harmony,
		},
	})
}

// Backward implements Calculator.
func (c *HangulCalculator) Backward(ctx *domain.EvalContext, _ []domain.CalculatorPacket) domain.CalculatorPacket {
	in, _ := ctx.Insight(domain.FrameHangulElement)
	return domain.CalculatorPacket{{
		Frame:  domain.FrameHangulElement,
		Score:  float64(in.Score),
		Passed: in.Passed,
		Weight: c.weight,
	}}
}

// phoneticElement derives the element from the syllable's onset, falling
// back to the dictionary's phonetic element for non-syllable readings.
func phoneticElement(entry domain.HanjaEntry) domain.Element {
	runes := []rune(entry.Hangul)
	if len(runes) == 1 {
		if onset := hangul.Onset(runes[0]); onset != 0 {
			return tables.OnsetElement(onset)
		}
	}
	return entry.PhoneticElement
}

// phoneticPolarity derives yin/yang from the vowel class, falling back to
// the dictionary bit for non-syllable readings.
func phoneticPolarity(entry domain.HanjaEntry) domain.Polarity {
	runes := []rune(entry.Hangul)
	if len(runes) == 1 && hangul.IsSyllable(runes[0]) {
		if hangul.NucleusIsYang(runes[0]) {
			return domain.PolarityYang
		}
		return domain.PolarityYin
	}
	return entry.PhoneticPolarity
}

// polarityHarmonious requires both polarities present in names of two or
// more characters; a single character is trivially harmonious.
func polarityHarmonious(ps []domain.Polarity) bool {
	if len(ps) < 2 {
		return true
	}
	var yin, yang bool
	for _, p := range ps {
		if p == domain.PolarityYang {
			yang = true
		} else {
			yin = true
		}
	}
	return yin && yang
}
