package calculators

import (
	domain "github.com/ireum-lab/api/internal/domain"
)

// HanjaCalculator scores two stroke-derived sub-frames: the five-element
// arrangement from each character's stroke element, and the yin/yang
// arrangement from odd/even stroke parity.
type HanjaCalculator struct {
	elementWeight  float64
	polarityWeight float64
}

// NewHanjaCalculator returns the stroke frame scorer with default weights.
func NewHanjaCalculator() *HanjaCalculator {
	return &HanjaCalculator{
		elementWeight:  weightHanjaElement,
		polarityWeight: weightHanjaPolarity,
	}
}

// Frame implements Calculator.
func (c *HanjaCalculator) Frame() domain.FrameID { return domain.FrameHanjaElement }

// Visit implements Calculator.
func (c *HanjaCalculator) Visit(ctx *domain.EvalContext, name domain.ResolvedName) {
	entries := name.Entries()
	elems := make([]domain.Element, len(entries))
	polarities := make([]domain.Polarity, len(entries))
	for i, e := range entries {
		elems[i] = e.StrokeElement
		polarities[i] = domain.PolarityFromStrokes(e.Strokes)
	}

	c.visitElement(ctx, elems)
	c.visitPolarity(ctx, polarities)
}

func (c *HanjaCalculator) visitElement(ctx *domain.EvalContext, elems []domain.Element) {
	adj := scoreAdjacency(elems, boundaryPair(ctx.SurnameLen))
	balance, deviation := scoreBalance(elems)
	combined := (adj.score + balance) / 2

	share := dominantShare(elems)
	passed := share <= dominantShareLimit &&
		!adj.hasOvercoming &&
		adj.score >= adjacencyThreshold(len(elems)) &&
		combined >= minimumFrameScore

	ctx.PutInsight(domain.FrameInsight{
		Frame:       domain.FrameHanjaElement,
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
		},
	})
}

// Polarity sub-frame scoring: a fixed base plus a bracket bonus keyed by
// how close the yang/yin split is to even.
const polarityBase = 60

var polaritySplitBonus = []int{40, 30, 15}

const polaritySplitFloor = 5

func (c *HanjaCalculator) visitPolarity(ctx *domain.EvalContext, polarities []domain.Polarity) {
	var yang int
	for _, p := range polarities {
		if p == domain.PolarityYang {
			yang++
		}
	}
	yin := len(polarities) - yang

	diff := yang - yin
	if diff < 0 {
		diff = -diff
	}
	bonus := polaritySplitFloor
	if diff < len(polaritySplitBonus) {
		bonus = polaritySplitBonus[diff]
	}
	score := clampScore(polarityBase + bonus)

	bothPresent := yang > 0 && yin > 0
	passed := bothPresent
	if ctx.SurnameLen == 1 && len(polarities) >= 2 {
		// Single-character surnames additionally reject identical
		// first/last polarity.
		if polarities[0] == polarities[len(polarities)-1] {
			passed = false
		}
	}

	ctx.PutInsight(domain.FrameInsight{
		Frame:       domain.FrameHanjaPolarity,
		Score:       score,
		Passed:      passed,
		Arrangement: polarityString(polarities),
		Details: map[string]any{
			"yangCount":    yang,
			"yinCount":     yin,
			"bothPresent":  bothPresent,
			"splitBonus":   bonus,
			"edgePolarity": len(polarities) >= 2 && polarities[0] == polarities[len(polarities)-1],
		},
	})
}

// Backward implements Calculator: the element signal is load-bearing, the
// polarity signal carries a reduced weight.
func (c *HanjaCalculator) Backward(ctx *domain.EvalContext, _ []domain.CalculatorPacket) domain.CalculatorPacket {
	elem, _ := ctx.Insight(domain.FrameHanjaElement)
	pol, _ := ctx.Insight(domain.FrameHanjaPolarity)
	return domain.CalculatorPacket{
		{
			Frame:  domain.FrameHanjaElement,
			Score:  float64(elem.Score),
			Passed: elem.Passed,
			Weight: c.elementWeight,
		},
		{
			Frame:  domain.FrameHanjaPolarity,
			Score:  float64(pol.Score),
			Passed: pol.Passed,
			Weight: c.polarityWeight,
		},
	}
}
