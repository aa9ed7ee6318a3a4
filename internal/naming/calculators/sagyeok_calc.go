package calculators

import (
	domain "github.com/ireum-lab/api/internal/domain"
	"github.com/ireum-lab/api/internal/naming/sagyeok"
	"github.com/ireum-lab/api/internal/naming/tables"
)

// SagyeokCalculator scores the four-frame numerology: a luck sub-score
// from the fortune tier of each frame sum, and an element sub-score from
// the won/hyeong/i arrangement.
type SagyeokCalculator struct {
	weight float64
}

// NewSagyeokCalculator returns the numerology frame scorer.
func NewSagyeokCalculator() *SagyeokCalculator {
	return &SagyeokCalculator{weight: weightSagyeok}
}

// Frame implements Calculator.
func (c *SagyeokCalculator) Frame() domain.FrameID { return domain.FrameSagyeok }

// Visit implements Calculator.
func (c *SagyeokCalculator) Visit(ctx *domain.EvalContext, name domain.ResolvedName) {
	frames := sagyeok.DeriveFrames(name.SurnameStrokes(), name.GivenStrokes())
	sums := frames.Sums()

	labels := make([]string, len(sums))
	luckScore := 0
	luckValid := true
	for i, sum := range sums {
		label := ctx.Lucky[sum]
		if label == "" {
			label = tables.FortuneLabel(sum)
		}
		labels[i] = label
		luckScore += tables.FortuneBucket(label)
		// The i frame only constrains multi-character given names.
		if i == 2 && len(name.Given) <= 1 {
			continue
		}
		if !auspicious(label) {
			luckValid = false
		}
	}

	// Element sub-score over the won/hyeong/i frames, scored as a ring.
	checked := []domain.Element{
		tables.FrameSumElement(frames.Won),
		tables.FrameSumElement(frames.Hyeong),
		tables.FrameSumElement(frames.I),
	}
	adj := scoreAdjacencyCycle(checked)
	balance, _ := scoreBalance(checked)
	elementScore := (adj.score + balance) / 2

	allSame := checked[0] == checked[1] && checked[1] == checked[2]
	suriValid := !adj.hasOvercoming && !allSame

	score := (clampScore(luckScore) + elementScore) / 2
	passed := luckValid && suriValid

	ctx.PutInsight(domain.FrameInsight{
		Frame:       domain.FrameSagyeok,
		Score:       clampScore(score),
		Passed:      passed,
		Arrangement: arrangementString(checked),
		Details: map[string]any{
			"won":           frames.Won,
			"hyeong":        frames.Hyeong,
			"i":             frames.I,
			"jeong":         frames.Jeong,
			"labels":        labels,
			"luckScore":     clampScore(luckScore),
			"elementScore":  elementScore,
			"luckValid":     luckValid,
			"suriValid":     suriValid,
			"hasOvercoming": adj.hasOvercoming,
		},
	})
}

// Backward implements Calculator.
func (c *SagyeokCalculator) Backward(ctx *domain.EvalContext, _ []domain.CalculatorPacket) domain.CalculatorPacket {
	in, _ := ctx.Insight(domain.FrameSagyeok)
	return domain.CalculatorPacket{{
		Frame:  domain.FrameSagyeok,
		Score:  float64(in.Score),
		Passed: in.Passed,
		Weight: c.weight,
	}}
}

func auspicious(label string) bool {
	switch label {
	case tables.FortuneTop, tables.FortuneHigh, tables.FortuneGood:
		return true
	}
	return false
}
