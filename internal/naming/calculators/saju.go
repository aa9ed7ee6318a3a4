package calculators

import (
	"math"

	domain "github.com/ireum-lab/api/internal/domain"
)

// SajuCalculator scores the name against the externally supplied birth
// analysis: element-balance repair, yongshin affinity, day-master strength
// alignment, and ten-god group balance, blended with adaptively resolved
// weights and reduced by avoid-element penalties.
//
// The name's element contribution is the resource (radical-derived)
// element of each given-name character.
type SajuCalculator struct {
	weight float64
}

// NewSajuCalculator returns the saju frame scorer.
func NewSajuCalculator() *SajuCalculator {
	return &SajuCalculator{weight: weightSaju}
}

// Frame implements Calculator.
func (c *SajuCalculator) Frame() domain.FrameID { return domain.FrameSajuBalance }

const neutralScore = 50

// Visit implements Calculator.
func (c *SajuCalculator) Visit(ctx *domain.EvalContext, name domain.ResolvedName) {
	contribution := make([]domain.Element, len(name.Given))
	for i, e := range name.Given {
		contribution[i] = e.ResourceElement
	}

	out := ctx.Saju.Output

	balance := balanceSubScore(ctx.Saju.Distribution, contribution)
	yongshin := float64(neutralScore)
	strength := float64(neutralScore)
	tengod := float64(neutralScore)
	if out != nil {
		yongshin = yongshinSubScore(out, contribution)
		strength = strengthSubScore(out, contribution)
		tengod = tenGodSubScore(out.TenGodCounts)
	}

	weights := resolveSajuWeights(out)
	blended := weights.Balance*balance +
		weights.Yongshin*yongshin +
		weights.Strength*strength +
		weights.TenGod*tengod

	penalty := avoidPenalty(out, contribution)
	final := blended - penalty
	if final < 0 {
		final = 0
	}

	score := truncScore(final)
	passed := score >= sajuPassMinimum

	ctx.PutInsight(domain.FrameInsight{
		Frame:       domain.FrameSajuBalance,
		Score:       score,
		Passed:      passed,
		Arrangement: arrangementString(contribution),
		Details: map[string]any{
			"balanceScore":           truncScore(balance),
			"yongshinScore":          truncScore(yongshin),
			"strengthScore":          truncScore(strength),
			"tenGodScore":            truncScore(tengod),
			"penalty":                penalty,
			"weights":                weights,
			"sajuDistributionSource": ctx.Saju.Source,
			"analysisAvailable":      out != nil,
		},
	})
}

// Backward implements Calculator.
func (c *SajuCalculator) Backward(ctx *domain.EvalContext, _ []domain.CalculatorPacket) domain.CalculatorPacket {
	in, _ := ctx.Insight(domain.FrameSajuBalance)
	return domain.CalculatorPacket{{
		Frame:  domain.FrameSajuBalance,
		Score:  float64(in.Score),
		Passed: in.Passed,
		Weight: c.weight,
	}}
}

// balanceSubScore rates how close the post-name distribution comes to the
// most even distribution achievable by adding the same element mass
// anywhere. The greedy repair (always feed the emptiest bucket) is the
// reference optimum.
func balanceSubScore(dist map[domain.Element]float64, contribution []domain.Element) float64 {
	if len(contribution) == 0 {
		return neutralScore
	}

	actual := make(map[domain.Element]float64, 5)
	optimal := make(map[domain.Element]float64, 5)
	for _, e := range domain.Elements() {
		actual[e] = dist[e]
		optimal[e] = dist[e]
	}
	for _, e := range contribution {
		actual[e]++
	}
	for range contribution {
		lowest := domain.ElementWood
		for _, e := range domain.Elements() {
			if optimal[e] < optimal[lowest] {
				lowest = e
			}
		}
		optimal[lowest]++
	}

	gap := deviation(actual) - deviation(optimal)
	if gap < 0 {
		gap = 0
	}
	return clamp01(1-gap/balanceGapScale) * 100
}

func deviation(dist map[domain.Element]float64) float64 {
	total := 0.0
	for _, e := range domain.Elements() {
		total += dist[e]
	}
	mean := total / 5
	dev := 0.0
	for _, e := range domain.Elements() {
		dev += math.Abs(dist[e] - mean)
	}
	return dev
}

// yongshinSubScore averages per-character affinity against the favorable
// and unfavorable element sets, blends in explicit remedy matches, and
// scales the result toward neutral by the stated confidence.
func yongshinSubScore(out *domain.SajuOutput, contribution []domain.Element) float64 {
	if len(contribution) == 0 {
		return neutralScore
	}
	total := 0.0
	for _, e := range contribution {
		total += affinityValue(out, e)
	}
	affinity := total / float64(len(contribution))

	if len(out.Remedies) > 0 {
		matches := 0
		for _, e := range contribution {
			if containsElement(out.Remedies, e) {
				matches++
			}
		}
		remedy := float64(matches) / float64(len(contribution)) * 100
		affinity = remedyBlendAffinity*affinity + remedyBlendRemedy*remedy
	}

	confidence := clamp01(out.Confidence)
	return neutralScore + (affinity-neutralScore)*confidence
}

func affinityValue(out *domain.SajuOutput, e domain.Element) float64 {
	switch {
	case containsElement(out.Yongshin, e):
		return 100
	case containsElement(out.Heesin, e):
		return 80
	case containsElement(out.Gisin, e):
		return 25
	case containsElement(out.Gusin, e):
		return 10
	default:
		return 55
	}
}

// strengthSubScore rates each character's element against the day master:
// a weak chart wants support (same element or one generating it), a
// strong chart wants draining or restraint.
func strengthSubScore(out *domain.SajuOutput, contribution []domain.Element) float64 {
	if len(contribution) == 0 {
		return neutralScore
	}
	total := 0.0
	for _, e := range contribution {
		total += strengthValue(out, e)
	}
	return total / float64(len(contribution))
}

func strengthValue(out *domain.SajuOutput, e domain.Element) float64 {
	dm := out.DayMaster
	switch out.Strength {
	case "weak":
		if e == dm || e.Generates(dm) {
			return 100
		}
		return 40
	case "strong":
		if dm.Generates(e) || e.Overcomes(dm) {
			return 100
		}
		return 40
	default:
		return 70
	}
}

// tenGodSubScore rates the evenness of the five ten-god group counts.
func tenGodSubScore(counts map[string]int) float64 {
	if len(counts) == 0 {
		return neutralScore
	}
	groups := []string{"bigyeop", "siksang", "jaeseong", "gwanseong", "inseong"}
	total := 0
	for _, g := range groups {
		total += counts[g]
	}
	if total == 0 {
		return neutralScore
	}
	mean := float64(total) / float64(len(groups))
	dev := 0.0
	for _, g := range groups {
		dev += math.Abs(float64(counts[g]) - mean)
	}
	// Normalise: maximum deviation is everything in one group.
	worst := 2 * float64(total) * (1 - 1/float64(len(groups)))
	if worst == 0 {
		return neutralScore
	}
	return clamp01(1-dev/worst) * 100
}

// avoidPenalty charges for every given-name character landing on a gisin
// or gusin element.
func avoidPenalty(out *domain.SajuOutput, contribution []domain.Element) float64 {
	if out == nil {
		return 0
	}
	penalty := 0.0
	for _, e := range contribution {
		switch {
		case containsElement(out.Gisin, e):
			penalty += gisinPenalty
		case containsElement(out.Gusin, e):
			penalty += gusinPenalty
		}
	}
	return penalty
}

func containsElement(set []domain.Element, e domain.Element) bool {
	for _, s := range set {
		if s == e {
			return true
		}
	}
	return false
}
