package calculators

import (
	domain "github.com/ireum-lab/api/internal/domain"
)

// RootAggregator folds every nonzero-weight signal into one weighted
// score and a pass verdict, switching between the strict and adaptive
// policies on the saju-priority signal. The full contribution breakdown
// is recorded on the overall insight so the verdict stays explainable.
type RootAggregator struct {
	policy AggregationPolicy
}

// NewRootAggregator builds the aggregator over a coefficient table.
func NewRootAggregator(policy AggregationPolicy) *RootAggregator {
	return &RootAggregator{policy: policy}
}

// Frame implements Calculator.
func (r *RootAggregator) Frame() domain.FrameID { return domain.FrameOverall }

// Visit implements Calculator. The root computes nothing forward; its
// work happens in Backward once children have reported.
func (r *RootAggregator) Visit(*domain.EvalContext, domain.ResolvedName) {}

// contribution is the recorded breakdown for one frame.
type contribution struct {
	Frame          domain.FrameID `json:"frame"`
	Score          float64        `json:"score"`
	Weight         float64        `json:"weight"`
	AdjustedWeight float64        `json:"adjustedWeight"`
	Passed         bool           `json:"isPassed"`
}

// Backward implements Calculator: aggregates child packets, decides the
// verdict, and records the overall insight.
func (r *RootAggregator) Backward(ctx *domain.EvalContext, children []domain.CalculatorPacket) domain.CalculatorPacket {
	priority := sajuPriority(ctx)

	var (
		contribs    []contribution
		weightedSum float64
		weightTotal float64
	)
	for _, packet := range children {
		for _, sig := range packet {
			if sig.Weight == 0 {
				// Informational signal, not load-bearing.
				continue
			}
			adjusted := sig.Weight * (1 + r.policy.PriorityBoost[sig.Frame]*priority)
			if adjusted < 0 {
				adjusted = 0
			}
			contribs = append(contribs, contribution{
				Frame:          sig.Frame,
				Score:          sig.Score,
				Weight:         sig.Weight,
				AdjustedWeight: adjusted,
				Passed:         sig.Passed,
			})
			weightedSum += sig.Score * adjusted
			weightTotal += adjusted
		}
	}

	var weighted float64
	if weightTotal > 0 {
		weighted = weightedSum / weightTotal
	}

	policyName, passed, failed := r.decide(contribs, weighted, priority)

	score := truncScore(weighted)
	ctx.PutInsight(domain.FrameInsight{
		Frame:  domain.FrameOverall,
		Score:  score,
		Passed: passed,
		Details: map[string]any{
			"policy":        policyName,
			"sajuPriority":  priority,
			"weightedScore": weighted,
			"contributions": contribs,
			"failedFrames":  failed,
		},
	})

	return domain.CalculatorPacket{{
		Frame:  domain.FrameOverall,
		Score:  float64(score),
		Passed: passed,
		Weight: 1,
	}}
}

// decide applies the two-tier policy. The strict tier requires every
// designated frame to pass and the weighted score to clear the fixed
// threshold. The adaptive tier, entered when saju priority exceeds the
// trigger, relaxes a bounded number of relaxable failures provided none
// failed severely and the mandatory frames still hold, against a
// threshold lowered proportionally to priority.
func (r *RootAggregator) decide(contribs []contribution, weighted, priority float64) (string, bool, []string) {
	byFrame := make(map[domain.FrameID]contribution, len(contribs))
	for _, c := range contribs {
		byFrame[c.Frame] = c
	}

	// A strict frame with no recorded signal counts as score 0, not
	// passed; never an error.
	var failed []string
	for _, frame := range r.policy.StrictFrames {
		if c, ok := byFrame[frame]; !ok || !c.Passed {
			failed = append(failed, string(frame))
		}
	}

	if priority <= r.policy.AdaptiveTrigger {
		passed := len(failed) == 0 && weighted >= r.policy.PassThreshold
		return "strict", passed, failed
	}

	relaxed := 0
	for _, frame := range r.policy.StrictFrames {
		c, ok := byFrame[frame]
		if ok && c.Passed {
			continue
		}
		if !r.policy.RelaxableFrames[frame] {
			return "adaptive", false, failed
		}
		if !ok || c.Score < r.policy.SevereFloor {
			return "adaptive", false, failed
		}
		relaxed++
	}
	if relaxed > r.policy.MaxRelaxedFailures {
		return "adaptive", false, failed
	}

	// Mandatory gates survive relaxation: saju must pass and the
	// numerology score must clear its gate.
	saju, ok := byFrame[domain.FrameSajuBalance]
	if !ok || !saju.Passed {
		return "adaptive", false, failed
	}
	if sagyeokC, ok := byFrame[domain.FrameSagyeok]; !ok || sagyeokC.Score < r.policy.SagyeokGate {
		return "adaptive", false, failed
	}

	threshold := r.policy.PassThreshold - r.policy.AdaptiveRelief*priority
	return "adaptive", weighted >= threshold, failed
}
