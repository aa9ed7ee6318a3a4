package calculators

import (
	domain "github.com/ireum-lab/api/internal/domain"
)

// The coefficients in this file reproduce observed scoring behaviour and
// are compatibility configuration, not tunables to simplify. Changing any
// of them changes verdicts for existing names.

// Base signal weights per frame.
const (
	weightHangulElement = 1.0
	weightHanjaElement  = 1.0
	weightHanjaPolarity = 0.5
	weightSagyeok       = 1.2
	weightSaju          = 1.5
)

// Frame-level pass thresholds.
const (
	minimumFrameScore = 60
	sajuPassMinimum   = 55
)

// Saju sub-score blending.
const (
	remedyBlendAffinity = 0.7
	remedyBlendRemedy   = 0.3
	balanceGapScale     = 4.0
	gisinPenalty        = 12.0
	gusinPenalty        = 8.0
)

// SajuWeights is one resolved row of the adaptive sub-score weighting.
type SajuWeights struct {
	Balance  float64 `json:"balance"`
	Yongshin float64 `json:"yongshin"`
	Strength float64 `json:"strength"`
	TenGod   float64 `json:"tenGod"`
}

// resolveSajuWeights picks the sub-score weighting row for the available
// analysis: distribution-only, default, or yongshin-led when the analysis
// is confident about a favorable element.
func resolveSajuWeights(out *domain.SajuOutput) SajuWeights {
	switch {
	case out == nil:
		return SajuWeights{Balance: 1}
	case out.Confidence >= 0.75 && len(out.Yongshin) > 0:
		return SajuWeights{Balance: 0.30, Yongshin: 0.45, Strength: 0.15, TenGod: 0.10}
	default:
		return SajuWeights{Balance: 0.35, Yongshin: 0.35, Strength: 0.15, TenGod: 0.15}
	}
}

// AggregationPolicy is the single tunable table behind the root
// aggregator's two-tier verdict: the continuous saju-priority signal
// feeds these parameters, which drive the discrete decision.
type AggregationPolicy struct {
	// PassThreshold is the weighted-score floor under the strict policy.
	PassThreshold float64
	// AdaptiveTrigger is the saju priority above which the adaptive
	// policy replaces the strict one.
	AdaptiveTrigger float64
	// AdaptiveRelief scales how far priority lowers the threshold.
	AdaptiveRelief float64
	// MaxRelaxedFailures bounds how many relaxable frames may fail.
	MaxRelaxedFailures int
	// SevereFloor is the score below which a failure is never relaxed.
	SevereFloor float64
	// SagyeokGate is the minimum numerology score under the adaptive
	// policy, even when its pass flag is relaxed.
	SagyeokGate float64

	// RelaxableFrames may fail under the adaptive policy.
	RelaxableFrames map[domain.FrameID]bool
	// StrictFrames must all pass under the strict policy.
	StrictFrames []domain.FrameID

	// PriorityBoost scales each frame's weight multiplier per unit of
	// saju priority; negative values shed weight as priority grows.
	PriorityBoost map[domain.FrameID]float64
}

// DefaultAggregationPolicy returns the production coefficient table.
func DefaultAggregationPolicy() AggregationPolicy {
	return AggregationPolicy{
		PassThreshold:      65,
		AdaptiveTrigger:    0.6,
		AdaptiveRelief:     10,
		MaxRelaxedFailures: 2,
		SevereFloor:        40,
		SagyeokGate:        60,
		RelaxableFrames: map[domain.FrameID]bool{
			domain.FrameHangulElement: true,
			domain.FrameHanjaElement:  true,
			domain.FrameHanjaPolarity: true,
		},
		StrictFrames: []domain.FrameID{
			domain.FrameHangulElement,
			domain.FrameHanjaElement,
			domain.FrameHanjaPolarity,
			domain.FrameSagyeok,
			domain.FrameSajuBalance,
		},
		PriorityBoost: map[domain.FrameID]float64{
			domain.FrameSajuBalance:   0.6,
			domain.FrameSagyeok:       0.1,
			domain.FrameHangulElement: -0.25,
			domain.FrameHanjaElement:  -0.25,
			domain.FrameHanjaPolarity: -0.25,
		},
	}
}

// sajuPriority derives the continuous priority signal from the saju
// insight: a clamped blend of the balance and yongshin sub-scores less
// the penalty total. Missing insight yields zero priority.
func sajuPriority(ctx *domain.EvalContext) float64 {
	in, ok := ctx.Insight(domain.FrameSajuBalance)
	if !ok {
		return 0
	}
	balance, _ := in.Detail("balanceScore").(int)
	yongshin, _ := in.Detail("yongshinScore").(int)
	penalty, _ := in.Detail("penalty").(float64)
	return clamp01((0.6*float64(balance) + 0.4*float64(yongshin) - penalty) / 100)
}
