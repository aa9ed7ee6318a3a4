package domain

// FrameID identifies one scoring frame. Insight and signal maps are keyed
// by frame identifier.
type FrameID string

const (
	// FrameHangulElement scores the phonetic five-element arrangement.
	FrameHangulElement FrameID = "HANGUL_OHAENG"
	// FrameHanjaElement scores the stroke-derived five-element arrangement.
	FrameHanjaElement FrameID = "HANJA_OHAENG"
	// FrameHanjaPolarity scores the stroke-parity yin/yang arrangement.
	FrameHanjaPolarity FrameID = "HANJA_EUMYANG"
	// FrameSagyeok scores the four-frame (won/hyeong/i/jeong) numerology.
	FrameSagyeok FrameID = "SAGYEOK_SURI"
	// FrameSajuBalance scores the name against the birth-chart element
	// distribution and analysis summary.
	FrameSajuBalance FrameID = "SAJU_JAWON_BALANCE"
	// FrameOverall is the root aggregator's combined verdict.
	FrameOverall FrameID = "OVERALL"
)

// FrameInsight is the recorded result of one scoring frame: an integer
// score in [0,100], a pass flag, a human-readable arrangement string, and
// an open detail bag. Insights accumulate in the evaluation context and
// are only ever overwritten, never retracted.
type FrameInsight struct {
	Frame       FrameID        `json:"frame"`
	Score       int            `json:"score"`
	Passed      bool           `json:"isPassed"`
	Arrangement string         `json:"arrangement,omitempty"`
	Details     map[string]any `json:"details,omitempty"`
}

// Detail reads a key from the detail bag, returning nil when absent.
func (i FrameInsight) Detail(key string) any {
	if i.Details == nil {
		return nil
	}
	return i.Details[key]
}

// BoolDetail reads a boolean detail, defaulting to false.
func (i FrameInsight) BoolDetail(key string) bool {
	v, _ := i.Detail(key).(bool)
	return v
}

// CalculatorSignal is the message a frame scorer passes to its parent in
// the calculator graph. Weight 0 means informational, not load-bearing.
type CalculatorSignal struct {
	Frame  FrameID
	Score  float64
	Passed bool
	Weight float64
}

// CalculatorPacket is the list of signals one node emits upward.
type CalculatorPacket []CalculatorSignal

// SajuOutput is the externally computed analysis summary this core
// consumes. A nil output means analysis was unavailable; scorers must
// degrade to neutral 50-point sub-scores.
type SajuOutput struct {
	DayMaster Element
	// Strength is one of "weak", "balanced", "strong".
	Strength string
	Yongshin []Element
	Heesin   []Element
	Gisin    []Element
	Gusin    []Element
	// Remedies lists explicit remedy element recommendations, when any.
	Remedies []Element
	// Confidence scales yongshin affinity, in [0,1].
	Confidence float64
	// TenGodCounts maps group name (bigyeop, siksang, jaeseong,
	// gwanseong, inseong) to pillar count.
	TenGodCounts map[string]int
}

// SajuSummary bundles the element distribution with its provenance and
// the optional analysis output.
type SajuSummary struct {
	// Distribution holds relative element mass; values need not sum to 1.
	Distribution map[Element]float64
	// Source is "birth" when derived from pillars, "fallback" otherwise.
	Source string
	Output *SajuOutput
}

// FallbackSajuSummary returns the uniform-distribution summary used when
// no birth-based analysis is available.
func FallbackSajuSummary() SajuSummary {
	dist := make(map[Element]float64, elementCount)
	for _, e := range Elements() {
		dist[e] = 1
	}
	return SajuSummary{Distribution: dist, Source: "fallback"}
}

// EvalContext is the per-candidate scratch state threaded through the
// calculator graph. Lifetime is one candidate evaluation; never shared
// across candidates.
type EvalContext struct {
	SurnameLen int
	GivenLen   int
	// Lucky maps a normalized frame sum to its fortune label.
	Lucky map[int]string
	Saju  SajuSummary
	// SagyeokValid records whether the candidate's stroke tuple passed
	// the four-frame optimizer gate.
	SagyeokValid bool

	insights map[FrameID]FrameInsight
}

// NewEvalContext builds a context for one candidate evaluation.
func NewEvalContext(surnameLen, givenLen int, lucky map[int]string, saju SajuSummary) *EvalContext {
	return &EvalContext{
		SurnameLen: surnameLen,
		GivenLen:   givenLen,
		Lucky:      lucky,
		Saju:       saju,
		insights:   make(map[FrameID]FrameInsight),
	}
}

// PutInsight records or overwrites the insight for its frame.
func (c *EvalContext) PutInsight(in FrameInsight) {
	if c.insights == nil {
		c.insights = make(map[FrameID]FrameInsight)
	}
	c.insights[in.Frame] = in
}

// Insight returns the recorded insight for a frame. A missing insight is
// reported as a zero-score, not-passed value, never an error.
func (c *EvalContext) Insight(frame FrameID) (FrameInsight, bool) {
	in, ok := c.insights[frame]
	if !ok {
		return FrameInsight{Frame: frame}, false
	}
	return in, true
}

// Insights returns a copy of the accumulated insight map.
func (c *EvalContext) Insights() map[FrameID]FrameInsight {
	out := make(map[FrameID]FrameInsight, len(c.insights))
	for k, v := range c.insights {
		out[k] = v
	}
	return out
}
