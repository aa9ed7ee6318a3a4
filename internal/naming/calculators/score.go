package calculators

import (
	"math"
	"strings"

	domain "github.com/ireum-lab/api/internal/domain"
)

// Shared adjacency scoring constants. The same walk scores the phonetic,
// stroke-element, and four-frame arrangements.
const (
	adjacencyBase      = 70
	generatingBonus    = 10
	overcomingPenalty  = 15
	sameElementPenalty = 5

	dominantShareLimit = 0.5
)

// balanceBrackets maps total absolute deviation from a uniform five-way
// distribution to a balance score. Checked in order; first bracket whose
// limit is not exceeded wins.
var balanceBrackets = []struct {
	limit float64
	score int
}{
	{1.2, 100},
	{2.4, 85},
	{3.6, 70},
	{4.8, 55},
}

const balanceFloor = 40

// adjacencyThresholds keys the pass threshold for the adjacency score by
// total name length.
var adjacencyThresholds = map[int]int{2: 60, 3: 65, 4: 70, 5: 72}

const defaultAdjacencyThreshold = 65

func adjacencyThreshold(length int) int {
	if t, ok := adjacencyThresholds[length]; ok {
		return t
	}
	return defaultAdjacencyThreshold
}

// adjacencyResult summarises one walk over adjacent element pairs.
type adjacencyResult struct {
	score         int
	generating    int
	overcoming    int
	identical     int
	hasOvercoming bool
}

// scoreAdjacency walks adjacent pairs, starting from the base value and
// applying the generating bonus, overcoming penalty, and same-element
// penalty. skipPair, when >= 0, names the pair index left out of the walk
// (the surname/given-name boundary for two-character surnames).
func scoreAdjacency(elems []domain.Element, skipPair int) adjacencyResult {
	res := adjacencyResult{score: adjacencyBase}
	for i := 0; i+1 < len(elems); i++ {
		if i == skipPair {
			continue
		}
		res.apply(elems[i], elems[i+1])
	}
	res.score = clampScore(res.score)
	return res
}

// scoreAdjacencyCycle scores the arrangement as a ring, including the
// wraparound pair from last to first. Used by the four-frame element check.
func scoreAdjacencyCycle(elems []domain.Element) adjacencyResult {
	res := adjacencyResult{score: adjacencyBase}
	n := len(elems)
	if n < 2 {
		res.score = clampScore(res.score)
		return res
	}
	for i := 0; i < n; i++ {
		res.apply(elems[i], elems[(i+1)%n])
	}
	res.score = clampScore(res.score)
	return res
}

func (r *adjacencyResult) apply(a, b domain.Element) {
	switch {
	case a == b:
		r.identical++
		r.score -= sameElementPenalty
	case a.Generates(b) || b.Generates(a):
		r.generating++
		r.score += generatingBonus
	case a.Overcomes(b) || b.Overcomes(a):
		r.overcoming++
		r.hasOvercoming = true
		r.score -= overcomingPenalty
	}
}

// scoreBalance rates how evenly the elements spread over the five-way
// distribution, bracketed by total absolute deviation from uniform.
func scoreBalance(elems []domain.Element) (score int, deviation float64) {
	if len(elems) == 0 {
		return balanceFloor, 0
	}
	counts := make(map[domain.Element]int, 5)
	for _, e := range elems {
		counts[e]++
	}
	ideal := float64(len(elems)) / 5.0
	for _, e := range domain.Elements() {
		deviation += math.Abs(float64(counts[e]) - ideal)
	}
	for _, b := range balanceBrackets {
		if deviation <= b.limit {
			return b.score, deviation
		}
	}
	return balanceFloor, deviation
}

// dominantShare returns the largest single-element share of the arrangement.
func dominantShare(elems []domain.Element) float64 {
	if len(elems) == 0 {
		return 0
	}
	counts := make(map[domain.Element]int, 5)
	max := 0
	for _, e := range elems {
		counts[e]++
		if counts[e] > max {
			max = counts[e]
		}
	}
	return float64(max) / float64(len(elems))
}

// arrangementString renders elements as a glyph sequence, e.g. "金-木-水".
func arrangementString(elems []domain.Element) string {
	parts := make([]string, len(elems))
	for i, e := range elems {
		parts[i] = e.Glyph()
	}
	return strings.Join(parts, "-")
}

// polarityString renders polarities as a dash-joined sequence.
func polarityString(ps []domain.Polarity) string {
	parts := make([]string, len(ps))
	for i, p := range ps {
		parts[i] = p.String()
	}
	return strings.Join(parts, "-")
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// truncScore converts a float score to the integer form recorded on
// insights: truncated, then clamped to [0,100].
func truncScore(v float64) int {
	return clampScore(int(v))
}

// boundaryPair returns the pair index excluded from adjacency walks: the
// surname/given-name boundary when the surname has two characters,
// otherwise -1 (nothing skipped).
func boundaryPair(surnameLen int) int {
	if surnameLen == 2 {
		return 1
	}
	return -1
}
