// Package tables holds the immutable lookup tables shared by the frame
// scorers: jamo-to-element maps, the frame-sum digit element table, and
// the 81-number fortune classification. All tables are initialized once
// and never mutated after init.
package tables

import (
	domain "github.com/ireum-lab/api/internal/domain"
)

// Fortune tier labels attached to the 81 suri numbers.
const (
	FortuneTop   = "최상"
	FortuneHigh  = "상"
	FortuneGood  = "양호"
	FortuneBad   = "흉"
	FortuneWorst = "최흉"
)

// onsetElements maps each onset jamo to its phonetic element. Tense
// consonants follow their plain counterparts.
var onsetElements = map[rune]domain.Element{
	'ㄱ': domain.ElementWood, 'ㄲ': domain.ElementWood, 'ㅋ': domain.ElementWood,
	'ㄴ': domain.ElementFire, 'ㄷ': domain.ElementFire, 'ㄸ': domain.ElementFire,
	'ㄹ': domain.ElementFire, 'ㅌ': domain.ElementFire,
	'ㅇ': domain.ElementEarth, 'ㅎ': domain.ElementEarth,
	'ㅅ': domain.ElementMetal, 'ㅆ': domain.ElementMetal, 'ㅈ': domain.ElementMetal,
	'ㅉ': domain.ElementMetal, 'ㅊ': domain.ElementMetal,
	'ㅁ': domain.ElementWater, 'ㅂ': domain.ElementWater, 'ㅃ': domain.ElementWater,
	'ㅍ': domain.ElementWater,
}

// OnsetElement resolves the phonetic element of an onset jamo. Unknown
// jamo fall back to earth, mirroring the dictionary fallback entry.
func OnsetElement(onset rune) domain.Element {
	if e, ok := onsetElements[onset]; ok {
		return e
	}
	return domain.ElementEarth
}

// FrameSumElement derives an element from a frame sum by its last digit:
// 1,2 wood; 3,4 fire; 5,6 earth; 7,8 metal; 9,0 water.
func FrameSumElement(sum int) domain.Element {
	d := sum % 10
	if d < 0 {
		d += 10
	}
	switch d {
	case 1, 2:
		return domain.ElementWood
	case 3, 4:
		return domain.ElementFire
	case 5, 6:
		return domain.ElementEarth
	case 7, 8:
		return domain.ElementMetal
	default:
		return domain.ElementWater
	}
}

var topNumbers = []int{
	1, 3, 5, 6, 11, 13, 15, 16, 21, 23, 24, 31, 32, 33, 35, 37, 39,
	41, 45, 47, 48, 52, 57, 61, 63, 65, 67, 81,
}

var highNumbers = []int{7, 8, 17, 18, 25, 29, 38, 68}

var goodNumbers = []int{51, 58, 71, 73, 75}

var worstNumbers = []int{
	2, 4, 9, 10, 12, 14, 19, 20, 22, 26, 28, 34, 36, 44, 46, 54, 56,
	59, 60, 64, 66, 69, 70, 74, 76, 79, 80,
}

// fortuneLabels maps every number in [1,81] to its tier label.
var fortuneLabels map[int]string

func init() {
	fortuneLabels = make(map[int]string, 81)
	for n := 1; n <= 81; n++ {
		fortuneLabels[n] = FortuneBad
	}
	for _, n := range worstNumbers {
		fortuneLabels[n] = FortuneWorst
	}
	for _, n := range goodNumbers {
		fortuneLabels[n] = FortuneGood
	}
	for _, n := range highNumbers {
		fortuneLabels[n] = FortuneHigh
	}
	for _, n := range topNumbers {
		fortuneLabels[n] = FortuneTop
	}
}

// FortuneLabels returns a copy of the number-to-tier table for seeding an
// evaluation context.
func FortuneLabels() map[int]string {
	out := make(map[int]string, len(fortuneLabels))
	for k, v := range fortuneLabels {
		out[k] = v
	}
	return out
}

// FortuneLabel returns the tier label for a normalized frame sum.
func FortuneLabel(n int) string {
	if l, ok := fortuneLabels[n]; ok {
		return l
	}
	return FortuneBad
}

// IsLucky reports whether a normalized frame sum belongs to one of the
// auspicious tiers.
func IsLucky(n int) bool {
	switch fortuneLabels[n] {
	case FortuneTop, FortuneHigh, FortuneGood:
		return true
	}
	return false
}

// LuckySet returns the auspicious numbers as a membership set.
func LuckySet() map[int]struct{} {
	out := make(map[int]struct{})
	for n := 1; n <= 81; n++ {
		if IsLucky(n) {
			out[n] = struct{}{}
		}
	}
	return out
}

// FortuneBucket maps a tier label to its per-frame luck contribution out
// of a 25-point share; four frames together span [0,100].
func FortuneBucket(label string) int {
	switch label {
	case FortuneTop:
		return 25
	case FortuneHigh:
		return 22
	case FortuneGood:
		return 18
	case FortuneWorst:
		return 0
	case FortuneBad:
		return 4
	default:
		return 10
	}
}
