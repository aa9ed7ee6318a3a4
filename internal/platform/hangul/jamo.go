// Package hangul provides jamo arithmetic over the U+AC00 syllable block
// and classification helpers for partial (jamo-only) query filters.
package hangul

import "golang.org/x/text/unicode/norm"

const (
	syllableBase = 0xAC00
	syllableLast = 0xD7A3

	nucleusCount = 21
	codaCount    = 28
)

// Onset compatibility jamo in syllable-block index order.
var onsets = [19]rune{
	'ㄱ', 'ㄲ', 'ㄴ', 'ㄷ', 'ㄸ', 'ㄹ', 'ㅁ', 'ㅂ', 'ㅃ', 'ㅅ',
	'ㅆ', 'ㅇ', 'ㅈ', 'ㅉ', 'ㅊ', 'ㅋ', 'ㅌ', 'ㅍ', 'ㅎ',
}

// Nucleus compatibility jamo in syllable-block index order.
var nuclei = [21]rune{
	'ㅏ', 'ㅐ', 'ㅑ', 'ㅒ', 'ㅓ', 'ㅔ', 'ㅕ', 'ㅖ', 'ㅗ', 'ㅘ',
	'ㅙ', 'ㅚ', 'ㅛ', 'ㅜ', 'ㅝ', 'ㅞ', 'ㅟ', 'ㅠ', 'ㅡ', 'ㅢ', 'ㅣ',
}

// Yang-class nuclei; every other vowel is yin.
var yangNuclei = map[rune]struct{}{
	'ㅏ': {}, 'ㅐ': {}, 'ㅑ': {}, 'ㅒ': {},
	'ㅗ': {}, 'ㅘ': {}, 'ㅙ': {}, 'ㅚ': {}, 'ㅛ': {},
}

// Normalize returns the NFC form of s so decomposed jamo sequences match
// precomposed dictionary keys.
func Normalize(s string) string {
	return norm.NFC.String(s)
}

// IsSyllable reports whether r is a precomposed hangul syllable.
func IsSyllable(r rune) bool {
	return r >= syllableBase && r <= syllableLast
}

// IsOnsetJamo reports whether r is a compatibility jamo consonant usable
// as an onset filter.
func IsOnsetJamo(r rune) bool {
	for _, o := range onsets {
		if o == r {
			return true
		}
	}
	return false
}

// IsNucleusJamo reports whether r is a compatibility jamo vowel.
func IsNucleusJamo(r rune) bool {
	for _, n := range nuclei {
		if n == r {
			return true
		}
	}
	return false
}

// Decompose splits a precomposed syllable into its onset and nucleus
// compatibility jamo. ok is false for anything outside the syllable block.
func Decompose(r rune) (onset, nucleus rune, ok bool) {
	if !IsSyllable(r) {
		return 0, 0, false
	}
	idx := int(r - syllableBase)
	onsetIdx := idx / (nucleusCount * codaCount)
	nucleusIdx := (idx / codaCount) % nucleusCount
	return onsets[onsetIdx], nuclei[nucleusIdx], true
}

// Onset returns the onset jamo of a syllable, or 0 when r is not one.
func Onset(r rune) rune {
	o, _, ok := Decompose(r)
	if !ok {
		return 0
	}
	return o
}

// Nucleus returns the nucleus jamo of a syllable, or 0 when r is not one.
func Nucleus(r rune) rune {
	_, n, ok := Decompose(r)
	if !ok {
		return 0
	}
	return n
}

// NucleusIsYang reports whether the syllable's vowel belongs to the yang
// class. Non-syllables report yin.
func NucleusIsYang(r rune) bool {
	_, n, ok := Decompose(r)
	if !ok {
		return false
	}
	_, yang := yangNuclei[n]
	return yang
}
