package hangul

import "testing"

func TestDecompose(t *testing.T) {
	cases := []struct {
		syllable rune
		onset    rune
		nucleus  rune
	}{
		{'가', 'ㄱ', 'ㅏ'},
		{'최', 'ㅊ', 'ㅚ'},
		{'성', 'ㅅ', 'ㅓ'},
		{'수', 'ㅅ', 'ㅜ'},
		{'김', 'ㄱ', 'ㅣ'},
		{'황', 'ㅎ', 'ㅘ'},
		{'힣', 'ㅎ', 'ㅣ'},
	}
	for _, tc := range cases {
		onset, nucleus, ok := Decompose(tc.syllable)
		if !ok {
			t.Fatalf("Decompose(%q): not a syllable", tc.syllable)
		}
		if onset != tc.onset || nucleus != tc.nucleus {
			t.Errorf("Decompose(%q) = (%q, %q), want (%q, %q)", tc.syllable, onset, nucleus, tc.onset, tc.nucleus)
		}
	}
}

func TestDecomposeRejectsNonSyllables(t *testing.T) {
	for _, r := range []rune{'a', 'ㄱ', 'ㅏ', '崔', ' '} {
		if _, _, ok := Decompose(r); ok {
			t.Errorf("Decompose(%q): expected ok=false", r)
		}
	}
}

func TestJamoClassification(t *testing.T) {
	if !IsOnsetJamo('ㅊ') {
		t.Error("IsOnsetJamo(ㅊ) = false, want true")
	}
	if IsOnsetJamo('ㅏ') {
		t.Error("IsOnsetJamo(ㅏ) = true, want false")
	}
	if !IsNucleusJamo('ㅚ') {
		t.Error("IsNucleusJamo(ㅚ) = false, want true")
	}
	if IsNucleusJamo('ㅊ') {
		t.Error("IsNucleusJamo(ㅊ) = true, want false")
	}
}

func TestNucleusIsYang(t *testing.T) {
	cases := []struct {
		syllable rune
		want     bool
	}{
		{'가', true},
		{'고', true},
		{'구', false},
		{'기', false},
		{'성', false},
	}
	for _, tc := range cases {
		if got := NucleusIsYang(tc.syllable); got != tc.want {
			t.Errorf("NucleusIsYang(%q) = %v, want %v", tc.syllable, got, tc.want)
		}
	}
}

func TestNormalizeComposesJamo(t *testing.T) {
	// U+110E U+116C is the decomposed spelling of 최.
	decomposed := "\u110e\u116c"
	if got := Normalize(decomposed); got != "최" {
		t.Errorf("Normalize(%q) = %q, want %q", decomposed, got, "최")
	}
}
