package domain

// FilterKind classifies the phonetic filter carried by one block of a
// parsed name query.
type FilterKind string

const (
	// FilterComplete matches exactly one full hangul syllable.
	FilterComplete FilterKind = "complete"
	// FilterOnset matches any syllable sharing the given initial consonant.
	FilterOnset FilterKind = "onset"
	// FilterNucleus matches any syllable sharing the given vowel.
	FilterNucleus FilterKind = "nucleus"
	// FilterWildcard matches any syllable.
	FilterWildcard FilterKind = "wildcard"
)

// NameBlock is one syllable position in a parsed query. Immutable once
// parsed: callers receive copies, never shared pointers.
type NameBlock struct {
	// Hangul holds the syllable or jamo the filter matches against.
	// Empty when Kind is FilterWildcard.
	Hangul string
	// Kind describes how Hangul constrains candidates.
	Kind FilterKind
	// Hanja is the required hanja character, empty for a wildcard slot.
	Hanja string
}

// IsWildcard reports whether neither side of the block constrains candidates.
func (b NameBlock) IsWildcard() bool {
	return b.Kind == FilterWildcard && b.Hanja == ""
}

// IsComplete reports whether both sides are fully specified.
func (b NameBlock) IsComplete() bool {
	return b.Kind == FilterComplete && b.Hanja != ""
}

// Fallback metadata for hanja characters absent from the dictionary.
// Missing lookups resolve to this shape instead of failing so that names
// with partially unknown characters still score.
const (
	FallbackStrokeCount = 10
)

// HanjaEntry is one hanja character's dictionary metadata. Owned by the
// repository; read-only to callers.
type HanjaEntry struct {
	Hangul           string
	Hanja            string
	Strokes          int
	StrokeElement    Element
	ResourceElement  Element
	PhoneticElement  Element
	PhoneticPolarity Polarity
	StrokePolarity   Polarity
	IsSurname        bool
	// Fallback marks entries synthesised for unresolvable lookups.
	Fallback bool
}

// FallbackHanjaEntry returns the well-defined entry used when a lookup
// cannot be resolved: 10 strokes, earth element, yin polarity.
func FallbackHanjaEntry(hangul, hanja string) HanjaEntry {
	return HanjaEntry{
		Hangul:           hangul,
		Hanja:            hanja,
		Strokes:          FallbackStrokeCount,
		StrokeElement:    ElementEarth,
		ResourceElement:  ElementEarth,
		PhoneticElement:  ElementEarth,
		PhoneticPolarity: PolarityYin,
		StrokePolarity:   PolarityYin,
		Fallback:         true,
	}
}

// SurnamePair is one (hangul, hanja) character pair of a decomposed
// multi-character surname.
type SurnamePair struct {
	Hangul string
	Hanja  string
}

// NameCombination is a candidate (hangul, hanja) pair of equal rune length
// produced by the stats repository for a surname/pattern.
type NameCombination struct {
	Hangul string
	Hanja  string
}

// ResolvedName is the unit fed into scoring: surname entries followed by
// given-name entries, each position resolved through the hanja repository.
type ResolvedName struct {
	Surname []HanjaEntry
	Given   []HanjaEntry
}

// Entries returns surname and given-name entries as one ordered sequence.
func (n ResolvedName) Entries() []HanjaEntry {
	out := make([]HanjaEntry, 0, len(n.Surname)+len(n.Given))
	out = append(out, n.Surname...)
	out = append(out, n.Given...)
	return out
}

// SurnameStrokes returns the per-character stroke counts of the surname.
func (n ResolvedName) SurnameStrokes() []int {
	out := make([]int, len(n.Surname))
	for i, e := range n.Surname {
		out[i] = e.Strokes
	}
	return out
}

// GivenStrokes returns the per-character stroke counts of the given name.
func (n ResolvedName) GivenStrokes() []int {
	out := make([]int, len(n.Given))
	for i, e := range n.Given {
		out[i] = e.Strokes
	}
	return out
}

// HangulString renders the full hangul reading of the name.
func (n ResolvedName) HangulString() string {
	var s string
	for _, e := range n.Entries() {
		s += e.Hangul
	}
	return s
}

// HanjaString renders the full hanja spelling of the name.
func (n ResolvedName) HanjaString() string {
	var s string
	for _, e := range n.Entries() {
		s += e.Hanja
	}
	return s
}

// MaxGivenNameLength bounds the supported given-name length; the
// four-frame optimizer rejects anything longer.
const MaxGivenNameLength = 4

// StrokeTuple is a fixed-size composite key for a given-name stroke-count
// assignment. Unused trailing positions are zero; the owning context knows
// the effective length. Used as a map key, so it must stay comparable.
type StrokeTuple [MaxGivenNameLength]int

// NewStrokeTuple packs up to MaxGivenNameLength stroke counts into a key.
func NewStrokeTuple(strokes []int) StrokeTuple {
	var t StrokeTuple
	for i, s := range strokes {
		if i >= MaxGivenNameLength {
			break
		}
		t[i] = s
	}
	return t
}

// StrokeTupleSet is an allow-set of stroke-count keys used to pre-filter
// candidate combinations.
type StrokeTupleSet map[StrokeTuple]struct{}

// Contains reports membership; a nil set contains nothing.
func (s StrokeTupleSet) Contains(t StrokeTuple) bool {
	if s == nil {
		return false
	}
	_, ok := s[t]
	return ok
}

// BirthInfo carries the optional birth data accompanying a request.
// Saju pillar computation itself is external; this core only forwards
// the fields to the provider.
type BirthInfo struct {
	Year      int
	Month     int
	Day       int
	Hour      int
	Minute    int
	Location  string
	Calendar  string // "solar" (default) or "lunar"
	HasTime   bool
	Longitude float64
}
