package domain

// Element enumerates the five elements in generating-cycle order.
// The order is load-bearing: "generating" is the next element in the
// cycle and "overcoming" is the element two steps ahead.
type Element int

const (
	ElementWood Element = iota
	ElementFire
	ElementEarth
	ElementMetal
	ElementWater

	elementCount = 5
)

var elementNames = [elementCount]string{"wood", "fire", "earth", "metal", "water"}

var elementHanja = [elementCount]string{"木", "火", "土", "金", "水"}

// String returns the lowercase English name of the element.
func (e Element) String() string {
	if e < 0 || e >= elementCount {
		return "unknown"
	}
	return elementNames[e]
}

// Glyph returns the single-character hanja used in arrangement strings.
func (e Element) Glyph() string {
	if e < 0 || e >= elementCount {
		return "?"
	}
	return elementHanja[e]
}

// ParseElement resolves an element from its lowercase English name.
func ParseElement(name string) (Element, bool) {
	for i, n := range elementNames {
		if n == name {
			return Element(i), true
		}
	}
	return ElementEarth, false
}

// Generates reports whether e generates other (other is next in the cycle).
func (e Element) Generates(other Element) bool {
	return (e+1)%elementCount == other
}

// Overcomes reports whether e overcomes other (other is two steps ahead).
func (e Element) Overcomes(other Element) bool {
	return (e+2)%elementCount == other
}

// RelationTo classifies the directed relation from e to other.
func (e Element) RelationTo(other Element) ElementRelation {
	switch {
	case e == other:
		return RelationSame
	case e.Generates(other):
		return RelationGenerating
	case e.Overcomes(other):
		return RelationOvercoming
	case other.Generates(e):
		return RelationGenerated
	default:
		return RelationOvercome
	}
}

// ElementRelation labels the directed relation between two elements.
type ElementRelation int

const (
	RelationSame ElementRelation = iota
	RelationGenerating
	RelationGenerated
	RelationOvercoming
	RelationOvercome
)

// Elements returns every element in cycle order. Callers must not mutate
// shared state derived from it; the slice itself is freshly allocated.
func Elements() []Element {
	return []Element{ElementWood, ElementFire, ElementEarth, ElementMetal, ElementWater}
}

// Polarity is the binary yin/yang attribute derived from stroke parity or
// vowel class. Zero value is yin.
type Polarity int

const (
	PolarityYin  Polarity = 0
	PolarityYang Polarity = 1
)

// String returns "yin" or "yang".
func (p Polarity) String() string {
	if p == PolarityYang {
		return "yang"
	}
	return "yin"
}

// PolarityFromStrokes maps a stroke count to a polarity: odd counts are
// yang, even counts are yin.
func PolarityFromStrokes(strokes int) Polarity {
	if strokes%2 == 1 || strokes%2 == -1 {
		return PolarityYang
	}
	return PolarityYin
}
