package memory

import (
	"encoding/json"
	"fmt"
	"os"

	domain "github.com/ireum-lab/api/internal/domain"
)

// Dictionary is the decoded seed data backing the in-memory repositories.
type Dictionary struct {
	Entries      []domain.HanjaEntry
	SurnamePairs []domain.SurnamePair
	Stats        []NameStat
}

type dictionaryFile struct {
	Entries []struct {
		Hangul           string `json:"hangul"`
		Hanja            string `json:"hanja"`
		Strokes          int    `json:"strokes"`
		StrokeElement    string `json:"strokeElement"`
		ResourceElement  string `json:"resourceElement"`
		PhoneticElement  string `json:"phoneticElement"`
		PhoneticPolarity int    `json:"phoneticPolarity"`
		StrokePolarity   int    `json:"strokePolarity"`
		IsSurname        bool   `json:"isSurname"`
	} `json:"entries"`
	SurnamePairs []struct {
		Hangul string `json:"hangul"`
		Hanja  string `json:"hanja"`
	} `json:"surnamePairs"`
	Stats []struct {
		Hangul  string `json:"hangul"`
		Hanja   string `json:"hanja"`
		Strokes []int  `json:"strokes"`
	} `json:"stats"`
}

// LoadDictionary reads the JSON seed file produced by the dictionary
// build pipeline. Unknown element names fall back to earth, matching the
// lookup fallback entry.
func LoadDictionary(path string) (Dictionary, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Dictionary{}, fmt.Errorf("memory: read dictionary: %w", err)
	}
	var file dictionaryFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return Dictionary{}, fmt.Errorf("memory: decode dictionary: %w", err)
	}

	dict := Dictionary{}
	for _, e := range file.Entries {
		stroke, _ := domain.ParseElement(e.StrokeElement)
		resource, _ := domain.ParseElement(e.ResourceElement)
		phonetic, _ := domain.ParseElement(e.PhoneticElement)
		dict.Entries = append(dict.Entries, domain.HanjaEntry{
			Hangul:           e.Hangul,
			Hanja:            e.Hanja,
			Strokes:          e.Strokes,
			StrokeElement:    stroke,
			ResourceElement:  resource,
			PhoneticElement:  phonetic,
			PhoneticPolarity: domain.Polarity(e.PhoneticPolarity),
			StrokePolarity:   domain.Polarity(e.StrokePolarity),
			IsSurname:        e.IsSurname,
		})
	}
	for _, p := range file.SurnamePairs {
		dict.SurnamePairs = append(dict.SurnamePairs, domain.SurnamePair{Hangul: p.Hangul, Hanja: p.Hanja})
	}
	for _, s := range file.Stats {
		dict.Stats = append(dict.Stats, NameStat{Hangul: s.Hangul, Hanja: s.Hanja, Strokes: s.Strokes})
	}
	return dict, nil
}
