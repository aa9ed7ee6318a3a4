// Package queryparse parses bracket-delimited name queries into ordered
// surname and given-name blocks.
//
// Grammar (ASCII brackets):
//
//	name-query    := block+
//	block         := "[" korean-filter "/" hanja-filter "]"
//	korean-filter := complete-syllable | onset-jamo | nucleus-jamo | "" | "_"
//	hanja-filter  := hanja-char | "" | "_"
//
// An empty or "_" side is a wildcard for that slot.
package queryparse

import (
	"context"
	"errors"
	"fmt"
	"strings"

	domain "github.com/ireum-lab/api/internal/domain"
	"github.com/ireum-lab/api/internal/platform/hangul"
)

var (
	// ErrEmptyQuery indicates a query with no blocks.
	ErrEmptyQuery = errors.New("queryparse: empty query")
	// ErrMalformedQuery indicates unbalanced brackets or an unparsable filter.
	ErrMalformedQuery = errors.New("queryparse: malformed query")
	// ErrIncompleteQuery indicates a wildcard in a query that must be complete.
	ErrIncompleteQuery = errors.New("queryparse: incomplete query")
)

const wildcardMarker = "_"

// SurnameChecker is the single capability the parser needs from the hanja
// dictionary: membership of a (hangul, hanja) pair in the surname set.
type SurnameChecker interface {
	IsSurname(ctx context.Context, hangulStr, hanjaStr string) bool
}

// ParsedQuery is the outcome of a parse: leading surname blocks and the
// remaining given-name blocks.
type ParsedQuery struct {
	Surname []domain.NameBlock
	Given   []domain.NameBlock
}

// Blocks returns surname and given-name blocks as one sequence.
func (q ParsedQuery) Blocks() []domain.NameBlock {
	out := make([]domain.NameBlock, 0, len(q.Surname)+len(q.Given))
	out = append(out, q.Surname...)
	out = append(out, q.Given...)
	return out
}

// IsComplete reports whether every block is fully specified.
func (q ParsedQuery) IsComplete() bool {
	for _, b := range q.Blocks() {
		if !b.IsComplete() {
			return false
		}
	}
	return true
}

type rawBlock struct {
	korean string
	hanja  string
}

// Parse splits a query into blocks and decides how many leading blocks
// constitute the surname:
//
//  1. A first block holding a full two-character surname (two syllables,
//     two hanja) is split into two single-character surname blocks.
//  2. Otherwise, two leading single-character complete blocks forming a
//     known compound surname are both surname.
//  3. Otherwise the surname is the single first block.
func Parse(ctx context.Context, query string, surnames SurnameChecker) (ParsedQuery, error) {
	raws, err := scanBlocks(hangul.Normalize(query))
	if err != nil {
		return ParsedQuery{}, err
	}
	if len(raws) == 0 {
		return ParsedQuery{}, ErrEmptyQuery
	}

	// Rule 1: packed two-character surname in the first block.
	first := raws[0]
	korRunes := []rune(first.korean)
	hanRunes := []rune(first.hanja)
	if len(korRunes) == 2 && len(hanRunes) == 2 &&
		allSyllables(korRunes) &&
		surnames.IsSurname(ctx, first.korean, first.hanja) {
		split := []rawBlock{
			{korean: string(korRunes[0]), hanja: string(hanRunes[0])},
			{korean: string(korRunes[1]), hanja: string(hanRunes[1])},
		}
		raws = append(split, raws[1:]...)
		return assemble(raws, 2)
	}

	// Rule 2: compound surname spread across the first two blocks.
	if len(raws) >= 2 &&
		isSingleComplete(raws[0]) && isSingleComplete(raws[1]) &&
		surnames.IsSurname(ctx, raws[0].korean+raws[1].korean, raws[0].hanja+raws[1].hanja) {
		return assemble(raws, 2)
	}

	return assemble(raws, 1)
}

// ParseComplete parses a query that must describe exactly one fully
// specified name: balanced brackets and no wildcard on either side of any
// block. It is used for direct evaluation, never for search.
func ParseComplete(ctx context.Context, query string, surnames SurnameChecker) (ParsedQuery, error) {
	parsed, err := Parse(ctx, query, surnames)
	if err != nil {
		return ParsedQuery{}, err
	}
	if !parsed.IsComplete() {
		return ParsedQuery{}, ErrIncompleteQuery
	}
	if len(parsed.Given) == 0 {
		return ParsedQuery{}, ErrIncompleteQuery
	}
	return parsed, nil
}

func assemble(raws []rawBlock, surnameLen int) (ParsedQuery, error) {
	blocks := make([]domain.NameBlock, 0, len(raws))
	for i, raw := range raws {
		b, err := classify(raw, i)
		if err != nil {
			return ParsedQuery{}, err
		}
		blocks = append(blocks, b)
	}
	if surnameLen > len(blocks) {
		surnameLen = len(blocks)
	}
	return ParsedQuery{Surname: blocks[:surnameLen], Given: blocks[surnameLen:]}, nil
}

// scanBlocks tokenizes "[kor/han][kor/han]..." strictly: any character
// outside a bracket pair, a missing slash, or an unterminated block is a
// malformed query. A prefix of a block is never silently accepted.
func scanBlocks(query string) ([]rawBlock, error) {
	var blocks []rawBlock
	rest := strings.TrimSpace(query)
	for rest != "" {
		if !strings.HasPrefix(rest, "[") {
			return nil, fmt.Errorf("%w: expected '[' at %q", ErrMalformedQuery, rest)
		}
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			return nil, fmt.Errorf("%w: unterminated block in %q", ErrMalformedQuery, rest)
		}
		body := rest[1:end]
		sep := strings.IndexByte(body, '/')
		if sep < 0 {
			return nil, fmt.Errorf("%w: block %q lacks '/'", ErrMalformedQuery, body)
		}
		blocks = append(blocks, rawBlock{
			korean: strings.TrimSpace(body[:sep]),
			hanja:  strings.TrimSpace(body[sep+1:]),
		})
		rest = rest[end+1:]
	}
	return blocks, nil
}

func classify(raw rawBlock, index int) (domain.NameBlock, error) {
	block := domain.NameBlock{}

	switch {
	case raw.korean == "" || raw.korean == wildcardMarker:
		block.Kind = domain.FilterWildcard
	default:
		runes := []rune(raw.korean)
		switch {
		case len(runes) == 1 && hangul.IsSyllable(runes[0]):
			block.Kind = domain.FilterComplete
			block.Hangul = raw.korean
		case len(runes) == 1 && hangul.IsOnsetJamo(runes[0]):
			block.Kind = domain.FilterOnset
			block.Hangul = raw.korean
		case len(runes) == 1 && hangul.IsNucleusJamo(runes[0]):
			block.Kind = domain.FilterNucleus
			block.Hangul = raw.korean
		default:
			return domain.NameBlock{}, fmt.Errorf("%w: block %d korean filter %q", ErrMalformedQuery, index, raw.korean)
		}
	}

	switch {
	case raw.hanja == "" || raw.hanja == wildcardMarker:
		// Wildcard hanja slot.
	case len([]rune(raw.hanja)) == 1:
		block.Hanja = raw.hanja
	default:
		return domain.NameBlock{}, fmt.Errorf("%w: block %d hanja filter %q", ErrMalformedQuery, index, raw.hanja)
	}

	return block, nil
}

func isSingleComplete(raw rawBlock) bool {
	kor := []rune(raw.korean)
	han := []rune(raw.hanja)
	return len(kor) == 1 && hangul.IsSyllable(kor[0]) && len(han) == 1 && raw.hanja != wildcardMarker
}

func allSyllables(runes []rune) bool {
	for _, r := range runes {
		if !hangul.IsSyllable(r) {
			return false
		}
	}
	return len(runes) > 0
}
