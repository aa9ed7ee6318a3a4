package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	domain "github.com/ireum-lab/api/internal/domain"
	"github.com/ireum-lab/api/internal/naming/calculators"
	"github.com/ireum-lab/api/internal/naming/queryparse"
	"github.com/ireum-lab/api/internal/naming/sagyeok"
	"github.com/ireum-lab/api/internal/naming/tables"
	"github.com/ireum-lab/api/internal/repositories"
)

const (
	defaultSearchLimit = 10
	maxSearchLimit     = 100

	namingLoggerEventSajuFallback = "naming.saju.fallback"
	namingLoggerEventSearch       = "naming.search.completed"
)

var (
	// ErrNamingInvalidQuery indicates a query that cannot be parsed or searched.
	ErrNamingInvalidQuery = errors.New("naming: invalid query")
	// ErrNamingInvalidInput indicates a malformed direct-evaluation input.
	ErrNamingInvalidInput = errors.New("naming: invalid input")
	// ErrNamingRepositoryFailure wraps unexpected repository failures.
	ErrNamingRepositoryFailure = errors.New("naming: repository failure")
)

// NamingServiceDeps wires dependencies for the naming service implementation.
type NamingServiceDeps struct {
	Hanja     repositories.HanjaRepository
	Stats     repositories.StatsRepository
	Optimizer *sagyeok.Optimizer
	Engine    *calculators.Engine
	// Saju defaults to the fallback provider when nil.
	Saju SajuProvider
	// Lucky maps a normalized frame sum to its fortune label; defaults to
	// the built-in fortune table.
	Lucky  map[int]string
	Logger func(ctx context.Context, event string, fields map[string]any)
}

type namingService struct {
	hanja     repositories.HanjaRepository
	stats     repositories.StatsRepository
	optimizer *sagyeok.Optimizer
	engine    *calculators.Engine
	saju      SajuProvider
	lucky     map[int]string
	logger    func(context.Context, string, map[string]any)
}

// NewNamingService constructs a NamingService backed by the provided
// dependencies.
func NewNamingService(deps NamingServiceDeps) (NamingService, error) {
	if deps.Hanja == nil {
		return nil, errors.New("naming service: hanja repository is required")
	}
	if deps.Stats == nil {
		return nil, errors.New("naming service: stats repository is required")
	}
	if deps.Optimizer == nil {
		return nil, errors.New("naming service: optimizer is required")
	}
	if deps.Engine == nil {
		return nil, errors.New("naming service: engine is required")
	}

	saju := deps.Saju
	if saju == nil {
		saju = FallbackSajuProvider{}
	}
	lucky := deps.Lucky
	if lucky == nil {
		lucky = tables.FortuneLabels()
	}
	logger := deps.Logger
	if logger == nil {
		logger = func(context.Context, string, map[string]any) {}
	}

	return &namingService{
		hanja:     deps.Hanja,
		stats:     deps.Stats,
		optimizer: deps.Optimizer,
		engine:    deps.Engine,
		saju:      saju,
		lucky:     lucky,
		logger:    logger,
	}, nil
}

// Search implements NamingService. The request runs as one synchronous
// pass: parse, resolve surnames, prune by the four-frame optimizer,
// evaluate every surviving combination, gate, and keep a bounded top-K.
func (s *namingService) Search(ctx context.Context, req domain.SearchRequest) (domain.SearchResult, error) {
	limit := normalizeLimit(req.Limit)
	offset := req.Offset
	if offset < 0 {
		offset = 0
	}

	parsed, err := queryparse.Parse(ctx, req.Query, s.hanja)
	if err != nil {
		return domain.SearchResult{}, fmt.Errorf("%w: %v", ErrNamingInvalidQuery, err)
	}
	if len(parsed.Given) > domain.MaxGivenNameLength {
		return domain.SearchResult{}, fmt.Errorf("%w: given name longer than %d", ErrNamingInvalidQuery, domain.MaxGivenNameLength)
	}

	result := domain.SearchResult{Query: req.Query, Responses: []domain.SeedResponse{}}

	surnames := s.resolveSurnames(ctx, parsed.Surname)
	if len(surnames) == 0 {
		return result, nil
	}

	saju := s.resolveSaju(ctx, req.Birth, req.Gender)

	if len(parsed.Given) == 0 {
		return s.searchSurnameOnly(ctx, result, surnames, saju, limit, offset, req.IncludeSaju)
	}

	// The heap retains limit+offset candidates so offset slicing still
	// sees fully ranked entries.
	retained := newTopK(limit + offset)
	passed := 0
	for _, surname := range surnames {
		surnameStrokes := strokesOf(surname)
		allow, err := s.optimizer.ValidTuples(surnameStrokes, len(parsed.Given))
		if err != nil {
			return domain.SearchResult{}, fmt.Errorf("%w: %v", ErrNamingInvalidQuery, err)
		}

		combos, err := s.stats.Combinations(ctx, parsed.Given, allow)
		if err != nil {
			return domain.SearchResult{}, fmt.Errorf("%w: %v", ErrNamingRepositoryFailure, err)
		}

		for _, combo := range combos {
			given, ok := s.resolveGiven(ctx, combo)
			if !ok {
				continue
			}
			name := domain.ResolvedName{Surname: surname, Given: given}
			// The gate re-checks resolved dictionary strokes; stored
			// stats strokes may disagree with the dictionary.
			if !s.optimizer.IsValid(surnameStrokes, name.GivenStrokes()) {
				continue
			}

			ectx := domain.NewEvalContext(len(surname), len(given), s.lucky, saju)
			ectx.SagyeokValid = true
			overall := s.engine.Evaluate(ectx, name)
			if !passesStrictGate(ectx) {
				continue
			}
			passed++
			retained.Offer(buildResponse(name, overall, ectx, req.IncludeSaju))
		}
	}

	ranked := retained.Ranked()
	result.TotalCount = passed
	result.Truncated = passed > len(ranked)
	result.Responses = page(ranked, offset, limit)

	s.logger(ctx, namingLoggerEventSearch, map[string]any{
		"query":      req.Query,
		"totalCount": passed,
		"returned":   len(result.Responses),
		"truncated":  result.Truncated,
	})
	return result, nil
}

// searchSurnameOnly evaluates each resolved surname alone. The strict
// gate does not apply: a surname is not a selectable name candidate, the
// caller asked what the surname itself scores.
func (s *namingService) searchSurnameOnly(ctx context.Context, result domain.SearchResult, surnames [][]domain.HanjaEntry, saju domain.SajuSummary, limit, offset int, includeSaju bool) (domain.SearchResult, error) {
	retained := newTopK(limit + offset)
	for _, surname := range surnames {
		name := domain.ResolvedName{Surname: surname}
		ectx := domain.NewEvalContext(len(surname), 0, s.lucky, saju)
		overall := s.engine.Evaluate(ectx, name)
		retained.Offer(buildResponse(name, overall, ectx, includeSaju))
	}
	ranked := retained.Ranked()
	result.TotalCount = len(surnames)
	result.Truncated = len(surnames) > len(ranked)
	result.Responses = page(ranked, offset, limit)
	return result, nil
}

// Evaluate implements NamingService.
func (s *namingService) Evaluate(ctx context.Context, cmd EvaluateCommand) (domain.SeedResponse, error) {
	name, err := s.resolveEvaluateName(ctx, cmd)
	if err != nil {
		return domain.SeedResponse{}, err
	}

	saju := s.resolveSaju(ctx, cmd.Birth, cmd.Gender)
	ectx := domain.NewEvalContext(len(name.Surname), len(name.Given), s.lucky, saju)
	ectx.SagyeokValid = s.optimizer.IsValid(name.SurnameStrokes(), name.GivenStrokes())
	overall := s.engine.Evaluate(ectx, name)
	return buildResponse(name, overall, ectx, true), nil
}

func (s *namingService) resolveEvaluateName(ctx context.Context, cmd EvaluateCommand) (domain.ResolvedName, error) {
	switch {
	case cmd.Query != "" && cmd.Name != nil:
		return domain.ResolvedName{}, fmt.Errorf("%w: query and name are mutually exclusive", ErrNamingInvalidInput)
	case cmd.Query != "":
		parsed, err := queryparse.ParseComplete(ctx, cmd.Query, s.hanja)
		if err != nil {
			return domain.ResolvedName{}, fmt.Errorf("%w: %v", ErrNamingInvalidQuery, err)
		}
		if len(parsed.Given) > domain.MaxGivenNameLength {
			return domain.ResolvedName{}, fmt.Errorf("%w: given name longer than %d", ErrNamingInvalidQuery, domain.MaxGivenNameLength)
		}
		name := domain.ResolvedName{}
		for _, b := range parsed.Surname {
			name.Surname = append(name.Surname, s.hanja.GetHanjaInfo(ctx, b.Hangul, b.Hanja, true))
		}
		for _, b := range parsed.Given {
			name.Given = append(name.Given, s.hanja.GetHanjaInfo(ctx, b.Hangul, b.Hanja, false))
		}
		return name, nil
	case cmd.Name != nil:
		return s.resolveNameInput(ctx, *cmd.Name)
	default:
		return domain.ResolvedName{}, fmt.Errorf("%w: query or name is required", ErrNamingInvalidInput)
	}
}

func (s *namingService) resolveNameInput(ctx context.Context, in domain.NameInput) (domain.ResolvedName, error) {
	pairs, err := s.hanja.DecomposeSurname(ctx, in.SurnameHangul, in.SurnameHanja)
	if err != nil {
		return domain.ResolvedName{}, fmt.Errorf("%w: %v", ErrNamingInvalidInput, err)
	}

	givenHangul := []rune(in.GivenHangul)
	givenHanja := []rune(in.GivenHanja)
	if len(givenHangul) == 0 || len(givenHangul) > domain.MaxGivenNameLength || len(givenHangul) != len(givenHanja) {
		return domain.ResolvedName{}, fmt.Errorf("%w: given name %q/%q", ErrNamingInvalidInput, in.GivenHangul, in.GivenHanja)
	}

	name := domain.ResolvedName{}
	for _, p := range pairs {
		name.Surname = append(name.Surname, s.hanja.GetHanjaInfo(ctx, p.Hangul, p.Hanja, true))
	}
	for i := range givenHangul {
		name.Given = append(name.Given, s.hanja.GetHanjaInfo(ctx, string(givenHangul[i]), string(givenHanja[i]), false))
	}
	return name, nil
}

// resolveSurnames expands the surname blocks into concrete entry lists.
// A surname block set that cannot resolve yields nil, which the caller
// turns into an empty result.
func (s *namingService) resolveSurnames(ctx context.Context, blocks []domain.NameBlock) [][]domain.HanjaEntry {
	if len(blocks) == 0 {
		return nil
	}

	if len(blocks) == 1 {
		b := blocks[0]
		switch {
		case b.IsComplete():
			if !s.hanja.IsSurname(ctx, b.Hangul, b.Hanja) {
				return nil
			}
			return [][]domain.HanjaEntry{{s.hanja.GetHanjaInfo(ctx, b.Hangul, b.Hanja, true)}}
		case b.Kind == domain.FilterComplete:
			// Known reading, wildcard hanja: every surname entry for the
			// reading becomes a candidate.
			entries := s.hanja.SurnameEntries(ctx, b.Hangul)
			out := make([][]domain.HanjaEntry, 0, len(entries))
			for _, e := range entries {
				out = append(out, []domain.HanjaEntry{e})
			}
			return out
		default:
			// A jamo or wildcard surname cannot anchor a search.
			return nil
		}
	}

	// Compound surname: the parser only produces two surname blocks when
	// both are complete and the pair is a known surname.
	candidate := make([]domain.HanjaEntry, 0, len(blocks))
	for _, b := range blocks {
		if !b.IsComplete() {
			return nil
		}
		candidate = append(candidate, s.hanja.GetHanjaInfo(ctx, b.Hangul, b.Hanja, true))
	}
	return [][]domain.HanjaEntry{candidate}
}

func (s *namingService) resolveGiven(ctx context.Context, combo domain.NameCombination) ([]domain.HanjaEntry, bool) {
	hangulRunes := []rune(combo.Hangul)
	hanjaRunes := []rune(combo.Hanja)
	if len(hangulRunes) == 0 || len(hangulRunes) != len(hanjaRunes) {
		return nil, false
	}
	entries := make([]domain.HanjaEntry, len(hangulRunes))
	for i := range hangulRunes {
		entries[i] = s.hanja.GetHanjaInfo(ctx, string(hangulRunes[i]), string(hanjaRunes[i]), false)
	}
	return entries, true
}

// resolveSaju asks the provider for a birth-based summary and replaces
// any failure or empty distribution with the fallback. Provider errors
// never propagate past this boundary.
func (s *namingService) resolveSaju(ctx context.Context, birth *domain.BirthInfo, gender string) domain.SajuSummary {
	if birth == nil {
		return domain.FallbackSajuSummary()
	}
	summary, err := s.saju.Analyze(ctx, *birth, gender)
	if err != nil {
		s.logger(ctx, namingLoggerEventSajuFallback, map[string]any{"error": err.Error()})
		return domain.FallbackSajuSummary()
	}
	if len(summary.Distribution) == 0 {
		return domain.FallbackSajuSummary()
	}
	return summary
}

// passesStrictGate applies the search-only hard gate on top of the
// aggregator's verdict: numerology luck validity, polarity harmony in
// both the phonetic and stroke frames, no overcoming adjacency in either
// element frame, and a passing saju frame. Every component is readable
// from the returned category map.
func passesStrictGate(ectx *domain.EvalContext) bool {
	sagyeokIn, ok := ectx.Insight(domain.FrameSagyeok)
	if !ok || !sagyeokIn.BoolDetail("luckValid") {
		return false
	}
	hangulIn, ok := ectx.Insight(domain.FrameHangulElement)
	if !ok || hangulIn.BoolDetail("hasOvercoming") || !hangulIn.BoolDetail("polarityHarmony") {
		return false
	}
	elemIn, ok := ectx.Insight(domain.FrameHanjaElement)
	if !ok || elemIn.BoolDetail("hasOvercoming") {
		return false
	}
	polarityIn, ok := ectx.Insight(domain.FrameHanjaPolarity)
	if !ok || !polarityIn.Passed {
		return false
	}
	sajuIn, ok := ectx.Insight(domain.FrameSajuBalance)
	if !ok || !sajuIn.Passed {
		return false
	}
	return true
}

// Status bands over the aggregate score.
const (
	statusExcellent = "excellent"
	statusGood      = "good"
	statusFair      = "fair"
	statusPoor      = "poor"
)

func statusBand(score int) string {
	switch {
	case score >= 85:
		return statusExcellent
	case score >= 70:
		return statusGood
	case score >= 55:
		return statusFair
	default:
		return statusPoor
	}
}

func buildResponse(name domain.ResolvedName, overall domain.FrameInsight, ectx *domain.EvalContext, includeSaju bool) domain.SeedResponse {
	insights := ectx.Insights()
	if !includeSaju {
		delete(insights, domain.FrameSajuBalance)
	}

	categories := make([]string, 0, len(insights))
	for frame := range insights {
		if frame == domain.FrameOverall {
			continue
		}
		categories = append(categories, string(frame))
	}
	sort.Strings(categories)

	var failed []string
	if fs, ok := overall.Detail("failedFrames").([]string); ok {
		failed = fs
	}

	return domain.SeedResponse{
		Name: domain.NameView{
			Hangul:       name.HangulString(),
			Hanja:        name.HanjaString(),
			SurnameLen:   len(name.Surname),
			GivenNameLen: len(name.Given),
		},
		Interpretation: domain.Interpretation{
			Score:        overall.Score,
			Passed:       overall.Passed,
			Status:       statusBand(overall.Score),
			Categories:   categories,
			FailedFrames: failed,
		},
		CategoryMap: insights,
	}
}

func strokesOf(entries []domain.HanjaEntry) []int {
	out := make([]int, len(entries))
	for i, e := range entries {
		out[i] = e.Strokes
	}
	return out
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return defaultSearchLimit
	}
	if limit > maxSearchLimit {
		return maxSearchLimit
	}
	return limit
}

func page(ranked []domain.SeedResponse, offset, limit int) []domain.SeedResponse {
	if offset >= len(ranked) {
		return []domain.SeedResponse{}
	}
	end := offset + limit
	if end > len(ranked) {
		end = len(ranked)
	}
	return ranked[offset:end]
}
