package services

import (
	"context"
	"errors"
	"testing"

	domain "github.com/ireum-lab/api/internal/domain"
	"github.com/ireum-lab/api/internal/naming/calculators"
	"github.com/ireum-lab/api/internal/naming/sagyeok"
	"github.com/ireum-lab/api/internal/naming/tables"
	"github.com/ireum-lab/api/internal/repositories/memory"
)

// Dictionary fixture. Surname 강/姜 has 9 strokes, so the given-name
// stroke tuple (7, 8) yields the frame sums 15/16/17/24, all auspicious.
func testEntries() []domain.HanjaEntry {
	return []domain.HanjaEntry{
		{
			Hangul: "강", Hanja: "姜", Strokes: 9,
			StrokeElement: domain.ElementWood, ResourceElement: domain.ElementWood,
			PhoneticElement: domain.ElementWood, IsSurname: true,
		},
		{
			Hangul: "강", Hanja: "康", Strokes: 11,
			StrokeElement: domain.ElementWood, ResourceElement: domain.ElementWood,
			PhoneticElement: domain.ElementWood, IsSurname: true,
		},
		{
			Hangul: "나", Hanja: "奈", Strokes: 7,
			StrokeElement: domain.ElementFire, ResourceElement: domain.ElementFire,
			PhoneticElement: domain.ElementFire,
		},
		{
			Hangul: "예", Hanja: "藝", Strokes: 8,
			StrokeElement: domain.ElementEarth, ResourceElement: domain.ElementEarth,
			PhoneticElement: domain.ElementEarth,
		},
		// 禮 keeps the auspicious stroke tuple but doubles the wood
		// element, so the stroke-element frame fails without overcoming.
		{
			Hangul: "예", Hanja: "禮", Strokes: 8,
			StrokeElement: domain.ElementWood, ResourceElement: domain.ElementEarth,
			PhoneticElement: domain.ElementEarth,
		},
		{
			Hangul: "소", Hanja: "小", Strokes: 7,
			StrokeElement: domain.ElementFire, ResourceElement: domain.ElementFire,
			PhoneticElement: domain.ElementMetal,
		},
		{
			Hangul: "최", Hanja: "崔", Strokes: 11,
			StrokeElement: domain.ElementWood, ResourceElement: domain.ElementWood,
			PhoneticElement: domain.ElementMetal, IsSurname: true,
		},
		{
			Hangul: "성", Hanja: "成", Strokes: 7,
			StrokeElement: domain.ElementMetal, ResourceElement: domain.ElementMetal,
			PhoneticElement: domain.ElementMetal,
		},
		{
			Hangul: "수", Hanja: "秀", Strokes: 7,
			StrokeElement: domain.ElementMetal, ResourceElement: domain.ElementWater,
			PhoneticElement: domain.ElementMetal,
		},
	}
}

func testStats() []memory.NameStat {
	return []memory.NameStat{
		// Clears every frame and the strict gate.
		{Hangul: "나예", Hanja: "奈藝", Strokes: []int{7, 8}},
		// Clears the gate but fails the stroke-element frame, ranking lower.
		{Hangul: "나예", Hanja: "奈禮", Strokes: []int{7, 8}},
		// 강소예 reads wood-metal-earth: the metal onset overcomes the
		// wood surname, so the strict gate rejects it.
		{Hangul: "소예", Hanja: "小藝", Strokes: []int{7, 8}},
		{Hangul: "성수", Hanja: "成秀", Strokes: []int{7, 7}},
	}
}

type stubSajuProvider struct {
	summary domain.SajuSummary
	err     error
	calls   int
}

func (p *stubSajuProvider) Analyze(context.Context, domain.BirthInfo, string) (domain.SajuSummary, error) {
	p.calls++
	return p.summary, p.err
}

func newTestService(t *testing.T, saju SajuProvider) NamingService {
	t.Helper()
	svc, err := NewNamingService(NamingServiceDeps{
		Hanja:     memory.NewHanjaRepository(testEntries(), nil),
		Stats:     memory.NewStatsRepository(testStats()),
		Optimizer: sagyeok.NewOptimizer(tables.LuckySet()),
		Engine:    calculators.NewDefaultEngine(),
		Saju:      saju,
	})
	if err != nil {
		t.Fatalf("NewNamingService: %v", err)
	}
	return svc
}

func TestNewNamingServiceRequiresDeps(t *testing.T) {
	if _, err := NewNamingService(NamingServiceDeps{}); err == nil {
		t.Fatal("expected construction error without dependencies")
	}
}

func TestSearchRanksGatePassers(t *testing.T) {
	svc := newTestService(t, nil)

	result, err := svc.Search(context.Background(), domain.SearchRequest{
		Query:       "[강/姜][_/_][_/_]",
		Limit:       10,
		IncludeSaju: true,
	})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if result.TotalCount != 2 {
		t.Fatalf("TotalCount = %d, want 2", result.TotalCount)
	}
	if result.Truncated {
		t.Fatal("Truncated = true, want false")
	}
	if len(result.Responses) != 2 {
		t.Fatalf("len(Responses) = %d, want 2", len(result.Responses))
	}

	first, second := result.Responses[0], result.Responses[1]
	if first.Name.Hanja != "姜奈藝" {
		t.Fatalf("top candidate = %s, want 姜奈藝", first.Name.Hanja)
	}
	if second.Name.Hanja != "姜奈禮" {
		t.Fatalf("second candidate = %s, want 姜奈禮", second.Name.Hanja)
	}
	if first.Interpretation.Score < second.Interpretation.Score {
		t.Fatalf("ranking violated: %d < %d", first.Interpretation.Score, second.Interpretation.Score)
	}

	for _, resp := range result.Responses {
		if resp.Name.SurnameLen != 1 || resp.Name.GivenNameLen != 2 {
			t.Fatalf("name lengths = %d/%d", resp.Name.SurnameLen, resp.Name.GivenNameLen)
		}
		assertStrictGate(t, resp)
	}
}

// assertStrictGate re-verifies every gate component from the returned
// category map, the way an external caller would.
func assertStrictGate(t *testing.T, resp domain.SeedResponse) {
	t.Helper()
	sagyeokIn, ok := resp.CategoryMap[domain.FrameSagyeok]
	if !ok || !sagyeokIn.BoolDetail("luckValid") {
		t.Fatalf("%s: sagyeok luck invalid", resp.Name.Hanja)
	}
	hangulIn := resp.CategoryMap[domain.FrameHangulElement]
	if hangulIn.BoolDetail("hasOvercoming") || !hangulIn.BoolDetail("polarityHarmony") {
		t.Fatalf("%s: hangul gate components violated", resp.Name.Hanja)
	}
	if resp.CategoryMap[domain.FrameHanjaElement].BoolDetail("hasOvercoming") {
		t.Fatalf("%s: hanja element overcoming", resp.Name.Hanja)
	}
	if !resp.CategoryMap[domain.FrameHanjaPolarity].Passed {
		t.Fatalf("%s: hanja polarity not passed", resp.Name.Hanja)
	}
	if !resp.CategoryMap[domain.FrameSajuBalance].Passed {
		t.Fatalf("%s: saju frame not passed", resp.Name.Hanja)
	}
}

func TestSearchTruncation(t *testing.T) {
	svc := newTestService(t, nil)

	result, err := svc.Search(context.Background(), domain.SearchRequest{
		Query: "[강/姜][_/_][_/_]",
		Limit: 1,
	})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if result.TotalCount != 2 {
		t.Fatalf("TotalCount = %d, want 2", result.TotalCount)
	}
	if len(result.Responses) != 1 {
		t.Fatalf("len(Responses) = %d, want 1", len(result.Responses))
	}
	if !result.Truncated {
		t.Fatal("Truncated = false, want true")
	}
	if result.Responses[0].Name.Hanja != "姜奈藝" {
		t.Fatalf("retained candidate = %s, want the top-ranked one", result.Responses[0].Name.Hanja)
	}
}

func TestSearchOffsetPaging(t *testing.T) {
	svc := newTestService(t, nil)

	result, err := svc.Search(context.Background(), domain.SearchRequest{
		Query:  "[강/姜][_/_][_/_]",
		Limit:  1,
		Offset: 1,
	})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(result.Responses) != 1 {
		t.Fatalf("len(Responses) = %d, want 1", len(result.Responses))
	}
	if result.Responses[0].Name.Hanja != "姜奈禮" {
		t.Fatalf("offset candidate = %s, want 姜奈禮", result.Responses[0].Name.Hanja)
	}
}

func TestSearchWildcardSurnameHanja(t *testing.T) {
	svc := newTestService(t, nil)

	result, err := svc.Search(context.Background(), domain.SearchRequest{
		Query: "[강/_][_/_][_/_]",
		Limit: 10,
	})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	// 姜 (9 strokes) admits the seeded tuples; 康 (11 strokes) admits
	// none of them, so only 姜 candidates survive.
	if result.TotalCount != 2 {
		t.Fatalf("TotalCount = %d, want 2", result.TotalCount)
	}
	for _, resp := range result.Responses {
		if got := []rune(resp.Name.Hanja)[0]; got != '姜' {
			t.Fatalf("unexpected surname hanja %c", got)
		}
	}
}

func TestSearchUnknownSurnameEmpty(t *testing.T) {
	svc := newTestService(t, nil)

	result, err := svc.Search(context.Background(), domain.SearchRequest{
		Query: "[왕/王][_/_]",
		Limit: 10,
	})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if result.TotalCount != 0 || len(result.Responses) != 0 || result.Truncated {
		t.Fatalf("want empty non-truncated result, got %+v", result)
	}
}

func TestSearchSurnameOnly(t *testing.T) {
	svc := newTestService(t, nil)

	result, err := svc.Search(context.Background(), domain.SearchRequest{
		Query: "[강/姜]",
		Limit: 10,
	})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if result.TotalCount != 1 || len(result.Responses) != 1 {
		t.Fatalf("want single surname candidate, got %+v", result)
	}
	resp := result.Responses[0]
	if resp.Name.Hangul != "강" || resp.Name.GivenNameLen != 0 {
		t.Fatalf("surname candidate = %+v", resp.Name)
	}
}

func TestSearchMalformedQuery(t *testing.T) {
	svc := newTestService(t, nil)

	_, err := svc.Search(context.Background(), domain.SearchRequest{Query: "[강/姜"})
	if !errors.Is(err, ErrNamingInvalidQuery) {
		t.Fatalf("err = %v, want ErrNamingInvalidQuery", err)
	}
}

func TestSearchExcludesSajuCategoryUnlessRequested(t *testing.T) {
	svc := newTestService(t, nil)

	result, err := svc.Search(context.Background(), domain.SearchRequest{
		Query: "[강/姜][_/_][_/_]",
		Limit: 10,
	})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	for _, resp := range result.Responses {
		if _, ok := resp.CategoryMap[domain.FrameSajuBalance]; ok {
			t.Fatal("saju insight present without IncludeSaju")
		}
		if _, ok := resp.CategoryMap[domain.FrameOverall]; !ok {
			t.Fatal("overall insight missing")
		}
	}
}

func TestSearchIsDeterministic(t *testing.T) {
	svc := newTestService(t, nil)
	req := domain.SearchRequest{Query: "[강/姜][_/_][_/_]", Limit: 10}

	first, err := svc.Search(context.Background(), req)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	second, err := svc.Search(context.Background(), req)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(first.Responses) != len(second.Responses) {
		t.Fatalf("result sizes differ: %d vs %d", len(first.Responses), len(second.Responses))
	}
	for i := range first.Responses {
		a, b := first.Responses[i], second.Responses[i]
		if a.Name != b.Name || a.Interpretation.Score != b.Interpretation.Score {
			t.Fatalf("rank %d differs: %+v vs %+v", i, a.Name, b.Name)
		}
	}
}

func TestEvaluateCompleteQueryWithSajuFallback(t *testing.T) {
	provider := &stubSajuProvider{err: errors.New("pillar backend down")}
	svc := newTestService(t, provider)

	resp, err := svc.Evaluate(context.Background(), EvaluateCommand{
		Query: "[최/崔][성/成][수/秀]",
		Birth: &domain.BirthInfo{Year: 1986, Month: 4, Day: 19, Hour: 5, Minute: 45, HasTime: true},
	})
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if provider.calls != 1 {
		t.Fatalf("provider calls = %d, want 1", provider.calls)
	}

	if resp.Name.Hangul != "최성수" || resp.Name.Hanja != "崔成秀" {
		t.Fatalf("name = %+v", resp.Name)
	}
	sajuIn, ok := resp.CategoryMap[domain.FrameSajuBalance]
	if !ok {
		t.Fatal("saju insight missing from direct evaluation")
	}
	if got := sajuIn.Detail("sajuDistributionSource"); got != "fallback" {
		t.Fatalf("sajuDistributionSource = %v, want fallback", got)
	}
	if resp.Interpretation.Status == "" {
		t.Fatal("status band missing")
	}
}

func TestEvaluateUsesProviderSummary(t *testing.T) {
	provider := &stubSajuProvider{summary: domain.SajuSummary{
		Distribution: map[domain.Element]float64{
			domain.ElementWood:  3,
			domain.ElementWater: 1,
		},
		Source: "birth",
	}}
	svc := newTestService(t, provider)

	resp, err := svc.Evaluate(context.Background(), EvaluateCommand{
		Query:  "[강/姜][나/奈][예/藝]",
		Birth:  &domain.BirthInfo{Year: 1990, Month: 1, Day: 1},
		Gender: "F",
	})
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	sajuIn := resp.CategoryMap[domain.FrameSajuBalance]
	if got := sajuIn.Detail("sajuDistributionSource"); got != "birth" {
		t.Fatalf("sajuDistributionSource = %v, want birth", got)
	}
}

func TestEvaluateNameInput(t *testing.T) {
	svc := newTestService(t, nil)

	resp, err := svc.Evaluate(context.Background(), EvaluateCommand{
		Name: &domain.NameInput{
			SurnameHangul: "강", SurnameHanja: "姜",
			GivenHangul: "나예", GivenHanja: "奈藝",
		},
	})
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if resp.Name.Hanja != "姜奈藝" {
		t.Fatalf("name = %+v", resp.Name)
	}
	if !resp.Interpretation.Passed {
		t.Fatalf("expected passing verdict, got %+v", resp.Interpretation)
	}
	if resp.Interpretation.Status != statusExcellent && resp.Interpretation.Status != statusGood {
		t.Fatalf("status = %s", resp.Interpretation.Status)
	}
}

func TestEvaluateRejectsIncompleteQuery(t *testing.T) {
	svc := newTestService(t, nil)

	_, err := svc.Evaluate(context.Background(), EvaluateCommand{Query: "[강/姜][_/_]"})
	if !errors.Is(err, ErrNamingInvalidQuery) {
		t.Fatalf("err = %v, want ErrNamingInvalidQuery", err)
	}
}

func TestEvaluateInputValidation(t *testing.T) {
	svc := newTestService(t, nil)

	cases := []EvaluateCommand{
		{},
		{Query: "[강/姜][나/奈]", Name: &domain.NameInput{}},
		{Name: &domain.NameInput{SurnameHangul: "강", SurnameHanja: "姜"}},
		{Name: &domain.NameInput{SurnameHangul: "강", SurnameHanja: "姜", GivenHangul: "나예다예다", GivenHanja: "奈藝奈藝奈"}},
		{Name: &domain.NameInput{SurnameHangul: "강", SurnameHanja: "姜奈", GivenHangul: "나", GivenHanja: "奈"}},
	}
	for i, cmd := range cases {
		if _, err := svc.Evaluate(context.Background(), cmd); !errors.Is(err, ErrNamingInvalidInput) {
			t.Fatalf("case %d: err = %v, want ErrNamingInvalidInput", i, err)
		}
	}
}

func TestTopKOrdering(t *testing.T) {
	k := newTopK(2)
	mk := func(score int, hangul, hanja string) domain.SeedResponse {
		return domain.SeedResponse{
			Name:           domain.NameView{Hangul: hangul, Hanja: hanja},
			Interpretation: domain.Interpretation{Score: score},
		}
	}
	k.Offer(mk(70, "나다", "奈茶"))
	k.Offer(mk(90, "가나", "加奈"))
	k.Offer(mk(80, "다라", "茶羅"))
	k.Offer(mk(60, "마바", "馬朴"))

	ranked := k.Ranked()
	if len(ranked) != 2 {
		t.Fatalf("len = %d, want 2", len(ranked))
	}
	if ranked[0].Interpretation.Score != 90 || ranked[1].Interpretation.Score != 80 {
		t.Fatalf("scores = %d, %d", ranked[0].Interpretation.Score, ranked[1].Interpretation.Score)
	}
}

func TestTopKTieBreak(t *testing.T) {
	k := newTopK(2)
	mk := func(hangul, hanja string) domain.SeedResponse {
		return domain.SeedResponse{
			Name:           domain.NameView{Hangul: hangul, Hanja: hanja},
			Interpretation: domain.Interpretation{Score: 80},
		}
	}
	k.Offer(mk("다라", "茶羅"))
	k.Offer(mk("가나", "加奈"))
	k.Offer(mk("나다", "奈茶"))

	ranked := k.Ranked()
	if ranked[0].Name.Hangul != "가나" || ranked[1].Name.Hangul != "나다" {
		t.Fatalf("tie-break order = %s, %s", ranked[0].Name.Hangul, ranked[1].Name.Hangul)
	}
}
