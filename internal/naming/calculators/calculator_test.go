package calculators

import (
	"reflect"
	"testing"

	domain "github.com/ireum-lab/api/internal/domain"
	"github.com/ireum-lab/api/internal/naming/tables"
)

func testName() domain.ResolvedName {
	return domain.ResolvedName{
		Surname: []domain.HanjaEntry{entry("강", "姜", 9, domain.ElementWood, domain.ElementWood)},
		Given: []domain.HanjaEntry{
			entry("나", "奈", 8, domain.ElementFire, domain.ElementFire),
			entry("예", "藝", 21, domain.ElementEarth, domain.ElementEarth),
		},
	}
}

func TestEngineRecordsEveryFrame(t *testing.T) {
	engine := NewDefaultEngine()
	ctx := domain.NewEvalContext(1, 2, tables.FortuneLabels(), domain.FallbackSajuSummary())
	overall := engine.Evaluate(ctx, testName())

	for _, frame := range []domain.FrameID{
		domain.FrameHangulElement,
		domain.FrameHanjaElement,
		domain.FrameHanjaPolarity,
		domain.FrameSagyeok,
		domain.FrameSajuBalance,
		domain.FrameOverall,
	} {
		if _, ok := ctx.Insight(frame); !ok {
			t.Errorf("missing insight for frame %s", frame)
		}
	}
	if overall.Frame != domain.FrameOverall {
		t.Errorf("overall frame = %s", overall.Frame)
	}
	if overall.Score < 0 || overall.Score > 100 {
		t.Errorf("overall score = %d, out of range", overall.Score)
	}
}

func TestEngineEvaluationIsIdempotent(t *testing.T) {
	engine := NewDefaultEngine()
	name := testName()

	run := func() map[domain.FrameID]domain.FrameInsight {
		ctx := domain.NewEvalContext(1, 2, tables.FortuneLabels(), domain.FallbackSajuSummary())
		engine.Evaluate(ctx, name)
		return ctx.Insights()
	}

	first := run()
	second := run()
	if len(first) != len(second) {
		t.Fatalf("insight counts differ: %d vs %d", len(first), len(second))
	}
	for frame, a := range first {
		b := second[frame]
		if a.Score != b.Score || a.Passed != b.Passed || a.Arrangement != b.Arrangement {
			t.Errorf("frame %s differs between runs: %+v vs %+v", frame, a, b)
		}
		if !reflect.DeepEqual(a.Details, b.Details) {
			t.Errorf("frame %s details differ between runs", frame)
		}
	}
}

func TestEngineVerdictConsistentWithFailedFrames(t *testing.T) {
	engine := NewDefaultEngine()
	ctx := domain.NewEvalContext(1, 2, tables.FortuneLabels(), domain.FallbackSajuSummary())
	overall := engine.Evaluate(ctx, testName())

	failed, _ := overall.Detail("failedFrames").([]string)
	if overall.Detail("policy") == "strict" && overall.Passed && len(failed) != 0 {
		t.Fatalf("strict pass with failed frames: %v", failed)
	}
	for _, f := range failed {
		in, _ := ctx.Insight(domain.FrameID(f))
		if in.Passed {
			t.Errorf("frame %s listed as failed but insight passed", f)
		}
	}
}
