package judges

import (
	"context"
	"errors"
	"testing"

	"github.com/goalflow-ai/goalflow-backend/internal/platform/logger"
	"github.com/goalflow-ai/goalflow-backend/internal/types"
)

type fakeAI struct {
	resp       map[string]any
	err        error
	called     bool
	schemaName string
	user       string
}

func (f *fakeAI) GenerateJSON(ctx context.Context, system, user, schemaName string, schema map[string]any) (map[string]any, error) {
	f.called = true
	f.schemaName = schemaName
	f.user = user
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

func (f *fakeAI) GenerateText(ctx context.Context, system, user string) (string, error) {
	return "", errors.New("not used")
}

func (f *fakeAI) Model() string { return "test-model" }

type fakeCallLog struct {
	entries []*types.JudgeCallLog
}

func (f *fakeCallLog) Create(ctx context.Context, entry *types.JudgeCallLog) error {
	f.entries = append(f.entries, entry)
	return nil
}

func TestRouteCategory_ParsesAndLogs(t *testing.T) {
	ai := &fakeAI{resp: map[string]any{
		"category":   "learn_skill",
		"confidence": 0.85,
		"rationale":  "skill goal",
	}}
	calls := &fakeCallLog{}
	j := NewLLM(ai, logger.NewNop(), calls, []string{"learn_skill", "career"})

	out, ok := j.RouteCategory(context.Background(), IntentInfo{
		NormalizedIntent: "learn guitar",
		IntentLang:       "en",
		Days:             30,
	})
	if !ok {
		t.Fatalf("expected ok=true")
	}
	if out.Category != "learn_skill" || out.Confidence != 0.85 {
		t.Fatalf("unexpected result: %#v", out)
	}
	if ai.schemaName != "category_route" {
		t.Fatalf("unexpected schema name: %q", ai.schemaName)
	}
	if len(calls.entries) != 1 {
		t.Fatalf("expected one call log entry, got %d", len(calls.entries))
	}
	entry := calls.entries[0]
	if entry.Judge != "category_router" || !entry.Success || entry.Model != "test-model" {
		t.Fatalf("unexpected log entry: %#v", entry)
	}
}

func TestRouteCategory_UnknownCategoryIsNoSignal(t *testing.T) {
	ai := &fakeAI{resp: map[string]any{"category": "astrology", "confidence": 0.99}}
	j := NewLLM(ai, logger.NewNop(), nil, []string{"learn_skill"})

	if _, ok := j.RouteCategory(context.Background(), IntentInfo{NormalizedIntent: "x"}); ok {
		t.Fatalf("unknown category must be no signal")
	}
}

func TestJudges_ClientErrorIsNoSignalNotError(t *testing.T) {
	ai := &fakeAI{err: context.DeadlineExceeded}
	calls := &fakeCallLog{}
	j := NewLLM(ai, logger.NewNop(), calls, []string{"learn_skill"})

	if _, ok := j.AssessSafety(context.Background(), "learn guitar"); ok {
		t.Fatalf("client error must be no signal")
	}
	if _, ok := j.JudgeEquivalence(context.Background(), "en", "a", "b"); ok {
		t.Fatalf("client error must be no signal")
	}
	if len(calls.entries) != 2 {
		t.Fatalf("failed calls must still be logged, got %d entries", len(calls.entries))
	}
	for _, entry := range calls.entries {
		if entry.Success || entry.Error == "" {
			t.Fatalf("expected failure entry, got %#v", entry)
		}
	}
}

func TestAnalyzeCategory_MalformedPayloadIsNoSignal(t *testing.T) {
	ai := &fakeAI{resp: map[string]any{"clear": true}}
	j := NewLLM(ai, logger.NewNop(), nil, nil)

	if _, ok := j.AnalyzeCategory(context.Background(), IntentInfo{NormalizedIntent: "x"}, "learn_skill"); ok {
		t.Fatalf("payload missing verdict must be no signal")
	}
}

func TestAssessRealism_PassesThroughAdjustments(t *testing.T) {
	ai := &fakeAI{resp: map[string]any{
		"realism":     "unrealistic",
		"why_short":   "timeframe too short",
		"adjustments": []any{"narrow the scope", "extend the deadline"},
	}}
	j := NewLLM(ai, logger.NewNop(), nil, nil)

	out, ok := j.AssessRealism(context.Background(), IntentInfo{NormalizedIntent: "x", Days: 7}, "career")
	if !ok {
		t.Fatalf("expected ok=true")
	}
	if out.Realism != "unrealistic" || len(out.Adjustments) != 2 {
		t.Fatalf("unexpected result: %#v", out)
	}
}

func TestJudgeEquivalence_HappyPath(t *testing.T) {
	ai := &fakeAI{resp: map[string]any{"same_request": true, "confidence": 0.9, "reason": "paraphrase"}}
	j := NewLLM(ai, logger.NewNop(), nil, nil)

	out, ok := j.JudgeEquivalence(context.Background(), "en", "learn to sew", "learn sewing")
	if !ok || !out.SameRequest || out.Confidence != 0.9 {
		t.Fatalf("unexpected result: %#v", out)
	}
	if ai.user == "" {
		t.Fatalf("expected both intents in the prompt")
	}
}
