package judges

import "testing"

func TestCoerceCategory_ValidatesAgainstAllowed(t *testing.T) {
	allowed := map[string]bool{"learn_skill": true, "career": true}

	out, ok := coerceCategory(map[string]any{
		"category":   "Learn_Skill",
		"confidence": 0.8,
		"rationale":  " skill acquisition ",
	}, allowed)
	if !ok {
		t.Fatalf("expected ok=true")
	}
	if out.Category != "learn_skill" || out.Confidence != 0.8 {
		t.Fatalf("unexpected result: %#v", out)
	}
	if out.Rationale != "skill acquisition" {
		t.Fatalf("expected trimmed rationale, got %q", out.Rationale)
	}

	if _, ok := coerceCategory(map[string]any{"category": "astrology", "confidence": 0.9}, allowed); ok {
		t.Fatalf("unknown category must be rejected")
	}
	if _, ok := coerceCategory(map[string]any{"category": "career"}, allowed); ok {
		t.Fatalf("missing confidence must be rejected")
	}
}

func TestCoerceCategory_ClampsConfidence(t *testing.T) {
	out, ok := coerceCategory(map[string]any{"category": "career", "confidence": 1.7}, map[string]bool{"career": true})
	if !ok || out.Confidence != 1 {
		t.Fatalf("expected clamped confidence 1, got %#v", out)
	}
}

func TestCoerceAnalysis_VerdictEnumAndAngles(t *testing.T) {
	out, ok := coerceAnalysis(map[string]any{
		"verdict": "Actionable",
		"clear":   false,
		"angles": []any{
			map[string]any{"title": "Option A", "description": "desc"},
			map[string]any{"title": ""},
			"not an object",
		},
	})
	if !ok {
		t.Fatalf("expected ok=true")
	}
	if out.Verdict != "actionable" || out.Clear {
		t.Fatalf("unexpected result: %#v", out)
	}
	if len(out.Angles) != 1 || out.Angles[0].Title != "Option A" {
		t.Fatalf("expected one valid angle, got %#v", out.Angles)
	}

	if _, ok := coerceAnalysis(map[string]any{"verdict": "maybe", "clear": true}); ok {
		t.Fatalf("out-of-enum verdict must be rejected")
	}
}

func TestCoerceRealism_LevelEnum(t *testing.T) {
	out, ok := coerceRealism(map[string]any{
		"realism":     "Stretch",
		"why_short":   "tight timeline",
		"adjustments": []any{"extend to 90 days", ""},
	})
	if !ok || out.Realism != "stretch" || out.WhyShort != "tight timeline" {
		t.Fatalf("unexpected result: %#v", out)
	}
	if len(out.Adjustments) != 1 {
		t.Fatalf("empty adjustments must be dropped, got %#v", out.Adjustments)
	}

	if _, ok := coerceRealism(map[string]any{"realism": "impossible"}); ok {
		t.Fatalf("out-of-enum level must be rejected")
	}
}

func TestCoerceEquivalence_RequiresBothFields(t *testing.T) {
	out, ok := coerceEquivalence(map[string]any{"same_request": true, "confidence": 0.95})
	if !ok || !out.SameRequest || out.Confidence != 0.95 {
		t.Fatalf("unexpected result: %#v", out)
	}
	if _, ok := coerceEquivalence(map[string]any{"same_request": true}); ok {
		t.Fatalf("missing confidence must be rejected")
	}
	if _, ok := coerceEquivalence(map[string]any{"confidence": 0.5}); ok {
		t.Fatalf("missing same_request must be rejected")
	}
}

func TestCoerceSafety_RiskEnum(t *testing.T) {
	out, ok := coerceSafety(map[string]any{"risk": "HIGH", "reason": "weapon acquisition"})
	if !ok || out.Risk != "high" {
		t.Fatalf("unexpected result: %#v", out)
	}
	if _, ok := coerceSafety(map[string]any{"risk": "medium"}); ok {
		t.Fatalf("out-of-enum risk must be rejected")
	}
	if _, ok := coerceSafety(map[string]any{}); ok {
		t.Fatalf("missing risk must be rejected")
	}
}
