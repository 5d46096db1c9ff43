package judges

import "strings"

// Coercion helpers parse-and-validate raw judge output. A schema mismatch
// yields ok=false, never a panic or an error.

func getString(m map[string]any, key string) (string, bool) {
	v, ok := m[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(s), true
}

func getBool(m map[string]any, key string) (bool, bool) {
	v, ok := m[key]
	if !ok {
		return false, false
	}
	b, ok := v.(bool)
	return b, ok
}

func getFloat(m map[string]any, key string) (float64, bool) {
	v, ok := m[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	}
	return 0, false
}

func getStringSlice(m map[string]any, key string) []string {
	v, ok := m[key]
	if !ok {
		return nil
	}
	raw, ok := v.([]any)
	if !ok {
		return nil
	}
	var out []string
	for _, item := range raw {
		if s, ok := item.(string); ok {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

func clampConfidence(c float64) float64 {
	if c < 0 {
		return 0
	}
	if c > 1 {
		return 1
	}
	return c
}

func coerceCategory(m map[string]any, allowed map[string]bool) (CategoryResult, bool) {
	var out CategoryResult
	cat, ok := getString(m, "category")
	if !ok || cat == "" {
		return out, false
	}
	cat = strings.ToLower(cat)
	if len(allowed) > 0 && !allowed[cat] {
		return out, false
	}
	conf, ok := getFloat(m, "confidence")
	if !ok {
		return out, false
	}
	out.Category = cat
	out.Confidence = clampConfidence(conf)
	out.Subcategory, _ = getString(m, "subcategory")
	out.Rationale, _ = getString(m, "rationale")
	return out, true
}

func coerceAnalysis(m map[string]any) (AnalysisResult, bool) {
	var out AnalysisResult
	verdict, ok := getString(m, "verdict")
	if !ok {
		return out, false
	}
	verdict = strings.ToLower(verdict)
	if verdict != "actionable" && verdict != "needs_clarify" {
		return out, false
	}
	out.Verdict = verdict
	out.Clear, _ = getBool(m, "clear")
	out.ClarifyQuestion, _ = getString(m, "clarify_question")

	if raw, ok := m["angles"].([]any); ok {
		for _, item := range raw {
			am, ok := item.(map[string]any)
			if !ok {
				continue
			}
			title, ok := getString(am, "title")
			if !ok || title == "" {
				continue
			}
			desc, _ := getString(am, "description")
			out.Angles = append(out.Angles, Angle{Title: title, Description: desc})
		}
	}
	return out, true
}

func coerceRealism(m map[string]any) (RealismResult, bool) {
	var out RealismResult
	level, ok := getString(m, "realism")
	if !ok {
		return out, false
	}
	level = strings.ToLower(level)
	switch level {
	case "ok", "stretch", "unrealistic":
	default:
		return out, false
	}
	out.Realism = level
	out.WhyShort, _ = getString(m, "why_short")
	out.Adjustments = getStringSlice(m, "adjustments")
	return out, true
}

func coerceEquivalence(m map[string]any) (EquivalenceResult, bool) {
	var out EquivalenceResult
	same, ok := getBool(m, "same_request")
	if !ok {
		return out, false
	}
	conf, ok := getFloat(m, "confidence")
	if !ok {
		return out, false
	}
	out.SameRequest = same
	out.Confidence = clampConfidence(conf)
	out.Reason, _ = getString(m, "reason")
	return out, true
}

func coerceSafety(m map[string]any) (SafetyResult, bool) {
	var out SafetyResult
	risk, ok := getString(m, "risk")
	if !ok {
		return out, false
	}
	risk = strings.ToLower(risk)
	switch risk {
	case "none", "low", "high":
	default:
		return out, false
	}
	out.Risk = risk
	out.Reason, _ = getString(m, "reason")
	return out, true
}
