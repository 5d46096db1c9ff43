// Package judges wraps the external, possibly non-deterministic classifiers
// the engine consults only when deterministic rules are inconclusive. Every
// judge returns a typed result plus an ok flag; nil output, timeouts and
// malformed JSON are all "no signal", never errors.
package judges

import "context"

// Angle is a suggested alternative framing of the user's goal.
type Angle struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// IntentInfo is the small prompt-templated input record judges receive.
type IntentInfo struct {
	NormalizedIntent string
	IntentLang       string
	Locale           string
	Days             int
}

type CategoryResult struct {
	Category    string
	Subcategory string
	Confidence  float64
	Rationale   string
}

type AnalysisResult struct {
	Clear           bool
	Verdict         string // actionable|needs_clarify
	ClarifyQuestion string
	Angles          []Angle
}

type RealismResult struct {
	Realism     string // ok|stretch|unrealistic
	WhyShort    string
	Adjustments []string
}

type EquivalenceResult struct {
	SameRequest bool
	Confidence  float64
	Reason      string
}

type SafetyResult struct {
	Risk   string // none|low|high
	Reason string
}

// Judges is the full judge surface the orchestrator depends on.
type Judges interface {
	RouteCategory(ctx context.Context, in IntentInfo) (CategoryResult, bool)
	AnalyzeCategory(ctx context.Context, in IntentInfo, category string) (AnalysisResult, bool)
	AssessRealism(ctx context.Context, in IntentInfo, category string) (RealismResult, bool)
	JudgeEquivalence(ctx context.Context, lang, intentA, intentB string) (EquivalenceResult, bool)
	AssessSafety(ctx context.Context, text string) (SafetyResult, bool)
}
