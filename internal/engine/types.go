package engine

import (
	"github.com/goalflow-ai/goalflow-backend/internal/engine/judges"
)

// Outcome is the terminal tag of one pipeline run. Exactly one is reached per
// evaluation; the caller renders from it.
type Outcome string

const (
	OutcomeProceedToGenerate     Outcome = "PROCEED_TO_GENERATE"
	OutcomeShowAngles            Outcome = "SHOW_ANGLES"
	OutcomeAskClarification      Outcome = "ASK_CLARIFICATION"
	OutcomeConfirmAmbition       Outcome = "CONFIRM_AMBITION"
	OutcomeAskUserChooseCategory Outcome = "ASK_USER_CHOOSE_CATEGORY"
	OutcomeRealismAdjust         Outcome = "REALISM_ADJUST"
	OutcomeBlockedSafety         Outcome = "BLOCKED_SAFETY"
	OutcomePlayfulOrNonsense     Outcome = "PLAYFUL_OR_NONSENSE"
)

// Verdict is the coarse persisted classification of a decision.
type Verdict string

const (
	VerdictActionable   Verdict = "ACTIONABLE"
	VerdictNeedsClarify Verdict = "NEEDS_CLARIFY"
	VerdictBlocked      Verdict = "BLOCKED"
)

// Angle is a suggested alternative framing of the user's goal.
type Angle = judges.Angle

// RealismInfo is attached when the feasibility check asked for adjustments.
type RealismInfo struct {
	Level       string   `json:"level"` // ok|stretch|unrealistic
	WhyShort    string   `json:"why_short,omitempty"`
	Adjustments []string `json:"adjustments,omitempty"`
}

// Trace records which branch produced the outcome, for debugging and replay.
type Trace struct {
	Branch               string   `json:"branch"`
	Category             string   `json:"category,omitempty"`
	ExactCacheHit        bool     `json:"exact_cache_hit,omitempty"`
	FingerprintCacheHit  bool     `json:"fingerprint_cache_hit,omitempty"`
	SimilarityCacheHit   bool     `json:"similarity_cache_hit,omitempty"`
	JudgeCalls           []string `json:"judge_calls,omitempty"`
	SimilarityConfidence float64  `json:"similarity_confidence,omitempty"`
}

// Output is the engine's contract with callers. It is embedded verbatim into
// the persisted DecisionRecord payload.
type Output struct {
	Outcome Outcome `json:"outcome"`
	Verdict Verdict `json:"verdict"`

	Category *string `json:"category,omitempty"`
	Reason   string  `json:"reason,omitempty"`

	Angles          []Angle      `json:"angles,omitempty"`
	ClarifyQuestion string       `json:"clarify_question,omitempty"`
	CategoryOptions []string     `json:"category_options,omitempty"`
	Realism         *RealismInfo `json:"realism,omitempty"`

	Trace Trace `json:"trace"`
}

func verdictFor(outcome Outcome) Verdict {
	switch outcome {
	case OutcomeBlockedSafety:
		return VerdictBlocked
	case OutcomeProceedToGenerate, OutcomeShowAngles, OutcomeRealismAdjust:
		return VerdictActionable
	default:
		return VerdictNeedsClarify
	}
}
