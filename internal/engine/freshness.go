package engine

import (
	"time"

	"github.com/goalflow-ai/goalflow-backend/internal/platform/envutil"
)

// Gate names used in freshness lookups and persisted gate-result maps.
const (
	GateSafety          = "safety"
	GateTone            = "tone"
	GateCategory        = "category"
	GateAmbition        = "ambition"
	GateAnalysis        = "analysis"
	GateControllability = "controllability"
	GateRealism         = "realism"
	GateAudience        = "audience"
)

// FreshnessTable holds the maximum age a cached decision may have before the
// engine recomputes, indexed by gate. Verdicts adjust the window: blocks are
// revisited sooner than stable behavioral classifications.
type FreshnessTable map[string]time.Duration

func DefaultFreshness() FreshnessTable {
	day := 24 * time.Hour
	return FreshnessTable{
		GateSafety:          time.Duration(envutil.Int("FRESHNESS_SAFETY_DAYS", 7)) * day,
		GateTone:            time.Duration(envutil.Int("FRESHNESS_TONE_DAYS", 14)) * day,
		GateCategory:        time.Duration(envutil.Int("FRESHNESS_CATEGORY_DAYS", 30)) * day,
		GateAmbition:        time.Duration(envutil.Int("FRESHNESS_AMBITION_DAYS", 30)) * day,
		GateAnalysis:        time.Duration(envutil.Int("FRESHNESS_ANALYSIS_DAYS", 30)) * day,
		GateControllability: time.Duration(envutil.Int("FRESHNESS_CONTROLLABILITY_DAYS", 90)) * day,
		GateRealism:         time.Duration(envutil.Int("FRESHNESS_REALISM_DAYS", 30)) * day,
		GateDecisionEngine:  time.Duration(envutil.Int("FRESHNESS_DECISION_DAYS", 14)) * day,
	}
}

// Window returns the freshness window for a (gate, verdict) pair.
func (t FreshnessTable) Window(gate string, verdict Verdict) time.Duration {
	w, ok := t[gate]
	if !ok {
		w = t[GateDecisionEngine]
	}
	if w <= 0 {
		w = 14 * 24 * time.Hour
	}
	if verdict == VerdictBlocked {
		w /= 2
	}
	return w
}

// gateForOutcome maps a persisted outcome back to the gate whose freshness
// window governs reuse of that record.
func gateForOutcome(outcome Outcome) string {
	switch outcome {
	case OutcomeBlockedSafety:
		return GateSafety
	case OutcomePlayfulOrNonsense:
		return GateTone
	case OutcomeAskUserChooseCategory:
		return GateCategory
	case OutcomeConfirmAmbition:
		return GateAmbition
	case OutcomeShowAngles, OutcomeAskClarification:
		return GateAnalysis
	case OutcomeRealismAdjust:
		return GateRealism
	default:
		return GateDecisionEngine
	}
}

// Fresh reports whether a record written at updatedAt may still be reused.
func (t FreshnessTable) Fresh(outcome Outcome, verdict Verdict, updatedAt, now time.Time) bool {
	return now.Sub(updatedAt) <= t.Window(gateForOutcome(outcome), verdict)
}
