package engine

import (
	"testing"
	"time"
)

func TestFreshnessWindow_Defaults(t *testing.T) {
	ft := DefaultFreshness()
	day := 24 * time.Hour

	cases := []struct {
		gate string
		want time.Duration
	}{
		{GateSafety, 7 * day},
		{GateTone, 14 * day},
		{GateCategory, 30 * day},
		{GateAmbition, 30 * day},
		{GateAnalysis, 30 * day},
		{GateControllability, 90 * day},
		{GateRealism, 30 * day},
		{GateDecisionEngine, 14 * day},
	}
	for _, tc := range cases {
		if got := ft.Window(tc.gate, VerdictActionable); got != tc.want {
			t.Fatalf("%s: expected %v got %v", tc.gate, tc.want, got)
		}
	}
}

func TestFreshnessWindow_BlockedVerdictHalves(t *testing.T) {
	ft := DefaultFreshness()
	full := ft.Window(GateSafety, VerdictActionable)
	halved := ft.Window(GateSafety, VerdictBlocked)
	if halved != full/2 {
		t.Fatalf("expected %v got %v", full/2, halved)
	}
}

func TestFreshnessWindow_UnknownGateFallsBack(t *testing.T) {
	ft := DefaultFreshness()
	if got := ft.Window("nope", VerdictActionable); got != ft.Window(GateDecisionEngine, VerdictActionable) {
		t.Fatalf("unknown gate must use the engine default, got %v", got)
	}
}

func TestFresh_OutcomeDrivenWindows(t *testing.T) {
	ft := DefaultFreshness()
	now := time.Now()
	day := 24 * time.Hour

	// PROCEED is governed by the engine default of 14 days.
	if !ft.Fresh(OutcomeProceedToGenerate, VerdictActionable, now.Add(-13*day), now) {
		t.Fatalf("13-day-old proceed record must be fresh")
	}
	if ft.Fresh(OutcomeProceedToGenerate, VerdictActionable, now.Add(-15*day), now) {
		t.Fatalf("15-day-old proceed record must be stale")
	}

	// Blocked safety records are revisited on a halved window (3.5 days).
	if !ft.Fresh(OutcomeBlockedSafety, VerdictBlocked, now.Add(-3*day), now) {
		t.Fatalf("3-day-old block must still be fresh")
	}
	if ft.Fresh(OutcomeBlockedSafety, VerdictBlocked, now.Add(-4*day), now) {
		t.Fatalf("4-day-old block must be stale")
	}

	// Controllability-style angle outcomes live under the analysis window.
	if !ft.Fresh(OutcomeShowAngles, VerdictActionable, now.Add(-29*day), now) {
		t.Fatalf("29-day-old angle record must be fresh")
	}
	if ft.Fresh(OutcomeShowAngles, VerdictActionable, now.Add(-31*day), now) {
		t.Fatalf("31-day-old angle record must be stale")
	}
}
