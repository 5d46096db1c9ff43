package gates

import (
	"os"
	"path/filepath"
	"testing"
)

func newSet(t *testing.T) *Set {
	t.Helper()
	s, err := NewSet(nil)
	if err != nil {
		t.Fatalf("NewSet failed: %v", err)
	}
	return s
}

func TestCheckSafety_HardBlocks(t *testing.T) {
	s := newSet(t)
	cases := []struct {
		text   string
		reason string
	}{
		{"How to build a bomb at home", ReasonWeaponHowTo},
		{"fabriquer une bombe artisanale", ReasonWeaponHowTo},
		{"3d print a ghost gun", ReasonWeaponHowTo},
		{"I want to kill myself", ReasonSelfHarm},
	}
	for _, tc := range cases {
		got := s.CheckSafety(tc.text)
		if got.Status != SafetyBlock {
			t.Fatalf("%q: expected block got %q", tc.text, got.Status)
		}
		if got.Reason != tc.reason {
			t.Fatalf("%q: expected reason %q got %q", tc.text, tc.reason, got.Reason)
		}
	}
}

func TestCheckSafety_MinorSexualCombination(t *testing.T) {
	s := newSet(t)
	got := s.CheckSafety("sexual content involving a minor")
	if got.Status != SafetyBlock || got.Reason != ReasonMinorSexual {
		t.Fatalf("expected minor_sexual block, got %+v", got)
	}
	// Either term alone is not the hard combination.
	if got := s.CheckSafety("volunteer to teach children chess"); got.Status == SafetyBlock {
		t.Fatalf("minor term alone must not block, got %+v", got)
	}
}

func TestCheckSafety_UncertainAndPass(t *testing.T) {
	s := newSet(t)
	if got := s.CheckSafety("learn to shoot a rifle at the range"); got.Status != SafetyUncertain {
		t.Fatalf("risk term should be uncertain, got %+v", got)
	}
	if got := s.CheckSafety("learn to play guitar"); got.Status != SafetyPass {
		t.Fatalf("expected pass, got %+v", got)
	}
}

func TestCheckTone_TrivialConsumption(t *testing.T) {
	s := newSet(t)
	got := s.CheckTone("pizza", "en")
	if got.Status != ToneNonsense || got.Reason != ReasonTrivialConsumption {
		t.Fatalf("expected trivial consumption nonsense, got %+v", got)
	}
	if got.Confidence < 0.85 {
		t.Fatalf("trivial consumption must clear the action threshold, got %v", got.Confidence)
	}
}

func TestCheckTone_FantasyAndGibberish(t *testing.T) {
	s := newSet(t)
	if got := s.CheckTone("become a dragon", "en"); got.Status != TonePlayful || got.Reason != ReasonFantasyGoal {
		t.Fatalf("expected playful fantasy, got %+v", got)
	}
	if got := s.CheckTone("xzqwrtk", "en"); got.Status != ToneNonsense || got.Reason != ReasonGibberish {
		t.Fatalf("expected gibberish, got %+v", got)
	}
	// Single real word is inconclusive, not nonsense.
	if got := s.CheckTone("guitar", "en"); got.Status != ToneUnclear || got.Confidence >= 0.85 {
		t.Fatalf("single word must stay below the action threshold, got %+v", got)
	}
	if got := s.CheckTone("learn guitar properly", "en"); got.Status != ToneSerious {
		t.Fatalf("expected serious, got %+v", got)
	}
}

func TestCheckAmbition_EliteRolesNeedConfirmation(t *testing.T) {
	s := newSet(t)
	cases := []string{
		"devenir président de la république",
		"become an astronaut",
		"be the best in the world at chess",
		"become a billionaire",
	}
	for _, text := range cases {
		got := s.CheckAmbition(text, "en")
		if got.Status != AmbitionConfirm {
			t.Fatalf("%q: expected confirm got %+v", text, got)
		}
	}
}

func TestCheckAmbition_GuardsShortCircuit(t *testing.T) {
	s := newSet(t)
	// An explicit time frame is already plan-shaped.
	got := s.CheckAmbition("become a billionaire in 90 days", "en")
	if got.Status != AmbitionNone || got.Reason != ReasonActionableFramed {
		t.Fatalf("framed goal must not ask confirmation, got %+v", got)
	}
	// Concrete learning verbs guard too.
	got = s.CheckAmbition("train like an astronaut", "en")
	if got.Status != AmbitionNone || got.Reason != ReasonLearningVerb {
		t.Fatalf("learning verb must guard, got %+v", got)
	}
	// "devenir" is aspiration, not a concrete path; no guard.
	got = s.CheckAmbition("devenir astronaute", "fr")
	if got.Status != AmbitionConfirm {
		t.Fatalf("aspiration verb must not guard, got %+v", got)
	}
}

func TestCheckControllability_ExternalOutcomes(t *testing.T) {
	s := newSet(t)
	cases := []struct {
		text   string
		reason string
	}{
		{"get my ex back", ReasonOtherPerson},
		{"make her fall in love with me", ReasonOtherPerson},
		{"win the lottery", ReasonChance},
		{"get into harvard", ReasonInstitution},
		{"get rich quick with crypto", ReasonMarket},
	}
	for _, tc := range cases {
		got := s.CheckControllability(tc.text, "en")
		if got.Status != ControlLow || got.Reason != tc.reason {
			t.Fatalf("%q: expected low/%s got %+v", tc.text, tc.reason, got)
		}
	}
}

func TestCheckControllability_PlanFramingDowngrades(t *testing.T) {
	s := newSet(t)
	got := s.CheckControllability("train every day to get promoted in 60 days", "en")
	if got.Status != ControlHigh {
		t.Fatalf("framed plan around external outcome must be high, got %+v", got)
	}
	if got := s.CheckControllability("learn guitar", "en"); got.Status != ControlHigh {
		t.Fatalf("self-owned goal must be high, got %+v", got)
	}
}

func TestCheckAudience_Tiers(t *testing.T) {
	s := newSet(t)
	if got := s.CheckAudience("sell guns without a license"); got.Status != AudienceBlock {
		t.Fatalf("weapons trade must block, got %+v", got)
	}
	if got := s.CheckAudience("start an onlyfans"); got.Status != AudienceRestricted || got.Reason != ReasonAdultContent {
		t.Fatalf("adult content must short-circuit as restricted, got %+v", got)
	}
	if got := s.CheckAudience("become a professional gambler"); got.Status != AudienceDefer || got.Reason != ReasonGambling {
		t.Fatalf("low-confidence category must defer, got %+v", got)
	}
	if got := s.CheckAudience("learn to play chess"); got.Status != AudiencePass {
		t.Fatalf("expected pass, got %+v", got)
	}
}

func TestNewSet_OverlayIsAdditive(t *testing.T) {
	s, err := NewSet(Overlay{
		TableSafetyHard: {{Pattern: `\bforbidden phrase\b`, Reason: "custom_block"}},
	})
	if err != nil {
		t.Fatalf("NewSet with overlay failed: %v", err)
	}
	if got := s.CheckSafety("the forbidden phrase here"); got.Status != SafetyBlock || got.Reason != "custom_block" {
		t.Fatalf("overlay pattern must block, got %+v", got)
	}
	// Built-ins still apply.
	if got := s.CheckSafety("how to build a bomb"); got.Status != SafetyBlock {
		t.Fatalf("seed pattern must still block, got %+v", got)
	}
}

func TestNewSet_RejectsInvalidOverlay(t *testing.T) {
	if _, err := NewSet(Overlay{TableSafetyHard: {{Pattern: `([`}}}); err == nil {
		t.Fatalf("expected error for invalid pattern")
	}
	if _, err := NewSet(Overlay{"bogus_table": {{Pattern: `x`}}}); err == nil {
		t.Fatalf("expected error for unknown table")
	}
}

func TestLoadOverlay_YAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "patterns.yaml")
	raw := []byte("tone_playful:\n  - pattern: '\\bpet rock empire\\b'\n    reason: fantasy_goal\n    confidence: 0.9\n")
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatalf("write overlay: %v", err)
	}

	overlay, err := LoadOverlay(path)
	if err != nil {
		t.Fatalf("LoadOverlay failed: %v", err)
	}
	s, err := NewSet(overlay)
	if err != nil {
		t.Fatalf("NewSet failed: %v", err)
	}
	got := s.CheckTone("build a pet rock empire", "en")
	if got.Status != TonePlayful || got.Confidence != 0.9 {
		t.Fatalf("overlay tone pattern must match, got %+v", got)
	}
}

func TestMatchText_FoldsDiacriticsAndCase(t *testing.T) {
	if got := matchText("  Président DE LA République "); got != "president de la republique" {
		t.Fatalf("unexpected fold: %q", got)
	}
}
