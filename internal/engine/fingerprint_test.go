package engine

import (
	"testing"
)

func TestComputeFingerprint_MergesParaphrases(t *testing.T) {
	cases := []struct{ a, b, lang string }{
		{"learn to sew", "learn sewing", "en"},
		{"i want to learn guitar", "learn guitar", "en"},
		{"start running", "run", "en"},
		{"apprendre le français", "le français", "fr"},
		{"quiero aprender guitarra", "guitarra", "es"},
	}
	for _, tc := range cases {
		fa := ComputeFingerprint(tc.a, tc.lang, "")
		fb := ComputeFingerprint(tc.b, tc.lang, "")
		if fa.FP == "" || fa.FP != fb.FP {
			t.Fatalf("%q vs %q (%s): fingerprints differ: %q vs %q", tc.a, tc.b, tc.lang, fa.FP, fb.FP)
		}
	}
}

func TestComputeFingerprint_OrderInsensitive(t *testing.T) {
	a := ComputeFingerprint("spanish guitar lessons", "en", "")
	b := ComputeFingerprint("lessons guitar spanish", "en", "")
	if a.FP != b.FP {
		t.Fatalf("token order must not matter: %q vs %q", a.FP, b.FP)
	}
}

func TestComputeFingerprint_DistinctGoalsStayDistinct(t *testing.T) {
	a := ComputeFingerprint("learn guitar", "en", "")
	b := ComputeFingerprint("learn piano", "en", "")
	if a.FP == b.FP {
		t.Fatalf("different goals must not collide: %q", a.FP)
	}
}

func TestComputeFingerprint_ChineseRuneTokens(t *testing.T) {
	a := ComputeFingerprint("我想学弹吉他", "zh", "")
	b := ComputeFingerprint("学弹吉他", "zh", "")
	if a.FP == "" || a.FP != b.FP {
		t.Fatalf("stopword-stripped rune sets must match: %q vs %q", a.FP, b.FP)
	}
}

func TestComputeFingerprint_EmptyAndAlgoTag(t *testing.T) {
	f := ComputeFingerprint("", "en", "")
	if f.FP != "" {
		t.Fatalf("empty input must yield empty fingerprint, got %q", f.FP)
	}
	if f.Algo != FingerprintAlgo {
		t.Fatalf("expected algo tag %q got %q", FingerprintAlgo, f.Algo)
	}
}

func TestComputeFingerprint_CategoryIndependent(t *testing.T) {
	// The fingerprint is computed before and after category resolution; both
	// points must agree.
	a := ComputeFingerprint("learn guitar in my spare time", "en", "")
	b := ComputeFingerprint("learn guitar in my spare time", "en", "learn_skill")
	if a.FP != b.FP {
		t.Fatalf("category must not change the fingerprint: %q vs %q", a.FP, b.FP)
	}
}

func TestFoldDiacritics(t *testing.T) {
	if got := FoldDiacritics("président de la république"); got != "president de la republique" {
		t.Fatalf("unexpected fold: %q", got)
	}
}
