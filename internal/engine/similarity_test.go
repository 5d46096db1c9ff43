package engine

import (
	"math"
	"testing"
)

func TestTrigramJaccard_IdenticalAndDisjoint(t *testing.T) {
	if got := TrigramJaccard("learn to play guitar", "learn to play guitar", "en"); got != 1 {
		t.Fatalf("identical strings must score 1, got %v", got)
	}
	if got := TrigramJaccard("learn guitar", "zzzqqqxxx", "en"); got != 0 {
		t.Fatalf("disjoint strings must score 0, got %v", got)
	}
}

func TestTrigramJaccard_Symmetric(t *testing.T) {
	a, b := "learn to play the guitar", "learn to play guitar well"
	if TrigramJaccard(a, b, "en") != TrigramJaccard(b, a, "en") {
		t.Fatalf("similarity must be symmetric")
	}
}

func TestTrigramJaccard_KnownOverlap(t *testing.T) {
	// Trigrams of "abcdefgh": abc bcd cde def efg fgh. Of "abcdexyz":
	// abc bcd cde dex exy xyz. Intersection 3, union 9.
	got := TrigramJaccard("abcdefgh", "abcdexyz", "en")
	want := 3.0 / 9.0
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("expected %v got %v", want, got)
	}
}

func TestTrigramJaccard_SingleRuneGramsForCJK(t *testing.T) {
	// Rune sets: {学 弹 吉 他} vs {弹 吉 他}: intersection 3, union 4.
	got := TrigramJaccard("学弹吉他", "弹吉他", "zh")
	want := 3.0 / 4.0
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("expected %v got %v", want, got)
	}
}

func TestEligibleForSimilarity_MinLength(t *testing.T) {
	if EligibleForSimilarity("short intent", "en") != true {
		t.Fatalf("12 runes must be eligible")
	}
	if EligibleForSimilarity("short inten", "en") {
		t.Fatalf("11 runes must not be eligible")
	}
	if !EligibleForSimilarity("学弹吉他练习曲", "zh") {
		t.Fatalf("6+ rune ideographic intent must be eligible")
	}
	if EligibleForSimilarity("学弹吉他练", "zh") {
		t.Fatalf("5 rune ideographic intent must not be eligible")
	}
}

func TestDefaultSimilarityBand(t *testing.T) {
	band := DefaultSimilarityBand()
	if band.Low != 0.70 || band.High != 0.90 {
		t.Fatalf("unexpected default band: %+v", band)
	}
}
