package engine

import (
	"strings"
	"unicode"

	"github.com/goalflow-ai/goalflow-backend/internal/platform/envutil"
)

// SimilarityBand is the three-way banding for fuzzy reuse: below Low the
// intents are unrelated, at or above High the exact/fingerprint tiers own the
// match, and inside [Low, High) a lexical match still needs judge
// confirmation, because trigram overlap both over- and under-approximates
// true equivalence.
type SimilarityBand struct {
	Low  float64
	High float64
}

func DefaultSimilarityBand() SimilarityBand {
	return SimilarityBand{
		Low:  envutil.Float("SIMILARITY_BAND_LOW", 0.70),
		High: envutil.Float("SIMILARITY_BAND_HIGH", 0.90),
	}
}

const (
	similarityMinRunes           = 12
	similarityMinRunesSingleRune = 6
)

// singleRuneGramLangs use per-rune sets: character 3-grams are meaningless
// for ideographic and Hangul text.
var singleRuneGramLangs = map[string]bool{"zh": true, "ja": true, "ko": true}

// EligibleForSimilarity guards against false positives on short intents.
func EligibleForSimilarity(normalized, lang string) bool {
	n := len([]rune(normalized))
	if singleRuneGramLangs[lang] {
		return n >= similarityMinRunesSingleRune
	}
	return n >= similarityMinRunes
}

// TrigramJaccard returns Jaccard similarity over trigram sets in [0,1].
func TrigramJaccard(a, b, lang string) float64 {
	setA := gramSet(a, lang)
	setB := gramSet(b, lang)
	if len(setA) == 0 || len(setB) == 0 {
		if a == b && a != "" {
			return 1
		}
		return 0
	}
	inter := 0
	for g := range setA {
		if _, ok := setB[g]; ok {
			inter++
		}
	}
	union := len(setA) + len(setB) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

func gramSet(s, lang string) map[string]struct{} {
	out := map[string]struct{}{}
	if singleRuneGramLangs[lang] {
		for _, r := range s {
			if unicode.IsLetter(r) || unicode.IsNumber(r) {
				out[string(r)] = struct{}{}
			}
		}
		return out
	}
	runes := []rune(strings.Join(strings.Fields(s), " "))
	if len(runes) < 3 {
		if len(runes) > 0 {
			out[string(runes)] = struct{}{}
		}
		return out
	}
	for i := 0; i+3 <= len(runes); i++ {
		out[string(runes[i:i+3])] = struct{}{}
	}
	return out
}
