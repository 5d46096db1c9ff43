package engine

import (
	"strings"
	"unicode"
)

// SchemaVersion changes when the persisted record layout changes; it is part
// of the cache key, so bumping it invalidates every cached decision.
const SchemaVersion = "1"

const (
	DefaultDays = 30
	MinDays     = 1
	MaxDays     = 365
)

// Intent is the raw, immutable inbound request.
type Intent struct {
	Text   string `json:"text"`
	Days   int    `json:"days"`
	Locale string `json:"locale"`
}

// Preprocessed is the derived, never-persisted working form of an Intent.
type Preprocessed struct {
	NormalizedIntent string
	IntentLang       string
	Script           string
	Days             int
	DaysBucket       string
	PolicyVersion    string
	SchemaVersion    string
}

// Script tags from dominant code-point range.
const (
	ScriptLatin    = "latin"
	ScriptHan      = "han"
	ScriptKana     = "kana"
	ScriptHangul   = "hangul"
	ScriptCyrillic = "cyrillic"
	ScriptArabic   = "arabic"
)

// Preprocess is pure and idempotent: trim, collapse whitespace, lowercase
// (except ideographic scripts), detect script, infer language, clamp and
// bucket the duration.
func Preprocess(in Intent, policyVersion string) Preprocessed {
	normalized := collapseWhitespace(strings.TrimSpace(in.Text))
	script := detectScript(normalized)
	if script != ScriptHan && script != ScriptKana {
		normalized = strings.ToLower(normalized)
	}

	days := clampDays(in.Days)

	return Preprocessed{
		NormalizedIntent: normalized,
		IntentLang:       inferLanguage(normalized, script, in.Locale),
		Script:           script,
		Days:             days,
		DaysBucket:       bucketDays(days),
		PolicyVersion:    policyVersion,
		SchemaVersion:    SchemaVersion,
	}
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func clampDays(days int) int {
	if days == 0 {
		return DefaultDays
	}
	if days < MinDays {
		return MinDays
	}
	if days > MaxDays {
		return MaxDays
	}
	return days
}

// bucketDays bands the clamped duration. Bucket bounds are part of the cache
// key; changing them is a breaking policy change.
func bucketDays(days int) string {
	switch {
	case days <= 14:
		return "lte14"
	case days <= 30:
		return "lte30"
	case days <= 90:
		return "lte90"
	default:
		return "gt90"
	}
}

func detectScript(s string) string {
	var latin, han, kana, hangul, cyrillic, arabic, total int
	for _, r := range s {
		if !unicode.IsLetter(r) {
			continue
		}
		total++
		switch {
		case unicode.Is(unicode.Han, r):
			han++
		// U+30FC prolongs the preceding kana vowel but carries script Common.
		case unicode.Is(unicode.Hiragana, r) || unicode.Is(unicode.Katakana, r) || r == 'ー':
			kana++
		case unicode.Is(unicode.Hangul, r):
			hangul++
		case unicode.Is(unicode.Cyrillic, r):
			cyrillic++
		case unicode.Is(unicode.Arabic, r):
			arabic++
		case unicode.Is(unicode.Latin, r):
			latin++
		}
	}
	if total == 0 {
		return ScriptLatin
	}
	// Any kana at all marks Japanese text even when Han dominates.
	if kana > 0 && (kana+han)*2 >= total {
		return ScriptKana
	}
	best, bestCount := ScriptLatin, latin
	for _, c := range []struct {
		script string
		count  int
	}{
		{ScriptHan, han},
		{ScriptKana, kana},
		{ScriptHangul, hangul},
		{ScriptCyrillic, cyrillic},
		{ScriptArabic, arabic},
	} {
		if c.count > bestCount {
			best, bestCount = c.script, c.count
		}
	}
	return best
}

var latinLangMarkers = []struct {
	lang     string
	runes    string
	words    []string
}{
	{"fr", "éèêëàâçœù", []string{" le ", " la ", " les ", " de ", " du ", " une ", " un ", "devenir ", "apprendre ", "je veux"}},
	{"es", "ñ¿¡áíóúü", []string{" el ", " los ", " una ", "aprender ", "quiero ", "ser "}},
	{"pt", "ãõç", []string{" o ", " os ", " uma ", "aprender ", "quero ", "tornar"}},
	{"de", "äöüß", []string{" der ", " die ", " das ", " und ", "lernen ", "werden ", "ich will"}},
	{"it", "àèéìòù", []string{" il ", " gli ", " una ", "imparare ", "voglio ", "diventare "}},
}

// inferLanguage resolves script → lexical markers → UI locale, in that order.
func inferLanguage(normalized, script, locale string) string {
	switch script {
	case ScriptKana:
		return "ja"
	case ScriptHan:
		return "zh"
	case ScriptHangul:
		return "ko"
	case ScriptCyrillic:
		return "ru"
	case ScriptArabic:
		return "ar"
	}

	padded := " " + normalized + " "
	bestLang, bestScore := "", 0
	for _, m := range latinLangMarkers {
		score := 0
		for _, r := range normalized {
			if strings.ContainsRune(m.runes, r) {
				score += 2
			}
		}
		for _, w := range m.words {
			if strings.Contains(padded, w) {
				score += 3
			}
		}
		if score > bestScore {
			bestLang, bestScore = m.lang, score
		}
	}
	if bestScore >= 3 {
		return bestLang
	}

	if lang := localeLang(locale); lang != "" {
		return lang
	}
	return "en"
}

func localeLang(locale string) string {
	locale = strings.TrimSpace(strings.ToLower(locale))
	if locale == "" {
		return ""
	}
	for i, r := range locale {
		if r == '-' || r == '_' {
			return locale[:i]
		}
	}
	return locale
}
