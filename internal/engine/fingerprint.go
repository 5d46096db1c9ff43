package engine

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// FingerprintAlgo tags persisted fingerprints so the matching rules can
// evolve without silently mixing generations.
const FingerprintAlgo = "fp_v2"

// Fingerprint is a canonical token set: two intents with the same fingerprint
// are treated as the same request without consulting a judge.
type Fingerprint struct {
	FP     string
	Algo   string
	Tokens []string
}

var diacriticFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// FoldDiacritics strips combining marks: "président" -> "president".
func FoldDiacritics(s string) string {
	out, _, err := transform.String(diacriticFolder, s)
	if err != nil {
		return s
	}
	return out
}

var latinFamily = map[string]bool{
	"en": true, "fr": true, "es": true, "pt": true, "de": true, "it": true,
}

var stopwords = map[string]map[string]bool{
	"en": setOf("a", "an", "the", "to", "of", "in", "on", "at", "for", "and", "or", "my", "me", "i", "be", "is", "am", "are", "with", "how", "want", "would", "like", "really"),
	"fr": setOf("le", "la", "les", "un", "une", "des", "de", "du", "a", "au", "aux", "et", "ou", "je", "veux", "voudrais", "mon", "ma", "mes", "en", "pour", "dans", "etre", "comment"),
	"es": setOf("el", "la", "los", "las", "un", "una", "unos", "unas", "de", "del", "a", "al", "y", "o", "yo", "quiero", "mi", "mis", "en", "para", "ser", "como"),
	"pt": setOf("o", "a", "os", "as", "um", "uma", "de", "do", "da", "e", "ou", "eu", "quero", "meu", "minha", "em", "para", "ser", "como"),
	"de": setOf("der", "die", "das", "ein", "eine", "und", "oder", "ich", "will", "mochte", "mein", "meine", "zu", "in", "fur", "sein", "wie"),
	"it": setOf("il", "lo", "la", "i", "gli", "le", "un", "una", "di", "del", "e", "o", "io", "voglio", "mio", "mia", "in", "per", "essere", "come"),
	"zh": setOf("的", "了", "我", "想", "要", "个", "是", "在", "和"),
	"ja": setOf("の", "を", "に", "は", "が", "と", "で", "たい", "です", "ます"),
	"ko": setOf("을", "를", "이", "가", "은", "는", "에", "고", "싶다", "싶어요"),
}

// Weak verbs are stripped unconditionally so the fingerprint is identical at
// the pre-category and post-category computation points.
var weakVerbs = map[string]map[string]bool{
	"en": setOf("learn", "study", "practice", "practise", "become", "get", "start", "improve", "master", "try", "do", "make"),
	"fr": setOf("apprendre", "etudier", "pratiquer", "devenir", "commencer", "ameliorer", "maitriser", "faire"),
	"es": setOf("aprender", "estudiar", "practicar", "convertirme", "convertirse", "empezar", "mejorar", "dominar", "hacer"),
	"pt": setOf("aprender", "estudar", "praticar", "tornar", "comecar", "melhorar", "dominar", "fazer"),
	"de": setOf("lernen", "studieren", "uben", "werden", "anfangen", "verbessern", "beherrschen", "machen"),
	"it": setOf("imparare", "studiare", "praticare", "diventare", "iniziare", "migliorare", "fare"),
	"zh": setOf("学", "学习", "成为", "练习", "开始"),
	"ja": setOf("学ぶ", "勉強", "練習", "なる"),
	"ko": setOf("배우다", "배우기", "공부", "연습", "되기"),
}

// prepositionFillerBigrams collapse "preposition + filler verb" pairs so that
// "learn to sew" and "learn sewing" fingerprint identically.
var prepositionFillerBigrams = map[string][][2]string{
	"en": {{"to", "do"}, {"to", "make"}, {"to", "be"}, {"to", "get"}},
	"fr": {{"a", "faire"}, {"de", "faire"}, {"a", "etre"}},
	"es": {{"a", "hacer"}, {"de", "hacer"}, {"a", "ser"}},
	"pt": {{"a", "fazer"}, {"de", "fazer"}},
	"de": {{"zu", "machen"}, {"zu", "tun"}, {"zu", "werden"}},
	"it": {{"a", "fare"}, {"di", "fare"}},
}

var leadingConnectives = map[string]*regexp.Regexp{
	"en": regexp.MustCompile(`^(i\s+(really\s+)?(want|would\s+like|need)\s+to|how\s+(to|do\s+i|can\s+i))\s+`),
	"fr": regexp.MustCompile(`^(je\s+(veux|voudrais|souhaite)|comment)\s+`),
	"es": regexp.MustCompile(`^(quiero|me\s+gustaria|como)\s+`),
	"pt": regexp.MustCompile(`^(quero|eu\s+quero|como)\s+`),
	"de": regexp.MustCompile(`^(ich\s+(will|mochte)|wie)\s+`),
	"it": regexp.MustCompile(`^(voglio|vorrei|come)\s+`),
}

func setOf(words ...string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}

// ComputeFingerprint is a pure function of (text, lang, category); identical
// inputs always yield identical output. The category does not change token
// stripping (weak verbs go unconditionally) but is kept in the signature for
// future per-category token rules.
func ComputeFingerprint(normalized, lang, category string) Fingerprint {
	_ = category

	text := normalized
	if latinFamily[lang] {
		text = FoldDiacritics(text)
	}
	if re, ok := leadingConnectives[lang]; ok {
		text = re.ReplaceAllString(text, "")
	}

	tokens := tokenize(text, lang)
	tokens = collapseBigrams(tokens, lang)

	stop := stopwords[lang]
	weak := weakVerbs[lang]
	seen := map[string]bool{}
	var kept []string
	for _, tok := range tokens {
		if stop[tok] || weak[tok] {
			continue
		}
		if lang == "en" {
			tok = foldGerund(tok)
		}
		if tok == "" || seen[tok] {
			continue
		}
		seen[tok] = true
		kept = append(kept, tok)
	}
	sort.Strings(kept)

	fp := ""
	if len(kept) > 0 {
		fp = strings.Join(kept, "|")
	}
	return Fingerprint{FP: fp, Algo: FingerprintAlgo, Tokens: kept}
}

func tokenize(text, lang string) []string {
	switch lang {
	case "zh", "ja":
		// No word boundaries in ideographic text; single runes plus known
		// multi-rune stop/weak entries are handled by the rune pass.
		return runeTokens(text, lang)
	}
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

func runeTokens(text, lang string) []string {
	// Strip multi-rune stopword/weak-verb entries first, then split runes.
	for w := range stopwords[lang] {
		if len([]rune(w)) > 1 {
			text = strings.ReplaceAll(text, w, "")
		}
	}
	for w := range weakVerbs[lang] {
		if len([]rune(w)) > 1 {
			text = strings.ReplaceAll(text, w, "")
		}
	}
	var out []string
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			out = append(out, string(r))
		}
	}
	return out
}

func collapseBigrams(tokens []string, lang string) []string {
	pairs := prepositionFillerBigrams[lang]
	if len(pairs) == 0 || len(tokens) < 2 {
		return tokens
	}
	var out []string
	for i := 0; i < len(tokens); i++ {
		if i+1 < len(tokens) {
			matched := false
			for _, p := range pairs {
				if tokens[i] == p[0] && tokens[i+1] == p[1] {
					matched = true
					break
				}
			}
			if matched {
				i++
				continue
			}
		}
		out = append(out, tokens[i])
	}
	return out
}

// foldGerund folds English gerunds onto their stem so "sewing" and "sew"
// collide. Deliberately conservative: only -ing with a stem of 3+ letters.
func foldGerund(tok string) string {
	if len(tok) < 6 || !strings.HasSuffix(tok, "ing") {
		return tok
	}
	stem := tok[:len(tok)-3]
	// running -> runn -> run
	if len(stem) >= 4 && stem[len(stem)-1] == stem[len(stem)-2] {
		stem = stem[:len(stem)-1]
	}
	return stem
}
