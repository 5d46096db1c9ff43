// Package gates holds the deterministic classifiers that run before any
// judge call. Each gate is a pure function over text: tables of
// (pattern, reason) pairs evaluated in a fixed priority order, guards first,
// so new locales and patterns are additive and independently testable.
package gates

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

// Result is one gate's ephemeral classification. It is folded into the
// DecisionRecord gate map, never persisted on its own.
type Result struct {
	Gate       string  `json:"gate"`
	Status     string  `json:"status"`
	Reason     string  `json:"reason,omitempty"`
	Confidence float64 `json:"confidence"`
	Rationale  string  `json:"rationale,omitempty"`
}

type pattern struct {
	re     *regexp.Regexp
	reason string
	conf   float64
}

// PatternSpec is one overlay entry loaded from YAML.
type PatternSpec struct {
	Pattern    string  `yaml:"pattern"`
	Reason     string  `yaml:"reason"`
	Confidence float64 `yaml:"confidence,omitempty"`
}

// Overlay adds deployment-specific patterns per table; it never replaces the
// built-ins.
type Overlay map[string][]PatternSpec

// Overlay table names.
const (
	TableSafetyHard         = "safety_hard"
	TableSafetyUncertain    = "safety_uncertain"
	TableTonePlayful        = "tone_playful"
	TableAmbitionElite      = "ambition_elite"
	TableControllability    = "controllability"
	TableAudienceHard       = "audience_hard"
	TableAudienceRestricted = "audience_restricted"
)

func LoadOverlay(path string) (Overlay, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var o Overlay
	if err := yaml.Unmarshal(raw, &o); err != nil {
		return nil, fmt.Errorf("parse gate overlay: %w", err)
	}
	return o, nil
}

// Set holds all compiled gate tables.
type Set struct {
	safetyHard      []pattern
	minorTerms      *regexp.Regexp
	sexualTerms     *regexp.Regexp
	safetyUncertain []pattern

	tonePlayful  []pattern
	trivialWords map[string]bool

	ambitionFrames []*regexp.Regexp
	ambitionVerbs  *regexp.Regexp
	ambitionElite  []pattern

	controlPatterns []pattern
	actionVerbs     *regexp.Regexp

	audienceHard       []pattern
	audienceRestricted []pattern
}

// NewSet compiles the built-in tables plus any overlay. An invalid overlay
// pattern fails construction: bad config should be loud, not silently inert.
func NewSet(overlay Overlay) (*Set, error) {
	s := &Set{
		minorTerms:     minorTermsRe,
		sexualTerms:    sexualTermsRe,
		trivialWords:   trivialConsumption,
		ambitionFrames: actionableFrames,
		ambitionVerbs:  learningVerbsRe,
		actionVerbs:    actionVerbsRe,
	}
	s.safetyHard = append(s.safetyHard, safetyHardSeed...)
	s.safetyUncertain = append(s.safetyUncertain, safetyUncertainSeed...)
	s.tonePlayful = append(s.tonePlayful, tonePlayfulSeed...)
	s.ambitionElite = append(s.ambitionElite, ambitionEliteSeed...)
	s.controlPatterns = append(s.controlPatterns, controllabilitySeed...)
	s.audienceHard = append(s.audienceHard, audienceHardSeed...)
	s.audienceRestricted = append(s.audienceRestricted, audienceRestrictedSeed...)

	for table, specs := range overlay {
		for _, spec := range specs {
			re, err := regexp.Compile(spec.Pattern)
			if err != nil {
				return nil, fmt.Errorf("gate overlay %s pattern %q: %w", table, spec.Pattern, err)
			}
			p := pattern{re: re, reason: spec.Reason, conf: spec.Confidence}
			switch table {
			case TableSafetyHard:
				s.safetyHard = append(s.safetyHard, p)
			case TableSafetyUncertain:
				s.safetyUncertain = append(s.safetyUncertain, p)
			case TableTonePlayful:
				s.tonePlayful = append(s.tonePlayful, p)
			case TableAmbitionElite:
				s.ambitionElite = append(s.ambitionElite, p)
			case TableControllability:
				s.controlPatterns = append(s.controlPatterns, p)
			case TableAudienceHard:
				s.audienceHard = append(s.audienceHard, p)
			case TableAudienceRestricted:
				s.audienceRestricted = append(s.audienceRestricted, p)
			default:
				return nil, fmt.Errorf("gate overlay: unknown table %q", table)
			}
		}
	}
	return s, nil
}

var foldChain = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// matchText lowercases and strips diacritics so one pattern covers accented
// and unaccented spellings. Patterns are written pre-folded.
func matchText(text string) string {
	lower := strings.ToLower(strings.TrimSpace(text))
	folded, _, err := transform.String(foldChain, lower)
	if err != nil {
		return lower
	}
	return folded
}

func mustCompileAll(specs []PatternSpec) []pattern {
	out := make([]pattern, 0, len(specs))
	for _, spec := range specs {
		out = append(out, pattern{
			re:     regexp.MustCompile(spec.Pattern),
			reason: spec.Reason,
			conf:   spec.Confidence,
		})
	}
	return out
}
