package gates

import "regexp"

// Ambition statuses.
const (
	AmbitionConfirm = "confirm"
	AmbitionNone    = "none"
)

// Reason codes for the ambition gate.
const (
	ReasonEliteRole        = "elite_role"
	ReasonSuperlative      = "superlative"
	ReasonActionableFramed = "actionable_framed"
	ReasonLearningVerb     = "learning_verb"
)

// actionableFrames: an explicit time frame means the user already thinks in
// plan terms; never flag, regardless of content.
var actionableFrames = []*regexp.Regexp{
	regexp.MustCompile(`\b(in|within)\s+\d+\s+(day|days|week|weeks|month|months|year|years)\b`),
	regexp.MustCompile(`\ben\s+\d+\s+(jour|jours|semaine|semaines|mois|an|ans)\b`),
	regexp.MustCompile(`\ben\s+\d+\s+(dia|dias|semana|semanas|mes|meses|ano|anos)\b`),
	regexp.MustCompile(`\bin\s+\d+\s+(tag|tagen|woche|wochen|monat|monaten|jahr|jahren)\b`),
	regexp.MustCompile(`\bin\s+\d+\s+(giorno|giorni|settimana|settimane|mese|mesi)\b`),
}

// Concrete learning/training verbs. Deliberately excludes "become"/"get":
// wanting to become something says nothing about a concrete path.
var learningVerbsRe = regexp.MustCompile(`\b(learn|train|study|practice|practise|prepare|drill|rehearse|apprendre|etudier|entrainer|reviser|aprender|estudiar|practicar|entrenar|lernen|trainieren|uben|imparare|studiare|allenarmi)\b`)

var ambitionEliteSeed = mustCompileAll([]PatternSpec{
	{Pattern: `\b(president|prime minister|head of state|chancellor|presidente|premier ministre|chef de l etat|bundeskanzler)\b`, Reason: ReasonEliteRole},
	{Pattern: `\bpresident de la republique\b`, Reason: ReasonEliteRole},
	{Pattern: `\b(world champion|olympic (gold|champion|medal)|champion du monde|campeon del mundo|weltmeister|campione del mondo)\b`, Reason: ReasonEliteRole},
	{Pattern: `\b(billionaire|milliardaire|billonario|multimillonario|milliardar)\b`, Reason: ReasonEliteRole},
	{Pattern: `\b(nobel|fields medal|pulitzer)\b`, Reason: ReasonEliteRole},
	{Pattern: `\b(astronaut|astronaute|astronauta|cosmonaut)\b`, Reason: ReasonEliteRole},
	{Pattern: `\b(best in the world|world s best|greatest of all time|goat of|number one in the world|meilleur du monde|mejor del mundo)\b`, Reason: ReasonSuperlative},
	{Pattern: `\b(most famous|world famous|global superstar|rock star|celebrity|celebre dans le monde)\b`, Reason: ReasonSuperlative},
	{Pattern: `\bceo\b.{0,25}\b(fortune 500|google|apple|amazon|microsoft)\b`, Reason: ReasonEliteRole},
})

// CheckAmbition is a guarded pattern match: guards are checked first and
// short-circuit to "no confirmation needed".
func (s *Set) CheckAmbition(text, lang string) Result {
	m := matchText(text)
	if m == "" {
		return Result{Gate: "ambition", Status: AmbitionNone, Confidence: 1}
	}

	for _, frame := range s.ambitionFrames {
		if frame.MatchString(m) {
			return Result{Gate: "ambition", Status: AmbitionNone, Reason: ReasonActionableFramed, Confidence: 0.95}
		}
	}
	if s.ambitionVerbs.MatchString(m) {
		return Result{Gate: "ambition", Status: AmbitionNone, Reason: ReasonLearningVerb, Confidence: 0.9}
	}

	for _, p := range s.ambitionElite {
		if p.re.MatchString(m) {
			return Result{Gate: "ambition", Status: AmbitionConfirm, Reason: p.reason, Confidence: 0.9}
		}
	}
	return Result{Gate: "ambition", Status: AmbitionNone, Confidence: 0.85}
}
