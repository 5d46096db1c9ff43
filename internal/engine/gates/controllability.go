package gates

import "regexp"

// Controllability statuses: does the outcome depend on the user or on others?
const (
	ControlHigh    = "high"
	ControlLow     = "low"
	ControlUnknown = "unknown"
)

// Reason codes name the dependency group that matched.
const (
	ReasonOtherPerson = "other_person"
	ReasonInstitution = "institution"
	ReasonChance      = "chance"
	ReasonMarket      = "market"
)

var controllabilitySeed = mustCompileAll([]PatternSpec{
	// Outcomes owned by another person's feelings or choices.
	{Pattern: `\b(get|win|want)\b.{0,10}\b(my )?ex\b.{0,10}\bback\b`, Reason: ReasonOtherPerson},
	{Pattern: `\bmake\b.{0,20}\b(love me|like me|want me|fall in love|come back)\b`, Reason: ReasonOtherPerson},
	{Pattern: `\b(get|convince)\b.{0,15}\b(him|her|them)\b.{0,15}\bto\b`, Reason: ReasonOtherPerson},
	{Pattern: `\brecuperer\b.{0,10}\bex\b`, Reason: ReasonOtherPerson},
	{Pattern: `\bque\b.{0,10}\bex\b.{0,10}\bvuelva\b`, Reason: ReasonOtherPerson},
	// Outcomes gated by an institution's selection process.
	{Pattern: `\bget\b.{0,8}\b(hired|promoted|accepted|admitted)\b`, Reason: ReasonInstitution},
	{Pattern: `\b(land|score)\b.{0,8}\b(a|the)\b.{0,8}\bjob\b`, Reason: ReasonInstitution},
	{Pattern: `\bget\b.{0,5}\binto\b.{0,20}\b(harvard|oxford|college|university|med school|law school)\b`, Reason: ReasonInstitution},
	{Pattern: `\b(visa|green card|citizenship)\b.{0,15}\b(approved|granted)\b`, Reason: ReasonInstitution},
	{Pattern: `\b(etre embauche|ser contratado)\b`, Reason: ReasonInstitution},
	// Random or competitive processes.
	{Pattern: `\bwin\b.{0,10}\b(the )?(lottery|lotto|jackpot|powerball)\b`, Reason: ReasonChance},
	{Pattern: `\b(gagner au loto|ganar la loteria)\b`, Reason: ReasonChance},
	{Pattern: `\bwin\b.{0,15}\b(the )?(tournament|championship|competition|contest|election)\b`, Reason: ReasonChance},
	// Market- or crowd-dependent outcomes.
	{Pattern: `\b(get rich quick|double my money|10x my money)\b`, Reason: ReasonMarket},
	{Pattern: `\b(go|going) viral\b`, Reason: ReasonMarket},
	{Pattern: `\b(million|1m|100k)\b.{0,10}\b(followers|subscribers|subs)\b`, Reason: ReasonMarket},
	{Pattern: `\b(stock|crypto|bitcoin)\b.{0,15}\b(moon|explode|double)\b`, Reason: ReasonMarket},
})

var actionVerbsRe = regexp.MustCompile(`\b(learn|train|study|practice|practise|build|write|create|launch|run|save|apply|network|improve|prepare|exercise|meditate|read|code|draw|cook|apprendre|etudier|entrainer|construire|ecrire|creer|aprender|estudiar|practicar|crear|escribir|lernen|trainieren|bauen|schreiben)\b`)

// CheckControllability recognizes externally-dependent outcomes. An
// actionable frame plus an action verb downgrades to high controllability
// even when a pattern matches: a concrete plan can exist around an
// externally-dependent goal.
func (s *Set) CheckControllability(text, lang string) Result {
	m := matchText(text)
	if m == "" {
		return Result{Gate: "controllability", Status: ControlUnknown, Confidence: 1}
	}

	matchedReason := ""
	for _, p := range s.controlPatterns {
		if p.re.MatchString(m) {
			matchedReason = p.reason
			break
		}
	}
	if matchedReason == "" {
		return Result{Gate: "controllability", Status: ControlHigh, Confidence: 0.7}
	}

	framed := false
	for _, frame := range s.ambitionFrames {
		if frame.MatchString(m) {
			framed = true
			break
		}
	}
	if framed && s.actionVerbs.MatchString(m) {
		return Result{Gate: "controllability", Status: ControlHigh, Reason: matchedReason, Confidence: 0.8,
			Rationale: "externally-dependent outcome but framed as a concrete plan"}
	}
	return Result{Gate: "controllability", Status: ControlLow, Reason: matchedReason, Confidence: 0.85}
}
