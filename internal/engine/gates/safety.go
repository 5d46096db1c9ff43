package gates

import "regexp"

// Reason codes for the safety gate.
const (
	ReasonMinorSexual    = "minor_sexual"
	ReasonWeaponHowTo    = "weapon_howto"
	ReasonSelfHarm       = "self_harm"
	ReasonSexualViolence = "sexual_violence"
	ReasonRiskTerm       = "risk_term"
	// ReasonJudgeRiskHigh marks blocks decided by the safety judge when no
	// deterministic pattern matched.
	ReasonJudgeRiskHigh = "judge_risk_high"
)

// Safety statuses.
const (
	SafetyBlock     = "block"
	SafetyUncertain = "uncertain"
	SafetyPass      = "pass"
)

var minorTermsRe = regexp.MustCompile(`\b(minor|minors|child|children|underage|kid|kids|teen|teens|preteen|mineur|mineure|enfant|enfants|menor|menores|nino|ninos|kind|kinder)\b`)

var sexualTermsRe = regexp.MustCompile(`\b(sex|sexual|sexually|nude|nudes|naked|porn|pornographic|explicit|erotic|sexuel|sexuelle|sexual|desnudo|nackt)\b`)

var safetyHardSeed = mustCompileAll([]PatternSpec{
	{Pattern: `\b(build|make|making|construct|assemble|fabricate|construire|fabriquer|fabricar|bauen)\b.{0,40}\b(bomb|bombs|explosive|explosives|ied|napalm|pipe bomb|grenade|bombe|explosif|bomba|explosivo|sprengstoff)\b`, Reason: ReasonWeaponHowTo},
	{Pattern: `\b(bomb|explosive|ied|grenade)\b.{0,30}\b(recipe|instructions|tutorial|blueprint)\b`, Reason: ReasonWeaponHowTo},
	{Pattern: `\b(3d print|print|build|make|machine)\b.{0,30}\b(gun|firearm|ghost gun|silencer|suppressor)\b`, Reason: ReasonWeaponHowTo},
	{Pattern: `\b(kill|hurt|harm|cut|mutilate)\b.{0,15}\b(myself|me meme|a mi mismo|mich selbst)\b`, Reason: ReasonSelfHarm},
	{Pattern: `\b(suicide|me suicider|suicidarme|suizid)\b`, Reason: ReasonSelfHarm},
	{Pattern: `\b(painless|best|effective)\b.{0,20}\b(way|method)\b.{0,20}\b(to die|of dying)\b`, Reason: ReasonSelfHarm},
	{Pattern: `\b(rape|raping|violer|violar|vergewaltigen)\b`, Reason: ReasonSexualViolence},
	{Pattern: `\b(force|drug|coerce)\b.{0,30}\b(into sex|to have sex|sexually)\b`, Reason: ReasonSexualViolence},
})

var safetyUncertainSeed = mustCompileAll([]PatternSpec{
	{Pattern: `\b(gun|guns|firearm|firearms|rifle|pistol|weapon|weapons|knife fight|arme|armes|waffe|arma|armas)\b`, Reason: ReasonRiskTerm},
	{Pattern: `\b(cocaine|heroin|meth|fentanyl|drug dealing|sell drugs|vendre de la drogue|vender drogas)\b`, Reason: ReasonRiskTerm},
	{Pattern: `\b(hack|hacking|break into|pick a lock|lockpick|steal|stealing|shoplift|pirater|hackear)\b`, Reason: ReasonRiskTerm},
	{Pattern: `\b(revenge|get back at|stalk|stalking|surveil|se venger|vengarme)\b`, Reason: ReasonRiskTerm},
	{Pattern: `\b(poison|poisoning|empoisonner|envenenar)\b`, Reason: ReasonRiskTerm},
})

// CheckSafety classifies the raw input. It runs before every other stage and
// again on every cache hit: a stale cache must never override a block.
func (s *Set) CheckSafety(text string) Result {
	m := matchText(text)
	if m == "" {
		return Result{Gate: "safety", Status: SafetyPass, Confidence: 1}
	}

	if s.minorTerms.MatchString(m) && s.sexualTerms.MatchString(m) {
		return Result{Gate: "safety", Status: SafetyBlock, Reason: ReasonMinorSexual, Confidence: 1}
	}
	for _, p := range s.safetyHard {
		if p.re.MatchString(m) {
			return Result{Gate: "safety", Status: SafetyBlock, Reason: p.reason, Confidence: 1}
		}
	}
	for _, p := range s.safetyUncertain {
		if p.re.MatchString(m) {
			return Result{Gate: "safety", Status: SafetyUncertain, Reason: p.reason, Confidence: 0.5}
		}
	}
	return Result{Gate: "safety", Status: SafetyPass, Confidence: 0.95}
}
