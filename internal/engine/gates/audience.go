package gates

// Audience statuses. Tiered: hard phrases always block, heuristic category
// checks short-circuit locally only on high confidence, everything else is
// deferred to the external safety judge.
const (
	AudienceBlock      = "block"
	AudienceRestricted = "restricted"
	AudienceDefer      = "defer"
	AudiencePass       = "pass"
)

// Reason codes for the audience gate.
const (
	ReasonAdultContent = "adult_content"
	ReasonWeaponsTrade = "weapons_trade"
	ReasonGambling     = "gambling"
)

var audienceHardSeed = mustCompileAll([]PatternSpec{
	{Pattern: `\b(sell|selling|traffic|smuggle)\b.{0,20}\b(guns|firearms|weapons|armes|armas)\b`, Reason: ReasonWeaponsTrade},
	{Pattern: `\b(child|underage|minor)\b.{0,25}\b(model|modeling|content)\b.{0,20}\b(adult|onlyfans|explicit)\b`, Reason: ReasonAdultContent},
})

var audienceRestrictedSeed = mustCompileAll([]PatternSpec{
	{Pattern: `\b(onlyfans|porn|pornographic|adult film|xxx|stripper|camgirl|escort)\b`, Reason: ReasonAdultContent, Confidence: 0.9},
	{Pattern: `\b(gunsmith|firearms dealer|arms dealer|gun shop)\b`, Reason: ReasonWeaponsTrade, Confidence: 0.75},
	{Pattern: `\b(professional gambler|poker pro|sports betting|casino|betting system|parieur)\b`, Reason: ReasonGambling, Confidence: 0.7},
})

const audienceShortCircuitConfidence = 0.85

// CheckAudience classifies audience-restricted goals.
func (s *Set) CheckAudience(text string) Result {
	m := matchText(text)
	if m == "" {
		return Result{Gate: "audience", Status: AudiencePass, Confidence: 1}
	}

	for _, p := range s.audienceHard {
		if p.re.MatchString(m) {
			return Result{Gate: "audience", Status: AudienceBlock, Reason: p.reason, Confidence: 1}
		}
	}
	for _, p := range s.audienceRestricted {
		if p.re.MatchString(m) {
			if p.conf >= audienceShortCircuitConfidence {
				return Result{Gate: "audience", Status: AudienceRestricted, Reason: p.reason, Confidence: p.conf}
			}
			return Result{Gate: "audience", Status: AudienceDefer, Reason: p.reason, Confidence: p.conf}
		}
	}
	return Result{Gate: "audience", Status: AudiencePass, Confidence: 0.95}
}
