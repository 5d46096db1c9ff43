package gates

import (
	"regexp"
	"strings"
)

// Tone statuses.
const (
	ToneSerious  = "serious"
	TonePlayful  = "playful"
	ToneNonsense = "nonsense"
	ToneUnclear  = "unclear"
)

// Reason codes for the tone gate.
const (
	ReasonFantasyGoal        = "fantasy_goal"
	ReasonTrivialConsumption = "trivial_consumption"
	ReasonGibberish          = "gibberish"
	ReasonSingleWord         = "single_word"
)

var tonePlayfulSeed = mustCompileAll([]PatternSpec{
	{Pattern: `\b(become|be|turn into)\b.{0,15}\b(dragon|wizard|vampire|mermaid|superhero|jedi|pokemon|unicorn|werewolf|ghost)\b`, Reason: ReasonFantasyGoal, Confidence: 0.92},
	{Pattern: `\bdevenir\b.{0,15}\b(dragon|sorcier|vampire|sirene|super.?heros|licorne)\b`, Reason: ReasonFantasyGoal, Confidence: 0.92},
	{Pattern: `\b(convertirme|ser)\b.{0,12}\b(dragon|mago|vampiro|sirena|superheroe)\b`, Reason: ReasonFantasyGoal, Confidence: 0.92},
	{Pattern: `\bfly\b.{0,20}\b(unaided|without wings|like superman|to the moon by flapping)\b`, Reason: ReasonFantasyGoal, Confidence: 0.9},
	{Pattern: `\b(time travel|travel back in time|voyager dans le temps|viajar en el tiempo)\b`, Reason: ReasonFantasyGoal, Confidence: 0.9},
	{Pattern: `\b(become immortal|live forever|immortalite|inmortalidad)\b`, Reason: ReasonFantasyGoal, Confidence: 0.9},
	{Pattern: `\b(talk to|speak with)\b.{0,10}\b(animals|ghosts|the dead)\b`, Reason: ReasonFantasyGoal, Confidence: 0.88},
	{Pattern: `\b(marry|date)\b.{0,15}\b(a celebrity|beyonce|taylor swift|a pop star|an anime character)\b`, Reason: ReasonFantasyGoal, Confidence: 0.87},
})

// Single-word cravings: goals with nothing to plan.
var trivialConsumption = map[string]bool{
	"pizza": true, "beer": true, "wine": true, "coffee": true, "chocolate": true,
	"netflix": true, "burger": true, "burgers": true, "tacos": true, "sushi": true,
	"icecream": true, "donuts": true, "candy": true, "nap": true, "sleep": true,
	"biere": true, "cafe": true, "chocolat": true, "cerveza": true, "siesta": true,
}

var vowelRe = regexp.MustCompile(`[aeiouyàâéèêëîïôùûüáéíóúñäöü]`)

// CheckTone recognizes fantasy/absurd goals and trivial consumption. The
// orchestrator only acts on high confidence; anything below threshold is
// treated as inconclusive.
func (s *Set) CheckTone(text, lang string) Result {
	m := matchText(text)
	if m == "" {
		return Result{Gate: "tone", Status: ToneUnclear, Confidence: 1}
	}

	for _, p := range s.tonePlayful {
		if p.re.MatchString(m) {
			conf := p.conf
			if conf == 0 {
				conf = 0.9
			}
			return Result{Gate: "tone", Status: TonePlayful, Reason: p.reason, Confidence: conf}
		}
	}

	words := strings.Fields(m)
	if len(words) == 1 {
		w := words[0]
		if s.trivialWords[w] {
			return Result{Gate: "tone", Status: ToneNonsense, Reason: ReasonTrivialConsumption, Confidence: 0.9}
		}
		if isLatinLang(lang) && len(w) >= 4 && !vowelRe.MatchString(w) {
			return Result{Gate: "tone", Status: ToneNonsense, Reason: ReasonGibberish, Confidence: 0.88}
		}
		return Result{Gate: "tone", Status: ToneUnclear, Reason: ReasonSingleWord, Confidence: 0.6}
	}

	return Result{Gate: "tone", Status: ToneSerious, Confidence: 0.6}
}

func isLatinLang(lang string) bool {
	switch lang {
	case "zh", "ja", "ko", "ru", "ar":
		return false
	}
	return true
}
