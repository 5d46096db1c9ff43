package engine

// DefaultAngles supplies category-keyed fallback suggestions when the
// analysis judge produced none. Pure function, no I/O: the pipeline must
// never terminate in a state with no outcome.
func DefaultAngles(category, locale, intent string, days int, lang string) []Angle {
	_ = locale
	_ = intent
	_ = days

	byLang, ok := defaultAngleTables[category]
	if !ok {
		byLang = defaultAngleTables[CategoryOther]
	}
	angles, ok := byLang[lang]
	if !ok {
		angles = byLang["en"]
	}
	out := make([]Angle, len(angles))
	copy(out, angles)
	return out
}

var defaultAngleTables = map[string]map[string][]Angle{
	CategoryLearnSkill: {
		"en": {
			{Title: "Fundamentals first", Description: "Start from the basics and build up with daily practice."},
			{Title: "Project-driven", Description: "Pick one small project and learn what it demands."},
			{Title: "Guided course", Description: "Follow a structured course and track completion."},
		},
		"fr": {
			{Title: "Les bases d'abord", Description: "Commencer par les fondamentaux avec une pratique quotidienne."},
			{Title: "Par projet", Description: "Choisir un petit projet et apprendre ce qu'il exige."},
			{Title: "Cours guidé", Description: "Suivre un cours structuré et mesurer sa progression."},
		},
	},
	CategoryCareer: {
		"en": {
			{Title: "Skill sprint", Description: "Close the one skill gap that matters most for the role."},
			{Title: "Visibility", Description: "Make your work visible to the people who decide."},
			{Title: "Network deliberately", Description: "Talk to people already doing what you want to do."},
		},
	},
	CategoryHealthFitness: {
		"en": {
			{Title: "Consistency over intensity", Description: "Small daily sessions beat occasional big ones."},
			{Title: "Measurable baseline", Description: "Measure where you are, then improve one number."},
			{Title: "Habit anchor", Description: "Attach the new routine to an existing daily habit."},
		},
	},
	CategoryWellbeing: {
		"en": {
			{Title: "Focus on what you control", Description: "Work on your own routines and reactions first."},
			{Title: "Become your best self", Description: "Invest in the person you want to be, independent of others."},
			{Title: "Small daily wins", Description: "Stack small improvements that compound over the period."},
		},
		"fr": {
			{Title: "Agir sur ce qui dépend de vous", Description: "Travailler d'abord vos propres routines et réactions."},
			{Title: "Devenir votre meilleure version", Description: "Investir en vous, indépendamment des autres."},
			{Title: "Petites victoires quotidiennes", Description: "Accumuler de petits progrès qui s'additionnent."},
		},
	},
	CategoryFinance: {
		"en": {
			{Title: "Spending audit", Description: "Know where the money goes before changing anything."},
			{Title: "One income lever", Description: "Pick a single realistic lever and push it hard."},
			{Title: "Automate savings", Description: "Make the default behavior the right one."},
		},
	},
	CategoryCreative: {
		"en": {
			{Title: "Daily output", Description: "Produce something small every day, quality later."},
			{Title: "Copy the masters", Description: "Recreate work you admire to learn its mechanics."},
			{Title: "Ship one piece", Description: "Finish and share a single complete piece."},
		},
	},
	CategoryOther: {
		"en": {
			{Title: "Break it down", Description: "Split the goal into weekly milestones."},
			{Title: "First small step", Description: "Do the smallest useful action this week."},
			{Title: "Find a model", Description: "Find someone who did it and borrow their path."},
		},
	},
}
