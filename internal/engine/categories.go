package engine

// CategoryConfig carries per-category policy flags.
type CategoryConfig struct {
	Name string

	// AngleFirst categories skip the ambition confirmation entirely: their
	// angle-based support path is strictly friendlier than a blocking
	// confirmation. Product policy, so a flag rather than a category name
	// baked into the orchestrator.
	AngleFirst bool

	// RequiresFeasibility categories run the realism judge after all other
	// gating has passed.
	RequiresFeasibility bool
}

const (
	CategoryLearnSkill    = "learn_skill"
	CategoryCareer        = "career"
	CategoryHealthFitness = "health_fitness"
	CategoryWellbeing     = "wellbeing"
	CategoryFinance       = "finance"
	CategoryCreative      = "creative"
	CategoryOther         = "other"
)

func DefaultCategories() map[string]CategoryConfig {
	return map[string]CategoryConfig{
		CategoryLearnSkill:    {Name: CategoryLearnSkill},
		CategoryCareer:        {Name: CategoryCareer, RequiresFeasibility: true},
		CategoryHealthFitness: {Name: CategoryHealthFitness, RequiresFeasibility: true},
		CategoryWellbeing:     {Name: CategoryWellbeing, AngleFirst: true},
		CategoryFinance:       {Name: CategoryFinance, RequiresFeasibility: true},
		CategoryCreative:      {Name: CategoryCreative},
		CategoryOther:         {Name: CategoryOther},
	}
}

// CategoryNames returns the stable option list shown when routing fails.
func CategoryNames() []string {
	return []string{
		CategoryLearnSkill,
		CategoryCareer,
		CategoryHealthFitness,
		CategoryWellbeing,
		CategoryFinance,
		CategoryCreative,
		CategoryOther,
	}
}
