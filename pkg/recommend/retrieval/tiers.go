package retrieval

import "github.com/grayfactory/superbowmvp-v4/pkg/recommend/state"

// Tier is one step of the relaxation ladder: the set of constraint fields it
// keeps. The ladder is data, not control flow, so the policy is testable on
// its own.
type Tier struct {
	Name   string
	Keep   func(state.HardFilters) state.HardFilters
}

// Tiers is the fixed relaxation order, tried top to bottom after the full
// filter set comes back empty. The allergen exclusion survives every tier.
var Tiers = []Tier{
	{
		Name: "core",
		Keep: func(f state.HardFilters) state.HardFilters {
			return state.HardFilters{
				AgeFit:           f.AgeFit,
				JawHardnessFit:   f.JawHardnessFit,
				AllergensExclude: f.AllergensExclude,
			}
		},
	},
	{
		Name: "age-only",
		Keep: func(f state.HardFilters) state.HardFilters {
			return state.HardFilters{
				AgeFit:           f.AgeFit,
				AllergensExclude: f.AllergensExclude,
			}
		},
	},
	{
		Name: "allergen-only",
		Keep: func(f state.HardFilters) state.HardFilters {
			return state.HardFilters{
				AllergensExclude: f.AllergensExclude,
			}
		},
	},
}
