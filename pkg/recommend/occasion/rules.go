// Package occasion resolves the user's situation against the fixed occasion
// catalog and converts an accepted match into query constraints.
package occasion

import (
	"strings"

	"github.com/grayfactory/superbowmvp-v4/internal/entity"
	"github.com/grayfactory/superbowmvp-v4/pkg/recommend/state"
)

const storageShelfStableOnly = "only_shelf_stable"

// FallbackQuestions is what the orchestrator enqueues when no occasion
// matches: hard constraints first, preferences last. The order is fixed.
var FallbackQuestions = []string{
	state.KeyJawHardness,
	state.KeyCrumbLevel,
	state.KeyNoiseLevel,
	state.KeyShelfStable,
	state.KeyAskSoftPrefs,
}

// HardFiltersFor translates an occasion's attributes into hard filters.
// The budget ceiling only applies when no tighter price constraint exists.
func HardFiltersFor(occ *entity.Context, existing state.HardFilters) state.HardFilters {
	filters := state.HardFilters{}

	if occ.Storage != nil && *occ.Storage == storageShelfStableOnly {
		filters.ShelfStable = state.BoolPtr(true)
	}
	if occ.NoiseSensitive != nil && *occ.NoiseSensitive {
		filters.NoiseLevel = state.StrPtr("low")
	}
	if occ.MessyOk != nil && !*occ.MessyOk {
		filters.CrumbLevel = state.StrPtr("low")
	}
	if occ.BudgetMax != nil && *occ.BudgetMax > 0 {
		if existing.PriceLte == nil || *occ.BudgetMax < *existing.PriceLte {
			filters.PriceLte = occ.BudgetMax
		}
	}

	return filters
}

// OwnerPreferences splits the occasion's free-text preference field into
// discrete tags.
func OwnerPreferences(occ *entity.Context) []string {
	if occ.OwnerPref == nil {
		return nil
	}
	var prefs []string
	for _, p := range strings.Split(*occ.OwnerPref, ",") {
		if p = strings.TrimSpace(p); p != "" {
			prefs = append(prefs, p)
		}
	}
	return prefs
}
