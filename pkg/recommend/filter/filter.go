// Package filter normalizes free-form extracted signals into the canonical
// hard-filter representation the catalog query understands.
package filter

import (
	"strings"

	"github.com/grayfactory/superbowmvp-v4/pkg/recommend/state"
)

// Signals is the raw extraction result from the language model. Every field
// is optional; a nil or empty field means the conversation said nothing
// about it.
type Signals struct {
	MatchedContextID   *string  `json:"matched_context_id"`
	MatchedContextName *string  `json:"matched_context_name"`
	ContextConfidence  float64  `json:"context_confidence"`
	AgeFit             *string  `json:"age_fit"`
	JawHardnessFit     *string  `json:"jaw_hardness_fit"`
	ShelfStable        *bool    `json:"shelf_stable"`
	CrumbLevel         *string  `json:"crumb_level"`
	NoiseLevel         *string  `json:"noise_level"`
	Category           *string  `json:"category"`
	AllergensToAvoid   []string `json:"allergens_to_avoid"`
	MaxPrice           *int     `json:"max_price"`
	SoftPreferences    []string `json:"soft_preferences"`
}

// Enumeration tables. Keys are lowercased signal words, values are the
// catalog's canonical classes. Unrecognized words map to absent, never to a
// guessed default.
var (
	ageTable = map[string]string{
		"puppy":  "puppy",
		"young":  "puppy",
		"junior": "puppy",
		"adult":  "adult",
		"grown":  "adult",
		"senior": "senior",
		"old":    "senior",
		"elderly": "senior",
	}

	jawTable = map[string]string{
		"low":    "low",
		"soft":   "low",
		"weak":   "low",
		"medium": "medium",
		"normal": "medium",
		"high":   "high",
		"hard":   "high",
		"strong": "high",
	}

	levelTable = map[string]string{
		"low":    "low",
		"medium": "medium",
		"high":   "high",
	}

	noiseTable = map[string]string{
		"low":   "low",
		"quiet": "low",
		"high":  "high",
		"loud":  "high",
	}
)

// allergenTable maps allergen mentions to the catalog's canonical protein and
// ingredient terms. Downstream matching is substring-based, not semantic, so
// everything must land on the vocabulary the catalog rows actually use.
var allergenTable = map[string]string{
	"chicken":      "chicken",
	"poultry":      "chicken",
	"beef":         "beef",
	"cow":          "beef",
	"duck":         "duck",
	"lamb":         "lamb",
	"mutton":       "lamb",
	"pork":         "pork",
	"pig":          "pork",
	"salmon":       "salmon",
	"fish":         "fish",
	"tuna":         "fish",
	"egg":          "egg",
	"eggs":         "egg",
	"dairy":        "dairy",
	"milk":         "dairy",
	"cheese":       "dairy",
	"lactose":      "dairy",
	"wheat":        "wheat",
	"gluten":       "wheat",
	"grain":        "grain",
	"grains":       "grain",
	"corn":         "corn",
	"soy":          "soy",
	"soybean":      "soy",
	"peanut":       "peanut",
	"peanuts":      "peanut",
	"sweet potato": "sweet potato",
}

// NormalizeAge maps an age word to its canonical class, or nil.
func NormalizeAge(word *string) *string { return lookup(ageTable, word) }

// NormalizeJaw maps a jaw-strength word to its canonical class, or nil.
func NormalizeJaw(word *string) *string { return lookup(jawTable, word) }

// NormalizeAllergen maps an allergen mention to the canonical vocabulary.
// Unknown terms are kept lowercased rather than dropped: an exclusion the
// catalog never matches is harmless, a dropped one is a safety bug.
func NormalizeAllergen(term string) (string, bool) {
	t := strings.ToLower(strings.TrimSpace(term))
	if t == "" {
		return "", false
	}
	if canonical, ok := allergenTable[t]; ok {
		return canonical, true
	}
	return t, true
}

// Normalize converts raw signals into a canonical hard-filter partial plus
// the soft-preference list. Unrecognized values are omitted, which the merge
// engine treats as "no change".
func Normalize(sig Signals) (state.HardFilters, []string) {
	hf := state.HardFilters{
		AgeFit:         NormalizeAge(sig.AgeFit),
		JawHardnessFit: NormalizeJaw(sig.JawHardnessFit),
		CrumbLevel:     lookup(levelTable, sig.CrumbLevel),
		NoiseLevel:     lookup(noiseTable, sig.NoiseLevel),
		ShelfStable:    sig.ShelfStable,
	}

	if sig.Category != nil {
		if c := strings.ToLower(strings.TrimSpace(*sig.Category)); c != "" {
			hf.Category = state.StrPtr(c)
		}
	}
	if sig.MaxPrice != nil && *sig.MaxPrice > 0 {
		hf.PriceLte = sig.MaxPrice
	}

	for _, raw := range sig.AllergensToAvoid {
		if term, ok := NormalizeAllergen(raw); ok {
			hf.AllergensExclude = appendUnique(hf.AllergensExclude, term)
		}
	}

	soft := make([]string, 0, len(sig.SoftPreferences))
	for _, p := range sig.SoftPreferences {
		if p = strings.TrimSpace(p); p != "" {
			soft = append(soft, p)
		}
	}
	return hf, soft
}

// ResolvedKeys reports which missing-info keys the signals answer, so the
// orchestrator can advance its question queue.
func ResolvedKeys(sig Signals) []string {
	var keys []string
	if NormalizeJaw(sig.JawHardnessFit) != nil {
		keys = append(keys, state.KeyJawHardness)
	}
	if lookup(levelTable, sig.CrumbLevel) != nil {
		keys = append(keys, state.KeyCrumbLevel)
	}
	if lookup(noiseTable, sig.NoiseLevel) != nil {
		keys = append(keys, state.KeyNoiseLevel)
	}
	if sig.ShelfStable != nil {
		keys = append(keys, state.KeyShelfStable)
	}
	if len(sig.SoftPreferences) > 0 {
		keys = append(keys, state.KeyAskSoftPrefs)
	}
	return keys
}

func lookup(table map[string]string, word *string) *string {
	if word == nil {
		return nil
	}
	if canonical, ok := table[strings.ToLower(strings.TrimSpace(*word))]; ok {
		return state.StrPtr(canonical)
	}
	return nil
}

func appendUnique(list []string, term string) []string {
	for _, t := range list {
		if t == term {
			return list
		}
	}
	return append(list, term)
}
