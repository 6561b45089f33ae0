package state

import (
	"encoding/json"
	"fmt"
)

// patchSchema enumerates the keys a partial update may touch. A nil value
// marks a leaf; a nested map marks a structured record that merges
// recursively. Anything outside this schema is rejected rather than silently
// accepted.
var patchSchema = map[string]any{
	"profile": map[string]any{
		"pet_id":            nil,
		"age_fit":           nil,
		"jaw_hardness_fit":  nil,
		"weight_status":     nil,
		"allergens_exclude": nil,
	},
	"context": map[string]any{
		"context_id": nil,
		"occasion":   nil,
		"matched":    nil,
	},
	"filters": map[string]any{
		"hard_filters": map[string]any{
			"jaw_hardness_fit":  nil,
			"age_fit":           nil,
			"allergens_exclude": nil,
			"shelf_stable":      nil,
			"crumb_level":       nil,
			"noise_level":       nil,
			"category":          nil,
			"price_lte":         nil,
		},
		"soft_preferences": nil,
	},
	"session": map[string]any{
		"missing_info":         nil,
		"user_request_history": nil,
		"last_recommended_ids": nil,
	},
}

// Merge applies a partial update to a base state and returns the merged
// state. Structured records recurse; primitives, arrays and nulls replace the
// base value outright. Keys absent from the patch leave the base untouched;
// no merge ever deletes a key. Unknown keys fail the merge.
//
// Allergen exclusions are the one exception to array replacement: they are a
// safety constraint and only ever grow within a session, so the base terms
// are folded back into the result.
func Merge(base State, patch map[string]any) (State, error) {
	if len(patch) == 0 {
		return base, nil
	}
	if err := validateKeys(patch, patchSchema, ""); err != nil {
		return base, err
	}

	baseMap, err := toMap(base)
	if err != nil {
		return base, fmt.Errorf("encode base state: %w", err)
	}

	mergedMap := DeepMerge(baseMap, patch)

	raw, err := json.Marshal(mergedMap)
	if err != nil {
		return base, fmt.Errorf("encode merged state: %w", err)
	}
	var merged State
	if err := json.Unmarshal(raw, &merged); err != nil {
		return base, fmt.Errorf("patch has wrong shape: %w", err)
	}

	merged.Profile.AllergensExclude = unionStrings(base.Profile.AllergensExclude, merged.Profile.AllergensExclude)
	merged.Filters.HardFilters.AllergensExclude = unionStrings(base.Filters.HardFilters.AllergensExclude, merged.Filters.HardFilters.AllergensExclude)

	return merged, nil
}

// DeepMerge merges src into dst without mutating either. Values that are
// objects on both sides merge recursively; everything else (primitives,
// arrays, null) is taken from src as-is.
func DeepMerge(dst, src map[string]any) map[string]any {
	out := make(map[string]any, len(dst)+len(src))
	for k, v := range dst {
		out[k] = v
	}
	for k, sv := range src {
		dv, exists := out[k]
		if exists {
			dMap, dOk := dv.(map[string]any)
			sMap, sOk := sv.(map[string]any)
			if dOk && sOk {
				out[k] = DeepMerge(dMap, sMap)
				continue
			}
		}
		out[k] = sv
	}
	return out
}

func validateKeys(patch map[string]any, schema map[string]any, path string) error {
	for key, value := range patch {
		sub, known := schema[key]
		qualified := key
		if path != "" {
			qualified = path + "." + key
		}
		if !known {
			return fmt.Errorf("unknown state key %q", qualified)
		}
		if subSchema, ok := sub.(map[string]any); ok {
			if nested, ok := value.(map[string]any); ok {
				if err := validateKeys(nested, subSchema, qualified); err != nil {
					return err
				}
			}
			// A non-object value for a record key is a wholesale replacement
			// (e.g. null); shape errors surface when decoding back into State.
		}
	}
	return nil
}

func toMap(s State) (map[string]any, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}

func unionStrings(base, extra []string) []string {
	seen := make(map[string]struct{}, len(base)+len(extra))
	out := make([]string, 0, len(base)+len(extra))
	for _, s := range base {
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	for _, s := range extra {
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
