package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseState() State {
	st := NewInitialState()
	st.Profile.AgeFit = StrPtr("adult")
	st.Profile.AllergensExclude = []string{"chicken"}
	st.Filters.HardFilters.AgeFit = StrPtr("adult")
	st.Filters.HardFilters.AllergensExclude = []string{"chicken"}
	st.Filters.SoftPreferences = []string{"low odor"}
	return st
}

func TestMergeAbsentKeysLeaveBaseUntouched(t *testing.T) {
	st := baseState()

	merged, err := Merge(st, map[string]any{
		"context": map[string]any{"matched": true, "context_id": "C001"},
	})
	require.NoError(t, err)

	assert.Equal(t, st.Profile, merged.Profile)
	assert.Equal(t, st.Filters, merged.Filters)
	assert.True(t, merged.Context.Matched)
	assert.Equal(t, StrPtr("C001"), merged.Context.ContextID)
}

func TestMergeRecursesIntoRecords(t *testing.T) {
	st := baseState()

	// Updating one nested field must not flatten the rest of the record.
	merged, err := Merge(st, map[string]any{
		"filters": map[string]any{
			"hard_filters": map[string]any{"noise_level": "low"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, StrPtr("low"), merged.Filters.HardFilters.NoiseLevel)
	assert.Equal(t, StrPtr("adult"), merged.Filters.HardFilters.AgeFit)
	assert.Equal(t, []string{"low odor"}, merged.Filters.SoftPreferences)
}

func TestMergeArraysReplaceWholesale(t *testing.T) {
	st := baseState()

	merged, err := Merge(st, map[string]any{
		"filters": map[string]any{
			"soft_preferences": []string{"small pieces"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"small pieces"}, merged.Filters.SoftPreferences)
}

func TestMergeNullClearsField(t *testing.T) {
	st := baseState()

	merged, err := Merge(st, map[string]any{
		"filters": map[string]any{
			"hard_filters": map[string]any{"age_fit": nil},
		},
	})
	require.NoError(t, err)
	assert.Nil(t, merged.Filters.HardFilters.AgeFit)
}

func TestMergeRejectsUnknownKeys(t *testing.T) {
	st := baseState()

	_, err := Merge(st, map[string]any{"proflie": map[string]any{"age_fit": "puppy"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "proflie")

	_, err = Merge(st, map[string]any{
		"filters": map[string]any{
			"hard_filters": map[string]any{"max_price": 100},
		},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_price")
}

func TestMergeAllergensOnlyGrow(t *testing.T) {
	st := baseState()

	merged, err := Merge(st, map[string]any{
		"profile": map[string]any{"allergens_exclude": []string{"egg"}},
		"filters": map[string]any{
			"hard_filters": map[string]any{"allergens_exclude": []string{"egg"}},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"chicken", "egg"}, merged.Profile.AllergensExclude)
	assert.Equal(t, []string{"chicken", "egg"}, merged.Filters.HardFilters.AllergensExclude)

	// An empty patch list never shrinks the set either.
	merged, err = Merge(merged, map[string]any{
		"profile": map[string]any{"allergens_exclude": []string{}},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"chicken", "egg"}, merged.Profile.AllergensExclude)
}

func TestMergeEmptyPatchIsIdentity(t *testing.T) {
	st := baseState()
	merged, err := Merge(st, nil)
	require.NoError(t, err)
	assert.Equal(t, st, merged)
}

func TestMergeDoesNotMutateBaseOnError(t *testing.T) {
	st := baseState()
	snapshot := baseState()

	_, err := Merge(st, map[string]any{"bogus": 1})
	require.Error(t, err)
	assert.Equal(t, snapshot, st)
}

func TestDeepMerge(t *testing.T) {
	dst := map[string]any{
		"a": map[string]any{"x": 1, "y": 2},
		"b": []any{1, 2},
	}
	src := map[string]any{
		"a": map[string]any{"y": 3},
		"b": []any{9},
	}

	out := DeepMerge(dst, src)
	assert.Equal(t, map[string]any{"x": 1, "y": 3}, out["a"])
	assert.Equal(t, []any{9}, out["b"])
	// dst untouched
	assert.Equal(t, map[string]any{"x": 1, "y": 2}, dst["a"])
}
