package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/grayfactory/superbowmvp-v4/pkg/recommend/state"
)

func TestNormalizeEnumerations(t *testing.T) {
	tests := []struct {
		name string
		sig  Signals
		want state.HardFilters
	}{
		{
			name: "synonyms map to canonical classes",
			sig: Signals{
				AgeFit:         state.StrPtr("old"),
				JawHardnessFit: state.StrPtr("weak"),
				CrumbLevel:     state.StrPtr("LOW"),
				NoiseLevel:     state.StrPtr("quiet"),
			},
			want: state.HardFilters{
				AgeFit:         state.StrPtr("senior"),
				JawHardnessFit: state.StrPtr("low"),
				CrumbLevel:     state.StrPtr("low"),
				NoiseLevel:     state.StrPtr("low"),
			},
		},
		{
			name: "unrecognized words become absent, not defaults",
			sig: Signals{
				AgeFit:         state.StrPtr("teenager"),
				JawHardnessFit: state.StrPtr("titanium"),
			},
			want: state.HardFilters{},
		},
		{
			name: "empty signals produce empty filters",
			sig:  Signals{},
			want: state.HardFilters{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := Normalize(tt.sig)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeAllergens(t *testing.T) {
	hf, _ := Normalize(Signals{
		AllergensToAvoid: []string{"Chicken", "milk", "chicken", "dragonfruit", " "},
	})
	// Synonyms canonicalized, duplicates dropped, unknown terms kept
	// lowercased so the exclusion is never silently lost.
	assert.Equal(t, []string{"chicken", "dairy", "dragonfruit"}, hf.AllergensExclude)
}

func TestNormalizePriceAndCategory(t *testing.T) {
	hf, _ := Normalize(Signals{
		Category: state.StrPtr(" Treat "),
		MaxPrice: state.IntPtr(15000),
	})
	assert.Equal(t, state.StrPtr("treat"), hf.Category)
	assert.Equal(t, state.IntPtr(15000), hf.PriceLte)

	hf, _ = Normalize(Signals{MaxPrice: state.IntPtr(0)})
	assert.Nil(t, hf.PriceLte)
}

func TestNormalizeSoftPreferences(t *testing.T) {
	_, soft := Normalize(Signals{
		SoftPreferences: []string{"low odor", "", "  small pieces "},
	})
	assert.Equal(t, []string{"low odor", "small pieces"}, soft)
}

func TestResolvedKeys(t *testing.T) {
	keys := ResolvedKeys(Signals{
		JawHardnessFit:  state.StrPtr("soft"),
		ShelfStable:     state.BoolPtr(true),
		SoftPreferences: []string{"low calorie"},
	})
	assert.Equal(t, []string{state.KeyJawHardness, state.KeyShelfStable, state.KeyAskSoftPrefs}, keys)

	assert.Empty(t, ResolvedKeys(Signals{JawHardnessFit: state.StrPtr("unbreakable")}))
}
