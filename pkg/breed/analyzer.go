// Package breed derives pet profile attributes (life stage, jaw strength,
// weight status) from per-breed growth reference data.
package breed

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

//go:embed data/breed_data.json
var breedDataJSON []byte

//go:embed data/breed_names.json
var breedNamesJSON []byte

// ErrBreedNotFound means the breed is not in the reference database, e.g. a
// mixed breed or a typo. Callers fall back to asking the user directly.
var ErrBreedNotFound = errors.New("breed not found in reference data")

type monthStats struct {
	Month         int     `json:"month"`
	LifeStage     string  `json:"lifeStage"`
	Size          string  `json:"size"`
	WeightAvgKg   float64 `json:"weightAvgKg"`
	UnderweightKg float64 `json:"underweightKg"`
	OverweightKg  float64 `json:"overweightKg"`
	BiteForceN    float64 `json:"biteForceN"`
	SkullType     string  `json:"skullType"`
}

// Analysis is the derived profile. JawHardnessFit and WeightStatus are nil
// when the reference data has no row for the exact month.
type Analysis struct {
	AgeFit         string  `json:"age_fit"`          // puppy | adult | senior
	JawHardnessFit *string `json:"jaw_hardness_fit"` // low | medium | high
	WeightStatus   *string `json:"weight_status"`    // underweight | normal | overweight
}

var (
	breedData map[string]map[string]monthStats
	nameAlias map[string]string
)

func init() {
	if err := json.Unmarshal(breedDataJSON, &breedData); err != nil {
		panic(fmt.Sprintf("breed: corrupt embedded breed data: %v", err))
	}
	if err := json.Unmarshal(breedNamesJSON, &nameAlias); err != nil {
		panic(fmt.Sprintf("breed: corrupt embedded name map: %v", err))
	}
}

// NormalizeName resolves aliases and localized names to the database's
// canonical breed name.
func NormalizeName(input string) (string, bool) {
	name := strings.TrimSpace(input)
	if _, ok := breedData[name]; ok {
		return name, true
	}
	if mapped, ok := nameAlias[name]; ok {
		if _, exists := breedData[mapped]; exists {
			return mapped, true
		}
	}
	if mapped, ok := nameAlias[strings.ToLower(name)]; ok {
		if _, exists := breedData[mapped]; exists {
			return mapped, true
		}
	}
	return "", false
}

// Analyze looks up the breed's reference row for the exact month. When the
// month is outside the table, only the life stage is estimated from the age;
// jaw strength and weight status stay unknown rather than guessed.
func Analyze(breedName string, month int, weightKg *float64) (Analysis, error) {
	canonical, ok := NormalizeName(breedName)
	if !ok {
		return Analysis{}, ErrBreedNotFound
	}

	stats, ok := breedData[canonical][strconv.Itoa(month)]
	if !ok {
		return Analysis{AgeFit: ageFitFromMonth(month)}, nil
	}

	analysis := Analysis{
		AgeFit:         ageFitFromLifeStage(stats.LifeStage),
		JawHardnessFit: strPtr(jawFromBiteForce(stats.BiteForceN)),
	}
	if weightKg != nil {
		analysis.WeightStatus = strPtr(weightStatus(*weightKg, stats.UnderweightKg, stats.OverweightKg))
	}
	return analysis, nil
}

func jawFromBiteForce(biteForceN float64) string {
	switch {
	case biteForceN < 200:
		return "low"
	case biteForceN < 450:
		return "medium"
	default:
		return "high"
	}
}

func weightStatus(weightKg, underweightKg, overweightKg float64) string {
	switch {
	case weightKg < underweightKg:
		return "underweight"
	case weightKg > overweightKg:
		return "overweight"
	default:
		return "normal"
	}
}

func ageFitFromLifeStage(lifeStage string) string {
	lower := strings.ToLower(lifeStage)
	switch {
	case strings.Contains(lower, "puppy") || strings.Contains(lower, "kitten"):
		return "puppy"
	case strings.Contains(lower, "senior"):
		return "senior"
	default:
		return "adult"
	}
}

func ageFitFromMonth(month int) string {
	switch {
	case month <= 12:
		return "puppy"
	case month >= 84:
		return "senior"
	default:
		return "adult"
	}
}

func strPtr(s string) *string { return &s }
