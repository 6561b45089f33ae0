package specification

import (
	"gorm.io/gorm"

	"github.com/grayfactory/superbowmvp-v4/pkg/recommend/state"
)

// Product query specifications. Each non-nil hard filter becomes exactly one
// specification; absent filters add no condition.

type ByAgeFit struct {
	Age string
}

func (s ByAgeFit) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("age_fit = ?", s.Age)
}

type ByJawHardnessFit struct {
	Jaw string
}

func (s ByJawHardnessFit) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("jaw_hardness_fit = ?", s.Jaw)
}

type ByShelfStable struct {
	ShelfStable bool
}

func (s ByShelfStable) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("shelf_stable = ?", s.ShelfStable)
}

type ByCrumbLevel struct {
	Level string
}

func (s ByCrumbLevel) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("crumb_level = ?", s.Level)
}

type ByNoiseLevel struct {
	Level string
}

func (s ByNoiseLevel) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("noise_level = ?", s.Level)
}

type ByCategory struct {
	Category string
}

func (s ByCategory) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("category = ?", s.Category)
}

type ByMaxPrice struct {
	Price int
}

func (s ByMaxPrice) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("price <= ?", s.Price)
}

// ExcludeAllergens rejects a product when any excluded term appears, case
// insensitively, in any ingredient text column or in the allergens array.
// This matches the substring-across-fields policy of the catalog.
type ExcludeAllergens struct {
	Terms []string
}

func (s ExcludeAllergens) Apply(db *gorm.DB) *gorm.DB {
	for _, term := range s.Terms {
		pattern := "%" + term + "%"
		db = db.Where(
			`NOT (COALESCE(protein_sources, '') ILIKE ?
				OR COALESCE(ingredient, '') ILIKE ?
				OR COALESCE(ingredient2, '') ILIKE ?
				OR COALESCE(ingredient3, '') ILIKE ?
				OR COALESCE(allergens::text, '') ILIKE ?)`,
			pattern, pattern, pattern, pattern, pattern,
		)
	}
	return db
}

// FromHardFilters expands a hard-filter record into specifications.
func FromHardFilters(f state.HardFilters) []Specification {
	var specs []Specification
	if f.JawHardnessFit != nil {
		specs = append(specs, ByJawHardnessFit{Jaw: *f.JawHardnessFit})
	}
	if f.AgeFit != nil {
		specs = append(specs, ByAgeFit{Age: *f.AgeFit})
	}
	if len(f.AllergensExclude) > 0 {
		specs = append(specs, ExcludeAllergens{Terms: f.AllergensExclude})
	}
	if f.ShelfStable != nil {
		specs = append(specs, ByShelfStable{ShelfStable: *f.ShelfStable})
	}
	if f.CrumbLevel != nil {
		specs = append(specs, ByCrumbLevel{Level: *f.CrumbLevel})
	}
	if f.NoiseLevel != nil {
		specs = append(specs, ByNoiseLevel{Level: *f.NoiseLevel})
	}
	if f.Category != nil {
		specs = append(specs, ByCategory{Category: *f.Category})
	}
	if f.PriceLte != nil {
		specs = append(specs, ByMaxPrice{Price: *f.PriceLte})
	}
	return specs
}
