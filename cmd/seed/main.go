// Seeds the catalog tables with the occasion profiles and a starter set of
// products, and runs the schema migration. Safe to re-run: rows are upserted
// by primary key.
package main

import (
	"log"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/grayfactory/superbowmvp-v4/internal/config"
	"github.com/grayfactory/superbowmvp-v4/internal/entity"
	"github.com/grayfactory/superbowmvp-v4/internal/mapper"
	"github.com/grayfactory/superbowmvp-v4/internal/model"
	"github.com/grayfactory/superbowmvp-v4/pkg/database"
	"github.com/grayfactory/superbowmvp-v4/pkg/recommend/state"
)

func main() {
	cfg := config.Load()

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	if err := db.AutoMigrate(&model.Product{}, &model.Context{}, &model.RecommendationLog{}); err != nil {
		log.Panicf("Migration failed: %v", err)
	}
	log.Println("Schema migrated")

	seedContexts(db)
	seedProducts(db)
	log.Println("Seed complete")
}

func seedContexts(db *gorm.DB) {
	contexts := []*entity.Context{
		{
			ContextID:      "C001",
			Occasion:       "car ride",
			LocationType:   state.StrPtr("car"),
			DurationMin:    state.IntPtr(60),
			MessyOk:        state.BoolPtr(false),
			NoiseSensitive: state.BoolPtr(true),
			Storage:        state.StrPtr("only_shelf_stable"),
			OwnerPref:      state.StrPtr("individually wrapped, low odor"),
		},
		{
			ContextID:      "C002",
			Occasion:       "vet waiting room",
			LocationType:   state.StrPtr("clinic"),
			DurationMin:    state.IntPtr(30),
			MessyOk:        state.BoolPtr(false),
			NoiseSensitive: state.BoolPtr(true),
			Storage:        state.StrPtr("only_shelf_stable"),
			OwnerPref:      state.StrPtr("small pieces, calming"),
		},
		{
			ContextID:    "C003",
			Occasion:     "home training",
			LocationType: state.StrPtr("home"),
			MessyOk:      state.BoolPtr(true),
			Storage:      state.StrPtr("refrigeration_ok"),
			OwnerPref:    state.StrPtr("low calorie, repeatable rewards"),
		},
		{
			ContextID:      "C004",
			Occasion:       "long walk",
			LocationType:   state.StrPtr("outdoor"),
			DurationMin:    state.IntPtr(90),
			MessyOk:        state.BoolPtr(true),
			NoiseSensitive: state.BoolPtr(false),
			Storage:        state.StrPtr("only_shelf_stable"),
			Season:         state.StrPtr("any"),
			OwnerPref:      state.StrPtr("portable, energy boost"),
		},
		{
			ContextID:    "C005",
			Occasion:     "cafe visit",
			LocationType: state.StrPtr("cafe"),
			DurationMin:  state.IntPtr(120),
			MessyOk:      state.BoolPtr(false),
			NoiseSensitive: state.BoolPtr(true),
			Storage:      state.StrPtr("only_shelf_stable"),
			BudgetMax:    state.IntPtr(15000),
			OwnerPref:    state.StrPtr("quiet chewing, no smell"),
		},
	}

	m := mapper.NewContextMapper()
	for _, c := range contexts {
		if err := db.Clauses(clause.OnConflict{UpdateAll: true}).Create(m.ToModel(c)).Error; err != nil {
			log.Panicf("Seed context %s failed: %v", c.ContextID, err)
		}
	}
	log.Printf("Seeded %d contexts", len(contexts))
}

func seedProducts(db *gorm.DB) {
	products := []*entity.Product{
		{
			ProductID: "P0001", Name: "Freeze-Dried Duck Cubes", Category: "treat",
			ProteinSources: state.StrPtr("duck"),
			Ingredient:     state.StrPtr("duck breast"),
			Allergens:      []string{"duck"},
			Texture:        state.StrPtr("soft"),
			FunctionalTags: []string{"single protein", "grain free"},
			ShelfStable:    true,
			CrumbLevel:     state.StrPtr("low"),
			NoiseLevel:     state.StrPtr("low"),
			Price:          12000,
			AgeFit:         state.StrPtr("senior"),
			JawHardnessFit: state.StrPtr("low"),
		},
		{
			ProductID: "P0002", Name: "Chicken Jerky Strips", Category: "treat",
			ProteinSources: state.StrPtr("chicken"),
			Ingredient:     state.StrPtr("chicken breast"),
			Ingredient2:    state.StrPtr("glycerin"),
			Allergens:      []string{"chicken"},
			Texture:        state.StrPtr("chewy"),
			FunctionalTags: []string{"high protein"},
			ShelfStable:    true,
			CrumbLevel:     state.StrPtr("low"),
			NoiseLevel:     state.StrPtr("low"),
			Price:          8000,
			AgeFit:         state.StrPtr("adult"),
			JawHardnessFit: state.StrPtr("medium"),
		},
		{
			ProductID: "P0003", Name: "Salmon Training Bites", Category: "treat",
			ProteinSources: state.StrPtr("salmon"),
			Ingredient:     state.StrPtr("salmon"),
			Ingredient2:    state.StrPtr("sweet potato"),
			Allergens:      []string{"salmon", "fish"},
			Texture:        state.StrPtr("soft"),
			FunctionalTags: []string{"omega-3", "small pieces"},
			ShelfStable:    false,
			CrumbLevel:     state.StrPtr("low"),
			NoiseLevel:     state.StrPtr("low"),
			Price:          9500,
			AgeFit:         state.StrPtr("puppy"),
			JawHardnessFit: state.StrPtr("low"),
		},
		{
			ProductID: "P0004", Name: "Beef Knuckle Bone", Category: "chew",
			ProteinSources: state.StrPtr("beef"),
			Ingredient:     state.StrPtr("beef femur"),
			Allergens:      []string{"beef"},
			Texture:        state.StrPtr("hard"),
			FunctionalTags: []string{"dental", "long lasting"},
			ShelfStable:    true,
			CrumbLevel:     state.StrPtr("high"),
			NoiseLevel:     state.StrPtr("high"),
			Price:          15000,
			AgeFit:         state.StrPtr("adult"),
			JawHardnessFit: state.StrPtr("high"),
		},
		{
			ProductID: "P0005", Name: "Lamb Lung Puffs", Category: "treat",
			ProteinSources: state.StrPtr("lamb"),
			Ingredient:     state.StrPtr("lamb lung"),
			Allergens:      []string{"lamb"},
			Texture:        state.StrPtr("crunchy"),
			FunctionalTags: []string{"single protein", "hypoallergenic"},
			ShelfStable:    true,
			CrumbLevel:     state.StrPtr("medium"),
			NoiseLevel:     state.StrPtr("low"),
			Price:          11000,
			AgeFit:         state.StrPtr("adult"),
			JawHardnessFit: state.StrPtr("low"),
		},
		{
			ProductID: "P0006", Name: "Egg & Cheese Biscuits", Category: "treat",
			ProteinSources: state.StrPtr("egg"),
			Ingredient:     state.StrPtr("wheat flour"),
			Ingredient2:    state.StrPtr("egg"),
			Ingredient3:    state.StrPtr("cheddar cheese"),
			Allergens:      []string{"egg", "dairy", "wheat"},
			Texture:        state.StrPtr("crunchy"),
			FunctionalTags: []string{"baked"},
			ShelfStable:    true,
			CrumbLevel:     state.StrPtr("high"),
			NoiseLevel:     state.StrPtr("low"),
			Price:          6000,
			AgeFit:         state.StrPtr("adult"),
			JawHardnessFit: state.StrPtr("medium"),
		},
	}

	m := mapper.NewProductMapper()
	for _, p := range products {
		if err := db.Clauses(clause.OnConflict{UpdateAll: true}).Create(m.ToModel(p)).Error; err != nil {
			log.Panicf("Seed product %s failed: %v", p.ProductID, err)
		}
	}
	log.Printf("Seeded %d products", len(products))
}
