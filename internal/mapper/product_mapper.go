package mapper

import (
	"gorm.io/datatypes"

	"github.com/grayfactory/superbowmvp-v4/internal/entity"
	"github.com/grayfactory/superbowmvp-v4/internal/model"
)

type ProductMapper struct{}

func NewProductMapper() *ProductMapper {
	return &ProductMapper{}
}

func (m *ProductMapper) ToModel(e *entity.Product) *model.Product {
	return &model.Product{
		ProductID:       e.ProductID,
		Name:            e.Name,
		Category:        e.Category,
		ProteinSources:  e.ProteinSources,
		Ingredient:      e.Ingredient,
		Ingredient2:     e.Ingredient2,
		Ingredient3:     e.Ingredient3,
		Allergens:       datatypes.NewJSONSlice(e.Allergens),
		Texture:         e.Texture,
		PieceSizeCm:     e.PieceSizeCm,
		MoistureType:    e.MoistureType,
		FunctionalTags:  datatypes.NewJSONSlice(e.FunctionalTags),
		Packaging:       e.Packaging,
		Feature:         e.Feature,
		ShelfStable:     e.ShelfStable,
		StrongAroma:     e.StrongAroma,
		CrumbLevel:      e.CrumbLevel,
		NoiseLevel:      e.NoiseLevel,
		Price:           e.Price,
		AgeFit:          e.AgeFit,
		JawHardnessFit:  e.JawHardnessFit,
		ProteinPercent:  e.ProteinPercent,
		MoisturePercent: e.MoisturePercent,
		FiberPercent:    e.FiberPercent,
		AshPercent:      e.AshPercent,
		FatPercent:      e.FatPercent,
	}
}

func (m *ProductMapper) ToEntity(md *model.Product) *entity.Product {
	return &entity.Product{
		ProductID:       md.ProductID,
		Name:            md.Name,
		Category:        md.Category,
		ProteinSources:  md.ProteinSources,
		Ingredient:      md.Ingredient,
		Ingredient2:     md.Ingredient2,
		Ingredient3:     md.Ingredient3,
		Allergens:       []string(md.Allergens),
		Texture:         md.Texture,
		PieceSizeCm:     md.PieceSizeCm,
		MoistureType:    md.MoistureType,
		FunctionalTags:  []string(md.FunctionalTags),
		Packaging:       md.Packaging,
		Feature:         md.Feature,
		ShelfStable:     md.ShelfStable,
		StrongAroma:     md.StrongAroma,
		CrumbLevel:      md.CrumbLevel,
		NoiseLevel:      md.NoiseLevel,
		Price:           md.Price,
		AgeFit:          md.AgeFit,
		JawHardnessFit:  md.JawHardnessFit,
		ProteinPercent:  md.ProteinPercent,
		MoisturePercent: md.MoisturePercent,
		FiberPercent:    md.FiberPercent,
		AshPercent:      md.AshPercent,
		FatPercent:      md.FatPercent,
	}
}

func (m *ProductMapper) ToEntities(models []*model.Product) []*entity.Product {
	entities := make([]*entity.Product, 0, len(models))
	for _, md := range models {
		entities = append(entities, m.ToEntity(md))
	}
	return entities
}
