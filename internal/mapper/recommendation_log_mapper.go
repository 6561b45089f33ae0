package mapper

import (
	"encoding/json"

	"gorm.io/datatypes"

	"github.com/grayfactory/superbowmvp-v4/internal/entity"
	"github.com/grayfactory/superbowmvp-v4/internal/model"
	"github.com/grayfactory/superbowmvp-v4/pkg/recommend/state"
)

type RecommendationLogMapper struct{}

func NewRecommendationLogMapper() *RecommendationLogMapper {
	return &RecommendationLogMapper{}
}

func (m *RecommendationLogMapper) ToModel(e *entity.RecommendationLog) (*model.RecommendationLog, error) {
	profile, err := json.Marshal(e.ProfileSnapshot)
	if err != nil {
		return nil, err
	}
	context, err := json.Marshal(e.ContextSnapshot)
	if err != nil {
		return nil, err
	}
	filters, err := json.Marshal(e.FiltersSnapshot)
	if err != nil {
		return nil, err
	}
	products, err := json.Marshal(e.RecommendedProducts)
	if err != nil {
		return nil, err
	}

	return &model.RecommendationLog{
		LogID:               e.LogID,
		CreatedAt:           e.CreatedAt,
		ProfileSnapshot:     datatypes.JSON(profile),
		ContextSnapshot:     datatypes.JSON(context),
		FiltersSnapshot:     datatypes.JSON(filters),
		RecommendedProducts: datatypes.JSON(products),
		ContextID:           e.ContextID,
		AgeFit:              e.AgeFit,
		JawHardnessFit:      e.JawHardnessFit,
		TopProductID:        e.TopProductID,
		TopProductScore:     e.TopProductScore,
	}, nil
}

func (m *RecommendationLogMapper) ToEntity(md *model.RecommendationLog) (*entity.RecommendationLog, error) {
	e := &entity.RecommendationLog{
		LogID:           md.LogID,
		CreatedAt:       md.CreatedAt,
		ContextID:       md.ContextID,
		AgeFit:          md.AgeFit,
		JawHardnessFit:  md.JawHardnessFit,
		TopProductID:    md.TopProductID,
		TopProductScore: md.TopProductScore,
	}

	var profile state.PetProfile
	if err := json.Unmarshal(md.ProfileSnapshot, &profile); err != nil {
		return nil, err
	}
	e.ProfileSnapshot = profile

	var context state.ContextInfo
	if err := json.Unmarshal(md.ContextSnapshot, &context); err != nil {
		return nil, err
	}
	e.ContextSnapshot = context

	var filters state.ProductFilters
	if err := json.Unmarshal(md.FiltersSnapshot, &filters); err != nil {
		return nil, err
	}
	e.FiltersSnapshot = filters

	var products []entity.RecommendedProduct
	if err := json.Unmarshal(md.RecommendedProducts, &products); err != nil {
		return nil, err
	}
	e.RecommendedProducts = products

	return e, nil
}

func (m *RecommendationLogMapper) ToEntities(models []*model.RecommendationLog) ([]*entity.RecommendationLog, error) {
	entities := make([]*entity.RecommendationLog, 0, len(models))
	for _, md := range models {
		e, err := m.ToEntity(md)
		if err != nil {
			return nil, err
		}
		entities = append(entities, e)
	}
	return entities, nil
}
