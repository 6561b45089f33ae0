package mapper

import (
	"github.com/grayfactory/superbowmvp-v4/internal/entity"
	"github.com/grayfactory/superbowmvp-v4/internal/model"
)

type ContextMapper struct{}

func NewContextMapper() *ContextMapper {
	return &ContextMapper{}
}

func (m *ContextMapper) ToModel(e *entity.Context) *model.Context {
	return &model.Context{
		ContextID:      e.ContextID,
		Occasion:       e.Occasion,
		LocationType:   e.LocationType,
		DurationMin:    e.DurationMin,
		MessyOk:        e.MessyOk,
		NoiseSensitive: e.NoiseSensitive,
		Storage:        e.Storage,
		BudgetMax:      e.BudgetMax,
		Season:         e.Season,
		OwnerPref:      e.OwnerPref,
	}
}

func (m *ContextMapper) ToEntity(md *model.Context) *entity.Context {
	return &entity.Context{
		ContextID:      md.ContextID,
		Occasion:       md.Occasion,
		LocationType:   md.LocationType,
		DurationMin:    md.DurationMin,
		MessyOk:        md.MessyOk,
		NoiseSensitive: md.NoiseSensitive,
		Storage:        md.Storage,
		BudgetMax:      md.BudgetMax,
		Season:         md.Season,
		OwnerPref:      md.OwnerPref,
	}
}

func (m *ContextMapper) ToEntities(models []*model.Context) []*entity.Context {
	entities := make([]*entity.Context, 0, len(models))
	for _, md := range models {
		entities = append(entities, m.ToEntity(md))
	}
	return entities
}
