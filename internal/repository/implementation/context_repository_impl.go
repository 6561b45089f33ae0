package implementation

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/grayfactory/superbowmvp-v4/internal/entity"
	"github.com/grayfactory/superbowmvp-v4/internal/mapper"
	"github.com/grayfactory/superbowmvp-v4/internal/model"
	"github.com/grayfactory/superbowmvp-v4/internal/repository/contract"
)

type ContextRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ContextMapper
}

func NewContextRepository(db *gorm.DB) contract.ContextRepository {
	return &ContextRepositoryImpl{
		db:     db,
		mapper: mapper.NewContextMapper(),
	}
}

func (r *ContextRepositoryImpl) Create(ctx context.Context, occasion *entity.Context) error {
	m := r.mapper.ToModel(occasion)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*occasion = *r.mapper.ToEntity(m)
	return nil
}

func (r *ContextRepositoryImpl) FindAll(ctx context.Context) ([]*entity.Context, error) {
	var models []*model.Context
	if err := r.db.WithContext(ctx).Order("context_id ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *ContextRepositoryImpl) FindByID(ctx context.Context, contextID string) (*entity.Context, error) {
	var m model.Context
	if err := r.db.WithContext(ctx).Where("context_id = ?", contextID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}
