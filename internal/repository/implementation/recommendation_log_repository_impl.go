package implementation

import (
	"context"

	"gorm.io/gorm"

	"github.com/grayfactory/superbowmvp-v4/internal/entity"
	"github.com/grayfactory/superbowmvp-v4/internal/mapper"
	"github.com/grayfactory/superbowmvp-v4/internal/model"
	"github.com/grayfactory/superbowmvp-v4/internal/repository/contract"
	"github.com/grayfactory/superbowmvp-v4/internal/repository/specification"
)

type RecommendationLogRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.RecommendationLogMapper
}

func NewRecommendationLogRepository(db *gorm.DB) contract.RecommendationLogRepository {
	return &RecommendationLogRepositoryImpl{
		db:     db,
		mapper: mapper.NewRecommendationLogMapper(),
	}
}

func (r *RecommendationLogRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *RecommendationLogRepositoryImpl) Create(ctx context.Context, log *entity.RecommendationLog) error {
	m, err := r.mapper.ToModel(log)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	log.LogID = m.LogID
	log.CreatedAt = m.CreatedAt
	return nil
}

func (r *RecommendationLogRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.RecommendationLog, error) {
	var models []*model.RecommendationLog
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models)
}

func (r *RecommendationLogRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.RecommendationLog{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
