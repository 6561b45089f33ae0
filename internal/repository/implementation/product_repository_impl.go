package implementation

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/grayfactory/superbowmvp-v4/internal/entity"
	"github.com/grayfactory/superbowmvp-v4/internal/mapper"
	"github.com/grayfactory/superbowmvp-v4/internal/model"
	"github.com/grayfactory/superbowmvp-v4/internal/repository/contract"
	"github.com/grayfactory/superbowmvp-v4/internal/repository/specification"
	"github.com/grayfactory/superbowmvp-v4/pkg/recommend/state"
)

type ProductRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ProductMapper
}

func NewProductRepository(db *gorm.DB) contract.ProductRepository {
	return &ProductRepositoryImpl{
		db:     db,
		mapper: mapper.NewProductMapper(),
	}
}

func (r *ProductRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ProductRepositoryImpl) Create(ctx context.Context, product *entity.Product) error {
	m := r.mapper.ToModel(product)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*product = *r.mapper.ToEntity(m)
	return nil
}

func (r *ProductRepositoryImpl) QueryProducts(ctx context.Context, filters state.HardFilters, limit int) ([]*entity.Product, error) {
	var models []*model.Product
	query := r.applySpecifications(
		r.db.WithContext(ctx),
		specification.FromHardFilters(filters)...,
	)
	if err := query.Limit(limit).Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *ProductRepositoryImpl) FindByID(ctx context.Context, productID string) (*entity.Product, error) {
	var m model.Product
	if err := r.db.WithContext(ctx).Where("product_id = ?", productID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ProductRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Product{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
