package contract

import (
	"context"

	"github.com/grayfactory/superbowmvp-v4/internal/entity"
	"github.com/grayfactory/superbowmvp-v4/pkg/recommend/state"
)

type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	// QueryProducts runs the hard filters against the catalog, capped at limit.
	QueryProducts(ctx context.Context, filters state.HardFilters, limit int) ([]*entity.Product, error)
	// FindByID returns (nil, nil) when the product does not exist.
	FindByID(ctx context.Context, productID string) (*entity.Product, error)
	Count(ctx context.Context) (int64, error)
}
