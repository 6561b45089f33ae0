package contract

import (
	"context"

	"github.com/grayfactory/superbowmvp-v4/internal/entity"
	"github.com/grayfactory/superbowmvp-v4/internal/repository/specification"
)

type RecommendationLogRepository interface {
	Create(ctx context.Context, log *entity.RecommendationLog) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.RecommendationLog, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
