package contract

import (
	"context"

	"github.com/grayfactory/superbowmvp-v4/internal/entity"
)

type ContextRepository interface {
	Create(ctx context.Context, occasion *entity.Context) error
	FindAll(ctx context.Context) ([]*entity.Context, error)
	// FindByID returns (nil, nil) when the context does not exist.
	FindByID(ctx context.Context, contextID string) (*entity.Context, error)
}
