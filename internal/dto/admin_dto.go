package dto

import (
	"time"

	"github.com/grayfactory/superbowmvp-v4/internal/entity"
	"github.com/grayfactory/superbowmvp-v4/pkg/recommend/state"
)

type LogQueryRequest struct {
	Level  string `query:"level" validate:"omitempty,oneof=debug info warn error"`
	Limit  int    `query:"limit" validate:"omitempty,min=1,max=500"`
	Offset int    `query:"offset" validate:"omitempty,min=0"`
}

type RecommendationLogQuery struct {
	ContextID string `query:"context_id" validate:"omitempty,max=20"`
	AgeFit    string `query:"age_fit" validate:"omitempty,oneof=puppy adult senior"`
	Limit     int    `query:"limit" validate:"omitempty,min=1,max=200"`
	Offset    int    `query:"offset" validate:"omitempty,min=0"`
}

type RecommendationLogResponse struct {
	LogID           string                      `json:"log_id"`
	CreatedAt       time.Time                   `json:"created_at"`
	Profile         state.PetProfile            `json:"profile"`
	Context         state.ContextInfo           `json:"context"`
	Filters         state.ProductFilters        `json:"filters"`
	Items           []entity.RecommendedProduct `json:"items"`
	TopProductID    string                      `json:"top_product_id"`
	TopProductScore int                         `json:"top_product_score"`
}

type RecommendationLogListResponse struct {
	Total int64                       `json:"total"`
	Logs  []RecommendationLogResponse `json:"logs"`
}
