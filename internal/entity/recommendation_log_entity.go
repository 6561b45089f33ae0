package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/grayfactory/superbowmvp-v4/pkg/recommend/state"
)

// RecommendedProduct is the per-item slice of a recommendation snapshot.
type RecommendedProduct struct {
	ProductID string `json:"product_id"`
	Score     int    `json:"score"`
	Reasoning string `json:"reasoning"`
}

// RecommendationLog is the analytics record written after each completed
// ranking. Best-effort only; nothing user-facing depends on it.
type RecommendationLog struct {
	LogID     uuid.UUID
	CreatedAt time.Time

	ProfileSnapshot state.PetProfile
	ContextSnapshot state.ContextInfo
	FiltersSnapshot state.ProductFilters

	RecommendedProducts []RecommendedProduct

	// Denormalized fields for analysis queries.
	ContextID      *string
	AgeFit         *string
	JawHardnessFit *string

	TopProductID    string
	TopProductScore int
}
