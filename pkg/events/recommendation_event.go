package events

import (
	"time"

	"github.com/grayfactory/superbowmvp-v4/pkg/recommend/state"
)

// TopicRecommendationCreated is the in-process pubsub topic the orchestrator
// publishes to after a successful recommendation turn.
const TopicRecommendationCreated = "recommendation.created"

// EventTypeRecommendationCreated is the event code used on the NATS bus.
const EventTypeRecommendationCreated = "RECOMMENDATION_CREATED"

// RecommendedItem is one ranked product in the analytics snapshot.
type RecommendedItem struct {
	ProductID string `json:"product_id"`
	Score     int    `json:"score"`
	Reasoning string `json:"reasoning"`
}

// RecommendationCreated is the analytics snapshot of a recommendation turn:
// the state that produced it plus the finalized ranking. Delivery is
// best-effort everywhere; losing one of these never affects the user.
type RecommendationCreated struct {
	Profile     state.PetProfile     `json:"profile"`
	Context     state.ContextInfo    `json:"context"`
	Filters     state.ProductFilters `json:"filters"`
	Items       []RecommendedItem    `json:"items"`
	RelaxedTier string               `json:"relaxed_tier,omitempty"`
	OccurredAt  time.Time            `json:"occurred_at"`
}

// AsEvent adapts the snapshot to the bus event contract.
func (e RecommendationCreated) AsEvent() Event {
	return BaseEvent{
		Type: EventTypeRecommendationCreated,
		Data: map[string]interface{}{
			"profile":      e.Profile,
			"context":      e.Context,
			"filters":      e.Filters,
			"items":        e.Items,
			"relaxed_tier": e.RelaxedTier,
			"occurred_at":  e.OccurredAt,
		},
		OccurredAt: e.OccurredAt,
	}
}
