package dto

import (
	"github.com/grayfactory/superbowmvp-v4/internal/entity"
	"github.com/grayfactory/superbowmvp-v4/pkg/recommend/state"
)

type ChatMessage struct {
	Role    string `json:"role" validate:"required,oneof=user assistant system"`
	Content string `json:"content" validate:"required"`
}

// TurnRequest is one conversation turn. State is optional; a missing state
// starts a fresh session.
type TurnRequest struct {
	State    *state.State  `json:"state"`
	Messages []ChatMessage `json:"messages" validate:"required,min=1,dive"`
}

type RecommendationItem struct {
	Product   *entity.Product `json:"product"`
	Score     int             `json:"score"`
	Reasoning string          `json:"reasoning"`
}

type TurnResponse struct {
	Reply           string               `json:"reply"`
	State           state.State          `json:"state"`
	Recommendations []RecommendationItem `json:"recommendations,omitempty"`
}
