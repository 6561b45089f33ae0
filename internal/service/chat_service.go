package service

import (
	"context"

	"github.com/grayfactory/superbowmvp-v4/internal/dto"
	"github.com/grayfactory/superbowmvp-v4/pkg/llm"
	"github.com/grayfactory/superbowmvp-v4/pkg/recommend/state"
	"github.com/grayfactory/superbowmvp-v4/pkg/recommend/turn"
)

type IChatService interface {
	ProcessTurn(ctx context.Context, req *dto.TurnRequest) (*dto.TurnResponse, error)
}

type chatService struct {
	orchestrator *turn.Orchestrator
}

func NewChatService(orchestrator *turn.Orchestrator) IChatService {
	return &chatService{orchestrator: orchestrator}
}

func (s *chatService) ProcessTurn(ctx context.Context, req *dto.TurnRequest) (*dto.TurnResponse, error) {
	st := state.NewInitialState()
	if req.State != nil {
		st = *req.State
	}

	messages := make([]llm.Message, 0, len(req.Messages))
	for _, m := range req.Messages {
		messages = append(messages, llm.Message{Role: m.Role, Content: m.Content})
	}

	out, err := s.orchestrator.ProcessTurn(ctx, turn.Input{State: st, Messages: messages})
	if err != nil {
		return nil, err
	}

	res := &dto.TurnResponse{
		Reply: out.Reply,
		State: out.State,
	}
	for _, item := range out.Recommendations {
		res.Recommendations = append(res.Recommendations, dto.RecommendationItem{
			Product:   item.Product,
			Score:     item.Score,
			Reasoning: item.Reasoning,
		})
	}
	return res, nil
}
