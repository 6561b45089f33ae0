// Package ranking turns an unordered candidate set into an ordered, capped
// top list. Ordering is delegated to the language model; the structural
// guarantees (id containment, cap, score range) are enforced here.
package ranking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/grayfactory/superbowmvp-v4/internal/constant"
	"github.com/grayfactory/superbowmvp-v4/internal/entity"
	"github.com/grayfactory/superbowmvp-v4/internal/pkg/logger"
	"github.com/grayfactory/superbowmvp-v4/pkg/llm"
	"github.com/grayfactory/superbowmvp-v4/pkg/recommend/llmjson"
)

const maxRanked = 3

var (
	// ErrRankingContract means the model referenced a product id that is not
	// in the candidate set. Fatal for the turn; never silently dropped.
	ErrRankingContract = errors.New("ranking: output references unknown candidate id")

	// ErrEmptyRanking means the model returned no usable items over a
	// non-empty candidate set, which is an upstream failure, not "no products".
	ErrEmptyRanking = errors.New("ranking: empty ranking over non-empty candidates")
)

// Ranked is one scored recommendation.
type Ranked struct {
	Product   *entity.Product `json:"product"`
	Score     int             `json:"score"`
	Reasoning string          `json:"reasoning"`
}

// Ranking is the assembled output of a ranking turn.
type Ranking struct {
	Items   []Ranked `json:"items"`
	Message string   `json:"message"`
}

type rankingReply struct {
	Rankings []struct {
		ProductID string  `json:"product_id"`
		Score     float64 `json:"score"`
		Reasoning string  `json:"reasoning"`
	} `json:"rankings"`
	Message string `json:"message"`
}

type Assembler struct {
	llm llm.LLMProvider
	log logger.ILogger
}

func NewAssembler(provider llm.LLMProvider, log logger.ILogger) *Assembler {
	return &Assembler{llm: provider, log: log}
}

// Rank asks the model for a top 3 over candidates and validates the reply.
// When isRefinement is true the summary message names the newly added
// constraints explicitly.
func (a *Assembler) Rank(ctx context.Context, conversation string, candidates []*entity.Product, isRefinement bool, newConstraints []string) (Ranking, error) {
	if len(candidates) == 0 {
		return Ranking{}, ErrEmptyRanking
	}

	reply, err := a.llm.Generate(ctx, constant.RankingPrompt(conversation, candidates), llm.WithTemperature(0.3))
	if err != nil {
		return Ranking{}, fmt.Errorf("ranking generate: %w", err)
	}

	var parsed rankingReply
	if err := llmjson.Unmarshal(reply, &parsed); err != nil {
		a.log.Error("ranking", "unparseable ranking reply", map[string]interface{}{"reply": reply})
		return Ranking{}, fmt.Errorf("%w: %v", ErrEmptyRanking, err)
	}

	byID := make(map[string]*entity.Product, len(candidates))
	for _, p := range candidates {
		byID[p.ProductID] = p
	}

	ranking := Ranking{Message: parsed.Message}
	seen := make(map[string]bool, maxRanked)
	for _, item := range parsed.Rankings {
		p, ok := byID[item.ProductID]
		if !ok {
			a.log.Error("ranking", "model referenced unknown product id", map[string]interface{}{
				"product_id": item.ProductID,
			})
			return Ranking{}, ErrRankingContract
		}
		if seen[item.ProductID] {
			continue
		}
		seen[item.ProductID] = true
		ranking.Items = append(ranking.Items, Ranked{
			Product:   p,
			Score:     clampScore(item.Score),
			Reasoning: item.Reasoning,
		})
		if len(ranking.Items) == maxRanked {
			break
		}
	}

	if len(ranking.Items) == 0 {
		a.log.Error("ranking", "model returned no rankings", map[string]interface{}{
			"candidates": len(candidates),
		})
		return Ranking{}, ErrEmptyRanking
	}

	if isRefinement && len(newConstraints) > 0 {
		ranking.Message = refinementMessage(ranking.Message, newConstraints)
	}
	return ranking, nil
}

func refinementMessage(message string, newConstraints []string) string {
	prefix := fmt.Sprintf("I re-searched with your new conditions (%s) applied.", strings.Join(newConstraints, ", "))
	if message == "" {
		return prefix
	}
	return prefix + " " + message
}

func clampScore(s float64) int {
	score := int(s)
	if score < 1 {
		return 1
	}
	if score > 10 {
		return 10
	}
	return score
}
