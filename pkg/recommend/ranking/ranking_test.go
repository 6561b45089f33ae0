package ranking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grayfactory/superbowmvp-v4/internal/entity"
	"github.com/grayfactory/superbowmvp-v4/internal/pkg/logger"
	"github.com/grayfactory/superbowmvp-v4/pkg/llm"
)

type scriptedLLM struct {
	reply string
	err   error
}

func (s *scriptedLLM) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	return s.reply, s.err
}

func (s *scriptedLLM) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return s.reply, s.err
}

func candidates(ids ...string) []*entity.Product {
	out := make([]*entity.Product, 0, len(ids))
	for _, id := range ids {
		out = append(out, &entity.Product{ProductID: id, Name: "product " + id})
	}
	return out
}

func newAssembler(reply string) *Assembler {
	return NewAssembler(&scriptedLLM{reply: reply}, logger.NewNoop())
}

func TestRankHappyPath(t *testing.T) {
	a := newAssembler(`{
		"rankings": [
			{"product_id": "P1", "score": 9, "reasoning": "soft and quiet"},
			{"product_id": "P2", "score": 7, "reasoning": "good value"}
		],
		"message": "Here are two great picks."
	}`)

	ranking, err := a.Rank(context.Background(), "history", candidates("P1", "P2", "P3"), false, nil)
	require.NoError(t, err)
	require.Len(t, ranking.Items, 2)
	assert.Equal(t, "P1", ranking.Items[0].Product.ProductID)
	assert.Equal(t, 9, ranking.Items[0].Score)
	assert.Equal(t, "Here are two great picks.", ranking.Message)
}

func TestRankUnknownIDIsContractViolation(t *testing.T) {
	a := newAssembler(`{
		"rankings": [{"product_id": "P999", "score": 10, "reasoning": "made up"}],
		"message": "ok"
	}`)

	_, err := a.Rank(context.Background(), "history", candidates("P1"), false, nil)
	assert.ErrorIs(t, err, ErrRankingContract)
}

func TestRankCapsAtThree(t *testing.T) {
	a := newAssembler(`{
		"rankings": [
			{"product_id": "P1", "score": 9, "reasoning": "a"},
			{"product_id": "P2", "score": 8, "reasoning": "b"},
			{"product_id": "P3", "score": 7, "reasoning": "c"},
			{"product_id": "P4", "score": 6, "reasoning": "d"}
		],
		"message": "many"
	}`)

	ranking, err := a.Rank(context.Background(), "history", candidates("P1", "P2", "P3", "P4"), false, nil)
	require.NoError(t, err)
	assert.Len(t, ranking.Items, 3)
}

func TestRankDeduplicatesIDs(t *testing.T) {
	a := newAssembler(`{
		"rankings": [
			{"product_id": "P1", "score": 9, "reasoning": "a"},
			{"product_id": "P1", "score": 8, "reasoning": "again"}
		],
		"message": "m"
	}`)

	ranking, err := a.Rank(context.Background(), "history", candidates("P1", "P2"), false, nil)
	require.NoError(t, err)
	assert.Len(t, ranking.Items, 1)
}

func TestRankEmptyOverNonEmptyCandidatesFails(t *testing.T) {
	a := newAssembler(`{"rankings": [], "message": "nothing"}`)

	_, err := a.Rank(context.Background(), "history", candidates("P1"), false, nil)
	assert.ErrorIs(t, err, ErrEmptyRanking)
}

func TestRankUnparseableReplyFails(t *testing.T) {
	a := newAssembler("I'd recommend the chicken one!")

	_, err := a.Rank(context.Background(), "history", candidates("P1"), false, nil)
	assert.ErrorIs(t, err, ErrEmptyRanking)
}

func TestRankNoCandidates(t *testing.T) {
	a := newAssembler(`{}`)

	_, err := a.Rank(context.Background(), "history", nil, false, nil)
	assert.ErrorIs(t, err, ErrEmptyRanking)
}

func TestRankRefinementMessageNamesNewConstraints(t *testing.T) {
	a := newAssembler(`{
		"rankings": [{"product_id": "P1", "score": 8, "reasoning": "fits"}],
		"message": "One match left."
	}`)

	ranking, err := a.Rank(context.Background(), "history", candidates("P1"), true, []string{"egg-free", "under 15000"})
	require.NoError(t, err)
	assert.Contains(t, ranking.Message, "egg-free")
	assert.Contains(t, ranking.Message, "under 15000")
	assert.Contains(t, ranking.Message, "One match left.")
}

func TestRankClampsScores(t *testing.T) {
	a := newAssembler(`{
		"rankings": [
			{"product_id": "P1", "score": 42, "reasoning": "a"},
			{"product_id": "P2", "score": -3, "reasoning": "b"}
		],
		"message": "m"
	}`)

	ranking, err := a.Rank(context.Background(), "history", candidates("P1", "P2"), false, nil)
	require.NoError(t, err)
	assert.Equal(t, 10, ranking.Items[0].Score)
	assert.Equal(t, 1, ranking.Items[1].Score)
}
