package turn

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grayfactory/superbowmvp-v4/internal/constant"
	"github.com/grayfactory/superbowmvp-v4/internal/entity"
	"github.com/grayfactory/superbowmvp-v4/internal/pkg/logger"
	"github.com/grayfactory/superbowmvp-v4/pkg/llm"
	"github.com/grayfactory/superbowmvp-v4/pkg/recommend/occasion"
	"github.com/grayfactory/superbowmvp-v4/pkg/recommend/ranking"
	"github.com/grayfactory/superbowmvp-v4/pkg/recommend/retrieval"
	"github.com/grayfactory/superbowmvp-v4/pkg/recommend/state"
)

// scriptedLLM returns a fixed conversation reply and pops generate replies
// in order (filter extraction first, then ranking).
type scriptedLLM struct {
	chatReply string
	generates []string
	calls     int
}

func (s *scriptedLLM) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	return s.chatReply, nil
}

func (s *scriptedLLM) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	if s.calls >= len(s.generates) {
		return "{}", nil
	}
	reply := s.generates[s.calls]
	s.calls++
	return reply, nil
}

type stubContextRepo struct {
	contexts []*entity.Context
}

func (s *stubContextRepo) Create(ctx context.Context, occ *entity.Context) error { return nil }

func (s *stubContextRepo) FindAll(ctx context.Context) ([]*entity.Context, error) {
	return s.contexts, nil
}

func (s *stubContextRepo) FindByID(ctx context.Context, id string) (*entity.Context, error) {
	for _, c := range s.contexts {
		if c.ContextID == id {
			return c, nil
		}
	}
	return nil, nil
}

// stubCatalog filters on age and allergens, enough to drive the pipeline.
type stubCatalog struct {
	products []*entity.Product
}

func (s *stubCatalog) Create(ctx context.Context, p *entity.Product) error { return nil }

func (s *stubCatalog) Count(ctx context.Context) (int64, error) {
	return int64(len(s.products)), nil
}

func (s *stubCatalog) FindByID(ctx context.Context, id string) (*entity.Product, error) {
	for _, p := range s.products {
		if p.ProductID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (s *stubCatalog) QueryProducts(ctx context.Context, f state.HardFilters, limit int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range s.products {
		if f.AgeFit != nil && (p.AgeFit == nil || *p.AgeFit != *f.AgeFit) {
			continue
		}
		if retrieval.ExcludedByAllergens(p, f.AllergensExclude) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

type capturePublisher struct {
	mu     sync.Mutex
	topics []string
	done   chan struct{}
}

func newCapturePublisher() *capturePublisher {
	return &capturePublisher{done: make(chan struct{}, 4)}
}

func (p *capturePublisher) Publish(topic string, msgs ...*message.Message) error {
	p.mu.Lock()
	p.topics = append(p.topics, topic)
	p.mu.Unlock()
	p.done <- struct{}{}
	return nil
}

func (p *capturePublisher) Close() error { return nil }

func driveOccasion() *entity.Context {
	return &entity.Context{
		ContextID:      "C001",
		Occasion:       "drive",
		MessyOk:        state.BoolPtr(false),
		NoiseSensitive: state.BoolPtr(true),
		OwnerPref:      state.StrPtr("low calorie"),
	}
}

func newTestOrchestrator(provider llm.LLMProvider, catalog *stubCatalog, pub message.Publisher) *Orchestrator {
	log := logger.NewNoop()
	contexts := &stubContextRepo{contexts: []*entity.Context{driveOccasion()}}
	return NewOrchestrator(
		provider,
		contexts,
		occasion.NewResolver(contexts),
		retrieval.NewRetriever(catalog, 50, log),
		ranking.NewAssembler(provider, log),
		SentinelDetector{},
		pub,
		log,
	)
}

func userTurn(contents ...string) []llm.Message {
	msgs := make([]llm.Message, 0, len(contents))
	for _, c := range contents {
		msgs = append(msgs, llm.Message{Role: constant.ChatMessageRoleUser, Content: c})
	}
	return msgs
}

func TestProcessTurnCollecting(t *testing.T) {
	provider := &scriptedLLM{
		chatReply: "Does your dog chew hard things well?",
		generates: []string{`{"jaw_hardness_fit": "soft", "allergens_to_avoid": ["chicken"]}`},
	}
	o := newTestOrchestrator(provider, &stubCatalog{}, nil)

	st := state.NewInitialState()
	st.Session.MissingInfo = []string{state.KeyJawHardness, state.KeyCrumbLevel}

	out, err := o.ProcessTurn(context.Background(), Input{
		State:    st,
		Messages: userTurn("He has weak teeth and is allergic to chicken"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Does your dog chew hard things well?", out.Reply)
	assert.Nil(t, out.Recommendations)
	assert.Equal(t, state.StrPtr("low"), out.State.Filters.HardFilters.JawHardnessFit)
	assert.Equal(t, []string{"chicken"}, out.State.Filters.HardFilters.AllergensExclude)
	// jaw answered, crumb still pending
	assert.Equal(t, []string{state.KeyCrumbLevel}, out.State.Session.MissingInfo)
	assert.Equal(t, []string{"He has weak teeth and is allergic to chicken"}, out.State.Session.UserRequestHistory)
}

func TestProcessTurnRecommends(t *testing.T) {
	provider := &scriptedLLM{
		chatReply: "[READY] Got it! Let me find some treats right away.",
		generates: []string{
			`{"matched_context_id": "C001", "context_confidence": 0.9,
			  "age_fit": "adult", "allergens_to_avoid": ["chicken"]}`,
			`{"rankings": [{"product_id": "P1", "score": 9, "reasoning": "quiet and clean"}],
			  "message": "This one fits your drive perfectly."}`,
		},
	}
	catalog := &stubCatalog{products: []*entity.Product{
		{ProductID: "P1", Name: "duck strips", AgeFit: state.StrPtr("adult"),
			Ingredient: state.StrPtr("duck breast")},
		{ProductID: "P2", Name: "chicken bites", AgeFit: state.StrPtr("adult"),
			Ingredient: state.StrPtr("chicken breast")},
	}}
	pub := newCapturePublisher()
	o := newTestOrchestrator(provider, catalog, pub)

	out, err := o.ProcessTurn(context.Background(), Input{
		State:    state.NewInitialState(),
		Messages: userTurn("Adult dog, allergic to chicken, treats for the car"),
	})
	require.NoError(t, err)

	assert.Equal(t, "This one fits your drive perfectly.", out.Reply)
	assert.NotContains(t, out.Reply, Sentinel)
	require.Len(t, out.Recommendations, 1)
	assert.Equal(t, "P1", out.Recommendations[0].Product.ProductID)

	assert.True(t, out.State.Context.Matched)
	assert.Equal(t, state.StrPtr("C001"), out.State.Context.ContextID)
	// occasion defaults filled in alongside the extracted filters
	assert.Equal(t, state.StrPtr("low"), out.State.Filters.HardFilters.NoiseLevel)
	assert.Equal(t, state.StrPtr("low"), out.State.Filters.HardFilters.CrumbLevel)
	assert.Contains(t, out.State.Filters.SoftPreferences, "low calorie")
	assert.Equal(t, []string{"P1"}, out.State.Session.LastRecommendedIDs)

	select {
	case <-pub.done:
		assert.Equal(t, []string{"recommendation.created"}, pub.topics)
	case <-time.After(time.Second):
		t.Fatal("analytics event was not published")
	}
}

func TestProcessTurnLowConfidenceEnqueuesFallbackQuestions(t *testing.T) {
	provider := &scriptedLLM{
		chatReply: "[READY] Got it!",
		generates: []string{
			`{"matched_context_id": "C001", "context_confidence": 0.65, "age_fit": "adult"}`,
			`{"rankings": [{"product_id": "P1", "score": 8, "reasoning": "solid pick"}], "message": "Found one."}`,
		},
	}
	catalog := &stubCatalog{products: []*entity.Product{
		{ProductID: "P1", AgeFit: state.StrPtr("adult")},
	}}
	o := newTestOrchestrator(provider, catalog, nil)

	out, err := o.ProcessTurn(context.Background(), Input{
		State:    state.NewInitialState(),
		Messages: userTurn("adult dog"),
	})
	require.NoError(t, err)

	assert.False(t, out.State.Context.Matched)
	assert.Nil(t, out.State.Context.ContextID)
	assert.Equal(t, []string{
		state.KeyJawHardness,
		state.KeyCrumbLevel,
		state.KeyNoiseLevel,
		state.KeyShelfStable,
		state.KeyAskSoftPrefs,
	}, out.State.Session.MissingInfo)
	// retrieval still ran this turn
	require.Len(t, out.Recommendations, 1)
}

func TestProcessTurnNoMatchOutcome(t *testing.T) {
	provider := &scriptedLLM{
		chatReply: "[READY] Got it!",
		generates: []string{
			`{"context_confidence": 0, "allergens_to_avoid": ["chicken"]}`,
		},
	}
	catalog := &stubCatalog{products: []*entity.Product{
		{ProductID: "P1", Ingredient: state.StrPtr("chicken breast")},
	}}
	o := newTestOrchestrator(provider, catalog, nil)

	out, err := o.ProcessTurn(context.Background(), Input{
		State:    state.NewInitialState(),
		Messages: userTurn("no chicken please"),
	})
	require.NoError(t, err)

	assert.Contains(t, out.Reply, constant.NoMatchReply)
	assert.Nil(t, out.Recommendations)
	assert.Empty(t, out.State.Session.LastRecommendedIDs)
}

func TestProcessTurnRankingContractViolationDegrades(t *testing.T) {
	provider := &scriptedLLM{
		chatReply: "[READY] Got it!",
		generates: []string{
			`{"context_confidence": 0}`,
			`{"rankings": [{"product_id": "P999", "score": 9, "reasoning": "invented"}], "message": "m"}`,
		},
	}
	catalog := &stubCatalog{products: []*entity.Product{{ProductID: "P1"}}}
	o := newTestOrchestrator(provider, catalog, nil)

	out, err := o.ProcessTurn(context.Background(), Input{
		State:    state.NewInitialState(),
		Messages: userTurn("anything works"),
	})
	require.NoError(t, err)

	assert.Equal(t, constant.RankingFallbackReply, out.Reply)
	assert.Nil(t, out.Recommendations)
}

func TestProcessTurnRefinementExcludesPriorItemWithNewAllergen(t *testing.T) {
	// Last turn recommended P2. The user now reports an egg allergy; P2
	// carries egg and must not reappear, and the summary names the change.
	provider := &scriptedLLM{
		chatReply: "Okay, let me search again without egg!",
		generates: []string{
			`{"context_confidence": 0, "allergens_to_avoid": ["egg"]}`,
			`{"rankings": [{"product_id": "P1", "score": 8, "reasoning": "egg free"}], "message": "Found an egg-free option."}`,
		},
	}
	catalog := &stubCatalog{products: []*entity.Product{
		{ProductID: "P1", Ingredient: state.StrPtr("duck breast")},
		{ProductID: "P2", Ingredient2: state.StrPtr("egg yolk powder")},
	}}
	o := newTestOrchestrator(provider, catalog, nil)

	st := state.NewInitialState()
	st.Session.LastRecommendedIDs = []string{"P2"}

	out, err := o.ProcessTurn(context.Background(), Input{
		State:    st,
		Messages: userTurn("turns out he's allergic to egg, anything else?"),
	})
	require.NoError(t, err)

	require.Len(t, out.Recommendations, 1)
	assert.Equal(t, "P1", out.Recommendations[0].Product.ProductID)
	assert.True(t, strings.Contains(out.Reply, "no egg"))
	assert.Equal(t, []string{"P1"}, out.State.Session.LastRecommendedIDs)
}
