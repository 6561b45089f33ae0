package occasion

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grayfactory/superbowmvp-v4/internal/entity"
	"github.com/grayfactory/superbowmvp-v4/pkg/recommend/state"
)

type stubContextRepo struct {
	contexts map[string]*entity.Context
}

func (s *stubContextRepo) Create(ctx context.Context, occ *entity.Context) error { return nil }

func (s *stubContextRepo) FindAll(ctx context.Context) ([]*entity.Context, error) {
	out := make([]*entity.Context, 0, len(s.contexts))
	for _, c := range s.contexts {
		out = append(out, c)
	}
	return out, nil
}

func (s *stubContextRepo) FindByID(ctx context.Context, id string) (*entity.Context, error) {
	return s.contexts[id], nil
}

func driveContext() *entity.Context {
	return &entity.Context{
		ContextID:      "C001",
		Occasion:       "drive",
		MessyOk:        state.BoolPtr(false),
		NoiseSensitive: state.BoolPtr(true),
		Storage:        state.StrPtr("only_shelf_stable"),
		BudgetMax:      state.IntPtr(20000),
		OwnerPref:      state.StrPtr("low calorie, individually wrapped"),
	}
}

func TestHardFiltersFor(t *testing.T) {
	occ := driveContext()

	filters := HardFiltersFor(occ, state.HardFilters{})
	assert.Equal(t, state.BoolPtr(true), filters.ShelfStable)
	assert.Equal(t, state.StrPtr("low"), filters.NoiseLevel)
	assert.Equal(t, state.StrPtr("low"), filters.CrumbLevel)
	assert.Equal(t, state.IntPtr(20000), filters.PriceLte)
}

func TestHardFiltersForBudgetNeverLoosens(t *testing.T) {
	occ := driveContext()

	// A tighter user-stated budget wins over the occasion default.
	filters := HardFiltersFor(occ, state.HardFilters{PriceLte: state.IntPtr(10000)})
	assert.Nil(t, filters.PriceLte)

	// A looser existing budget gets tightened.
	filters = HardFiltersFor(occ, state.HardFilters{PriceLte: state.IntPtr(50000)})
	assert.Equal(t, state.IntPtr(20000), filters.PriceLte)
}

func TestHardFiltersForPermissiveOccasion(t *testing.T) {
	occ := &entity.Context{
		ContextID: "C002",
		Occasion:  "home play",
		MessyOk:   state.BoolPtr(true),
		Storage:   state.StrPtr("refrigeration_ok"),
	}
	assert.Equal(t, state.HardFilters{}, HardFiltersFor(occ, state.HardFilters{}))
}

func TestOwnerPreferences(t *testing.T) {
	assert.Equal(t,
		[]string{"low calorie", "individually wrapped"},
		OwnerPreferences(driveContext()))

	assert.Nil(t, OwnerPreferences(&entity.Context{}))
	assert.Nil(t, OwnerPreferences(&entity.Context{OwnerPref: state.StrPtr(" , ")}))
}

func TestResolveAcceptsAboveThreshold(t *testing.T) {
	resolver := NewResolver(&stubContextRepo{contexts: map[string]*entity.Context{"C001": driveContext()}})

	res, err := resolver.Resolve(context.Background(), state.StrPtr("C001"), 0.9, state.HardFilters{})
	require.NoError(t, err)
	assert.True(t, res.Matched)
	assert.Equal(t, "C001", res.Context.ContextID)
	assert.Equal(t, state.BoolPtr(true), res.HardFilters.ShelfStable)
	assert.Equal(t, []string{"low calorie", "individually wrapped"}, res.OwnerPrefs)
}

func TestResolveRejectsBelowThreshold(t *testing.T) {
	resolver := NewResolver(&stubContextRepo{contexts: map[string]*entity.Context{"C001": driveContext()}})

	res, err := resolver.Resolve(context.Background(), state.StrPtr("C001"), 0.65, state.HardFilters{})
	require.NoError(t, err)
	assert.False(t, res.Matched)
	assert.Nil(t, res.Context)
}

func TestResolveRejectsUnknownOccasion(t *testing.T) {
	resolver := NewResolver(&stubContextRepo{contexts: map[string]*entity.Context{}})

	res, err := resolver.Resolve(context.Background(), state.StrPtr("C999"), 0.95, state.HardFilters{})
	require.NoError(t, err)
	assert.False(t, res.Matched)
}

func TestFallbackQuestionOrder(t *testing.T) {
	assert.Equal(t, []string{
		state.KeyJawHardness,
		state.KeyCrumbLevel,
		state.KeyNoiseLevel,
		state.KeyShelfStable,
		state.KeyAskSoftPrefs,
	}, FallbackQuestions)
}
