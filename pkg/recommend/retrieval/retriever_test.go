package retrieval

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grayfactory/superbowmvp-v4/internal/entity"
	"github.com/grayfactory/superbowmvp-v4/internal/pkg/logger"
	"github.com/grayfactory/superbowmvp-v4/pkg/recommend/state"
)

// memoryCatalog evaluates hard filters in memory the same way the SQL layer
// does, so relaxation behavior can be tested without a database.
type memoryCatalog struct {
	products []*entity.Product
	queries  []state.HardFilters
}

func (m *memoryCatalog) Create(ctx context.Context, p *entity.Product) error { return nil }

func (m *memoryCatalog) Count(ctx context.Context) (int64, error) {
	return int64(len(m.products)), nil
}

func (m *memoryCatalog) FindByID(ctx context.Context, id string) (*entity.Product, error) {
	for _, p := range m.products {
		if p.ProductID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (m *memoryCatalog) QueryProducts(ctx context.Context, f state.HardFilters, limit int) ([]*entity.Product, error) {
	m.queries = append(m.queries, f)
	var out []*entity.Product
	for _, p := range m.products {
		if f.AgeFit != nil && (p.AgeFit == nil || *p.AgeFit != *f.AgeFit) {
			continue
		}
		if f.JawHardnessFit != nil && (p.JawHardnessFit == nil || *p.JawHardnessFit != *f.JawHardnessFit) {
			continue
		}
		if f.ShelfStable != nil && p.ShelfStable != *f.ShelfStable {
			continue
		}
		if f.CrumbLevel != nil && (p.CrumbLevel == nil || *p.CrumbLevel != *f.CrumbLevel) {
			continue
		}
		if f.NoiseLevel != nil && (p.NoiseLevel == nil || *p.NoiseLevel != *f.NoiseLevel) {
			continue
		}
		if f.Category != nil && p.Category != *f.Category {
			continue
		}
		if f.PriceLte != nil && p.Price > *f.PriceLte {
			continue
		}
		if ExcludedByAllergens(p, f.AllergensExclude) {
			continue
		}
		out = append(out, p)
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

func product(id, ageFit, jawFit string) *entity.Product {
	return &entity.Product{
		ProductID:      id,
		Name:           "product " + id,
		Category:       "treat",
		AgeFit:         state.StrPtr(ageFit),
		JawHardnessFit: state.StrPtr(jawFit),
		Price:          10000,
	}
}

func newRetriever(catalog *memoryCatalog) *Retriever {
	return NewRetriever(catalog, 50, logger.NewNoop())
}

func TestRetrieveFullMatchSkipsRelaxation(t *testing.T) {
	catalog := &memoryCatalog{products: []*entity.Product{
		product("P1", "adult", "high"),
	}}

	res, err := newRetriever(catalog).Retrieve(context.Background(), state.HardFilters{
		AgeFit:         state.StrPtr("adult"),
		JawHardnessFit: state.StrPtr("high"),
	}, nil)

	require.NoError(t, err)
	assert.Len(t, res.Candidates, 1)
	assert.Empty(t, res.RelaxedTier)
	assert.Len(t, catalog.queries, 1)
}

func TestRetrieveRelaxesInTierOrder(t *testing.T) {
	// Nothing matches age+jaw together, but two rows match age alone. The
	// ladder must drop jaw (tier "age-only") after "core" also fails, and
	// stop there.
	catalog := &memoryCatalog{products: []*entity.Product{
		product("P1", "adult", "low"),
		product("P2", "adult", "medium"),
		product("P3", "senior", "high"),
	}}

	res, err := newRetriever(catalog).Retrieve(context.Background(), state.HardFilters{
		AgeFit:         state.StrPtr("adult"),
		JawHardnessFit: state.StrPtr("high"),
	}, nil)

	require.NoError(t, err)
	assert.Equal(t, "age-only", res.RelaxedTier)
	ids := []string{res.Candidates[0].ProductID, res.Candidates[1].ProductID}
	assert.ElementsMatch(t, []string{"P1", "P2"}, ids)

	// full, core, age-only; never reached allergen-only.
	require.Len(t, catalog.queries, 3)
	assert.Nil(t, catalog.queries[2].JawHardnessFit)
	assert.NotNil(t, catalog.queries[2].AgeFit)
}

func TestRetrieveRelaxationIsMonotonic(t *testing.T) {
	catalog := &memoryCatalog{products: []*entity.Product{
		product("P1", "puppy", "low"),
	}}

	_, err := newRetriever(catalog).Retrieve(context.Background(), state.HardFilters{
		AgeFit:           state.StrPtr("senior"),
		JawHardnessFit:   state.StrPtr("high"),
		ShelfStable:      state.BoolPtr(true),
		AllergensExclude: []string{"chicken"},
	}, nil)
	require.NoError(t, err)

	// Each tier keeps a subset of the previous tier's constraints, and the
	// allergen exclusion survives every one.
	require.Len(t, catalog.queries, 4)
	full := catalog.queries[0]
	core := catalog.queries[1]
	ageOnly := catalog.queries[2]
	last := catalog.queries[3]

	assert.NotNil(t, full.ShelfStable)
	assert.Nil(t, core.ShelfStable)
	assert.NotNil(t, core.JawHardnessFit)
	assert.Nil(t, ageOnly.JawHardnessFit)
	assert.NotNil(t, ageOnly.AgeFit)
	assert.Nil(t, last.AgeFit)

	for _, q := range catalog.queries {
		assert.Equal(t, []string{"chicken"}, q.AllergensExclude)
	}
}

func TestRetrieveNoCandidatesAfterFullRelaxation(t *testing.T) {
	catalog := &memoryCatalog{products: []*entity.Product{
		{ProductID: "P1", Name: "chicken jerky", Category: "treat",
			Ingredient: state.StrPtr("chicken breast"), Price: 8000},
	}}

	_, err := newRetriever(catalog).Retrieve(context.Background(), state.HardFilters{
		AllergensExclude: []string{"chicken"},
	}, nil)

	assert.ErrorIs(t, err, ErrNoCandidates)
}

func TestRetrieveRefinementUnionsPreviousItems(t *testing.T) {
	catalog := &memoryCatalog{products: []*entity.Product{
		product("P1", "adult", "high"),
		product("P2", "senior", "low"),
	}}

	res, err := newRetriever(catalog).Retrieve(context.Background(), state.HardFilters{
		AgeFit: state.StrPtr("adult"),
	}, []string{"P2", "P1", "P404"})

	require.NoError(t, err)
	ids := make([]string, 0, len(res.Candidates))
	for _, p := range res.Candidates {
		ids = append(ids, p.ProductID)
	}
	// P1 matched the query, P2 is re-admitted once, the vanished id is
	// silently skipped.
	assert.ElementsMatch(t, []string{"P1", "P2"}, ids)
}

func TestRetrieveRefinementReappliesAllergenCheck(t *testing.T) {
	// P2 was recommended last turn; this turn the user adds an egg allergy.
	// P2 carries egg in ingredient2 and must not survive the union.
	p2 := product("P2", "adult", "high")
	p2.Ingredient2 = state.StrPtr("Egg yolk powder")

	catalog := &memoryCatalog{products: []*entity.Product{
		product("P1", "adult", "high"),
		p2,
	}}

	res, err := newRetriever(catalog).Retrieve(context.Background(), state.HardFilters{
		AgeFit:           state.StrPtr("adult"),
		AllergensExclude: []string{"egg"},
	}, []string{"P2"})

	require.NoError(t, err)
	require.Len(t, res.Candidates, 1)
	assert.Equal(t, "P1", res.Candidates[0].ProductID)
}

func TestExcludedByAllergens(t *testing.T) {
	p := &entity.Product{
		ProductID:      "P1",
		ProteinSources: state.StrPtr("Duck"),
		Ingredient:     state.StrPtr("duck breast, sweet potato"),
		Allergens:      []string{"duck"},
	}

	assert.True(t, ExcludedByAllergens(p, []string{"duck"}))
	assert.True(t, ExcludedByAllergens(p, []string{"DUCK"}))
	assert.True(t, ExcludedByAllergens(p, []string{"sweet potato"}))
	assert.False(t, ExcludedByAllergens(p, []string{"chicken"}))
	assert.False(t, ExcludedByAllergens(p, nil))
}
