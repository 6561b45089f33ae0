// Package retrieval executes hard filters against the catalog with a fixed
// relaxation ladder, and handles refinement turns by re-admitting previously
// shown items under a mandatory allergen re-check.
package retrieval

import (
	"context"
	"errors"
	"strings"

	"github.com/grayfactory/superbowmvp-v4/internal/entity"
	"github.com/grayfactory/superbowmvp-v4/internal/pkg/logger"
	"github.com/grayfactory/superbowmvp-v4/internal/repository/contract"
	"github.com/grayfactory/superbowmvp-v4/pkg/recommend/state"
)

// ErrNoCandidates means every relaxation tier came back empty. The caller
// reports a normal "nothing matched" outcome, never an error to the user.
var ErrNoCandidates = errors.New("retrieval: no candidates after full relaxation")

// Result carries the candidate set and which tier produced it. RelaxedTier
// is empty when the full filter set matched directly.
type Result struct {
	Candidates  []*entity.Product
	RelaxedTier string
}

type Retriever struct {
	products contract.ProductRepository
	limit    int
	log      logger.ILogger
}

func NewRetriever(products contract.ProductRepository, limit int, log logger.ILogger) *Retriever {
	return &Retriever{products: products, limit: limit, log: log}
}

// Retrieve runs the full filters, unions in previously recommended items on
// refinement turns, re-applies the allergen exclusion to the union, and only
// then considers relaxation. Allergens are never relaxed.
func (r *Retriever) Retrieve(ctx context.Context, filters state.HardFilters, previousIDs []string) (Result, error) {
	candidates, err := r.products.QueryProducts(ctx, filters, r.limit)
	if err != nil {
		return Result{}, err
	}

	if len(previousIDs) > 0 {
		candidates, err = r.unionPrevious(ctx, candidates, previousIDs)
		if err != nil {
			return Result{}, err
		}
	}

	// Unconditional safety re-check. The query already filtered allergens,
	// but re-admitted items from earlier turns have not been checked against
	// the current exclusion set.
	candidates = dropExcluded(candidates, filters.AllergensExclude)

	if len(candidates) > 0 {
		return Result{Candidates: candidates}, nil
	}

	for _, tier := range Tiers {
		relaxed, err := r.products.QueryProducts(ctx, tier.Keep(filters), r.limit)
		if err != nil {
			return Result{}, err
		}
		relaxed = dropExcluded(relaxed, filters.AllergensExclude)
		if len(relaxed) > 0 {
			r.log.Info("retrieval", "relaxed filters to find candidates", map[string]interface{}{
				"tier":       tier.Name,
				"candidates": len(relaxed),
			})
			return Result{Candidates: relaxed, RelaxedTier: tier.Name}, nil
		}
	}

	return Result{}, ErrNoCandidates
}

func (r *Retriever) unionPrevious(ctx context.Context, candidates []*entity.Product, previousIDs []string) ([]*entity.Product, error) {
	seen := make(map[string]bool, len(candidates))
	for _, p := range candidates {
		seen[p.ProductID] = true
	}
	for _, id := range previousIDs {
		if seen[id] {
			continue
		}
		p, err := r.products.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if p == nil {
			continue
		}
		seen[id] = true
		candidates = append(candidates, p)
	}
	return candidates, nil
}

// ExcludedByAllergens reports whether any excluded term appears, case
// insensitively, in any of the product's ingredient or protein fields.
func ExcludedByAllergens(p *entity.Product, terms []string) bool {
	if len(terms) == 0 {
		return false
	}
	fields := []string{
		deref(p.ProteinSources),
		deref(p.Ingredient),
		deref(p.Ingredient2),
		deref(p.Ingredient3),
		strings.Join(p.Allergens, " "),
	}
	for _, term := range terms {
		t := strings.ToLower(term)
		if t == "" {
			continue
		}
		for _, f := range fields {
			if f != "" && strings.Contains(strings.ToLower(f), t) {
				return true
			}
		}
	}
	return false
}

func dropExcluded(products []*entity.Product, terms []string) []*entity.Product {
	if len(terms) == 0 {
		return products
	}
	kept := products[:0]
	for _, p := range products {
		if !ExcludedByAllergens(p, terms) {
			kept = append(kept, p)
		}
	}
	return kept
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
