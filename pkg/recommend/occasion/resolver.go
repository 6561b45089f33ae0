package occasion

import (
	"context"

	"github.com/grayfactory/superbowmvp-v4/internal/entity"
	"github.com/grayfactory/superbowmvp-v4/internal/repository/contract"
	"github.com/grayfactory/superbowmvp-v4/pkg/recommend/state"
)

// ConfidenceThreshold is the acceptance bar for an occasion match. Below it
// the match is discarded and the caller falls back to direct questions.
const ConfidenceThreshold = 0.7

// Resolution is the outcome of matching the conversation against the
// occasion catalog.
type Resolution struct {
	Matched     bool
	Context     *entity.Context
	HardFilters state.HardFilters
	OwnerPrefs  []string
}

// Resolver verifies claimed occasion matches against the catalog.
type Resolver struct {
	contexts contract.ContextRepository
}

func NewResolver(contexts contract.ContextRepository) *Resolver {
	return &Resolver{contexts: contexts}
}

// Resolve applies the confidence threshold and verifies the occasion id
// exists before converting it into constraints. An unknown id is treated the
// same as a low-confidence match, not as an error: the model hallucinated it.
func (r *Resolver) Resolve(ctx context.Context, contextID *string, confidence float64, existing state.HardFilters) (Resolution, error) {
	if contextID == nil || confidence < ConfidenceThreshold {
		return Resolution{}, nil
	}

	occ, err := r.contexts.FindByID(ctx, *contextID)
	if err != nil {
		return Resolution{}, err
	}
	if occ == nil {
		return Resolution{}, nil
	}

	return Resolution{
		Matched:     true,
		Context:     occ,
		HardFilters: HardFiltersFor(occ, existing),
		OwnerPrefs:  OwnerPreferences(occ),
	}, nil
}
