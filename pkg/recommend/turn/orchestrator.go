// Package turn sequences a conversation turn: keep collecting information,
// or resolve filters, retrieve candidates, rank them and respond. The server
// is a pure function of (state, transcript); nothing is kept between turns.
package turn

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/grayfactory/superbowmvp-v4/internal/constant"
	"github.com/grayfactory/superbowmvp-v4/internal/entity"
	"github.com/grayfactory/superbowmvp-v4/internal/pkg/logger"
	"github.com/grayfactory/superbowmvp-v4/internal/repository/contract"
	"github.com/grayfactory/superbowmvp-v4/pkg/events"
	"github.com/grayfactory/superbowmvp-v4/pkg/llm"
	"github.com/grayfactory/superbowmvp-v4/pkg/recommend/filter"
	"github.com/grayfactory/superbowmvp-v4/pkg/recommend/llmjson"
	"github.com/grayfactory/superbowmvp-v4/pkg/recommend/occasion"
	"github.com/grayfactory/superbowmvp-v4/pkg/recommend/ranking"
	"github.com/grayfactory/superbowmvp-v4/pkg/recommend/retrieval"
	"github.com/grayfactory/superbowmvp-v4/pkg/recommend/state"
)

// Phase names the stage a turn is in, for logging.
type Phase string

const (
	PhaseCollecting Phase = "collecting"
	PhaseReady      Phase = "ready"
	PhaseResolving  Phase = "resolving"
	PhaseRetrieving Phase = "retrieving"
	PhaseRanking    Phase = "ranking"
	PhaseResponding Phase = "responding"
)

// Input is one turn's request: the round-tripped state plus the full
// transcript, last message being the user's latest utterance.
type Input struct {
	State    state.State
	Messages []llm.Message
}

// Output is the turn result. Recommendations is nil on collection turns and
// on no-match turns.
type Output struct {
	Reply           string
	State           state.State
	Recommendations []ranking.Ranked
}

type Orchestrator struct {
	llm       llm.LLMProvider
	contexts  contract.ContextRepository
	resolver  *occasion.Resolver
	retriever *retrieval.Retriever
	assembler *ranking.Assembler
	detector  ReadinessDetector
	publisher message.Publisher
	log       logger.ILogger
}

func NewOrchestrator(
	provider llm.LLMProvider,
	contexts contract.ContextRepository,
	resolver *occasion.Resolver,
	retriever *retrieval.Retriever,
	assembler *ranking.Assembler,
	detector ReadinessDetector,
	publisher message.Publisher,
	log logger.ILogger,
) *Orchestrator {
	return &Orchestrator{
		llm:       provider,
		contexts:  contexts,
		resolver:  resolver,
		retriever: retriever,
		assembler: assembler,
		detector:  detector,
		publisher: publisher,
		log:       log,
	}
}

// ProcessTurn runs one full turn. External calls are strictly sequential;
// each stage's merge is applied only after the stage succeeds, so a failed
// turn never leaves partially updated state.
func (o *Orchestrator) ProcessTurn(ctx context.Context, in Input) (Output, error) {
	st := in.State
	if utterance := lastUserMessage(in.Messages); utterance != "" {
		st.Session.UserRequestHistory = append(st.Session.UserRequestHistory, utterance)
	}

	contexts, err := o.contexts.FindAll(ctx)
	if err != nil {
		return Output{}, fmt.Errorf("load occasion catalog: %w", err)
	}

	history := make([]llm.Message, 0, len(in.Messages)+1)
	history = append(history, llm.Message{
		Role:    constant.ChatMessageRoleSystem,
		Content: constant.SystemPrompt(contexts),
	})
	history = append(history, in.Messages...)

	reply, err := o.llm.Chat(ctx, history, llm.WithTemperature(0.7))
	if err != nil {
		return Output{}, fmt.Errorf("conversation turn: %w", err)
	}

	ready, cleaned := o.detector.Detect(reply)
	historyText := renderHistory(in.Messages)
	if !ready {
		return o.collect(ctx, st, cleaned, historyText)
	}

	o.log.Debug("turn", "readiness detected", map[string]interface{}{"phase": string(PhaseReady)})
	return o.recommend(ctx, st, cleaned, historyText, contexts)
}

// collect is the Collecting phase: extract whatever the turn revealed, fold
// it into the state and advance the missing-info queue.
func (o *Orchestrator) collect(ctx context.Context, st state.State, reply, historyText string) (Output, error) {
	sig := o.extractSignals(ctx, constant.ExtractionPrompt(historyText))
	hf, soft := filter.Normalize(sig)

	patch := map[string]any{}
	if profile := profilePatch(hf); len(profile) > 0 {
		patch["profile"] = profile
	}
	if filters := filtersPatch(st, hardFilterPatch(hf), soft); len(filters) > 0 {
		patch["filters"] = filters
	}
	patch["session"] = map[string]any{
		"missing_info":         removeKeys(st.Session.MissingInfo, filter.ResolvedKeys(sig)),
		"user_request_history": st.Session.UserRequestHistory,
	}

	merged, err := state.Merge(st, patch)
	if err != nil {
		return Output{}, fmt.Errorf("merge collected signals: %w", err)
	}
	return Output{Reply: reply, State: merged}, nil
}

// recommend runs the Resolving, Retrieving, Ranking and Responding phases.
func (o *Orchestrator) recommend(ctx context.Context, st state.State, cleaned, historyText string, contexts []*entity.Context) (Output, error) {
	before := st.Filters.HardFilters

	sig := o.extractSignals(ctx, constant.FilterGenerationPrompt(historyText, contexts))
	hf, soft := filter.Normalize(sig)
	merged := overlayFilters(before, hf)

	res, err := o.resolver.Resolve(ctx, sig.MatchedContextID, sig.ContextConfidence, merged)
	if err != nil {
		return Output{}, fmt.Errorf("resolve occasion: %w", err)
	}

	patch := map[string]any{}
	if profile := profilePatch(hf); len(profile) > 0 {
		patch["profile"] = profile
	}

	hard := hardFilterPatch(hf)
	session := map[string]any{
		"user_request_history": st.Session.UserRequestHistory,
	}
	if res.Matched {
		patch["context"] = map[string]any{
			"matched":    true,
			"context_id": res.Context.ContextID,
			"occasion":   res.Context.Occasion,
		}
		// Occasion defaults fill in what the user never stated; they do not
		// override explicit answers. The budget rule is tighter-only.
		for k, v := range hardFilterPatch(occasionFill(res.HardFilters, merged)) {
			if _, stated := hard[k]; !stated {
				hard[k] = v
			}
		}
		soft = append(soft, res.OwnerPrefs...)
		session["missing_info"] = removeKeys(st.Session.MissingInfo, []string{state.KeyContext})
	} else {
		patch["context"] = map[string]any{"matched": false}
		session["missing_info"] = occasion.FallbackQuestions
	}
	if filters := filtersPatch(st, hard, soft); len(filters) > 0 {
		patch["filters"] = filters
	}
	patch["session"] = session

	st, err = state.Merge(st, patch)
	if err != nil {
		return Output{}, fmt.Errorf("merge resolved filters: %w", err)
	}

	previous := st.Session.LastRecommendedIDs
	isRefinement := len(previous) > 0

	result, err := o.retriever.Retrieve(ctx, st.Filters.HardFilters, previous)
	if errors.Is(err, retrieval.ErrNoCandidates) {
		reply := strings.TrimSpace(cleaned + "\n\n" + constant.NoMatchReply)
		return Output{Reply: reply, State: st}, nil
	}
	if err != nil {
		return Output{}, fmt.Errorf("retrieve candidates: %w", err)
	}

	rk, err := o.assembler.Rank(ctx, historyText, result.Candidates,
		isRefinement, describeNewConstraints(before, st.Filters.HardFilters))
	if err != nil {
		if errors.Is(err, ranking.ErrRankingContract) || errors.Is(err, ranking.ErrEmptyRanking) {
			// Upstream malformation degrades to an apology; the details are
			// already logged for operators.
			return Output{Reply: constant.RankingFallbackReply, State: st}, nil
		}
		return Output{}, fmt.Errorf("rank candidates: %w", err)
	}

	ids := make([]string, 0, len(rk.Items))
	for _, item := range rk.Items {
		ids = append(ids, item.Product.ProductID)
	}
	st.Session.LastRecommendedIDs = ids

	reply := rk.Message
	if reply == "" {
		reply = cleaned
	}

	o.publishAnalytics(st, rk, result.RelaxedTier)
	o.log.Info("turn", "recommendation turn completed", map[string]interface{}{
		"phase":       string(PhaseResponding),
		"candidates":  len(result.Candidates),
		"ranked":      len(rk.Items),
		"relaxedTier": result.RelaxedTier,
		"refinement":  isRefinement,
	})
	return Output{Reply: reply, State: st, Recommendations: rk.Items}, nil
}

func (o *Orchestrator) extractSignals(ctx context.Context, prompt string) filter.Signals {
	var sig filter.Signals
	raw, err := o.llm.Generate(ctx, prompt, llm.WithTemperature(0.3))
	if err != nil {
		o.log.Warn("turn", "signal extraction call failed, continuing with empty signals", map[string]interface{}{"error": err.Error()})
		return filter.Signals{}
	}
	if err := llmjson.Unmarshal(raw, &sig); err != nil {
		o.log.Warn("turn", "unparseable signal extraction reply, continuing with empty signals", map[string]interface{}{"reply": raw})
		return filter.Signals{}
	}
	return sig
}

func profilePatch(hf state.HardFilters) map[string]any {
	patch := map[string]any{}
	if hf.AgeFit != nil {
		patch["age_fit"] = *hf.AgeFit
	}
	if hf.JawHardnessFit != nil {
		patch["jaw_hardness_fit"] = *hf.JawHardnessFit
	}
	if len(hf.AllergensExclude) > 0 {
		patch["allergens_exclude"] = hf.AllergensExclude
	}
	return patch
}

func filtersPatch(st state.State, hard map[string]any, soft []string) map[string]any {
	filters := map[string]any{}
	if len(hard) > 0 {
		filters["hard_filters"] = hard
	}
	if len(soft) > 0 {
		filters["soft_preferences"] = appendPrefs(st.Filters.SoftPreferences, soft)
	}
	return filters
}

func hardFilterPatch(hf state.HardFilters) map[string]any {
	patch := map[string]any{}
	if hf.AgeFit != nil {
		patch["age_fit"] = *hf.AgeFit
	}
	if hf.JawHardnessFit != nil {
		patch["jaw_hardness_fit"] = *hf.JawHardnessFit
	}
	if len(hf.AllergensExclude) > 0 {
		patch["allergens_exclude"] = hf.AllergensExclude
	}
	if hf.ShelfStable != nil {
		patch["shelf_stable"] = *hf.ShelfStable
	}
	if hf.CrumbLevel != nil {
		patch["crumb_level"] = *hf.CrumbLevel
	}
	if hf.NoiseLevel != nil {
		patch["noise_level"] = *hf.NoiseLevel
	}
	if hf.Category != nil {
		patch["category"] = *hf.Category
	}
	if hf.PriceLte != nil {
		patch["price_lte"] = *hf.PriceLte
	}
	return patch
}

// overlayFilters lays the turn's extracted filters over the accumulated
// ones; extracted values win, allergens union.
func overlayFilters(base, over state.HardFilters) state.HardFilters {
	out := base
	if over.AgeFit != nil {
		out.AgeFit = over.AgeFit
	}
	if over.JawHardnessFit != nil {
		out.JawHardnessFit = over.JawHardnessFit
	}
	if over.ShelfStable != nil {
		out.ShelfStable = over.ShelfStable
	}
	if over.CrumbLevel != nil {
		out.CrumbLevel = over.CrumbLevel
	}
	if over.NoiseLevel != nil {
		out.NoiseLevel = over.NoiseLevel
	}
	if over.Category != nil {
		out.Category = over.Category
	}
	if over.PriceLte != nil {
		out.PriceLte = over.PriceLte
	}
	for _, term := range over.AllergensExclude {
		if !containsString(out.AllergensExclude, term) {
			out.AllergensExclude = append(out.AllergensExclude, term)
		}
	}
	return out
}

// occasionFill keeps only the occasion constraints the user has not already
// answered. The price ceiling passed through HardFiltersFor is tighter-only
// by construction.
func occasionFill(occ, merged state.HardFilters) state.HardFilters {
	out := state.HardFilters{PriceLte: occ.PriceLte}
	if merged.ShelfStable == nil {
		out.ShelfStable = occ.ShelfStable
	}
	if merged.NoiseLevel == nil {
		out.NoiseLevel = occ.NoiseLevel
	}
	if merged.CrumbLevel == nil {
		out.CrumbLevel = occ.CrumbLevel
	}
	return out
}

// describeNewConstraints renders the filter changes of this turn as short
// phrases for the refinement summary.
func describeNewConstraints(before, after state.HardFilters) []string {
	var out []string
	for _, term := range after.AllergensExclude {
		if !containsString(before.AllergensExclude, term) {
			out = append(out, "no "+term)
		}
	}
	if changed(before.AgeFit, after.AgeFit) {
		out = append(out, "age: "+*after.AgeFit)
	}
	if changed(before.JawHardnessFit, after.JawHardnessFit) {
		out = append(out, "chew strength: "+*after.JawHardnessFit)
	}
	if changed(before.CrumbLevel, after.CrumbLevel) {
		out = append(out, "crumb level: "+*after.CrumbLevel)
	}
	if changed(before.NoiseLevel, after.NoiseLevel) {
		out = append(out, "noise level: "+*after.NoiseLevel)
	}
	if after.ShelfStable != nil && (before.ShelfStable == nil || *before.ShelfStable != *after.ShelfStable) {
		if *after.ShelfStable {
			out = append(out, "shelf-stable only")
		}
	}
	if after.PriceLte != nil && (before.PriceLte == nil || *before.PriceLte != *after.PriceLte) {
		out = append(out, fmt.Sprintf("under %d", *after.PriceLte))
	}
	return out
}

func changed(before, after *string) bool {
	return after != nil && (before == nil || *before != *after)
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func appendPrefs(existing, extra []string) []string {
	out := make([]string, 0, len(existing)+len(extra))
	out = append(out, existing...)
	out = append(out, extra...)
	return out
}

func removeKeys(queue, resolved []string) []string {
	if len(resolved) == 0 {
		return queue
	}
	drop := make(map[string]bool, len(resolved))
	for _, k := range resolved {
		drop[k] = true
	}
	out := make([]string, 0, len(queue))
	for _, k := range queue {
		if !drop[k] {
			out = append(out, k)
		}
	}
	return out
}

func lastUserMessage(msgs []llm.Message) string {
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Role == constant.ChatMessageRoleUser {
			return msgs[i].Content
		}
	}
	return ""
}

func renderHistory(msgs []llm.Message) string {
	var b strings.Builder
	for _, m := range msgs {
		role := "AI"
		if m.Role == constant.ChatMessageRoleUser {
			role = "User"
		}
		fmt.Fprintf(&b, "%s: %s\n", role, m.Content)
	}
	return b.String()
}

// publishAnalytics is fire-and-forget: the snapshot goes out on the pubsub
// bus without blocking the response, and any failure stays invisible to the
// user.
func (o *Orchestrator) publishAnalytics(st state.State, rk ranking.Ranking, relaxedTier string) {
	if o.publisher == nil {
		return
	}
	items := make([]events.RecommendedItem, 0, len(rk.Items))
	for _, item := range rk.Items {
		items = append(items, events.RecommendedItem{
			ProductID: item.Product.ProductID,
			Score:     item.Score,
			Reasoning: item.Reasoning,
		})
	}
	snapshot := events.RecommendationCreated{
		Profile:     st.Profile,
		Context:     st.Context,
		Filters:     st.Filters,
		Items:       items,
		RelaxedTier: relaxedTier,
		OccurredAt:  time.Now(),
	}
	payload, err := json.Marshal(snapshot)
	if err != nil {
		o.log.Warn("turn", "analytics snapshot marshal failed", map[string]interface{}{"error": err.Error()})
		return
	}
	go func() {
		msg := message.NewMessage(watermill.NewUUID(), payload)
		if err := o.publisher.Publish(events.TopicRecommendationCreated, msg); err != nil {
			o.log.Warn("turn", "analytics publish failed", map[string]interface{}{"error": err.Error()})
		}
	}()
}
