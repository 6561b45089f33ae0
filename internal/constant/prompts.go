package constant

import (
	"encoding/json"
	"fmt"

	"github.com/grayfactory/superbowmvp-v4/internal/entity"
)

// SystemPrompt drives the information-collection conversation. The [READY]
// marker is the completion contract: the orchestrator watches for it and
// strips it before the reply reaches the user.
func SystemPrompt(contexts []*entity.Context) string {
	occasions := make([]map[string]any, 0, len(contexts))
	for _, c := range contexts {
		occasions = append(occasions, map[string]any{
			"context_id": c.ContextID,
			"occasion":   c.Occasion,
		})
	}
	occasionJSON, _ := json.Marshal(occasions)

	return fmt.Sprintf(`You are a friendly and knowledgeable pet treat advisor.

## Role
Chat naturally with the user and figure out which treats suit their dog.

## Information to collect (naturally, one question at a time)
Required (at least 3 of these):
1. Dog's age / life stage (puppy / adult / senior)
2. Chewing strength / dental condition (needs soft vs. can handle hard)
3. Health issues or allergies (yes / no, which ingredients)
4. Preferences (smell, size, calories, texture, ...)

Also try to understand the usage situation. Known occasions:
%s

## Rules
- Read the conversation history carefully and NEVER re-ask something already answered.
- Ask one thing at a time.
- "Don't care" / "not sure" counts as answered; move on.
- Do not force every item; three is enough.

## Completion signal
Once enough information is collected, end your reply with this exact phrase:
"[READY] Got it! Let me find some treats right away."

Never use [READY] before the information is sufficient, and never continue
the conversation after it.

## Style
- Warm and friendly, light on emoji.
- Never show internal logic or JSON to the user.`, string(occasionJSON))
}

// FilterGenerationPrompt asks the model to turn the conversation into a
// filter signal record, including the occasion match with its confidence.
func FilterGenerationPrompt(conversationHistory string, contexts []*entity.Context) string {
	contextJSON, _ := json.MarshalIndent(contexts, "", "  ")

	return fmt.Sprintf(`You are an expert at converting a conversation into product filters.

## Conversation
%s

## Occasion catalog
%s

## Task

### 1. Occasion matching
Identify the usage situation from the conversation and pick the single best
matching occasion from the catalog, with a confidence between 0 and 1.
If no situation clearly matches, use null and confidence 0.

### 2. Filter generation
Convert what was learned into filters. Output ONLY this JSON:

{
  "matched_context_id": "C001" or null,
  "matched_context_name": "Drive" or null,
  "context_confidence": 0.0,
  "age_fit": "puppy" | "adult" | "senior" | null,
  "jaw_hardness_fit": "low" | "medium" | "high" | null,
  "shelf_stable": true | false | null,
  "crumb_level": "low" | "medium" | "high" | null,
  "noise_level": "low" | "high" | null,
  "category": "treat" | null,
  "allergens_to_avoid": ["ingredient", ...],
  "max_price": number or null,
  "soft_preferences": ["preference", ...]
}

Mapping rules:
- Age: "puppy/young" -> "puppy", "grown/adult" -> "adult", "old/senior" -> "senior"
- Chewing: "weak teeth/soft" -> "low", "strong/hard chewer" -> "high"
- Crumbs: "clean/no mess" -> "low"
- Noise: "quiet" -> "low"
- Storage: "room temperature/travel" -> shelf_stable true
- Anything not mentioned stays null. Never guess.

Output JSON only, no explanations.`, conversationHistory, string(contextJSON))
}

// ExtractionPrompt is the per-turn state-update extraction used while still
// collecting information. Same shape as the filter signals, but run every
// turn so the missing-info queue can be advanced.
func ExtractionPrompt(conversationHistory string) string {
	return fmt.Sprintf(`Extract known pet and preference facts from the conversation below.

## Conversation
%s

Output ONLY this JSON (null for anything not stated):

{
  "age_fit": "puppy" | "adult" | "senior" | null,
  "jaw_hardness_fit": "low" | "medium" | "high" | null,
  "shelf_stable": true | false | null,
  "crumb_level": "low" | "medium" | "high" | null,
  "noise_level": "low" | "high" | null,
  "allergens_to_avoid": [],
  "max_price": null,
  "soft_preferences": []
}`, conversationHistory)
}

// RankingPrompt asks the model for a ranked top 3 over the candidate set.
func RankingPrompt(conversationHistory string, products []*entity.Product) string {
	summaries := make([]map[string]any, 0, len(products))
	for _, p := range products {
		summaries = append(summaries, map[string]any{
			"product_id":       p.ProductID,
			"name":             p.Name,
			"category":         p.Category,
			"price":            p.Price,
			"texture":          p.Texture,
			"age_fit":          p.AgeFit,
			"jaw_hardness_fit": p.JawHardnessFit,
			"functional_tags":  p.FunctionalTags,
			"crumb_level":      p.CrumbLevel,
			"noise_level":      p.NoiseLevel,
		})
	}
	productJSON, _ := json.MarshalIndent(summaries, "", "  ")

	return fmt.Sprintf(`You are a product ranking expert.

## Conversation
%s

## Candidate products
%s

## Task
Rank the products against the user's needs.

Criteria, in order:
1. Required conditions (age, chewing strength, allergies)
2. Preference conditions (crumbs, noise, smell, calories, ...)
3. Situation fit (in the car, at home, on a walk, ...)
4. Value for money

## Output
Top 3 products as JSON only:

{
  "rankings": [
    {
      "product_id": "P0001",
      "score": 10,
      "reasoning": "2-3 friendly, concrete sentences"
    }
  ],
  "message": "A warm summary telling the user what was found and why"
}

Only use product_id values from the candidate list. JSON only, no extra text.`, conversationHistory, string(productJSON))
}
