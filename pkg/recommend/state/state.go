package state

// Conversation state is owned by the client and round-tripped on every turn.
// The server never stores it between requests; a turn is a pure function of
// (state, utterance).

// Age, jaw, crumb and noise classes use the catalog's fixed enumerations.
// A nil pointer means the value is unknown; there is no "unknown" sentinel.

// PetProfile holds what is known about the pet so far. Filled by the breed
// analyzer or by extraction from the conversation.
type PetProfile struct {
	PetID            *string  `json:"pet_id"`
	AgeFit           *string  `json:"age_fit"`           // puppy | adult | senior
	JawHardnessFit   *string  `json:"jaw_hardness_fit"`  // low | medium | high
	WeightStatus     *string  `json:"weight_status"`     // underweight | normal | overweight
	AllergensExclude []string `json:"allergens_exclude"` // canonical terms, grows only
}

// ContextInfo records the occasion match, if any.
// Invariant: Matched implies ContextID is non-nil.
type ContextInfo struct {
	ContextID *string `json:"context_id"`
	Occasion  *string `json:"occasion"`
	Matched   bool    `json:"matched"`
}

// HardFilters are the query predicates. A nil field places no constraint.
type HardFilters struct {
	JawHardnessFit   *string  `json:"jaw_hardness_fit,omitempty"`
	AgeFit           *string  `json:"age_fit,omitempty"`
	AllergensExclude []string `json:"allergens_exclude,omitempty"`
	ShelfStable      *bool    `json:"shelf_stable,omitempty"`
	CrumbLevel       *string  `json:"crumb_level,omitempty"`
	NoiseLevel       *string  `json:"noise_level,omitempty"`
	Category         *string  `json:"category,omitempty"`
	PriceLte         *int     `json:"price_lte,omitempty"`
}

// ProductFilters is the derived query layer: hard predicates for the catalog
// query plus free-text hints that only influence ranking.
type ProductFilters struct {
	HardFilters     HardFilters `json:"hard_filters"`
	SoftPreferences []string    `json:"soft_preferences"`
}

// SessionInfo is per-session bookkeeping. MissingInfo is a work-list: the
// orchestrator asks about its head and removes a key once resolved.
type SessionInfo struct {
	MissingInfo        []string `json:"missing_info"`
	UserRequestHistory []string `json:"user_request_history"`
	// LastRecommendedIDs holds the product ids shown on the most recent
	// recommendation turn, so a refinement can re-admit them.
	LastRecommendedIDs []string `json:"last_recommended_ids"`
}

// State is the full conversation aggregate.
type State struct {
	Profile PetProfile     `json:"profile"`
	Context ContextInfo    `json:"context"`
	Filters ProductFilters `json:"filters"`
	Session SessionInfo    `json:"session"`
}

// NewInitialState returns the state for a fresh session. The first thing to
// elicit is the usage situation.
func NewInitialState() State {
	return State{
		Profile: PetProfile{
			AllergensExclude: []string{},
		},
		Context: ContextInfo{},
		Filters: ProductFilters{
			HardFilters:     HardFilters{},
			SoftPreferences: []string{},
		},
		Session: SessionInfo{
			MissingInfo:        []string{KeyContext},
			UserRequestHistory: []string{},
		},
	}
}

// Keys used in the MissingInfo queue.
const (
	KeyContext      = "context"
	KeyJawHardness  = "jaw_hardness_fit"
	KeyCrumbLevel   = "crumb_level"
	KeyNoiseLevel   = "noise_level"
	KeyShelfStable  = "shelf_stable"
	KeyAskSoftPrefs = "ask_soft_prefs"
)

// StrPtr is a convenience for building optional fields.
func StrPtr(s string) *string { return &s }

// BoolPtr is a convenience for building optional fields.
func BoolPtr(b bool) *bool { return &b }

// IntPtr is a convenience for building optional fields.
func IntPtr(i int) *int { return &i }
