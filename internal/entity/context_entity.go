package entity

// Context is a predefined occasion profile ("travel", "clinic wait", ...)
// carrying default constraints and the owner's free-text preferences.
type Context struct {
	ContextID      string  `json:"context_id"`
	Occasion       string  `json:"occasion"`
	LocationType   *string `json:"location_type"`
	DurationMin    *int    `json:"duration_min"`
	MessyOk        *bool   `json:"messy_ok"`
	NoiseSensitive *bool   `json:"noise_sensitive"`
	Storage        *string `json:"storage"` // only_shelf_stable | refrigeration_ok
	BudgetMax      *int    `json:"budget_max"`
	Season         *string `json:"season"` // any | hot | cold
	OwnerPref      *string `json:"owner_pref"`
}
