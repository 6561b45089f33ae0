package entity

// Product is a catalog row. Nullable columns map to pointers; the two array
// columns hold canonical allergen terms and functional tags.
type Product struct {
	ProductID      string   `json:"product_id"`
	Name           string   `json:"name"`
	Category       string   `json:"category"`
	ProteinSources *string  `json:"protein_sources"`
	Ingredient     *string  `json:"ingredient"`
	Ingredient2    *string  `json:"ingredient2"`
	Ingredient3    *string  `json:"ingredient3"`
	Allergens      []string `json:"allergens"`
	Texture        *string  `json:"texture"`
	PieceSizeCm    *int     `json:"piece_size_cm"`
	MoistureType   *string  `json:"moisture_type"`
	FunctionalTags []string `json:"functional_tags"`
	Packaging      *string  `json:"packaging"`
	Feature        *string  `json:"feature"`
	ShelfStable    bool     `json:"shelf_stable"`
	StrongAroma    *bool    `json:"strong_aroma"`
	CrumbLevel     *string  `json:"crumb_level"` // low | medium | high
	NoiseLevel     *string  `json:"noise_level"` // low | high
	Price          int      `json:"price"`
	AgeFit         *string  `json:"age_fit"`          // all | puppy | adult | senior
	JawHardnessFit *string  `json:"jaw_hardness_fit"` // low | medium | high
	ProteinPercent *string  `json:"protein_percent"`
	MoisturePercent *string `json:"moisture_percent"`
	FiberPercent   *string  `json:"fiber_percent"`
	AshPercent     *string  `json:"ash_percent"`
	FatPercent     *string  `json:"fat_percent"`
}
