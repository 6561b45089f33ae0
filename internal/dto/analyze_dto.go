package dto

type AnalyzePetRequest struct {
	Breed    string   `json:"breed" validate:"required"`
	Month    int      `json:"month" validate:"required,min=1,max=120"`
	WeightKg *float64 `json:"weight_kg" validate:"omitempty,gt=0"`
}

type AnalyzePetResponse struct {
	Breed          string  `json:"breed"`
	AgeFit         string  `json:"age_fit"`
	JawHardnessFit *string `json:"jaw_hardness_fit"`
	WeightStatus   *string `json:"weight_status"`
}
