package structs

// MealParam is the POST /meals body. Pointer fields distinguish an absent key
// from a zero value.
type MealParam struct {
	Foods       string             `json:"foods"`
	MealType    string             `json:"mealType"`
	Time        string             `json:"time"`
	Notes       *string            `json:"notes"`
	SymptomTime *string            `json:"symptomTime"`
	SymptomEnd  *string            `json:"symptomEnd"`
	PainRating  *int               `json:"painRating"`
	Items       []FoodFeelingParam `json:"items"`

	// Older clients sent these misspelled keys.
	LegacySymptomTime *string `json:"symptomeTime,omitempty"`
	LegacySymptomEnd  *string `json:"symptomeEnd,omitempty"`
}

type FoodFeelingParam struct {
	Food   string  `json:"food"`
	Rating *int    `json:"rating"`
	Notes  *string `json:"notes"`
}

// MealCreatedEvent is published to the message queue after a meal commits.
type MealCreatedEvent struct {
	MealID     string `json:"meal_id"`
	MealType   string `json:"meal_type"`
	Time       string `json:"time"`
	PainRating int    `json:"pain_rating"`
	ItemCount  int    `json:"item_count"`
	CreatedAt  string `json:"created_at"`
}
