package enums

const (
	Breakfast = "breakfast"
	Lunch     = "lunch"
	Dinner    = "dinner"
	Snack     = "snack"
	OtherMeal = "other"

	MinFoodRating     = 1
	MaxFoodRating     = 5
	DefaultFoodRating = 3
	MinPainRating     = 0
	MaxPainRating     = 10

	ServeInitLog   = "licaca.serve.init"
	MigrateLog     = "licaca.migrate"
	ConnectionName = "licaca"
)
