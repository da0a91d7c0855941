package models

type FoodFeeling struct {
	ID       string  `gorm:"column:id;primary_key;type:varchar(36)" json:"id"`
	MealID   string  `gorm:"column:meal_id;type:varchar(36);not null;index" json:"mealId"`
	Position int     `gorm:"column:position" json:"-"`
	Food     string  `gorm:"column:food;type:text;not null" json:"food"`
	Rating   int     `gorm:"column:rating;not null" json:"rating"`
	Notes    *string `gorm:"column:notes;type:text" json:"notes"`
}

// TableName sets the insert table name for this struct type
func (f *FoodFeeling) TableName() string {
	return "food_feelings"
}
