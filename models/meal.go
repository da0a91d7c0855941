package models

import "time"

type Meal struct {
	ID          string        `gorm:"column:id;primary_key;type:varchar(36)" json:"id"`
	Foods       string        `gorm:"column:foods;type:text;not null" json:"foods"`
	MealType    string        `gorm:"column:meal_type;not null" json:"mealType"`
	Time        string        `gorm:"column:time;not null" json:"time"`
	Notes       *string       `gorm:"column:notes;type:text" json:"notes"`
	SymptomTime *string       `gorm:"column:symptom_time" json:"symptomTime"`
	SymptomEnd  *string       `gorm:"column:symptom_end" json:"symptomEnd"`
	PainRating  int           `gorm:"column:pain_rating" json:"painRating"`
	CreatedAt   time.Time     `gorm:"column:created_at;index" json:"createdAt"`
	Items       []FoodFeeling `gorm:"foreignkey:MealID" json:"items"`
}

// TableName sets the insert table name for this struct type
func (m *Meal) TableName() string {
	return "meals"
}
