package meal

import (
	"fmt"
	"licaca-meal-log/enums"
	"licaca-meal-log/structs"
	"strings"
)

// ValidationError reports the first field that made a create request unacceptable.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// Validate checks a create request. painRating must be present but its range
// is deliberately left unchecked here.
func Validate(param structs.MealParam) error {
	if strings.TrimSpace(param.Foods) == "" {
		return invalid("foods", "foods is required")
	}
	if strings.TrimSpace(param.MealType) == "" {
		return invalid("mealType", "mealType is required")
	}
	if strings.TrimSpace(param.Time) == "" {
		return invalid("time", "time is required")
	}
	if param.PainRating == nil {
		return invalid("painRating", "painRating is required")
	}
	if param.Items == nil {
		return invalid("items", "items is required")
	}
	if len(param.Items) == 0 {
		return invalid("items", "at least one food item is required")
	}

	for i, item := range param.Items {
		if strings.TrimSpace(item.Food) == "" {
			return invalid(fmt.Sprintf("items[%d].food", i), "items[%d]: food is required", i)
		}
		if item.Rating == nil || *item.Rating < enums.MinFoodRating || *item.Rating > enums.MaxFoodRating {
			return invalid(fmt.Sprintf("items[%d].rating", i), "items[%d]: rating must be between %d and %d", i, enums.MinFoodRating, enums.MaxFoodRating)
		}
	}
	return nil
}
