// Package draft holds the in-progress meal form. A Draft is a plain value:
// every edit returns a new Draft and leaves the receiver untouched.
package draft

import (
	"errors"
	"fmt"
	"licaca-meal-log/enums"
	"licaca-meal-log/models"
	"licaca-meal-log/structs"
	"strings"
)

// ErrInvalidRows is returned by Check and Submit when a row has no food name
// or a rating outside 1..5.
var ErrInvalidRows = errors.New("every food needs a name and a rating between 1 and 5")

type Row struct {
	Food   string
	Rating int
	Notes  string
}

// Patch carries the row fields to overwrite; nil fields are kept.
type Patch struct {
	Food   *string
	Rating *int
	Notes  *string
}

type Draft struct {
	Foods       string
	MealType    string
	Time        string
	Notes       string
	SymptomTime string
	SymptomEnd  string
	PainRating  int
	Items       []Row
}

// Submitter creates a meal from a request. client.MealClient implements it.
type Submitter interface {
	CreateMeal(param structs.MealParam) (*models.Meal, error)
}

func BlankRow() Row {
	return Row{Rating: enums.DefaultFoodRating}
}

// New returns the initial form: breakfast, no pain, one blank row.
func New() Draft {
	return Draft{
		MealType:   enums.Breakfast,
		PainRating: enums.MinPainRating,
		Items:      []Row{BlankRow()},
	}
}

func (d Draft) withItems(items []Row) Draft {
	d.Items = items
	return d
}

func (d Draft) cloneItems(extra int) []Row {
	items := make([]Row, len(d.Items), len(d.Items)+extra)
	copy(items, d.Items)
	return items
}

func (d Draft) AddRow() Draft {
	return d.withItems(append(d.cloneItems(1), BlankRow()))
}

// UpdateRow merges patch into the row at index. An index outside the rows
// returns the draft unchanged.
func (d Draft) UpdateRow(index int, patch Patch) Draft {
	if index < 0 || index >= len(d.Items) {
		return d
	}
	items := d.cloneItems(0)
	if patch.Food != nil {
		items[index].Food = *patch.Food
	}
	if patch.Rating != nil {
		items[index].Rating = *patch.Rating
	}
	if patch.Notes != nil {
		items[index].Notes = *patch.Notes
	}
	return d.withItems(items)
}

// RemoveRow drops the row at index. The form never shows zero rows, so
// removing the last one leaves a fresh blank row instead.
func (d Draft) RemoveRow(index int) Draft {
	if index < 0 || index >= len(d.Items) {
		return d
	}
	items := make([]Row, 0, len(d.Items))
	items = append(items, d.Items[:index]...)
	items = append(items, d.Items[index+1:]...)
	if len(items) == 0 {
		items = append(items, BlankRow())
	}
	return d.withItems(items)
}

func (d Draft) Reset() Draft {
	return New()
}

// Check runs the form's own validation before anything is sent.
func (d Draft) Check() error {
	for i, row := range d.Items {
		if strings.TrimSpace(row.Food) == "" || row.Rating < enums.MinFoodRating || row.Rating > enums.MaxFoodRating {
			return fmt.Errorf("row %d: %w", i+1, ErrInvalidRows)
		}
	}
	return nil
}

// Param converts the draft into the create request body.
func (d Draft) Param() structs.MealParam {
	painRating := d.PainRating
	param := structs.MealParam{
		Foods:       d.Foods,
		MealType:    d.MealType,
		Time:        d.Time,
		Notes:       stringPtr(d.Notes),
		SymptomTime: stringPtr(d.SymptomTime),
		SymptomEnd:  stringPtr(d.SymptomEnd),
		PainRating:  &painRating,
		Items:       make([]structs.FoodFeelingParam, 0, len(d.Items)),
	}
	for _, row := range d.Items {
		rating := row.Rating
		param.Items = append(param.Items, structs.FoodFeelingParam{
			Food:   row.Food,
			Rating: &rating,
			Notes:  stringPtr(row.Notes),
		})
	}
	return param
}

// Submit sends the draft when it passes Check. On success the returned draft
// is reset; on any failure the draft comes back unchanged so it can be fixed
// and resent.
func (d Draft) Submit(submitter Submitter) (Draft, *models.Meal, error) {
	if err := d.Check(); err != nil {
		return d, nil, err
	}
	mealEntity, err := submitter.CreateMeal(d.Param())
	if err != nil {
		return d, nil, err
	}
	return d.Reset(), mealEntity, nil
}

func stringPtr(value string) *string {
	return &value
}
