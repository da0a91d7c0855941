// Package listview is the read side of the tracker: it fetches every meal and
// holds exactly one of loading, failed or loaded.
package listview

import (
	"fmt"
	"io"
	"licaca-meal-log/models"
)

type Status int

const (
	Loading Status = iota
	Failed
	Loaded
)

func (s Status) String() string {
	switch s {
	case Loading:
		return "loading"
	case Failed:
		return "failed"
	case Loaded:
		return "loaded"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Lister fetches the persisted meals. client.MealClient implements it.
type Lister interface {
	ListMeals() ([]models.Meal, error)
}

type View struct {
	Status Status
	Meals  []models.Meal
	Err    error
}

// Start is the state shown while a fetch is in flight.
func Start() View {
	return View{Status: Loading}
}

// Finish turns a fetch result into the failed or loaded state. Loaded meals
// replace whatever was shown before.
func Finish(meals []models.Meal, err error) View {
	if err != nil {
		return View{Status: Failed, Err: err}
	}
	if meals == nil {
		meals = []models.Meal{}
	}
	return View{Status: Loaded, Meals: meals}
}

// Mount performs the first fetch.
func Mount(lister Lister) View {
	return Finish(lister.ListMeals())
}

// Refresh re-fetches the full list. It is also the retry action of the failed state.
func (v View) Refresh(lister Lister) View {
	return Mount(lister)
}

// Render writes a plain text listing of the current state.
func (v View) Render(w io.Writer) error {
	switch v.Status {
	case Loading:
		_, err := fmt.Fprintln(w, "loading meals...")
		return err
	case Failed:
		_, err := fmt.Fprintf(w, "error: %v (refresh to retry)\n", v.Err)
		return err
	}

	if len(v.Meals) == 0 {
		_, err := fmt.Fprintln(w, "no meals recorded yet")
		return err
	}
	for _, mealEntity := range v.Meals {
		if _, err := fmt.Fprintf(w, "%s - %s  pain %d/10  (%s)\n", mealEntity.MealType, mealEntity.Time, mealEntity.PainRating, mealEntity.CreatedAt.Local().Format("2006-01-02 15:04")); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "  foods: %s\n", mealEntity.Foods); err != nil {
			return err
		}
		for _, item := range mealEntity.Items {
			line := fmt.Sprintf("  - %s %d/5", item.Food, item.Rating)
			if item.Notes != nil {
				line += " (" + *item.Notes + ")"
			}
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
		if mealEntity.Notes != nil {
			if _, err := fmt.Fprintf(w, "  notes: %s\n", *mealEntity.Notes); err != nil {
				return err
			}
		}
		if mealEntity.SymptomTime != nil || mealEntity.SymptomEnd != nil {
			if _, err := fmt.Fprintf(w, "  symptoms: %s - %s\n", deref(mealEntity.SymptomTime), deref(mealEntity.SymptomEnd)); err != nil {
				return err
			}
		}
	}
	return nil
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
