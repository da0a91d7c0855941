package meal

import (
	"bytes"
	"encoding/json"
	"errors"
	"licaca-meal-log/database"
	"licaca-meal-log/models"
	mealService "licaca-meal-log/services/meal"
	"licaca-meal-log/structs"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingStore struct{}

func (failingStore) Create(param structs.MealParam) (*models.Meal, error) {
	return nil, errors.New("disk full")
}

func (failingStore) List() ([]models.Meal, error) {
	return nil, errors.New("disk full")
}

func init() {
	gin.SetMode(gin.TestMode)
}

func newEngine(store MealStore) *gin.Engine {
	controller := NewController(store)
	engine := gin.New()
	engine.POST("/meals", controller.Create)
	engine.GET("/meals", controller.List)
	return engine
}

func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	db, err := database.Open(structs.Database{Client: "sqlite", Path: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { db.Close() })
	return newEngine(mealService.NewMealService(db, nil, "", nil))
}

func do(t *testing.T, engine *gin.Engine, method, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, "/meals", nil)
	} else {
		req = httptest.NewRequest(method, "/meals", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func listMeals(t *testing.T, engine *gin.Engine) []models.Meal {
	t.Helper()
	w := do(t, engine, http.MethodGet, "")
	require.Equal(t, http.StatusOK, w.Code)
	var response structs.ListMealResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return response.Meals
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var response structs.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return response.Error
}

func TestCreateThenListShowsMealFirst(t *testing.T) {
	engine := newTestEngine(t)

	w := do(t, engine, http.MethodPost, `{"foods":"Salad","mealType":"lunch","time":"12:30","painRating":0,"items":[{"food":"Salad","rating":5}]}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = do(t, engine, http.MethodPost, `{"foods":"Toast","mealType":"breakfast","time":"08:00","painRating":2,"items":[{"food":"Toast","rating":4}]}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var created structs.CreateMealResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.NotEmpty(t, created.Message)
	require.NotNil(t, created.Meal)
	assert.NotEmpty(t, created.Meal.ID)
	assert.False(t, created.Meal.CreatedAt.IsZero())
	require.Len(t, created.Meal.Items, 1)
	assert.Equal(t, "Toast", created.Meal.Items[0].Food)
	assert.Equal(t, 4, created.Meal.Items[0].Rating)
	assert.NotEmpty(t, created.Meal.Items[0].ID)

	meals := listMeals(t, engine)
	require.Len(t, meals, 2)
	assert.Equal(t, created.Meal.ID, meals[0].ID)
	assert.Equal(t, "Toast", meals[0].Foods)
	assert.Equal(t, "Salad", meals[1].Foods)
}

func TestCreateRejectsEmptyItems(t *testing.T) {
	engine := newTestEngine(t)

	w := do(t, engine, http.MethodPost, `{"foods":"Toast","mealType":"breakfast","time":"08:00","painRating":2,"items":[]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, errorMessage(t, w), "at least one food item is required")
	assert.Empty(t, listMeals(t, engine))
}

func TestCreateRejectsInvalidRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"missing foods", `{"mealType":"breakfast","time":"08:00","painRating":2,"items":[{"food":"Toast","rating":4}]}`, "foods"},
		{"missing meal type", `{"foods":"Toast","time":"08:00","painRating":2,"items":[{"food":"Toast","rating":4}]}`, "mealType"},
		{"missing time", `{"foods":"Toast","mealType":"breakfast","painRating":2,"items":[{"food":"Toast","rating":4}]}`, "time"},
		{"missing items", `{"foods":"Toast","mealType":"breakfast","time":"08:00","painRating":2}`, "items"},
		{"null items", `{"foods":"Toast","mealType":"breakfast","time":"08:00","painRating":2,"items":null}`, "items"},
		{"items not an array", `{"foods":"Toast","mealType":"breakfast","time":"08:00","painRating":2,"items":"Toast"}`, "JSON"},
		{"rating out of range", `{"foods":"Toast","mealType":"breakfast","time":"08:00","painRating":2,"items":[{"food":"Toast","rating":4},{"food":"Jam","rating":9}]}`, "items[1]"},
		{"fractional rating", `{"foods":"Toast","mealType":"breakfast","time":"08:00","painRating":2,"items":[{"food":"Toast","rating":3.5}]}`, "JSON"},
		{"empty food", `{"foods":"Toast","mealType":"breakfast","time":"08:00","painRating":2,"items":[{"food":"","rating":4}]}`, "items[0]"},
		{"malformed", `{"foods":`, "JSON"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := newTestEngine(t)

			w := do(t, engine, http.MethodPost, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, errorMessage(t, w), tt.want)
			assert.Empty(t, listMeals(t, engine))
		})
	}
}

func TestListEmpty(t *testing.T) {
	engine := newTestEngine(t)

	w := do(t, engine, http.MethodGet, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"meals":[]}`, w.Body.String())
}

func TestStoreFailuresAreGeneric500(t *testing.T) {
	engine := newEngine(failingStore{})

	w := do(t, engine, http.MethodPost, `{"foods":"Toast","mealType":"breakfast","time":"08:00","painRating":2,"items":[{"food":"Toast","rating":4}]}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, createErrMessage, errorMessage(t, w))

	w = do(t, engine, http.MethodGet, "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, listErrMessage, errorMessage(t, w))
	assert.NotContains(t, w.Body.String(), "disk full")
}
