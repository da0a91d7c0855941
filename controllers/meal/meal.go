package meal

import (
	"errors"
	"licaca-meal-log/models"
	mealService "licaca-meal-log/services/meal"
	"licaca-meal-log/structs"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	createdMessage   = "meal created"
	badBodyMessage   = "request body must be a JSON meal record"
	createErrMessage = "server error while creating the meal"
	listErrMessage   = "server error while loading meals"
)

// MealStore is the part of the meal service the HTTP layer needs.
type MealStore interface {
	Create(param structs.MealParam) (*models.Meal, error)
	List() ([]models.Meal, error)
}

type Controller struct {
	store MealStore
}

func NewController(store MealStore) *Controller {
	return &Controller{store: store}
}

func (ctl *Controller) Create(c *gin.Context) {
	var param structs.MealParam
	if err := c.ShouldBindJSON(&param); err != nil {
		c.JSON(http.StatusBadRequest, structs.ErrorResponse{Error: badBodyMessage})
		return
	}

	mealEntity, err := ctl.store.Create(param)
	if err != nil {
		var validationErr *mealService.ValidationError
		if errors.As(err, &validationErr) {
			c.JSON(http.StatusBadRequest, structs.ErrorResponse{Error: validationErr.Message})
			return
		}
		c.Error(err)
		c.JSON(http.StatusInternalServerError, structs.ErrorResponse{Error: createErrMessage})
		return
	}

	c.JSON(http.StatusCreated, structs.CreateMealResponse{Message: createdMessage, Meal: mealEntity})
}

func (ctl *Controller) List(c *gin.Context) {
	meals, err := ctl.store.List()
	if err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, structs.ErrorResponse{Error: listErrMessage})
		return
	}
	if meals == nil {
		meals = []models.Meal{}
	}
	c.JSON(http.StatusOK, structs.ListMealResponse{Meals: meals})
}
