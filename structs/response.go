package structs

import "licaca-meal-log/models"

type CreateMealResponse struct {
	Message string       `json:"message"`
	Meal    *models.Meal `json:"meal"`
}

type ListMealResponse struct {
	Meals []models.Meal `json:"meals"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
