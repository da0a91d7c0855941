// Package client talks to the meal endpoints over HTTP. It backs the draft
// submit flow and the list view of the CLI.
package client

import (
	"encoding/json"
	"fmt"
	"licaca-meal-log/models"
	"licaca-meal-log/services"
	"licaca-meal-log/structs"
	"net/http"
	"strings"
)

// APIError is a non-2xx answer from the service.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("meal service returned %d: %s", e.Status, e.Message)
}

// Validation reports whether the service rejected the request as invalid.
func (e *APIError) Validation() bool {
	return e.Status == http.StatusBadRequest
}

// NetworkError means the request never got an HTTP answer.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return "cannot reach meal service: " + e.Err.Error()
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

type MealClient struct {
	baseURL string
	header  map[string]string
}

func New(baseURL string) *MealClient {
	return &MealClient{baseURL: strings.TrimRight(baseURL, "/")}
}

// WithHeader returns a client that sends key: value on every request.
func (m *MealClient) WithHeader(key, value string) *MealClient {
	header := make(map[string]string, len(m.header)+1)
	for k, v := range m.header {
		header[k] = v
	}
	header[key] = value
	return &MealClient{baseURL: m.baseURL, header: header}
}

func (m *MealClient) CreateMeal(param structs.MealParam) (*models.Meal, error) {
	var response structs.CreateMealResponse
	if err := m.do(http.MethodPost, param, http.StatusCreated, &response); err != nil {
		return nil, err
	}
	return response.Meal, nil
}

func (m *MealClient) ListMeals() ([]models.Meal, error) {
	var response structs.ListMealResponse
	if err := m.do(http.MethodGet, nil, http.StatusOK, &response); err != nil {
		return nil, err
	}
	if response.Meals == nil {
		response.Meals = []models.Meal{}
	}
	return response.Meals, nil
}

func (m *MealClient) do(method string, data interface{}, expected int, out interface{}) error {
	status, body, err := services.HttpRequest(method, m.baseURL+"/meals", m.header, data)
	if err != nil && status == 0 {
		return &NetworkError{Err: err}
	}
	if err != nil {
		return fmt.Errorf("read meal service response: %w", err)
	}

	if status != expected {
		var errResponse structs.ErrorResponse
		if jsonErr := json.Unmarshal(body, &errResponse); jsonErr != nil || errResponse.Error == "" {
			errResponse.Error = http.StatusText(status)
		}
		return &APIError{Status: status, Message: errResponse.Error}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode meal service response: %w", err)
	}
	return nil
}
