// package model contains the data models for the todo api
package model

import (
	"time"
)

// TodoItem is the single entity persisted and served by the api. The same
// shape is used as the response body.
type TodoItem struct {
	ID              int64     `json:"id" gorm:"primaryKey;autoIncrement" doc:"Unique identifier assigned on creation" example:"1"`
	Expiry          time.Time `json:"expiry" doc:"When the item is due" example:"2024-05-01T17:00:00Z"`
	Description     string    `json:"description" doc:"Free-form description of the item" example:"Semi-skimmed, two litres"`
	PercentComplete float64   `json:"percentComplete" doc:"How far along the item is, usually 0 to 100" example:"25"`
	Name            string    `json:"name" gorm:"not null" doc:"Name of the item" example:"Buy milk"`
	IsComplete      bool      `json:"isComplete" gorm:"not null;default:false" doc:"Whether the item is done" example:"false"`
}

// TableName pins the table name regardless of naming strategy.
func (TodoItem) TableName() string {
	return "todo_items"
}

// TodoItemRequest is the body accepted when creating or updating an item.
// Any id sent by the client is ignored.
type TodoItemRequest struct {
	Expiry          time.Time `json:"expiry,omitempty" doc:"When the item is due" example:"2024-05-01T17:00:00Z"`
	Description     string    `json:"description,omitempty" doc:"Free-form description of the item" example:"Semi-skimmed, two litres"`
	PercentComplete float64   `json:"percentComplete,omitempty" doc:"How far along the item is, usually 0 to 100" example:"25"`
	Name            string    `json:"name" validate:"required,notblank" doc:"Name of the item" example:"Buy milk"`
	IsComplete      bool      `json:"isComplete,omitempty" doc:"Whether the item is done" example:"false"`
}

// PercentRequest is the part of a request body read by the percent update.
// Other fields of the body are accepted and ignored.
type PercentRequest struct {
	PercentComplete float64 `json:"percentComplete" doc:"How far along the item is, usually 0 to 100" example:"50"`
}

// ErrorResponse represents an error returned by the API
type ErrorResponse struct {
	Error  string            `json:"error" doc:"Error message" example:"invalid request body"`
	Fields map[string]string `json:"fields,omitempty" doc:"Per-field validation messages"`
}

// HealthResponse is returned by the health endpoint
type HealthResponse struct {
	Status string `json:"status" doc:"ok when the store is reachable" example:"ok"`
}
