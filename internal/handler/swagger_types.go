package handler

import (
	"github.com/google/uuid"
)

// Swagger type definitions for API documentation.
// These types are used by swag to generate OpenAPI documentation.

// --- Request Types ---

// LoginRequest represents the login request body.
type LoginRequest struct {
	Email    string `json:"email" binding:"required" example:"owner@brightsecurity.in"`
	Password string `json:"password" binding:"required" example:"securepassword123"`
}

// CreateUserRequest represents the create user request body.
type CreateUserRequest struct {
	Email        string `json:"email" binding:"required" example:"owner@brightsecurity.in"`
	Password     string `json:"password" binding:"required" example:"securepassword123"`
	Username     string `json:"username" binding:"required" example:"bright"`
	BusinessName string `json:"business_name" example:"Bright Security Systems"`
	Phone        string `json:"phone" example:"+91 98470 12345"`
	Address      string `json:"address" example:"MG Road, Kochi"`
}

// --- Response Types ---

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
	Error  string `json:"error,omitempty" example:"database not reachable"`
}

// DeletedResponse echoes the id of a removed resource.
type DeletedResponse struct {
	DeletedID uuid.UUID `json:"deleted_id" example:"550e8400-e29b-41d4-a716-446655440000"`
}

// --- Generic Response Wrappers ---

// Response wraps a successful response with data.
type Response struct {
	Success bool        `json:"success" example:"true"`
	Status  string      `json:"status" example:"SUCCESS" enums:"SUCCESS,NO_DATA"`
	Message string      `json:"message,omitempty" example:"no records found"`
	Data    interface{} `json:"data,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// ErrorResponseBody wraps an error response.
type ErrorResponseBody struct {
	Success bool      `json:"success" example:"false"`
	Status  string    `json:"status" example:"ERROR" enums:"ERROR,NO_DATA"`
	Message string    `json:"message" example:"quotation not found"`
	Error   *APIError `json:"error"`
}
