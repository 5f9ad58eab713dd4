// Package dto provides Data Transfer Objects for API requests/responses.
package dto

import (
	"farmledger/internal/core/id"
)

// IDResponse for create operations.
type IDResponse struct {
	ID string `json:"id"`
}

// NewIDResponse creates ID response.
func NewIDResponse(i id.ID) IDResponse {
	return IDResponse{ID: i.String()}
}

// SuccessResponse for operations without data.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// ErrorResponse for error details.
type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// ListResponse wraps list results.
type ListResponse struct {
	Items any `json:"items"`
	Count int `json:"count"`
}

// NewListResponse creates a list response. The count always reflects the
// slice length so empty lists serialize as [] with count 0, not null.
func NewListResponse[T any](items []T) ListResponse {
	if items == nil {
		items = []T{}
	}
	return ListResponse{Items: items, Count: len(items)}
}
