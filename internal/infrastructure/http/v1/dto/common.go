// Package dto defines the request and response shapes of the HTTP API.
// Domain entities carry json tags and are returned directly; request
// types exist where partial input and binding validation matter.
package dto

import (
	"moneta/internal/core/id"
	"moneta/internal/domain"
)

// PaginationRequest holds common list query parameters.
type PaginationRequest struct {
	Limit  int `form:"limit"`
	Offset int `form:"offset"`
}

// Normalize applies defaults and caps.
func (p *PaginationRequest) Normalize() {
	if p.Limit <= 0 {
		p.Limit = 50
	}
	if p.Limit > 500 {
		p.Limit = 500
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// ListResponse is the envelope for paginated collections.
type ListResponse struct {
	Items      any   `json:"items"`
	TotalCount int64 `json:"totalCount"`
	Limit      int   `json:"limit"`
	Offset     int   `json:"offset"`
}

// NewListResponse wraps a domain list result.
func NewListResponse[T any](result domain.ListResult[T]) ListResponse {
	return ListResponse{
		Items:      result.Items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	}
}

// IDResponse returns the identifier of a created entity.
type IDResponse struct {
	ID id.ID `json:"id"`
}

// SuccessResponse is a generic acknowledgement.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// ErrorResponse is the error envelope produced by the error middleware.
// Declared here for API documentation and client generation.
type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// SetDeletionMarkRequest toggles the soft-delete mark.
type SetDeletionMarkRequest struct {
	Marked bool `json:"marked"`
}
