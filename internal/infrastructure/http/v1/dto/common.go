// Package dto provides Data Transfer Objects for API requests/responses.
package dto

import (
	"github.com/PnBafon/viten-backend/internal/domain"
)

// --- List query ---

// ListQuery contains the common list parameters.
type ListQuery struct {
	Search    string `form:"search"`
	StartDate string `form:"startDate"`
	EndDate   string `form:"endDate"`
	OrderBy   string `form:"orderBy"`
	Limit     int    `form:"limit" binding:"omitempty,min=1,max=500"`
	Offset    int    `form:"offset" binding:"omitempty,min=0"`
}

// ToFilter converts query parameters to a domain filter.
func (q *ListQuery) ToFilter() domain.ListFilter {
	f := domain.DefaultListFilter()
	f.Search = q.Search
	f.StartDate = q.StartDate
	f.EndDate = q.EndDate
	if q.OrderBy != "" {
		f.OrderBy = q.OrderBy
	}
	if q.Limit > 0 {
		f.Limit = q.Limit
	}
	if q.Offset > 0 {
		f.Offset = q.Offset
	}
	return f
}

// --- List Response ---

// ListResponse wraps list results with pagination.
type ListResponse struct {
	Items      any   `json:"items"`
	TotalCount int64 `json:"totalCount"`
	Limit      int   `json:"limit"`
	Offset     int   `json:"offset"`
}

// NewListResponse wraps a domain list result.
func NewListResponse[T any](r domain.ListResult[T]) ListResponse {
	items := r.Items
	if items == nil {
		items = []T{}
	}
	return ListResponse{
		Items:      items,
		TotalCount: r.TotalCount,
		Limit:      r.Limit,
		Offset:     r.Offset,
	}
}

// --- ID Response ---

// IDResponse for create operations.
type IDResponse struct {
	ID int64 `json:"id"`
}

// --- Success Response ---

// SuccessResponse for operations without data.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// --- Error Response ---

// ErrorResponse for error details.
type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}
