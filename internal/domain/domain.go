// Package domain provides core business logic interfaces and types.
package domain

// --- Filter & Pagination ---

// ListFilter contains common filtering options for list operations.
type ListFilter struct {
	// Search performs a case-insensitive match on the entity's name fields
	Search string

	// StartDate/EndDate filter by the YYYY-MM-DD prefix of the date column
	StartDate string
	EndDate   string

	// OrderBy specifies sorting (e.g., "date DESC", "name")
	OrderBy string

	// Pagination
	Limit  int
	Offset int
}

// DefaultListFilter returns sensible defaults.
func DefaultListFilter() ListFilter {
	return ListFilter{
		Limit:   50,
		OrderBy: "id DESC",
	}
}

// ListResult contains paginated results.
type ListResult[T any] struct {
	Items      []T   `json:"items"`
	TotalCount int64 `json:"totalCount"`
	Limit      int   `json:"limit"`
	Offset     int   `json:"offset"`
}
