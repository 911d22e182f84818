package postgres

import (
	"strings"

	"github.com/PnBafon/viten-backend/internal/core/apperror"
)

// ParseOrderBy validates an order clause against a column whitelist.
// Supports "col DESC"/"col ASC" and the "-col" shorthand for descending.
// Column names never reach SQL unless whitelisted.
func ParseOrderBy(orderBy, fallback string, allowedCols []string) (string, error) {
	if orderBy == "" {
		return fallback, nil
	}

	allowed := make(map[string]struct{}, len(allowedCols))
	for _, col := range allowedCols {
		allowed[col] = struct{}{}
	}

	direction := "ASC"
	field := strings.TrimSpace(orderBy)
	switch {
	case strings.HasPrefix(field, "-"):
		direction = "DESC"
		field = strings.TrimPrefix(field, "-")
	case strings.HasSuffix(strings.ToUpper(field), " DESC"):
		direction = "DESC"
		field = strings.TrimSpace(field[:len(field)-5])
	case strings.HasSuffix(strings.ToUpper(field), " ASC"):
		field = strings.TrimSpace(field[:len(field)-4])
	}

	if _, ok := allowed[field]; !ok {
		return "", apperror.NewValidation("invalid orderBy").
			WithDetail("orderBy", orderBy).
			WithDetail("field", field)
	}
	return field + " " + direction, nil
}
