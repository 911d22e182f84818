// Package currency provides the currency catalog and conversion through the
// base currency. Exactly one currency is the base; all rates are expressed
// relative to it.
package currency

import (
	"context"
	"regexp"

	"github.com/PnBafon/viten-backend/internal/core/apperror"
	"github.com/PnBafon/viten-backend/internal/core/types"
)

var codePattern = regexp.MustCompile(`^[A-Z]{3}$`)

// Currency represents one catalog entry.
type Currency struct {
	ID     int64  `db:"id" json:"id"`
	Code   string `db:"code" json:"code"`
	Symbol string `db:"symbol" json:"symbol"`

	// RateToBase is how many base units one unit of this currency buys.
	// The base currency itself has rate 1.
	RateToBase types.Money `db:"rate_to_base" json:"rateToBase"`
	IsBase     bool        `db:"is_base" json:"isBase"`
}

// Validate checks currency invariants before persisting.
func (c *Currency) Validate(ctx context.Context) error {
	if !codePattern.MatchString(c.Code) {
		return apperror.NewValidation("code must be a three-letter ISO 4217 code").
			WithDetail("field", "code").
			WithDetail("value", c.Code)
	}
	if !c.RateToBase.IsPositive() {
		return apperror.NewValidation("rate to base must be positive").
			WithDetail("field", "rateToBase")
	}
	if c.IsBase && !c.RateToBase.Equal(types.MoneyFromInt(1)) {
		return apperror.NewValidation("base currency must have rate 1").
			WithDetail("field", "rateToBase")
	}
	return nil
}
