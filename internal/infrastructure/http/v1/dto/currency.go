package dto

import (
	"github.com/PnBafon/viten-backend/internal/core/types"
	"github.com/PnBafon/viten-backend/internal/domain/currency"
)

// CreateCurrencyRequest is the request body for creating a currency.
type CreateCurrencyRequest struct {
	Code       string      `json:"code" binding:"required"`
	Symbol     string      `json:"symbol"`
	RateToBase types.Money `json:"rateToBase" binding:"required"`
	IsBase     bool        `json:"isBase"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateCurrencyRequest) ToEntity() *currency.Currency {
	return &currency.Currency{
		Code:       r.Code,
		Symbol:     r.Symbol,
		RateToBase: r.RateToBase,
		IsBase:     r.IsBase,
	}
}

// UpdateCurrencyRequest is the request body for updating a currency.
type UpdateCurrencyRequest CreateCurrencyRequest

// ApplyTo applies update DTO to existing entity.
func (r *UpdateCurrencyRequest) ApplyTo(c *currency.Currency) {
	c.Code = r.Code
	c.Symbol = r.Symbol
	c.RateToBase = r.RateToBase
	c.IsBase = r.IsBase
}

// ConvertQuery is the query for currency conversion.
type ConvertQuery struct {
	Amount types.Money `form:"amount" binding:"required"`
	From   string      `form:"from" binding:"required"`
	To     string      `form:"to" binding:"required"`
}

// ConvertResponse is the conversion result.
type ConvertResponse struct {
	Amount    types.Money `json:"amount"`
	From      string      `json:"from"`
	To        string      `json:"to"`
	Converted types.Money `json:"converted"`
}
