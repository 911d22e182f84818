package dto

import (
	"github.com/PnBafon/viten-backend/internal/domain/shop"
)

// SaveProfileRequest is the request body for updating the shop profile.
type SaveProfileRequest struct {
	ShopName      string `json:"shopName" binding:"required"`
	LogoPath      string `json:"logoPath"`
	ReceiptHeader string `json:"receiptHeader"`
	ReceiptFooter string `json:"receiptFooter"`
	CurrencyCode  string `json:"currencyCode"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
}

// ToEntity converts DTO to domain entity.
func (r *SaveProfileRequest) ToEntity() *shop.Profile {
	return &shop.Profile{
		ShopName:      r.ShopName,
		LogoPath:      r.LogoPath,
		ReceiptHeader: r.ReceiptHeader,
		ReceiptFooter: r.ReceiptFooter,
		CurrencyCode:  r.CurrencyCode,
		Phone:         r.Phone,
		Address:       r.Address,
	}
}
