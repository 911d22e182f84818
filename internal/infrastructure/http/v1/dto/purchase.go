package dto

import (
	"github.com/PnBafon/viten-backend/internal/core/types"
	"github.com/PnBafon/viten-backend/internal/domain/inventory"
)

// CreatePurchaseRequest is the request body for recording a purchase lot.
type CreatePurchaseRequest struct {
	Date                     string      `json:"date" binding:"required"`
	Name                     string      `json:"name" binding:"required"`
	Pcs                      int64       `json:"pcs" binding:"required,min=1"`
	UnitPrice                types.Money `json:"unitPrice" binding:"required"`
	StockDeficiencyThreshold int64       `json:"stockDeficiencyThreshold" binding:"omitempty,min=0"`
}

// ToEntity converts DTO to domain entity.
func (r *CreatePurchaseRequest) ToEntity() *inventory.PurchaseLot {
	lot := inventory.NewPurchaseLot(r.Date, r.Name, r.Pcs, r.UnitPrice)
	lot.StockDeficiencyThreshold = r.StockDeficiencyThreshold
	return lot
}

// UpdatePurchaseRequest is the request body for editing a purchase lot.
// AvailableStock is carried as-is: edits never resync it from sale history.
type UpdatePurchaseRequest struct {
	Date                     string      `json:"date" binding:"required"`
	Name                     string      `json:"name" binding:"required"`
	Pcs                      int64       `json:"pcs" binding:"required,min=1"`
	AvailableStock           int64       `json:"availableStock" binding:"min=0"`
	UnitPrice                types.Money `json:"unitPrice" binding:"required"`
	StockDeficiencyThreshold int64       `json:"stockDeficiencyThreshold" binding:"omitempty,min=0"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdatePurchaseRequest) ApplyTo(lot *inventory.PurchaseLot) {
	lot.Date = r.Date
	lot.Name = r.Name
	lot.Pcs = r.Pcs
	lot.AvailableStock = r.AvailableStock
	lot.UnitPrice = r.UnitPrice
	lot.StockDeficiencyThreshold = r.StockDeficiencyThreshold
}
