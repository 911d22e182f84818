package dto

import (
	"github.com/PnBafon/viten-backend/internal/core/types"
	"github.com/PnBafon/viten-backend/internal/domain/debt"
	"github.com/PnBafon/viten-backend/internal/domain/income"
)

// --- Cash sales ---

// CreateIncomeRequest is the request body for recording a cash sale.
type CreateIncomeRequest struct {
	Date            string      `json:"date" binding:"required"`
	Name            string      `json:"name" binding:"required"`
	Pcs             int64       `json:"pcs" binding:"required,min=1"`
	UnitPrice       types.Money `json:"unitPrice" binding:"required"`
	ClientName      string      `json:"clientName"`
	ClientPhone     string      `json:"clientPhone"`
	SellerName      string      `json:"sellerName"`
	ClientSignature string      `json:"clientSignature"`
	SellerSignature string      `json:"sellerSignature"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateIncomeRequest) ToEntity() *income.Sale {
	return &income.Sale{
		Date:            r.Date,
		Name:            r.Name,
		Pcs:             r.Pcs,
		UnitPrice:       r.UnitPrice,
		ClientName:      r.ClientName,
		ClientPhone:     r.ClientPhone,
		SellerName:      r.SellerName,
		ClientSignature: r.ClientSignature,
		SellerSignature: r.SellerSignature,
	}
}

// UpdateIncomeRequest is the request body for editing a cash sale.
type UpdateIncomeRequest CreateIncomeRequest

// ApplyTo applies update DTO to existing entity.
func (r *UpdateIncomeRequest) ApplyTo(s *income.Sale) {
	s.Date = r.Date
	s.Name = r.Name
	s.Pcs = r.Pcs
	s.UnitPrice = r.UnitPrice
	s.ClientName = r.ClientName
	s.ClientPhone = r.ClientPhone
	s.SellerName = r.SellerName
	s.ClientSignature = r.ClientSignature
	s.SellerSignature = r.SellerSignature
}

// --- Credit sales ---

// CreateDebtRequest is the request body for recording a credit sale.
type CreateDebtRequest struct {
	Date             string      `json:"date" binding:"required"`
	Name             string      `json:"name" binding:"required"`
	Pcs              int64       `json:"pcs" binding:"required,min=1"`
	UnitPrice        types.Money `json:"unitPrice" binding:"required"`
	AmountPayableNow types.Money `json:"amountPayableNow"`
	ClientName       string      `json:"clientName" binding:"required"`
	ClientPhone      string      `json:"clientPhone"`
	SellerName       string      `json:"sellerName"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateDebtRequest) ToEntity() *debt.Debt {
	return &debt.Debt{
		Date:             r.Date,
		Name:             r.Name,
		Pcs:              r.Pcs,
		UnitPrice:        r.UnitPrice,
		AmountPayableNow: r.AmountPayableNow,
		ClientName:       r.ClientName,
		ClientPhone:      r.ClientPhone,
		SellerName:       r.SellerName,
	}
}

// UpdateDebtRequest is the request body for editing a credit sale.
type UpdateDebtRequest CreateDebtRequest

// ApplyTo applies update DTO to existing entity.
func (r *UpdateDebtRequest) ApplyTo(d *debt.Debt) {
	d.Date = r.Date
	d.Name = r.Name
	d.Pcs = r.Pcs
	d.UnitPrice = r.UnitPrice
	d.AmountPayableNow = r.AmountPayableNow
	d.ClientName = r.ClientName
	d.ClientPhone = r.ClientPhone
	d.SellerName = r.SellerName
}

// DebtResponse decorates a debt with its derived status.
type DebtResponse struct {
	*debt.Debt
	Status debt.Status `json:"status"`
}

// FromDebt wraps a domain debt.
func FromDebt(d *debt.Debt) DebtResponse {
	return DebtResponse{Debt: d, Status: d.Status()}
}

// FromDebts wraps a slice of domain debts.
func FromDebts(debts []*debt.Debt) []DebtResponse {
	out := make([]DebtResponse, 0, len(debts))
	for _, d := range debts {
		out = append(out, FromDebt(d))
	}
	return out
}

// --- Repayments ---

// CreateRepaymentRequest is the request body for recording a repayment.
type CreateRepaymentRequest struct {
	PaymentDate string      `json:"paymentDate" binding:"required"`
	Amount      types.Money `json:"amount" binding:"required"`
}

// UpdateRepaymentRequest is the request body for editing a repayment.
type UpdateRepaymentRequest struct {
	PaymentDate string      `json:"paymentDate" binding:"required"`
	Amount      types.Money `json:"amount" binding:"required"`
}
